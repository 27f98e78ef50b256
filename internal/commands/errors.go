package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors returned by Handler.Execute.
const (
	CodeInvalidMessage = "BLOCKMARK_COMMAND_INVALID"
	CodeCanceled       = "BLOCKMARK_COMMAND_CANCELED"
	CodeTimeout        = "BLOCKMARK_COMMAND_TIMEOUT"
	CodeFailed         = "BLOCKMARK_COMMAND_FAILED"
)

type stage int

const (
	stageValidate stage = iota
	stageRun
)

// classify tags err with a go-errors category and text code. Errors that
// were already wrapped by go-errors, such as a validator's defect report,
// pass through so their own category survives.
func classify(at stage, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	category, code, message := goerrors.CategoryCommand, CodeFailed, "command failed"
	switch {
	case at == stageValidate:
		category, code, message = goerrors.CategoryValidation, CodeInvalidMessage, "command message rejected"
	case errors.Is(err, context.DeadlineExceeded):
		code, message = CodeTimeout, "command deadline exceeded"
	case errors.Is(err, context.Canceled):
		code, message = CodeCanceled, "command canceled"
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}
