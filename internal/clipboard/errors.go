package clipboard

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	noTableDetectedCode = "CLIPBOARD_NO_TABLE"

	// NoTableMessage is shown to the user when no detector matched.
	NoTableMessage = "No table found in the pasted content. Copy cells from a spreadsheet, CSV text or a Markdown table and try again."
)

var (
	// ErrNoTableDetected is returned when every detector in the chain declined the payload.
	ErrNoTableDetected = errors.New("clipboard: no table detected")
	// ErrUnknownDetector is returned when configuration names a detector that does not exist.
	ErrUnknownDetector = errors.New("clipboard: unknown detector")
)

func noTableError() error {
	return goerrors.Wrap(ErrNoTableDetected, goerrors.CategoryValidation, NoTableMessage).
		WithTextCode(noTableDetectedCode)
}
