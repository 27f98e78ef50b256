package commands

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-blockmark/internal/logging"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// Outcome statuses.
const (
	StatusOK       = "ok"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
	StatusTimeout  = "timeout"
)

// Outcome describes one finished Handler execution.
type Outcome struct {
	Command   string
	Operation string
	Fields    map[string]any
	Elapsed   time.Duration
	Err       error
}

// Status reports how the execution ended.
func (o Outcome) Status() string {
	switch {
	case o.Err == nil:
		return StatusOK
	case errors.Is(o.Err, context.DeadlineExceeded):
		return StatusTimeout
	case errors.Is(o.Err, context.Canceled):
		return StatusCanceled
	default:
		return StatusFailed
	}
}

// Observer is called after every execution, once the outcome is logged.
type Observer[T command.Message] func(ctx context.Context, msg T, outcome Outcome)

func logOutcome(logger interfaces.Logger, outcome Outcome) {
	logger = logging.WithFields(logger, outcome.Fields)
	status := outcome.Status()
	args := []any{"status", status, "elapsed_ms", outcome.Elapsed.Milliseconds()}
	if outcome.Err == nil {
		logger.Info("command.completed", args...)
		return
	}
	args = append(args, "error", outcome.Err)
	if status == StatusFailed {
		logger.Error("command.failed", args...)
		return
	}
	logger.Warn("command.interrupted", args...)
}
