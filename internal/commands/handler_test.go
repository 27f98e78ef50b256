package commands

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

type testMessage struct{}

func (testMessage) Type() string { return "blockmark.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "blockmark.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

type entryLog struct {
	entries *[]string
	fields  map[string]any
}

func (l entryLog) add(level, msg string) {
	*l.entries = append(*l.entries, level+" "+msg)
}

func (l entryLog) Trace(msg string, _ ...any) { l.add("trace", msg) }
func (l entryLog) Debug(msg string, _ ...any) { l.add("debug", msg) }
func (l entryLog) Info(msg string, _ ...any)  { l.add("info", msg) }
func (l entryLog) Warn(msg string, _ ...any)  { l.add("warn", msg) }
func (l entryLog) Error(msg string, _ ...any) { l.add("error", msg) }
func (l entryLog) Fatal(msg string, _ ...any) { l.add("fatal", msg) }

func (l entryLog) WithContext(context.Context) interfaces.Logger { return l }

func (l entryLog) WithFields(fields map[string]any) interfaces.Logger {
	*l.entries = append(*l.entries, fmt.Sprintf("fields source_path=%v operation=%v", fields["source_path"], fields["operation"]))
	return l
}

func TestHandlerObserverReceivesOutcome(t *testing.T) {
	var got Outcome
	var entries []string
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithLogger[testMessage](entryLog{entries: &entries}),
		WithOperation[testMessage]("document.parse"),
		WithMessageFields(func(testMessage) map[string]any {
			return map[string]any{"source_path": "guide.md"}
		}),
		WithObserver[testMessage](func(ctx context.Context, _ testMessage, outcome Outcome) {
			got = outcome
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.Status() != StatusOK {
		t.Fatalf("expected ok status, got %q", got.Status())
	}
	if got.Command != "blockmark.test.message" || got.Operation != "document.parse" {
		t.Fatalf("unexpected outcome identity %#v", got)
	}
	if got.Fields["source_path"] != "guide.md" {
		t.Fatalf("expected message fields in outcome, got %#v", got.Fields)
	}
	want := []string{"fields source_path=guide.md operation=document.parse", "info command.completed"}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("expected log %v, got %v", want, entries)
	}
}

func TestHandlerOutcomeStatuses(t *testing.T) {
	execErr := errors.New("boom")
	cases := []struct {
		name    string
		timeout time.Duration
		run     func(ctx context.Context) error
		status  string
		entry   string
		cause   error
	}{
		{
			name:   "failure",
			run:    func(context.Context) error { return execErr },
			status: StatusFailed,
			entry:  "error command.failed",
			cause:  execErr,
		},
		{
			name:    "deadline",
			timeout: 5 * time.Millisecond,
			run: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
			status: StatusTimeout,
			entry:  "warn command.interrupted",
			cause:  context.DeadlineExceeded,
		},
		{
			name:    "ignored deadline",
			timeout: 5 * time.Millisecond,
			run: func(ctx context.Context) error {
				<-ctx.Done()
				return nil
			},
			status: StatusTimeout,
			entry:  "warn command.interrupted",
			cause:  context.DeadlineExceeded,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got Outcome
			var entries []string
			h := NewHandler[testMessage](func(ctx context.Context, _ testMessage) error {
				return tc.run(ctx)
			},
				WithTimeout[testMessage](tc.timeout),
				WithLogger[testMessage](entryLog{entries: &entries}),
				WithObserver[testMessage](func(_ context.Context, _ testMessage, outcome Outcome) {
					got = outcome
				}),
			)

			err := h.Execute(context.Background(), testMessage{})
			if err == nil {
				t.Fatalf("expected error")
			}
			if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
				t.Fatalf("expected command category, got %v", err)
			}
			if !errors.Is(err, tc.cause) {
				t.Fatalf("expected %v to wrap %v", err, tc.cause)
			}
			if got.Status() != tc.status {
				t.Fatalf("expected status %q, got %q", tc.status, got.Status())
			}
			if entries[len(entries)-1] != tc.entry {
				t.Fatalf("expected final entry %q, got %v", tc.entry, entries)
			}
		})
	}
}

func TestClassifyKeepsWrappedErrors(t *testing.T) {
	inner := goerrors.Wrap(errors.New("row 1 has 1 columns, expected 2"), goerrors.CategoryValidation, "document has 1 defect(s)")
	if got := classify(stageRun, inner); got != error(inner) {
		t.Fatalf("expected wrapped error to pass through, got %v", got)
	}
	if classify(stageRun, nil) != nil {
		t.Fatalf("expected nil to stay nil")
	}
}
