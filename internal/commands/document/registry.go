package documentcmd

import (
	"errors"

	"github.com/goliatone/go-blockmark/internal/commands"
	"github.com/goliatone/go-blockmark/internal/logging"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Subscription is returned for every handler subscribed to the go-command dispatcher.
type Subscription interface {
	Unsubscribe()
}

// HandlerSet groups the handlers produced by RegisterDocumentCommands.
type HandlerSet struct {
	Parse    *ParseDocumentHandler
	Format   *FormatDocumentHandler
	Validate *ValidateDocumentHandler
	Import   *ImportTableHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	parseHandlerOpts    []commands.HandlerOption[ParseDocumentCommand]
	formatHandlerOpts   []commands.HandlerOption[FormatDocumentCommand]
	validateHandlerOpts []commands.HandlerOption[ValidateDocumentCommand]
	importHandlerOpts   []commands.HandlerOption[ImportTableCommand]
}

// WithParseHandlerOptions forwards options to the ParseDocumentHandler constructor.
func WithParseHandlerOptions(opts ...commands.HandlerOption[ParseDocumentCommand]) Option {
	return func(cfg *options) {
		cfg.parseHandlerOpts = append(cfg.parseHandlerOpts, opts...)
	}
}

// WithFormatHandlerOptions forwards options to the FormatDocumentHandler constructor.
func WithFormatHandlerOptions(opts ...commands.HandlerOption[FormatDocumentCommand]) Option {
	return func(cfg *options) {
		cfg.formatHandlerOpts = append(cfg.formatHandlerOpts, opts...)
	}
}

// WithValidateHandlerOptions forwards options to the ValidateDocumentHandler constructor.
func WithValidateHandlerOptions(opts ...commands.HandlerOption[ValidateDocumentCommand]) Option {
	return func(cfg *options) {
		cfg.validateHandlerOpts = append(cfg.validateHandlerOpts, opts...)
	}
}

// WithImportHandlerOptions forwards options to the ImportTableHandler constructor.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportTableCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// RegisterDocumentCommands builds the document handlers and registers them with the provided
// registry. The HandlerSet is returned so callers can also subscribe it to a dispatcher.
func RegisterDocumentCommands(reg CommandRegistry, services Services, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if services.Parser == nil || services.Serializer == nil || services.Validator == nil {
		return nil, errors.New("document command registration: parser, serializer and validator are required")
	}
	if services.Importer == nil {
		return nil, errors.New("document command registration: importer is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.CommandLogger(provider, "document")

	set := &HandlerSet{
		Parse:    NewParseDocumentHandler(services, logger, cfg.parseHandlerOpts...),
		Format:   NewFormatDocumentHandler(services, logger, cfg.formatHandlerOpts...),
		Validate: NewValidateDocumentHandler(services, logger, cfg.validateHandlerOpts...),
		Import:   NewImportTableHandler(services, logger, cfg.importHandlerOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Parse, set.Format, set.Validate, set.Import} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// Subscribe attaches every handler in the set to the global go-command dispatcher so
// messages can be sent with dispatcher.Dispatch. Failed executions are retried up to
// maxRetries times. Callers release the handlers with Unsubscribe.
func (s *HandlerSet) Subscribe(maxRetries int) []Subscription {
	if s == nil {
		return nil
	}
	return []Subscription{
		dispatcher.SubscribeCommand(s.Parse.inner, runner.WithMaxRetries(maxRetries)),
		dispatcher.SubscribeCommand(s.Format.inner, runner.WithMaxRetries(maxRetries)),
		dispatcher.SubscribeCommand(s.Validate.inner, runner.WithMaxRetries(maxRetries)),
		dispatcher.SubscribeCommand(s.Import.inner, runner.WithMaxRetries(maxRetries)),
	}
}
