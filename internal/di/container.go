package di

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-blockmark/internal/clipboard"
	"github.com/goliatone/go-blockmark/internal/codec"
	documentcmd "github.com/goliatone/go-blockmark/internal/commands/document"
	"github.com/goliatone/go-blockmark/internal/logging"
	"github.com/goliatone/go-blockmark/internal/logging/console"
	"github.com/goliatone/go-blockmark/internal/logging/gologger"
	"github.com/goliatone/go-blockmark/internal/markup"
	"github.com/goliatone/go-blockmark/internal/runtimeconfig"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// CommandRegistry receives command handlers when one is supplied.
type CommandRegistry = documentcmd.CommandRegistry

// Container wires the blockmark services from configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	registry       CommandRegistry

	markup    *markup.Service
	importer  *clipboard.Importer
	codec     *codec.Codec
	idFactory markup.IDStrategy
	commands  *documentcmd.HandlerSet
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithCommandRegistry registers the document command handlers with reg.
func WithCommandRegistry(reg CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithIDStrategy overrides the parser id strategy named in configuration.
func WithIDStrategy(strategy markup.IDStrategy) Option {
	return func(c *Container) {
		c.idFactory = strategy
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := configureLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	svc, err := markup.NewService(markup.Config{
		IDStrategy:        cfg.Parser.IDStrategy,
		WarnUnknownBlocks: cfg.Parser.WarnUnknownBlocks,
	},
		markup.WithLogger(logging.MarkupLogger(c.loggerProvider)),
		markup.WithIDStrategy(c.idFactory),
	)
	if err != nil {
		return nil, err
	}
	c.markup = svc

	importer, err := clipboard.NewImporter(clipboard.Config{Detectors: cfg.Clipboard.Detectors},
		clipboard.WithLogger(logging.ClipboardLogger(c.loggerProvider)),
	)
	if err != nil {
		return nil, err
	}
	c.importer = importer

	documentCodec, err := codec.New(codec.Config{ValidateSchema: cfg.Codec.ValidateSchema},
		codec.WithLogger(logging.CodecLogger(c.loggerProvider)),
	)
	if err != nil {
		return nil, err
	}
	c.codec = documentCodec

	set, err := documentcmd.RegisterDocumentCommands(c.registry, documentcmd.Services{
		Parser:     c.markup,
		Serializer: c.markup,
		Validator:  c.markup,
		Codec:      c.codec,
		Importer:   c.importer,
	}, c.loggerProvider)
	if err != nil {
		return nil, err
	}
	c.commands = set

	logging.ModuleLogger(c.loggerProvider, "blockmark").Debug("container.configured",
		"id_strategy", c.markup.IDStrategyName(),
		"detectors", strings.Join(importer.DetectorNames(), ","),
		"schema_validation", cfg.Codec.ValidateSchema,
	)
	return c, nil
}

func configureLoggerProvider(cfg runtimeconfig.Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			return nil, fmt.Errorf("di: configure go-logger: %w", err)
		}
		return provider, nil
	default:
		return console.NewProvider(console.Options{
			MinLevel: console.ParseLevel(cfg.Logging.Level),
		}), nil
	}
}

// LoggerProvider returns the provider used by every module logger. It is nil
// when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MarkupService returns the parser, serializer and validator.
func (c *Container) MarkupService() *markup.Service {
	return c.markup
}

// TableImporter returns the clipboard importer.
func (c *Container) TableImporter() *clipboard.Importer {
	return c.importer
}

// Codec returns the JSON document codec.
func (c *Container) Codec() *codec.Codec {
	return c.codec
}

// Commands returns the document command handlers.
func (c *Container) Commands() *documentcmd.HandlerSet {
	return c.commands
}
