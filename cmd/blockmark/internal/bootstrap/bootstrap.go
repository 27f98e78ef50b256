package bootstrap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-blockmark"
	documentcmd "github.com/goliatone/go-blockmark/internal/commands/document"
	"github.com/goliatone/go-blockmark/internal/di"
	"github.com/goliatone/go-blockmark/internal/logging"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// Options captures configuration for blockmark CLI bootstraps.
type Options struct {
	IDStrategy     string
	Detectors      []string
	ValidateSchema bool
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the blockmark module and the command handlers the CLI drives.
type Module struct {
	Module   *blockmark.Module
	Handlers *documentcmd.HandlerSet
	Logger   interfaces.Logger
}

// BuildModule constructs a blockmark module configured for CLI use. Setting a
// log level switches logging on through the go-logger provider.
func BuildModule(opts Options) (*Module, error) {
	cfg := blockmark.DefaultConfig()
	if strategy := strings.TrimSpace(opts.IDStrategy); strategy != "" {
		cfg.Parser.IDStrategy = strategy
	}
	if len(opts.Detectors) > 0 {
		cfg.Clipboard.Detectors = cloneStrings(opts.Detectors)
	}
	if opts.ValidateSchema {
		cfg.Features.Codec = true
		cfg.Codec.ValidateSchema = true
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Level = level
		cfg.Logging.Format = strings.TrimSpace(opts.LogFormat)
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := blockmark.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blockmark module: %w", err)
	}

	return &Module{
		Module:   module,
		Handlers: module.Commands(),
		Logger:   logging.CommandLogger(module.Container().LoggerProvider(), "cli"),
	}, nil
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
