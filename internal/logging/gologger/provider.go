// Package gologger backs blockmark module loggers with go-logger so host
// applications get JSON or console output from the logger they already run.
package gologger

import (
	"context"
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-blockmark/internal/logging"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

var formats = map[string]func() glog.Option{
	"":        glog.WithLoggerTypeJSON,
	"json":    glog.WithLoggerTypeJSON,
	"console": glog.WithLoggerTypeConsole,
	"pretty":  glog.WithLoggerTypePretty,
}

// Config selects the go-logger level and output format. An empty Format
// means JSON and an empty Level keeps the go-logger default.
type Config struct {
	Level  string
	Format string
}

// Provider hands out go-logger children named after blockmark modules.
type Provider struct {
	root *glog.BaseLogger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds the root go-logger. Unknown formats fail; unknown
// levels are ignored.
func NewProvider(cfg Config) (*Provider, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}
	options := []glog.Option{format()}
	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}
	return &Provider{root: glog.NewLogger(options...)}, nil
}

// GetLogger returns the go-logger child for module. An empty name returns
// the root logger.
func (p *Provider) GetLogger(module string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if module = strings.TrimSpace(module); module == "" {
		return adapt(p.root)
	}
	return adapt(p.root.GetLogger(module))
}

type adapter struct {
	glog.Logger
}

var _ interfaces.FieldsLogger = adapter{}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return adapter{Logger: inner}
}

// WithFields forwards to go-logger when the child supports fields; the
// built-in go-logger types do.
func (a adapter) WithFields(fields map[string]any) interfaces.Logger {
	scoped, ok := a.Logger.(glog.FieldsLogger)
	if !ok || len(fields) == 0 {
		return a
	}
	return adapt(scoped.WithFields(fields))
}

func (a adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	return adapt(a.Logger.WithContext(ctx))
}
