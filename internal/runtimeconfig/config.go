package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIDStrategyUnknown indicates the parser was configured with an unsupported id strategy.
var ErrIDStrategyUnknown = errors.New("blockmark config: parser id strategy is invalid")

// ErrClipboardDetectorUnknown indicates the clipboard detector list names an unknown detector.
var ErrClipboardDetectorUnknown = errors.New("blockmark config: clipboard detector is invalid")

// ErrClipboardDetectorDuplicate rejects detector lists that repeat an entry.
var ErrClipboardDetectorDuplicate = errors.New("blockmark config: clipboard detector listed twice")
var ErrCodecFeatureRequired = errors.New("blockmark config: codec feature must be enabled to configure the codec")
var ErrLoggingProviderRequired = errors.New("blockmark config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("blockmark config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blockmark config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blockmark config: logging format is invalid")

// Config aggregates feature flags and component options for the blockmark module.
type Config struct {
	Parser    ParserConfig
	Clipboard ClipboardConfig
	Codec     CodecConfig
	Logging   LoggingConfig
	Features  Features
}

// ParserConfig controls block id assignment and diagnostics.
type ParserConfig struct {
	// IDStrategy is one of "positional", "uuid", "content" or "slug".
	IDStrategy string
	// WarnUnknownBlocks logs skipped blocks through the markup logger.
	WarnUnknownBlocks bool
}

// ClipboardConfig lists the enabled table detectors. Order does not change
// detection priority.
type ClipboardConfig struct {
	Detectors []string
}

// CodecConfig captures JSON codec behaviour.
type CodecConfig struct {
	ValidateSchema bool
}

// Features toggles module functionality.
type Features struct {
	Codec  bool
	Logger bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider string
	Level    string
	Format   string
}

// DefaultConfig returns positional ids, every clipboard detector and console logging.
func DefaultConfig() Config {
	return Config{
		Parser: ParserConfig{
			IDStrategy:        "positional",
			WarnUnknownBlocks: true,
		},
		Clipboard: ClipboardConfig{
			Detectors: []string{"html", "tsv", "csv", "pipe"},
		},
		Codec: CodecConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Features: Features{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strategy := strings.TrimSpace(cfg.Parser.IDStrategy); strategy != "" && !isSupportedIDStrategy(strategy) {
		return fmt.Errorf("%w: %s", ErrIDStrategyUnknown, strategy)
	}
	seen := map[string]bool{}
	for _, name := range cfg.Clipboard.Detectors {
		key := strings.ToLower(strings.TrimSpace(name))
		if !isSupportedDetector(key) {
			return fmt.Errorf("%w: %q", ErrClipboardDetectorUnknown, name)
		}
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrClipboardDetectorDuplicate, key)
		}
		seen[key] = true
	}
	if cfg.Codec.ValidateSchema && !cfg.Features.Codec {
		return ErrCodecFeatureRequired
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedIDStrategy(strategy string) bool {
	switch strings.ToLower(strategy) {
	case "positional", "uuid", "content", "slug":
		return true
	default:
		return false
	}
}

func isSupportedDetector(name string) bool {
	switch name {
	case "html", "tsv", "csv", "pipe":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
