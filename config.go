package blockmark

import "github.com/goliatone/go-blockmark/internal/runtimeconfig"

var (
	ErrIDStrategyUnknown          = runtimeconfig.ErrIDStrategyUnknown
	ErrClipboardDetectorUnknown   = runtimeconfig.ErrClipboardDetectorUnknown
	ErrClipboardDetectorDuplicate = runtimeconfig.ErrClipboardDetectorDuplicate
	ErrCodecFeatureRequired       = runtimeconfig.ErrCodecFeatureRequired
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	ParserConfig    = runtimeconfig.ParserConfig
	ClipboardConfig = runtimeconfig.ClipboardConfig
	CodecConfig     = runtimeconfig.CodecConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
