package blockmark

import (
	"github.com/goliatone/go-blockmark/internal/clipboard"
	"github.com/goliatone/go-blockmark/internal/codec"
	documentcmd "github.com/goliatone/go-blockmark/internal/commands/document"
	"github.com/goliatone/go-blockmark/internal/di"
	"github.com/goliatone/go-blockmark/internal/markup"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// BlockType names one of the seven block kinds.
type BlockType = interfaces.BlockType

const (
	BlockText     = interfaces.BlockText
	BlockTips     = interfaces.BlockTips
	BlockNotes    = interfaces.BlockNotes
	BlockTimeline = interfaces.BlockTimeline
	BlockImage    = interfaces.BlockImage
	BlockGallery  = interfaces.BlockGallery
	BlockTable    = interfaces.BlockTable
)

// AST exports.
type (
	ContentBlock      = interfaces.ContentBlock
	Document          = interfaces.Document
	TextBlock         = interfaces.TextBlock
	TipsBlock         = interfaces.TipsBlock
	NotesBlock        = interfaces.NotesBlock
	TimelineBlock     = interfaces.TimelineBlock
	ItineraryStep     = interfaces.ItineraryStep
	ImageBlock        = interfaces.ImageBlock
	GalleryImage      = interfaces.GalleryImage
	ImageGalleryBlock = interfaces.ImageGalleryBlock
	TableBlock        = interfaces.TableBlock
)

// Parsing and import exports.
type (
	Diagnostic        = interfaces.Diagnostic
	ClipboardPayload  = interfaces.ClipboardPayload
	TableData         = interfaces.TableData
	TableImportResult = interfaces.TableImportResult
)

// MarkupService exports the parser, serializer and validator.
type MarkupService = *markup.Service

// TableImporter exports the clipboard importer.
type TableImporter = *clipboard.Importer

// DocumentCodec exports the JSON codec.
type DocumentCodec = *codec.Codec

// CommandHandlers exports the document command handlers.
type CommandHandlers = *documentcmd.HandlerSet

// ErrNoTableDetected is carried by failed clipboard imports.
var ErrNoTableDetected = clipboard.ErrNoTableDetected

// Module represents the top level blockmark runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Markup returns the configured parser, serializer and validator.
func (m *Module) Markup() MarkupService {
	return m.container.MarkupService()
}

// Clipboard returns the configured table importer.
func (m *Module) Clipboard() TableImporter {
	return m.container.TableImporter()
}

// Codec returns the JSON document codec.
func (m *Module) Codec() DocumentCodec {
	return m.container.Codec()
}

// Commands returns the document command handlers.
func (m *Module) Commands() CommandHandlers {
	return m.container.Commands()
}

// ParseDocument converts markup into blocks with positional ids.
func ParseDocument(text string) Document {
	return markup.Default().ParseDocument(text)
}

// SerializeDocument renders blocks back into markup.
func SerializeDocument(doc Document) string {
	return markup.SerializeDocument(doc)
}

// ValidateDocument lists structural defects. An empty result means none were found.
func ValidateDocument(doc Document) []string {
	return markup.ValidateDocument(doc)
}

// ImportTableFromClipboard runs every clipboard detector in priority order.
func ImportTableFromClipboard(payload ClipboardPayload) TableImportResult {
	return clipboard.Default().ImportTable(payload)
}
