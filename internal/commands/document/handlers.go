package documentcmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blockmark/internal/commands"
	"github.com/goliatone/go-blockmark/internal/logging"
	"github.com/goliatone/go-blockmark/internal/source"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	parseOperation    = "document.parse"
	formatOperation   = "document.format"
	validateOperation = "document.validate"
	importOperation   = "clipboard.import_table"

	documentInvalidCode = "DOCUMENT_INVALID"
)

var (
	// ErrDocumentInvalid is returned by the validate handler when the document has defects.
	ErrDocumentInvalid = errors.New("document command: document has structural defects")
	// ErrCodecUnavailable is returned by the parse handler when no codec was wired.
	ErrCodecUnavailable = errors.New("document command: codec not configured")
)

var (
	_ command.Commander[ParseDocumentCommand]    = (*ParseDocumentHandler)(nil)
	_ command.Commander[FormatDocumentCommand]   = (*FormatDocumentHandler)(nil)
	_ command.Commander[ValidateDocumentCommand] = (*ValidateDocumentHandler)(nil)
	_ command.Commander[ImportTableCommand]      = (*ImportTableHandler)(nil)
)

// Services bundles the collaborators the document handlers delegate to.
type Services struct {
	Parser     interfaces.DocumentParser
	Serializer interfaces.DocumentSerializer
	Validator  interfaces.DocumentValidator
	Codec      interfaces.DocumentCodec
	Importer   interfaces.TableImporter
}

// ParseDocumentHandler parses markup and writes its JSON form.
type ParseDocumentHandler struct {
	inner *commands.Handler[ParseDocumentCommand]
}

type parseEnvelope struct {
	Blocks      json.RawMessage         `json:"blocks"`
	Diagnostics []interfaces.Diagnostic `json:"diagnostics"`
}

// NewParseDocumentHandler creates a handler bound to the supplied parser and codec.
func NewParseDocumentHandler(services Services, logger interfaces.Logger, opts ...commands.HandlerOption[ParseDocumentCommand]) *ParseDocumentHandler {
	baseLogger := ensureLogger(logger)

	exec := func(ctx context.Context, msg ParseDocumentCommand) error {
		if services.Codec == nil {
			return ErrCodecUnavailable
		}
		src, err := readInput(ctx, msg.DocumentInput)
		if err != nil {
			return err
		}

		doc, diagnostics := services.Parser.ParseWithDiagnostics(src.Body)
		payload, err := services.Codec.Encode(doc)
		if err != nil {
			return err
		}
		logging.WithFields(logging.WithSourceContext(baseLogger, src.Path, parseOperation), map[string]any{
			"block_count":      len(doc),
			"diagnostic_count": len(diagnostics),
		}).Debug("document.command.parse.completed")

		if !msg.Diagnostics {
			return writeLine(msg.Output, string(payload))
		}
		if diagnostics == nil {
			diagnostics = []interfaces.Diagnostic{}
		}
		envelope, err := json.Marshal(parseEnvelope{Blocks: payload, Diagnostics: diagnostics})
		if err != nil {
			return err
		}
		return writeLine(msg.Output, string(envelope))
	}

	handlerOpts := []commands.HandlerOption[ParseDocumentCommand]{
		commands.WithLogger[ParseDocumentCommand](baseLogger),
		commands.WithOperation[ParseDocumentCommand](parseOperation),
		commands.WithMessageFields(func(msg ParseDocumentCommand) map[string]any {
			return inputFields(msg.DocumentInput)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ParseDocumentHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ParseDocumentCommand].
func (h *ParseDocumentHandler) Execute(ctx context.Context, msg ParseDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// FormatDocumentHandler rewrites markup into canonical form.
type FormatDocumentHandler struct {
	inner *commands.Handler[FormatDocumentCommand]
}

// NewFormatDocumentHandler creates a handler bound to the supplied parser and serializer.
func NewFormatDocumentHandler(services Services, logger interfaces.Logger, opts ...commands.HandlerOption[FormatDocumentCommand]) *FormatDocumentHandler {
	baseLogger := ensureLogger(logger)

	exec := func(ctx context.Context, msg FormatDocumentCommand) error {
		src, err := readInput(ctx, msg.DocumentInput)
		if err != nil {
			return err
		}
		doc := services.Parser.ParseDocument(src.Body)
		formatted := services.Serializer.SerializeDocument(doc)
		logging.WithSourceContext(baseLogger, src.Path, formatOperation).
			Debug("document.command.format.completed", "block_count", len(doc))
		if _, err := io.WriteString(msg.Output, src.Header); err != nil {
			return err
		}
		return writeLine(msg.Output, formatted)
	}

	handlerOpts := []commands.HandlerOption[FormatDocumentCommand]{
		commands.WithLogger[FormatDocumentCommand](baseLogger),
		commands.WithOperation[FormatDocumentCommand](formatOperation),
		commands.WithMessageFields(func(msg FormatDocumentCommand) map[string]any {
			return inputFields(msg.DocumentInput)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &FormatDocumentHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[FormatDocumentCommand].
func (h *FormatDocumentHandler) Execute(ctx context.Context, msg FormatDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ValidateDocumentHandler reports structural defects.
type ValidateDocumentHandler struct {
	inner *commands.Handler[ValidateDocumentCommand]
}

// NewValidateDocumentHandler creates a handler bound to the supplied parser and validator.
func NewValidateDocumentHandler(services Services, logger interfaces.Logger, opts ...commands.HandlerOption[ValidateDocumentCommand]) *ValidateDocumentHandler {
	baseLogger := ensureLogger(logger)

	exec := func(ctx context.Context, msg ValidateDocumentCommand) error {
		src, err := readInput(ctx, msg.DocumentInput)
		if err != nil {
			return err
		}
		issues := services.Validator.ValidateDocument(services.Parser.ParseDocument(src.Body))
		logging.WithSourceContext(baseLogger, src.Path, validateOperation).
			Debug("document.command.validate.completed", "issue_count", len(issues))
		for _, issue := range issues {
			if err := writeLine(msg.Output, issue); err != nil {
				return err
			}
		}
		if len(issues) > 0 {
			return goerrors.Wrap(ErrDocumentInvalid, goerrors.CategoryValidation,
				fmt.Sprintf("document has %d defect(s)", len(issues))).
				WithTextCode(documentInvalidCode)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateDocumentCommand]{
		commands.WithLogger[ValidateDocumentCommand](baseLogger),
		commands.WithOperation[ValidateDocumentCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateDocumentCommand) map[string]any {
			return inputFields(msg.DocumentInput)
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateDocumentHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateDocumentCommand].
func (h *ValidateDocumentHandler) Execute(ctx context.Context, msg ValidateDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportTableHandler converts clipboard content into a table block.
type ImportTableHandler struct {
	inner *commands.Handler[ImportTableCommand]
}

// NewImportTableHandler creates a handler bound to the supplied importer.
func NewImportTableHandler(services Services, logger interfaces.Logger, opts ...commands.HandlerOption[ImportTableCommand]) *ImportTableHandler {
	baseLogger := ensureLogger(logger)

	exec := func(ctx context.Context, msg ImportTableCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		result := services.Importer.ImportTable(interfaces.ClipboardPayload{
			HTML: msg.HTML,
			Text: msg.Text,
		})
		if !result.Success {
			if result.Err != nil {
				return result.Err
			}
			return errors.New(result.Error)
		}
		baseLogger.Debug("document.command.import_table.completed", "detector", result.Detector)
		return writeLine(msg.Output, result.Text)
	}

	handlerOpts := []commands.HandlerOption[ImportTableCommand]{
		commands.WithLogger[ImportTableCommand](baseLogger),
		commands.WithOperation[ImportTableCommand](importOperation),
		commands.WithMessageFields(func(msg ImportTableCommand) map[string]any {
			return map[string]any{
				"html_bytes": len(msg.HTML),
				"text_bytes": len(msg.Text),
			}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportTableHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportTableCommand].
func (h *ImportTableHandler) Execute(ctx context.Context, msg ImportTableCommand) error {
	return h.inner.Execute(ctx, msg)
}

func readInput(ctx context.Context, input DocumentInput) (source.Source, error) {
	select {
	case <-ctx.Done():
		return source.Source{}, ctx.Err()
	default:
	}
	if path := strings.TrimSpace(input.Path); path != "" {
		return source.Load(path)
	}
	return source.Parse([]byte(input.Markup))
}

func inputFields(input DocumentInput) map[string]any {
	if path := strings.TrimSpace(input.Path); path != "" {
		return map[string]any{logging.FieldSource: path}
	}
	return map[string]any{"markup_bytes": len(input.Markup)}
}

func writeLine(w io.Writer, text string) error {
	if _, err := io.WriteString(w, text); err != nil {
		return err
	}
	if strings.HasSuffix(text, "\n") {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func ensureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
