package documentcmd

import (
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	parseDocumentMessageType    = "blockmark.document.parse"
	formatDocumentMessageType   = "blockmark.document.format"
	validateDocumentMessageType = "blockmark.document.validate"
	importTableMessageType      = "blockmark.clipboard.import_table"
)

// DocumentInput names where the markup comes from. Path wins over Markup
// when both are set; files may carry YAML front matter.
type DocumentInput struct {
	// Path points at a markup file on disk.
	Path string `json:"path,omitempty"`
	// Markup is inline markup text.
	Markup string `json:"markup,omitempty"`
}

func (in DocumentInput) empty() bool {
	return strings.TrimSpace(in.Path) == "" && in.Markup == ""
}

// ParseDocumentCommand parses markup and writes the JSON encoded blocks to
// Output.
type ParseDocumentCommand struct {
	DocumentInput
	// Diagnostics wraps the output in an envelope that also lists skipped constructs.
	Diagnostics bool `json:"diagnostics,omitempty"`
	// Output receives the JSON payload.
	Output io.Writer `json:"-"`
}

// Type implements command.Message.
func (ParseDocumentCommand) Type() string { return parseDocumentMessageType }

// Validate ensures an input source and an output sink are present.
func (cmd ParseDocumentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.DocumentInput, validation.By(requireInput(parseDocumentMessageType))),
		validation.Field(&cmd.Output, validation.By(requireWriter(parseDocumentMessageType))),
	)
}

// FormatDocumentCommand rewrites markup into its canonical serialized form.
// Front matter, when present, is written back unchanged.
type FormatDocumentCommand struct {
	DocumentInput
	// Output receives the formatted markup.
	Output io.Writer `json:"-"`
}

// Type implements command.Message.
func (FormatDocumentCommand) Type() string { return formatDocumentMessageType }

// Validate ensures an input source and an output sink are present.
func (cmd FormatDocumentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.DocumentInput, validation.By(requireInput(formatDocumentMessageType))),
		validation.Field(&cmd.Output, validation.By(requireWriter(formatDocumentMessageType))),
	)
}

// ValidateDocumentCommand parses markup and reports structural defects, one
// per line. Execution fails with ErrDocumentInvalid when any defect is found.
type ValidateDocumentCommand struct {
	DocumentInput
	// Output receives one line per defect.
	Output io.Writer `json:"-"`
}

// Type implements command.Message.
func (ValidateDocumentCommand) Type() string { return validateDocumentMessageType }

// Validate ensures an input source and an output sink are present.
func (cmd ValidateDocumentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.DocumentInput, validation.By(requireInput(validateDocumentMessageType))),
		validation.Field(&cmd.Output, validation.By(requireWriter(validateDocumentMessageType))),
	)
}

// ImportTableCommand runs the clipboard detectors over a pasted payload and
// writes the resulting ":::table" block to Output.
type ImportTableCommand struct {
	// HTML is the text/html flavour of the clipboard, if any.
	HTML string `json:"html,omitempty"`
	// Text is the text/plain flavour of the clipboard, if any.
	Text string `json:"text,omitempty"`
	// Output receives the table block markup.
	Output io.Writer `json:"-"`
}

// Type implements command.Message.
func (ImportTableCommand) Type() string { return importTableMessageType }

// Validate ensures some clipboard content was supplied.
func (cmd ImportTableCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Text, validation.By(func(value any) error {
			if strings.TrimSpace(cmd.HTML) == "" && strings.TrimSpace(value.(string)) == "" {
				return validation.NewError(importTableMessageType+".payload_required", "html or text is required")
			}
			return nil
		})),
		validation.Field(&cmd.Output, validation.By(requireWriter(importTableMessageType))),
	)
}

func requireInput(messageType string) validation.RuleFunc {
	return func(value any) error {
		if input, ok := value.(DocumentInput); !ok || input.empty() {
			return validation.NewError(messageType+".input_required", "path or markup is required")
		}
		return nil
	}
}

func requireWriter(messageType string) validation.RuleFunc {
	return func(value any) error {
		if w, _ := value.(io.Writer); w == nil {
			return validation.NewError(messageType+".output_required", "output writer is required")
		}
		return nil
	}
}
