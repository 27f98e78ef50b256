package codec

import (
	"encoding/json"
	"fmt"
	"reflect"

	goerrors "github.com/goliatone/go-errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-blockmark/internal/logging"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

const (
	payloadInvalidCode = "CODEC_PAYLOAD_INVALID"
	encodeFailedCode   = "CODEC_ENCODE_FAILED"
)

// Config toggles schema validation of decoded payloads.
type Config struct {
	ValidateSchema bool
}

// Codec converts documents to and from a JSON array of objects tagged with
// a "type" discriminator. It is the hand-off format for persistence
// collaborators that store documents as opaque structured data.
type Codec struct {
	validate bool
	schemas  map[interfaces.BlockType]*jsonschema.Schema
	logger   interfaces.Logger
}

var _ interfaces.DocumentCodec = (*Codec)(nil)

// Option customises a Codec.
type Option func(*Codec)

// WithLogger sets the codec logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Codec) {
		if logger == nil {
			logger = logging.NoOp()
		}
		c.logger = logger
	}
}

// New compiles the block schemas and returns a codec.
func New(cfg Config, opts ...Option) (*Codec, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	c := &Codec{
		validate: cfg.ValidateSchema,
		schemas:  schemas,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Encode renders the document as JSON. Nil list fields are written as empty
// arrays so the output always satisfies the block schemas.
func (c *Codec) Encode(doc interfaces.Document) ([]byte, error) {
	items := make([]map[string]any, 0, len(doc))
	for idx, block := range doc {
		if isNilBlock(block) {
			continue
		}
		item, err := encodeBlock(block)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("codec: encode block %d", idx+1)).
				WithTextCode(encodeFailedCode)
		}
		items = append(items, item)
	}
	return json.Marshal(items)
}

// isNilBlock reports nil interfaces and typed nil pointers such as
// (*interfaces.TextBlock)(nil).
func isNilBlock(block interfaces.ContentBlock) bool {
	if block == nil {
		return true
	}
	value := reflect.ValueOf(block)
	return value.Kind() == reflect.Pointer && value.IsNil()
}

func encodeBlock(block interfaces.ContentBlock) (map[string]any, error) {
	raw, err := json.Marshal(normalize(block))
	if err != nil {
		return nil, err
	}
	var item map[string]any
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	item["type"] = string(block.Type())
	return item, nil
}

// Decode parses a JSON payload produced by Encode. When schema validation is
// enabled every element is checked before it is decoded.
func (c *Codec) Decode(data []byte) (interfaces.Document, error) {
	if c.validate {
		if err := c.ValidatePayload(data); err != nil {
			c.logger.Warn("codec.decode.invalid", "error", err)
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "codec: document payload invalid").
				WithTextCode(payloadInvalidCode)
		}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "codec: document payload is not a JSON array").
			WithTextCode(payloadInvalidCode)
	}

	doc := make(interfaces.Document, 0, len(items))
	for idx, raw := range items {
		block, err := decodeBlock(raw)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("codec: decode block %d", idx+1)).
				WithTextCode(payloadInvalidCode)
		}
		doc = append(doc, normalize(block))
	}
	return doc, nil
}

// ValidatePayload checks a JSON payload against the block schemas without
// decoding it. Issues are reported as a *PayloadValidationError whose
// locations are prefixed with the element index.
func (c *Codec) ValidatePayload(data []byte) error {
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return &PayloadValidationError{
			Issues: []ValidationIssue{{Message: "payload must be a JSON array of blocks"}},
			Cause:  err,
		}
	}

	var issues []ValidationIssue
	for idx, item := range items {
		prefix := fmt.Sprintf("/%d", idx)
		obj, ok := item.(map[string]any)
		if !ok {
			issues = append(issues, ValidationIssue{Location: prefix, Message: "block must be an object"})
			continue
		}
		typeName, _ := obj["type"].(string)
		schema, ok := c.schemas[interfaces.BlockType(typeName)]
		if !ok {
			issues = append(issues, ValidationIssue{
				Location: prefix + "/type",
				Message:  fmt.Sprintf("unknown block type %q", typeName),
			})
			continue
		}
		if err := schema.Validate(obj); err != nil {
			if verr, ok := err.(*jsonschema.ValidationError); ok {
				issues = append(issues, collectValidationIssues(verr, prefix)...)
				continue
			}
			issues = append(issues, ValidationIssue{Location: prefix, Message: err.Error()})
		}
	}
	if len(issues) > 0 {
		return &PayloadValidationError{Issues: issues}
	}
	return nil
}

func decodeBlock(raw json.RawMessage) (interfaces.ContentBlock, error) {
	var head struct {
		Type interfaces.BlockType `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	var block interfaces.ContentBlock
	switch head.Type {
	case interfaces.BlockText:
		block = &interfaces.TextBlock{}
	case interfaces.BlockTips:
		block = &interfaces.TipsBlock{}
	case interfaces.BlockNotes:
		block = &interfaces.NotesBlock{}
	case interfaces.BlockTimeline:
		block = &interfaces.TimelineBlock{}
	case interfaces.BlockImage:
		block = &interfaces.ImageBlock{}
	case interfaces.BlockGallery:
		block = &interfaces.ImageGalleryBlock{}
	case interfaces.BlockTable:
		block = &interfaces.TableBlock{}
	default:
		return nil, fmt.Errorf("unknown block type %q", head.Type)
	}
	if err := json.Unmarshal(raw, block); err != nil {
		return nil, err
	}
	return block, nil
}

// normalize returns a copy of block with required list fields non-nil,
// matching the shape the parser produces.
func normalize(block interfaces.ContentBlock) interfaces.ContentBlock {
	switch b := block.(type) {
	case *interfaces.TipsBlock:
		c := *b
		c.Tips = nonNil(c.Tips)
		return &c
	case *interfaces.NotesBlock:
		c := *b
		c.Notes = nonNil(c.Notes)
		return &c
	case *interfaces.TimelineBlock:
		c := *b
		steps := make([]interfaces.ItineraryStep, len(b.Steps))
		for idx, step := range b.Steps {
			step.Details = nonNil(step.Details)
			steps[idx] = step
		}
		c.Steps = steps
		return &c
	case *interfaces.ImageGalleryBlock:
		c := *b
		if c.Images == nil {
			c.Images = []interfaces.GalleryImage{}
		}
		return &c
	case *interfaces.TableBlock:
		c := *b
		c.Headers = nonNil(c.Headers)
		rows := make([][]string, len(b.Rows))
		for idx, row := range b.Rows {
			rows[idx] = nonNil(row)
		}
		c.Rows = rows
		return &c
	default:
		return block
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
