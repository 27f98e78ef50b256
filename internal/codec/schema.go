package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

var (
	ErrSchemaInvalid    = errors.New("codec: block schema invalid")
	ErrSchemaValidation = errors.New("codec: payload validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr, "")
	}
	return []ValidationIssue{{Message: err.Error()}}
}

var (
	stringSchema      = map[string]any{"type": "string"}
	stringListSchema  = map[string]any{"type": "array", "items": stringSchema}
	optionalListItems = map[string]any{"type": []any{"array", "null"}, "items": stringSchema}
	imageFieldsSchema = map[string]any{
		"url":     stringSchema,
		"caption": stringSchema,
		"alt":     stringSchema,
	}
)

// blockSchemas describes the JSON form of each block variant.
func blockSchemas() map[interfaces.BlockType]map[string]any {
	object := func(required []string, properties map[string]any) map[string]any {
		props := map[string]any{
			"type": map[string]any{"type": "string"},
			"id":   stringSchema,
		}
		for key, value := range properties {
			props[key] = value
		}
		req := []any{"type"}
		for _, name := range required {
			req = append(req, name)
		}
		return map[string]any{
			"$schema":    "https://json-schema.org/draft/2020-12/schema",
			"type":       "object",
			"required":   req,
			"properties": props,
		}
	}

	return map[interfaces.BlockType]map[string]any{
		interfaces.BlockText: object([]string{"content"}, map[string]any{
			"content": stringSchema,
			"heading": stringSchema,
		}),
		interfaces.BlockTips: object([]string{"tips"}, map[string]any{
			"title": stringSchema,
			"tips":  stringListSchema,
		}),
		interfaces.BlockNotes: object([]string{"notes"}, map[string]any{
			"title": stringSchema,
			"notes": stringListSchema,
		}),
		interfaces.BlockTimeline: object([]string{"steps"}, map[string]any{
			"title": stringSchema,
			"steps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"title", "details"},
					"properties": map[string]any{
						"id":      stringSchema,
						"title":   stringSchema,
						"details": stringListSchema,
						"tips":    optionalListItems,
						"notes":   optionalListItems,
					},
				},
			},
		}),
		interfaces.BlockImage: object([]string{"url"}, imageFieldsSchema),
		interfaces.BlockGallery: object([]string{"images"}, map[string]any{
			"title": stringSchema,
			"images": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":       "object",
					"required":   []any{"url"},
					"properties": imageFieldsSchema,
				},
			},
		}),
		interfaces.BlockTable: object([]string{"headers", "rows"}, map[string]any{
			"title":   stringSchema,
			"caption": stringSchema,
			"headers": stringListSchema,
			"rows": map[string]any{
				"type":  "array",
				"items": stringListSchema,
			},
		}),
	}
}

func compileSchemas() (map[interfaces.BlockType]*jsonschema.Schema, error) {
	compiled := map[interfaces.BlockType]*jsonschema.Schema{}
	schemas := blockSchemas()
	for _, blockType := range interfaces.BlockTypes() {
		schema, ok := schemas[blockType]
		if !ok {
			return nil, fmt.Errorf("%w: %s: no schema defined", ErrSchemaInvalid, blockType)
		}
		s, err := compileSchema(string(blockType), schema)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, blockType, err)
		}
		compiled[blockType] = s
	}
	return compiled, nil
}

func compileSchema(name string, schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}

func collectValidationIssues(err *jsonschema.ValidationError, prefix string) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: prefix + strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
