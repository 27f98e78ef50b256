package source

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/adrg/frontmatter"
)

// Meta is the optional YAML front matter block at the top of a markup file.
type Meta struct {
	Title       string
	Description string
	Tags        []string
	Custom      map[string]any
}

// Source is a markup file split into its metadata and block body. Header
// holds the raw front matter block, delimiters included, so tools that
// rewrite the body can put it back untouched.
type Source struct {
	Path   string
	Meta   Meta
	Header string
	Body   string
}

// Parse splits raw bytes into front matter and body. Files without front
// matter are returned unchanged with empty metadata.
func Parse(data []byte) (Source, error) {
	var env metaEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(data), &env)
	if err != nil {
		return Source{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	header := ""
	if len(body) < len(data) && bytes.HasSuffix(data, body) {
		header = string(data[:len(data)-len(body)])
	}
	return Source{
		Meta:   env.toMeta(),
		Header: header,
		Body:   string(body),
	}, nil
}

// Read consumes r fully and parses it.
func Read(r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Source{}, fmt.Errorf("source read: %w", err)
	}
	return Parse(data)
}

// Load reads the file at path. The path is recorded on the result.
func Load(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("source read %s: %w", path, err)
	}
	src, err := Parse(data)
	if err != nil {
		return Source{}, fmt.Errorf("source %s: %w", path, err)
	}
	src.Path = path
	return src, nil
}

type metaEnvelope struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Tags        []string       `yaml:"tags"`
	Custom      map[string]any `yaml:",inline"`
}

func (env metaEnvelope) toMeta() Meta {
	custom := make(map[string]any, len(env.Custom))
	for key, value := range env.Custom {
		custom[key] = value
	}
	return Meta{
		Title:       env.Title,
		Description: env.Description,
		Tags:        append([]string(nil), env.Tags...),
		Custom:      custom,
	}
}
