package di_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-blockmark/internal/commands/fixtures"
	documentcmd "github.com/goliatone/go-blockmark/internal/commands/document"
	"github.com/goliatone/go-blockmark/internal/di"
	"github.com/goliatone/go-blockmark/internal/markup"
	"github.com/goliatone/go-blockmark/internal/runtimeconfig"
)

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Parser.IDStrategy = "random"

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrIDStrategyUnknown) {
		t.Fatalf("expected ErrIDStrategyUnknown, got %v", err)
	}
}

func TestNewContainerBuildsServices(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() != nil {
		t.Fatalf("expected no logger provider when logging disabled, got %T", container.LoggerProvider())
	}
	if container.MarkupService() == nil || container.TableImporter() == nil || container.Codec() == nil {
		t.Fatal("expected markup, clipboard and codec services")
	}
	if container.Commands() == nil {
		t.Fatal("expected command handlers")
	}

	doc := container.MarkupService().ParseDocument(":::text\nHello\n:::")
	if len(doc) != 1 || doc[0].BlockID() != "text-0" {
		t.Fatalf("expected positional ids, got %#v", doc)
	}
}

func TestNewContainerRegistersCommands(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithCommandRegistry(reg))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if len(reg.Handlers) != 4 {
		t.Fatalf("expected four registered handlers, got %d", len(reg.Handlers))
	}

	var out bytes.Buffer
	err = container.Commands().Validate.Execute(context.Background(), documentcmd.ValidateDocumentCommand{
		DocumentInput: documentcmd.DocumentInput{Markup: ":::image\ncaption: no url\n:::"},
		Output:        &out,
	})
	if !errors.Is(err, documentcmd.ErrDocumentInvalid) {
		t.Fatalf("expected ErrDocumentInvalid, got %v", err)
	}
	if !strings.Contains(out.String(), "image url is required") {
		t.Fatalf("unexpected validate output %q", out.String())
	}
}

func TestNewContainerIDStrategyOverride(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	container, err := di.NewContainer(cfg, di.WithIDStrategy(markup.SlugIDs{}))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	doc := container.MarkupService().ParseDocument(":::tips [title=\"Packing List\"]\n- Socks\n:::")
	if got := doc[0].BlockID(); got != "tips-packing-list" {
		t.Fatalf("expected slug id, got %q", got)
	}
}

func TestNewContainerCodecHonoursSchemaFlag(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Codec = true
	cfg.Codec.ValidateSchema = true

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, err := container.Codec().Decode([]byte(`[{"type":"text"}]`)); err == nil {
		t.Fatal("expected schema validation error for text block without content")
	}
}
