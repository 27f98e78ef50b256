package markup

import (
	"fmt"
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// ID strategy names accepted by NewIDStrategy.
const (
	IDStrategyPositional = "positional"
	IDStrategyUUID       = "uuid"
	IDStrategyContent    = "content"
	IDStrategySlug       = "slug"
)

// IDStrategy assigns block ids after a document has been parsed. Positional
// ids are the default and change whenever blocks are inserted, removed or
// reordered; the other strategies are opt-in for hosts that need identity
// to survive such edits.
type IDStrategy interface {
	Name() string
	AssignIDs(doc interfaces.Document)
}

// NewIDStrategy resolves a strategy by name. An empty name selects the
// positional strategy.
func NewIDStrategy(name string) (IDStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", IDStrategyPositional:
		return PositionalIDs{}, nil
	case IDStrategyUUID:
		return UUIDIDs{}, nil
	case IDStrategyContent:
		return ContentIDs{}, nil
	case IDStrategySlug:
		return SlugIDs{}, nil
	default:
		return nil, fmt.Errorf("markup: unknown id strategy %q", name)
	}
}

// PositionalIDs derives ids as "<type>-<index>" from the block position.
type PositionalIDs struct{}

func (PositionalIDs) Name() string { return IDStrategyPositional }

func (PositionalIDs) AssignIDs(doc interfaces.Document) {
	for idx, block := range doc {
		SetBlockID(block, positionalID(block.Type(), idx))
	}
}

func positionalID(t interfaces.BlockType, index int) string {
	return string(t) + "-" + strconv.Itoa(index)
}

// UUIDIDs assigns a random UUID to every block on every parse. Ids are only
// stable when the host stores them alongside the document.
type UUIDIDs struct{}

func (UUIDIDs) Name() string { return IDStrategyUUID }

func (UUIDIDs) AssignIDs(doc interfaces.Document) {
	for _, block := range doc {
		SetBlockID(block, uuid.NewString())
	}
}

// ContentIDs derives a deterministic UUID from the block type and its
// serialized body, so ids survive reordering but change when the block is
// edited. Identical blocks are told apart by occurrence order.
type ContentIDs struct{}

func (ContentIDs) Name() string { return IDStrategyContent }

func (ContentIDs) AssignIDs(doc interfaces.Document) {
	seen := map[string]int{}
	for _, block := range doc {
		key := "blockmark:" + string(block.Type()) + ":" + SerializeBlock(block)
		seen[key]++
		if n := seen[key]; n > 1 {
			key += ":" + strconv.Itoa(n)
		}
		SetBlockID(block, contentUUID(key).String())
	}
}

func contentUUID(key string) uuid.UUID {
	uid, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return uid
}

// SlugIDs derives "<type>-<slug>" from the block heading or title and falls
// back to the positional id for untitled blocks. Collisions get a numeric
// suffix.
type SlugIDs struct{}

func (SlugIDs) Name() string { return IDStrategySlug }

func (SlugIDs) AssignIDs(doc interfaces.Document) {
	normalizer := slug.Default()
	used := map[string]int{}
	for idx, block := range doc {
		id := positionalID(block.Type(), idx)
		if label := blockLabel(block); label != "" {
			if normalized, err := normalizer.Normalize(label); err == nil && normalized != "" {
				id = string(block.Type()) + "-" + normalized
			}
		}
		used[id]++
		if n := used[id]; n > 1 {
			id += "-" + strconv.Itoa(n)
		}
		SetBlockID(block, id)
	}
}

func blockLabel(block interfaces.ContentBlock) string {
	switch b := block.(type) {
	case *interfaces.TextBlock:
		return b.Heading
	case *interfaces.TipsBlock:
		return b.Title
	case *interfaces.NotesBlock:
		return b.Title
	case *interfaces.TimelineBlock:
		return b.Title
	case *interfaces.ImageBlock:
		return b.Caption
	case *interfaces.ImageGalleryBlock:
		return b.Title
	case *interfaces.TableBlock:
		return b.Title
	default:
		return ""
	}
}

// SetBlockID replaces a block id. Timeline step ids are re-derived from the
// new block id.
func SetBlockID(block interfaces.ContentBlock, id string) {
	switch b := block.(type) {
	case *interfaces.TextBlock:
		b.ID = id
	case *interfaces.TipsBlock:
		b.ID = id
	case *interfaces.NotesBlock:
		b.ID = id
	case *interfaces.TimelineBlock:
		b.ID = id
		for idx := range b.Steps {
			b.Steps[idx].ID = stepID(id, idx)
		}
	case *interfaces.ImageBlock:
		b.ID = id
	case *interfaces.ImageGalleryBlock:
		b.ID = id
	case *interfaces.TableBlock:
		b.ID = id
	}
}
