package markup

import (
	"reflect"

	"github.com/goliatone/go-blockmark/internal/logging"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// Config controls how the markup service assigns ids and reports skipped
// constructs.
type Config struct {
	IDStrategy        string
	WarnUnknownBlocks bool
}

// Service parses, serializes and validates block markup. It holds no
// per-call state and can be shared freely.
type Service struct {
	ids    IDStrategy
	warn   bool
	logger interfaces.Logger
}

var (
	_ interfaces.DocumentParser     = (*Service)(nil)
	_ interfaces.DocumentSerializer = (*Service)(nil)
	_ interfaces.DocumentValidator  = (*Service)(nil)
)

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger == nil {
			logger = logging.NoOp()
		}
		s.logger = logger
	}
}

// WithIDStrategy overrides the strategy resolved from Config.
func WithIDStrategy(strategy IDStrategy) Option {
	return func(s *Service) {
		if strategy != nil {
			s.ids = strategy
		}
	}
}

// NewService builds a markup service. It fails only when the configured id
// strategy is unknown.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	ids, err := NewIDStrategy(cfg.IDStrategy)
	if err != nil {
		return nil, err
	}
	s := &Service{
		ids:    ids,
		warn:   cfg.WarnUnknownBlocks,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Default returns a service with positional ids and no logging.
func Default() *Service {
	return &Service{
		ids:    PositionalIDs{},
		logger: logging.NoOp(),
	}
}

// IDStrategyName reports which id strategy the service assigns with.
func (s *Service) IDStrategyName() string {
	return s.ids.Name()
}

// ParseDocument converts markup text into blocks. It never fails.
func (s *Service) ParseDocument(text string) interfaces.Document {
	doc, _ := s.ParseWithDiagnostics(text)
	return doc
}

// ParseWithDiagnostics converts markup text into blocks and also returns the
// constructs that were skipped or repaired along the way.
func (s *Service) ParseWithDiagnostics(text string) (interfaces.Document, []interfaces.Diagnostic) {
	segments, diagnostics := SegmentDocument(text)

	doc := make(interfaces.Document, 0, len(segments))
	for idx, seg := range segments {
		if block := ParseSegment(positionalID(seg.Type, idx), seg); block != nil {
			doc = append(doc, block)
		}
	}
	s.ids.AssignIDs(doc)

	if s.warn {
		s.logDiagnostics(diagnostics)
	}
	return doc, diagnostics
}

func (s *Service) logDiagnostics(diagnostics []interfaces.Diagnostic) {
	for _, d := range diagnostics {
		logger := logging.WithDiagnostic(s.logger, d)
		if d.Severity == interfaces.SeverityWarning {
			logger.Warn("markup.parse.skipped", "reason", d.Message)
			continue
		}
		logger.Debug("markup.parse.ignored", "reason", d.Message)
	}
}

// SerializeDocument renders blocks back into markup text.
func (s *Service) SerializeDocument(doc interfaces.Document) string {
	return SerializeDocument(doc)
}

// SerializeBlock renders a single block.
func (s *Service) SerializeBlock(block interfaces.ContentBlock) string {
	return SerializeBlock(block)
}

// ValidateDocument reports structural defects.
func (s *Service) ValidateDocument(doc interfaces.Document) []string {
	issues := ValidateDocument(doc)
	if len(issues) > 0 {
		s.logger.Debug("markup.validate.issues", "count", len(issues))
	}
	return issues
}

// Normalize parses text and serializes it again, which rewrites lenient
// input (bare list lines, headings inside lists, stray text) into the
// canonical form.
func (s *Service) Normalize(text string) string {
	return SerializeDocument(s.ParseDocument(text))
}

// Equal reports whether two documents hold the same blocks, ignoring block
// and step ids.
func Equal(a, b interfaces.Document) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !reflect.DeepEqual(withoutIDs(a[idx]), withoutIDs(b[idx])) {
			return false
		}
	}
	return true
}

func withoutIDs(block interfaces.ContentBlock) interfaces.ContentBlock {
	if block == nil || reflect.ValueOf(block).IsNil() {
		return block
	}
	switch b := block.(type) {
	case *interfaces.TextBlock:
		c := *b
		c.ID = ""
		return &c
	case *interfaces.TipsBlock:
		c := *b
		c.ID = ""
		return &c
	case *interfaces.NotesBlock:
		c := *b
		c.ID = ""
		return &c
	case *interfaces.TimelineBlock:
		c := *b
		c.ID = ""
		c.Steps = make([]interfaces.ItineraryStep, len(b.Steps))
		for idx, step := range b.Steps {
			step.ID = ""
			c.Steps[idx] = step
		}
		return &c
	case *interfaces.ImageBlock:
		c := *b
		c.ID = ""
		return &c
	case *interfaces.ImageGalleryBlock:
		c := *b
		c.ID = ""
		return &c
	case *interfaces.TableBlock:
		c := *b
		c.ID = ""
		return &c
	default:
		return block
	}
}
