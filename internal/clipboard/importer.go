package clipboard

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-blockmark/internal/logging"
	"github.com/goliatone/go-blockmark/internal/markup"
	"github.com/goliatone/go-blockmark/pkg/interfaces"
)

// Detector names, listed from highest to lowest priority.
const (
	DetectorHTML = "html"
	DetectorTSV  = "tsv"
	DetectorCSV  = "csv"
	DetectorPipe = "pipe"
)

// Detector recognises one clipboard table format. Accepts is a cheap
// precondition checked before Detect does the full parse.
type Detector interface {
	Name() string
	Accepts(payload interfaces.ClipboardPayload) bool
	Detect(payload interfaces.ClipboardPayload) (interfaces.TableData, bool)
}

// DefaultDetectors returns the full chain in priority order.
func DefaultDetectors() []Detector {
	return []Detector{
		HTMLDetector{},
		TSVDetector{},
		CSVDetector{},
		PipeDetector{},
	}
}

// Config selects which detectors run. An empty list enables all of them.
// Detectors always run in priority order regardless of the order listed.
type Config struct {
	Detectors []string
}

// Importer runs the detector chain and returns the first match.
type Importer struct {
	detectors []Detector
	logger    interfaces.Logger
}

var _ interfaces.TableImporter = (*Importer)(nil)

// Option customises an Importer.
type Option func(*Importer)

// WithLogger sets the logger used to trace detector attempts.
func WithLogger(logger interfaces.Logger) Option {
	return func(i *Importer) {
		if logger == nil {
			logger = logging.NoOp()
		}
		i.logger = logger
	}
}

// NewImporter builds an importer from configuration.
func NewImporter(cfg Config, opts ...Option) (*Importer, error) {
	detectors, err := resolveDetectors(cfg.Detectors)
	if err != nil {
		return nil, err
	}
	importer := &Importer{
		detectors: detectors,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(importer)
	}
	return importer, nil
}

// Default returns an importer with every detector enabled and no logging.
func Default() *Importer {
	return &Importer{
		detectors: DefaultDetectors(),
		logger:    logging.NoOp(),
	}
}

// DetectorNames lists the enabled detectors in the order they run.
func (i *Importer) DetectorNames() []string {
	names := make([]string, 0, len(i.detectors))
	for _, detector := range i.detectors {
		names = append(names, detector.Name())
	}
	return names
}

func resolveDetectors(names []string) ([]Detector, error) {
	all := DefaultDetectors()
	if len(names) == 0 {
		return all, nil
	}

	enabled := map[string]bool{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if !isDetectorName(key) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDetector, name)
		}
		enabled[key] = true
	}

	selected := make([]Detector, 0, len(enabled))
	for _, detector := range all {
		if enabled[detector.Name()] {
			selected = append(selected, detector)
		}
	}
	return selected, nil
}

func isDetectorName(name string) bool {
	switch name {
	case DetectorHTML, DetectorTSV, DetectorCSV, DetectorPipe:
		return true
	default:
		return false
	}
}

// ImportTable tries each detector in priority order. On success the result
// carries the normalized table and its ":::table" text ready to splice into
// the editor. Failures are reported in the result, never panicked.
func (i *Importer) ImportTable(payload interfaces.ClipboardPayload) interfaces.TableImportResult {
	attempted := make([]string, 0, len(i.detectors))
	for _, detector := range i.detectors {
		logger := logging.WithDetector(i.logger, detector.Name())
		if !detector.Accepts(payload) {
			logger.Trace("clipboard.detector.skipped")
			continue
		}
		attempted = append(attempted, detector.Name())

		table, ok := detector.Detect(payload)
		if !ok {
			logger.Debug("clipboard.detector.rejected")
			continue
		}

		logger.Debug("clipboard.detector.matched",
			"columns", len(table.Headers),
			"rows", len(table.Rows),
		)
		return interfaces.TableImportResult{
			Success:  true,
			Detector: detector.Name(),
			Table:    &table,
			Text:     markup.SerializeTable(table.Headers, table.Rows),
		}
	}

	err := noTableError()
	i.logger.Info("clipboard.import.failed", "attempted", strings.Join(attempted, ","))
	return interfaces.TableImportResult{
		Success: false,
		Error:   NoTableMessage,
		Err:     err,
	}
}
