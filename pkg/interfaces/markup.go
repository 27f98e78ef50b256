package interfaces

// DocumentParser converts markup text into a Document. Implementations must
// be total: malformed or half-typed input yields a (possibly empty) document,
// never an error.
type DocumentParser interface {
	ParseDocument(text string) Document
	ParseWithDiagnostics(text string) (Document, []Diagnostic)
}

// DocumentSerializer renders a Document back into markup text.
type DocumentSerializer interface {
	SerializeDocument(doc Document) string
	SerializeBlock(block ContentBlock) string
}

// DocumentValidator reports structural defects as human readable messages.
// An empty result means no defects were found.
type DocumentValidator interface {
	ValidateDocument(doc Document) []string
}

// TableImporter turns pasted clipboard data into a table.
type TableImporter interface {
	ImportTable(payload ClipboardPayload) TableImportResult
}

// DocumentCodec moves a Document across the persistence boundary as JSON.
type DocumentCodec interface {
	Encode(doc Document) ([]byte, error)
	Decode(data []byte) (Document, error)
}

// Severity grades a parse diagnostic.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Diagnostic describes a construct the parser skipped or repaired. Line and
// Column are 1-based and point at the start of the offending construct.
type Diagnostic struct {
	Severity  Severity `json:"severity"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
	BlockType string   `json:"block_type,omitempty"`
	Message   string   `json:"message"`
}

// ClipboardPayload is what a paste event hands to the importer. Either field
// may be empty.
type ClipboardPayload struct {
	HTML string `json:"html,omitempty"`
	Text string `json:"text,omitempty"`
}

// TableData is a normalized header row plus data rows.
type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// TableImportResult reports the outcome of a clipboard import. On success
// Table and Text are set and Detector names the format that matched; on
// failure Error carries a user facing message and Err the categorized error.
type TableImportResult struct {
	Success  bool       `json:"success"`
	Detector string     `json:"detector,omitempty"`
	Table    *TableData `json:"table,omitempty"`
	Text     string     `json:"text,omitempty"`
	Error    string     `json:"error,omitempty"`
	Err      error      `json:"-"`
}
