package interfaces

// BlockType names one of the seven block kinds understood by the markup
// grammar. The string value is the word written after the ":::" fence.
type BlockType string

const (
	BlockText     BlockType = "text"
	BlockTips     BlockType = "tips"
	BlockNotes    BlockType = "notes"
	BlockTimeline BlockType = "timeline"
	BlockImage    BlockType = "image"
	BlockGallery  BlockType = "gallery"
	BlockTable    BlockType = "table"
)

// BlockTypes lists every supported block kind in grammar order.
func BlockTypes() []BlockType {
	return []BlockType{
		BlockText,
		BlockTips,
		BlockNotes,
		BlockTimeline,
		BlockImage,
		BlockGallery,
		BlockTable,
	}
}

// IsValid reports whether the block type is part of the grammar.
func (t BlockType) IsValid() bool {
	switch t {
	case BlockText, BlockTips, BlockNotes, BlockTimeline, BlockImage, BlockGallery, BlockTable:
		return true
	default:
		return false
	}
}

// ContentBlock is the closed set of block variants produced by the parser.
// Only types declared in this package satisfy it; callers switch on the
// concrete type to handle each variant.
type ContentBlock interface {
	BlockID() string
	Type() BlockType
	contentBlock()
}

// Document is an ordered list of blocks. Order is the rendering order.
type Document []ContentBlock

// TextBlock carries a literal body. Inline emphasis is left untouched.
type TextBlock struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Heading string `json:"heading,omitempty"`
}

// TipsBlock holds a flat list of tips.
type TipsBlock struct {
	ID    string   `json:"id"`
	Title string   `json:"title,omitempty"`
	Tips  []string `json:"tips"`
}

// NotesBlock holds a flat list of notes.
type NotesBlock struct {
	ID    string   `json:"id"`
	Title string   `json:"title,omitempty"`
	Notes []string `json:"notes"`
}

// TimelineBlock is an ordered list of itinerary steps.
type TimelineBlock struct {
	ID    string          `json:"id"`
	Title string          `json:"title,omitempty"`
	Steps []ItineraryStep `json:"steps"`
}

// ItineraryStep is one leg of a timeline. Tips and Notes are nil when the
// step never opened the matching sub-section, and non-nil (possibly empty)
// once it did. The JSON form keeps that distinction as null versus [].
type ItineraryStep struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Details []string `json:"details"`
	Tips    []string `json:"tips"`
	Notes   []string `json:"notes"`
}

// ImageBlock references a single image.
type ImageBlock struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Alt     string `json:"alt,omitempty"`
}

// GalleryImage is one entry of an ImageGalleryBlock.
type GalleryImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Alt     string `json:"alt,omitempty"`
}

// ImageGalleryBlock groups several images under an optional title.
type ImageGalleryBlock struct {
	ID     string         `json:"id"`
	Title  string         `json:"title,omitempty"`
	Images []GalleryImage `json:"images"`
}

// TableBlock is a header row plus data rows. Rows are not forced to match
// the header width at parse time.
type TableBlock struct {
	ID      string     `json:"id"`
	Title   string     `json:"title,omitempty"`
	Caption string     `json:"caption,omitempty"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

var (
	_ ContentBlock = (*TextBlock)(nil)
	_ ContentBlock = (*TipsBlock)(nil)
	_ ContentBlock = (*NotesBlock)(nil)
	_ ContentBlock = (*TimelineBlock)(nil)
	_ ContentBlock = (*ImageBlock)(nil)
	_ ContentBlock = (*ImageGalleryBlock)(nil)
	_ ContentBlock = (*TableBlock)(nil)
)

func (b *TextBlock) BlockID() string         { return b.ID }
func (b *TipsBlock) BlockID() string         { return b.ID }
func (b *NotesBlock) BlockID() string        { return b.ID }
func (b *TimelineBlock) BlockID() string     { return b.ID }
func (b *ImageBlock) BlockID() string        { return b.ID }
func (b *ImageGalleryBlock) BlockID() string { return b.ID }
func (b *TableBlock) BlockID() string        { return b.ID }

func (*TextBlock) Type() BlockType         { return BlockText }
func (*TipsBlock) Type() BlockType         { return BlockTips }
func (*NotesBlock) Type() BlockType        { return BlockNotes }
func (*TimelineBlock) Type() BlockType     { return BlockTimeline }
func (*ImageBlock) Type() BlockType        { return BlockImage }
func (*ImageGalleryBlock) Type() BlockType { return BlockGallery }
func (*TableBlock) Type() BlockType        { return BlockTable }

func (*TextBlock) contentBlock()         {}
func (*TipsBlock) contentBlock()         {}
func (*NotesBlock) contentBlock()        {}
func (*TimelineBlock) contentBlock()     {}
func (*ImageBlock) contentBlock()        {}
func (*ImageGalleryBlock) contentBlock() {}
func (*TableBlock) contentBlock()        {}
