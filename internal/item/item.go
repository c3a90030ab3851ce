package item

// Item is a single candidate line. Implementations must be safe to share
// across goroutines; the pool, matcher, and CLI all hold references to the
// same value.
type Item interface {
	// Text returns the string the matcher scores and the CLI prints.
	Text() string
}

// Line is the plain-text Item produced by collectors. The index records
// the emission position within one ingestion run.
type Line struct {
	text  string
	index uint32
}

// NewLine wraps a raw text line together with its emission index.
func NewLine(text string, index uint32) Line {
	return Line{text: text, index: index}
}

// Text implements Item.
func (l Line) Text() string { return l.text }

// Index returns the emission position assigned by the collector.
func (l Line) Index() uint32 { return l.index }

// Range marks the matched span within an item's text, in rune positions.
// End is exclusive.
type Range struct {
	Start int
	End   int
}
