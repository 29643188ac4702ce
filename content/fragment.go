package content

import "strconv"

// Kind classifies a single rendered line.
type Kind int

const (
	KindLineBreak Kind = iota
	KindHeading1
	KindHeading2
	KindHeading3
	KindBlockquote
	KindListItem
	KindOrderedItem
	KindCodeBlock
	KindEmpty // a bare closing fence; renders nothing
	KindParagraph
)

var kindNames = [...]string{
	KindLineBreak:   "line-break",
	KindHeading1:    "heading-1",
	KindHeading2:    "heading-2",
	KindHeading3:    "heading-3",
	KindBlockquote:  "blockquote",
	KindListItem:    "list-item",
	KindOrderedItem: "ordered-item",
	KindCodeBlock:   "code-block",
	KindEmpty:       "empty",
	KindParagraph:   "paragraph",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Span is a run of paragraph text. Code spans came from a `...` pair.
type Span struct {
	Text string
	Code bool
}

// Fragment is the rendered form of one input line.
type Fragment struct {
	Line int // zero-based index of the source line
	Kind Kind
	Text string
	// Spans is set only for paragraphs that contained inline code.
	Spans []Span
}

// ID returns an identifier that is stable for a given line position.
func (f Fragment) ID() string {
	return "line-" + strconv.Itoa(f.Line)
}

// HeadingLevel returns 1-3 for heading fragments and 0 otherwise.
func (f Fragment) HeadingLevel() int {
	switch f.Kind {
	case KindHeading1:
		return 1
	case KindHeading2:
		return 2
	case KindHeading3:
		return 3
	}
	return 0
}
