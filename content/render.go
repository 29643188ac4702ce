// Package content turns a post body written in a small markdown-like
// format into typed fragments, one per source line.
//
// Lines are classified independently. There is no block state: the lines
// between two fences are ordinary lines, and only lines that carry a fence
// marker become code blocks.
package content

import (
	"regexp"
	"strings"
	"unicode"
)

const fence = "```"

var (
	reOrderedItem = regexp.MustCompile(`^\d+\. `)
	reFenceLang   = regexp.MustCompile("```\\w*")
	reInlineCode  = regexp.MustCompile("`([^`]+)`")
)

// Render classifies every line of text and returns one fragment per line,
// in input order. It never fails.
func Render(text string) []Fragment {
	lines := strings.Split(text, "\n")
	out := make([]Fragment, len(lines))
	for i, raw := range lines {
		out[i] = RenderLine(i, strings.TrimSuffix(raw, "\r"))
	}
	return out
}

// RenderLine classifies a single line. The index is only carried into the
// fragment for identification.
func RenderLine(index int, line string) Fragment {
	f := Fragment{Line: index}
	switch {
	case strings.HasPrefix(line, "### "):
		f.Kind, f.Text = KindHeading3, line[4:]
	case strings.HasPrefix(line, "## "):
		f.Kind, f.Text = KindHeading2, line[3:]
	case strings.HasPrefix(line, "# "):
		f.Kind, f.Text = KindHeading1, line[2:]
	case strings.HasPrefix(line, "> "):
		f.Kind, f.Text = KindBlockquote, line[2:]
	case strings.HasPrefix(line, "- "):
		f.Kind, f.Text = KindListItem, line[2:]
	case reOrderedItem.MatchString(line):
		f.Kind, f.Text = KindOrderedItem, line[len(reOrderedItem.FindString(line)):]
	case strings.Contains(line, fence):
		if line == fence {
			f.Kind = KindEmpty
			return f
		}
		f.Kind, f.Text = KindCodeBlock, stripFence(line)
	case strings.Contains(line, "`"):
		if isBlank(line) {
			f.Kind = KindLineBreak
			return f
		}
		f.Kind, f.Text, f.Spans = KindParagraph, line, splitInlineCode(line)
	case isBlank(line):
		f.Kind = KindLineBreak
	default:
		f.Kind, f.Text = KindParagraph, line
	}
	return f
}

// isBlank reports whether line holds only whitespace. The byte order mark
// counts as whitespace and NEL does not, so a BOM-only line is a line break.
func isBlank(line string) bool {
	return strings.IndexFunc(line, func(r rune) bool {
		return !isSpace(r)
	}) < 0
}

func isSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// stripFence removes the first fence marker together with the language tag
// glued to it.
func stripFence(line string) string {
	loc := reFenceLang.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[:loc[0]] + line[loc[1]:]
}

// splitInlineCode breaks a line into plain and code spans. Unpaired
// backticks stay in the plain text.
func splitInlineCode(line string) []Span {
	matches := reInlineCode.FindAllStringSubmatchIndex(line, -1)
	spans := make([]Span, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			spans = append(spans, Span{Text: line[last:m[0]]})
		}
		spans = append(spans, Span{Text: line[m[2]:m[3]], Code: true})
		last = m[1]
	}
	if last < len(line) {
		spans = append(spans, Span{Text: line[last:]})
	}
	return spans
}

// PlainText joins the visible text of a fragment, dropping code markers.
func (f Fragment) PlainText() string {
	if f.Spans == nil {
		return f.Text
	}
	var b strings.Builder
	for _, s := range f.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
