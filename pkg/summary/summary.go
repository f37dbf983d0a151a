// Package summary cleans the generated summary blobs stored with each paper
// and extracts their short or long section.
package summary

import (
	"regexp"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Kind selects which labeled section Clean extracts.
type Kind int

const (
	Short Kind = iota
	Long
)

func (k Kind) String() string {
	if k == Long {
		return "long"
	}
	return "short"
}

// ParseKind maps "short"/"long" to a Kind. Anything else is Short.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), "long") {
		return Long
	}
	return Short
}

// Boilerplate is the preamble the summarizer prepends to its output.
const Boilerplate = "Here are the summaries based on the provided abstract:"

const (
	strongOpen  = "<strong>"
	strongClose = "</strong>"
)

var (
	headingRe = regexp.MustCompile(`(?m)^[ \t]*#+[ \t]*`)
	shortRe   = regexp.MustCompile(`(?s)Short Summary:(.*?)(Long Summary:|$)`)
	longRe    = regexp.MustCompile(`(?s)Long Summary:(.*)`)
)

// Clean strips the boilerplate preamble, markdown heading and bold markers,
// then extracts the requested section.
//
// The short section comes back trimmed and prefixed with a bold label. The
// long section is returned exactly as captured, leading space included. When
// the label is missing the whole trimmed text is returned.
func Clean(raw string, kind Kind) string {
	text := strings.ReplaceAll(raw, Boilerplate, "")
	text = headingRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "**", "")

	switch kind {
	case Long:
		if m := longRe.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	default:
		if m := shortRe.FindStringSubmatch(text); m != nil {
			return strongOpen + "Short Summary:" + strongClose + " " + strings.TrimSpace(m[1])
		}
	}
	return strings.TrimSpace(text)
}

// Segment is a run of cleaned text, either plain or bold.
type Segment struct {
	Text   string
	Strong bool
}

// Segments splits cleaned text on <strong> markup so callers can style the
// bold runs themselves. Unbalanced tags leave the rest of the text bold.
func Segments(s string) []Segment {
	var out []Segment
	for s != "" {
		i := strings.Index(s, strongOpen)
		if i < 0 {
			out = append(out, Segment{Text: s})
			break
		}
		if i > 0 {
			out = append(out, Segment{Text: s[:i]})
		}
		s = s[i+len(strongOpen):]
		j := strings.Index(s, strongClose)
		if j < 0 {
			out = append(out, Segment{Text: s, Strong: true})
			break
		}
		if j > 0 {
			out = append(out, Segment{Text: s[:j], Strong: true})
		}
		s = s[j+len(strongClose):]
	}
	return out
}

// Plain drops the <strong> markup.
func Plain(s string) string {
	var b strings.Builder
	for _, seg := range Segments(s) {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Snippet cleans raw as a short summary, drops the markup and the label, and
// word-wraps the result to width. A width of zero or less disables wrapping.
func Snippet(raw string, width int) string {
	text := Plain(Clean(raw, Short))
	text = strings.TrimSpace(strings.TrimPrefix(text, "Short Summary:"))
	text = strings.Join(strings.Fields(text), " ")
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}
