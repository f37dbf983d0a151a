package ui

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/paperhub/pkg/model"
)

// truncateRunesHelper truncates a string to max visual width (cells), adding suffix if needed.
// Uses go-runewidth to handle wide characters correctly.
func truncateRunesHelper(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}

	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}

	targetWidth := maxWidth - suffixWidth
	return runewidth.Truncate(s, targetWidth, "") + suffix
}

// padRight pads string s with spaces on the right to visual width.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate truncates string s to maxWidth cells
func truncate(s string, maxWidth int) string {
	return truncateRunesHelper(s, maxWidth, "…")
}

// formatPublished renders a paper's date for cards, falling back to the raw
// string when it cannot be parsed.
func formatPublished(p model.Paper) string {
	t := p.Published()
	if t.IsZero() {
		if p.PublishedDate == "" {
			return "undated"
		}
		return p.PublishedDate
	}
	return t.Format("Jan 2, 2006")
}

// clampInt bounds v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// frameInterval is the tick period of mindmap transitions.
const frameInterval = 16 * time.Millisecond
