package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/paperhub/pkg/summary"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Entity categories produced by the summarizer
	ColorEntityDataset     = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorEntityModel       = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorEntityMethod      = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorEntityTool        = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorEntityInstitution = lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"}

	ColorTagText = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
)

// RenderEntityTag renders an entity as a colored tag labeled by category,
// e.g. " BERT · Model ".
func RenderEntityTag(t Theme, entity, category string) string {
	label := entity
	if category != "" {
		label += " · " + category
	}
	return t.Renderer.NewStyle().
		Foreground(ColorTagText).
		Background(t.EntityColor(category)).
		Padding(0, 1).
		Render(label)
}

// RenderFact renders a "type: value" line.
func RenderFact(t Theme, typ, value string) string {
	return t.PrimaryBold.Render(typ+":") + " " + t.Base.Render(value)
}

// RenderStrong renders cleaned summary text, styling its <strong> runs bold.
func RenderStrong(t Theme, text string) string {
	var sb strings.Builder
	for _, seg := range summary.Segments(text) {
		if seg.Strong {
			sb.WriteString(t.Strong.Render(seg.Text))
		} else {
			sb.WriteString(t.Base.Render(seg.Text))
		}
	}
	return sb.String()
}

// RenderDivider renders a horizontal divider line
func RenderDivider(t Theme, width int) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
