package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme carries the renderer and the pre-computed styles of one color
// scheme. Dark mode is decided by the renderer's background flag, so the
// same adaptive palette serves both.
type Theme struct {
	Renderer *lipgloss.Renderer
	Dark     bool

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor

	// Styles
	Base          lipgloss.Style
	Selected      lipgloss.Style
	Header        lipgloss.Style
	Title         lipgloss.Style
	Strong        lipgloss.Style
	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	PrimaryBold   lipgloss.Style
	ErrorText     lipgloss.Style
	SuccessText   lipgloss.Style
	Link          lipgloss.Style
	Panel         lipgloss.Style
	FocusedPanel  lipgloss.Style
}

// DefaultTheme returns the Dracula-inspired theme for renderer r.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,
		Dark:     r.HasDarkBackground(),

		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Subtext:   ColorSubtext,
		Border:    ColorBgHighlight,
		Highlight: ColorBgHighlight,
		Muted:     ColorMuted,
		Danger:    ColorDanger,
		Success:   ColorSuccess,
	}

	t.Base = r.NewStyle().Foreground(ColorText)

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Title = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.Strong = r.NewStyle().Foreground(ColorText).Bold(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SecondaryText = r.NewStyle().Foreground(t.Subtext)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.ErrorText = r.NewStyle().Foreground(t.Danger).Bold(true)
	t.SuccessText = r.NewStyle().Foreground(t.Success)
	t.Link = r.NewStyle().Foreground(ColorInfo).Underline(true)

	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)
	t.FocusedPanel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary)

	return t
}

// NewTheme returns the theme for the given dark-mode preference, rendering
// to stdout.
func NewTheme(dark bool) Theme {
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetHasDarkBackground(dark)
	return DefaultTheme(r)
}

// EntityColor returns the tag color for an entity category.
func (t Theme) EntityColor(category string) lipgloss.AdaptiveColor {
	switch category {
	case "Dataset":
		return ColorEntityDataset
	case "Model":
		return ColorEntityModel
	case "Method":
		return ColorEntityMethod
	case "Tool":
		return ColorEntityTool
	case "Institution":
		return ColorEntityInstitution
	default:
		return t.Secondary
	}
}
