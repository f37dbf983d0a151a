package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func isColorEmpty(c lipgloss.AdaptiveColor) bool {
	return c.Light == "" && c.Dark == ""
}

func TestDefaultTheme(t *testing.T) {
	renderer := lipgloss.NewRenderer(nil)
	theme := DefaultTheme(renderer)

	if theme.Renderer != renderer {
		t.Error("DefaultTheme renderer mismatch")
	}
	if isColorEmpty(theme.Primary) || isColorEmpty(theme.Danger) {
		t.Error("DefaultTheme colors are empty")
	}
}

func TestThemeFollowsBackground(t *testing.T) {
	r := lipgloss.NewRenderer(nil)
	r.SetHasDarkBackground(true)
	if !DefaultTheme(r).Dark {
		t.Error("dark renderer should give a dark theme")
	}
	r.SetHasDarkBackground(false)
	if DefaultTheme(r).Dark {
		t.Error("light renderer should give a light theme")
	}
}

func TestEntityColor(t *testing.T) {
	theme := testTheme()
	tests := []struct {
		category string
		want     lipgloss.AdaptiveColor
	}{
		{"Dataset", ColorEntityDataset},
		{"Model", ColorEntityModel},
		{"Method", ColorEntityMethod},
		{"Tool", ColorEntityTool},
		{"Institution", ColorEntityInstitution},
		{"Other", theme.Secondary},
		{"", theme.Secondary},
	}
	for _, tt := range tests {
		if got := theme.EntityColor(tt.category); got != tt.want {
			t.Errorf("EntityColor(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestRenderEntityTag(t *testing.T) {
	theme := testTheme()
	if got := stripANSI(RenderEntityTag(theme, "BERT", "Model")); strings.TrimSpace(got) != "BERT · Model" {
		t.Errorf("tag = %q", got)
	}
	if got := stripANSI(RenderEntityTag(theme, "MIT", "")); strings.TrimSpace(got) != "MIT" {
		t.Errorf("uncategorised tag = %q", got)
	}
}

func TestRenderStrong(t *testing.T) {
	got := stripANSI(RenderStrong(testTheme(), "<strong>Short Summary:</strong> a finding"))
	if got != "Short Summary: a finding" {
		t.Errorf("RenderStrong = %q", got)
	}
}

func TestRenderDivider(t *testing.T) {
	theme := testTheme()
	if RenderDivider(theme, 0) != "" {
		t.Error("zero width divider should be empty")
	}
	if got := stripANSI(RenderDivider(theme, 3)); got != "───" {
		t.Errorf("divider = %q", got)
	}
}
