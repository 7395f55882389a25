package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/geotodo/internal/model"
)

func TestApply(t *testing.T) {
	orig := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(orig) })

	Apply(model.ThemeLight)
	if lipgloss.HasDarkBackground() {
		t.Error("light theme left a dark background")
	}

	Apply(model.ThemeDark)
	if !lipgloss.HasDarkBackground() {
		t.Error("dark theme did not set a dark background")
	}

	Apply(model.ThemeDefault)
	if !lipgloss.HasDarkBackground() {
		t.Error("default theme changed the background")
	}
}
