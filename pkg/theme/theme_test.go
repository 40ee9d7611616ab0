package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want Palette
	}{
		{
			name: "light",
			cfg:  Config{IsDark: false},
			want: Palette{"#FFFFFF", "#000000", "#E0E0E0", "#000000"},
		},
		{
			name: "dark",
			cfg:  Config{IsDark: true},
			want: Palette{"#2E2E2E", "#FFFFFF", "#4A4A4A", "#FFFFFF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.cfg); got != tt.want {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// colors reduces a style set to comparable color assignments.
func colors(s Styles) []lipgloss.TerminalColor {
	var out []lipgloss.TerminalColor
	for _, st := range []lipgloss.Style{
		s.Window, s.Label, s.Input, s.InputPrompt, s.Button, s.ButtonFocused,
		s.Checkbox, s.CheckboxFocused, s.Status, s.Error, s.Help,
		s.ChartFace, s.ChartTick, s.ChartSpine, s.ChartAxisLabel, s.ChartTitle,
		s.ChartLine, s.Tooltip,
	} {
		out = append(out, st.GetBackground(), st.GetForeground())
	}
	return out
}

func equalColors(a, b []lipgloss.TerminalColor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_Idempotent(t *testing.T) {
	for _, cfg := range []Config{{IsDark: false}, {IsDark: true}} {
		once := For(cfg)
		twice := Apply(once.Palette)
		if once.Palette != twice.Palette {
			t.Errorf("%s: palette changed on reapply", cfg.Name())
		}
		if !equalColors(colors(once), colors(twice)) {
			t.Errorf("%s: style colors changed on reapply", cfg.Name())
		}
	}
}

func TestToggleTwice_RestoresLight(t *testing.T) {
	start := Config{}
	original := For(start)

	cfg := start.Toggled()
	if For(cfg).Palette != dark {
		t.Fatalf("first toggle should select dark palette")
	}
	cfg = cfg.Toggled()

	restored := For(cfg)
	if restored.Palette != original.Palette {
		t.Errorf("palette = %+v, want %+v", restored.Palette, original.Palette)
	}
	if !equalColors(colors(original), colors(restored)) {
		t.Error("style colors differ after toggling twice")
	}
}

func TestApply_ChartSurfacesUsePalette(t *testing.T) {
	s := For(Config{IsDark: true})

	if s.ChartFace.GetBackground() != dark.Background {
		t.Errorf("chart face background = %v, want %v", s.ChartFace.GetBackground(), dark.Background)
	}
	if s.ChartTick.GetForeground() != dark.Foreground {
		t.Errorf("tick color = %v, want %v", s.ChartTick.GetForeground(), dark.Foreground)
	}
	if s.ChartSpine.GetForeground() != dark.Foreground {
		t.Errorf("spine color = %v, want %v", s.ChartSpine.GetForeground(), dark.Foreground)
	}
	if s.Button.GetBackground() != dark.ButtonBackground {
		t.Errorf("button background = %v, want %v", s.Button.GetBackground(), dark.ButtonBackground)
	}
}

func TestConfigName(t *testing.T) {
	if (Config{}).Name() != "light" {
		t.Error("zero Config should be light")
	}
	if (Config{IsDark: true}).Name() != "dark" {
		t.Error("IsDark Config should be dark")
	}
}
