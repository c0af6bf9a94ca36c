package mathbox

import (
	"strings"
	"testing"
)

func TestThemeByName(t *testing.T) {
	expected := []string{
		"default",
		"gruvbox",
		"dracula",
		"nord",
		"tokyo-night",
		"catppuccin-mocha",
		"one-dark",
		"solarized-dark",
		"solarized-light",
		"github-light",
		"github-dark",
		"rose-pine",
	}
	for _, name := range expected {
		if _, ok := ThemeByName(name); !ok {
			t.Fatalf("expected theme %q to be available", name)
		}
	}

	available := AvailableThemes()
	present := make(map[string]struct{}, len(available))
	for _, name := range available {
		present[name] = struct{}{}
	}
	for _, name := range expected {
		if _, ok := present[name]; !ok {
			t.Fatalf("expected theme %q in available list", name)
		}
	}
	if theme, ok := ThemeByName("  Nord "); !ok || theme.Name() != "nord" {
		t.Fatalf("expected normalized lookup to find nord")
	}
	if theme, ok := ThemeByName(""); !ok || theme.Name() != "default" {
		t.Fatalf("expected empty name to select default")
	}
	if _, ok := ThemeByName("no-such-theme"); ok {
		t.Fatalf("expected unknown theme to be rejected")
	}
}

func TestThemeStylesUseTrueColor(t *testing.T) {
	styles := DefaultTheme().Styles()
	if !strings.HasPrefix(styles.Ord.Prefix, "\x1b[38;2;") {
		t.Fatalf("expected 24-bit ord style, got %q", styles.Ord.Prefix)
	}
	if styles.ForClass("mbin") != styles.Bin || styles.ForClass("mrel") != styles.Rel {
		t.Fatalf("expected atom classes to map to their styles")
	}
	if styles.ForClass("vlist") != styles.Structure {
		t.Fatalf("expected non-atom classes to use the structure style")
	}
}

func TestForegroundSequence(t *testing.T) {
	if got := fg("#ff8000"); got != "\x1b[38;2;255;128;0m" {
		t.Fatalf("unexpected sequence %q", got)
	}
	if got := fg("red"); got != "\x1b[38;2;223;0;48m" {
		t.Fatalf("unexpected sequence for named color %q", got)
	}
	if got := fg("not a color"); got != "" {
		t.Fatalf("expected no sequence, got %q", got)
	}
}
