package mathbox

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// TermStyle describes a terminal style as an ANSI prefix sequence.
type TermStyle struct {
	Prefix string
}

// Styles groups the styles used when dumping trees. Atom styles apply to
// boxes by their outer class.
type Styles struct {
	Ord       TermStyle
	Op        TermStyle
	Bin       TermStyle
	Rel       TermStyle
	Open      TermStyle
	Close     TermStyle
	Punct     TermStyle
	Inner     TermStyle
	Space     TermStyle
	Rule      TermStyle
	Structure TermStyle
	Class     TermStyle
	Dims      TermStyle
	Link      TermStyle
	Error     TermStyle
}

// ForClass returns the style of an atom class; structure for anything
// else.
func (s Styles) ForClass(class string) TermStyle {
	switch class {
	case "mord":
		return s.Ord
	case "mop":
		return s.Op
	case "mbin":
		return s.Bin
	case "mrel":
		return s.Rel
	case "mopen":
		return s.Open
	case "mclose":
		return s.Close
	case "mpunct":
		return s.Punct
	case "minner":
		return s.Inner
	}
	return s.Structure
}

// Theme provides named styles for tree dumps.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

const (
	sgrReset     = "\x1b[0m"
	sgrBold      = "\x1b[1m"
	sgrDim       = "\x1b[2m"
	sgrItalic    = "\x1b[3m"
	sgrUnderline = "\x1b[4m"
)

func style(prefixes ...string) TermStyle {
	var b strings.Builder
	for _, p := range prefixes {
		if p != "" {
			b.WriteString(p)
		}
	}
	return TermStyle{Prefix: b.String()}
}

// fg returns a 24-bit foreground sequence for a #rrggbb color. Anything
// ResolveColor rejects yields no sequence.
func fg(color string) string {
	hex, ok := ResolveColor(color)
	if !ok {
		return ""
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", v>>16&0xff, v>>8&0xff, v&0xff)
}

type palette struct {
	ord, op, bin, rel, delim, punct, inner string
	space, rule, structure, class, dims    string
	link, err                              string
}

func stylesFromPalette(p palette) Styles {
	return Styles{
		Ord:       style(fg(p.ord)),
		Op:        style(sgrBold, fg(p.op)),
		Bin:       style(fg(p.bin)),
		Rel:       style(fg(p.rel)),
		Open:      style(fg(p.delim)),
		Close:     style(fg(p.delim)),
		Punct:     style(fg(p.punct)),
		Inner:     style(fg(p.inner)),
		Space:     style(sgrDim, fg(p.space)),
		Rule:      style(fg(p.rule)),
		Structure: style(sgrBold, fg(p.structure)),
		Class:     style(sgrItalic, fg(p.class)),
		Dims:      style(sgrDim, fg(p.dims)),
		Link:      style(sgrUnderline, fg(p.link)),
		Error:     style(sgrBold, fg(p.err)),
	}
}

var (
	paletteDefault = palette{
		ord: "#e0e0e0", op: "#5fafff", bin: "#ffaf5f", rel: "#87d787", delim: "#d7afff",
		punct: "#bcbcbc", inner: "#87d7d7", space: "#6c6c6c", rule: "#ffd75f",
		structure: "#5fd7ff", class: "#af87d7", dims: "#808080", link: "#5fafd7", err: "#ff5f5f",
	}
	paletteGruvbox = palette{
		ord: "#ebdbb2", op: "#83a598", bin: "#fe8019", rel: "#b8bb26", delim: "#d3869b",
		punct: "#a89984", inner: "#8ec07c", space: "#665c54", rule: "#fabd2f",
		structure: "#fabd2f", class: "#d3869b", dims: "#928374", link: "#83a598", err: "#fb4934",
	}
	paletteDracula = palette{
		ord: "#f8f8f2", op: "#8be9fd", bin: "#ffb86c", rel: "#50fa7b", delim: "#ff79c6",
		punct: "#bfbfbf", inner: "#8be9fd", space: "#6272a4", rule: "#f1fa8c",
		structure: "#bd93f9", class: "#ff79c6", dims: "#6272a4", link: "#8be9fd", err: "#ff5555",
	}
	paletteNord = palette{
		ord: "#d8dee9", op: "#88c0d0", bin: "#d08770", rel: "#a3be8c", delim: "#b48ead",
		punct: "#b1b9c6", inner: "#8fbcbb", space: "#4c566a", rule: "#ebcb8b",
		structure: "#81a1c1", class: "#b48ead", dims: "#616e88", link: "#88c0d0", err: "#bf616a",
	}
	paletteTokyoNight = palette{
		ord: "#c0caf5", op: "#7aa2f7", bin: "#ff9e64", rel: "#9ece6a", delim: "#bb9af7",
		punct: "#a9b1d6", inner: "#7dcfff", space: "#565f89", rule: "#e0af68",
		structure: "#7dcfff", class: "#bb9af7", dims: "#565f89", link: "#7aa2f7", err: "#f7768e",
	}
	paletteCatppuccinMocha = palette{
		ord: "#cdd6f4", op: "#89b4fa", bin: "#fab387", rel: "#a6e3a1", delim: "#cba6f7",
		punct: "#bac2de", inner: "#94e2d5", space: "#585b70", rule: "#f9e2af",
		structure: "#89dceb", class: "#f5c2e7", dims: "#6c7086", link: "#89b4fa", err: "#f38ba8",
	}
	paletteOneDark = palette{
		ord: "#abb2bf", op: "#61afef", bin: "#d19a66", rel: "#98c379", delim: "#c678dd",
		punct: "#9da5b4", inner: "#56b6c2", space: "#5c6370", rule: "#e5c07b",
		structure: "#56b6c2", class: "#c678dd", dims: "#5c6370", link: "#61afef", err: "#e06c75",
	}
	paletteSolarizedDark = palette{
		ord: "#93a1a1", op: "#268bd2", bin: "#cb4b16", rel: "#859900", delim: "#d33682",
		punct: "#839496", inner: "#2aa198", space: "#586e75", rule: "#b58900",
		structure: "#2aa198", class: "#6c71c4", dims: "#586e75", link: "#268bd2", err: "#dc322f",
	}
	paletteSolarizedLight = palette{
		ord: "#586e75", op: "#268bd2", bin: "#cb4b16", rel: "#859900", delim: "#d33682",
		punct: "#657b83", inner: "#2aa198", space: "#93a1a1", rule: "#b58900",
		structure: "#2aa198", class: "#6c71c4", dims: "#93a1a1", link: "#268bd2", err: "#dc322f",
	}
	paletteGithubLight = palette{
		ord: "#24292f", op: "#0550ae", bin: "#953800", rel: "#116329", delim: "#8250df",
		punct: "#57606a", inner: "#0a3069", space: "#8c959f", rule: "#7d4e00",
		structure: "#0550ae", class: "#8250df", dims: "#6e7781", link: "#0969da", err: "#cf222e",
	}
	paletteGithubDark = palette{
		ord: "#c9d1d9", op: "#79c0ff", bin: "#ffa657", rel: "#7ee787", delim: "#d2a8ff",
		punct: "#8b949e", inner: "#a5d6ff", space: "#484f58", rule: "#e3b341",
		structure: "#79c0ff", class: "#d2a8ff", dims: "#6e7681", link: "#58a6ff", err: "#ff7b72",
	}
	paletteRosePine = palette{
		ord: "#e0def4", op: "#9ccfd8", bin: "#f6c177", rel: "#31748f", delim: "#c4a7e7",
		punct: "#908caa", inner: "#ebbcba", space: "#6e6a86", rule: "#f6c177",
		structure: "#9ccfd8", class: "#c4a7e7", dims: "#6e6a86", link: "#9ccfd8", err: "#eb6f92",
	}
)

var builtinThemes = map[string]Theme{
	"default":          theme{name: "default", styles: stylesFromPalette(paletteDefault)},
	"gruvbox":          theme{name: "gruvbox", styles: stylesFromPalette(paletteGruvbox)},
	"dracula":          theme{name: "dracula", styles: stylesFromPalette(paletteDracula)},
	"nord":             theme{name: "nord", styles: stylesFromPalette(paletteNord)},
	"tokyo-night":      theme{name: "tokyo-night", styles: stylesFromPalette(paletteTokyoNight)},
	"catppuccin-mocha": theme{name: "catppuccin-mocha", styles: stylesFromPalette(paletteCatppuccinMocha)},
	"one-dark":         theme{name: "one-dark", styles: stylesFromPalette(paletteOneDark)},
	"solarized-dark":   theme{name: "solarized-dark", styles: stylesFromPalette(paletteSolarizedDark)},
	"solarized-light":  theme{name: "solarized-light", styles: stylesFromPalette(paletteSolarizedLight)},
	"github-light":     theme{name: "github-light", styles: stylesFromPalette(paletteGithubLight)},
	"github-dark":      theme{name: "github-dark", styles: stylesFromPalette(paletteGithubDark)},
	"rose-pine":        theme{name: "rose-pine", styles: stylesFromPalette(paletteRosePine)},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	return slices.Sorted(maps.Keys(builtinThemes))
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// PlainTheme returns a theme without any escape sequences.
func PlainTheme() Theme {
	return NewTheme("plain", Styles{})
}
