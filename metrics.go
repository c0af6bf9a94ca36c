package mathbox

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// GlyphMetrics are the dimensions of one glyph in ems of its font.
type GlyphMetrics struct {
	Height float64
	Depth  float64
	Italic float64
	Skew   float64
	Width  float64
}

// Metrics is the font metric lookup service consumed by layout. Glyph
// returns false when the font has no metrics for text.
type Metrics interface {
	Glyph(text, font string, mode Mode) (GlyphMetrics, bool)
}

// MetricsFunc adapts a function to Metrics.
type MetricsFunc func(text, font string, mode Mode) (GlyphMetrics, bool)

// Glyph calls f.
func (f MetricsFunc) Glyph(text, font string, mode Mode) (GlyphMetrics, bool) {
	return f(text, font, mode)
}

// FontParams are the TeX font dimensions used by layout, in absolute ems
// once returned by Options.FontMetrics.
type FontParams struct {
	Slant                float64
	XHeight              float64
	Quad                 float64
	Num1                 float64
	Num2                 float64
	Num3                 float64
	Denom1               float64
	Denom2               float64
	Sup1                 float64
	Sup2                 float64
	Sup3                 float64
	Sub1                 float64
	Sub2                 float64
	SupDrop              float64
	SubDrop              float64
	Delim1               float64
	Delim2               float64
	AxisHeight           float64
	DefaultRuleThickness float64
	BigOpSpacing1        float64
	BigOpSpacing2        float64
	BigOpSpacing3        float64
	BigOpSpacing4        float64
	BigOpSpacing5        float64
	DoubleRuleSep        float64
	ArrayRuleWidth       float64
	FboxSep              float64
	FboxRule             float64
}

func (p FontParams) scale(m float64) FontParams {
	return FontParams{
		Slant:                p.Slant,
		XHeight:              p.XHeight * m,
		Quad:                 p.Quad * m,
		Num1:                 p.Num1 * m,
		Num2:                 p.Num2 * m,
		Num3:                 p.Num3 * m,
		Denom1:               p.Denom1 * m,
		Denom2:               p.Denom2 * m,
		Sup1:                 p.Sup1 * m,
		Sup2:                 p.Sup2 * m,
		Sup3:                 p.Sup3 * m,
		Sub1:                 p.Sub1 * m,
		Sub2:                 p.Sub2 * m,
		SupDrop:              p.SupDrop * m,
		SubDrop:              p.SubDrop * m,
		Delim1:               p.Delim1 * m,
		Delim2:               p.Delim2 * m,
		AxisHeight:           p.AxisHeight * m,
		DefaultRuleThickness: p.DefaultRuleThickness * m,
		BigOpSpacing1:        p.BigOpSpacing1 * m,
		BigOpSpacing2:        p.BigOpSpacing2 * m,
		BigOpSpacing3:        p.BigOpSpacing3 * m,
		BigOpSpacing4:        p.BigOpSpacing4 * m,
		BigOpSpacing5:        p.BigOpSpacing5 * m,
		DoubleRuleSep:        p.DoubleRuleSep * m,
		ArrayRuleWidth:       p.ArrayRuleWidth * m,
		FboxSep:              p.FboxSep * m,
		FboxRule:             p.FboxRule * m,
	}
}

// ptPerEm converts TeX points to ems of the base font.
const ptPerEm = 10.0

// fontParams holds the text, script and scriptscript parameter sets, each in
// ems of its own font.
var fontParams = [3]FontParams{
	{
		Slant: 0.25, XHeight: 0.431, Quad: 1,
		Num1: 0.677, Num2: 0.394, Num3: 0.444, Denom1: 0.686, Denom2: 0.345,
		Sup1: 0.413, Sup2: 0.363, Sup3: 0.289, Sub1: 0.150, Sub2: 0.247,
		SupDrop: 0.386, SubDrop: 0.050, Delim1: 2.390, Delim2: 1.010,
		AxisHeight: 0.250, DefaultRuleThickness: 0.04,
		BigOpSpacing1: 0.111, BigOpSpacing2: 0.166, BigOpSpacing3: 0.2,
		BigOpSpacing4: 0.6, BigOpSpacing5: 0.1,
		DoubleRuleSep: 0.2, ArrayRuleWidth: 0.04, FboxSep: 0.3, FboxRule: 0.04,
	},
	{
		Slant: 0.25, XHeight: 0.431, Quad: 1.171,
		Num1: 0.732, Num2: 0.384, Num3: 0.471, Denom1: 0.752, Denom2: 0.344,
		Sup1: 0.503, Sup2: 0.431, Sup3: 0.286, Sub1: 0.143, Sub2: 0.286,
		SupDrop: 0.353, SubDrop: 0.071, Delim1: 1.700, Delim2: 1.157,
		AxisHeight: 0.250, DefaultRuleThickness: 0.049,
		BigOpSpacing1: 0.111, BigOpSpacing2: 0.166, BigOpSpacing3: 0.2,
		BigOpSpacing4: 0.611, BigOpSpacing5: 0.143,
		DoubleRuleSep: 0.2, ArrayRuleWidth: 0.04, FboxSep: 0.3, FboxRule: 0.04,
	},
	{
		Slant: 0.25, XHeight: 0.431, Quad: 1.472,
		Num1: 0.925, Num2: 0.387, Num3: 0.504, Denom1: 1.025, Denom2: 0.532,
		Sup1: 0.504, Sup2: 0.404, Sup3: 0.294, Sub1: 0.200, Sub2: 0.400,
		SupDrop: 0.494, SubDrop: 0.100, Delim1: 1.980, Delim2: 1.420,
		AxisHeight: 0.250, DefaultRuleThickness: 0.049,
		BigOpSpacing1: 0.111, BigOpSpacing2: 0.166, BigOpSpacing3: 0.2,
		BigOpSpacing4: 0.611, BigOpSpacing5: 0.143,
		DoubleRuleSep: 0.2, ArrayRuleWidth: 0.04, FboxSep: 0.3, FboxRule: 0.04,
	},
}

// Font names used by layout.
const (
	FontMainRegular   = "Main-Regular"
	FontMainBold      = "Main-Bold"
	FontMainItalic    = "Main-Italic"
	FontMathItalic    = "Math-Italic"
	FontAMSRegular    = "AMS-Regular"
	FontSize1         = "Size1-Regular"
	FontSize2         = "Size2-Regular"
	FontSize3         = "Size3-Regular"
	FontSize4         = "Size4-Regular"
	FontCaligraphic   = "Caligraphic-Regular"
	FontFraktur       = "Fraktur-Regular"
	FontScript        = "Script-Regular"
	FontSansSerif     = "SansSerif-Regular"
	FontTypewriter    = "Typewriter-Regular"
	defaultGlyphWidth = 0.5
)

// g is depth, height, italic, skew, width in the order of the tables.
func g(depth, height, italic, skew, width float64) GlyphMetrics {
	return GlyphMetrics{Height: height, Depth: depth, Italic: italic, Skew: skew, Width: width}
}

var glyphTables = map[string]map[string]GlyphMetrics{
	FontMainRegular: {
		"(": g(0.25, 0.75, 0, 0, 0.38889), ")": g(0.25, 0.75, 0, 0, 0.38889),
		"[": g(0.25, 0.75, 0, 0, 0.27778), "]": g(0.25, 0.75, 0, 0, 0.27778),
		"{": g(0.25, 0.75, 0, 0, 0.5), "}": g(0.25, 0.75, 0, 0, 0.5),
		"⟨": g(0.25, 0.75, 0, 0, 0.38889), "⟩": g(0.25, 0.75, 0, 0, 0.38889),
		"⌊": g(0.25, 0.75, 0, 0, 0.44445), "⌋": g(0.25, 0.75, 0, 0, 0.44445),
		"⌈": g(0.25, 0.75, 0, 0, 0.44445), "⌉": g(0.25, 0.75, 0, 0, 0.44445),
		"∣": g(0.25, 0.75, 0, 0, 0.27778), "∥": g(0.25, 0.75, 0, 0, 0.5),
		"/": g(0.25, 0.75, 0, 0, 0.5), "\\": g(0.25, 0.75, 0, 0, 0.5),
		"+": g(0.08333, 0.58333, 0, 0, 0.77778), "−": g(0.08333, 0.58333, 0, 0, 0.77778),
		"±": g(0.08333, 0.58333, 0, 0, 0.77778), "∓": g(0.08333, 0.58333, 0, 0, 0.77778),
		"×": g(0.08333, 0.58333, 0, 0, 0.77778), "÷": g(0.08333, 0.58333, 0, 0, 0.77778),
		"∗": g(-0.03472, 0.46528, 0, 0, 0.5), "⋅": g(-0.25, 0.25, 0, 0, 0.27778),
		"∘": g(-0.05555, 0.44445, 0, 0, 0.5), "∙": g(-0.05555, 0.44445, 0, 0, 0.5),
		"∩": g(0, 0.55556, 0, 0, 0.66667), "∪": g(0, 0.55556, 0, 0, 0.66667),
		"∨": g(0, 0.55556, 0, 0, 0.66667), "∧": g(0, 0.55556, 0, 0, 0.66667),
		"⊕": g(0.08333, 0.58333, 0, 0, 0.77778), "⊗": g(0.08333, 0.58333, 0, 0, 0.77778),
		"=": g(-0.13313, 0.36687, 0, 0, 0.77778), "<": g(0.0391, 0.5391, 0, 0, 0.77778),
		">": g(0.0391, 0.5391, 0, 0, 0.77778), ":": g(0, 0.43056, 0, 0, 0.27778),
		"≤": g(0.13597, 0.63597, 0, 0, 0.77778), "≥": g(0.13597, 0.63597, 0, 0, 0.77778),
		"≠": g(0.19444, 0.69444, 0, 0, 0.77778), "≡": g(-0.03625, 0.46375, 0, 0, 0.77778),
		"≈": g(-0.01688, 0.48312, 0, 0, 0.77778), "∼": g(-0.13313, 0.36687, 0, 0, 0.77778),
		"∈": g(0.0391, 0.5391, 0, 0, 0.66667), "∉": g(0.19444, 0.69444, 0, 0, 0.66667),
		"⊂": g(0.0391, 0.5391, 0, 0, 0.77778), "⊃": g(0.0391, 0.5391, 0, 0, 0.77778),
		"⊆": g(0.13597, 0.63597, 0, 0, 0.77778), "⊇": g(0.13597, 0.63597, 0, 0, 0.77778),
		"→": g(-0.13313, 0.36687, 0, 0, 1), "←": g(-0.13313, 0.36687, 0, 0, 1),
		"↔": g(-0.13313, 0.36687, 0, 0, 1), "⇒": g(-0.13313, 0.36687, 0, 0, 1),
		"⇐": g(-0.13313, 0.36687, 0, 0, 1), "⇔": g(-0.13313, 0.36687, 0, 0, 1),
		"⟶": g(-0.13313, 0.36687, 0, 0, 1.5), "⟵": g(-0.13313, 0.36687, 0, 0, 1.5),
		"⟹": g(-0.13313, 0.36687, 0, 0, 1.638), "↦": g(0.011, 0.511, 0, 0, 1),
		",": g(0.19444, 0.10556, 0, 0, 0.27778), ".": g(0, 0.10556, 0, 0, 0.27778),
		";": g(0.19444, 0.43056, 0, 0, 0.27778), "!": g(0, 0.69444, 0, 0, 0.27778),
		"?": g(0, 0.69444, 0, 0, 0.47222), "′": g(0, 0.55556, 0, 0, 0.275),
		"∞": g(0, 0.43056, 0, 0, 1), "∂": g(0, 0.69444, 0.05556, 0.08334, 0.5309),
		"∇": g(0, 0.68333, 0, 0, 0.83334), "∀": g(0, 0.69444, 0, 0, 0.55556),
		"∃": g(0, 0.69444, 0, 0, 0.55556), "∅": g(0.05556, 0.75, 0, 0, 0.5),
		"¬": g(0, 0.43056, 0, 0, 0.66667), "√": g(0.2, 0.8, 0, 0, 0.83334),
		"…": g(0, 0.12, 0, 0, 1.172), "⋯": g(-0.25, 0.31, 0, 0, 1.172),
		"⋮": g(0.03, 0.9, 0, 0, 0.27778), "⋱": g(0.03, 0.9, 0, 0, 1.282),
		"^": g(0, 0.69444, 0, 0, 0.5), "~": g(0, 0.66786, 0, 0, 0.5),
		"ˉ": g(0, 0.56778, 0, 0, 0.5), "˙": g(0, 0.66786, 0, 0, 0.27778),
		"¨": g(0, 0.66786, 0, 0, 0.5), "ˊ": g(0, 0.69444, 0, 0, 0.5),
		"ˋ": g(0, 0.69444, 0, 0, 0.5), "˘": g(0, 0.69444, 0, 0, 0.5),
		"ˇ": g(0, 0.62847, 0, 0, 0.5), "˚": g(0, 0.69444, 0, 0, 0.75),
		"⃗": g(0, 0.71444, 0.15382, 0, 0.5), " ": g(0, 0, 0, 0, 0.25),
		"Γ": g(0, 0.68333, 0, 0, 0.625), "Δ": g(0, 0.68333, 0, 0, 0.83334),
		"Θ": g(0, 0.68333, 0, 0, 0.77778), "Λ": g(0, 0.68333, 0, 0, 0.69445),
		"Π": g(0, 0.68333, 0, 0, 0.75), "Σ": g(0, 0.68333, 0, 0, 0.72222),
		"Φ": g(0, 0.68333, 0, 0, 0.72222), "Ψ": g(0, 0.68333, 0, 0, 0.77778),
		"Ω": g(0, 0.68333, 0, 0, 0.72222),
	},
	FontMathItalic: {
		"a": g(0, 0.43056, 0, 0, 0.52859), "b": g(0, 0.69444, 0, 0, 0.42917),
		"c": g(0, 0.43056, 0, 0.05556, 0.43276), "d": g(0, 0.69444, 0, 0.16667, 0.52049),
		"e": g(0, 0.43056, 0, 0.05556, 0.46563), "f": g(0.19444, 0.69444, 0.10764, 0.16667, 0.48959),
		"g": g(0.19444, 0.43056, 0.03588, 0.02778, 0.47697), "h": g(0, 0.69444, 0, 0, 0.57616),
		"i": g(0, 0.65952, 0, 0.05556, 0.34451), "j": g(0.19444, 0.65952, 0.05724, 0.05556, 0.41181),
		"k": g(0, 0.69444, 0.03148, 0, 0.5206), "l": g(0, 0.69444, 0.01968, 0.08334, 0.29838),
		"m": g(0, 0.43056, 0, 0, 0.87801), "n": g(0, 0.43056, 0, 0, 0.60023),
		"o": g(0, 0.43056, 0, 0.05556, 0.48472), "p": g(0.19444, 0.43056, 0, 0.08334, 0.50313),
		"q": g(0.19444, 0.43056, 0.03588, 0.08334, 0.44641), "r": g(0, 0.43056, 0.02778, 0.05556, 0.45116),
		"s": g(0, 0.43056, 0, 0.05556, 0.46875), "t": g(0, 0.61508, 0, 0.08334, 0.36111),
		"u": g(0, 0.43056, 0, 0.02778, 0.57246), "v": g(0, 0.43056, 0.03588, 0.02778, 0.48472),
		"w": g(0, 0.43056, 0.02691, 0.08334, 0.71592), "x": g(0, 0.43056, 0, 0.02778, 0.57153),
		"y": g(0.19444, 0.43056, 0.03588, 0.05556, 0.49028), "z": g(0, 0.43056, 0.04398, 0.05556, 0.46505),
		"A": g(0, 0.68333, 0, 0.13889, 0.75), "B": g(0, 0.68333, 0.05017, 0.08334, 0.75851),
		"C": g(0, 0.68333, 0.07153, 0.08334, 0.71472), "D": g(0, 0.68333, 0.02778, 0.05556, 0.82792),
		"E": g(0, 0.68333, 0.05764, 0.08334, 0.7382), "F": g(0, 0.68333, 0.13889, 0.08334, 0.64306),
		"G": g(0, 0.68333, 0, 0.08334, 0.78625), "H": g(0, 0.68333, 0.08125, 0.05556, 0.83125),
		"I": g(0, 0.68333, 0.07847, 0.11111, 0.43958), "J": g(0, 0.68333, 0.09618, 0.16667, 0.55451),
		"K": g(0, 0.68333, 0.07153, 0.05556, 0.84931), "L": g(0, 0.68333, 0, 0.02778, 0.68056),
		"M": g(0, 0.68333, 0.10903, 0.08334, 0.97014), "N": g(0, 0.68333, 0.10903, 0.08334, 0.80347),
		"O": g(0, 0.68333, 0.02778, 0.08334, 0.76278), "P": g(0, 0.68333, 0.13889, 0.08334, 0.64201),
		"Q": g(0.19444, 0.68333, 0, 0.08334, 0.79056), "R": g(0, 0.68333, 0.00773, 0.08334, 0.75929),
		"S": g(0, 0.68333, 0.05764, 0.08334, 0.6132), "T": g(0, 0.68333, 0.13889, 0.08334, 0.58438),
		"U": g(0, 0.68333, 0.10903, 0.02778, 0.68278), "V": g(0, 0.68333, 0.22222, 0, 0.58333),
		"W": g(0, 0.68333, 0.13889, 0, 0.94445), "X": g(0, 0.68333, 0.07847, 0.08334, 0.82847),
		"Y": g(0, 0.68333, 0.22222, 0, 0.58056), "Z": g(0, 0.68333, 0.07153, 0.08334, 0.68264),
		"α": g(0, 0.43056, 0.0037, 0.02778, 0.6397), "β": g(0.19444, 0.69444, 0.05278, 0.08334, 0.56563),
		"γ": g(0.19444, 0.43056, 0.05556, 0, 0.51773), "δ": g(0, 0.69444, 0.03785, 0.05556, 0.44444),
		"ϵ": g(0, 0.43056, 0, 0.08334, 0.46632), "ε": g(0, 0.43056, 0, 0.08334, 0.46632),
		"θ": g(0, 0.69444, 0.02778, 0.08334, 0.46944), "λ": g(0, 0.69444, 0, 0, 0.58333),
		"μ": g(0.19444, 0.43056, 0, 0.02778, 0.60255), "π": g(0, 0.43056, 0.03588, 0, 0.57031),
		"σ": g(0, 0.43056, 0.03588, 0, 0.57141), "τ": g(0, 0.43056, 0.1132, 0.02778, 0.43715),
		"ϕ": g(0.19444, 0.69444, 0, 0.08334, 0.59618), "φ": g(0.19444, 0.43056, 0, 0.08334, 0.65417),
		"ω": g(0, 0.43056, 0.03588, 0, 0.62245), "ψ": g(0.19444, 0.69444, 0.03588, 0.11111, 0.65139),
	},
	FontSize1: {
		"(": g(0.35001, 0.85, 0, 0, 0.45834), ")": g(0.35001, 0.85, 0, 0, 0.45834),
		"[": g(0.35001, 0.85, 0, 0, 0.41667), "]": g(0.35001, 0.85, 0, 0, 0.41667),
		"{": g(0.35001, 0.85, 0, 0, 0.58334), "}": g(0.35001, 0.85, 0, 0, 0.58334),
		"⟨": g(0.35001, 0.85, 0, 0, 0.47222), "⟩": g(0.35001, 0.85, 0, 0, 0.47222),
		"∣": g(-0.00099, 0.601, 0, 0, 0.33333), "∥": g(-0.00099, 0.601, 0, 0, 0.55556),
		"√": g(0.35001, 0.85, 0, 0, 1.00002),
		"∑": g(0.25001, 0.75, 0, 0, 1.05556), "∏": g(0.25001, 0.75, 0, 0, 0.94445),
		"∐": g(0.25001, 0.75, 0, 0, 0.94445), "∫": g(0.30612, 0.805, 0.19445, 0, 0.47222),
		"∬": g(0.30612, 0.805, 0.19445, 0, 0.83334), "∭": g(0.30612, 0.805, 0.19445, 0, 1.19445),
		"∮": g(0.30612, 0.805, 0.19445, 0, 0.47222), "⋂": g(0.25001, 0.75, 0, 0, 0.83334),
		"⋃": g(0.25001, 0.75, 0, 0, 0.83334), "⋀": g(0.25001, 0.75, 0, 0, 0.83334),
		"⋁": g(0.25001, 0.75, 0, 0, 0.83334), "⨁": g(0.25001, 0.75, 0, 0, 1.11111),
		"⨂": g(0.25001, 0.75, 0, 0, 1.11111), "⨀": g(0.25001, 0.75, 0, 0, 1.11111),
		"⨄": g(0.25001, 0.75, 0, 0, 0.83334), "⨆": g(0.25001, 0.75, 0, 0, 0.83334),
		"⏐": g(-0.00099, 0.601, 0, 0, 0.66667), "‖": g(-0.00099, 0.601, 0, 0, 0.77778),
		"↑": g(0.19444, 0.69444, 0, 0, 0.66667), "↓": g(0.19444, 0.69444, 0, 0, 0.66667),
		"⇑": g(0.19444, 0.69444, 0, 0, 0.77778), "⇓": g(0.19444, 0.69444, 0, 0, 0.77778),
	},
	FontSize2: {
		"(": g(0.65002, 1.15, 0, 0, 0.59722), ")": g(0.65002, 1.15, 0, 0, 0.59722),
		"[": g(0.65002, 1.15, 0, 0, 0.47222), "]": g(0.65002, 1.15, 0, 0, 0.47222),
		"{": g(0.65002, 1.15, 0, 0, 0.66667), "}": g(0.65002, 1.15, 0, 0, 0.66667),
		"⟨": g(0.65002, 1.15, 0, 0, 0.52778), "⟩": g(0.65002, 1.15, 0, 0, 0.52778),
		"√": g(0.65002, 1.15, 0, 0, 1.00002),
		"∑": g(0.45001, 0.95003, 0, 0, 1.44445), "∏": g(0.45001, 0.95003, 0, 0, 1.27778),
		"∐": g(0.45001, 0.95003, 0, 0, 1.27778), "∫": g(0.86225, 1.36, 0.44445, 0, 0.55556),
		"∬": g(0.86225, 1.36, 0.44445, 0, 1.11111), "∭": g(0.86225, 1.36, 0.44445, 0, 1.66667),
		"∮": g(0.86225, 1.36, 0.44445, 0, 0.55556), "⋂": g(0.55001, 1.05, 0, 0, 1.11111),
		"⋃": g(0.55001, 1.05, 0, 0, 1.11111), "⋀": g(0.55001, 1.05, 0, 0, 1.11111),
		"⋁": g(0.55001, 1.05, 0, 0, 1.11111), "⨁": g(0.55001, 1.05, 0, 0, 1.51112),
		"⨂": g(0.55001, 1.05, 0, 0, 1.51112), "⨀": g(0.55001, 1.05, 0, 0, 1.51112),
		"⨄": g(0.55001, 1.05, 0, 0, 1.11111), "⨆": g(0.55001, 1.05, 0, 0, 1.11111),
	},
	FontSize3: {
		"(": g(0.95003, 1.45, 0, 0, 0.73611), ")": g(0.95003, 1.45, 0, 0, 0.73611),
		"[": g(0.95003, 1.45, 0, 0, 0.52778), "]": g(0.95003, 1.45, 0, 0, 0.52778),
		"{": g(0.95003, 1.45, 0, 0, 0.75), "}": g(0.95003, 1.45, 0, 0, 0.75),
		"⟨": g(0.95003, 1.45, 0, 0, 0.61111), "⟩": g(0.95003, 1.45, 0, 0, 0.61111),
		"√": g(0.95003, 1.45, 0, 0, 1.00002),
	},
	FontSize4: {
		"(": g(1.25003, 1.75, 0, 0, 0.79167), ")": g(1.25003, 1.75, 0, 0, 0.79167),
		"[": g(1.25003, 1.75, 0, 0, 0.58334), "]": g(1.25003, 1.75, 0, 0, 0.58334),
		"{": g(1.25003, 1.75, 0, 0, 0.80556), "}": g(1.25003, 1.75, 0, 0, 0.80556),
		"⟨": g(1.25003, 1.75, 0, 0, 0.80556), "⟩": g(1.25003, 1.75, 0, 0, 0.80556),
		"√": g(1.25003, 1.75, 0, 0, 1.00002),
		"⎛": g(1.25003, 1.75, 0, 0, 0.875), "⎝": g(1.25003, 1.75, 0, 0, 0.875),
		"⎜": g(0, 0.6, 0, 0, 0.875), "⎞": g(1.25003, 1.75, 0, 0, 0.875),
		"⎠": g(1.25003, 1.75, 0, 0, 0.875), "⎟": g(0, 0.6, 0, 0, 0.875),
		"⎡": g(1.25003, 1.75, 0, 0, 0.66667), "⎣": g(1.25003, 1.75, 0, 0, 0.66667),
		"⎢": g(0, 0.6, 0, 0, 0.66667), "⎤": g(1.25003, 1.75, 0, 0, 0.66667),
		"⎦": g(1.25003, 1.75, 0, 0, 0.66667), "⎥": g(0, 0.6, 0, 0, 0.66667),
		"⎧": g(0.0, 0.9, 0, 0, 0.88889), "⎩": g(0.9, 0, 0, 0, 0.88889),
		"⎨": g(0.9, 0.9, 0, 0, 0.88889), "⎪": g(0, 0.3, 0, 0, 0.88889),
		"⎫": g(0.0, 0.9, 0, 0, 0.88889), "⎭": g(0.9, 0, 0, 0, 0.88889),
		"⎬": g(0.9, 0.9, 0, 0, 0.88889), "⎷": g(0.6, 0.6, 0, 0, 1.05556),
		"∣": g(0, 0.6, 0, 0, 0.33333), "∥": g(0, 0.6, 0, 0, 0.55556),
		"⏐": g(0, 0.6, 0, 0, 1.05556),
	},
}

// builtinMetrics serves glyphTables and estimates glyphs the tables miss.
type builtinMetrics struct{}

// DefaultMetrics returns the built-in approximate metrics for the Computer
// Modern derived font set. Glyphs missing from the tables are estimated
// from their character class.
func DefaultMetrics() Metrics {
	return builtinMetrics{}
}

func (builtinMetrics) Glyph(text, font string, mode Mode) (GlyphMetrics, bool) {
	if table, ok := glyphTables[font]; ok {
		if m, ok := table[text]; ok {
			return m, true
		}
	}
	if font == FontMathItalic || font == FontMainItalic {
		if m, ok := glyphTables[FontMainRegular][text]; ok {
			return m, true
		}
	}
	return estimateGlyph(text, font), true
}

const (
	ascenders  = "bdfhklt"
	descenders = "gjpqy"
)

// estimateGlyph derives metrics from character class. East asian wide
// characters get a full em.
func estimateGlyph(text, font string) GlyphMetrics {
	r, _ := utf8.DecodeRuneInString(text)
	width := defaultGlyphWidth
	if w := runewidth.StringWidth(text); w >= 2 {
		width = 1
	}
	m := GlyphMetrics{Width: width, Height: 0.69444}
	switch {
	case unicode.IsDigit(r):
		m.Height = 0.64444
	case unicode.IsUpper(r):
		m.Height = 0.68333
		m.Width = 0.75
	case unicode.IsLower(r):
		m.Height = 0.43056
		if strings.ContainsRune(ascenders, r) {
			m.Height = 0.69444
		}
		if strings.ContainsRune(descenders, r) {
			m.Depth = 0.19444
		}
	case unicode.IsSpace(r):
		m.Height = 0
		m.Width = 0.25
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		m.Height = 0.75
		m.Depth = 0.25
	}
	if width == 1 {
		m.Height = 0.88
		m.Depth = 0.12
	}
	if font == FontMainBold {
		m.Width *= 1.1
	}
	return m
}
