package mathbox

// Style is one of the eight TeX math styles: display, text, script and
// scriptscript, each in a normal and a cramped variant. Values outside the
// eight styles behave as StyleText.
type Style uint8

const (
	StyleDisplay Style = iota
	StyleDisplayCramped
	StyleText
	StyleTextCramped
	StyleScript
	StyleScriptCramped
	StyleScriptScript
	StyleScriptScriptCramped
)

var (
	styleSup     = [8]Style{StyleScript, StyleScriptCramped, StyleScript, StyleScriptCramped, StyleScriptScript, StyleScriptScriptCramped, StyleScriptScript, StyleScriptScriptCramped}
	styleSub     = [8]Style{StyleScriptCramped, StyleScriptCramped, StyleScriptCramped, StyleScriptCramped, StyleScriptScriptCramped, StyleScriptScriptCramped, StyleScriptScriptCramped, StyleScriptScriptCramped}
	styleFracNum = [8]Style{StyleText, StyleTextCramped, StyleScript, StyleScriptCramped, StyleScriptScript, StyleScriptScriptCramped, StyleScriptScript, StyleScriptScriptCramped}
	styleFracDen = [8]Style{StyleTextCramped, StyleTextCramped, StyleScriptCramped, StyleScriptCramped, StyleScriptScriptCramped, StyleScriptScriptCramped, StyleScriptScriptCramped, StyleScriptScriptCramped}
	styleCramp   = [8]Style{StyleDisplayCramped, StyleDisplayCramped, StyleTextCramped, StyleTextCramped, StyleScriptCramped, StyleScriptCramped, StyleScriptScriptCramped, StyleScriptScriptCramped}

	styleMultipliers = [4]float64{1, 1, 0.7, 0.5}
	styleNames       = [8]string{"D", "Dc", "T", "Tc", "S", "Sc", "SS", "SSc"}
	styleClasses     = [4]string{"displaystyle textstyle", "textstyle", "scriptstyle", "scriptscriptstyle"}
)

// valid maps values outside the eight styles to text style.
func (s Style) valid() Style {
	if s > StyleScriptScriptCramped {
		return StyleText
	}
	return s
}

// Sup returns the style of a superscript.
func (s Style) Sup() Style { return styleSup[s.valid()] }

// Sub returns the style of a subscript.
func (s Style) Sub() Style { return styleSub[s.valid()] }

// FracNum returns the style of a fraction numerator.
func (s Style) FracNum() Style { return styleFracNum[s.valid()] }

// FracDen returns the style of a fraction denominator.
func (s Style) FracDen() Style { return styleFracDen[s.valid()] }

// Cramp returns the cramped version of s.
func (s Style) Cramp() Style { return styleCramp[s.valid()] }

// Size is the size level: 0 display, 1 text, 2 script, 3 scriptscript.
func (s Style) Size() int { return int(s.valid()) / 2 }

// Cramped reports whether s is a cramped style.
func (s Style) Cramped() bool { return s.valid()%2 == 1 }

// Multiplier is the font scale of the style relative to text style.
func (s Style) Multiplier() float64 { return styleMultipliers[s.Size()] }

// IsTight reports whether inter-atom spacing uses the tight table.
func (s Style) IsTight() bool { return s.Size() >= 2 }

// metricIndex selects the sigma set: text, script or scriptscript.
func (s Style) metricIndex() int {
	if s.Size() <= 1 {
		return 0
	}
	return s.Size() - 1
}

func (s Style) class() string { return styleClasses[s.Size()] }

func (s Style) resetClass() string {
	return "reset-" + styleClasses[max(1, s.Size())]
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "?"
}

var styleCommands = map[string]Style{
	"\\displaystyle":      StyleDisplay,
	"\\textstyle":         StyleText,
	"\\scriptstyle":       StyleScript,
	"\\scriptscriptstyle": StyleScriptScript,
}
