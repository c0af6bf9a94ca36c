package mathbox

import "strconv"

// sizeMultipliers for \tiny (1) through \Huge (10).
var sizeMultipliers = [11]float64{0, 0.5, 0.7, 0.8, 0.9, 1.0, 1.2, 1.44, 1.73, 2.07, 2.49}

var sizeCommands = map[string]int{
	"\\tiny":         1,
	"\\scriptsize":   2,
	"\\footnotesize": 3,
	"\\small":        4,
	"\\normalsize":   5,
	"\\large":        6,
	"\\Large":        7,
	"\\LARGE":        8,
	"\\huge":         9,
	"\\Huge":         10,
}

// NormalSize is the size level of \normalsize.
const NormalSize = 5

// Options is the immutable layout context. Every With method returns a
// modified copy; the receiver is never changed. The zero value is display
// style at normal size.
type Options struct {
	style   Style
	size    int
	color   string
	font    string
	phantom bool
}

// DefaultOptions is text style at normal size with no color or font.
func DefaultOptions() Options {
	return Options{
		style: StyleText,
		size:  NormalSize,
	}
}

// Style returns the current math style.
func (o Options) Style() Style { return o.style }

// Size returns the current size level.
func (o Options) Size() int { return o.size }

// Color returns the current color, empty when unset.
func (o Options) Color() string { return o.color }

// Font returns the current font override, empty when unset.
func (o Options) Font() string { return o.font }

// Phantom reports whether content is laid out without ink.
func (o Options) Phantom() bool { return o.phantom }

// WithStyle returns o with style s.
func (o Options) WithStyle(s Style) Options {
	o.style = s.valid()
	return o
}

// WithSize returns o with size level size.
func (o Options) WithSize(size int) Options {
	if size < 1 || size > 10 {
		size = NormalSize
	}
	o.size = size
	return o
}

// WithColor returns o with color c.
func (o Options) WithColor(c string) Options {
	o.color = c
	return o
}

// WithFont returns o with font f.
func (o Options) WithFont(f string) Options {
	o.font = f
	return o
}

// WithPhantom returns o with ink disabled.
func (o Options) WithPhantom() Options {
	o.phantom = true
	return o
}

// SizeMultiplier is the scale of the current font relative to the base
// font: the style multiplier times the size multiplier.
func (o Options) SizeMultiplier() float64 {
	size := o.size
	if size < 1 || size > 10 {
		size = NormalSize
	}
	return o.style.Multiplier() * sizeMultipliers[size]
}

// FontMetrics returns the font parameters for the current style, scaled to
// absolute ems.
func (o Options) FontMetrics() FontParams {
	return fontParams[o.style.metricIndex()].scale(o.SizeMultiplier())
}

// ruleThickness is the default rule thickness in absolute ems.
func (o Options) ruleThickness() float64 {
	return o.FontMetrics().DefaultRuleThickness
}

// inkColor is the color to draw with; phantoms are transparent.
func (o Options) inkColor() string {
	if o.phantom {
		return "transparent"
	}
	return o.color
}

// sizingClasses are the classes of a box laid out at o inside a box laid
// out at parent.
func (o Options) sizingClasses(parent Options) []string {
	if o.size == parent.size {
		return nil
	}
	return []string{"sizing", "reset-size" + strconv.Itoa(parent.size), "size" + strconv.Itoa(o.size)}
}
