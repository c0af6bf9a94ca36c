package mathbox

import (
	"math"
	"strconv"
)

// Delimiters are drawn from the main font at a script size, from one of the
// four large size fonts, or stacked from pieces.
type delimKind uint8

const (
	delimSmall delimKind = iota
	delimLarge
	delimStack
)

type delimVariant struct {
	kind  delimKind
	style Style
	size  int
}

var (
	stackLargeDelims = setOf(
		"(", ")", "[", "\\lbrack", "]", "\\rbrack",
		"\\{", "\\lbrace", "\\}", "\\rbrace",
		"\\lfloor", "\\rfloor", "\\lceil", "\\rceil", "\\surd",
	)
	stackAlwaysDelims = setOf(
		"\\uparrow", "\\downarrow", "\\updownarrow",
		"\\Uparrow", "\\Downarrow", "\\Updownarrow",
		"|", "\\|", "\\vert", "\\Vert",
		"\\lvert", "\\rvert", "\\lVert", "\\rVert",
	)
	stackNeverDelims = setOf(
		"<", ">", "\\langle", "\\rangle", "/", "\\backslash",
	)
)

var (
	smallVariants = []delimVariant{
		{kind: delimSmall, style: StyleScriptScript},
		{kind: delimSmall, style: StyleScript},
		{kind: delimSmall, style: StyleText},
	}
	largeVariants = []delimVariant{
		{kind: delimLarge, size: 1},
		{kind: delimLarge, size: 2},
		{kind: delimLarge, size: 3},
		{kind: delimLarge, size: 4},
	}
	stackNeverSequence  = concat(smallVariants, largeVariants)
	stackAlwaysSequence = concat(smallVariants, []delimVariant{{kind: delimStack}})
	stackLargeSequence  = concat(smallVariants, largeVariants, []delimVariant{{kind: delimStack}})
)

// sizeToMaxHeight is the total height of \big ... \Bigg in text ems.
var sizeToMaxHeight = [5]float64{0, 1.2, 1.8, 2.4, 3.0}

var largeFonts = [5]string{"", FontSize1, FontSize2, FontSize3, FontSize4}

func setOf(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func concat[T any](parts ...[]T) []T {
	var out []T
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func normalizeDelim(delim string) string {
	switch delim {
	case "<":
		return "\\langle"
	case ">":
		return "\\rangle"
	}
	return delim
}

// centerShift moves a glyph built in inner onto the math axis of outer.
func centerShift(inner, outer Options) float64 {
	return inner.FontMetrics().AxisHeight - outer.FontMetrics().AxisHeight
}

func (c *composer) makeSmallDelim(delim string, style Style, center bool, opts Options, classes []string) *Box {
	sopts := opts.WithStyle(style)
	glyph := c.makeSymbol(symbolText(MathMode, delim), FontMainRegular, MathMode, sopts)
	if center {
		glyph.Shift = centerShift(sopts, opts)
	}
	return makeSpan(concat(classes, []string{"delimsizing", style.class()}), []*Box{glyph}, &sopts)
}

func (c *composer) makeLargeDelim(delim string, size int, center bool, opts Options, classes []string) *Box {
	topts := opts.WithStyle(StyleText)
	glyph := c.makeSymbol(symbolText(MathMode, delim), largeFonts[size], MathMode, topts)
	if center {
		glyph.Shift = centerShift(topts, opts)
	}
	return makeSpan(concat(classes, []string{"delimsizing", "size" + strconv.Itoa(size)}), []*Box{glyph}, &topts)
}

// stackPieces returns the top, middle, repeat and bottom glyphs of a
// stacked delimiter and their font. middle is empty when there is none.
func stackPieces(delim string) (top, middle, repeat, bottom, font string) {
	font = FontSize1
	glyph := symbolText(MathMode, delim)
	top, repeat, bottom = glyph, glyph, glyph
	switch delim {
	case "\\uparrow":
		repeat, bottom = "⏐", "⏐"
	case "\\Uparrow":
		repeat, bottom = "‖", "‖"
	case "\\downarrow":
		top, repeat = "⏐", "⏐"
	case "\\Downarrow":
		top, repeat = "‖", "‖"
	case "\\updownarrow":
		top, repeat, bottom = "↑", "⏐", "↓"
	case "\\Updownarrow":
		top, repeat, bottom = "⇑", "‖", "⇓"
	case "|", "\\vert", "\\lvert", "\\rvert":
		top, repeat, bottom = "∣", "∣", "∣"
	case "\\|", "\\Vert", "\\lVert", "\\rVert":
		top, repeat, bottom = "∥", "∥", "∥"
	case "[", "\\lbrack":
		top, repeat, bottom, font = "⎡", "⎢", "⎣", FontSize4
	case "]", "\\rbrack":
		top, repeat, bottom, font = "⎤", "⎥", "⎦", FontSize4
	case "\\lfloor":
		top, repeat, bottom, font = "⎢", "⎢", "⎣", FontSize4
	case "\\lceil":
		top, repeat, bottom, font = "⎡", "⎢", "⎢", FontSize4
	case "\\rfloor":
		top, repeat, bottom, font = "⎥", "⎥", "⎦", FontSize4
	case "\\rceil":
		top, repeat, bottom, font = "⎤", "⎥", "⎥", FontSize4
	case "(":
		top, repeat, bottom, font = "⎛", "⎜", "⎝", FontSize4
	case ")":
		top, repeat, bottom, font = "⎞", "⎟", "⎠", FontSize4
	case "\\{", "\\lbrace":
		top, middle, repeat, bottom, font = "⎧", "⎨", "⎪", "⎩", FontSize4
	case "\\}", "\\rbrace":
		top, middle, repeat, bottom, font = "⎫", "⎬", "⎪", "⎭", FontSize4
	case "\\surd":
		top, repeat, bottom, font = "⏐", "⏐", "⎷", FontSize4
	}
	return top, middle, repeat, bottom, font
}

// makeStackedDelim builds a delimiter of at least heightTotal from pieces,
// adding repeat pieces until the height is reached.
func (c *composer) makeStackedDelim(delim string, heightTotal float64, center bool, opts Options, classes []string) *Box {
	topts := opts.WithStyle(StyleText)
	top, middle, repeat, bottom, font := stackPieces(delim)
	piece := func(glyph string) *Box {
		return c.makeSymbol(glyph, font, MathMode, topts)
	}
	topBox, repeatBox, bottomBox := piece(top), piece(repeat), piece(bottom)
	span := func(b *Box) float64 { return b.Height + b.Depth }

	minHeight := span(topBox) + span(bottomBox)
	var middleBox *Box
	if middle != "" {
		middleBox = piece(middle)
		minHeight += span(middleBox)
	}
	factor := 1.0
	if middleBox != nil {
		factor = 2
	}
	repeatCount := 0
	if step := span(repeatBox); step > 0 {
		repeatCount = int(math.Max(0, math.Ceil((heightTotal-minHeight)/(factor*step))))
	}
	realHeight := minHeight + float64(repeatCount)*factor*span(repeatBox)

	axis := topts.FontMetrics().AxisHeight
	if center {
		axis = opts.FontMetrics().AxisHeight
	}
	depth := realHeight/2 - axis

	children := []VListChild{VElem(bottomBox)}
	for range repeatCount {
		children = append(children, VElem(repeatBox))
	}
	if middleBox != nil {
		children = append(children, VElem(middleBox))
		for range repeatCount {
			children = append(children, VElem(repeatBox))
		}
	}
	children = append(children, VElem(topBox))
	vl := MakeVList(children, PositionBottom, depth, topts)
	return makeSpan(concat(classes, []string{"delimsizing", "mult"}), []*Box{vl}, &topts)
}

// sizedDelim is \big, \Big, \bigg or \Bigg of delim.
func (c *composer) sizedDelim(delim string, size int, opts Options, classes ...string) *Box {
	delim = normalizeDelim(delim)
	if stackLargeDelims[delim] || stackNeverDelims[delim] {
		return c.makeLargeDelim(delim, size, false, opts, classes)
	}
	height := sizeToMaxHeight[size] * opts.WithStyle(StyleText).SizeMultiplier()
	return c.makeStackedDelim(delim, height, false, opts, classes)
}

// traverseSequence returns the first variant taller than height, starting
// from the variant matching the current style.
func (c *composer) traverseSequence(delim string, height float64, seq []delimVariant, opts Options) delimVariant {
	glyph := symbolText(MathMode, delim)
	for i := min(2, 3-opts.Style().Size()); i < len(seq); i++ {
		v := seq[i]
		if v.kind == delimStack {
			return v
		}
		font, vopts := FontMainRegular, opts.WithStyle(v.style)
		if v.kind == delimLarge {
			font, vopts = largeFonts[v.size], opts.WithStyle(StyleText)
		}
		m, ok := c.metrics.Glyph(glyph, font, MathMode)
		if !ok {
			continue
		}
		if (m.Height+m.Depth)*vopts.SizeMultiplier() > height {
			return v
		}
	}
	return seq[len(seq)-1]
}

// customSizedDelim picks the smallest delimiter of at least height total.
func (c *composer) customSizedDelim(delim string, height float64, center bool, opts Options, classes ...string) *Box {
	delim = normalizeDelim(delim)
	seq := stackNeverSequence
	switch {
	case stackLargeDelims[delim]:
		seq = stackLargeSequence
	case stackAlwaysDelims[delim]:
		seq = stackAlwaysSequence
	}
	v := c.traverseSequence(delim, height, seq, opts)
	switch v.kind {
	case delimSmall:
		return c.makeSmallDelim(delim, v.style, center, opts, classes)
	case delimLarge:
		return c.makeLargeDelim(delim, v.size, center, opts, classes)
	}
	return c.makeStackedDelim(delim, height, center, opts, classes)
}

const (
	delimiterFactor = 901
	delimiterExtend = 5.0 / ptPerEm
)

// leftRightDelim sizes a \left, \right or \middle delimiter to cover height
// and depth symmetrically around the axis.
func (c *composer) leftRightDelim(delim string, height, depth float64, opts Options, classes ...string) *Box {
	axis := opts.FontMetrics().AxisHeight
	extend := delimiterExtend * opts.WithStyle(StyleText).SizeMultiplier()
	maxDist := max(height-axis, depth+axis)
	total := max(maxDist/500*delimiterFactor, 2*maxDist-extend)
	return c.customSizedDelim(delim, total, true, opts, classes...)
}

// nullDelimiter is the empty space left by "." or a missing delimiter.
func nullDelimiter(opts Options, classes ...string) *Box {
	b := makeSpan(concat(classes, []string{"nulldelimiter"}), nil, &opts)
	b.Width = 0.12 * opts.SizeMultiplier()
	return b
}
