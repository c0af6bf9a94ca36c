package mathbox

import "slices"

// BoxKind is the structural kind of a Box.
type BoxKind uint8

const (
	// BoxSymbol is a single glyph.
	BoxSymbol BoxKind = iota
	// BoxSpan groups children horizontally.
	BoxSpan
	// BoxFragment is a transparent group; its children are flattened into
	// the surrounding line.
	BoxFragment
	// BoxVList stacks children vertically; each child's Shift is its offset
	// below the baseline.
	BoxVList
)

func (k BoxKind) String() string {
	switch k {
	case BoxSymbol:
		return "symbol"
	case BoxSpan:
		return "span"
	case BoxFragment:
		return "fragment"
	case BoxVList:
		return "vlist"
	}
	return "unknown"
}

// Box is a measured layout unit. All lengths are absolute ems of the base
// font. Boxes are not modified once returned by Build or Layout.
type Box struct {
	Kind    BoxKind
	Text    string
	Font    string
	Classes []string
	Height  float64
	Depth   float64
	Width   float64
	Italic  float64
	Skew    float64
	// MaxFontSize is the largest size multiplier used inside the box.
	MaxFontSize float64
	// Shift moves the box down from the baseline of its parent; negative
	// values move it up.
	Shift       float64
	MarginLeft  float64
	MarginRight float64
	// Color is empty when inherited.
	Color string
	Href  string
	// Border is the frame thickness for enclosed boxes.
	Border   float64
	Children []*Box
}

// HasClass reports whether b carries class c.
func (b *Box) HasClass(c string) bool {
	return slices.Contains(b.Classes, c)
}

// OuterClass is the atom class used for spacing: the first atom class of
// the box, or of its leftmost (left is true) or rightmost child for
// fragments. Empty for boxes without a class.
func (b *Box) OuterClass(left bool) string {
	if b == nil {
		return ""
	}
	if b.Kind == BoxFragment {
		if len(b.Children) == 0 {
			return ""
		}
		if left {
			return b.Children[0].OuterClass(true)
		}
		return b.Children[len(b.Children)-1].OuterClass(false)
	}
	for _, c := range b.Classes {
		if atomClasses[c] {
			return c
		}
	}
	return ""
}

// setAtomClass replaces the atom class of b. Only used on boxes the caller
// owns exclusively.
func (b *Box) setAtomClass(class string) {
	for i, c := range b.Classes {
		if atomClasses[c] {
			b.Classes[i] = class
			return
		}
	}
	b.Classes = append(b.Classes, class)
}

// TotalWidth is the advance of the box including margins.
func (b *Box) TotalWidth() float64 {
	return b.Width + b.MarginLeft + b.MarginRight
}

var atomClasses = map[string]bool{
	"mord":   true,
	"mop":    true,
	"mbin":   true,
	"mrel":   true,
	"mopen":  true,
	"mclose": true,
	"mpunct": true,
	"minner": true,
}

func classList(classes ...string) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// makeSpan groups children horizontally. Height and depth are the maximum
// over children, width the sum of their advances.
func makeSpan(classes []string, children []*Box, opts *Options) *Box {
	b := &Box{Kind: BoxSpan, Classes: classes, Children: children}
	b.measure()
	if opts != nil {
		b.Color = opts.inkColor()
		b.MaxFontSize = max(b.MaxFontSize, opts.SizeMultiplier())
	}
	return b
}

// measure recomputes height, depth and width of a span from its children.
func (b *Box) measure() {
	var h, d, w, m float64
	for _, c := range b.Children {
		h = max(h, c.Height-c.Shift)
		d = max(d, c.Depth+c.Shift)
		w += c.TotalWidth()
		m = max(m, c.MaxFontSize)
	}
	b.Height, b.Depth, b.Width, b.MaxFontSize = h, d, w, m
	if n := len(b.Children); n > 0 {
		b.Italic = b.Children[n-1].Italic
	}
}

// makeFragment is a transparent group measured like a span.
func makeFragment(children []*Box) *Box {
	b := &Box{Kind: BoxFragment, Children: children}
	b.measure()
	return b
}

// makeGlue is an empty span of width w used for spacing.
func makeGlue(w float64, class string) *Box {
	return &Box{Kind: BoxSpan, Classes: classList("mspace", class), Width: w}
}

// makeStrut is an invisible box forcing height and depth.
func makeStrut(height, depth float64) *Box {
	return &Box{Kind: BoxSpan, Classes: []string{"strut"}, Height: height, Depth: depth}
}

// makeRuleBox is a filled rectangle.
func makeRuleBox(class string, width, thickness float64, opts Options) *Box {
	return &Box{
		Kind:    BoxSpan,
		Classes: classList(class, "rule"),
		Width:   width,
		Height:  thickness,
		Color:   opts.inkColor(),
	}
}

// clone returns a shallow copy of b with its own class slice.
func (b *Box) clone() *Box {
	c := *b
	c.Classes = slices.Clone(b.Classes)
	return &c
}
