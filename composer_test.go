package mathbox

import (
	"bytes"
	"errors"
	"testing"
)

func mustLayout(t *testing.T, input string, opts Options, settings ...Setting) []*Box {
	t.Helper()
	boxes, err := Layout(mustParse(t, input), opts, settings...)
	if err != nil {
		t.Fatalf("layout %q: %v", input, err)
	}
	return boxes
}

// findBoxes returns every box below root, root included, for which match
// is true, in depth first order.
func findBoxes(root *Box, match func(*Box) bool) []*Box {
	var out []*Box
	var walk func(b *Box)
	walk = func(b *Box) {
		if match(b) {
			out = append(out, b)
		}
		for _, c := range b.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

func withClass(class string) func(*Box) bool {
	return func(b *Box) bool { return b.HasClass(class) }
}

func glyph(text string) func(*Box) bool {
	return func(b *Box) bool { return b.Kind == BoxSymbol && b.Text == text }
}

func outerClasses(boxes []*Box) []string {
	out := make([]string, len(boxes))
	for i, b := range boxes {
		if isSpaceBox(b) {
			out[i] = "glue"
			continue
		}
		out[i] = b.OuterClass(true)
	}
	return out
}

func TestBinCancellation(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{`+2`, []string{"mord", "mord"}},
		{`3+2`, []string{"mord", "glue", "mbin", "glue", "mord"}},
		{`(+2`, []string{"mopen", "mord", "mord"}},
		{`a+`, []string{"mord", "mord"}},
		{`a=+b`, []string{"mord", "glue", "mrel", "glue", "mord", "mord"}},
		{`a+)`, []string{"mord", "mord", "mclose"}},
		// color is transparent to its neighbours, a phantom is an ord
		{`\textcolor{red}{+}2`, []string{"mord", "mord"}},
		{`1\textcolor{red}{+}2`, []string{"mord", "glue", "mbin", "glue", "mord"}},
		{`a\phantom{+}b`, []string{"mord", "mord", "mord"}},
	}
	for _, tc := range cases {
		boxes := mustLayout(t, tc.input, DefaultOptions())
		got := outerClasses(boxes)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.input, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: expected %v, got %v", tc.input, tc.want, got)
			}
		}
	}
}

func TestInterAtomGlueFollowsStyle(t *testing.T) {
	boxes := mustLayout(t, `3+2`, DefaultOptions())
	if w := boxes[1].Width; !approx(w, 4.0/18) {
		t.Fatalf("expected medium space of 4mu, got %v", w)
	}
	boxes = mustLayout(t, `a=b`, DefaultOptions())
	if w := boxes[1].Width; !approx(w, 5.0/18) {
		t.Fatalf("expected thick space of 5mu, got %v", w)
	}
	// Script style only spaces operators.
	boxes = mustLayout(t, `3+2`, DefaultOptions().WithStyle(StyleScript))
	if len(boxes) != 3 {
		t.Fatalf("expected no glue in script style, got %v", outerClasses(boxes))
	}
}

func TestExplicitSpacingIsNotAnAtom(t *testing.T) {
	boxes := mustLayout(t, `a\,+\,b`, DefaultOptions())
	var bins int
	for _, b := range boxes {
		if b.OuterClass(true) == "mbin" {
			bins++
		}
	}
	if bins != 1 {
		t.Fatalf("expected spacing to leave the binary operator alone, got %v", outerClasses(boxes))
	}
}

func TestGenFracDisplayMeasurements(t *testing.T) {
	metrics := MetricsFunc(func(text, _ string, _ Mode) (GlyphMetrics, bool) {
		switch text {
		case "a":
			return GlyphMetrics{Height: 0.5, Depth: 0.1, Width: 0.5}, true
		case "b":
			return GlyphMetrics{Height: 0.4, Depth: 0.2, Width: 0.6}, true
		}
		return GlyphMetrics{}, false
	})
	boxes := mustLayout(t, `\frac{a}{b}`, DefaultOptions().WithStyle(StyleDisplay), WithMetrics(metrics))
	if len(boxes) != 1 {
		t.Fatalf("expected a single fraction box, got %d", len(boxes))
	}
	frac := boxes[0]
	// The numerator sits at num1 and the denominator at denom1; both clear
	// the rule so no extra shift applies.
	if !approx(frac.Height, 0.677+0.5) || !approx(frac.Depth, 0.686+0.2) {
		t.Fatalf("expected h=1.177 d=0.886, got h=%v d=%v", frac.Height, frac.Depth)
	}
	if !approx(frac.Width, 0.12+0.6+0.12) {
		t.Fatalf("expected null delimiters around the wider denominator, got %v", frac.Width)
	}
	lines := findBoxes(frac, withClass("frac-line"))
	if len(lines) != 1 || !approx(lines[0].Height, 0.04) {
		t.Fatalf("expected one default thickness rule, got %+v", lines)
	}
	if !approx(lines[0].Shift, -(0.25 - 0.02)) {
		t.Fatalf("expected rule centered on the axis, got shift %v", lines[0].Shift)
	}
}

func TestGenFracWithoutBar(t *testing.T) {
	boxes := mustLayout(t, `\binom{n}{k}`, DefaultOptions())
	if len(findBoxes(boxes[0], withClass("frac-line"))) != 0 {
		t.Fatalf("expected no rule in binomial")
	}
	if len(findBoxes(boxes[0], withClass("nulldelimiter"))) != 0 {
		t.Fatalf("expected real delimiters in binomial")
	}
}

func TestLayoutDoesNotLeakOptions(t *testing.T) {
	root := mustBuild(t, `\textcolor{red}{x} y \scriptstyle z`)
	x := findBoxes(root, glyph("x"))
	y := findBoxes(root, glyph("y"))
	z := findBoxes(root, glyph("z"))
	if len(x) != 1 || len(y) != 1 || len(z) != 1 {
		t.Fatalf("expected one glyph each")
	}
	if x[0].Color != "red" || y[0].Color != "" {
		t.Fatalf("expected color to stay inside its group, got %q %q", x[0].Color, y[0].Color)
	}
	if !approx(y[0].MaxFontSize, 1) || !approx(z[0].MaxFontSize, 0.7) {
		t.Fatalf("expected style switch to affect only later atoms, got %v %v", y[0].MaxFontSize, z[0].MaxFontSize)
	}
}

func dumpBoxes(t *testing.T, boxes []*Box) string {
	t.Helper()
	var buf bytes.Buffer
	for _, b := range boxes {
		if err := WriteBoxTree(b, DumpRequest{Writer: &buf}); err != nil {
			t.Fatalf("dump: %v", err)
		}
	}
	return buf.String()
}

func TestLayoutLeavesEarlierResultsIntact(t *testing.T) {
	nodes := mustParse(t, `\frac{a+b}{\sqrt{x^2}} \textcolor{green}{y} \left(z\right)`)
	var tree bytes.Buffer
	if err := WriteParseTree(nodes, DumpRequest{Writer: &tree}); err != nil {
		t.Fatalf("dump: %v", err)
	}

	first, err := Layout(nodes, DefaultOptions())
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	before := dumpBoxes(t, first)

	second, err := Layout(nodes, DefaultOptions().WithStyle(StyleScript).WithSize(8).WithColor("blue"))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if after := dumpBoxes(t, first); after != before {
		t.Fatalf("second layout changed the first result:\n%s\nvs\n%s", before, after)
	}
	if dumpBoxes(t, second) == before {
		t.Fatalf("expected different options to give a different layout")
	}
	var again bytes.Buffer
	if err := WriteParseTree(nodes, DumpRequest{Writer: &again}); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if again.String() != tree.String() {
		t.Fatalf("layout modified the parse tree")
	}
}

func TestSizingClasses(t *testing.T) {
	root := mustBuild(t, `{\large x} y`)
	x := findBoxes(root, glyph("x"))
	if len(x) != 1 {
		t.Fatalf("expected one x")
	}
	for _, class := range []string{"sizing", "reset-size5", "size6"} {
		if !x[0].HasClass(class) {
			t.Fatalf("expected %s on resized glyph, got %v", class, x[0].Classes)
		}
	}
	y := findBoxes(root, glyph("y"))
	if len(y) != 1 || y[0].HasClass("sizing") {
		t.Fatalf("expected no sizing classes at the same size, got %v", y)
	}
	if !approx(x[0].MaxFontSize, 1.2) {
		t.Fatalf("expected \\large glyph at 1.2, got %v", x[0].MaxFontSize)
	}
}

func TestLeftRightBodyCancelsAgainstDelimiters(t *testing.T) {
	for _, input := range []string{`\left(a+\right)`, `\left(+a\right)`} {
		plus := findBoxes(mustBuild(t, input), glyph("+"))
		if len(plus) != 1 || plus[0].OuterClass(true) != "mord" {
			t.Fatalf("%s: expected + next to a delimiter to be an ord, got %v", input, plus)
		}
	}
	plus := findBoxes(mustBuild(t, `\left(a+b\right)`), glyph("+"))
	if len(plus) != 1 || plus[0].OuterClass(true) != "mbin" {
		t.Fatalf("expected + between operands to stay binary")
	}
}

func TestArrayHorizontalRules(t *testing.T) {
	root := mustBuild(t, `\begin{array}{c}\hline a\\\hdashline b\\\hline\end{array}`)
	solid := findBoxes(root, withClass("hline"))
	dashed := findBoxes(root, withClass("hdashline"))
	if len(solid) != 2 || len(dashed) != 1 {
		t.Fatalf("expected two solid and one dashed rule, got %d and %d", len(solid), len(dashed))
	}
	// rules are stacked bottom to top
	if solid[0].Shift <= dashed[0].Shift || dashed[0].Shift <= solid[1].Shift {
		t.Fatalf("unexpected rule positions %v %v %v", solid[0].Shift, dashed[0].Shift, solid[1].Shift)
	}
	if solid[0].Width <= 0 || !approx(solid[0].Width, solid[1].Width) {
		t.Fatalf("expected rules to span the table, got %v", solid[0].Width)
	}
	if len(findBoxes(mustBuild(t, `\begin{array}{c}a\end{array}`), withClass("hline"))) != 0 {
		t.Fatalf("expected no rules without \\hline")
	}
}

func TestScriptsShrinkAndShift(t *testing.T) {
	boxes := mustLayout(t, `x^2`, DefaultOptions())
	two := findBoxes(boxes[0], glyph("2"))
	if len(two) != 1 {
		t.Fatalf("expected superscript glyph")
	}
	if !approx(two[0].MaxFontSize, 0.7) {
		t.Fatalf("expected script size, got %v", two[0].MaxFontSize)
	}
	sups := findBoxes(boxes[0], func(b *Box) bool { return b.Kind == BoxVList })
	if len(sups) == 0 || sups[0].Children[0].Shift >= 0 {
		t.Fatalf("expected superscript raised above the baseline")
	}
}

func TestCustomBuilder(t *testing.T) {
	reg, err := DefaultRegistry().Extend(FunctionSpec{
		Names:   []string{`\wrapped`},
		NumArgs: 1,
		Builder: func(ctx *BuildContext, n *CustomNode, opts Options) (*Box, error) {
			inner, err := ctx.Group(n.Args[0], opts)
			if err != nil {
				return nil, err
			}
			open := ctx.Symbol("[", FontMainRegular, MathMode, opts, "mopen")
			return ctx.Span([]string{"mord", "wrapped"}, []*Box{open, inner}, opts), nil
		},
	})
	if err != nil {
		t.Fatalf("extend: %v", err)
	}
	nodes := mustParse(t, `\wrapped{x}+1`, WithRegistry(reg))
	if c, ok := nodes[0].(*CustomNode); !ok || c.Name != `\wrapped` || len(c.Args) != 1 {
		t.Fatalf("expected CustomNode, got %#v", nodes[0])
	}
	root := mustBuild(t, `\wrapped{x}+1`, WithRegistry(reg))
	wrapped := findBoxes(root, withClass("wrapped"))
	if len(wrapped) != 1 || len(findBoxes(wrapped[0], glyph("x"))) != 1 {
		t.Fatalf("expected builder output to hold the argument")
	}
	if len(findBoxes(root, withClass("mbin"))) != 1 {
		t.Fatalf("expected custom ord to keep the following plus binary")
	}
}

func TestHandlerReturningCustomNodeGetsBuilder(t *testing.T) {
	reg, err := DefaultRegistry().Extend(FunctionSpec{
		Names:   []string{`\mark`},
		NumArgs: 0,
		Handler: func(ctx *FuncContext, _, _ []Node) (Node, error) {
			return &CustomNode{nodeBase: newBase(ctx.Mode, ctx.Loc), Name: "mark"}, nil
		},
		Builder: func(ctx *BuildContext, _ *CustomNode, opts Options) (*Box, error) {
			return ctx.Span([]string{"mord", "mark"}, nil, opts), nil
		},
	})
	if err != nil {
		t.Fatalf("extend: %v", err)
	}
	root := mustBuild(t, `\mark`, WithRegistry(reg))
	if len(findBoxes(root, withClass("mark"))) != 1 {
		t.Fatalf("expected builder to be attached to handler output")
	}
}

func TestLayoutUnknownNode(t *testing.T) {
	for _, n := range []Node{&CustomNode{Name: `\orphan`}, &ColorArgNode{Color: "red"}} {
		_, err := Layout([]Node{n}, DefaultOptions())
		if !errors.Is(err, ErrUnknownNodeType) {
			t.Fatalf("expected ErrUnknownNodeType for %T, got %v", n, err)
		}
		var perr *Error
		if !errors.As(err, &perr) || perr.Kind != KindUnknownNode || perr.Pos != -1 {
			t.Fatalf("expected positionless unknown node error, got %v", err)
		}
	}
}

func TestLayoutRecursionLimit(t *testing.T) {
	nodes := mustParse(t, `{{{{x}}}}`)
	if _, err := Layout(nodes, DefaultOptions(), WithMaxDepth(3)); !errors.Is(err, ErrRecursionLimit) {
		t.Fatalf("expected recursion limit, got %v", err)
	}
	if _, err := Layout(nodes, DefaultOptions()); err != nil {
		t.Fatalf("default depth should suffice: %v", err)
	}
}

func TestMiddleMatchesOuterDelimiters(t *testing.T) {
	root := mustBuild(t, `\left( \frac{a}{b} \middle| c \right|`)
	lr := findBoxes(root, func(b *Box) bool {
		return b.Kind == BoxSpan && len(b.Classes) == 1 && b.Classes[0] == "minner"
	})
	if len(lr) != 1 {
		t.Fatalf("expected one left/right group, got %d", len(lr))
	}
	children := lr[0].Children
	right := children[len(children)-1]
	var middle *Box
	for _, c := range children[1 : len(children)-1] {
		if c.HasClass("minner") && c.HasClass("delimsizing") {
			middle = c
		}
	}
	if middle == nil {
		t.Fatalf("expected middle delimiter among %v", outerClasses(children))
	}
	if !approx(middle.Height, right.Height) || !approx(middle.Depth, right.Depth) {
		t.Fatalf("expected middle sized like the right delimiter, got %v/%v vs %v/%v",
			middle.Height, middle.Depth, right.Height, right.Depth)
	}
	if !children[0].HasClass("mopen") || !right.HasClass("mclose") {
		t.Fatalf("expected open and close classes on the outer delimiters")
	}
}

func TestArrayColumnsAndSeparators(t *testing.T) {
	root := mustBuild(t, `\begin{array}{l|r}a&bb\\ccc&d\end{array}`)
	tables := findBoxes(root, withClass("mtable"))
	if len(tables) != 1 {
		t.Fatalf("expected one table, got %d", len(tables))
	}
	table := tables[0]
	if n := len(findBoxes(table, withClass("vertical-separator"))); n != 1 {
		t.Fatalf("expected one separator, got %d", n)
	}
	if len(findBoxes(table, withClass("col-align-l"))) != 1 || len(findBoxes(table, withClass("col-align-r"))) != 1 {
		t.Fatalf("expected left and right aligned columns")
	}
	// The array is centered on the math axis.
	axis := DefaultOptions().FontMetrics().AxisHeight
	if !approx((table.Height-table.Depth)/2, axis) {
		t.Fatalf("expected table centered on the axis, got h=%v d=%v", table.Height, table.Depth)
	}
}

func TestMatrixGetsDelimiters(t *testing.T) {
	root := mustBuild(t, `\begin{pmatrix}a&b\\c&d\end{pmatrix}`)
	if len(findBoxes(root, withClass("mtable"))) != 1 {
		t.Fatalf("expected table")
	}
	if len(findBoxes(root, withClass("mopen"))) == 0 || len(findBoxes(root, withClass("mclose"))) == 0 {
		t.Fatalf("expected parentheses around matrix")
	}
}

func TestBuildRootStrut(t *testing.T) {
	root := mustBuild(t, `\sqrt{x}`, WithDisplayMode(true))
	if !root.HasClass("mathbox") || !root.HasClass("display") {
		t.Fatalf("unexpected root classes %v", root.Classes)
	}
	strut, body := root.Children[0], root.Children[1]
	if !strut.HasClass("strut") || !approx(strut.Height, body.Height) || !approx(strut.Depth, body.Depth) {
		t.Fatalf("expected strut to match body extent")
	}
}
