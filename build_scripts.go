package mathbox

// scriptSpace is the gap after a script in absolute ems.
const scriptSpace = 0.5 / ptPerEm

// baseElem unwraps single element groups around a script base.
func baseElem(n Node) Node {
	for {
		switch g := n.(type) {
		case *OrdGroupNode:
			if len(g.Body) != 1 {
				return n
			}
			n = g.Body[0]
		case *ColorNode:
			if len(g.Body) != 1 {
				return n
			}
			n = g.Body[0]
		default:
			return n
		}
	}
}

// isCharacterBox reports whether n lays out as a single glyph.
func isCharacterBox(n Node) bool {
	s, ok := baseElem(n).(*SymbolNode)
	return ok && s.Group != GroupSpacing
}

// shouldHandleSupSub reports whether the base lays out its own scripts.
func shouldHandleSupSub(n *SupSubNode, opts Options) bool {
	switch b := n.Base.(type) {
	case *OpNode:
		return b.Limits && (opts.Style().Size() == StyleDisplay.Size() || b.AlwaysHandleSupSub)
	case *AccentNode:
		return isCharacterBox(b.Base)
	case *HorizBraceNode:
		if b.IsOver {
			return n.Sup != nil && n.Sub == nil
		}
		return n.Sub != nil && n.Sup == nil
	}
	return false
}

// buildScript lays out a script in style and wraps it in a span that
// resets the parent style.
func (c *composer) buildScript(n Node, style Style, opts Options) (*Box, Options, error) {
	sopts := opts.WithStyle(style)
	inner, err := c.buildGroup(n, sopts)
	if err != nil {
		return nil, sopts, err
	}
	return makeSpan([]string{opts.Style().resetClass(), style.class()}, []*Box{inner}, &sopts), sopts, nil
}

func (c *composer) buildSupSub(n *SupSubNode, opts Options) (*Box, error) {
	if shouldHandleSupSub(n, opts) {
		switch b := n.Base.(type) {
		case *OpNode:
			return c.buildOp(b, n, opts)
		case *AccentNode:
			return c.buildAccent(b, n, opts)
		case *HorizBraceNode:
			return c.buildHorizBrace(b, n, opts)
		}
	}

	base, err := c.buildGroup(n.Base, opts)
	if err != nil {
		return nil, err
	}
	style := opts.Style()
	fm := opts.FontMetrics()
	charBase := isCharacterBox(n.Base)

	var sup, sub *Box
	var supShift, subShift float64
	if n.Sup != nil {
		var supOpts Options
		sup, supOpts, err = c.buildScript(n.Sup, style.Sup(), opts)
		if err != nil {
			return nil, err
		}
		if !charBase {
			supShift = base.Height - supOpts.FontMetrics().SupDrop
		}
		sup = sup.clone()
		sup.MarginRight = scriptSpace
	}
	if n.Sub != nil {
		var subOpts Options
		sub, subOpts, err = c.buildScript(n.Sub, style.Sub(), opts)
		if err != nil {
			return nil, err
		}
		if !charBase {
			subShift = base.Depth + subOpts.FontMetrics().SubDrop
		}
		sub = sub.clone()
		sub.MarginRight = scriptSpace
		if base.Kind == BoxSymbol || base.HasClass("op-symbol") {
			sub.MarginLeft = -base.Italic
		}
	}

	minSupShift := fm.Sup2
	switch {
	case style == StyleDisplay:
		minSupShift = fm.Sup1
	case style.Cramped():
		minSupShift = fm.Sup3
	}

	var scripts *Box
	switch {
	case sup == nil:
		subShift = max(subShift, fm.Sub1, sub.Height-0.8*fm.XHeight)
		scripts = MakeVList([]VListChild{VElem(sub)}, PositionShift, subShift, opts)
	case sub == nil:
		supShift = max(supShift, minSupShift, sup.Depth+0.25*fm.XHeight)
		scripts = MakeVList([]VListChild{VElem(sup)}, PositionShift, -supShift, opts)
	default:
		supShift = max(supShift, minSupShift, sup.Depth+0.25*fm.XHeight)
		subShift = max(subShift, fm.Sub2)
		rule := fm.DefaultRuleThickness
		if gap := (supShift - sup.Depth) - (sub.Height - subShift); gap < 4*rule {
			subShift = 4*rule - (supShift - sup.Depth) + sub.Height
			if psi := 0.8*fm.XHeight - (supShift - sup.Depth); psi > 0 {
				supShift += psi
				subShift -= psi
			}
		}
		scripts = MakeVList([]VListChild{
			VShifted(sub, subShift),
			VShifted(sup, -supShift),
		}, PositionIndividualShift, 0, opts)
	}

	class := base.OuterClass(true)
	if class == "" {
		class = "mord"
	}
	return makeSpan([]string{class}, []*Box{base, makeSpan([]string{"msupsub"}, []*Box{scripts}, &opts)}, &opts), nil
}

// centered returns a copy of b with margins centering it in width, moved
// right by offset.
func centered(b *Box, width, offset float64) *Box {
	out := b.clone()
	gap := width - b.TotalWidth()
	out.MarginLeft += gap/2 + offset
	out.MarginRight += gap/2 - offset
	return out
}

// buildOp lays out a large or named operator. ss is set when the operator
// places its own limits.
func (c *composer) buildOp(op *OpNode, ss *SupSubNode, opts Options) (*Box, error) {
	style := opts.Style()
	fm := opts.FontMetrics()

	var base *Box
	var slant, baseShift float64
	switch {
	case op.Symbol:
		large := style.Size() == StyleDisplay.Size() && op.Name != "\\smallint"
		font, size := FontSize1, "small-op"
		if large {
			font, size = FontSize2, "large-op"
		}
		glyph := c.makeSymbol(symbolText(MathMode, op.Name), font, MathMode, opts, "op-symbol", size)
		slant = glyph.Italic
		baseShift = (glyph.Height-glyph.Depth)/2 - fm.AxisHeight
		if ss == nil {
			glyph.Shift = baseShift
			return makeSpan([]string{"mop", "op-symbol"}, []*Box{glyph}, &opts), nil
		}
		base = glyph
	case op.Body != nil:
		elems, err := c.buildExpression(op.Body, opts, true, [2]string{})
		if err != nil {
			return nil, err
		}
		base = makeSpan([]string{"mop"}, elems, &opts)
	default:
		var letters []*Box
		for _, r := range op.Name[1:] {
			letters = append(letters, c.makeSymbol(string(r), FontMainRegular, TextMode, opts))
		}
		base = makeSpan([]string{"mop"}, letters, &opts)
	}
	if ss == nil {
		return base, nil
	}

	var sup, sub *Box
	var supKern, subKern float64
	var err error
	if ss.Sup != nil {
		if sup, _, err = c.buildScript(ss.Sup, style.Sup(), opts); err != nil {
			return nil, err
		}
		supKern = max(fm.BigOpSpacing1, fm.BigOpSpacing3-sup.Depth)
	}
	if ss.Sub != nil {
		if sub, _, err = c.buildScript(ss.Sub, style.Sub(), opts); err != nil {
			return nil, err
		}
		subKern = max(fm.BigOpSpacing2, fm.BigOpSpacing4-sub.Height)
	}

	width := base.TotalWidth()
	for _, b := range []*Box{sup, sub} {
		if b != nil {
			width = max(width, b.TotalWidth())
		}
	}
	base = centered(makeSpan(nil, []*Box{base}, &opts), width, 0)
	if sup != nil {
		sup = centered(sup, width, slant/2)
	}
	if sub != nil {
		sub = centered(sub, width, -slant/2)
	}

	spacing := fm.BigOpSpacing5
	var vl *Box
	switch {
	case sup != nil && sub != nil:
		bottom := spacing + sub.Height + sub.Depth + subKern + base.Depth + baseShift
		vl = MakeVList([]VListChild{
			VKern(spacing), VElem(sub), VKern(subKern),
			VElem(base),
			VKern(supKern), VElem(sup), VKern(spacing),
		}, PositionBottom, bottom, opts)
	case sub != nil:
		top := base.Height - baseShift
		vl = MakeVList([]VListChild{
			VKern(spacing), VElem(sub), VKern(subKern),
			VElem(base),
		}, PositionTop, top, opts)
	case sup != nil:
		bottom := base.Depth + baseShift
		vl = MakeVList([]VListChild{
			VElem(base),
			VKern(supKern), VElem(sup), VKern(spacing),
		}, PositionBottom, bottom, opts)
	default:
		return base, nil
	}
	return makeSpan([]string{"mop", "op-limits"}, []*Box{vl}, &opts), nil
}

// buildAccent puts the accent glyph over a cramped copy of the base. With
// ss set the scripts are laid out against the bare base first and the base
// is then swapped for the accented one.
func (c *composer) buildAccent(acc *AccentNode, ss *SupSubNode, opts Options) (*Box, error) {
	var scripted *Box
	if ss != nil {
		bare := *ss
		bare.Base = acc.Base
		var err error
		if scripted, err = c.buildSupSub(&bare, opts); err != nil {
			return nil, err
		}
	}

	style := opts.Style()
	crampOpts := opts.WithStyle(style.Cramp())
	body, err := c.buildGroup(acc.Base, crampOpts)
	if err != nil {
		return nil, err
	}
	var skew float64
	if isCharacterBox(acc.Base) {
		ch, err := c.buildGroup(baseElem(acc.Base), crampOpts)
		if err != nil {
			return nil, err
		}
		skew = ch.Skew
	}
	clearance := min(body.Height, opts.FontMetrics().XHeight)

	classes := []string{"accent-body"}
	if acc.Label == "\\vec" {
		classes = append(classes, "accent-vec")
	}
	mark := c.makeSymbol(symbolText(MathMode, acc.Label), FontMainRegular, MathMode, opts, classes...)
	mark.Italic = 0
	mark.MarginLeft = (body.Width-mark.Width)/2 + skew
	mark.MarginRight = body.Width - mark.MarginLeft - mark.Width

	vl := MakeVList([]VListChild{
		VElem(body),
		VKern(-clearance),
		VElem(mark),
	}, PositionFirstBaseline, 0, opts)
	wrap := makeSpan([]string{"mord", "accent"}, []*Box{vl}, &opts)
	if scripted == nil {
		return wrap, nil
	}

	children := append([]*Box{wrap}, scripted.Children[1:]...)
	return makeSpan([]string{"mord"}, children, &opts), nil
}

// braceHeight is the drawn height of a horizontal brace in ems.
const braceHeight = 0.548

// buildHorizBrace lays out \overbrace and \underbrace. When ss is set its
// matching script is stacked beyond the brace.
func (c *composer) buildHorizBrace(hb *HorizBraceNode, ss *SupSubNode, opts Options) (*Box, error) {
	body, err := c.buildGroup(hb.Base, opts)
	if err != nil {
		return nil, err
	}
	mult := opts.SizeMultiplier()
	glyph := "⏟"
	if hb.IsOver {
		glyph = "⏞"
	}
	brace := &Box{
		Kind:        BoxSymbol,
		Text:        glyph,
		Classes:     []string{"stretchy", hb.Label[1:]},
		Width:       body.Width,
		Height:      braceHeight * mult,
		MaxFontSize: mult,
		Color:       opts.inkColor(),
	}
	kern := 0.1 * mult

	var vl *Box
	if hb.IsOver {
		vl = MakeVList([]VListChild{VElem(body), VKern(kern), VElem(brace)}, PositionFirstBaseline, 0, opts)
	} else {
		vl = MakeVList([]VListChild{VElem(brace), VKern(kern), VElem(body)}, PositionTop, body.Height, opts)
	}

	if ss != nil {
		script, scriptStyle := ss.Sup, opts.Style().Sup()
		if !hb.IsOver {
			script, scriptStyle = ss.Sub, opts.Style().Sub()
		}
		label, _, err := c.buildScript(script, scriptStyle, opts)
		if err != nil {
			return nil, err
		}
		stack := makeSpan(nil, []*Box{vl}, &opts)
		width := max(stack.TotalWidth(), label.TotalWidth())
		stack = centered(stack, width, 0)
		label = centered(label, width, 0)
		gap := 0.2 * mult
		if hb.IsOver {
			vl = MakeVList([]VListChild{VElem(stack), VKern(gap), VElem(label)}, PositionFirstBaseline, 0, opts)
		} else {
			vl = MakeVList([]VListChild{VElem(label), VKern(gap), VElem(stack)}, PositionTop, stack.Height, opts)
		}
	}
	return makeSpan([]string{"mord", "horizBrace"}, []*Box{vl}, &opts), nil
}

// buildXArrow stretches an arrow under its label, with an optional label
// below.
func (c *composer) buildXArrow(n *XArrowNode, opts Options) (*Box, error) {
	style := opts.Style()
	mult := opts.SizeMultiplier()
	upper, _, err := c.buildScript(n.Body, style.Sup(), opts)
	if err != nil {
		return nil, err
	}
	var lower *Box
	if n.Below != nil {
		if lower, _, err = c.buildScript(n.Below, style.Sub(), opts); err != nil {
			return nil, err
		}
	}

	labelWidth := upper.TotalWidth()
	if lower != nil {
		labelWidth = max(labelWidth, lower.TotalWidth())
	}
	width := max(labelWidth+mult, mult)

	glyph := "→"
	if n.Label == "\\xleftarrow" {
		glyph = "←"
	}
	arrow := c.makeSymbol(glyph, FontMainRegular, MathMode, opts, "x-arrow-body")
	arrow.Width = width

	gap := 0.111 * mult
	children := make([]VListChild, 0, 3)
	if lower != nil {
		children = append(children, VShifted(centered(lower, width, 0), arrow.Depth+gap+lower.Height))
	}
	children = append(children,
		VShifted(arrow, 0),
		VShifted(centered(upper, width, 0), -(arrow.Height+gap+upper.Depth)),
	)
	vl := MakeVList(children, PositionIndividualShift, 0, opts)
	return makeSpan([]string{"mrel", "x-arrow"}, []*Box{vl}, &opts), nil
}
