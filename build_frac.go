package mathbox

func (c *composer) buildGenFrac(n *GenFracNode, opts Options) (*Box, error) {
	fstyle := opts.Style()
	switch n.Size {
	case FracDisplay:
		fstyle = StyleDisplay
	case FracText:
		fstyle = StyleText
	}
	fopts := opts.WithStyle(fstyle)
	display := fstyle.Size() == StyleDisplay.Size()

	numer, _, err := c.buildScript(n.Numer, fstyle.FracNum(), fopts)
	if err != nil {
		return nil, err
	}
	denom, _, err := c.buildScript(n.Denom, fstyle.FracDen(), fopts)
	if err != nil {
		return nil, err
	}

	fm := fopts.FontMetrics()
	var rule float64
	if n.HasBarLine {
		rule = fm.DefaultRuleThickness
	}
	var numShift, denomShift, clearance float64
	switch {
	case display:
		numShift, denomShift = fm.Num1, fm.Denom1
		clearance = 3 * rule
		if rule == 0 {
			clearance = 7 * fm.DefaultRuleThickness
		}
	case rule > 0:
		numShift, denomShift, clearance = fm.Num2, fm.Denom2, rule
	default:
		numShift, denomShift, clearance = fm.Num3, fm.Denom2, 3*fm.DefaultRuleThickness
	}

	width := max(numer.TotalWidth(), denom.TotalWidth())
	numer = centered(numer, width, 0)
	denom = centered(denom, width, 0)

	var children []VListChild
	if rule == 0 {
		if gap := (numShift - numer.Depth) - (denom.Height - denomShift); gap < clearance {
			numShift += (clearance - gap) / 2
			denomShift += (clearance - gap) / 2
		}
		children = []VListChild{
			VShifted(denom, denomShift),
			VShifted(numer, -numShift),
		}
	} else {
		axis := fm.AxisHeight
		if gap := (numShift - numer.Depth) - (axis + rule/2); gap < clearance {
			numShift += clearance - gap
		}
		if gap := (axis - rule/2) - (denom.Height - denomShift); gap < clearance {
			denomShift += clearance - gap
		}
		line := makeRuleBox("frac-line", width, rule, fopts)
		children = []VListChild{
			VShifted(denom, denomShift),
			VShifted(line, -(axis - rule/2)),
			VShifted(numer, -numShift),
		}
	}
	frac := MakeVList(children, PositionIndividualShift, 0, fopts)

	delimSize := fm.Delim2
	if display {
		delimSize = fm.Delim1
	}
	side := func(delim, class string) *Box {
		if delim == "" || delim == "." {
			return nullDelimiter(fopts, class)
		}
		return c.customSizedDelim(delim, delimSize, true, fopts, class)
	}
	return makeSpan([]string{"mord"}, []*Box{
		side(n.LeftDelim, "mopen"),
		makeSpan([]string{"mfrac"}, []*Box{frac}, &fopts),
		side(n.RightDelim, "mclose"),
	}, &fopts), nil
}

func (c *composer) buildSqrt(n *SqrtNode, opts Options) (*Box, error) {
	fm := opts.FontMetrics()
	inner, err := c.buildGroup(n.Body, opts.WithStyle(opts.Style().Cramp()))
	if err != nil {
		return nil, err
	}
	if inner.Height == 0 {
		inner = inner.clone()
		inner.Height = fm.XHeight
	}
	rule := fm.DefaultRuleThickness
	line := makeRuleBox("sqrt-line", inner.TotalWidth(), rule, opts)

	phi := rule
	if opts.Style().Size() == StyleDisplay.Size() {
		phi = fm.XHeight
	}
	lineClearance := rule + phi/4
	innerTotal := inner.Height + inner.Depth
	delim := c.customSizedDelim("\\surd", innerTotal+lineClearance+rule, false, opts, "sqrt-sign")
	if extra := delim.Height + delim.Depth - rule; extra > innerTotal+lineClearance {
		lineClearance = (lineClearance + extra - innerTotal) / 2
	}
	delim.Shift = -(inner.Height + lineClearance + rule - delim.Height)

	body := MakeVList([]VListChild{
		VElem(inner),
		VKern(lineClearance),
		VElem(line),
		VKern(rule),
	}, PositionFirstBaseline, 0, opts)
	if n.Index == nil {
		return makeSpan([]string{"mord", "sqrt"}, []*Box{delim, body}, &opts), nil
	}

	root, _, err := c.buildScript(n.Index, StyleScriptScript, opts)
	if err != nil {
		return nil, err
	}
	radical := makeSpan(nil, []*Box{delim, body}, &opts)
	toShift := 0.6 * (radical.Height - radical.Depth)
	rootVList := MakeVList([]VListChild{VElem(root)}, PositionShift, -toShift, opts)
	index := makeSpan([]string{"root"}, []*Box{rootVList}, &opts)
	mult := opts.SizeMultiplier()
	index.MarginLeft = 5.0 / 18 * mult
	index.MarginRight = -10.0 / 18 * mult
	return makeSpan([]string{"mord", "sqrt"}, []*Box{index, delim, body}, &opts), nil
}

func (c *composer) buildOverline(n *OverlineNode, opts Options) (*Box, error) {
	inner, err := c.buildGroup(n.Body, opts.WithStyle(opts.Style().Cramp()))
	if err != nil {
		return nil, err
	}
	rule := opts.ruleThickness()
	line := makeRuleBox("overline-line", inner.TotalWidth(), rule, opts)
	vl := MakeVList([]VListChild{
		VElem(inner),
		VKern(3 * rule),
		VElem(line),
		VKern(rule),
	}, PositionFirstBaseline, 0, opts)
	return makeSpan([]string{"mord", "overline"}, []*Box{vl}, &opts), nil
}

func (c *composer) buildUnderline(n *UnderlineNode, opts Options) (*Box, error) {
	inner, err := c.buildGroup(n.Body, opts)
	if err != nil {
		return nil, err
	}
	rule := opts.ruleThickness()
	line := makeRuleBox("underline-line", inner.TotalWidth(), rule, opts)
	vl := MakeVList([]VListChild{
		VKern(rule),
		VElem(line),
		VKern(3 * rule),
		VElem(inner),
	}, PositionTop, inner.Height, opts)
	return makeSpan([]string{"mord", "underline"}, []*Box{vl}, &opts), nil
}

// buildMiddle lays \middle out at \big size. An enclosing \left...\right
// replaces the box once its body has been measured.
func (c *composer) buildMiddle(n *MiddleNode, opts Options) (*Box, error) {
	var b *Box
	if n.Delim == "." {
		b = nullDelimiter(opts, "minner")
	} else {
		b = c.sizedDelim(n.Delim, 1, opts, "minner")
	}
	if c.middles == nil {
		c.middles = make(map[*Box]string)
	}
	c.middles[b] = n.Delim
	return b, nil
}

func (c *composer) buildLeftRight(n *LeftRightNode, opts Options) (*Box, error) {
	inner, err := c.buildExpression(n.Body, opts, true, [2]string{"mopen", "mclose"})
	if err != nil {
		return nil, err
	}
	measured := makeFragment(inner)
	height, depth := measured.Height, measured.Depth

	delim := func(name, class string) *Box {
		if name == "." {
			return nullDelimiter(opts, class)
		}
		return c.leftRightDelim(name, height, depth, opts, class)
	}
	for i, b := range inner {
		if name, ok := c.middles[b]; ok {
			inner[i] = delim(name, "minner")
			delete(c.middles, b)
		}
	}

	children := make([]*Box, 0, len(inner)+2)
	children = append(children, delim(n.Left, "mopen"))
	children = append(children, inner...)
	children = append(children, delim(n.Right, "mclose"))
	return makeSpan([]string{"minner"}, children, &opts), nil
}

func (c *composer) buildDelimSizing(n *DelimSizingNode, opts Options) (*Box, error) {
	if n.Delim == "." {
		return nullDelimiter(opts, n.Class), nil
	}
	return c.sizedDelim(n.Delim, n.Size, opts, n.Class), nil
}
