package mathbox

// composer folds a parse tree into boxes. Options travel with every call;
// the composer only tracks nesting and pending \middle delimiters.
type composer struct {
	metrics  Metrics
	input    string
	maxDepth int
	depth    int
	middles  map[*Box]string
}

func newComposer(metrics Metrics, input string, maxDepth int) *composer {
	if metrics == nil {
		metrics = DefaultMetrics()
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &composer{metrics: metrics, input: input, maxDepth: maxDepth}
}

// BuildContext gives extension builders access to the composer.
type BuildContext struct {
	c *composer
}

// Group lays out a single node.
func (ctx *BuildContext) Group(n Node, opts Options) (*Box, error) {
	return ctx.c.buildGroup(n, opts)
}

// Expression lays out a list of nodes with inter-atom spacing.
func (ctx *BuildContext) Expression(nodes []Node, opts Options) ([]*Box, error) {
	return ctx.c.buildExpression(nodes, opts, true, [2]string{})
}

// Symbol returns a glyph box measured with the configured metrics.
func (ctx *BuildContext) Symbol(text, font string, mode Mode, opts Options, classes ...string) *Box {
	return ctx.c.makeSymbol(text, font, mode, opts, classes...)
}

// Span groups boxes horizontally.
func (ctx *BuildContext) Span(classes []string, children []*Box, opts Options) *Box {
	return makeSpan(classList(classes...), children, &opts)
}

// VList stacks boxes; see MakeVList.
func (ctx *BuildContext) VList(children []VListChild, pos PositionType, posData float64, opts Options) *Box {
	return MakeVList(children, pos, posData, opts)
}

func (c *composer) errPos(n Node) int {
	if c.input == "" || n == nil {
		return -1
	}
	return n.Location().Start
}

// buildExpression builds nodes into a flat list of boxes. For real groups
// it then cancels misplaced binary operators and inserts inter-atom glue;
// surrounding names the classes just outside the group, empty for a group
// boundary.
func (c *composer) buildExpression(nodes []Node, opts Options, isRealGroup bool, surrounding [2]string) ([]*Box, error) {
	var groups []*Box
	for _, n := range nodes {
		b, err := c.buildGroup(n, opts)
		if err != nil {
			return nil, err
		}
		if b.Kind == BoxFragment {
			groups = append(groups, b.Children...)
		} else {
			groups = append(groups, b)
		}
	}
	if !isRealGroup {
		return groups, nil
	}

	glueOpts := opts
	if len(nodes) == 1 {
		switch n := nodes[0].(type) {
		case *SizingNode:
			glueOpts = opts.WithSize(n.Size)
		case *StylingNode:
			glueOpts = opts.WithStyle(n.Style)
		}
	}

	left, right := surrounding[0], surrounding[1]
	if left == "" {
		left = "leftmost"
	}
	if right == "" {
		right = "rightmost"
	}
	cancelBins(groups, left, right)
	return insertGlue(groups, glueOpts), nil
}

func isSpaceBox(b *Box) bool {
	return b.HasClass("mspace")
}

// cancelBins reclassifies bin atoms that have no left operand or no right
// operand to ord. Spacing boxes are skipped.
func cancelBins(groups []*Box, left, right string) {
	prevClass := left
	var prev *Box
	for _, b := range groups {
		if isSpaceBox(b) {
			continue
		}
		class := b.OuterClass(true)
		switch {
		case prev != nil && prevClass == "mbin" && rightCancellers[class]:
			outerBox(prev, false).setAtomClass("mord")
		case class == "mbin" && leftCancellers[prevClass]:
			outerBox(b, true).setAtomClass("mord")
		}
		prev, prevClass = b, b.OuterClass(false)
	}
	if prev != nil && prevClass == "mbin" && rightCancellers[right] {
		outerBox(prev, false).setAtomClass("mord")
	}
}

// outerBox descends into fragments to the box that owns the outer class.
func outerBox(b *Box, left bool) *Box {
	for b.Kind == BoxFragment && len(b.Children) > 0 {
		if left {
			b = b.Children[0]
		} else {
			b = b.Children[len(b.Children)-1]
		}
	}
	return b
}

// insertGlue puts spacing between consecutive non-space atoms.
func insertGlue(groups []*Box, opts Options) []*Box {
	out := make([]*Box, 0, len(groups))
	var prev *Box
	for _, b := range groups {
		if isSpaceBox(b) {
			out = append(out, b)
			continue
		}
		if prev != nil {
			if w, ok := interAtomGlue(prev.OuterClass(false), b.OuterClass(true), opts); ok {
				out = append(out, makeGlue(w, ""))
			}
		}
		out = append(out, b)
		prev = b
	}
	return out
}

// buildGroup lays out one node. Every node variant has a case; nodes that
// only exist during parsing reach the default.
func (c *composer) buildGroup(n Node, opts Options) (*Box, error) {
	if n == nil {
		return makeSpan(nil, nil, &opts), nil
	}
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.maxDepth {
		return nil, newError(KindRecursionLimit, nil, c.input, c.errPos(n), "Maximum nesting depth of %d exceeded", c.maxDepth)
	}

	switch n := n.(type) {
	case *SymbolNode:
		return c.buildSymbol(n, opts), nil
	case *OrdGroupNode:
		return c.buildSpanOf([]string{"mord"}, n.Body, opts)
	case *TextNode:
		return c.buildText(n, opts)
	case *ColorNode:
		return c.buildColor(n, opts)
	case *SizingNode:
		return c.buildSizing(n, opts)
	case *StylingNode:
		return c.buildFragment(n.Body, opts.WithStyle(n.Style))
	case *FontNode:
		return c.buildGroup(n.Body, opts.WithFont(n.Font))
	case *PhantomNode:
		return c.buildSpanOf([]string{"mord", "phantom"}, n.Body, opts.WithPhantom())
	case *MClassNode:
		return c.buildSpanOf([]string{n.Class}, n.Body, opts)
	case *LapNode:
		return c.buildLap(n, opts)
	case *RuleNode:
		return c.buildRule(n, opts), nil
	case *KernNode:
		return makeGlue(n.Dimension.ToEm(opts), ""), nil
	case *SupSubNode:
		return c.buildSupSub(n, opts)
	case *OpNode:
		return c.buildOp(n, nil, opts)
	case *GenFracNode:
		return c.buildGenFrac(n, opts)
	case *SqrtNode:
		return c.buildSqrt(n, opts)
	case *OverlineNode:
		return c.buildOverline(n, opts)
	case *UnderlineNode:
		return c.buildUnderline(n, opts)
	case *AccentNode:
		return c.buildAccent(n, nil, opts)
	case *LeftRightNode:
		return c.buildLeftRight(n, opts)
	case *MiddleNode:
		return c.buildMiddle(n, opts)
	case *DelimSizingNode:
		return c.buildDelimSizing(n, opts)
	case *ArrayNode:
		return c.buildArray(n, opts)
	case *HorizBraceNode:
		return c.buildHorizBrace(n, nil, opts)
	case *XArrowNode:
		return c.buildXArrow(n, opts)
	case *HrefNode:
		return c.buildHref(n, opts)
	case *RaiseBoxNode:
		return c.buildRaiseBox(n, opts)
	case *EncloseNode:
		return c.buildEnclose(n, opts)
	case *SmashNode:
		return c.buildSmash(n, opts)
	case *CustomNode:
		if n.builder == nil {
			return nil, newError(KindUnknownNode, nil, c.input, c.errPos(n), "No builder for '%s'", n.Name)
		}
		return n.builder(&BuildContext{c: c}, n, opts)
	}
	return nil, newError(KindUnknownNode, nil, c.input, c.errPos(n), "Got group of unknown type: '%T'", n)
}

func (c *composer) buildSpanOf(classes []string, body []Node, opts Options) (*Box, error) {
	elems, err := c.buildExpression(body, opts, true, [2]string{})
	if err != nil {
		return nil, err
	}
	return makeSpan(classes, elems, &opts), nil
}

// buildSizing tags every child laid out at the new size with the sizing
// classes relative to opts.
func (c *composer) buildSizing(n *SizingNode, opts Options) (*Box, error) {
	inner := opts.WithSize(n.Size)
	b, err := c.buildFragment(n.Body, inner)
	if err != nil {
		return nil, err
	}
	if classes := inner.sizingClasses(opts); classes != nil {
		for i, child := range b.Children {
			cp := child.clone()
			cp.Classes = append(cp.Classes, classes...)
			b.Children[i] = cp
		}
	}
	return b, nil
}

func (c *composer) buildFragment(body []Node, opts Options) (*Box, error) {
	elems, err := c.buildExpression(body, opts, false, [2]string{})
	if err != nil {
		return nil, err
	}
	return makeFragment(elems), nil
}
