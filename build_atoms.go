package mathbox

var groupClasses = map[SymbolGroup]string{
	GroupMathOrd: "mord",
	GroupTextOrd: "mord",
	GroupBin:     "mbin",
	GroupRel:     "mrel",
	GroupOpen:    "mopen",
	GroupClose:   "mclose",
	GroupPunct:   "mpunct",
	GroupInner:   "minner",
	GroupAccent:  "mord",
	GroupOp:      "mop",
}

// makeSymbol measures one glyph under opts. In math mode a positive italic
// correction becomes right margin.
func (c *composer) makeSymbol(text, font string, mode Mode, opts Options, classes ...string) *Box {
	mult := opts.SizeMultiplier()
	b := &Box{
		Kind:        BoxSymbol,
		Text:        text,
		Font:        font,
		Classes:     classList(classes...),
		MaxFontSize: mult,
		Color:       opts.inkColor(),
	}
	if m, ok := c.metrics.Glyph(text, font, mode); ok {
		b.Height = m.Height * mult
		b.Depth = m.Depth * mult
		b.Width = m.Width * mult
		b.Italic = m.Italic * mult
		b.Skew = m.Skew * mult
	}
	if mode == MathMode && b.Italic > 0 {
		b.MarginRight = b.Italic
	}
	return b
}

// symbolFontFor picks the font of a symbol: ords follow the font override,
// letters default to math italic.
func symbolFontFor(n *SymbolNode, info symbolInfo, opts Options) string {
	if n.Mode == TextMode {
		if f := opts.Font(); f != "" {
			return f
		}
		return FontMainRegular
	}
	if info.font == fontAMS {
		return FontAMSRegular
	}
	switch n.Group {
	case GroupMathOrd:
		if f := opts.Font(); f != "" {
			return f
		}
		return FontMathItalic
	case GroupTextOrd:
		if f := opts.Font(); f != "" {
			return f
		}
	}
	return FontMainRegular
}

func (c *composer) buildSymbol(n *SymbolNode, opts Options) *Box {
	if n.Group == GroupSpacing {
		w, ok := spacingWidths[n.Name]
		if !ok {
			w = spacingWidths[" "]
		}
		return makeGlue(w*opts.SizeMultiplier(), "")
	}
	info, _ := lookupSymbol(n.Mode, n.Name)
	font := symbolFontFor(n, info, opts)
	class := groupClasses[n.Group]
	if n.Mode == TextMode {
		class = "mord"
	}
	extra := ""
	if font == FontMathItalic {
		extra = "mathit"
	}
	return c.makeSymbol(symbolText(n.Mode, n.Name), font, n.Mode, opts, class, extra)
}

func (c *composer) buildText(n *TextNode, opts Options) (*Box, error) {
	return c.buildSpanOf([]string{"mord", "text"}, n.Body, opts.WithFont(n.Font))
}

func (c *composer) buildColor(n *ColorNode, opts Options) (*Box, error) {
	b, err := c.buildFragment(n.Body, opts.WithColor(n.Color))
	if err != nil {
		return nil, err
	}
	b.Color = n.Color
	return b, nil
}

func (c *composer) buildLap(n *LapNode, opts Options) (*Box, error) {
	inner, err := c.buildGroup(n.Body, opts)
	if err != nil {
		return nil, err
	}
	inner = inner.clone()
	class := "rlap"
	if n.Left {
		class = "llap"
		inner.MarginLeft -= inner.TotalWidth()
	} else {
		inner.MarginRight -= inner.TotalWidth()
	}
	return makeSpan([]string{"mord", class}, []*Box{inner}, &opts), nil
}

func (c *composer) buildRule(n *RuleNode, opts Options) *Box {
	shift := n.Shift.ToEm(opts)
	b := makeRuleBox("mord", n.Width.ToEm(opts), 0, opts)
	b.Height = n.Height.ToEm(opts) + shift
	b.Depth = -shift
	return b
}

func (c *composer) buildHref(n *HrefNode, opts Options) (*Box, error) {
	b, err := c.buildSpanOf([]string{"mord", "href"}, n.Body, opts)
	if err != nil {
		return nil, err
	}
	b.Href = n.URL
	return b, nil
}

func (c *composer) buildRaiseBox(n *RaiseBoxNode, opts Options) (*Box, error) {
	body, err := c.buildGroup(n.Body, opts)
	if err != nil {
		return nil, err
	}
	dy := n.Dy.ToEm(opts)
	vl := MakeVList([]VListChild{VElem(body)}, PositionShift, -dy, opts)
	return makeSpan([]string{"mord", "raisebox"}, []*Box{vl}, &opts), nil
}

func (c *composer) buildEnclose(n *EncloseNode, opts Options) (*Box, error) {
	bodyOpts := opts
	if n.Label == "\\boxed" {
		bodyOpts = opts.WithStyle(StyleDisplay)
	}
	inner, err := c.buildGroup(n.Body, bodyOpts)
	if err != nil {
		return nil, err
	}
	fm := opts.FontMetrics()
	pad := fm.FboxSep + fm.FboxRule
	child := inner.clone()
	child.MarginLeft += pad
	child.MarginRight += pad
	b := makeSpan([]string{"mord", n.Label[1:]}, []*Box{child}, &opts)
	b.Height = inner.Height + pad
	b.Depth = inner.Depth + pad
	b.Border = fm.FboxRule
	return b, nil
}

func (c *composer) buildSmash(n *SmashNode, opts Options) (*Box, error) {
	inner, err := c.buildGroup(n.Body, opts)
	if err != nil {
		return nil, err
	}
	b := makeSpan([]string{"mord", "smash"}, []*Box{inner}, &opts)
	if n.SmashHeight {
		b.Height = 0
	}
	if n.SmashDepth {
		b.Depth = 0
	}
	return b, nil
}
