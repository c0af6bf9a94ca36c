package mathbox

import "slices"

type arrayRow struct {
	cells  []*Box
	height float64
	depth  float64
	pos    float64
}

// buildArray lays rows out on struts of arraystretch times the baseline
// skip, centers the table on the axis and stacks each column as a vlist.
func (c *composer) buildArray(n *ArrayNode, opts Options) (*Box, error) {
	fm := opts.FontMetrics()
	pt := opts.SizeMultiplier() / ptPerEm
	arraycolsep := 5 * pt
	baselineskip := 12 * pt
	jot := 3 * pt
	stretch := n.ArrayStretch
	if stretch == 0 {
		stretch = 1
	}
	arrayskip := stretch * baselineskip
	arstrutHeight := 0.7 * arrayskip
	arstrutDepth := 0.3 * arrayskip

	cellOpts := opts
	if n.DisplayCells {
		cellOpts = opts.WithStyle(StyleDisplay)
	}

	rows := make([]arrayRow, len(n.Body))
	linePos := make([]float64, len(n.Body)+1)
	numCols := 0
	var totalHeight float64
	for r, body := range n.Body {
		linePos[r] = totalHeight
		row := arrayRow{height: arstrutHeight, depth: arstrutDepth}
		for _, cell := range body {
			b, err := c.buildGroup(cell, cellOpts)
			if err != nil {
				return nil, err
			}
			row.height = max(row.height, b.Height)
			row.depth = max(row.depth, b.Depth)
			row.cells = append(row.cells, b)
		}
		numCols = max(numCols, len(row.cells))

		var gap float64
		if r < len(n.RowGaps) && n.RowGaps[r] != nil {
			gap = n.RowGaps[r].ToEm(opts)
			if gap > 0 {
				row.depth = max(row.depth, gap+arstrutDepth)
				gap = 0
			}
		}
		if n.AddJot {
			row.depth += jot
		}
		totalHeight += row.height
		row.pos = totalHeight
		totalHeight += row.depth + gap
		rows[r] = row
	}
	linePos[len(n.Body)] = totalHeight

	offset := totalHeight/2 + fm.AxisHeight
	gapWidth := func(g float64) float64 {
		if g < 0 {
			return arraycolsep
		}
		return g * opts.SizeMultiplier()
	}

	var cols []*Box
	descs := n.Cols
	descAt := func(i int) ColumnAlign {
		if i < len(descs) {
			return descs[i]
		}
		return colAlign('c')
	}
	for col, d := 0, 0; col < numCols || d < len(descs); col, d = col+1, d+1 {
		desc := descAt(d)
		first := true
		for desc.Separator != "" {
			if !first {
				cols = append(cols, makeGlue(fm.DoubleRuleSep, "arraycolsep"))
			}
			sep := makeRuleBox("vertical-separator", fm.ArrayRuleWidth, offset, opts)
			sep.Depth = totalHeight - offset
			cols = append(cols, sep)
			first = false
			d++
			desc = descAt(d)
		}
		if col >= numCols {
			continue
		}

		if col > 0 || n.HSkipBeforeAndAfter {
			if w := gapWidth(desc.PreGap); w != 0 {
				cols = append(cols, makeGlue(w, "arraycolsep"))
			}
		}

		var width float64
		for _, row := range rows {
			if col < len(row.cells) {
				width = max(width, row.cells[col].TotalWidth())
			}
		}
		var stack []VListChild
		for _, row := range slices.Backward(rows) {
			if col >= len(row.cells) {
				continue
			}
			cell := alignCell(row.cells[col], desc.Align, width)
			cell.Height = row.height
			cell.Depth = row.depth
			stack = append(stack, VShifted(cell, row.pos-offset))
		}
		align := desc.Align
		if align == 0 {
			align = 'c'
		}
		vl := MakeVList(stack, PositionIndividualShift, 0, opts)
		cols = append(cols, makeSpan([]string{"col-align-" + string(align)}, []*Box{vl}, &opts))

		if col < numCols-1 || n.HSkipBeforeAndAfter {
			if w := gapWidth(desc.PostGap); w != 0 {
				cols = append(cols, makeGlue(w, "arraycolsep"))
			}
		}
	}
	table := makeSpan([]string{"mtable"}, cols, &opts)
	if body := hlineStack(table, n.HLinesBeforeRow, linePos, offset, opts); body != nil {
		table = body
	}
	return makeSpan([]string{"mord"}, []*Box{table}, &opts), nil
}

// hlineStack overlays the horizontal rules on table. It returns nil when
// there are none.
func hlineStack(table *Box, lines [][]bool, linePos []float64, offset float64, opts Options) *Box {
	stack := []VListChild{VShifted(table, 0)}
	thickness := opts.FontMetrics().ArrayRuleWidth
	for i := min(len(lines), len(linePos)) - 1; i >= 0; i-- {
		for _, dashed := range lines[i] {
			class := "hline"
			if dashed {
				class = "hdashline"
			}
			stack = append(stack, VShifted(makeRuleBox(class, table.Width, thickness, opts), linePos[i]-offset))
		}
	}
	if len(stack) == 1 {
		return nil
	}
	return MakeVList(stack, PositionIndividualShift, 0, opts)
}

// alignCell returns a copy of b padded to width.
func alignCell(b *Box, align byte, width float64) *Box {
	out := b.clone()
	gap := width - b.TotalWidth()
	switch align {
	case 'l':
		out.MarginRight += gap
	case 'r':
		out.MarginLeft += gap
	default:
		out.MarginLeft += gap / 2
		out.MarginRight += gap / 2
	}
	return out
}
