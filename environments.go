package mathbox

// envHandler parses the body of an environment starting at pos, after the
// environment's own arguments, and stops before \end.
type envHandler func(p *parser, pos int, mode Mode, args []Node) (Node, int, error)

type envSpec struct {
	numArgs  int
	argTypes []ArgType
	handler  envHandler
}

func colAlign(align byte) ColumnAlign {
	return ColumnAlign{Align: align, PreGap: -1, PostGap: -1}
}

func builtinEnvironments() map[string]*envSpec {
	envs := map[string]*envSpec{
		"array":   {numArgs: 1, handler: parseArrayEnv},
		"cases":   {handler: parseCasesEnv},
		"aligned": {handler: parseAlignedEnv},
	}
	for name, delims := range matrixDelims {
		envs[name] = &envSpec{handler: matrixEnv(delims[0], delims[1])}
	}
	return envs
}

var matrixDelims = map[string][2]string{
	"matrix":  {"", ""},
	"pmatrix": {"(", ")"},
	"bmatrix": {"[", "]"},
	"Bmatrix": {"\\{", "\\}"},
	"vmatrix": {"|", "|"},
	"Vmatrix": {"\\Vert", "\\Vert"},
}

// parseArray parses rows of cells separated by & and \\ (or \cr) up to,
// not including, \end.
func (p *parser) parseArray(pos int, mode Mode, arr *ArrayNode) (*ArrayNode, int, error) {
	start := pos
	var row []Node
	for {
		if row == nil {
			lines, next, err := p.parseHLines(pos, mode)
			if err != nil {
				return nil, pos, err
			}
			arr.HLinesBeforeRow = append(arr.HLinesBeforeRow, lines)
			pos = next
		}
		cell, next, err := p.parseExpression(pos, mode, false, "")
		if err != nil {
			return nil, pos, err
		}
		row = append(row, &OrdGroupNode{nodeBase: newBase(mode, Loc{pos, next}), Body: cell})
		tok, err := p.peek(next, mode)
		if err != nil {
			return nil, pos, err
		}
		switch tok.Text {
		case "&":
			pos = tok.End
			continue
		case "\\\\", "\\cr":
			n, after, err := p.parseFunction(next, mode)
			if err != nil {
				return nil, pos, err
			}
			var gap *Measurement
			if cr, ok := n.(*crNode); ok {
				gap = cr.Size
			}
			arr.Body = append(arr.Body, row)
			arr.RowGaps = append(arr.RowGaps, gap)
			row = nil
			pos = after
			continue
		case "\\end":
			arr.Body = append(arr.Body, row)
			pos = next
		default:
			if tok.Kind == TokenCommand && !p.isKnownCommand(tok.Text) {
				return nil, pos, p.unexpected(tok, "\\end")
			}
			return nil, pos, parseErrorAt(tok, p.input, ErrInvalidEnvironment, "Expected & or \\\\ or \\end, got '%s'", tok.display())
		}
		break
	}
	// a \\ before \end does not open another row
	if n := len(arr.Body); n > 1 {
		last := arr.Body[n-1]
		if len(last) == 1 && len(last[0].(*OrdGroupNode).Body) == 0 {
			arr.Body = arr.Body[:n-1]
		}
	}
	for len(arr.HLinesBeforeRow) < len(arr.Body)+1 {
		arr.HLinesBeforeRow = append(arr.HLinesBeforeRow, nil)
	}
	arr.nodeBase = newBase(mode, Loc{start, pos})
	return arr, pos, nil
}

// parseHLines consumes the \hline and \hdashline commands at the start of
// a row.
func (p *parser) parseHLines(pos int, mode Mode) ([]bool, int, error) {
	var lines []bool
	for {
		tok, err := p.peek(pos, mode)
		if err != nil {
			return nil, pos, err
		}
		switch tok.Text {
		case "\\hline":
			lines = append(lines, false)
		case "\\hdashline":
			lines = append(lines, true)
		default:
			return lines, pos, nil
		}
		pos = tok.End
	}
}

func parseArrayEnv(p *parser, pos int, mode Mode, args []Node) (Node, int, error) {
	arr := &ArrayNode{HSkipBeforeAndAfter: true}
	for _, n := range ordBody(args[0]) {
		s, ok := n.(*SymbolNode)
		if !ok {
			return nil, pos, newError(KindParse, ErrInvalidEnvironment, p.input, n.Location().Start, "Unknown column alignment")
		}
		switch s.Name {
		case "l", "c", "r":
			arr.Cols = append(arr.Cols, colAlign(s.Name[0]))
		case "|":
			arr.Cols = append(arr.Cols, ColumnAlign{Separator: "|"})
		default:
			return nil, pos, newError(KindParse, ErrInvalidEnvironment, p.input, s.Loc.Start, "Unknown column alignment: %s", s.Name)
		}
	}
	return p.parseArray(pos, mode, arr)
}

func matrixEnv(left, right string) envHandler {
	return func(p *parser, pos int, mode Mode, _ []Node) (Node, int, error) {
		arr, next, err := p.parseArray(pos, mode, &ArrayNode{})
		if err != nil {
			return nil, pos, err
		}
		if left == "" {
			return arr, next, nil
		}
		return &LeftRightNode{nodeBase: arr.nodeBase, Body: []Node{arr}, Left: left, Right: right}, next, nil
	}
}

func parseCasesEnv(p *parser, pos int, mode Mode, _ []Node) (Node, int, error) {
	arr := &ArrayNode{
		ArrayStretch: 1.2,
		Cols: []ColumnAlign{
			{Align: 'l', PreGap: 0, PostGap: 1},
			{Align: 'l', PreGap: 0, PostGap: 0},
		},
	}
	arr, next, err := p.parseArray(pos, mode, arr)
	if err != nil {
		return nil, pos, err
	}
	return &LeftRightNode{nodeBase: arr.nodeBase, Body: []Node{arr}, Left: "\\{", Right: "."}, next, nil
}

// parseAlignedEnv lays out alternating right and left aligned columns.
// Every left aligned cell starts with an empty group so a leading relation
// gets its spacing.
func parseAlignedEnv(p *parser, pos int, mode Mode, _ []Node) (Node, int, error) {
	arr, next, err := p.parseArray(pos, mode, &ArrayNode{AddJot: true, DisplayCells: true})
	if err != nil {
		return nil, pos, err
	}
	numCols := 0
	for _, row := range arr.Body {
		for i := 1; i < len(row); i += 2 {
			cell := row[i].(*OrdGroupNode)
			empty := &OrdGroupNode{nodeBase: newBase(mode, Loc{cell.Loc.Start, cell.Loc.Start})}
			cell.Body = append([]Node{empty}, cell.Body...)
		}
		numCols = max(numCols, len(row))
	}
	for i := range numCols {
		col := ColumnAlign{Align: 'r', PreGap: 0, PostGap: 0}
		if i%2 == 1 {
			col.Align = 'l'
		} else if i > 0 {
			col.PreGap = 2
		}
		arr.Cols = append(arr.Cols, col)
	}
	return arr, next, nil
}
