package mathbox

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
)

const (
	osc8Start = "\x1b]8;;"
	osc8End   = "\x1b]8;;\x1b\\"

	dumpIndent = 2
)

// DumpRequest configures WriteBoxTree and WriteParseTree.
type DumpRequest struct {
	Writer io.Writer
	// Width truncates lines to this many cells; zero disables truncation.
	Width int
	// Theme defaults to PlainTheme.
	Theme Theme
	// OSC8 writes href targets as terminal hyperlinks.
	OSC8 bool
	// Colors paints glyphs in the color of their box.
	Colors bool
}

type dumper struct {
	w      *bufio.Writer
	width  int
	styles Styles
	osc8   bool
	colors bool
}

func newDumper(req DumpRequest) (*dumper, error) {
	if req.Writer == nil {
		return nil, errors.New("dump: nil writer")
	}
	theme := req.Theme
	if theme == nil {
		theme = PlainTheme()
	}
	return &dumper{
		w:      bufio.NewWriter(req.Writer),
		width:  req.Width,
		styles: theme.Styles(),
		osc8:   req.OSC8,
		colors: req.Colors,
	}, nil
}

// WriteBoxTree writes root and its descendants one box per line, indented
// by nesting depth.
func WriteBoxTree(root *Box, req DumpRequest) error {
	d, err := newDumper(req)
	if err != nil {
		return err
	}
	if root != nil {
		d.box(root, 0)
	}
	return d.w.Flush()
}

// WriteParseTree writes nodes and their descendants one node per line.
func WriteParseTree(nodes []Node, req DumpRequest) error {
	d, err := newDumper(req)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		d.node("", n, 0)
	}
	return d.w.Flush()
}

func (d *dumper) paint(s TermStyle, text string) string {
	if s.Prefix == "" || text == "" {
		return text
	}
	return s.Prefix + text + sgrReset
}

func (d *dumper) line(depth int, text string, link string) {
	text = indent.String(text, uint(depth*dumpIndent))
	if link != "" {
		text += " " + d.link(link, d.width-ansi.PrintableRuneWidth(text)-1)
	}
	if d.width > 0 && ansi.PrintableRuneWidth(text) > d.width {
		text = truncate.StringWithTail(text, uint(d.width), "…")
	}
	d.w.WriteString(text)
	d.w.WriteByte('\n')
}

func (d *dumper) link(url string, limit int) string {
	label := url
	if d.width > 0 {
		label = fitURL(url, max(limit, 1))
	}
	label = d.paint(d.styles.Link, label)
	if d.osc8 {
		return osc8Start + url + "\x1b\\" + label + osc8End
	}
	return label
}

func (d *dumper) box(b *Box, depth int) {
	var parts []string
	switch {
	case b.HasClass("mspace"):
		parts = append(parts, d.paint(d.styles.Space, "glue"))
	case b.HasClass("rule"):
		parts = append(parts, d.paint(d.styles.Rule, "rule"))
	case b.Kind == BoxSymbol:
		glyph := strconv.Quote(b.Text)
		if d.colors && b.Color != "" {
			if seq := fg(b.Color); seq != "" {
				glyph = seq + glyph + sgrReset
			}
		}
		parts = append(parts, d.paint(d.styles.ForClass(b.OuterClass(true)), "symbol"), glyph, b.Font)
	default:
		parts = append(parts, d.paint(d.styles.ForClass(b.OuterClass(true)), b.Kind.String()))
	}
	if len(b.Classes) > 0 {
		parts = append(parts, d.paint(d.styles.Class, "["+strings.Join(b.Classes, " ")+"]"))
	}
	parts = append(parts, d.paint(d.styles.Dims, boxDims(b)))
	if b.Color != "" {
		parts = append(parts, "color="+b.Color)
	}
	d.line(depth, strings.Join(parts, " "), b.Href)
	for _, c := range b.Children {
		d.box(c, depth+1)
	}
}

func boxDims(b *Box) string {
	var sb strings.Builder
	dim := func(name string, v float64, always bool) {
		if v == 0 && !always {
			return
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(v, 'f', 3, 64))
	}
	dim("h", b.Height, true)
	dim("d", b.Depth, true)
	dim("w", b.Width, true)
	dim("italic", b.Italic, false)
	dim("shift", b.Shift, false)
	dim("ml", b.MarginLeft, false)
	dim("mr", b.MarginRight, false)
	dim("border", b.Border, false)
	return sb.String()
}

type namedNodes struct {
	label string
	nodes []Node
}

func one(label string, n Node) namedNodes {
	if n == nil {
		return namedNodes{label: label}
	}
	return namedNodes{label: label, nodes: []Node{n}}
}

func (d *dumper) node(label string, n Node, depth int) {
	name, detail, children := describeNode(n)
	text := d.paint(d.styles.Structure, name)
	if label != "" {
		text = d.paint(d.styles.Class, label+":") + " " + text
	}
	if detail != "" {
		text += " " + detail
	}
	loc := n.Location()
	text += " " + d.paint(d.styles.Dims, fmt.Sprintf("%s %d:%d", n.NodeMode(), loc.Start, loc.End))
	var link string
	if h, ok := n.(*HrefNode); ok {
		link = h.URL
	}
	d.line(depth, text, link)
	for _, c := range children {
		for _, cn := range c.nodes {
			d.node(c.label, cn, depth+1)
		}
	}
}

// describeNode returns the variant name, a one line summary and the
// labeled children of n.
func describeNode(n Node) (string, string, []namedNodes) {
	name := strings.TrimPrefix(fmt.Sprintf("%T", n), "*mathbox.")
	switch n := n.(type) {
	case *SymbolNode:
		return name, n.Group.String() + " " + strconv.Quote(n.Name), nil
	case *OrdGroupNode:
		return name, "", []namedNodes{{nodes: n.Body}}
	case *SupSubNode:
		return name, "", []namedNodes{one("base", n.Base), one("sup", n.Sup), one("sub", n.Sub)}
	case *GenFracNode:
		detail := fmt.Sprintf("bar=%t", n.HasBarLine)
		if n.LeftDelim != "" || n.RightDelim != "" {
			detail += fmt.Sprintf(" delims=%q,%q", n.LeftDelim, n.RightDelim)
		}
		return name, detail, []namedNodes{one("numer", n.Numer), one("denom", n.Denom)}
	case *LeftRightNode:
		return name, strconv.Quote(n.Left) + " " + strconv.Quote(n.Right), []namedNodes{{nodes: n.Body}}
	case *MiddleNode:
		return name, strconv.Quote(n.Delim), nil
	case *SizingNode:
		return name, "size=" + strconv.Itoa(n.Size), []namedNodes{{nodes: n.Body}}
	case *StylingNode:
		return name, n.Style.String(), []namedNodes{{nodes: n.Body}}
	case *ColorNode:
		return name, n.Color, []namedNodes{{nodes: n.Body}}
	case *OpNode:
		detail := strconv.Quote(n.Name)
		if n.Limits {
			detail += " limits"
		}
		return name, detail, []namedNodes{{nodes: n.Body}}
	case *TextNode:
		return name, n.Font, []namedNodes{{nodes: n.Body}}
	case *FontNode:
		return name, n.Font, []namedNodes{one("", n.Body)}
	case *RuleNode:
		return name, fmt.Sprintf("shift=%s width=%s height=%s", n.Shift, n.Width, n.Height), nil
	case *KernNode:
		return name, n.Dimension.String(), nil
	case *ArrayNode:
		var cells []namedNodes
		for r, row := range n.Body {
			for c, cell := range row {
				cells = append(cells, one(fmt.Sprintf("%d,%d", r, c), cell))
			}
		}
		return name, fmt.Sprintf("rows=%d cols=%d", len(n.Body), len(n.Cols)), cells
	case *SqrtNode:
		return name, "", []namedNodes{one("body", n.Body), one("index", n.Index)}
	case *AccentNode:
		return name, strconv.Quote(n.Label), []namedNodes{one("base", n.Base)}
	case *OverlineNode:
		return name, "", []namedNodes{one("", n.Body)}
	case *UnderlineNode:
		return name, "", []namedNodes{one("", n.Body)}
	case *PhantomNode:
		return name, "", []namedNodes{{nodes: n.Body}}
	case *LapNode:
		side := "right"
		if n.Left {
			side = "left"
		}
		return name, side, []namedNodes{one("", n.Body)}
	case *DelimSizingNode:
		return name, fmt.Sprintf("%q size=%d %s", n.Delim, n.Size, n.Class), nil
	case *MClassNode:
		return name, n.Class, []namedNodes{{nodes: n.Body}}
	case *HorizBraceNode:
		return name, strconv.Quote(n.Label), []namedNodes{one("base", n.Base)}
	case *XArrowNode:
		return name, strconv.Quote(n.Label), []namedNodes{one("above", n.Body), one("below", n.Below)}
	case *HrefNode:
		return name, "", []namedNodes{{nodes: n.Body}}
	case *RaiseBoxNode:
		return name, n.Dy.String(), []namedNodes{one("", n.Body)}
	case *EncloseNode:
		return name, strconv.Quote(n.Label), []namedNodes{one("", n.Body)}
	case *SmashNode:
		return name, fmt.Sprintf("height=%t depth=%t", n.SmashHeight, n.SmashDepth), []namedNodes{one("", n.Body)}
	case *CustomNode:
		return name, strconv.Quote(n.Name), []namedNodes{{label: "opt", nodes: n.OptArgs}, {label: "arg", nodes: n.Args}}
	case *ColorArgNode:
		return name, n.Color, nil
	case *SizeArgNode:
		return name, n.Value.String(), nil
	case *RawArgNode:
		return name, strconv.Quote(n.Text), nil
	}
	return name, "", nil
}

func fitURL(url string, limit int) string {
	if ansi.PrintableRuneWidth(url) <= limit {
		return url
	}
	if idx := strings.Index(url, "://"); idx != -1 {
		trimmed := url[idx+3:]
		if ansi.PrintableRuneWidth(trimmed) <= limit {
			return trimmed
		}
	}
	if limit <= 1 {
		return "…"
	}
	return truncate.StringWithTail(url, uint(limit), "…")
}

// osc8Terminals are TERM_PROGRAM values known to render OSC 8 links.
var osc8Terminals = map[string]bool{
	"iTerm.app": true,
	"WezTerm":   true,
	"vscode":    true,
	"ghostty":   true,
}

// DetectOSC8Support reports whether the environment likely renders OSC 8
// hyperlinks. OSC8=0 disables detection.
func DetectOSC8Support() bool {
	if os.Getenv("OSC8") == "0" {
		return false
	}
	if os.Getenv("DOMTERM") != "" || os.Getenv("WT_SESSION") != "" {
		return true
	}
	if osc8Terminals[os.Getenv("TERM_PROGRAM")] {
		return true
	}
	if strings.Contains(strings.ToLower(os.Getenv("TERM")), "kitty") {
		return true
	}
	if n, err := strconv.Atoi(os.Getenv("VTE_VERSION")); err == nil && n >= 5000 {
		return true
	}
	return false
}
