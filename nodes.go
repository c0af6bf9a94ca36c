package mathbox

// Node is a parse tree node. The concrete type is the node's variant; each
// variant only carries the fields its builder needs. Nodes are immutable
// once returned by the parser.
type Node interface {
	// NodeMode is the mode the node was parsed in.
	NodeMode() Mode
	// Location is the source range of the node.
	Location() Loc
	node()
}

type nodeBase struct {
	Mode Mode
	Loc  Loc
}

func (n nodeBase) NodeMode() Mode { return n.Mode }
func (n nodeBase) Location() Loc  { return n.Loc }
func (nodeBase) node()            {}

// SymbolNode is a single symbol atom, e.g. x, +, \alpha or \,.
type SymbolNode struct {
	nodeBase
	Group SymbolGroup
	// Name is the source text, e.g. "\alpha".
	Name string
}

// OrdGroupNode is a braced group.
type OrdGroupNode struct {
	nodeBase
	Body []Node
}

// SupSubNode attaches scripts to a base. At least one of Sup and Sub is set.
type SupSubNode struct {
	nodeBase
	Base Node
	Sup  Node
	Sub  Node
}

// FracSize forces the style of a fraction.
type FracSize uint8

const (
	FracAuto FracSize = iota
	FracDisplay
	FracText
)

// GenFracNode is a generalized fraction: \frac, \binom, \over, ...
type GenFracNode struct {
	nodeBase
	Numer      Node
	Denom      Node
	HasBarLine bool
	// LeftDelim and RightDelim are empty when absent.
	LeftDelim  string
	RightDelim string
	Size       FracSize
}

// LeftRightNode is a \left...\right group.
type LeftRightNode struct {
	nodeBase
	Body  []Node
	Left  string
	Right string
}

// MiddleNode is a \middle delimiter inside \left...\right.
type MiddleNode struct {
	nodeBase
	Delim string
}

// SizingNode applies one of \tiny ... \Huge to the rest of its scope.
type SizingNode struct {
	nodeBase
	// Size is 1 (\tiny) through 10 (\Huge); 5 is \normalsize.
	Size int
	Body []Node
}

// StylingNode applies \displaystyle ... \scriptscriptstyle to the rest of
// its scope.
type StylingNode struct {
	nodeBase
	Style Style
	Body  []Node
}

// ColorNode colors its body.
type ColorNode struct {
	nodeBase
	Color string
	Body  []Node
}

// OpNode is a large operator (\sum) or a named one (\sin, \operatorname).
type OpNode struct {
	nodeBase
	// Name is the command, e.g. "\sum" or "\lim".
	Name string
	// Symbol is true for glyph operators like \sum.
	Symbol bool
	// Limits places scripts above and below in display style.
	Limits bool
	// AlwaysHandleSupSub is set by \limits and \nolimits.
	AlwaysHandleSupSub bool
	// Body holds the parsed name for \operatorname.
	Body []Node
}

// TextNode is a \text group.
type TextNode struct {
	nodeBase
	Body []Node
	Font string
}

// FontNode selects a font for its body.
type FontNode struct {
	nodeBase
	Font string
	Body Node
}

// RuleNode is a \rule.
type RuleNode struct {
	nodeBase
	Shift  Measurement
	Width  Measurement
	Height Measurement
}

// KernNode is explicit horizontal space.
type KernNode struct {
	nodeBase
	Dimension Measurement
}

// ColumnAlign describes one column, or a separator between columns.
type ColumnAlign struct {
	// Align is 'l', 'c' or 'r'; zero for separators.
	Align     byte
	Separator string
	// PreGap and PostGap override the default column separation when
	// non-negative.
	PreGap  float64
	PostGap float64
}

// ArrayNode is a matrix-like environment body. HLinesBeforeRow holds the
// horizontal rules above each row and, last, below the final row; true
// marks a dashed rule.
type ArrayNode struct {
	nodeBase
	Body                [][]Node
	Cols                []ColumnAlign
	RowGaps             []*Measurement
	HLinesBeforeRow     [][]bool
	ArrayStretch        float64
	HSkipBeforeAndAfter bool
	AddJot              bool
	DisplayCells        bool
}

// SqrtNode is a radical with optional index.
type SqrtNode struct {
	nodeBase
	Body  Node
	Index Node
}

// AccentNode puts an accent over its base.
type AccentNode struct {
	nodeBase
	Label string
	Base  Node
}

// OverlineNode draws a rule above its body.
type OverlineNode struct {
	nodeBase
	Body Node
}

// UnderlineNode draws a rule below its body.
type UnderlineNode struct {
	nodeBase
	Body Node
}

// PhantomNode occupies the space of its body without ink.
type PhantomNode struct {
	nodeBase
	Body []Node
}

// LapNode is \llap or \rlap.
type LapNode struct {
	nodeBase
	Left bool
	Body Node
}

// DelimSizingNode is \big( and friends.
type DelimSizingNode struct {
	nodeBase
	Delim string
	// Size is 1..4 for big, Big, bigg, Bigg.
	Size int
	// Class is the atom class the delimiter acts as: mopen, mclose, mrel
	// or mord.
	Class string
}

// MClassNode forces an atom class on its body (\mathbin, \mathrel, ...).
type MClassNode struct {
	nodeBase
	Class string
	Body  []Node
}

// HorizBraceNode is \overbrace or \underbrace.
type HorizBraceNode struct {
	nodeBase
	Label  string
	IsOver bool
	Base   Node
}

// XArrowNode is an extensible arrow with a label above and optional below.
type XArrowNode struct {
	nodeBase
	Label string
	Body  Node
	Below Node
}

// HrefNode links its body.
type HrefNode struct {
	nodeBase
	URL  string
	Body []Node
}

// RaiseBoxNode shifts its body vertically.
type RaiseBoxNode struct {
	nodeBase
	Dy   Measurement
	Body Node
}

// EncloseNode frames its body (\boxed, \fbox).
type EncloseNode struct {
	nodeBase
	Label string
	Body  Node
}

// SmashNode hides the height and/or depth of its body.
type SmashNode struct {
	nodeBase
	Body        Node
	SmashHeight bool
	SmashDepth  bool
}

// CustomNode is produced by functions registered with a Builder.
type CustomNode struct {
	nodeBase
	Name    string
	Args    []Node
	OptArgs []Node
	builder BuilderFunc
}

// ColorArgNode is the result of a color argument.
type ColorArgNode struct {
	nodeBase
	Color string
}

// SizeArgNode is the result of a size argument.
type SizeArgNode struct {
	nodeBase
	Value Measurement
}

// RawArgNode is the result of a raw or URL argument.
type RawArgNode struct {
	nodeBase
	Text string
}

// delimNode carries the delimiter of \left, \right or \middle while the
// surrounding construct is parsed.
type delimNode struct {
	nodeBase
	Delim string
	Side  string
}

// infixNode marks \over, \choose and \atop until the enclosing expression
// is complete.
type infixNode struct {
	nodeBase
	Replace string
}

// crNode is a row break inside an environment.
type crNode struct {
	nodeBase
	Size *Measurement
}

// envNode carries the environment name of \begin or \end.
type envNode struct {
	nodeBase
	Name string
	End  bool
}

func newBase(mode Mode, loc Loc) nodeBase {
	return nodeBase{Mode: mode, Loc: loc}
}

// ordBody returns the body of an ordgroup or the node itself as a one
// element list.
func ordBody(n Node) []Node {
	if n == nil {
		return nil
	}
	if g, ok := n.(*OrdGroupNode); ok {
		return g.Body
	}
	return []Node{n}
}
