package mathbox

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func mustParse(t *testing.T, input string, settings ...Setting) []Node {
	t.Helper()
	nodes, err := Parse(input, settings...)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return nodes
}

// shape renders nodes without source locations so trees parsed from
// different spellings can be compared.
func shape(nodes []Node) string {
	var sb strings.Builder
	var walk func(label string, n Node, depth int)
	walk = func(label string, n Node, depth int) {
		name, detail, children := describeNode(n)
		sb.WriteString(strings.Repeat(" ", depth))
		if label != "" {
			sb.WriteString(label + ":")
		}
		sb.WriteString(name + "(" + detail + ")\n")
		for _, c := range children {
			for _, cn := range c.nodes {
				walk(c.label, cn, depth+1)
			}
		}
	}
	for _, n := range nodes {
		walk("", n, 0)
	}
	return sb.String()
}

func expectParseError(t *testing.T, input string, target error, settings ...Setting) *Error {
	t.Helper()
	_, err := Parse(input, settings...)
	if err == nil {
		t.Fatalf("expected error for %q", input)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected %v for %q, got %v", target, input, err)
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error for %q, got %T", input, err)
	}
	return perr
}

func TestParseWhitespaceIsInsignificantInMath(t *testing.T) {
	pairs := [][2]string{
		{`x+y`, "  x +\n y  "},
		{`\frac{a}{b}`, `\frac {a} { b }`},
		{`a^{2}_i`, `a ^ {2} _ i`},
		{`\sqrt[3]{x}`, `\sqrt [3] {x}`},
	}
	for _, p := range pairs {
		a := shape(mustParse(t, p[0]))
		b := shape(mustParse(t, p[1]))
		if a != b {
			t.Fatalf("expected %q and %q to parse alike:\n%s\nvs\n%s", p[0], p[1], a, b)
		}
	}
}

func TestParseScriptOrderIndependent(t *testing.T) {
	a := shape(mustParse(t, `x^2_3`))
	b := shape(mustParse(t, `x_3^2`))
	if a != b {
		t.Fatalf("expected equal trees:\n%s\nvs\n%s", a, b)
	}
	nodes := mustParse(t, `x^2_3`)
	ss, ok := nodes[0].(*SupSubNode)
	if !ok || ss.Sup == nil || ss.Sub == nil || ss.Base == nil {
		t.Fatalf("expected SupSubNode with base and both scripts, got %#v", nodes[0])
	}
}

func TestParseDoubleScriptFails(t *testing.T) {
	for _, input := range []string{`x^1^2`, `x_1_2`, `x^2'`, `x''^1^2`} {
		perr := expectParseError(t, input, ErrDoubleScript)
		if perr.Kind != KindParse {
			t.Fatalf("expected parse error kind for %q, got %v", input, perr.Kind)
		}
	}
}

func TestParsePrimes(t *testing.T) {
	nodes := mustParse(t, `f''`)
	ss, ok := nodes[0].(*SupSubNode)
	if !ok {
		t.Fatalf("expected SupSubNode, got %T", nodes[0])
	}
	group, ok := ss.Sup.(*OrdGroupNode)
	if !ok || len(group.Body) != 2 {
		t.Fatalf("expected two primes in superscript, got %#v", ss.Sup)
	}

	nodes = mustParse(t, `f'^2`)
	group, ok = nodes[0].(*SupSubNode).Sup.(*OrdGroupNode)
	if !ok || len(group.Body) != 2 {
		t.Fatalf("expected prime and exponent merged into one superscript, got %#v", nodes[0])
	}
}

func TestParseLeftRight(t *testing.T) {
	nodes := mustParse(t, `\left( x \middle| y \right.`)
	lr, ok := nodes[0].(*LeftRightNode)
	if !ok {
		t.Fatalf("expected LeftRightNode, got %T", nodes[0])
	}
	if lr.Left != "(" || lr.Right != "." {
		t.Fatalf("unexpected delimiters %q %q", lr.Left, lr.Right)
	}
	var middles int
	for _, n := range lr.Body {
		if _, ok := n.(*MiddleNode); ok {
			middles++
		}
	}
	if middles != 1 {
		t.Fatalf("expected one \\middle in body, got %d", middles)
	}

	expectParseError(t, `\left( x`, ErrMissingRight)
	expectParseError(t, `\left( x }`, ErrMissingRight)
	expectParseError(t, `\left x \right)`, ErrInvalidDelimiter)
}

func TestParseUnbalancedBraces(t *testing.T) {
	expectParseError(t, `{x`, ErrUnbalancedBrace)
	expectParseError(t, `x}`, ErrUnbalancedBrace)
}

func TestParseUndefinedCommand(t *testing.T) {
	perr := expectParseError(t, `a + \foo{b}`, ErrUndefinedCommand)
	if perr.Pos != 4 {
		t.Fatalf("expected position 4, got %d", perr.Pos)
	}
	if !strings.Contains(perr.Error(), `\foo`) {
		t.Fatalf("expected command name in message, got %q", perr.Error())
	}
}

func TestParseMissingArgument(t *testing.T) {
	expectParseError(t, `\frac{a}`, ErrMissingArgument)
	expectParseError(t, `x^`, ErrMissingArgument)
}

func TestParseGreedinessGate(t *testing.T) {
	reg, err := DefaultRegistry().Extend(
		FunctionSpec{
			Names:      []string{`\F`},
			NumArgs:    1,
			Greediness: 2,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &OrdGroupNode{nodeBase: newBase(ctx.Mode, ctx.Loc), Body: args}, nil
			},
		},
		FunctionSpec{
			Names:      []string{`\G`},
			NumArgs:    1,
			Greediness: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &OrdGroupNode{nodeBase: newBase(ctx.Mode, ctx.Loc), Body: args}, nil
			},
		},
	)
	if err != nil {
		t.Fatalf("extend: %v", err)
	}
	// A bare function is only accepted as an argument when it is strictly
	// greedier than the function taking it.
	if _, err := Parse(`\G\F{x}`, WithRegistry(reg)); err != nil {
		t.Fatalf("expected \\F to be applied inside \\G, got %v", err)
	}
	expectParseError(t, `\F\G{x}`, ErrGreedinessConflict, WithRegistry(reg))
	expectParseError(t, `\F\F{x}`, ErrGreedinessConflict, WithRegistry(reg))

	// Scripts accept functions greedier than one.
	if _, err := Parse(`x^\F{y}`, WithRegistry(reg)); err != nil {
		t.Fatalf("expected \\F as superscript, got %v", err)
	}
	expectParseError(t, `x^\G{y}`, ErrGreedinessConflict, WithRegistry(reg))

	if _, err := Parse(`\sqrt\frac12`); err != nil {
		t.Fatalf("expected \\frac inside \\sqrt, got %v", err)
	}
	expectParseError(t, `\frac\frac123`, ErrGreedinessConflict)
}

func TestParseArgumentFreeFunctionsSkipGreediness(t *testing.T) {
	nodes := mustParse(t, `\sqrt\sum`)
	sqrt, ok := nodes[0].(*SqrtNode)
	if len(nodes) != 1 || !ok {
		t.Fatalf("expected a single sqrt, got %#v", nodes)
	}
	if op, ok := sqrt.Body.(*OpNode); !ok || op.Name != `\sum` {
		t.Fatalf("expected \\sum under the radical, got %#v", sqrt.Body)
	}

	nodes = mustParse(t, `x^\sum`)
	ss, ok := nodes[0].(*SupSubNode)
	if !ok {
		t.Fatalf("expected supsub, got %#v", nodes[0])
	}
	if _, ok := ss.Sup.(*OpNode); !ok {
		t.Fatalf("expected operator superscript, got %#v", ss.Sup)
	}

	for _, input := range []string{`\frac\int x`, `\overline\lim`, `x_\alpha`} {
		if _, err := Parse(input); err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
	}
}

func TestParseRegistryClosure(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if _, err := Parse(`x+1`, WithRegistry(reg)); err != nil {
		t.Fatalf("symbols should parse without functions: %v", err)
	}
	expectParseError(t, `\frac12`, ErrUndefinedCommand, WithRegistry(reg))
	if _, err := Parse(`\frac12`); err != nil {
		t.Fatalf("default registry must be unaffected: %v", err)
	}
}

func TestParseModes(t *testing.T) {
	nodes := mustParse(t, `\text{a b}`)
	text, ok := nodes[0].(*TextNode)
	if !ok {
		t.Fatalf("expected TextNode, got %T", nodes[0])
	}
	if len(text.Body) != 3 {
		t.Fatalf("expected letters and a space in text body, got %d nodes", len(text.Body))
	}
	for _, n := range text.Body {
		if n.NodeMode() != TextMode {
			t.Fatalf("expected text mode body, got %v", n.NodeMode())
		}
	}
	expectParseError(t, `\text{\frac12}`, ErrInvalidMode)

	nodes = mustParse(t, `a b`, WithMode(TextMode))
	if len(nodes) != 3 {
		t.Fatalf("expected space to be kept in text mode, got %d nodes", len(nodes))
	}
}

func TestParseInfixFraction(t *testing.T) {
	nodes := mustParse(t, `a+b \over c`)
	if len(nodes) != 1 {
		t.Fatalf("expected a single fraction, got %d nodes", len(nodes))
	}
	frac, ok := nodes[0].(*GenFracNode)
	if !ok || !frac.HasBarLine {
		t.Fatalf("expected barred GenFracNode, got %#v", nodes[0])
	}
	numer, ok := frac.Numer.(*OrdGroupNode)
	if !ok || len(numer.Body) != 3 {
		t.Fatalf("expected three atom numerator, got %#v", frac.Numer)
	}
	expectParseError(t, `a \over b \over c`, ErrUnexpectedToken)
}

func TestParseColorIsImplicitGroup(t *testing.T) {
	nodes := mustParse(t, `a \color{red} b c`)
	if len(nodes) != 2 {
		t.Fatalf("expected symbol and color group, got %d nodes", len(nodes))
	}
	col, ok := nodes[1].(*ColorNode)
	if !ok || col.Color != "red" || len(col.Body) != 2 {
		t.Fatalf("expected color over the rest of the group, got %#v", nodes[1])
	}
	expectParseError(t, `\color{#12}x`, ErrInvalidColor)
}

func TestParseArgumentTypes(t *testing.T) {
	nodes := mustParse(t, `\rule{1em}{2pt}`)
	rule, ok := nodes[0].(*RuleNode)
	if !ok || rule.Width != (Measurement{Number: 1, Unit: "em"}) || rule.Height != (Measurement{Number: 2, Unit: "pt"}) {
		t.Fatalf("unexpected rule %#v", nodes[0])
	}
	perr := expectParseError(t, `\rule{1zz}{2pt}`, ErrInvalidSize)
	if perr.Kind != KindArgumentType {
		t.Fatalf("expected argument type error, got %v", perr.Kind)
	}

	nodes = mustParse(t, `\href{https://example.com/a_b}{x}`)
	href, ok := nodes[0].(*HrefNode)
	if !ok || href.URL != "https://example.com/a_b" {
		t.Fatalf("unexpected href %#v", nodes[0])
	}
}

func TestParseEnvironments(t *testing.T) {
	nodes := mustParse(t, `\begin{pmatrix} a & b \\ c & d \end{pmatrix}`)
	lr, ok := nodes[0].(*LeftRightNode)
	if !ok || lr.Left != "(" || lr.Right != ")" {
		t.Fatalf("expected delimited matrix, got %#v", nodes[0])
	}
	arr, ok := lr.Body[0].(*ArrayNode)
	if !ok || len(arr.Body) != 2 || len(arr.Body[0]) != 2 {
		t.Fatalf("expected 2x2 array, got %#v", lr.Body[0])
	}

	nodes = mustParse(t, `\begin{array}{l|r} 1 & 2 \end{array}`)
	arr, ok = nodes[0].(*ArrayNode)
	if !ok || len(arr.Cols) != 3 || arr.Cols[1].Separator != "|" {
		t.Fatalf("expected columns with separator, got %#v", nodes[0])
	}

	nodes = mustParse(t, `\begin{array}{c}\hline a\\\hdashline\hline b\\\hline\end{array}`)
	arr, ok = nodes[0].(*ArrayNode)
	if !ok || len(arr.Body) != 2 {
		t.Fatalf("expected two rows, got %#v", nodes[0])
	}
	want := [][]bool{{false}, {true, false}, {false}}
	if len(arr.HLinesBeforeRow) != len(want) {
		t.Fatalf("expected rules %v, got %v", want, arr.HLinesBeforeRow)
	}
	for i := range want {
		if !slices.Equal(arr.HLinesBeforeRow[i], want[i]) {
			t.Fatalf("expected rules %v, got %v", want, arr.HLinesBeforeRow)
		}
	}
	nodes = mustParse(t, `\begin{array}{c}\hline\end{array}`)
	if arr, ok = nodes[0].(*ArrayNode); !ok || len(arr.HLinesBeforeRow) != len(arr.Body)+1 {
		t.Fatalf("expected a rule slot per row and one below, got %#v", nodes[0])
	}
	expectParseError(t, `\begin{array}{c} a \hline \end{array}`, ErrInvalidEnvironment)

	expectParseError(t, `\begin{matrix} a \end{pmatrix}`, ErrInvalidEnvironment)
	expectParseError(t, `\begin{nosuch} a \end{nosuch}`, ErrInvalidEnvironment)
}

func TestParseRecursionLimit(t *testing.T) {
	input := strings.Repeat("{", 40) + "x" + strings.Repeat("}", 40)
	if _, err := Parse(input); err != nil {
		t.Fatalf("default depth should allow 40 groups: %v", err)
	}
	_, err := Parse(input, WithMaxDepth(10))
	if !errors.Is(err, ErrRecursionLimit) {
		t.Fatalf("expected recursion limit, got %v", err)
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindRecursionLimit {
		t.Fatalf("expected recursion limit kind, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	nodes := mustParse(t, "")
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(nodes))
	}
	nodes = mustParse(t, "  % only a comment")
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(nodes))
	}
}

func TestParseLocations(t *testing.T) {
	nodes := mustParse(t, `ab\frac{c}{d}`)
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	if loc := nodes[2].Location(); loc.Start != 2 || loc.End != 13 {
		t.Fatalf("unexpected fraction location %+v", loc)
	}
}

func TestErrorMessageExcerpt(t *testing.T) {
	_, err := Parse(`x^1^2`)
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "parse error: Double superscript at position 4") {
		t.Fatalf("unexpected message %q", msg)
	}
}
