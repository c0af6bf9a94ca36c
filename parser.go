package mathbox

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxDepth bounds group nesting in Parse and Layout.
const DefaultMaxDepth = 256

// supsubGreediness is the greediness a function needs to be used, fully
// applied, as a superscript or subscript.
const supsubGreediness = 1

// endOfExpression tokens end the current expression without being consumed.
var endOfExpression = map[string]bool{
	"}":           true,
	"\\end":       true,
	"\\right":     true,
	"&":           true,
	"\\\\":        true,
	"\\cr":        true,
	"\\hline":     true,
	"\\hdashline": true,
}

// infix commands and the function they are rewritten to.
var infixReplacements = map[string]string{
	"\\over":   "\\frac",
	"\\choose": "\\binom",
	"\\atop":   atopFrac,
}

// parser is recursive descent over an explicit (pos, mode) pair. Every
// entry point returns the position to continue from.
type parser struct {
	input    string
	lexer    *lexer
	reg      *Registry
	maxDepth int
	depth    int
}

// parsedGroup is the result of parseGroup: either a finished node or a
// function name whose arguments are still to be parsed.
type parsedGroup struct {
	node Node
	fn   *FunctionSpec
	tok  Token
	mode Mode
}

func newParser(input string, reg *Registry, maxDepth int) *parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &parser{
		input:    input,
		lexer:    newLexer(input),
		reg:      reg,
		maxDepth: maxDepth,
	}
}

// parse parses the whole input.
func (p *parser) parse(mode Mode) ([]Node, error) {
	body, pos, err := p.parseExpression(0, mode, false, "")
	if err != nil {
		return nil, err
	}
	tok, err := p.peek(pos, mode)
	if err != nil {
		return nil, err
	}
	if !tok.IsEOF() {
		return nil, p.unexpected(tok, "EOF")
	}
	return body, nil
}

func (p *parser) peek(pos int, mode Mode) (Token, error) {
	return p.lexer.lex(pos, lexModeOf(mode))
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > p.maxDepth {
		return newError(KindRecursionLimit, nil, p.input, pos, "Maximum nesting depth of %d exceeded", p.maxDepth)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// unexpected reports tok where want was expected. Unknown commands are
// reported as such since they are the usual cause.
func (p *parser) unexpected(tok Token, want string) error {
	if tok.Kind == TokenCommand && !p.isKnownCommand(tok.Text) {
		return parseErrorAt(tok, p.input, ErrUndefinedCommand, "Undefined control sequence: %s", tok.Text)
	}
	code := ErrUnexpectedToken
	if want == "}" || tok.Text == "}" {
		code = ErrUnbalancedBrace
	}
	return parseErrorAt(tok, p.input, code, "Expected '%s', got '%s'", want, tok.display())
}

func (p *parser) isKnownCommand(name string) bool {
	if p.reg.lookup(name) != nil {
		return true
	}
	if _, ok := lookupSymbol(MathMode, name); ok {
		return true
	}
	if _, ok := lookupSymbol(TextMode, name); ok {
		return true
	}
	return parserCommand(name)
}

// parserCommand reports whether the parser handles name itself, before
// the registry is consulted.
func parserCommand(name string) bool {
	if _, ok := sizeCommands[name]; ok {
		return true
	}
	if _, ok := styleCommands[name]; ok {
		return true
	}
	if _, ok := infixReplacements[name]; ok {
		return true
	}
	switch name {
	case "\\color", "\\limits", "\\nolimits", "\\hline", "\\hdashline":
		return true
	}
	return false
}

// parseExpression parses atoms until the end of the expression, a token in
// endOfExpression, or stop. With breakOnInfix it also stops before an
// infix command.
func (p *parser) parseExpression(pos int, mode Mode, breakOnInfix bool, stop string) ([]Node, int, error) {
	if err := p.enter(pos); err != nil {
		return nil, pos, err
	}
	defer p.leave()

	var body []Node
	for {
		tok, err := p.peek(pos, mode)
		if err != nil {
			return nil, pos, err
		}
		if tok.IsEOF() || endOfExpression[tok.Text] && tok.Kind != TokenSpace {
			break
		}
		if stop != "" && tok.Text == stop {
			break
		}
		if _, ok := infixReplacements[tok.Text]; ok && breakOnInfix {
			break
		}
		atom, next, err := p.parseAtom(pos, mode)
		if err != nil {
			return nil, pos, err
		}
		if atom == nil {
			break
		}
		body = append(body, atom)
		pos = next
	}
	body, err := p.handleInfixNodes(body, mode)
	return body, pos, err
}

// handleInfixNodes rewrites "a \over b" into the replacement function
// applied to both sides.
func (p *parser) handleInfixNodes(body []Node, mode Mode) ([]Node, error) {
	idx := -1
	var infix *infixNode
	for i, n := range body {
		in, ok := n.(*infixNode)
		if !ok {
			continue
		}
		if idx != -1 {
			return nil, newError(KindParse, ErrUnexpectedToken, p.input, in.Loc.Start, "only one infix operator per group")
		}
		idx, infix = i, in
	}
	if idx == -1 {
		return body, nil
	}
	spec := p.reg.lookup(infix.Replace)
	if spec == nil {
		return nil, newError(KindParse, ErrUndefinedCommand, p.input, infix.Loc.Start, "Undefined control sequence: %s", infix.Replace)
	}
	numer := groupOf(body[:idx], mode)
	denom := groupOf(body[idx+1:], mode)
	loc := infix.Loc
	if len(body) > 0 {
		loc = Loc{Start: body[0].Location().Start, End: body[len(body)-1].Location().End}
	}
	ctx := &FuncContext{Name: infix.Replace, Mode: mode, Loc: loc, Input: p.input}
	n, err := p.callHandler(spec, ctx, []Node{numer, denom}, nil)
	if err != nil {
		return nil, err
	}
	return []Node{n}, nil
}

func groupOf(nodes []Node, mode Mode) Node {
	if len(nodes) == 1 {
		if g, ok := nodes[0].(*OrdGroupNode); ok {
			return g
		}
	}
	loc := Loc{}
	if len(nodes) > 0 {
		loc = Loc{Start: nodes[0].Location().Start, End: nodes[len(nodes)-1].Location().End}
	}
	return &OrdGroupNode{nodeBase: newBase(mode, loc), Body: nodes}
}

// parseAtom parses an implicit group and, in math mode, the scripts and
// limit controls that follow it.
func (p *parser) parseAtom(pos int, mode Mode) (Node, int, error) {
	base, pos, err := p.parseImplicitGroup(pos, mode)
	if err != nil {
		return nil, pos, err
	}
	if mode == TextMode {
		return base, pos, nil
	}

	var sup, sub Node
	for {
		tok, err := p.peek(pos, mode)
		if err != nil {
			return nil, pos, err
		}
		switch tok.Text {
		case "\\limits", "\\nolimits":
			op, ok := base.(*OpNode)
			if !ok {
				return nil, pos, parseErrorAt(tok, p.input, ErrUnexpectedToken, "Limit controls must follow a math operator")
			}
			cp := *op
			cp.Limits = tok.Text == "\\limits"
			cp.AlwaysHandleSupSub = true
			cp.Loc.End = tok.End
			base = &cp
			pos = tok.End
			continue
		case "^":
			if sup != nil {
				return nil, pos, parseErrorAt(tok, p.input, ErrDoubleScript, "Double superscript")
			}
			sup, pos, err = p.handleScript(tok.End, mode, tok)
			if err != nil {
				return nil, pos, err
			}
			continue
		case "_":
			if sub != nil {
				return nil, pos, parseErrorAt(tok, p.input, ErrDoubleScript, "Double subscript")
			}
			sub, pos, err = p.handleScript(tok.End, mode, tok)
			if err != nil {
				return nil, pos, err
			}
			continue
		case "'":
			if sup != nil {
				return nil, pos, parseErrorAt(tok, p.input, ErrDoubleScript, "Double superscript")
			}
			sup, pos, err = p.parsePrimes(pos, mode)
			if err != nil {
				return nil, pos, err
			}
			continue
		}
		break
	}
	if sup == nil && sub == nil {
		return base, pos, nil
	}
	var start int
	switch {
	case base != nil:
		start = base.Location().Start
	case sup != nil:
		start = sup.Location().Start
	default:
		start = sub.Location().Start
	}
	return &SupSubNode{
		nodeBase: newBase(mode, Loc{Start: start, End: pos}),
		Base:     base,
		Sup:      sup,
		Sub:      sub,
	}, pos, nil
}

// parsePrimes collects a run of primes, and a superscript directly after
// them, into one superscript group.
func (p *parser) parsePrimes(pos int, mode Mode) (Node, int, error) {
	first, err := p.peek(pos, mode)
	if err != nil {
		return nil, pos, err
	}
	var primes []Node
	for {
		tok, err := p.peek(pos, mode)
		if err != nil {
			return nil, pos, err
		}
		if tok.Text != "'" {
			break
		}
		primes = append(primes, &SymbolNode{nodeBase: newBase(mode, tok.loc()), Group: GroupTextOrd, Name: "\\prime"})
		pos = tok.End
	}
	tok, err := p.peek(pos, mode)
	if err != nil {
		return nil, pos, err
	}
	if tok.Text == "^" {
		sup, next, err := p.handleScript(tok.End, mode, tok)
		if err != nil {
			return nil, pos, err
		}
		primes = append(primes, sup)
		pos = next
	}
	return &OrdGroupNode{nodeBase: newBase(mode, Loc{Start: first.Start, End: pos}), Body: primes}, pos, nil
}

// handleScript parses the argument of ^ or _.
func (p *parser) handleScript(pos int, mode Mode, op Token) (Node, int, error) {
	g, next, err := p.parseGroup(pos, mode, false)
	if err != nil {
		return nil, pos, err
	}
	if g == nil {
		tok, err := p.peek(pos, mode)
		if err != nil {
			return nil, pos, err
		}
		if tok.Kind == TokenCommand && !p.isKnownCommand(tok.Text) {
			return nil, pos, p.unexpected(tok, "group")
		}
		return nil, pos, parseErrorAt(tok, p.input, ErrMissingArgument, "Expected group after '%s'", op.Text)
	}
	if g.fn != nil {
		if !g.fn.takesArguments() || g.fn.Greediness > supsubGreediness {
			return p.callFunction(g, next)
		}
		return nil, pos, parseErrorAt(g.tok, p.input, ErrGreedinessConflict, "Got function '%s' with no arguments as %s", g.tok.Text, scriptName(op.Text))
	}
	return g.node, next, nil
}

func scriptName(op string) string {
	if op == "_" {
		return "subscript"
	}
	return "superscript"
}

// parseImplicitGroup handles commands whose body is not an argument:
// \left...\right, environments, and size, style and color switches that
// take the rest of the scope.
func (p *parser) parseImplicitGroup(pos int, mode Mode) (Node, int, error) {
	tok, err := p.peek(pos, mode)
	if err != nil {
		return nil, pos, err
	}
	if tok.Kind != TokenCommand {
		return p.parseFunction(pos, mode)
	}
	switch tok.Text {
	case "\\left":
		return p.parseLeftRight(pos, mode)
	case "\\right":
		return nil, pos, nil
	case "\\begin":
		return p.parseEnvironment(pos, mode)
	case "\\color":
		return p.parseColorSwitch(pos, mode, tok)
	}
	if size, ok := sizeCommands[tok.Text]; ok {
		body, next, err := p.parseExpression(tok.End, mode, false, "")
		if err != nil {
			return nil, pos, err
		}
		return &SizingNode{nodeBase: newBase(mode, Loc{tok.Start, next}), Size: size, Body: body}, next, nil
	}
	if style, ok := styleCommands[tok.Text]; ok {
		body, next, err := p.parseExpression(tok.End, mode, true, "")
		if err != nil {
			return nil, pos, err
		}
		return &StylingNode{nodeBase: newBase(mode, Loc{tok.Start, next}), Style: style, Body: body}, next, nil
	}
	return p.parseFunction(pos, mode)
}

func (p *parser) parseLeftRight(pos int, mode Mode) (Node, int, error) {
	left, next, err := p.parseFunction(pos, mode)
	if err != nil {
		return nil, pos, err
	}
	body, next, err := p.parseExpression(next, mode, false, "")
	if err != nil {
		return nil, pos, err
	}
	tok, err := p.peek(next, mode)
	if err != nil {
		return nil, pos, err
	}
	if tok.Text != "\\right" {
		return nil, pos, parseErrorAt(tok, p.input, ErrMissingRight, "Missing \\right, got '%s'", tok.display())
	}
	right, next, err := p.parseFunction(next, mode)
	if err != nil {
		return nil, pos, err
	}
	l, lok := left.(*delimNode)
	r, rok := right.(*delimNode)
	if !lok || !rok {
		return nil, pos, newError(KindParse, ErrInvalidDelimiter, p.input, pos, "Malformed \\left...\\right")
	}
	return &LeftRightNode{
		nodeBase: newBase(mode, Loc{Start: l.Loc.Start, End: next}),
		Body:     body,
		Left:     l.Delim,
		Right:    r.Delim,
	}, next, nil
}

// parseColorSwitch handles \color{c}, which colors the rest of the scope.
func (p *parser) parseColorSwitch(pos int, mode Mode, tok Token) (Node, int, error) {
	arg, next, err := p.parseSpecialGroup(tok.End, mode, ArgColor, false)
	if err != nil {
		return nil, pos, err
	}
	if arg == nil {
		return nil, pos, parseErrorAt(tok, p.input, ErrMissingArgument, "Expected group after '\\color'")
	}
	body, next, err := p.parseExpression(next, mode, true, "")
	if err != nil {
		return nil, pos, err
	}
	color := arg.node.(*ColorArgNode).Color
	return &ColorNode{nodeBase: newBase(mode, Loc{tok.Start, next}), Color: color, Body: body}, next, nil
}

func (p *parser) parseEnvironment(pos int, mode Mode) (Node, int, error) {
	begin, next, err := p.parseFunction(pos, mode)
	if err != nil {
		return nil, pos, err
	}
	env, ok := begin.(*envNode)
	if !ok {
		return nil, pos, newError(KindParse, ErrInvalidEnvironment, p.input, pos, "Malformed \\begin")
	}
	spec, ok := p.reg.envs[env.Name]
	if !ok {
		return nil, pos, newError(KindParse, ErrInvalidEnvironment, p.input, env.Loc.Start, "No such environment: %s", env.Name)
	}
	fspec := &FunctionSpec{Names: []string{env.Name}, NumArgs: spec.numArgs, ArgTypes: spec.argTypes, Greediness: 1}
	args, _, next, err := p.parseArguments(next, mode, "\\begin{"+env.Name+"}", fspec)
	if err != nil {
		return nil, pos, err
	}
	result, next, err := spec.handler(p, next, mode, args)
	if err != nil {
		return nil, pos, err
	}
	tok, err := p.peek(next, mode)
	if err != nil {
		return nil, pos, err
	}
	if tok.Text != "\\end" {
		return nil, pos, parseErrorAt(tok, p.input, ErrInvalidEnvironment, "Expected \\end{%s}, got '%s'", env.Name, tok.display())
	}
	end, next, err := p.parseFunction(next, mode)
	if err != nil {
		return nil, pos, err
	}
	if e, ok := end.(*envNode); !ok || e.Name != env.Name {
		name := ""
		if ok {
			name = e.Name
		}
		return nil, pos, parseErrorAt(tok, p.input, ErrInvalidEnvironment, "Mismatch: \\begin{%s} matched by \\end{%s}", env.Name, name)
	}
	return result, next, nil
}

// parseFunction parses a group and, if it names a function, its
// arguments.
func (p *parser) parseFunction(pos int, mode Mode) (Node, int, error) {
	g, next, err := p.parseGroup(pos, mode, false)
	if err != nil || g == nil {
		return nil, pos, err
	}
	if g.fn != nil {
		return p.callFunction(g, next)
	}
	return g.node, next, nil
}

// callFunction parses the arguments of the function in g, starting at pos,
// and applies its handler.
func (p *parser) callFunction(g *parsedGroup, pos int) (Node, int, error) {
	spec, mode, tok := g.fn, g.mode, g.tok
	if mode == TextMode && !spec.AllowedInText {
		return nil, pos, parseErrorAt(tok, p.input, ErrInvalidMode, "Can't use function '%s' in text mode", tok.Text)
	}
	if mode == MathMode && !spec.AllowedInMath {
		return nil, pos, parseErrorAt(tok, p.input, ErrInvalidMode, "Can't use function '%s' in math mode", tok.Text)
	}
	args, optArgs, next, err := p.parseArguments(pos, mode, tok.Text, spec)
	if err != nil {
		return nil, pos, err
	}
	ctx := &FuncContext{Name: tok.Text, Mode: mode, Loc: Loc{Start: tok.Start, End: next}, Input: p.input}
	n, err := p.callHandler(spec, ctx, args, optArgs)
	if err != nil {
		return nil, pos, err
	}
	return n, next, nil
}

func (p *parser) callHandler(spec *FunctionSpec, ctx *FuncContext, args, optArgs []Node) (Node, error) {
	if spec.Handler == nil {
		return &CustomNode{
			nodeBase: newBase(ctx.Mode, ctx.Loc),
			Name:     ctx.Name,
			Args:     args,
			OptArgs:  optArgs,
			builder:  spec.Builder,
		}, nil
	}
	n, err := spec.Handler(ctx, args, optArgs)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ctx.Errorf(ErrUnexpectedToken, "Function '%s' produced no node", ctx.Name)
	}
	if c, ok := n.(*CustomNode); ok && c.builder == nil {
		cp := *c
		cp.builder = spec.Builder
		n = &cp
	}
	return n, nil
}

// parseArguments parses the optional then mandatory arguments of a
// function. A bare function given as an argument is applied in place when
// it takes no arguments or is strictly greedier than the function taking
// it.
func (p *parser) parseArguments(pos int, mode Mode, name string, spec *FunctionSpec) (args, optArgs []Node, next int, err error) {
	total := spec.NumOptionalArgs + spec.NumArgs
	for i := 0; i < total; i++ {
		argType := spec.argType(i)
		optional := i < spec.NumOptionalArgs
		g, after, err := p.parseArgument(pos, mode, argType, optional)
		if err != nil {
			return nil, nil, pos, err
		}
		if g == nil {
			if optional {
				optArgs = append(optArgs, nil)
				continue
			}
			tok, err := p.peek(pos, mode)
			if err != nil {
				return nil, nil, pos, err
			}
			if tok.Kind == TokenCommand && !p.isKnownCommand(tok.Text) {
				return nil, nil, pos, p.unexpected(tok, "group")
			}
			return nil, nil, pos, parseErrorAt(tok, p.input, ErrMissingArgument, "Expected group after '%s'", name)
		}
		node := g.node
		pos = after
		if g.fn != nil {
			if g.fn.takesArguments() && g.fn.Greediness <= spec.Greediness {
				return nil, nil, pos, parseErrorAt(g.tok, p.input, ErrGreedinessConflict, "Got function '%s' as argument to '%s'", g.tok.Text, name)
			}
			node, pos, err = p.callFunction(g, pos)
			if err != nil {
				return nil, nil, pos, err
			}
		}
		if optional {
			optArgs = append(optArgs, node)
		} else {
			args = append(args, node)
		}
	}
	return args, optArgs, pos, nil
}

func (p *parser) parseArgument(pos int, mode Mode, argType ArgType, optional bool) (*parsedGroup, int, error) {
	if argType == ArgOriginal {
		return p.parseGroup(pos, mode, optional)
	}
	return p.parseSpecialGroup(pos, mode, argType, optional)
}

// parseGroup parses a braced group, or an optional bracketed group, or a
// single symbol.
func (p *parser) parseGroup(pos int, mode Mode, optional bool) (*parsedGroup, int, error) {
	tok, err := p.peek(pos, mode)
	if err != nil {
		return nil, pos, err
	}
	open, closer := "{", "}"
	if optional {
		open, closer = "[", "]"
	}
	if tok.Text != open || tok.Kind != TokenChar {
		if optional {
			return nil, pos, nil
		}
		return p.parseSymbol(pos, mode)
	}
	stop := ""
	if optional {
		stop = "]"
	}
	body, next, err := p.parseExpression(tok.End, mode, false, stop)
	if err != nil {
		return nil, pos, err
	}
	end, err := p.peek(next, mode)
	if err != nil {
		return nil, pos, err
	}
	if end.Text != closer {
		if end.Kind == TokenCommand && !p.isKnownCommand(end.Text) {
			return nil, pos, p.unexpected(end, closer)
		}
		return nil, pos, parseErrorAt(end, p.input, ErrUnbalancedBrace, "Expected '%s', got '%s'", closer, end.display())
	}
	return &parsedGroup{
		node: &OrdGroupNode{nodeBase: newBase(mode, Loc{tok.Start, end.End}), Body: body},
		tok:  tok,
		mode: mode,
	}, end.End, nil
}

// parseSpecialGroup parses an argument in a sub-grammar and returns to the
// outer mode afterwards.
func (p *parser) parseSpecialGroup(pos int, outer Mode, argType ArgType, optional bool) (*parsedGroup, int, error) {
	open, closer := "{", "}"
	if optional {
		open, closer = "[", "]"
	}
	switch argType {
	case ArgColor, ArgSize, ArgURL, ArgRaw:
		tok, err := p.peek(pos, outer)
		if err != nil {
			return nil, pos, err
		}
		if tok.Text != open {
			if optional {
				return nil, pos, nil
			}
			return nil, pos, parseErrorAt(tok, p.input, ErrMissingArgument, "Expected '%s', got '%s'", open, tok.display())
		}
		lit, err := p.lexer.lex(tok.End, subLexMode(argType))
		if err != nil {
			return nil, pos, err
		}
		end, err := p.lexer.lex(lit.End, lexMath)
		if err != nil {
			return nil, pos, err
		}
		if end.Text != closer {
			return nil, pos, badLiteral(argType, p.input, lit, end)
		}
		base := newBase(outer, Loc{tok.Start, end.End})
		var n Node
		switch argType {
		case ArgColor:
			n = &ColorArgNode{nodeBase: base, Color: lit.Text}
		case ArgSize:
			n = &SizeArgNode{nodeBase: base, Value: lit.Dim}
		default:
			n = &RawArgNode{nodeBase: base, Text: lit.Text}
		}
		return &parsedGroup{node: n, tok: tok, mode: outer}, end.End, nil
	case ArgText, ArgHBox:
		ws, err := p.lexer.lex(pos, lexWhitespace)
		if err != nil {
			return nil, pos, err
		}
		g, next, err := p.parseGroup(ws.End, TextMode, optional)
		if err != nil || g == nil || g.fn != nil || argType == ArgText {
			return g, next, err
		}
		g.node = &StylingNode{
			nodeBase: newBase(TextMode, g.node.Location()),
			Style:    StyleText,
			Body:     []Node{g.node},
		}
		return g, next, nil
	case ArgMath:
		return p.parseGroup(pos, MathMode, optional)
	}
	return p.parseGroup(pos, outer, optional)
}

func subLexMode(t ArgType) lexMode {
	switch t {
	case ArgColor:
		return lexColor
	case ArgSize:
		return lexSize
	case ArgURL:
		return lexURL
	}
	return lexRaw
}

func badLiteral(t ArgType, input string, lit, end Token) error {
	switch t {
	case ArgColor:
		return newError(KindArgumentType, ErrInvalidColor, input, lit.Start, "Invalid color: '%s'", input[lit.Start:min(len(input), end.End)])
	case ArgSize:
		return newError(KindArgumentType, ErrInvalidSize, input, lit.Start, "Invalid size: '%s'", input[lit.Start:min(len(input), end.End)])
	}
	return newError(KindArgumentType, ErrUnexpectedToken, input, end.Start, "Expected '}', got '%s'", end.display())
}

// parseSymbol parses one token as a function name or a symbol. It returns
// nil when the token is neither.
func (p *parser) parseSymbol(pos int, mode Mode) (*parsedGroup, int, error) {
	tok, err := p.peek(pos, mode)
	if err != nil {
		return nil, pos, err
	}
	if tok.IsEOF() {
		return nil, pos, nil
	}
	if spec := p.reg.lookup(tok.Text); spec != nil {
		return &parsedGroup{fn: spec, tok: tok, mode: mode}, tok.End, nil
	}
	if _, ok := infixReplacements[tok.Text]; ok {
		n := &infixNode{nodeBase: newBase(mode, tok.loc()), Replace: infixReplacements[tok.Text]}
		return &parsedGroup{node: n, tok: tok, mode: mode}, tok.End, nil
	}
	if info, ok := lookupSymbol(mode, tok.Text); ok {
		n := &SymbolNode{nodeBase: newBase(mode, tok.loc()), Group: info.group, Name: tok.Text}
		return &parsedGroup{node: n, tok: tok, mode: mode}, tok.End, nil
	}
	if tok.Kind == TokenChar && !endOfExpression[tok.Text] {
		if group, ok := unicodeSymbolGroup(tok.Text, mode); ok {
			n := &SymbolNode{nodeBase: newBase(mode, tok.loc()), Group: group, Name: tok.Text}
			return &parsedGroup{node: n, tok: tok, mode: mode}, tok.End, nil
		}
	}
	return nil, pos, nil
}

// unicodeSymbolGroup classifies characters missing from the symbol tables:
// any text in text mode, letters and digits in math mode.
func unicodeSymbolGroup(text string, mode Mode) (SymbolGroup, bool) {
	r, _ := utf8.DecodeRuneInString(text)
	if mode == TextMode {
		return GroupTextOrd, !strings.ContainsAny(text, "{}^_&#$\\~%")
	}
	switch {
	case unicode.IsLetter(r):
		return GroupMathOrd, true
	case unicode.IsDigit(r):
		return GroupTextOrd, true
	}
	return 0, false
}
