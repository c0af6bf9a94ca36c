package mathbox

import "strings"

// atopFrac is the function \atop is rewritten to. It cannot be typed since
// the lexer ends a command name at '@'.
const atopFrac = "\\atop@frac"

// delimiters accepted after \left, \right, \middle and the \big family.
var delimiters = map[string]bool{
	"(": true, ")": true, "[": true, "\\lbrack": true, "]": true, "\\rbrack": true,
	"\\{": true, "\\lbrace": true, "\\}": true, "\\rbrace": true,
	"\\lfloor": true, "\\rfloor": true, "\\lceil": true, "\\rceil": true,
	"<": true, ">": true, "\\langle": true, "\\rangle": true,
	"\\lvert": true, "\\rvert": true, "\\lVert": true, "\\rVert": true,
	"/": true, "\\backslash": true, "|": true, "\\vert": true, "\\|": true, "\\Vert": true,
	"\\uparrow": true, "\\Uparrow": true, "\\downarrow": true, "\\Downarrow": true,
	"\\updownarrow": true, "\\Updownarrow": true, ".": true,
}

// checkDelimiter returns the delimiter name carried by n.
func checkDelimiter(ctx *FuncContext, n Node) (string, error) {
	if s, ok := n.(*SymbolNode); ok && delimiters[s.Name] {
		return s.Name, nil
	}
	name := "group"
	if s, ok := n.(*SymbolNode); ok {
		name = s.Name
	}
	return "", newError(KindParse, ErrInvalidDelimiter, ctx.Input, n.Location().Start, "Invalid delimiter: '%s' after '%s'", name, ctx.Name)
}

type delimSize struct {
	size  int
	class string
}

var delimiterSizes = map[string]delimSize{
	"\\bigl": {1, "mopen"}, "\\Bigl": {2, "mopen"}, "\\biggl": {3, "mopen"}, "\\Biggl": {4, "mopen"},
	"\\bigr": {1, "mclose"}, "\\Bigr": {2, "mclose"}, "\\biggr": {3, "mclose"}, "\\Biggr": {4, "mclose"},
	"\\bigm": {1, "mrel"}, "\\Bigm": {2, "mrel"}, "\\biggm": {3, "mrel"}, "\\Biggm": {4, "mrel"},
	"\\big": {1, "mord"}, "\\Big": {2, "mord"}, "\\bigg": {3, "mord"}, "\\Bigg": {4, "mord"},
}

var mathFonts = map[string]string{
	"\\mathrm":     FontMainRegular,
	"\\mathit":     FontMainItalic,
	"\\mathbf":     FontMainBold,
	"\\mathbb":     FontAMSRegular,
	"\\Bbb":        FontAMSRegular,
	"\\mathcal":    FontCaligraphic,
	"\\mathfrak":   FontFraktur,
	"\\mathscr":    FontScript,
	"\\mathsf":     FontSansSerif,
	"\\mathtt":     FontTypewriter,
	"\\boldsymbol": FontMainBold,
}

var textFonts = map[string]string{
	"\\text":       "",
	"\\textrm":     FontMainRegular,
	"\\textnormal": FontMainRegular,
	"\\mbox":       "",
	"\\textbf":     FontMainBold,
	"\\textit":     FontMainItalic,
	"\\textsf":     FontSansSerif,
	"\\texttt":     FontTypewriter,
}

var mathClasses = map[string]string{
	"\\mathord":   "mord",
	"\\mathbin":   "mbin",
	"\\mathrel":   "mrel",
	"\\mathopen":  "mopen",
	"\\mathclose": "mclose",
	"\\mathpunct": "mpunct",
	"\\mathinner": "minner",
}

var (
	limitOps = []string{
		"\\sum", "\\prod", "\\coprod", "\\bigcap", "\\bigcup", "\\bigvee", "\\bigwedge",
		"\\bigoplus", "\\bigotimes", "\\bigodot", "\\biguplus", "\\bigsqcup",
	}
	noLimitOps = []string{"\\int", "\\intop", "\\iint", "\\iiint", "\\oint", "\\smallint"}
	namedOps   = []string{
		"\\arcsin", "\\arccos", "\\arctan", "\\arg", "\\cos", "\\cosh", "\\cot", "\\coth",
		"\\csc", "\\deg", "\\dim", "\\exp", "\\hom", "\\ker", "\\lg", "\\ln", "\\log",
		"\\sec", "\\sin", "\\sinh", "\\tan", "\\tanh",
	}
	namedLimitOps = []string{
		"\\det", "\\gcd", "\\inf", "\\lim", "\\liminf", "\\limsup", "\\max", "\\min",
		"\\Pr", "\\sup",
	}
	accents = []string{
		"\\acute", "\\grave", "\\ddot", "\\tilde", "\\bar", "\\breve", "\\check",
		"\\hat", "\\vec", "\\dot", "\\mathring", "\\widehat", "\\widetilde",
	}
)

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func ctxBase(ctx *FuncContext) nodeBase {
	return newBase(ctx.Mode, ctx.Loc)
}

// builtinFunctions returns the specs of the default registry.
func builtinFunctions() []FunctionSpec {
	specs := []FunctionSpec{
		{
			Names:           []string{"\\sqrt"},
			NumArgs:         1,
			NumOptionalArgs: 1,
			Handler: func(ctx *FuncContext, args, opt []Node) (Node, error) {
				return &SqrtNode{nodeBase: ctxBase(ctx), Body: args[0], Index: opt[0]}, nil
			},
		},
		{
			Names:      []string{"\\frac", "\\dfrac", "\\tfrac", "\\binom", "\\dbinom", "\\tbinom", atopFrac},
			NumArgs:    2,
			Greediness: 2,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				n := &GenFracNode{nodeBase: ctxBase(ctx), Numer: args[0], Denom: args[1], HasBarLine: true}
				switch ctx.Name {
				case "\\dfrac", "\\dbinom":
					n.Size = FracDisplay
				case "\\tfrac", "\\tbinom":
					n.Size = FracText
				}
				if strings.HasSuffix(ctx.Name, "binom") {
					n.HasBarLine = false
					n.LeftDelim, n.RightDelim = "(", ")"
				}
				if ctx.Name == atopFrac {
					n.HasBarLine = false
				}
				return n, nil
			},
		},
		{
			Names:   []string{"\\left", "\\right"},
			NumArgs: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				d, err := checkDelimiter(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return &delimNode{nodeBase: ctxBase(ctx), Delim: d, Side: ctx.Name[1:]}, nil
			},
		},
		{
			Names:   []string{"\\middle"},
			NumArgs: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				d, err := checkDelimiter(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return &MiddleNode{nodeBase: ctxBase(ctx), Delim: d}, nil
			},
		},
		{
			Names:   keys(delimiterSizes),
			NumArgs: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				d, err := checkDelimiter(ctx, args[0])
				if err != nil {
					return nil, err
				}
				s := delimiterSizes[ctx.Name]
				return &DelimSizingNode{nodeBase: ctxBase(ctx), Delim: d, Size: s.size, Class: s.class}, nil
			},
		},
		{
			Names:   accents,
			NumArgs: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &AccentNode{nodeBase: ctxBase(ctx), Label: ctx.Name, Base: args[0]}, nil
			},
		},
		{
			Names:   []string{"\\overline"},
			NumArgs: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &OverlineNode{nodeBase: ctxBase(ctx), Body: args[0]}, nil
			},
		},
		{
			Names:   []string{"\\underline"},
			NumArgs: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &UnderlineNode{nodeBase: ctxBase(ctx), Body: args[0]}, nil
			},
		},
		{
			Names:   []string{"\\overbrace", "\\underbrace"},
			NumArgs: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &HorizBraceNode{nodeBase: ctxBase(ctx), Label: ctx.Name, IsOver: ctx.Name == "\\overbrace", Base: args[0]}, nil
			},
		},
		{
			Names:           []string{"\\xrightarrow", "\\xleftarrow"},
			NumArgs:         1,
			NumOptionalArgs: 1,
			Handler: func(ctx *FuncContext, args, opt []Node) (Node, error) {
				return &XArrowNode{nodeBase: ctxBase(ctx), Label: ctx.Name, Body: args[0], Below: opt[0]}, nil
			},
		},
		{
			Names:           []string{"\\rule"},
			NumArgs:         2,
			NumOptionalArgs: 1,
			ArgTypes:        []ArgType{ArgSize, ArgSize, ArgSize},
			AllowedInText:   true,
			AllowedInMath:   true,
			Handler: func(ctx *FuncContext, args, opt []Node) (Node, error) {
				n := &RuleNode{
					nodeBase: ctxBase(ctx),
					Width:    args[0].(*SizeArgNode).Value,
					Height:   args[1].(*SizeArgNode).Value,
				}
				if opt[0] != nil {
					n.Shift = opt[0].(*SizeArgNode).Value
				}
				return n, nil
			},
		},
		{
			Names:         []string{"\\kern", "\\mkern", "\\hspace"},
			NumArgs:       1,
			ArgTypes:      []ArgType{ArgSize},
			AllowedInText: true,
			AllowedInMath: true,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &KernNode{nodeBase: ctxBase(ctx), Dimension: args[0].(*SizeArgNode).Value}, nil
			},
		},
		{
			Names:         []string{"\\phantom"},
			NumArgs:       1,
			AllowedInText: true,
			AllowedInMath: true,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &PhantomNode{nodeBase: ctxBase(ctx), Body: ordBody(args[0])}, nil
			},
		},
		{
			Names:         []string{"\\llap", "\\rlap"},
			NumArgs:       1,
			AllowedInText: true,
			AllowedInMath: true,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &LapNode{nodeBase: ctxBase(ctx), Left: ctx.Name == "\\llap", Body: args[0]}, nil
			},
		},
		{
			Names:           []string{"\\smash"},
			NumArgs:         1,
			NumOptionalArgs: 1,
			ArgTypes:        []ArgType{ArgRaw, ArgOriginal},
			AllowedInText:   true,
			AllowedInMath:   true,
			Handler: func(ctx *FuncContext, args, opt []Node) (Node, error) {
				n := &SmashNode{nodeBase: ctxBase(ctx), Body: args[0], SmashHeight: true, SmashDepth: true}
				if opt[0] != nil {
					letters := opt[0].(*RawArgNode).Text
					n.SmashHeight = strings.Contains(letters, "t")
					n.SmashDepth = strings.Contains(letters, "b")
				}
				return n, nil
			},
		},
		{
			Names:   keys(mathClasses),
			NumArgs: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &MClassNode{nodeBase: ctxBase(ctx), Class: mathClasses[ctx.Name], Body: ordBody(args[0])}, nil
			},
		},
		{
			Names:   []string{"\\mathop"},
			NumArgs: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &OpNode{nodeBase: ctxBase(ctx), Name: ctx.Name, Limits: true, Body: ordBody(args[0])}, nil
			},
		},
		{
			Names:   []string{"\\operatorname"},
			NumArgs: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &OpNode{nodeBase: ctxBase(ctx), Name: ctx.Name, Body: ordBody(args[0])}, nil
			},
		},
		{
			Names:      []string{"\\stackrel", "\\overset", "\\underset"},
			NumArgs:    2,
			Greediness: 2,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				op := &OpNode{
					nodeBase:           newBase(ctx.Mode, args[1].Location()),
					Name:               "\\mathop",
					Limits:             true,
					AlwaysHandleSupSub: true,
					Body:               ordBody(args[1]),
				}
				ss := &SupSubNode{nodeBase: ctxBase(ctx), Base: op}
				if ctx.Name == "\\underset" {
					ss.Sub = args[0]
				} else {
					ss.Sup = args[0]
				}
				class := "mord"
				if ctx.Name == "\\stackrel" {
					class = "mrel"
				}
				return &MClassNode{nodeBase: ctxBase(ctx), Class: class, Body: []Node{ss}}, nil
			},
		},
		{
			Names:         keys(textFonts),
			NumArgs:       1,
			ArgTypes:      []ArgType{ArgText},
			Greediness:    2,
			AllowedInText: true,
			AllowedInMath: true,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &TextNode{nodeBase: ctxBase(ctx), Body: ordBody(args[0]), Font: textFonts[ctx.Name]}, nil
			},
		},
		{
			Names:      keys(mathFonts),
			NumArgs:    1,
			Greediness: 2,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &FontNode{nodeBase: ctxBase(ctx), Font: mathFonts[ctx.Name], Body: args[0]}, nil
			},
		},
		{
			Names:         []string{"\\textcolor"},
			NumArgs:       2,
			ArgTypes:      []ArgType{ArgColor, ArgOriginal},
			Greediness:    3,
			AllowedInText: true,
			AllowedInMath: true,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &ColorNode{nodeBase: ctxBase(ctx), Color: args[0].(*ColorArgNode).Color, Body: ordBody(args[1])}, nil
			},
		},
		{
			Names:         colorCommands(),
			NumArgs:       1,
			Greediness:    3,
			AllowedInText: true,
			AllowedInMath: true,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &ColorNode{nodeBase: ctxBase(ctx), Color: ctx.Name[1:], Body: ordBody(args[0])}, nil
			},
		},
		{
			Names:         []string{"\\href"},
			NumArgs:       2,
			ArgTypes:      []ArgType{ArgURL, ArgOriginal},
			AllowedInText: true,
			AllowedInMath: true,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &HrefNode{nodeBase: ctxBase(ctx), URL: args[0].(*RawArgNode).Text, Body: ordBody(args[1])}, nil
			},
		},
		{
			Names:         []string{"\\url"},
			NumArgs:       1,
			ArgTypes:      []ArgType{ArgURL},
			AllowedInText: true,
			AllowedInMath: true,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				url := args[0].(*RawArgNode)
				var body []Node
				for _, r := range url.Text {
					body = append(body, &SymbolNode{nodeBase: newBase(TextMode, url.Loc), Group: GroupTextOrd, Name: string(r)})
				}
				text := &TextNode{nodeBase: ctxBase(ctx), Body: body, Font: FontTypewriter}
				return &HrefNode{nodeBase: ctxBase(ctx), URL: url.Text, Body: []Node{text}}, nil
			},
		},
		{
			Names:         []string{"\\hbox"},
			NumArgs:       1,
			ArgTypes:      []ArgType{ArgHBox},
			AllowedInText: true,
			AllowedInMath: true,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &MClassNode{nodeBase: ctxBase(ctx), Class: "mord", Body: []Node{args[0]}}, nil
			},
		},
		{
			Names:         []string{"\\raisebox"},
			NumArgs:       2,
			ArgTypes:      []ArgType{ArgSize, ArgHBox},
			AllowedInText: true,
			AllowedInMath: true,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &RaiseBoxNode{nodeBase: ctxBase(ctx), Dy: args[0].(*SizeArgNode).Value, Body: args[1]}, nil
			},
		},
		{
			Names:   []string{"\\boxed"},
			NumArgs: 1,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &EncloseNode{nodeBase: ctxBase(ctx), Label: ctx.Name, Body: args[0]}, nil
			},
		},
		{
			Names:         []string{"\\fbox"},
			NumArgs:       1,
			ArgTypes:      []ArgType{ArgHBox},
			AllowedInText: true,
			AllowedInMath: true,
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &EncloseNode{nodeBase: ctxBase(ctx), Label: ctx.Name, Body: args[0]}, nil
			},
		},
		{
			Names: limitOps,
			Handler: func(ctx *FuncContext, _, _ []Node) (Node, error) {
				return &OpNode{nodeBase: ctxBase(ctx), Name: ctx.Name, Symbol: true, Limits: true}, nil
			},
		},
		{
			Names: noLimitOps,
			Handler: func(ctx *FuncContext, _, _ []Node) (Node, error) {
				return &OpNode{nodeBase: ctxBase(ctx), Name: ctx.Name, Symbol: true}, nil
			},
		},
		{
			Names: namedOps,
			Handler: func(ctx *FuncContext, _, _ []Node) (Node, error) {
				return &OpNode{nodeBase: ctxBase(ctx), Name: ctx.Name}, nil
			},
		},
		{
			Names: namedLimitOps,
			Handler: func(ctx *FuncContext, _, _ []Node) (Node, error) {
				return &OpNode{nodeBase: ctxBase(ctx), Name: ctx.Name, Limits: true}, nil
			},
		},
		{
			Names:           []string{"\\\\", "\\cr"},
			NumOptionalArgs: 1,
			ArgTypes:        []ArgType{ArgSize},
			Handler: func(ctx *FuncContext, _, opt []Node) (Node, error) {
				n := &crNode{nodeBase: ctxBase(ctx)}
				if opt[0] != nil {
					size := opt[0].(*SizeArgNode).Value
					n.Size = &size
				}
				return n, nil
			},
		},
		{
			Names:    []string{"\\begin", "\\end"},
			NumArgs:  1,
			ArgTypes: []ArgType{ArgRaw},
			Handler: func(ctx *FuncContext, args, _ []Node) (Node, error) {
				return &envNode{nodeBase: ctxBase(ctx), Name: args[0].(*RawArgNode).Text, End: ctx.Name == "\\end"}, nil
			},
		},
	}
	return specs
}
