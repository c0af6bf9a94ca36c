package mathbox

// SymbolGroup is the atom class a symbol parses to.
type SymbolGroup uint8

const (
	GroupMathOrd SymbolGroup = iota
	GroupTextOrd
	GroupBin
	GroupRel
	GroupOpen
	GroupClose
	GroupPunct
	GroupInner
	GroupSpacing
	GroupAccent
	GroupOp
)

func (g SymbolGroup) String() string {
	switch g {
	case GroupMathOrd:
		return "mathord"
	case GroupTextOrd:
		return "textord"
	case GroupBin:
		return "bin"
	case GroupRel:
		return "rel"
	case GroupOpen:
		return "open"
	case GroupClose:
		return "close"
	case GroupPunct:
		return "punct"
	case GroupInner:
		return "inner"
	case GroupSpacing:
		return "spacing"
	case GroupAccent:
		return "accent-token"
	case GroupOp:
		return "op-token"
	}
	return "unknown"
}

// symbolFont names the font family a symbol is drawn from.
type symbolFont uint8

const (
	fontMain symbolFont = iota
	fontAMS
)

type symbolInfo struct {
	font    symbolFont
	group   SymbolGroup
	replace string
}

var symbolTables = [2]map[string]symbolInfo{
	MathMode: {},
	TextMode: {},
}

func defineSymbol(mode Mode, font symbolFont, group SymbolGroup, replace string, names ...string) {
	for _, name := range names {
		symbolTables[mode][name] = symbolInfo{font: font, group: group, replace: replace}
	}
}

func lookupSymbol(mode Mode, name string) (symbolInfo, bool) {
	info, ok := symbolTables[mode][name]
	return info, ok
}

// symbolText returns the glyph drawn for a symbol name.
func symbolText(mode Mode, name string) string {
	if info, ok := symbolTables[mode][name]; ok && info.replace != "" {
		return info.replace
	}
	return name
}

func init() {
	m, t := MathMode, TextMode

	// relations
	for _, s := range [][2]string{
		{"\\equiv", "≡"}, {"\\prec", "≺"}, {"\\succ", "≻"}, {"\\sim", "∼"},
		{"\\perp", "⊥"}, {"\\preceq", "⪯"}, {"\\succeq", "⪰"}, {"\\simeq", "≃"},
		{"\\mid", "∣"}, {"\\ll", "≪"}, {"\\gg", "≫"}, {"\\asymp", "≍"},
		{"\\parallel", "∥"}, {"\\bowtie", "⋈"}, {"\\smile", "⌣"}, {"\\sqsubseteq", "⊑"},
		{"\\sqsupseteq", "⊒"}, {"\\doteq", "≐"}, {"\\frown", "⌢"}, {"\\ni", "∋"},
		{"\\propto", "∝"}, {"\\vdash", "⊢"}, {"\\dashv", "⊣"}, {"\\owns", "∋"},
		{"\\leq", "≤"}, {"\\le", "≤"}, {"\\geq", "≥"}, {"\\ge", "≥"},
		{"\\in", "∈"}, {"\\notin", "∉"}, {"\\subset", "⊂"}, {"\\supset", "⊃"},
		{"\\subseteq", "⊆"}, {"\\supseteq", "⊇"}, {"\\neq", "≠"}, {"\\ne", "≠"},
		{"\\approx", "≈"}, {"\\cong", "≅"}, {"\\models", "⊨"},
		{"\\leftarrow", "←"}, {"\\gets", "←"}, {"\\rightarrow", "→"}, {"\\to", "→"},
		{"\\Leftarrow", "⇐"}, {"\\Rightarrow", "⇒"}, {"\\leftrightarrow", "↔"},
		{"\\Leftrightarrow", "⇔"}, {"\\longleftarrow", "⟵"}, {"\\longrightarrow", "⟶"},
		{"\\Longleftarrow", "⟸"}, {"\\Longrightarrow", "⟹"}, {"\\implies", "⟹"},
		{"\\impliedby", "⟸"}, {"\\iff", "⟺"}, {"\\mapsto", "↦"}, {"\\longmapsto", "⟼"},
		{"\\uparrow", "↑"}, {"\\downarrow", "↓"}, {"\\Uparrow", "⇑"}, {"\\Downarrow", "⇓"},
		{"\\updownarrow", "↕"}, {"\\Updownarrow", "⇕"}, {"\\nearrow", "↗"}, {"\\searrow", "↘"}, {"\\swarrow", "↙"}, {"\\nwarrow", "↖"},
		{"\\hookleftarrow", "↩"}, {"\\hookrightarrow", "↪"}, {"\\rightleftharpoons", "⇌"},
		{"=", "="}, {"<", "<"}, {">", ">"}, {":", ":"},
	} {
		defineSymbol(m, fontMain, GroupRel, s[1], s[0])
	}
	for _, s := range [][2]string{
		{"\\leqq", "≦"}, {"\\geqq", "≧"}, {"\\leqslant", "⩽"}, {"\\geqslant", "⩾"},
		{"\\lesssim", "≲"}, {"\\gtrsim", "≳"}, {"\\approxeq", "≊"}, {"\\therefore", "∴"},
		{"\\because", "∵"}, {"\\nleq", "≰"}, {"\\ngeq", "≱"}, {"\\nsubseteq", "⊈"},
		{"\\twoheadrightarrow", "↠"}, {"\\twoheadleftarrow", "↞"}, {"\\leadsto", "⇝"},
	} {
		defineSymbol(m, fontAMS, GroupRel, s[1], s[0])
	}

	// binary operators
	for _, s := range [][2]string{
		{"+", "+"}, {"-", "−"}, {"*", "∗"}, {"\\pm", "±"}, {"\\mp", "∓"},
		{"\\times", "×"}, {"\\div", "÷"}, {"\\cdot", "⋅"}, {"\\ast", "∗"},
		{"\\star", "⋆"}, {"\\circ", "∘"}, {"\\bullet", "∙"}, {"\\cap", "∩"},
		{"\\cup", "∪"}, {"\\uplus", "⊎"}, {"\\sqcap", "⊓"}, {"\\sqcup", "⊔"},
		{"\\vee", "∨"}, {"\\lor", "∨"}, {"\\wedge", "∧"}, {"\\land", "∧"},
		{"\\setminus", "∖"}, {"\\wr", "≀"}, {"\\diamond", "⋄"}, {"\\oplus", "⊕"},
		{"\\ominus", "⊖"}, {"\\otimes", "⊗"}, {"\\oslash", "⊘"}, {"\\odot", "⊙"},
		{"\\bigcirc", "◯"}, {"\\dagger", "†"}, {"\\ddagger", "‡"}, {"\\amalg", "⨿"},
		{"\\triangleleft", "◃"}, {"\\triangleright", "▹"}, {"\\bigtriangleup", "△"},
		{"\\bigtriangledown", "▽"},
	} {
		defineSymbol(m, fontMain, GroupBin, s[1], s[0])
	}
	for _, s := range [][2]string{
		{"\\ltimes", "⋉"}, {"\\rtimes", "⋊"}, {"\\boxplus", "⊞"}, {"\\boxminus", "⊟"},
		{"\\boxtimes", "⊠"}, {"\\boxdot", "⊡"}, {"\\dotplus", "∔"}, {"\\intercal", "⊺"},
	} {
		defineSymbol(m, fontAMS, GroupBin, s[1], s[0])
	}

	// delimiters
	for _, s := range [][2]string{
		{"(", "("}, {"[", "["}, {"\\{", "{"}, {"\\lbrace", "{"}, {"\\langle", "⟨"},
		{"\\lfloor", "⌊"}, {"\\lceil", "⌈"}, {"\\lbrack", "["}, {"\\lvert", "∣"},
		{"\\lVert", "∥"},
	} {
		defineSymbol(m, fontMain, GroupOpen, s[1], s[0])
	}
	for _, s := range [][2]string{
		{")", ")"}, {"]", "]"}, {"\\}", "}"}, {"\\rbrace", "}"}, {"\\rangle", "⟩"},
		{"\\rfloor", "⌋"}, {"\\rceil", "⌉"}, {"\\rbrack", "]"}, {"\\rvert", "∣"},
		{"\\rVert", "∥"}, {"?", "?"}, {"!", "!"},
	} {
		defineSymbol(m, fontMain, GroupClose, s[1], s[0])
	}

	// punctuation and inner
	defineSymbol(m, fontMain, GroupPunct, ",", ",")
	defineSymbol(m, fontMain, GroupPunct, ";", ";")
	defineSymbol(m, fontMain, GroupPunct, ":", "\\colon")
	defineSymbol(m, fontMain, GroupInner, "…", "\\ldots", "\\dots")
	defineSymbol(m, fontMain, GroupInner, "⋯", "\\cdots")
	defineSymbol(m, fontMain, GroupInner, "⋱", "\\ddots")
	defineSymbol(m, fontMain, GroupTextOrd, "⋮", "\\vdots")

	// ordinary symbols
	for _, s := range [][2]string{
		{"\\infty", "∞"}, {"\\prime", "′"}, {"\\nabla", "∇"}, {"\\partial", "∂"},
		{"\\forall", "∀"}, {"\\exists", "∃"}, {"\\nexists", "∄"}, {"\\emptyset", "∅"},
		{"\\varnothing", "∅"}, {"\\neg", "¬"}, {"\\lnot", "¬"}, {"\\top", "⊤"},
		{"\\bot", "⊥"}, {"\\angle", "∠"}, {"\\triangle", "△"}, {"\\surd", "√"},
		{"\\aleph", "ℵ"}, {"\\hbar", "ℏ"}, {"\\ell", "ℓ"}, {"\\wp", "℘"},
		{"\\Re", "ℜ"}, {"\\Im", "ℑ"}, {"\\flat", "♭"}, {"\\natural", "♮"},
		{"\\sharp", "♯"}, {"\\clubsuit", "♣"}, {"\\diamondsuit", "♢"},
		{"\\heartsuit", "♡"}, {"\\spadesuit", "♠"}, {"\\backslash", "\\"},
		{"|", "∣"}, {"\\vert", "∣"}, {"\\|", "∥"}, {"\\Vert", "∥"},
		{"\\#", "#"}, {"\\&", "&"}, {"\\$", "$"}, {"\\%", "%"}, {"\\_", "_"},
		{"/", "/"}, {"@", "@"}, {".", "."}, {"\"", "\""}, {"\\degree", "°"},
		{"\\imath", "ı"}, {"\\jmath", "ȷ"},
	} {
		defineSymbol(m, fontMain, GroupTextOrd, s[1], s[0])
	}
	for _, d := range "0123456789" {
		defineSymbol(m, fontMain, GroupTextOrd, string(d), string(d))
		defineSymbol(t, fontMain, GroupTextOrd, string(d), string(d))
	}
	for c := 'a'; c <= 'z'; c++ {
		defineSymbol(m, fontMain, GroupMathOrd, string(c), string(c))
		defineSymbol(t, fontMain, GroupTextOrd, string(c), string(c))
	}
	for c := 'A'; c <= 'Z'; c++ {
		defineSymbol(m, fontMain, GroupMathOrd, string(c), string(c))
		defineSymbol(t, fontMain, GroupTextOrd, string(c), string(c))
	}

	// greek
	for _, s := range [][2]string{
		{"\\alpha", "α"}, {"\\beta", "β"}, {"\\gamma", "γ"}, {"\\delta", "δ"},
		{"\\epsilon", "ϵ"}, {"\\varepsilon", "ε"}, {"\\zeta", "ζ"}, {"\\eta", "η"},
		{"\\theta", "θ"}, {"\\vartheta", "ϑ"}, {"\\iota", "ι"}, {"\\kappa", "κ"},
		{"\\lambda", "λ"}, {"\\mu", "μ"}, {"\\nu", "ν"}, {"\\xi", "ξ"},
		{"\\omicron", "ο"}, {"\\pi", "π"}, {"\\varpi", "ϖ"}, {"\\rho", "ρ"},
		{"\\varrho", "ϱ"}, {"\\sigma", "σ"}, {"\\varsigma", "ς"}, {"\\tau", "τ"},
		{"\\upsilon", "υ"}, {"\\phi", "ϕ"}, {"\\varphi", "φ"}, {"\\chi", "χ"},
		{"\\psi", "ψ"}, {"\\omega", "ω"},
	} {
		defineSymbol(m, fontMain, GroupMathOrd, s[1], s[0])
	}
	for _, s := range [][2]string{
		{"\\Gamma", "Γ"}, {"\\Delta", "Δ"}, {"\\Theta", "Θ"}, {"\\Lambda", "Λ"},
		{"\\Xi", "Ξ"}, {"\\Pi", "Π"}, {"\\Sigma", "Σ"}, {"\\Upsilon", "Υ"},
		{"\\Phi", "Φ"}, {"\\Psi", "Ψ"}, {"\\Omega", "Ω"},
	} {
		defineSymbol(m, fontMain, GroupTextOrd, s[1], s[0])
	}

	// spacing
	for _, s := range []string{"\\ ", "~", "\\nobreakspace", "\\space", "\\,", "\\:", "\\;", "\\!", "\\enspace", "\\quad", "\\qquad", "\\thinspace", "\\medspace", "\\thickspace", "\\negthinspace"} {
		defineSymbol(m, fontMain, GroupSpacing, "", s)
	}
	for _, s := range []string{" ", "\\ ", "~", "\\nobreakspace", "\\space", "\\quad", "\\qquad", "\\enspace"} {
		defineSymbol(t, fontMain, GroupSpacing, "", s)
	}

	// accents
	for _, s := range [][2]string{
		{"\\acute", "ˊ"}, {"\\grave", "ˋ"}, {"\\ddot", "¨"}, {"\\tilde", "~"},
		{"\\bar", "ˉ"}, {"\\breve", "˘"}, {"\\check", "ˇ"}, {"\\hat", "^"},
		{"\\vec", "⃗"}, {"\\dot", "˙"}, {"\\mathring", "˚"},
		{"\\widehat", "^"}, {"\\widetilde", "~"},
	} {
		defineSymbol(m, fontMain, GroupAccent, s[1], s[0])
	}

	// large operators
	for _, s := range [][2]string{
		{"\\sum", "∑"}, {"\\prod", "∏"}, {"\\coprod", "∐"}, {"\\int", "∫"},
		{"\\intop", "∫"}, {"\\iint", "∬"}, {"\\iiint", "∭"}, {"\\oint", "∮"},
		{"\\smallint", "∫"}, {"\\bigcap", "⋂"}, {"\\bigcup", "⋃"}, {"\\bigvee", "⋁"},
		{"\\bigwedge", "⋀"}, {"\\bigoplus", "⨁"}, {"\\bigotimes", "⨂"},
		{"\\bigodot", "⨀"}, {"\\biguplus", "⨄"}, {"\\bigsqcup", "⨆"},
	} {
		defineSymbol(m, fontMain, GroupOp, s[1], s[0])
	}

	// text mode punctuation and ligatures
	for _, s := range [][2]string{
		{".", "."}, {",", ","}, {";", ";"}, {":", ":"}, {"!", "!"}, {"?", "?"},
		{"(", "("}, {")", ")"}, {"[", "["}, {"]", "]"}, {"/", "/"}, {"@", "@"},
		{"+", "+"}, {"=", "="}, {"*", "*"}, {"'", "’"}, {"`", "‘"}, {"\"", "\""},
		{"<", "<"}, {">", ">"}, {"|", "|"}, {"-", "-"}, {"--", "–"}, {"---", "—"},
		{"``", "“"}, {"''", "”"}, {"\\{", "{"}, {"\\}", "}"}, {"\\#", "#"},
		{"\\&", "&"}, {"\\$", "$"}, {"\\%", "%"}, {"\\_", "_"},
		{"\\textbackslash", "\\"}, {"\\dots", "…"}, {"\\ldots", "…"},
	} {
		defineSymbol(t, fontMain, GroupTextOrd, s[1], s[0])
	}
}

// spacingWidths maps spacing symbols to their width in ems of the current
// font.
var spacingWidths = map[string]float64{
	" ":              0.25,
	"\\ ":            0.25,
	"~":              0.25,
	"\\nobreakspace": 0.25,
	"\\space":        0.25,
	"\\,":            3.0 / 18,
	"\\thinspace":    3.0 / 18,
	"\\:":            4.0 / 18,
	"\\medspace":     4.0 / 18,
	"\\;":            5.0 / 18,
	"\\thickspace":   5.0 / 18,
	"\\!":            -3.0 / 18,
	"\\negthinspace": -3.0 / 18,
	"\\enspace":      0.5,
	"\\quad":         1,
	"\\qquad":        2,
}
