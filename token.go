package mathbox

// Mode is the grammar context governing lexing and symbol lookup.
type Mode uint8

const (
	// MathMode ignores literal whitespace.
	MathMode Mode = iota
	// TextMode keeps whitespace as space tokens.
	TextMode
)

func (m Mode) String() string {
	if m == TextMode {
		return "text"
	}
	return "math"
}

// TokenKind identifies the lexical class of a Token.
type TokenKind uint8

const (
	// TokenEOF terminates every token stream.
	TokenEOF TokenKind = iota
	// TokenCommand is a backslash command such as \alpha or \,.
	TokenCommand
	// TokenChar is a single grapheme cluster.
	TokenChar
	// TokenSpace is a significant space: any text mode whitespace run or an
	// escaped space in math mode.
	TokenSpace
	// TokenColor is a color literal lexed in the color sub-mode.
	TokenColor
	// TokenSize is a dimension lexed in the size sub-mode.
	TokenSize
	// TokenWhitespace is a possibly empty whitespace run lexed in the
	// whitespace sub-mode.
	TokenWhitespace
	// TokenRaw is verbatim text lexed in the raw or URL sub-modes.
	TokenRaw
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenCommand:
		return "command"
	case TokenChar:
		return "char"
	case TokenSpace:
		return "space"
	case TokenColor:
		return "color"
	case TokenSize:
		return "size"
	case TokenWhitespace:
		return "whitespace"
	case TokenRaw:
		return "raw"
	}
	return "unknown"
}

// Token is an immutable lexeme. Start and End are byte offsets into the
// input; End is where lexing continues.
type Token struct {
	Text  string
	Kind  TokenKind
	Start int
	End   int
	// Dim is set for TokenSize only.
	Dim Measurement
}

// IsEOF reports whether t terminates the stream.
func (t Token) IsEOF() bool {
	return t.Kind == TokenEOF
}

func (t Token) display() string {
	if t.Kind == TokenEOF {
		return "EOF"
	}
	return t.Text
}

// Loc is a half-open byte range in the input.
type Loc struct {
	Start int
	End   int
}

func (t Token) loc() Loc {
	return Loc{Start: t.Start, End: t.End}
}

func spanLoc(first, last Token) Loc {
	return Loc{Start: first.Start, End: last.End}
}
