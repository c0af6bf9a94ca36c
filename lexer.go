package mathbox

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

var (
	colorRe      = regexp.MustCompile(`^(?:#[0-9a-fA-F]{6}|#[0-9a-fA-F]{3}|[a-zA-Z]+)`)
	sizeRe       = regexp.MustCompile(`^(-?)\s*(\d+(?:\.\d*)?|\.\d+)\s*([a-z]{2})`)
	whitespaceRe = regexp.MustCompile(`^\s*`)
	rawNameRe    = regexp.MustCompile(`^[a-zA-Z*]+`)
)

// lexMode selects the pattern set used by the lexer. The first two mirror
// Mode, the rest are argument sub-modes.
type lexMode uint8

const (
	lexMath lexMode = iota
	lexText
	lexColor
	lexSize
	lexWhitespace
	lexRaw
	lexURL
)

func lexModeOf(m Mode) lexMode {
	if m == TextMode {
		return lexText
	}
	return lexMath
}

// lexer is stateless; the caller owns the position.
type lexer struct {
	input string
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// lex returns the token starting at pos. The token's End is the position
// to continue from.
func (l *lexer) lex(pos int, mode lexMode) (Token, error) {
	switch mode {
	case lexColor:
		return l.lexColor(pos)
	case lexSize:
		return l.lexSize(pos)
	case lexWhitespace:
		return l.lexWhitespace(pos), nil
	case lexRaw:
		return l.lexRawName(pos)
	case lexURL:
		return l.lexURL(pos)
	}
	return l.lexInner(pos, mode == lexMath)
}

func (l *lexer) lexInner(pos int, ignoreWhitespace bool) (Token, error) {
	input := l.input
	for {
		if pos >= len(input) {
			return Token{Kind: TokenEOF, Start: len(input), End: len(input)}, nil
		}
		c := input[pos]
		switch {
		case c == '%':
			pos = skipComment(input, pos)
			continue
		case isSpaceByte(c):
			end := pos + 1
			for end < len(input) && isSpaceByte(input[end]) {
				end++
			}
			if ignoreWhitespace {
				pos = end
				continue
			}
			return Token{Text: " ", Kind: TokenSpace, Start: pos, End: l.coalesceSpaces(end)}, nil
		case c == '\\':
			return l.lexCommand(pos, ignoreWhitespace)
		case c == '-' && !ignoreWhitespace:
			end := pos + 1
			for end < len(input) && end-pos < 3 && input[end] == '-' {
				end++
			}
			return Token{Text: input[pos:end], Kind: TokenChar, Start: pos, End: end}, nil
		case c == '`' && !ignoreWhitespace && pos+1 < len(input) && input[pos+1] == '`',
			c == '\'' && !ignoreWhitespace && pos+1 < len(input) && input[pos+1] == '\'':
			return Token{Text: input[pos : pos+2], Kind: TokenChar, Start: pos, End: pos + 2}, nil
		}
		r, size := utf8.DecodeRuneInString(input[pos:])
		if r == utf8.RuneError && size <= 1 || r < 0x20 || r == 0x7F {
			return Token{}, l.unexpectedChar(pos)
		}
		g := graphemes.FromString(input[pos:])
		g.Next()
		text := g.Value()
		return Token{Text: text, Kind: TokenChar, Start: pos, End: pos + len(text)}, nil
	}
}

// coalesceSpaces extends a text mode space token over any following
// whitespace and escaped spaces.
func (l *lexer) coalesceSpaces(pos int) int {
	input := l.input
	for pos < len(input) {
		switch {
		case isSpaceByte(input[pos]):
			pos++
		case input[pos] == '\\' && pos+1 < len(input) && isSpaceByte(input[pos+1]):
			pos += 2
		default:
			return pos
		}
	}
	return pos
}

func (l *lexer) lexCommand(pos int, ignoreWhitespace bool) (Token, error) {
	input := l.input
	if pos+1 >= len(input) {
		return Token{}, l.unexpectedChar(pos)
	}
	next := input[pos+1]
	if isLetter(next) {
		end := pos + 2
		for end < len(input) && isLetter(input[end]) {
			end++
		}
		return Token{Text: input[pos:end], Kind: TokenCommand, Start: pos, End: end}, nil
	}
	if isSpaceByte(next) {
		if ignoreWhitespace {
			return Token{Text: `\ `, Kind: TokenSpace, Start: pos, End: pos + 2}, nil
		}
		return Token{Text: " ", Kind: TokenSpace, Start: pos, End: l.coalesceSpaces(pos + 2)}, nil
	}
	r, size := utf8.DecodeRuneInString(input[pos+1:])
	if r == utf8.RuneError && size <= 1 || r < 0x20 || r == 0x7F {
		return Token{}, l.unexpectedChar(pos + 1)
	}
	end := pos + 1 + size
	return Token{Text: input[pos:end], Kind: TokenCommand, Start: pos, End: end}, nil
}

func (l *lexer) lexColor(pos int) (Token, error) {
	pos = l.skipWhitespace(pos)
	m := colorRe.FindString(l.input[pos:])
	if m == "" {
		return Token{}, newError(KindArgumentType, ErrInvalidColor, l.input, pos, "Invalid color")
	}
	return Token{Text: m, Kind: TokenColor, Start: pos, End: pos + len(m)}, nil
}

func (l *lexer) lexSize(pos int) (Token, error) {
	pos = l.skipWhitespace(pos)
	m := sizeRe.FindStringSubmatch(l.input[pos:])
	if m == nil {
		return Token{}, newError(KindArgumentType, ErrInvalidSize, l.input, pos, "Invalid size")
	}
	unit := m[3]
	if !validUnit(unit) {
		return Token{}, newError(KindArgumentType, ErrInvalidSize, l.input, pos, "Invalid unit: '%s'", unit)
	}
	n, err := strconv.ParseFloat(m[1]+m[2], 64)
	if err != nil {
		return Token{}, newError(KindArgumentType, ErrInvalidSize, l.input, pos, "Invalid size: %v", err)
	}
	return Token{
		Text:  m[0],
		Kind:  TokenSize,
		Start: pos,
		End:   pos + len(m[0]),
		Dim:   Measurement{Number: n, Unit: unit},
	}, nil
}

func (l *lexer) lexWhitespace(pos int) Token {
	m := whitespaceRe.FindString(l.input[pos:])
	return Token{Text: m, Kind: TokenWhitespace, Start: pos, End: pos + len(m)}
}

func (l *lexer) lexRawName(pos int) (Token, error) {
	pos = l.skipWhitespace(pos)
	m := rawNameRe.FindString(l.input[pos:])
	if m == "" {
		return Token{}, newError(KindArgumentType, ErrUnexpectedToken, l.input, pos, "Invalid name")
	}
	return Token{Text: m, Kind: TokenRaw, Start: pos, End: pos + len(m)}, nil
}

// lexURL reads up to the closing brace of the enclosing group, keeping
// balanced inner braces and unescaping \{ \} \% \# \_ \\.
func (l *lexer) lexURL(pos int) (Token, error) {
	input := l.input
	var buf []byte
	depth := 0
	i := pos
	for i < len(input) {
		c := input[i]
		switch {
		case c == '\\' && i+1 < len(input):
			buf = append(buf, input[i+1])
			i += 2
			continue
		case c == '{':
			depth++
		case c == '}':
			if depth == 0 {
				return Token{Text: string(buf), Kind: TokenRaw, Start: pos, End: i}, nil
			}
			depth--
		case c < 0x20 && !isSpaceByte(c):
			return Token{}, l.unexpectedChar(i)
		}
		buf = append(buf, c)
		i++
	}
	return Token{}, newError(KindParse, ErrUnbalancedBrace, input, pos, "Unterminated URL")
}

func (l *lexer) skipWhitespace(pos int) int {
	return pos + len(whitespaceRe.FindString(l.input[pos:]))
}

func (l *lexer) unexpectedChar(pos int) *Error {
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return newError(KindLex, ErrInvalidCharacter, l.input, pos, "Unexpected character: '%c' (u+%04x)", r, r)
}

func skipComment(input string, pos int) int {
	for pos < len(input) && input[pos] != '\n' {
		pos++
	}
	return pos
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
