package mathbox

import (
	"errors"
	"slices"
	"testing"
)

func lexAll(t *testing.T, input string, mode lexMode) []Token {
	t.Helper()
	l := newLexer(input)
	var out []Token
	pos := 0
	for {
		tok, err := l.lex(pos, mode)
		if err != nil {
			t.Fatalf("lex %q at %d: %v", input, pos, err)
		}
		if tok.IsEOF() {
			return out
		}
		out = append(out, tok)
		if tok.End <= pos {
			t.Fatalf("lexer did not advance at %d in %q", pos, input)
		}
		pos = tok.End
	}
}

func tokenTexts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func TestLexMathSkipsWhitespaceAndComments(t *testing.T) {
	toks := lexAll(t, "\\frac {a}  % note\n{b}", lexMath)
	want := []string{`\frac`, "{", "a", "}", "{", "b", "}"}
	if got := tokenTexts(toks); !slices.Equal(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if toks[0].Kind != TokenCommand || toks[1].Kind != TokenChar {
		t.Fatalf("unexpected kinds %v %v", toks[0].Kind, toks[1].Kind)
	}
}

func TestLexTextKeepsSpaces(t *testing.T) {
	toks := lexAll(t, "a  b\\ \\  c", lexText)
	if got := tokenTexts(toks); !slices.Equal(got, []string{"a", " ", "b", " ", "c"}) {
		t.Fatalf("expected coalesced spaces, got %q", got)
	}
	if toks[1].Kind != TokenSpace || toks[3].Kind != TokenSpace {
		t.Fatalf("expected space tokens, got %v %v", toks[1].Kind, toks[3].Kind)
	}
}

func TestLexTextLigatures(t *testing.T) {
	toks := lexAll(t, "a---b--c``d''", lexText)
	want := []string{"a", "---", "b", "--", "c", "``", "d", "''"}
	if got := tokenTexts(toks); !slices.Equal(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLexEscapedSpaceInMath(t *testing.T) {
	toks := lexAll(t, `a\ b`, lexMath)
	if len(toks) != 3 || toks[1].Kind != TokenSpace || toks[1].Text != `\ ` {
		t.Fatalf("expected escaped space token, got %+v", toks)
	}
}

func TestLexSymbolCommandsAndGraphemes(t *testing.T) {
	toks := lexAll(t, `\,\{`+"e\u0301", lexMath)
	want := []string{`\,`, `\{`, "e\u0301"}
	if got := tokenTexts(toks); !slices.Equal(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if toks[2].End-toks[2].Start != len("e\u0301") {
		t.Fatalf("expected grapheme cluster to span both code points")
	}
}

func TestLexSubModes(t *testing.T) {
	l := newLexer(" #FF0000}")
	tok, err := l.lex(0, lexColor)
	if err != nil || tok.Kind != TokenColor || tok.Text != "#FF0000" {
		t.Fatalf("expected color token, got %+v %v", tok, err)
	}

	l = newLexer(" -1.5 em}")
	tok, err = l.lex(0, lexSize)
	if err != nil || tok.Kind != TokenSize {
		t.Fatalf("expected size token, got %+v %v", tok, err)
	}
	if tok.Dim.Number != -1.5 || tok.Dim.Unit != "em" {
		t.Fatalf("unexpected dimension %+v", tok.Dim)
	}

	l = newLexer("3qq")
	if _, err = l.lex(0, lexSize); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected invalid size, got %v", err)
	}

	l = newLexer("https://x.org/a\\%20{b}}")
	tok, err = l.lex(0, lexURL)
	if err != nil || tok.Text != "https://x.org/a%20{b}" {
		t.Fatalf("expected unescaped url, got %+v %v", tok, err)
	}

	l = newLexer("  \n x")
	tok = l.lexWhitespace(0)
	if tok.Kind != TokenWhitespace || tok.End != 4 {
		t.Fatalf("expected whitespace run, got %+v", tok)
	}
}

func TestLexRejectsControlCharacters(t *testing.T) {
	l := newLexer("a\x01")
	_, err := l.lex(1, lexMath)
	var lexErr *Error
	if !errors.As(err, &lexErr) || lexErr.Kind != KindLex || lexErr.Pos != 1 {
		t.Fatalf("expected lex error at 1, got %v", err)
	}
	if !errors.Is(err, ErrLex) || !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("expected ErrLex and ErrInvalidCharacter, got %v", err)
	}
}

func TestLexEOFIsStable(t *testing.T) {
	l := newLexer("x")
	for range 3 {
		tok, err := l.lex(1, lexMath)
		if err != nil || !tok.IsEOF() || tok.Start != 1 {
			t.Fatalf("expected EOF at end, got %+v %v", tok, err)
		}
	}
}
