package mathbox

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure by the stage that raised it.
type ErrorKind uint8

const (
	// KindLex means no tokenizer pattern matched at a position.
	KindLex ErrorKind = iota + 1
	// KindParse is a grammar-level failure.
	KindParse
	// KindArgumentType means an argument failed its declared sub-grammar.
	KindArgumentType
	// KindUnknownNode means a parse node reached layout without a builder.
	KindUnknownNode
	// KindRecursionLimit means nesting exceeded the configured depth.
	KindRecursionLimit
)

var (
	// ErrLex matches every tokenizer error.
	ErrLex = errors.New("lex error")
	// ErrParse matches every grammar error.
	ErrParse = errors.New("parse error")
	// ErrArgumentType matches every argument sub-grammar error.
	ErrArgumentType = errors.New("argument type error")
	// ErrUnknownNodeType matches layout dispatch failures.
	ErrUnknownNodeType = errors.New("unknown node type")
	// ErrRecursionLimit matches depth limit failures.
	ErrRecursionLimit = errors.New("recursion limit exceeded")
)

// Detail codes carried by *Error. They are matched with errors.Is in
// addition to the kind sentinel.
var (
	ErrDoubleScript       = errors.New("double script")
	ErrMissingRight       = errors.New("missing \\right")
	ErrUnbalancedBrace    = errors.New("unbalanced brace")
	ErrGreedinessConflict = errors.New("greediness conflict")
	ErrMissingArgument    = errors.New("missing argument")
	ErrUndefinedCommand   = errors.New("undefined control sequence")
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrInvalidMode        = errors.New("command not allowed in mode")
	ErrInvalidDelimiter   = errors.New("invalid delimiter")
	ErrInvalidEnvironment = errors.New("invalid environment")
	ErrInvalidCharacter   = errors.New("invalid character")
	ErrInvalidColor       = errors.New("invalid color")
	ErrInvalidSize        = errors.New("invalid size")
)

// Error is returned by every failing Parse, Build and Layout call.
type Error struct {
	// Kind is the error class.
	Kind ErrorKind
	// Code is the detail sentinel, may be nil.
	Code error
	// Message is the human readable description without position.
	Message string
	// Pos is the byte offset into Input, or -1 when unknown.
	Pos int
	// Input is the source text the position refers to.
	Input string
}

func (e *Error) Error() string {
	prefix := e.Kind.String()
	if e.Pos < 0 {
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	}
	return fmt.Sprintf("%s: %s at position %d: %s", prefix, e.Message, e.Pos+1, excerpt(e.Input, e.Pos))
}

// Is reports whether target is the kind sentinel or the detail code.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if e.Code != nil && target == e.Code {
		return true
	}
	return target == e.Kind.sentinel()
}

// Unwrap returns the detail code.
func (e *Error) Unwrap() error {
	return e.Code
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindLex:
		return ErrLex
	case KindParse:
		return ErrParse
	case KindArgumentType:
		return ErrArgumentType
	case KindUnknownNode:
		return ErrUnknownNodeType
	case KindRecursionLimit:
		return ErrRecursionLimit
	}
	return nil
}

func (k ErrorKind) String() string {
	switch k {
	case KindLex:
		return "lex error"
	case KindParse:
		return "parse error"
	case KindArgumentType:
		return "argument type error"
	case KindUnknownNode:
		return "unknown node type"
	case KindRecursionLimit:
		return "recursion limit"
	}
	return "error"
}

func newError(kind ErrorKind, code error, input string, pos int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return &Error{Kind: kind, Code: code, Message: msg, Pos: pos, Input: input}
}

func parseErrorAt(tok Token, input string, code error, msg string, params ...any) *Error {
	return newError(KindParse, code, input, tok.Start, msg, params...)
}

const excerptRadius = 15

// excerpt returns up to excerptRadius bytes of input on each side of pos.
func excerpt(input string, pos int) string {
	if pos >= len(input) {
		return "end of input"
	}
	start := pos - excerptRadius
	prefix := ""
	if start <= 0 {
		start = 0
	} else {
		prefix = "…"
	}
	end := pos + excerptRadius
	suffix := ""
	if end >= len(input) {
		end = len(input)
	} else {
		suffix = "…"
	}
	for start > 0 && !isRuneStart(input[start]) {
		start--
	}
	for end < len(input) && !isRuneStart(input[end]) {
		end++
	}
	return prefix + input[start:end] + suffix
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
