package mathbox

import (
	"bytes"
	"errors"
	"testing"
)

func TestValidateInputRejectsInvalidUTF8(t *testing.T) {
	data := []byte{0xff, 0xfe, 0xfd}
	if err := ValidateInput(data); err != ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestValidateInputRejectsBinary(t *testing.T) {
	data := append([]byte(`\frac{a}{b}`), 0x00)
	if err := ValidateInput(data); err != ErrBinaryInput {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestValidateInputRejectsControlHeavyInput(t *testing.T) {
	data := bytes.Repeat([]byte("x^2\x01"), 20)
	if err := ValidateInput(data); err != ErrBinaryInput {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestValidateInputAcceptsMath(t *testing.T) {
	data := []byte("\\sum_{i=1}^{n} i^2 = \\frac{n(n+1)(2n+1)}{6}\n\t% comment\r\n")
	if err := ValidateInput(data); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestSanitizeInputDropsControlAndInvalidBytes(t *testing.T) {
	got := SanitizeInput([]byte("a\x01+\xffb\n\tc\x7f"))
	if want := "a+b\n\tc"; string(got) != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if err := ValidateInput(got); err != nil {
		t.Fatalf("sanitized input should validate, got %v", err)
	}
}

func TestSanitizedInputParses(t *testing.T) {
	src := SanitizeInput([]byte("x\x02^2"))
	if _, err := Parse(string(src)); err != nil {
		t.Fatalf("parse sanitized: %v", err)
	}
	if _, err := Parse("x\x02^2"); err == nil {
		t.Fatalf("expected lex error for raw control character")
	} else {
		var perr *Error
		if !errors.As(err, &perr) || perr.Kind != KindLex {
			t.Fatalf("expected lex error, got %v", err)
		}
	}
}
