package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenInputFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.tex")
	if err := os.WriteFile(path, []byte(`x^2`), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	reader, closer, err := openInputs([]string{path})
	if err != nil {
		t.Fatalf("openInputs file: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "x^2" {
		t.Fatalf("unexpected file content: %q", string(buf))
	}

	fileURL := "file://" + path
	reader, closer, err = openInputs([]string{fileURL})
	if err != nil {
		t.Fatalf("openInputs file URL: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "x^2" {
		t.Fatalf("unexpected file URL content: %q", string(buf))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`\frac{a}{b}`))
	}))
	defer srv.Close()
	reader, closer, err = openInputs([]string{srv.URL})
	if err != nil {
		t.Fatalf("openInputs http: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != `\frac{a}{b}` {
		t.Fatalf("unexpected http content: %q", string(buf))
	}
}

func TestOpenInputsConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.tex")
	second := filepath.Join(dir, "b.tex")
	if err := os.WriteFile(first, []byte("a+"), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte("b"), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	reader, closer, err := openInputs([]string{first, second})
	if err != nil {
		t.Fatalf("openInputs concat: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "a+b" {
		t.Fatalf("unexpected concatenated content: %q", string(buf))
	}
}

func TestOpenURLRejectsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()
	reader, closer, err := openInputs([]string{srv.URL})
	if err != nil {
		t.Fatalf("openInputs: %v", err)
	}
	defer func() { _ = closer.Close() }()
	if _, err := io.ReadAll(reader); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
}

func TestResolveOSC8(t *testing.T) {
	if on, err := resolveOSC8("on"); err != nil || !on {
		t.Fatalf("expected on, got %v %v", on, err)
	}
	if on, err := resolveOSC8("off"); err != nil || on {
		t.Fatalf("expected off, got %v %v", on, err)
	}
	if _, err := resolveOSC8("bogus"); err == nil {
		t.Fatalf("expected error for bogus mode")
	}
}

func boringConfig() renderConfig {
	return renderConfig{maxDepth: 256, theme: boringTheme()}
}

func TestProcessWritesBoxTree(t *testing.T) {
	var out bytes.Buffer
	if err := process(strings.NewReader("x+1\n"), &out, boringConfig()); err != nil {
		t.Fatalf("process: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "\x1b[") {
		t.Fatalf("expected no ANSI sequences with boring theme, got %q", got)
	}
	for _, want := range []string{"[mathbox]", `symbol "x" Math-Italic`, "[mbin]", `"1" Main-Regular`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestProcessParseTreeLines(t *testing.T) {
	cfg := boringConfig()
	cfg.parseOnly = true
	cfg.lines = true
	var out bytes.Buffer
	if err := process(strings.NewReader("a^2\n\n\\frac12\n"), &out, cfg); err != nil {
		t.Fatalf("process: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "SupSubNode") || !strings.Contains(got, "GenFracNode") {
		t.Fatalf("expected both expressions in output:\n%s", got)
	}
	if !strings.Contains(got, "sup: SymbolNode textord \"2\"") {
		t.Fatalf("expected labeled superscript, got:\n%s", got)
	}
}

func TestProcessReportsParseErrors(t *testing.T) {
	cfg := boringConfig()
	cfg.lines = true
	var out bytes.Buffer
	err := process(strings.NewReader("x^1^2\ny\n"), &out, cfg)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("expected one failed expression, got %v", err)
	}
	if !strings.Contains(out.String(), "parse error") {
		t.Fatalf("expected error line in output, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), `symbol "y"`) {
		t.Fatalf("expected second expression to be dumped, got:\n%s", out.String())
	}
}

func TestProcessRejectsBinaryUnlessSanitized(t *testing.T) {
	var out bytes.Buffer
	if err := process(bytes.NewReader([]byte("x\x00")), &out, boringConfig()); err == nil {
		t.Fatalf("expected binary input error")
	}
	cfg := boringConfig()
	cfg.sanitize = true
	out.Reset()
	if err := process(bytes.NewReader([]byte("x\x00")), &out, cfg); err != nil {
		t.Fatalf("expected sanitized input to succeed, got %v", err)
	}
}

func TestBoringTheme(t *testing.T) {
	theme := boringTheme()
	styles := theme.Styles()
	if styles.Ord.Prefix != "" || styles.Structure.Prefix != "" || styles.Error.Prefix != "" {
		t.Fatalf("expected boring theme to have empty prefixes")
	}
	if got := paintError(theme, "oops"); got != "oops" {
		t.Fatalf("expected unstyled error, got %q", got)
	}
}
