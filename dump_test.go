package mathbox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func mustBuild(t *testing.T, input string, settings ...Setting) *Box {
	t.Helper()
	root, err := Build(input, settings...)
	if err != nil {
		t.Fatalf("build %q: %v", input, err)
	}
	return root
}

func TestWriteBoxTreePlain(t *testing.T) {
	root := mustBuild(t, `a+b`)
	var out bytes.Buffer
	if err := WriteBoxTree(root, DumpRequest{Writer: &out}); err != nil {
		t.Fatalf("WriteBoxTree: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if !strings.HasPrefix(lines[0], "span [mathbox] h=") {
		t.Fatalf("unexpected root line %q", lines[0])
	}
	var sawBin bool
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "  ") {
			t.Fatalf("expected children to be indented, got %q", line)
		}
		if strings.Contains(line, `symbol "+" Main-Regular [mbin]`) {
			sawBin = true
		}
	}
	if !sawBin {
		t.Fatalf("expected binary plus in dump:\n%s", out.String())
	}
	if strings.Contains(out.String(), "\x1b[") {
		t.Fatalf("plain dump should not contain escapes")
	}
}

func TestWriteBoxTreeTruncatesToWidth(t *testing.T) {
	root := mustBuild(t, `\frac{\alpha+\beta}{\gamma}`)
	var out bytes.Buffer
	if err := WriteBoxTree(root, DumpRequest{Writer: &out, Width: 30, Theme: DefaultTheme()}); err != nil {
		t.Fatalf("WriteBoxTree: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		if w := ansi.PrintableRuneWidth(line); w > 30 {
			t.Fatalf("line exceeds width (%d): %q", w, line)
		}
	}
}

func TestWriteBoxTreeLinksAndColors(t *testing.T) {
	root := mustBuild(t, `\href{https://example.com/x}{\color{red}{y}}`)
	var out bytes.Buffer
	if err := WriteBoxTree(root, DumpRequest{Writer: &out, OSC8: true, Colors: true}); err != nil {
		t.Fatalf("WriteBoxTree: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, osc8Start+"https://example.com/x\x1b\\") {
		t.Fatalf("expected OSC 8 link, got %q", got)
	}
	if !strings.Contains(got, "\x1b[38;2;223;0;48m\"y\"") {
		t.Fatalf("expected colored glyph, got %q", got)
	}
}

func TestWriteParseTree(t *testing.T) {
	nodes, err := Parse(`x_i^2 + \sqrt[3]{y}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	if err := WriteParseTree(nodes, DumpRequest{Writer: &out}); err != nil {
		t.Fatalf("WriteParseTree: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"SupSubNode math 0:5",
		"  base: SymbolNode mathord \"x\"",
		"  sup: SymbolNode textord \"2\"",
		"  sub: SymbolNode mathord \"i\"",
		"SymbolNode bin \"+\"",
		"SqrtNode",
		"  index: OrdGroupNode",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in parse tree:\n%s", want, got)
		}
	}
}

func TestDumpRequiresWriter(t *testing.T) {
	if err := WriteBoxTree(&Box{}, DumpRequest{}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestFitURL(t *testing.T) {
	if got := fitURL("https://example.com", 40); got != "https://example.com" {
		t.Fatalf("expected unchanged url, got %q", got)
	}
	if got := fitURL("https://example.com", 12); got != "example.com" {
		t.Fatalf("expected scheme to be dropped, got %q", got)
	}
	if got := fitURL("https://example.com/a/long/path", 10); ansi.PrintableRuneWidth(got) > 10 || !strings.HasSuffix(got, "…") {
		t.Fatalf("expected truncated url, got %q", got)
	}
}
