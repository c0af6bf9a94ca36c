package mathbox

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStyleTransitions(t *testing.T) {
	cases := []struct {
		from                      Style
		sup, sub, num, den, cramp Style
	}{
		{StyleDisplay, StyleScript, StyleScriptCramped, StyleText, StyleTextCramped, StyleDisplayCramped},
		{StyleTextCramped, StyleScriptCramped, StyleScriptCramped, StyleScriptCramped, StyleScriptCramped, StyleTextCramped},
		{StyleScript, StyleScriptScript, StyleScriptScriptCramped, StyleScriptScript, StyleScriptScriptCramped, StyleScriptCramped},
		{StyleScriptScriptCramped, StyleScriptScriptCramped, StyleScriptScriptCramped, StyleScriptScriptCramped, StyleScriptScriptCramped, StyleScriptScriptCramped},
		// out of range values behave as text style
		{Style(9), StyleScript, StyleScriptCramped, StyleScript, StyleScriptCramped, StyleTextCramped},
	}
	for _, tc := range cases {
		s := tc.from
		if s.Sup() != tc.sup || s.Sub() != tc.sub || s.FracNum() != tc.num || s.FracDen() != tc.den || s.Cramp() != tc.cramp {
			t.Fatalf("unexpected transitions from %s: sup=%s sub=%s num=%s den=%s cramp=%s",
				s, s.Sup(), s.Sub(), s.FracNum(), s.FracDen(), s.Cramp())
		}
	}
	if got := DefaultOptions().WithStyle(Style(200)); got.Style() != StyleText || !approx(got.SizeMultiplier(), 1) {
		t.Fatalf("expected out of range style to fall back to text, got %s", got.Style())
	}
	if !StyleScriptCramped.Cramped() || StyleScript.Cramped() {
		t.Fatalf("unexpected crampedness")
	}
	if StyleText.IsTight() || !StyleScript.IsTight() {
		t.Fatalf("expected script styles to be tight")
	}
}

func TestOptionsAreImmutable(t *testing.T) {
	base := DefaultOptions()
	derived := base.WithStyle(StyleScript).WithSize(7).WithColor("#ff0000").WithFont(FontMainBold).WithPhantom()
	if base.Style() != StyleText || base.Size() != NormalSize || base.Color() != "" || base.Font() != "" || base.Phantom() {
		t.Fatalf("receiver changed: %+v", base)
	}
	if derived.Style() != StyleScript || derived.Size() != 7 || derived.Color() != "#ff0000" || derived.Font() != FontMainBold || !derived.Phantom() {
		t.Fatalf("unexpected derived options: %+v", derived)
	}
	if derived.inkColor() != "transparent" {
		t.Fatalf("expected phantom ink to be transparent")
	}
}

func TestOptionsSizeMultiplier(t *testing.T) {
	opts := DefaultOptions()
	if !approx(opts.SizeMultiplier(), 1) {
		t.Fatalf("expected unit multiplier, got %v", opts.SizeMultiplier())
	}
	if got := opts.WithStyle(StyleScript).WithSize(7).SizeMultiplier(); !approx(got, 0.7*1.44) {
		t.Fatalf("expected style times size multiplier, got %v", got)
	}
	if got := opts.WithSize(42).Size(); got != NormalSize {
		t.Fatalf("expected out of range size to fall back, got %d", got)
	}
	script := opts.WithStyle(StyleScriptScript).FontMetrics()
	if !approx(script.Num1, fontParams[2].Num1*0.5) {
		t.Fatalf("expected scriptscript params scaled by 0.5, got %v", script.Num1)
	}
}

func TestMeasurementToEm(t *testing.T) {
	opts := DefaultOptions()
	large := opts.WithSize(9)
	cases := []struct {
		m    Measurement
		opts Options
		want float64
	}{
		{Measurement{Number: 2, Unit: "em"}, opts, 2},
		{Measurement{Number: 2, Unit: "em"}, large, 2 * 2.07},
		{Measurement{Number: 18, Unit: "mu"}, opts, 1},
		{Measurement{Number: 1, Unit: "ex"}, opts, 0.431},
		{Measurement{Number: 10, Unit: "pt"}, opts, 1},
		{Measurement{Number: 10, Unit: "pt"}, large, 1},
		{Measurement{Number: 1, Unit: "in"}, opts, 7.227},
	}
	for _, tc := range cases {
		if got := tc.m.ToEm(tc.opts); !approx(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.m, tc.want, got)
		}
	}
	if validUnit("qq") || !validUnit("mu") || !validUnit("cm") {
		t.Fatalf("unexpected unit validation")
	}
}
