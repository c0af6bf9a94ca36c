package mathbox

import (
	"maps"
	"slices"
	"strings"
)

// shortcutColors are available as commands, \blue{x}, and as names.
var shortcutColors = map[string]string{
	"blue":   "#6495ed",
	"orange": "#ffa500",
	"pink":   "#ff00af",
	"red":    "#df0030",
	"green":  "#28ae7b",
	"gray":   "#808080",
	"purple": "#9d38bd",

	"blueA": "#c7e9f1", "blueB": "#9cdceb", "blueC": "#58c4dd", "blueD": "#29abca", "blueE": "#1c758a",
	"tealA": "#acead7", "tealB": "#76ddc0", "tealC": "#5cd0b3", "tealD": "#55c1a7", "tealE": "#49a88f",
	"greenA": "#c9e2ae", "greenB": "#a6cf8c", "greenC": "#83c167", "greenD": "#77b05d", "greenE": "#699c52",
	"goldA": "#f7c797", "goldB": "#f9b775", "goldC": "#f0ac5f", "goldD": "#e1a158", "goldE": "#c78d46",
	"redA": "#f7a1a3", "redB": "#ff8080", "redC": "#fc6255", "redD": "#e65a4c", "redE": "#cf5044",
	"maroonA": "#ecabc1", "maroonB": "#ec92ab", "maroonC": "#c55f73", "maroonD": "#a24d61", "maroonE": "#94424f",
	"purpleA": "#caa3e8", "purpleB": "#b189c6", "purpleC": "#9a72ac", "purpleD": "#715582", "purpleE": "#644172",
	"mintA": "#f5f9e8", "mintB": "#edf2df", "mintC": "#e0e5cc",
	"grayA": "#f6f7f7", "grayB": "#f0f1f2", "grayC": "#e3e5e6", "grayD": "#d6d8da", "grayE": "#babec2",
	"grayF": "#888d93", "grayG": "#626569", "grayH": "#3b3e40", "grayI": "#21242c",
	"kaBlue":  "#314453",
	"kaGreen": "#71b307",
}

// namedColors are the additional names accepted by \color and \textcolor.
var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"yellow":    "#ffff00",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"brown":     "#a52a2a",
	"lime":      "#00ff00",
	"olive":     "#808000",
	"teal":      "#008080",
	"violet":    "#ee82ee",
	"darkgray":  "#a9a9a9",
	"lightgray": "#d3d3d3",
}

// colorCommands returns the shortcut command names, e.g. "\blue".
func colorCommands() []string {
	names := slices.Sorted(maps.Keys(shortcutColors))
	for i, n := range names {
		names[i] = "\\" + n
	}
	return names
}

// ResolveColor returns c as lower case #rrggbb. Names are looked up in the
// shortcut and named tables; #rgb is expanded.
func ResolveColor(c string) (string, bool) {
	if hex, ok := shortcutColors[c]; ok {
		return hex, true
	}
	if hex, ok := namedColors[strings.ToLower(c)]; ok {
		return hex, true
	}
	if !strings.HasPrefix(c, "#") {
		return "", false
	}
	digits := strings.ToLower(c[1:])
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return "", false
		}
	}
	switch len(digits) {
	case 3:
		return "#" + string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]}), true
	case 6:
		return "#" + digits, true
	}
	return "", false
}
