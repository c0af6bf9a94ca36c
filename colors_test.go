package mathbox

import (
	"slices"
	"testing"
)

func TestResolveColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"red", "#df0030", true},
		{"blueC", "#58c4dd", true},
		{"Magenta", "#ff00ff", true},
		{"#ABC", "#aabbcc", true},
		{"#00FF7f", "#00ff7f", true},
		{"#12", "", false},
		{"#ggg", "", false},
		{"rgb(1,2,3)", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ResolveColor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ResolveColor(%q): expected %q %t, got %q %t", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestColorCommandsAreRegistered(t *testing.T) {
	cmds := colorCommands()
	if !slices.IsSorted(cmds) || len(cmds) != len(shortcutColors) {
		t.Fatalf("expected one sorted command per shortcut color")
	}
	for _, cmd := range cmds {
		if _, ok := DefaultRegistry().Lookup(cmd); !ok {
			t.Fatalf("expected %s to be registered", cmd)
		}
	}
	nodes := mustParse(t, `\redA{x}`)
	c, ok := nodes[0].(*ColorNode)
	if !ok || c.Color != "redA" {
		t.Fatalf("expected ColorNode named after the command, got %#v", nodes[0])
	}
	if hex, ok := ResolveColor(c.Color); !ok || hex != "#f7a1a3" {
		t.Fatalf("expected shortcut to resolve, got %q", hex)
	}
}
