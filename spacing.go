package mathbox

var (
	thinSpace   = Measurement{Number: 3, Unit: "mu"}
	mediumSpace = Measurement{Number: 4, Unit: "mu"}
	thickSpace  = Measurement{Number: 5, Unit: "mu"}
)

// spacings is the inter-atom glue for display and text styles, keyed by the
// outer classes of the left and right box.
var spacings = map[string]map[string]Measurement{
	"mord": {
		"mop":    thinSpace,
		"mbin":   mediumSpace,
		"mrel":   thickSpace,
		"minner": thinSpace,
	},
	"mop": {
		"mord":   thinSpace,
		"mop":    thinSpace,
		"mrel":   thickSpace,
		"minner": thinSpace,
	},
	"mbin": {
		"mord":   mediumSpace,
		"mop":    mediumSpace,
		"mopen":  mediumSpace,
		"minner": mediumSpace,
	},
	"mrel": {
		"mord":   thickSpace,
		"mop":    thickSpace,
		"mopen":  thickSpace,
		"minner": thickSpace,
	},
	"mopen": {},
	"mclose": {
		"mop":    thinSpace,
		"mbin":   mediumSpace,
		"mrel":   thickSpace,
		"minner": thinSpace,
	},
	"mpunct": {
		"mord":   thinSpace,
		"mop":    thinSpace,
		"mrel":   thickSpace,
		"mopen":  thinSpace,
		"mclose": thinSpace,
		"mpunct": thinSpace,
		"minner": thinSpace,
	},
	"minner": {
		"mord":   thinSpace,
		"mop":    thinSpace,
		"mbin":   mediumSpace,
		"mrel":   thickSpace,
		"mopen":  thinSpace,
		"mpunct": thinSpace,
		"minner": thinSpace,
	},
}

// tightSpacings applies in script and scriptscript styles.
var tightSpacings = map[string]map[string]Measurement{
	"mord":   {"mop": thinSpace},
	"mop":    {"mord": thinSpace, "mop": thinSpace},
	"mclose": {"mop": thinSpace},
	"minner": {"mop": thinSpace},
}

// interAtomGlue returns the glue between two outer classes under opts.
func interAtomGlue(left, right string, opts Options) (float64, bool) {
	table := spacings
	if opts.Style().IsTight() {
		table = tightSpacings
	}
	m, ok := table[left][right]
	if !ok {
		return 0, false
	}
	return m.ToEm(opts), true
}

// leftCancellers reclassify a following bin to ord.
var leftCancellers = map[string]bool{
	"leftmost": true,
	"mbin":     true,
	"mopen":    true,
	"mrel":     true,
	"mop":      true,
	"mpunct":   true,
}

// rightCancellers reclassify a preceding bin to ord.
var rightCancellers = map[string]bool{
	"rightmost": true,
	"mrel":      true,
	"mclose":    true,
	"mpunct":    true,
}
