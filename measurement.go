package mathbox

import "strconv"

// Measurement is a dimension as written in the input, e.g. 1.5em.
type Measurement struct {
	Number float64
	Unit   string
}

func (m Measurement) String() string {
	return strconv.FormatFloat(m.Number, 'f', -1, 64) + m.Unit
}

// points per unit for absolute TeX units
var ptPerUnit = map[string]float64{
	"pt": 1,
	"mm": 7227.0 / 2540,
	"cm": 7227.0 / 254,
	"in": 72.27,
	"bp": 803.0 / 800,
	"pc": 12,
	"dd": 1238.0 / 1157,
	"cc": 14856.0 / 1157,
	"nd": 685.0 / 642,
	"nc": 1370.0 / 107,
	"sp": 1.0 / 65536,
	"px": 803.0 / 800,
}

// relativeUnits scale with the current style and size.
var relativeUnits = map[string]bool{
	"em": true,
	"ex": true,
	"mu": true,
}

func validUnit(unit string) bool {
	if relativeUnits[unit] {
		return true
	}
	_, ok := ptPerUnit[unit]
	return ok
}

// ToEm converts m to absolute ems under opts. Relative units follow the
// current style and size; absolute units do not.
func (m Measurement) ToEm(opts Options) float64 {
	switch m.Unit {
	case "em":
		return m.Number * opts.SizeMultiplier()
	case "ex":
		return m.Number * opts.FontMetrics().XHeight
	case "mu":
		return m.Number / 18 * opts.FontMetrics().Quad
	}
	if pt, ok := ptPerUnit[m.Unit]; ok {
		return m.Number * pt / ptPerEm
	}
	return 0
}
