package mathbox

// PositionType selects how MakeVList places the stack relative to the
// baseline.
type PositionType uint8

const (
	// PositionIndividualShift places every elem child at its own Shift;
	// kerns are derived from the gaps.
	PositionIndividualShift PositionType = iota
	// PositionTop puts the top of the stack at posData above the baseline.
	PositionTop
	// PositionBottom puts the bottom of the stack at posData below the
	// baseline.
	PositionBottom
	// PositionShift lowers a stack whose first child sits on the baseline
	// by posData.
	PositionShift
	// PositionFirstBaseline puts the baseline of the first child on the
	// baseline.
	PositionFirstBaseline
)

func (p PositionType) String() string {
	switch p {
	case PositionIndividualShift:
		return "individualShift"
	case PositionTop:
		return "top"
	case PositionBottom:
		return "bottom"
	case PositionShift:
		return "shift"
	case PositionFirstBaseline:
		return "firstBaseline"
	}
	return "unknown"
}

// VListChild is either an element or, when Elem is nil, a kern of Size.
// Children are listed bottom to top.
type VListChild struct {
	Elem *Box
	// Shift is the element's offset below the baseline, used with
	// PositionIndividualShift only.
	Shift float64
	Size  float64
}

// VElem is an element child.
func VElem(b *Box) VListChild { return VListChild{Elem: b} }

// VShifted is an element child with an individual shift.
func VShifted(b *Box, shift float64) VListChild { return VListChild{Elem: b, Shift: shift} }

// VKern is a fixed vertical gap.
func VKern(size float64) VListChild { return VListChild{Size: size} }

// MakeVList stacks children bottom to top and returns a vlist box whose
// children carry their final Shift. Height is the highest extent above the
// baseline reached by any child or kern; depth is the lowest extent below,
// never negative.
func MakeVList(children []VListChild, pos PositionType, posData float64, opts Options) *Box {
	children = normalizeVList(children, pos)
	if len(children) == 0 {
		return &Box{Kind: BoxVList, Classes: []string{"vlist"}}
	}

	var depth float64
	switch pos {
	case PositionIndividualShift:
		depth = -children[0].Shift - children[0].Elem.Depth
	case PositionTop:
		bottom := posData
		for _, c := range children {
			if c.Elem == nil {
				bottom -= c.Size
			} else {
				bottom -= c.Elem.Height + c.Elem.Depth
			}
		}
		depth = bottom
	case PositionBottom:
		depth = -posData
	case PositionShift:
		depth = -baselineOffset(children) - posData
	case PositionFirstBaseline:
		depth = -baselineOffset(children)
	}

	out := &Box{Kind: BoxVList, Classes: []string{"vlist"}, MaxFontSize: opts.SizeMultiplier()}
	curr := depth
	height := curr
	lowest := -depth
	for _, c := range children {
		if c.Elem == nil {
			curr += c.Size
			height = max(height, curr)
			continue
		}
		elem := c.Elem
		offset := curr + elem.Depth
		placed := elem.clone()
		placed.Shift = -offset
		out.Children = append(out.Children, placed)
		height = max(height, offset+elem.Height)
		lowest = max(lowest, elem.Depth-offset)
		out.Width = max(out.Width, elem.TotalWidth())
		out.MaxFontSize = max(out.MaxFontSize, elem.MaxFontSize)
		curr += elem.Height + elem.Depth
	}
	out.Height = height
	out.Depth = max(0, lowest)
	return out
}

// baselineOffset is the distance from the bottom of the stack to the
// baseline of its first element, counting any kerns below it.
func baselineOffset(children []VListChild) float64 {
	var off float64
	for _, c := range children {
		if c.Elem != nil {
			return off + c.Elem.Depth
		}
		off += c.Size
	}
	return off
}

// normalizeVList turns individually shifted elements into elements
// separated by kerns so every position type shares one stacking loop.
func normalizeVList(children []VListChild, pos PositionType) []VListChild {
	var elems []VListChild
	for _, c := range children {
		if pos == PositionIndividualShift && c.Elem == nil {
			continue
		}
		elems = append(elems, c)
	}
	if pos != PositionIndividualShift || len(elems) == 0 {
		return elems
	}
	out := []VListChild{elems[0]}
	curr := -elems[0].Shift - elems[0].Elem.Depth
	for i := 1; i < len(elems); i++ {
		prev, c := elems[i-1].Elem, elems[i]
		diff := -c.Shift - curr - c.Elem.Depth
		out = append(out, VKern(diff-(prev.Height+prev.Depth)), c)
		curr += diff
	}
	return out
}
