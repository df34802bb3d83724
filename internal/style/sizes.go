package style

// FontSizes are the label sizes offered by the front-end, smallest first
var FontSizes = []string{"xx-small", "x-small", "small", "medium", "large", "x-large", "xx-large"}

// CellSizes are the cell edge lengths offered by the front-end
var CellSizes = []int{40, 60, 90}

// DefaultCellSize is used when neither the folder nor the config sets one
const DefaultCellSize = 60

// StepFontSize moves current by delta steps along FontSizes, clamping at
// both ends. Unknown sizes start from "medium".
func StepFontSize(current string, delta int) string {
	idx := 3
	for i, s := range FontSizes {
		if s == current {
			idx = i
			break
		}
	}
	return FontSizes[clamp(idx+delta, 0, len(FontSizes)-1)]
}

// StepCellSize moves current by delta steps along CellSizes, clamping at
// both ends. Sizes between ladder steps snap to the nearest smaller step.
func StepCellSize(current, delta int) int {
	idx := 0
	for i, s := range CellSizes {
		if s <= current {
			idx = i
		}
	}
	return CellSizes[clamp(idx+delta, 0, len(CellSizes)-1)]
}

// FontScale maps a font size name to a relative scale, 1 being "medium"
func FontScale(size string) float64 {
	switch size {
	case "xx-small":
		return 0.58
	case "x-small":
		return 0.69
	case "small":
		return 0.83
	case "large":
		return 1.2
	case "x-large":
		return 1.44
	case "xx-large":
		return 1.73
	default:
		return 1
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
