package model

// HitKind classifies what a hit test found at a canvas point
type HitKind int

const (
	// HitNothing means the point could not be resolved at all
	HitNothing HitKind = iota
	// HitBackground means the point is empty canvas
	HitBackground
	// HitItem means a rendered item occupies the point
	HitItem
)

// String returns a human-readable kind
func (k HitKind) String() string {
	switch k {
	case HitNothing:
		return "nothing"
	case HitBackground:
		return "background"
	case HitItem:
		return "item"
	default:
		return "unknown"
	}
}

// Hit is the result of probing a canvas point
type Hit struct {
	Kind HitKind
	Name string // set when Kind is HitItem
}
