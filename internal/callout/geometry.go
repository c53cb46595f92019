package callout

import (
	"math"

	"github.com/verte-zerg/tuikey/internal/model"
)

// Alignment decides which end of the callout holds the first candidate.
type Alignment int

// Alignments.
const (
	Leading Alignment = iota
	Trailing
)

func (a Alignment) String() string {
	if a == Trailing {
		return "trailing"
	}
	return "leading"
}

// ParseAlignment parses "leading" or "trailing".
func ParseAlignment(s string) (Alignment, bool) {
	switch s {
	case "leading":
		return Leading, true
	case "trailing":
		return Trailing, true
	default:
		return Leading, false
	}
}

// ResolveAlignment picks trailing when the anchor's centre lies beyond the
// container's horizontal midpoint. A zero container means the bounds are
// unknown and yields leading.
func ResolveAlignment(anchor, container model.Rect) Alignment {
	if container.IsZero() {
		return Leading
	}
	if anchor.CenterX() > container.CenterX() {
		return Trailing
	}
	return Leading
}

// ClampSize limits size to max component-wise.
func ClampSize(size, max model.Size) model.Size {
	return model.Size{
		Width:  math.Min(size.Width, max.Width),
		Height: math.Min(size.Height, max.Height),
	}
}
