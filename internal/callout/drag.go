package callout

import "math"

// DefaultIndexSpanRatio is the share of a button width one candidate covers.
const DefaultIndexSpanRatio = 0.9

// IndexFor converts a horizontal drag distance into a candidate index using
// the default span ratio. The result is not clamped to [0, count).
func IndexFor(translationX, buttonWidth, maxButtonWidth float64, count int, align Alignment) int {
	return indexFor(translationX, buttonWidth, maxButtonWidth, DefaultIndexSpanRatio, count, align)
}

func indexFor(translationX, buttonWidth, maxButtonWidth, ratio float64, count int, align Alignment) int {
	span := ratio * math.Min(buttonWidth, maxButtonWidth)
	offset := 0
	if span > 0 && !math.IsNaN(translationX) {
		raw := math.Floor(math.Abs(translationX) / span)
		// Cap before converting; huge drags would overflow int.
		if raw > float64(count) {
			raw = float64(count)
		}
		offset = int(raw)
	}
	if align == Trailing {
		return count - offset - 1
	}
	return offset
}
