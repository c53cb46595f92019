// Package gesture turns absolute pointer positions into drag translations.
package gesture

import "github.com/verte-zerg/tuikey/internal/model"

// Tracker follows one press-drag-release gesture. The zero value is idle.
type Tracker struct {
	active bool
	startX float64
	startY float64
	last   model.Translation
}

// Begin starts a gesture at the given position, discarding any previous one.
func (t *Tracker) Begin(x, y float64) {
	t.active = true
	t.startX = x
	t.startY = y
	t.last = model.Translation{}
}

// Move returns the translation from the press position. The second result is
// false when no gesture is active or the position did not change since the
// last move.
func (t *Tracker) Move(x, y float64) (model.Translation, bool) {
	if !t.active {
		return model.Translation{}, false
	}
	tr := model.Translation{X: x - t.startX, Y: y - t.startY}
	if tr == t.last {
		return tr, false
	}
	t.last = tr
	return tr, true
}

// End finishes the gesture and returns the final translation.
func (t *Tracker) End() model.Translation {
	last := t.last
	*t = Tracker{}
	return last
}

// Active reports whether a gesture is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// Translation returns the latest translation.
func (t *Tracker) Translation() model.Translation {
	return t.last
}
