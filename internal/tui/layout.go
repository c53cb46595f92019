package tui

import (
	"strings"

	"github.com/verte-zerg/tuikey/internal/model"
)

// Key is one button on the on-screen keyboard. Frames are in terminal cells,
// relative to the top-left corner of the screen.
type Key struct {
	Action model.Action
	Label  string
	Frame  model.Rect
}

// Layout is a positioned set of keyboard rows.
type Layout struct {
	Rows   [][]Key
	bounds model.Rect
}

type keySpec struct {
	action model.Action
	label  string
	units  float64
}

type rowSpec struct {
	offset float64
	keys   []keySpec
}

var letterRows = map[string][]string{
	"en": {"qwertyuiop", "asdfghjkl", "zxcvbnm"},
	"fr": {"azertyuiop", "qsdfghjklm", "wxcvbn'"},
	"de": {"qwertzuiopü", "asdfghjklöä", "yxcvbnm"},
	"es": {"qwertyuiop", "asdfghjklñ", "zxcvbnm"},
	"pt": {"qwertyuiop", "asdfghjklç", "zxcvbnm"},
}

func chars(s string) []keySpec {
	specs := make([]keySpec, 0, len(s))
	for _, r := range s {
		c := string(r)
		specs = append(specs, keySpec{action: model.Character(c), label: c, units: 1})
	}
	return specs
}

func rowSpecs(lang string) []rowSpec {
	letters, ok := letterRows[strings.ToLower(lang)]
	if !ok {
		letters = letterRows["en"]
	}
	third := []keySpec{{action: model.Action{Kind: model.KindShift}, label: "⇧", units: 1.5}}
	third = append(third, chars(letters[2])...)
	third = append(third, keySpec{action: model.Action{Kind: model.KindBackspace}, label: "⌫", units: 1.5})

	bottom := chars(`-"`)
	bottom = append(bottom, keySpec{action: model.Action{Kind: model.KindSpace}, label: "space", units: 4})
	bottom = append(bottom, chars(".?!")...)
	bottom = append(bottom, keySpec{action: model.Action{Kind: model.KindReturn}, label: "⏎", units: 1.5})

	return []rowSpec{
		{keys: chars(letters[0])},
		{offset: 0.5, keys: chars(letters[1])},
		{keys: third},
		{keys: bottom},
	}
}

// NewLayout positions the rows for lang with its top-left corner at
// (originX, originY).
func NewLayout(lang string, keyWidth, keyHeight, originX, originY int) Layout {
	specs := rowSpecs(lang)
	layout := Layout{Rows: make([][]Key, 0, len(specs))}
	maxRight := originX
	for r, spec := range specs {
		x := originX + int(spec.offset*float64(keyWidth))
		y := originY + r*keyHeight
		row := make([]Key, 0, len(spec.keys))
		for _, ks := range spec.keys {
			w := int(ks.units * float64(keyWidth))
			row = append(row, Key{
				Action: ks.action,
				Label:  ks.label,
				Frame: model.Rect{
					X:      float64(x),
					Y:      float64(y),
					Width:  float64(w),
					Height: float64(keyHeight),
				},
			})
			x += w
		}
		if x > maxRight {
			maxRight = x
		}
		layout.Rows = append(layout.Rows, row)
	}
	layout.bounds = model.Rect{
		X:      float64(originX),
		Y:      float64(originY),
		Width:  float64(maxRight - originX),
		Height: float64(len(specs) * keyHeight),
	}
	return layout
}

// Bounds returns the rectangle covering every row.
func (l Layout) Bounds() model.Rect {
	return l.bounds
}

// KeyAt returns the key under the cell (x, y).
func (l Layout) KeyAt(x, y int) (Key, bool) {
	fx, fy := float64(x), float64(y)
	for _, row := range l.Rows {
		for _, k := range row {
			if k.Frame.Contains(fx, fy) {
				return k, true
			}
		}
	}
	return Key{}, false
}

// KeyFor returns the key producing the character s, ignoring case.
func (l Layout) KeyFor(s string) (Key, bool) {
	s = strings.ToLower(s)
	for _, row := range l.Rows {
		for _, k := range row {
			if k.Action.Kind == model.KindCharacter && k.Action.Text == s {
				return k, true
			}
		}
	}
	return Key{}, false
}
