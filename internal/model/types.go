// Package model defines shared data structures.
package model

import "time"

// Kind identifies the type of a keyboard action.
type Kind int

// Action kinds.
const (
	KindNone Kind = iota
	KindCharacter
	KindEmoji
	KindBackspace
	KindSpace
	KindReturn
	KindShift
)

var kindNames = map[Kind]string{
	KindNone:      "none",
	KindCharacter: "character",
	KindEmoji:     "emoji",
	KindBackspace: "backspace",
	KindSpace:     "space",
	KindReturn:    "return",
	KindShift:     "shift",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindNone
}

// Action is a keyboard action. The zero value is the absent action.
type Action struct {
	Kind Kind
	Text string
}

// Character returns a character action.
func Character(s string) Action {
	return Action{Kind: KindCharacter, Text: s}
}

// Emoji returns an emoji action.
func Emoji(s string) Action {
	return Action{Kind: KindEmoji, Text: s}
}

// IsZero reports whether a is the absent action.
func (a Action) IsZero() bool {
	return a.Kind == KindNone
}

// CalloutText returns the text shown for a in a callout, or "" when the action
// has no textual representation.
func (a Action) CalloutText() string {
	switch a.Kind {
	case KindCharacter, KindEmoji:
		return a.Text
	default:
		return ""
	}
}

func (a Action) String() string {
	if text := a.CalloutText(); text != "" {
		return text
	}
	return "<" + a.Kind.String() + ">"
}

// Rect is an axis-aligned rectangle in a shared coordinate space.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsZero reports whether r is the degenerate zero rectangle.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// CenterX returns the horizontal centre of r.
func (r Rect) CenterX() float64 {
	return r.X + r.Width/2
}

// Size returns the width and height of r.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether the point lies inside r. The right and bottom edges
// are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Translation is a drag offset from the press location. Positive X is right,
// positive Y is down.
type Translation struct {
	X float64
	Y float64
}

// KeyboardConfig defines host keyboard settings.
type KeyboardConfig struct {
	Lang           string
	KeyWidth       int
	KeyHeight      int
	LongPress      time.Duration
	MaxKeyWidth    float64
	MaxKeyHeight   float64
	IndexSpanRatio float64
	ResetRatio     float64
	ClampOvershoot bool
	Haptic         string
	Mouse          bool
	AlternatesPath string
}

// StatsConfig defines filters for commit reporting.
type StatsConfig struct {
	Lang  string
	Since *time.Time
	Top   int
}

// CommitRecord captures one committed callout selection.
type CommitRecord struct {
	CommittedAt time.Time
	Lang        string
	Base        Action
	Action      Action
	Index       int
	Alignment   string
	Candidates  []Action
}

// ActionAggregate aggregates commits of a single action.
type ActionAggregate struct {
	Action   Action
	Base     Action
	Count    int
	LastUsed time.Time
}
