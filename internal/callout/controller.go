package callout

import (
	"slices"

	"github.com/verte-zerg/tuikey/internal/model"
)

// Config tunes drag quantisation and cancellation.
type Config struct {
	// MaxButtonSize caps the anchor size used for index spans.
	MaxButtonSize model.Size
	// IndexSpanRatio is the share of the capped button width one candidate covers.
	IndexSpanRatio float64
	// ResetRatio scales the anchor height into the downward over-drag threshold.
	ResetRatio float64
	// ClampOvershoot pins drags past the row to the far edge instead of
	// snapping back to the start edge.
	ClampOvershoot bool
}

// DefaultConfig returns the standard callout tuning.
func DefaultConfig() Config {
	return Config{
		MaxButtonSize:  model.Size{Width: 50, Height: 50},
		IndexSpanRatio: DefaultIndexSpanRatio,
		ResetRatio:     1,
	}
}

// Session is the live callout state. The zero value with SelectedIndex -1 is
// the inactive session.
type Session struct {
	Actions       []model.Action
	Alignment     Alignment
	Anchor        model.Rect
	SelectedIndex int
}

func inactiveSession() Session {
	return Session{SelectedIndex: -1}
}

// Controller owns one callout session and drives it through open, update, end
// and reset.
type Controller struct {
	provider  ActionProvider
	haptic    HapticNotifier
	committer ActionCommitter
	cfg       Config
	session   Session
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfig overrides the default tuning. Non-positive fields keep their
// defaults.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		def := DefaultConfig()
		if cfg.MaxButtonSize.Width <= 0 {
			cfg.MaxButtonSize.Width = def.MaxButtonSize.Width
		}
		if cfg.MaxButtonSize.Height <= 0 {
			cfg.MaxButtonSize.Height = def.MaxButtonSize.Height
		}
		if cfg.IndexSpanRatio <= 0 {
			cfg.IndexSpanRatio = def.IndexSpanRatio
		}
		if cfg.ResetRatio <= 0 {
			cfg.ResetRatio = def.ResetRatio
		}
		c.cfg = cfg
	}
}

// New returns an idle controller. Nil collaborators are replaced with
// DisabledProvider, NopHaptic and a committer that drops actions.
func New(provider ActionProvider, haptic HapticNotifier, committer ActionCommitter, opts ...Option) *Controller {
	if provider == nil {
		provider = DisabledProvider{}
	}
	if haptic == nil {
		haptic = NopHaptic{}
	}
	if committer == nil {
		committer = CommitterFunc(func(model.Action) {})
	}
	c := &Controller{
		provider:  provider,
		haptic:    haptic,
		committer: committer,
		cfg:       DefaultConfig(),
		session:   inactiveSession(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the controller tuning.
func (c *Controller) Config() Config {
	return c.cfg
}

// Open starts a session for action anchored at anchor. A nil explicit
// alignment resolves it from the anchor position inside container. The zero
// action resets instead.
func (c *Controller) Open(action model.Action, anchor, container model.Rect, explicit *Alignment) {
	if action.IsZero() {
		c.Reset()
		return
	}
	actions := slices.Clone(c.provider.Alternates(action))
	align := ResolveAlignment(anchor, container)
	if explicit != nil {
		align = *explicit
	}
	if align == Trailing {
		slices.Reverse(actions)
	}
	c.session = Session{
		Actions:   actions,
		Alignment: align,
		Anchor:    anchor,
	}
	c.session.SelectedIndex = c.startIndex()
	if !c.IsActive() {
		c.session = inactiveSession()
		return
	}
	c.haptic.SelectionChanged()
}

// Update recomputes the selection from the drag translation since the press.
func (c *Controller) Update(t model.Translation) {
	if !c.IsActive() || c.session.Anchor.IsZero() {
		return
	}
	if t.Y > c.cfg.ResetRatio*c.session.Anchor.Height {
		c.Reset()
		return
	}
	if !c.acceptsDirection(t.X) {
		return
	}
	size := ClampSize(c.session.Anchor.Size(), c.cfg.MaxButtonSize)
	index := indexFor(t.X, size.Width, c.cfg.MaxButtonSize.Width, c.cfg.IndexSpanRatio, len(c.session.Actions), c.session.Alignment)
	index = c.normalize(index)
	if index != c.session.SelectedIndex {
		c.haptic.SelectionChanged()
	}
	c.session.SelectedIndex = index
}

// End commits the selected action, if any, and resets the session.
func (c *Controller) End() {
	if action, ok := c.SelectedAction(); ok {
		c.committer.Commit(action)
	}
	c.Reset()
}

// Reset discards the session.
func (c *Controller) Reset() {
	c.session = inactiveSession()
}

// IsActive reports whether a callout is open.
func (c *Controller) IsActive() bool {
	return len(c.session.Actions) > 0
}

// HasSelection reports whether a candidate is selected.
func (c *Controller) HasSelection() bool {
	return c.session.SelectedIndex != -1
}

// SelectedAction returns the selected candidate.
func (c *Controller) SelectedAction() (model.Action, bool) {
	if !c.isIndexValid(c.session.SelectedIndex) {
		return model.Action{}, false
	}
	return c.session.Actions[c.session.SelectedIndex], true
}

// SelectedIndex returns the selected display index, or -1.
func (c *Controller) SelectedIndex() int {
	return c.session.SelectedIndex
}

// Actions returns the candidates in display order.
func (c *Controller) Actions() []model.Action {
	return slices.Clone(c.session.Actions)
}

// Alignment returns the current alignment.
func (c *Controller) Alignment() Alignment {
	return c.session.Alignment
}

// Anchor returns the frame of the key that opened the session.
func (c *Controller) Anchor() model.Rect {
	return c.session.Anchor
}

// Session returns a copy of the session state.
func (c *Controller) Session() Session {
	s := c.session
	s.Actions = slices.Clone(s.Actions)
	return s
}

func (c *Controller) startIndex() int {
	if c.session.Alignment == Trailing {
		return len(c.session.Actions) - 1
	}
	return 0
}

func (c *Controller) endIndex() int {
	if c.session.Alignment == Trailing {
		return 0
	}
	return len(c.session.Actions) - 1
}

func (c *Controller) isIndexValid(index int) bool {
	return index >= 0 && index < len(c.session.Actions)
}

func (c *Controller) normalize(index int) int {
	if c.isIndexValid(index) {
		return index
	}
	if c.cfg.ClampOvershoot {
		return c.endIndex()
	}
	return c.startIndex()
}

// acceptsDirection allows a zero offset and otherwise only drags away from
// the anchor edge: right for leading, left for trailing.
func (c *Controller) acceptsDirection(dx float64) bool {
	if dx == 0 {
		return true
	}
	if c.session.Alignment == Trailing {
		return dx < 0
	}
	return dx > 0
}
