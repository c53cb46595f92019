// Package tui provides the Bubble Tea soft keyboard.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuikey/internal/callout"
	"github.com/verte-zerg/tuikey/internal/gesture"
	"github.com/verte-zerg/tuikey/internal/model"
	statsPkg "github.com/verte-zerg/tuikey/internal/stats"
)

const (
	headerLines  = 1
	textBoxLines = 3
	calloutLines = 3
	flashFor     = 120 * time.Millisecond
)

// CommitStore persists committed callout selections.
type CommitStore interface {
	InsertCommit(ctx context.Context, rec model.CommitRecord) (int64, error)
}

type longPressMsg struct {
	seq int
}

type flashDoneMsg struct{}

type commitSavedMsg struct {
	err error
}

// Model implements the Bubble Tea keyboard UI. It owns the single callout
// controller for the keyboard and feeds it from mouse and key events.
type Model struct {
	config model.KeyboardConfig
	store  CommitStore
	ctrl   *callout.Controller
	haptic *haptics
	layout Layout
	keys   keyMap

	width  int
	height int

	text    []rune
	shifted bool

	tracker  gesture.Tracker
	pressed  Key
	pressing bool
	pressSeq int
	opened   bool
	steps    int

	commitBase    model.Action
	commitSession callout.Session
	commits       []model.CommitRecord
	unsaved       []model.CommitRecord
	flashing      bool
	errMsg        string
}

// NewModel constructs a keyboard model. store may be nil to skip persistence;
// bell output goes to bell.
func NewModel(cfg model.KeyboardConfig, store CommitStore, provider callout.ActionProvider, bell io.Writer) *Model {
	m := &Model{
		config: cfg,
		store:  store,
		haptic: newHaptics(cfg.Haptic, bell),
		keys:   defaultKeyMap(),
	}
	m.layout = NewLayout(cfg.Lang, cfg.KeyWidth, cfg.KeyHeight, 0, headerLines+textBoxLines+calloutLines)
	m.ctrl = callout.New(provider, m.haptic, callout.CommitterFunc(m.commit), callout.WithConfig(callout.Config{
		MaxButtonSize:  model.Size{Width: cfg.MaxKeyWidth, Height: cfg.MaxKeyHeight},
		IndexSpanRatio: cfg.IndexSpanRatio,
		ResetRatio:     cfg.ResetRatio,
		ClampOvershoot: cfg.ClampOvershoot,
	}))
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Text returns the composed text.
func (m *Model) Text() string {
	return string(m.text)
}

// Close releases the haptic backend. Call it once the program has returned.
func (m *Model) Close() {
	m.haptic.close()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)
	case longPressMsg:
		if m.pressing && msg.seq == m.pressSeq {
			m.openCallout()
		}
	case flashDoneMsg:
		m.flashing = false
	case commitSavedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("failed to save commit: %v", msg.err)
			logErrf("failed to save commit: %v\n", msg.err)
		}
	}
	return m, tea.Batch(cmd, m.drainSaves(), m.drainFlash())
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		k, ok := m.layout.KeyAt(msg.X, msg.Y)
		if !ok {
			return nil
		}
		return m.press(k, float64(msg.X), float64(msg.Y))
	case tea.MouseActionMotion:
		if t, ok := m.tracker.Move(float64(msg.X), float64(msg.Y)); ok && m.opened {
			m.ctrl.Update(t)
		}
	case tea.MouseActionRelease:
		m.release()
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.pressing {
		switch {
		case key.Matches(msg, m.keys.Commit):
			m.release()
			return nil
		case key.Matches(msg, m.keys.Cancel):
			m.cancel()
			return nil
		case key.Matches(msg, m.keys.Left):
			m.step(-1)
			return nil
		case key.Matches(msg, m.keys.Right):
			m.step(1)
			return nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Backspace):
		m.apply(model.Action{Kind: model.KindBackspace})
	case key.Matches(msg, m.keys.Space):
		m.apply(model.Action{Kind: model.KindSpace})
	case key.Matches(msg, m.keys.Commit):
		m.apply(model.Action{Kind: model.KindReturn})
	case msg.Type == tea.KeyRunes && msg.Alt && len(msg.Runes) == 1:
		k, ok := m.layout.KeyFor(string(msg.Runes))
		if !ok {
			return nil
		}
		if s := string(msg.Runes); s != strings.ToLower(s) {
			m.shifted = true
		}
		m.pressSeq++
		m.pressing = true
		m.pressed = k
		m.steps = 0
		m.tracker.Begin(k.Frame.CenterX(), k.Frame.Y)
		m.openCallout()
		if !m.opened {
			m.release()
		}
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			m.apply(model.Character(string(r)))
		}
	}
	return nil
}

func (m *Model) press(k Key, x, y float64) tea.Cmd {
	m.ctrl.Reset()
	m.pressing = true
	m.pressed = k
	m.opened = false
	m.steps = 0
	m.pressSeq++
	m.tracker.Begin(x, y)
	if k.Action.Kind != model.KindCharacter {
		return nil
	}
	if m.config.LongPress <= 0 {
		m.openCallout()
		return nil
	}
	seq := m.pressSeq
	return tea.Tick(m.config.LongPress, func(time.Time) tea.Msg {
		return longPressMsg{seq: seq}
	})
}

func (m *Model) openCallout() {
	action := m.keyAction(m.pressed)
	m.ctrl.Open(action, m.pressed.Frame, m.layout.Bounds(), nil)
	m.opened = m.ctrl.IsActive()
	if m.opened {
		m.ctrl.Update(m.tracker.Translation())
	}
}

// release ends the gesture. A press that never opened a callout is a tap.
func (m *Model) release() {
	if !m.pressing {
		return
	}
	m.tracker.End()
	m.pressing = false
	switch {
	case m.ctrl.IsActive():
		m.commitBase = m.keyAction(m.pressed)
		m.commitSession = m.ctrl.Session()
		m.ctrl.End()
	case !m.opened:
		m.apply(m.keyAction(m.pressed))
	}
	m.opened = false
}

func (m *Model) cancel() {
	m.tracker.End()
	m.ctrl.Reset()
	m.pressing = false
	m.opened = false
}

// step moves the keyboard-driven selection one candidate along the row. dir
// is screen direction: -1 left, 1 right. The step count stays within the row
// and maps to the middle of its candidate's span.
func (m *Model) step(dir int) {
	if !m.opened || !m.ctrl.IsActive() {
		return
	}
	sign := 1
	if m.ctrl.Alignment() == callout.Trailing {
		sign = -1
	}
	next := m.steps + dir*sign
	if next < 0 || next >= len(m.ctrl.Actions()) {
		return
	}
	m.steps = next
	cfg := m.ctrl.Config()
	width := callout.ClampSize(m.pressed.Frame.Size(), cfg.MaxButtonSize).Width
	span := cfg.IndexSpanRatio * width
	m.ctrl.Update(model.Translation{X: float64(sign) * (float64(m.steps) + 0.5) * span})
}

func (m *Model) keyAction(k Key) model.Action {
	if m.shifted && k.Action.Kind == model.KindCharacter {
		return model.Character(strings.ToUpper(k.Action.Text))
	}
	return k.Action
}

// commit implements callout.ActionCommitter.
func (m *Model) commit(action model.Action) {
	m.apply(action)
	rec := model.CommitRecord{
		CommittedAt: time.Now(),
		Lang:        m.config.Lang,
		Base:        m.commitBase,
		Action:      action,
		Index:       m.commitSession.SelectedIndex,
		Alignment:   m.commitSession.Alignment.String(),
		Candidates:  m.commitSession.Actions,
	}
	m.commits = append(m.commits, rec)
	m.unsaved = append(m.unsaved, rec)
}

func (m *Model) apply(action model.Action) {
	switch action.Kind {
	case model.KindCharacter, model.KindEmoji:
		m.text = append(m.text, []rune(action.Text)...)
		m.shifted = false
	case model.KindSpace:
		m.text = append(m.text, ' ')
	case model.KindReturn:
		m.text = append(m.text, '\n')
	case model.KindBackspace:
		if len(m.text) > 0 {
			m.text = m.text[:len(m.text)-1]
		}
	case model.KindShift:
		m.shifted = !m.shifted
	}
}

func (m *Model) drainSaves() tea.Cmd {
	if len(m.unsaved) == 0 {
		return nil
	}
	recs := m.unsaved
	m.unsaved = nil
	if m.store == nil {
		return nil
	}
	st := m.store
	return func() tea.Msg {
		ctx := context.Background()
		for _, rec := range recs {
			if _, err := st.InsertCommit(ctx, rec); err != nil {
				return commitSavedMsg{err: err}
			}
		}
		return commitSavedMsg{}
	}
}

func (m *Model) drainFlash() tea.Cmd {
	if !m.haptic.takeFlash() {
		return nil
	}
	m.flashing = true
	return tea.Tick(flashFor, func(time.Time) tea.Msg {
		return flashDoneMsg{}
	})
}

func (m *Model) topCommits() []model.ActionAggregate {
	return statsPkg.TopActionsByFrequency(m.commits, 3)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
