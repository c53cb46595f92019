package callout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuikey/internal/model"
)

type mockHaptic struct {
	mock.Mock
}

func (m *mockHaptic) SelectionChanged() {
	m.Called()
}

type mockCommitter struct {
	mock.Mock
}

func (m *mockCommitter) Commit(action model.Action) {
	m.Called(action)
}

func chars(ss ...string) []model.Action {
	out := make([]model.Action, 0, len(ss))
	for _, s := range ss {
		out = append(out, model.Character(s))
	}
	return out
}

func staticProvider(actions []model.Action) ActionProvider {
	return ProviderFunc(func(model.Action) []model.Action {
		return actions
	})
}

type fixture struct {
	ctrl      *Controller
	haptic    *mockHaptic
	committer *mockCommitter
}

func newFixture(t *testing.T, candidates []model.Action, opts ...Option) fixture {
	t.Helper()
	h := &mockHaptic{}
	h.On("SelectionChanged").Return()
	c := &mockCommitter{}
	c.On("Commit", mock.Anything).Return()
	return fixture{
		ctrl:      New(staticProvider(candidates), h, c, opts...),
		haptic:    h,
		committer: c,
	}
}

var (
	leading  = Leading
	trailing = Trailing
	anchor   = model.Rect{X: 10, Y: 100, Width: 40, Height: 50}
	screen   = model.Rect{Width: 400, Height: 300}
)

func TestOpenSelectsStartEdge(t *testing.T) {
	f := newFixture(t, chars("a", "b", "c"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)

	require.True(t, f.ctrl.IsActive())
	require.True(t, f.ctrl.HasSelection())
	action, ok := f.ctrl.SelectedAction()
	require.True(t, ok)
	assert.Equal(t, model.Character("a"), action)
	assert.Equal(t, 0, f.ctrl.SelectedIndex())
	f.haptic.AssertNumberOfCalls(t, "SelectionChanged", 1)
}

func TestOpenTrailingReversesAndSelectsLast(t *testing.T) {
	f := newFixture(t, chars("a", "b", "c"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &trailing)

	assert.Equal(t, chars("c", "b", "a"), f.ctrl.Actions())
	assert.Equal(t, 2, f.ctrl.SelectedIndex())
	action, _ := f.ctrl.SelectedAction()
	assert.Equal(t, model.Character("a"), action)
}

func TestOpenDoesNotMutateProviderSlice(t *testing.T) {
	candidates := chars("a", "b", "c")
	f := newFixture(t, candidates)
	f.ctrl.Open(model.Character("a"), anchor, screen, &trailing)

	assert.Equal(t, chars("a", "b", "c"), candidates)
}

func TestOpenResolvesAlignmentFromGeometry(t *testing.T) {
	f := newFixture(t, chars("a", "b"))
	right := model.Rect{X: 300, Y: 100, Width: 40, Height: 50}
	f.ctrl.Open(model.Character("a"), right, screen, nil)
	assert.Equal(t, Trailing, f.ctrl.Alignment())

	f.ctrl.Open(model.Character("a"), anchor, screen, nil)
	assert.Equal(t, Leading, f.ctrl.Alignment())
	assert.Equal(t, anchor, f.ctrl.Anchor())
}

func TestOpenEmptyCandidatesStaysInactive(t *testing.T) {
	f := newFixture(t, nil)
	f.ctrl.Open(model.Character("x"), anchor, screen, &leading)

	assert.False(t, f.ctrl.IsActive())
	assert.False(t, f.ctrl.HasSelection())
	assert.Equal(t, inactiveSession(), f.ctrl.Session())
	f.haptic.AssertNotCalled(t, "SelectionChanged")
}

func TestOpenZeroActionResets(t *testing.T) {
	f := newFixture(t, chars("a", "b"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)
	f.ctrl.Open(model.Action{}, anchor, screen, &leading)

	assert.False(t, f.ctrl.IsActive())
	assert.Equal(t, -1, f.ctrl.SelectedIndex())
	assert.True(t, f.ctrl.Anchor().IsZero())
	f.haptic.AssertNumberOfCalls(t, "SelectionChanged", 1)
}

func TestResetIsIdempotent(t *testing.T) {
	f := newFixture(t, chars("a", "b"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)
	f.ctrl.Reset()
	once := f.ctrl.Session()
	f.ctrl.Reset()

	assert.Equal(t, once, f.ctrl.Session())
	assert.Equal(t, inactiveSession(), once)
	f.haptic.AssertNumberOfCalls(t, "SelectionChanged", 1)
	f.committer.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateWithoutOpenIsNoop(t *testing.T) {
	f := newFixture(t, chars("a", "b"))
	f.ctrl.Update(model.Translation{X: 100})

	assert.False(t, f.ctrl.IsActive())
	f.haptic.AssertNotCalled(t, "SelectionChanged")
}

func TestUpdateIgnoredForZeroAnchor(t *testing.T) {
	f := newFixture(t, chars("a", "b", "c"))
	f.ctrl.Open(model.Character("a"), model.Rect{}, screen, &leading)
	require.True(t, f.ctrl.IsActive())

	f.ctrl.Update(model.Translation{X: 100})
	assert.Equal(t, 0, f.ctrl.SelectedIndex())
	f.haptic.AssertNumberOfCalls(t, "SelectionChanged", 1)
}

func TestUpdateOverDragResets(t *testing.T) {
	for _, dx := range []float64{-500, 0, 36, 500} {
		f := newFixture(t, chars("a", "b", "c"))
		f.ctrl.Open(model.Character("a"), anchor, screen, &leading)
		f.ctrl.Update(model.Translation{X: dx, Y: anchor.Height + 0.5})
		assert.False(t, f.ctrl.IsActive(), "dx=%v", dx)
		assert.Equal(t, -1, f.ctrl.SelectedIndex())
	}
}

func TestUpdateAtThresholdKeepsSession(t *testing.T) {
	f := newFixture(t, chars("a", "b", "c"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)
	f.ctrl.Update(model.Translation{Y: anchor.Height})
	f.ctrl.Update(model.Translation{Y: -1000})

	assert.True(t, f.ctrl.IsActive())
}

func TestResetRatioScalesThreshold(t *testing.T) {
	f := newFixture(t, chars("a", "b"), WithConfig(Config{ResetRatio: 2}))
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)

	f.ctrl.Update(model.Translation{Y: anchor.Height * 1.5})
	assert.True(t, f.ctrl.IsActive())
	f.ctrl.Update(model.Translation{Y: anchor.Height*2 + 1})
	assert.False(t, f.ctrl.IsActive())
}

func TestUpdateSignMismatchIgnored(t *testing.T) {
	f := newFixture(t, chars("a", "b", "c"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)
	f.ctrl.Update(model.Translation{X: 40})
	require.Equal(t, 1, f.ctrl.SelectedIndex())

	f.ctrl.Update(model.Translation{X: -80})
	assert.Equal(t, 1, f.ctrl.SelectedIndex())

	g := newFixture(t, chars("a", "b", "c"))
	g.ctrl.Open(model.Character("a"), anchor, screen, &trailing)
	g.ctrl.Update(model.Translation{X: 80})
	assert.Equal(t, 2, g.ctrl.SelectedIndex())
	g.haptic.AssertNumberOfCalls(t, "SelectionChanged", 1)
}

func TestUpdateZeroTranslationIsValid(t *testing.T) {
	f := newFixture(t, chars("a", "b", "c"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)
	f.ctrl.Update(model.Translation{})

	assert.Equal(t, 0, f.ctrl.SelectedIndex())
	f.haptic.AssertNumberOfCalls(t, "SelectionChanged", 1)
}

func TestHapticOncePerTransition(t *testing.T) {
	f := newFixture(t, chars("a", "b", "c", "d"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)
	// span = 0.9 * 40 = 36, indices [0,0,1,1,2]
	for _, dx := range []float64{1, 20, 36, 50, 72} {
		f.ctrl.Update(model.Translation{X: dx})
	}

	assert.Equal(t, 2, f.ctrl.SelectedIndex())
	// one for open, two for transitions
	f.haptic.AssertNumberOfCalls(t, "SelectionChanged", 3)
}

func TestUpdateTrailingStepsBackward(t *testing.T) {
	f := newFixture(t, chars("a", "b", "c"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &trailing)

	f.ctrl.Update(model.Translation{X: -40})
	assert.Equal(t, 1, f.ctrl.SelectedIndex())
	action, _ := f.ctrl.SelectedAction()
	assert.Equal(t, model.Character("b"), action)

	f.ctrl.Update(model.Translation{X: -75})
	assert.Equal(t, 0, f.ctrl.SelectedIndex())
}

func TestOvershootSnapsToStartEdge(t *testing.T) {
	f := newFixture(t, chars("a", "b", "c"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)
	f.ctrl.Update(model.Translation{X: 75})
	require.Equal(t, 2, f.ctrl.SelectedIndex())

	f.ctrl.Update(model.Translation{X: 500})
	assert.Equal(t, 0, f.ctrl.SelectedIndex())
}

func TestClampOvershootPinsFarEdge(t *testing.T) {
	f := newFixture(t, chars("a", "b", "c"), WithConfig(Config{ClampOvershoot: true}))
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)
	f.ctrl.Update(model.Translation{X: 500})
	assert.Equal(t, 2, f.ctrl.SelectedIndex())

	g := newFixture(t, chars("a", "b", "c"), WithConfig(Config{ClampOvershoot: true}))
	g.ctrl.Open(model.Character("a"), anchor, screen, &trailing)
	g.ctrl.Update(model.Translation{X: -500})
	assert.Equal(t, 0, g.ctrl.SelectedIndex())
}

func TestMonotonicDirection(t *testing.T) {
	candidates := chars("a", "b", "c", "d", "e")
	cfg := WithConfig(Config{ClampOvershoot: true})

	f := newFixture(t, candidates, cfg)
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)
	prev := f.ctrl.SelectedIndex()
	for dx := 0.0; dx <= 400; dx += 3 {
		f.ctrl.Update(model.Translation{X: dx})
		require.GreaterOrEqual(t, f.ctrl.SelectedIndex(), prev, "dx=%v", dx)
		prev = f.ctrl.SelectedIndex()
	}
	assert.Equal(t, 4, prev)

	g := newFixture(t, candidates, cfg)
	g.ctrl.Open(model.Character("a"), anchor, screen, &trailing)
	prev = g.ctrl.SelectedIndex()
	for dx := 0.0; dx >= -400; dx -= 3 {
		g.ctrl.Update(model.Translation{X: dx})
		require.LessOrEqual(t, g.ctrl.SelectedIndex(), prev, "dx=%v", dx)
		prev = g.ctrl.SelectedIndex()
	}
	assert.Equal(t, 0, prev)
}

func TestEndToEndAccentSelection(t *testing.T) {
	accents := chars("é", "è", "ê", "ë")
	f := newFixture(t, accents, WithConfig(Config{MaxButtonSize: model.Size{Width: 60, Height: 60}}))
	f.ctrl.Open(model.Character("e"), anchor, screen, &leading)
	f.ctrl.Update(model.Translation{X: 75})

	action, ok := f.ctrl.SelectedAction()
	require.True(t, ok)
	require.Equal(t, model.Character("ê"), action)

	f.ctrl.End()
	f.committer.AssertCalled(t, "Commit", model.Character("ê"))
	f.committer.AssertNumberOfCalls(t, "Commit", 1)
	assert.False(t, f.ctrl.IsActive())

	f.ctrl.End()
	f.committer.AssertNumberOfCalls(t, "Commit", 1)
}

func TestMaxButtonWidthCapsSpan(t *testing.T) {
	wide := model.Rect{X: 10, Y: 100, Width: 200, Height: 50}
	f := newFixture(t, chars("a", "b", "c", "d"))
	f.ctrl.Open(model.Character("a"), wide, screen, &leading)
	// span = 0.9 * min(200, 50) = 45
	f.ctrl.Update(model.Translation{X: 95})
	assert.Equal(t, 2, f.ctrl.SelectedIndex())
}

func TestEndWithoutSessionIsNoop(t *testing.T) {
	f := newFixture(t, chars("a"))
	f.ctrl.End()

	f.committer.AssertNotCalled(t, "Commit", mock.Anything)
	f.haptic.AssertNotCalled(t, "SelectionChanged")
}

func TestPressAndReleaseCommitsStartEdge(t *testing.T) {
	f := newFixture(t, chars("a", "b", "c"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &trailing)
	f.ctrl.End()

	f.committer.AssertCalled(t, "Commit", model.Character("a"))
}

func TestSessionSnapshotIsDetached(t *testing.T) {
	f := newFixture(t, chars("a", "b"))
	f.ctrl.Open(model.Character("a"), anchor, screen, &leading)

	s := f.ctrl.Session()
	s.Actions[0] = model.Character("z")
	actions := f.ctrl.Actions()
	actions[1] = model.Character("y")

	assert.Equal(t, chars("a", "b"), f.ctrl.Actions())
}

func TestNewWithNilCollaborators(t *testing.T) {
	c := New(nil, nil, nil)
	c.Open(model.Character("a"), anchor, screen, nil)
	c.End()

	assert.False(t, c.IsActive())
	assert.Equal(t, DefaultConfig(), c.Config())
}
