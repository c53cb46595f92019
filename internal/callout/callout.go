// Package callout implements the press-and-hold alternate action callout: a
// session that opens on a key, tracks a horizontal drag across the candidate
// row and commits the selected alternate on release.
//
// A Controller is not safe for concurrent use. Hosts call it from their input
// event loop only.
package callout

import "github.com/verte-zerg/tuikey/internal/model"

// ActionProvider returns the ordered alternates for a base action.
type ActionProvider interface {
	Alternates(action model.Action) []model.Action
}

// HapticNotifier is told about every selection change.
type HapticNotifier interface {
	SelectionChanged()
}

// ActionCommitter executes the selected action.
type ActionCommitter interface {
	Commit(action model.Action)
}

// ProviderFunc adapts a function to ActionProvider.
type ProviderFunc func(model.Action) []model.Action

// Alternates implements ActionProvider.
func (f ProviderFunc) Alternates(action model.Action) []model.Action {
	return f(action)
}

// HapticFunc adapts a function to HapticNotifier.
type HapticFunc func()

// SelectionChanged implements HapticNotifier.
func (f HapticFunc) SelectionChanged() {
	f()
}

// CommitterFunc adapts a function to ActionCommitter.
type CommitterFunc func(model.Action)

// Commit implements ActionCommitter.
func (f CommitterFunc) Commit(action model.Action) {
	f(action)
}

// DisabledProvider never returns alternates, so callouts never open.
type DisabledProvider struct{}

// Alternates implements ActionProvider.
func (DisabledProvider) Alternates(model.Action) []model.Action {
	return nil
}

// NopHaptic discards selection notifications.
type NopHaptic struct{}

// SelectionChanged implements HapticNotifier.
func (NopHaptic) SelectionChanged() {}
