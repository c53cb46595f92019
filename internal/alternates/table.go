// Package alternates provides per-language callout alternates for character keys.
package alternates

import (
	"sort"
	"strings"
	"unicode"

	"github.com/verte-zerg/tuikey/internal/model"
)

// Table maps a lower-case base character to its ordered alternates. The base
// character is conventionally the first entry.
type Table map[string][]string

// Alternates returns the callout candidates for action. Only character actions
// have alternates; an upper-case key yields upper-case candidates.
func (t Table) Alternates(action model.Action) []model.Action {
	if action.Kind != model.KindCharacter || action.Text == "" {
		return nil
	}
	key := strings.ToLower(action.Text)
	entries, ok := t[key]
	if !ok || len(entries) == 0 {
		return nil
	}
	upper := isUpper(action.Text)
	out := make([]model.Action, 0, len(entries))
	for _, entry := range entries {
		if upper {
			entry = toUpper(entry)
		}
		out = append(out, model.Character(entry))
	}
	return out
}

// Keys returns the base characters in the table, sorted.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a copy of t with overlay entries replacing matching keys. An
// empty overlay entry removes the key.
func (t Table) Merge(overlay Table) Table {
	out := make(Table, len(t)+len(overlay))
	for k, v := range t {
		out[k] = append([]string(nil), v...)
	}
	for k, v := range overlay {
		k = strings.ToLower(k)
		if len(v) == 0 {
			delete(out, k)
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}

func isUpper(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

// toUpper leaves ß alone; its upper-case form is two letters.
func toUpper(s string) string {
	if s == "ß" {
		return s
	}
	return strings.ToUpper(s)
}
