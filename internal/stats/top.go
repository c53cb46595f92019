// Package stats contains commit aggregation and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/tuikey/internal/model"
)

// TopActionsByFrequency returns the top N committed actions by count. Ties
// break on the action text.
func TopActionsByFrequency(records []model.CommitRecord, n int) []model.ActionAggregate {
	if n <= 0 || len(records) == 0 {
		return nil
	}
	byAction := map[model.Action]*model.ActionAggregate{}
	for _, rec := range records {
		agg, ok := byAction[rec.Action]
		if !ok {
			agg = &model.ActionAggregate{Action: rec.Action, Base: rec.Base}
			byAction[rec.Action] = agg
		}
		agg.Count++
		if rec.CommittedAt.After(agg.LastUsed) {
			agg.LastUsed = rec.CommittedAt
		}
	}
	items := make([]model.ActionAggregate, 0, len(byAction))
	for _, agg := range byAction {
		items = append(items, *agg)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Action.Text < items[j].Action.Text
		}
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
