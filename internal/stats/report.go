package stats

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/tuikey/internal/model"
	"github.com/verte-zerg/tuikey/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Total     int
	Top       []model.ActionAggregate
	Bases     []BaseCount
	Alignment map[string]int
}

// BaseCount counts commits made from one base key.
type BaseCount struct {
	Base  model.Action
	Count int
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	commits, err := st.ListCommits(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	top, err := st.TopActions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Total:     len(commits),
		Top:       top,
		Alignment: map[string]int{},
	}
	bases := map[model.Action]int{}
	for _, rec := range commits {
		bases[rec.Base]++
		report.Alignment[rec.Alignment]++
	}
	for base, n := range bases {
		report.Bases = append(report.Bases, BaseCount{Base: base, Count: n})
	}
	sort.Slice(report.Bases, func(i, j int) bool {
		if report.Bases[i].Count == report.Bases[j].Count {
			return report.Bases[i].Base.Text < report.Bases[j].Base.Text
		}
		return report.Bases[i].Count > report.Bases[j].Count
	})
	return report, nil
}

// WriteReport renders the report as plain text tables no wider than width
// columns. A non-positive width disables truncation.
func WriteReport(w io.Writer, report Report, now time.Time, width int) error {
	if report.Total == 0 {
		_, err := fmt.Fprintln(w, "No committed alternates yet.")
		return err
	}
	lines := []string{
		fmt.Sprintf("Commits %d  (leading %d · trailing %d)", report.Total, report.Alignment["leading"], report.Alignment["trailing"]),
		"",
	}

	rows := make([][]string, 0, len(report.Top))
	for _, agg := range report.Top {
		rows = append(rows, []string{
			agg.Action.String(),
			agg.Base.String(),
			strconv.Itoa(agg.Count),
			humanize.RelTime(agg.LastUsed, now, "ago", "from now"),
		})
	}
	lines = append(lines, formatTable([]string{"Alternate", "Key", "Count", "Last used"}, rows, map[int]bool{2: true})...)
	lines = append(lines, "")

	rows = rows[:0]
	for _, b := range report.Bases {
		rows = append(rows, []string{b.Base.String(), strconv.Itoa(b.Count)})
	}
	lines = append(lines, formatTable([]string{"Key", "Commits"}, rows, map[int]bool{1: true})...)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, truncate(line, width)); err != nil {
			return err
		}
	}
	return nil
}
