package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuikey/internal/model"
	"github.com/verte-zerg/tuikey/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tuikey.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	start := time.Unix(1700000000, 0)
	commits := []struct {
		base, action, align string
	}{
		{"e", "é", "leading"},
		{"e", "é", "leading"},
		{"e", "è", "trailing"},
		{"c", "ç", "leading"},
	}
	for i, c := range commits {
		rec := model.CommitRecord{
			CommittedAt: start.Add(time.Duration(i) * time.Minute),
			Lang:        "fr",
			Base:        model.Character(c.base),
			Action:      model.Character(c.action),
			Index:       1,
			Alignment:   c.align,
			Candidates:  []model.Action{model.Character(c.base), model.Character(c.action)},
		}
		if _, err := st.InsertCommit(ctx, rec); err != nil {
			t.Fatalf("insert commit: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Lang: "fr", Top: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Total != 4 {
		t.Fatalf("expected 4 commits, got %d", report.Total)
	}
	if len(report.Top) != 2 || report.Top[0].Action != model.Character("é") {
		t.Fatalf("unexpected top actions: %+v", report.Top)
	}
	if len(report.Bases) != 2 || report.Bases[0].Base != model.Character("e") || report.Bases[0].Count != 3 {
		t.Fatalf("unexpected bases: %+v", report.Bases)
	}
	if report.Alignment["leading"] != 3 || report.Alignment["trailing"] != 1 {
		t.Fatalf("unexpected alignment counts: %v", report.Alignment)
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, report, start.Add(time.Hour), 0); err != nil {
		t.Fatalf("write report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Commits 4", "leading 3", "Alternate", "é", "ago"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, Report{}, time.Now(), 80); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if !strings.Contains(buf.String(), "No committed alternates") {
		t.Fatalf("unexpected empty report: %q", buf.String())
	}
}
