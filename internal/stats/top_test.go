package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/tuikey/internal/model"
)

func TestTopActionsByFrequency(t *testing.T) {
	at := time.Unix(1700000000, 0)
	records := []model.CommitRecord{
		{Base: model.Character("e"), Action: model.Character("é"), CommittedAt: at},
		{Base: model.Character("e"), Action: model.Character("è"), CommittedAt: at},
		{Base: model.Character("e"), Action: model.Character("é"), CommittedAt: at.Add(time.Minute)},
		{Base: model.Character("c"), Action: model.Character("ç"), CommittedAt: at},
	}
	top := TopActionsByFrequency(records, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(top))
	}
	if top[0].Action != model.Character("é") || top[0].Count != 2 {
		t.Fatalf("unexpected first: %+v", top[0])
	}
	if !top[0].LastUsed.Equal(at.Add(time.Minute)) {
		t.Fatalf("unexpected last used: %v", top[0].LastUsed)
	}
	if top[1].Action != model.Character("ç") {
		t.Fatalf("expected tie broken by text, got %+v", top[1])
	}
}

func TestTopActionsByFrequencyEmpty(t *testing.T) {
	if got := TopActionsByFrequency(nil, 3); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
