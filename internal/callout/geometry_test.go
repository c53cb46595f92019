package callout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/tuikey/internal/model"
)

func TestResolveAlignment(t *testing.T) {
	container := model.Rect{Width: 100, Height: 40}
	tests := []struct {
		name      string
		anchor    model.Rect
		container model.Rect
		want      Alignment
	}{
		{name: "left half", anchor: model.Rect{X: 0, Width: 10, Height: 4}, container: container, want: Leading},
		{name: "centre is not beyond midpoint", anchor: model.Rect{X: 45, Width: 10, Height: 4}, container: container, want: Leading},
		{name: "right half", anchor: model.Rect{X: 46, Width: 10, Height: 4}, container: container, want: Trailing},
		{name: "offset container", anchor: model.Rect{X: 120, Width: 10, Height: 4}, container: model.Rect{X: 100, Width: 100, Height: 40}, want: Leading},
		{name: "unknown container", anchor: model.Rect{X: 900, Width: 10, Height: 4}, container: model.Rect{}, want: Leading},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAlignment(tt.anchor, tt.container))
		})
	}
}

func TestClampSize(t *testing.T) {
	got := ClampSize(model.Size{Width: 80, Height: 30}, model.Size{Width: 50, Height: 50})
	assert.Equal(t, model.Size{Width: 50, Height: 30}, got)
}

func TestParseAlignment(t *testing.T) {
	a, ok := ParseAlignment("trailing")
	assert.True(t, ok)
	assert.Equal(t, Trailing, a)
	assert.Equal(t, "trailing", a.String())

	_, ok = ParseAlignment("centre")
	assert.False(t, ok)
}
