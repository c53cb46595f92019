package callout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexFor(t *testing.T) {
	tests := []struct {
		name     string
		tx       float64
		width    float64
		maxWidth float64
		count    int
		align    Alignment
		want     int
	}{
		{name: "zero leading", tx: 0, width: 40, maxWidth: 60, count: 4, align: Leading, want: 0},
		{name: "zero trailing", tx: 0, width: 40, maxWidth: 60, count: 4, align: Trailing, want: 3},
		{name: "just below span", tx: 35.9, width: 40, maxWidth: 60, count: 4, align: Leading, want: 0},
		{name: "exact span", tx: 36, width: 40, maxWidth: 60, count: 4, align: Leading, want: 1},
		{name: "two spans", tx: 75, width: 40, maxWidth: 60, count: 4, align: Leading, want: 2},
		{name: "trailing uses magnitude", tx: -75, width: 40, maxWidth: 60, count: 4, align: Trailing, want: 1},
		{name: "max width caps span", tx: 45, width: 100, maxWidth: 50, count: 4, align: Leading, want: 1},
		{name: "leading past row", tx: 1000, width: 40, maxWidth: 60, count: 4, align: Leading, want: 4},
		{name: "trailing past row", tx: -1000, width: 40, maxWidth: 60, count: 4, align: Trailing, want: -1},
		{name: "zero width", tx: 50, width: 0, maxWidth: 60, count: 4, align: Trailing, want: 3},
		{name: "huge drag", tx: math.MaxFloat64, width: 40, maxWidth: 60, count: 4, align: Leading, want: 4},
		{name: "nan", tx: math.NaN(), width: 40, maxWidth: 60, count: 4, align: Leading, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IndexFor(tt.tx, tt.width, tt.maxWidth, tt.count, tt.align)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndexForCustomRatio(t *testing.T) {
	assert.Equal(t, 2, indexFor(80, 40, 60, 1, 5, Leading))
	assert.Equal(t, 4, indexFor(80, 40, 60, 0.5, 5, Leading))
}
