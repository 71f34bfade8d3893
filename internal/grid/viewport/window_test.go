package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWindowWorkedExample(t *testing.T) {
	// 10,000 rows at height 35 in a 300-cell viewport: 9 visible rows,
	// overscan 5. At offset 3500 (row 100) the window is [95, 114].
	calc := NewCalculator(0.5)
	w := calc.ComputeWindow(3500, 300, 35, 10000)

	assert.Equal(t, 95, w.Start)
	assert.Equal(t, 114, w.End)
	assert.Equal(t, 95*35, w.TopOffset)
	assert.Equal(t, 35, w.RowHeight)
}

func TestComputeWindowBounds(t *testing.T) {
	calc := NewCalculator(0.5)

	tests := []struct {
		name       string
		scrollTop  int
		height     int
		rowHeight  int
		datasetLen int
	}{
		{"at top", 0, 300, 35, 10000},
		{"at bottom", 10000*35 - 300, 300, 35, 10000},
		{"past bottom", 10000 * 35 * 2, 300, 35, 10000},
		{"negative offset", -500, 300, 35, 10000},
		{"single row", 0, 300, 35, 1},
		{"viewport taller than content", 0, 5000, 35, 10},
		{"row taller than viewport", 70, 10, 35, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := calc.ComputeWindow(tt.scrollTop, tt.height, tt.rowHeight, tt.datasetLen)
			require.LessOrEqual(t, w.Start, w.End)
			require.GreaterOrEqual(t, w.Start, 0)
			require.Less(t, w.End, tt.datasetLen)
			assert.Equal(t, w.Start*tt.rowHeight, w.TopOffset)
		})
	}
}

func TestComputeWindowCoversViewport(t *testing.T) {
	// Every row whose span intersects the viewport must be materialized
	calc := NewCalculator(0.5)

	for scrollTop := 0; scrollTop <= 3500; scrollTop += 7 {
		w := calc.ComputeWindow(scrollTop, 120, 3, 5000)

		firstVisible := scrollTop / 3
		lastVisible := (scrollTop + 120 - 1) / 3
		if lastVisible > 4999 {
			lastVisible = 4999
		}
		require.LessOrEqual(t, w.Start, firstVisible, "scrollTop=%d", scrollTop)
		require.GreaterOrEqual(t, w.End, lastVisible, "scrollTop=%d", scrollTop)
	}
}

func TestComputeWindowEmptyDataset(t *testing.T) {
	calc := NewCalculator(0.5)
	w := calc.ComputeWindow(100, 300, 35, 0)

	assert.True(t, w.Empty())
	assert.Equal(t, 0, w.Count())
	assert.Equal(t, 0, w.TopOffset)
}

func TestComputeWindowClampsInvalidGeometry(t *testing.T) {
	calc := NewCalculator(0.5)

	// Zero and negative geometry recover via clamping, never panic
	w := calc.ComputeWindow(0, 0, 0, 100)
	assert.False(t, w.Empty())
	assert.Equal(t, 1, w.RowHeight)

	w = calc.ComputeWindow(0, -10, -5, 100)
	assert.False(t, w.Empty())
	assert.GreaterOrEqual(t, w.Start, 0)
	assert.Less(t, w.End, 100)
}

func TestComputeWindowIdempotent(t *testing.T) {
	calc := NewCalculator(0.5)

	a := calc.ComputeWindow(777, 200, 4, 12345)
	b := calc.ComputeWindow(777, 200, 4, 12345)
	assert.Equal(t, a, b)
}

func TestComputeWindowZeroOverscan(t *testing.T) {
	calc := NewCalculator(0)
	w := calc.ComputeWindow(100, 50, 10, 1000)

	assert.Equal(t, 10, w.Start)
	assert.Equal(t, 15, w.End)
}

func TestContentHeight(t *testing.T) {
	assert.Equal(t, 350000, ContentHeight(10000, 35))
	assert.Equal(t, 0, ContentHeight(0, 35))
	assert.Equal(t, 100, ContentHeight(100, 0)) // row height clamped to 1
	assert.Equal(t, 0, ContentHeight(-5, 1))
}

func TestMaxScrollTop(t *testing.T) {
	assert.Equal(t, 350000-300, MaxScrollTop(10000, 35, 300))
	assert.Equal(t, 0, MaxScrollTop(5, 1, 300))
	assert.Equal(t, 0, MaxScrollTop(0, 35, 300))
}
