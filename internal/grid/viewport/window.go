// Package viewport computes the materialized row window from scroll
// position and measured geometry. The computation is pure: identical
// inputs always yield identical outputs, with no rendering surface needed.
package viewport

import (
	"math"

	"gridview/internal/domain"
)

// DefaultOverscanFactor is the extra-row margin as a fraction of the
// visible count. Tuning constant, not an invariant.
const DefaultOverscanFactor = 0.5

// Calculator derives visible windows for a fixed overscan policy
type Calculator struct {
	overscanFactor float64
}

// NewCalculator creates a calculator with the given overscan factor.
// Negative factors are treated as zero.
func NewCalculator(overscanFactor float64) *Calculator {
	if overscanFactor < 0 {
		overscanFactor = 0
	}
	return &Calculator{overscanFactor: overscanFactor}
}

// ComputeWindow returns the contiguous row range to materialize for the
// given scroll offset and geometry. The range always covers the full
// visible viewport plus overscan on both edges, clamped to
// [0, datasetLen). An empty window is returned iff datasetLen == 0.
//
// Invalid geometry (non-positive viewport height or row height) is
// recovered by clamping to 1, never reported as a failure.
func (c *Calculator) ComputeWindow(scrollTop, viewportHeight, rowHeight, datasetLen int) domain.Window {
	if rowHeight < 1 {
		rowHeight = 1
	}
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if datasetLen <= 0 {
		return domain.Window{Start: 0, End: -1, RowHeight: rowHeight, TopOffset: 0}
	}

	if scrollTop < 0 {
		scrollTop = 0
	}

	visibleCount := int(math.Ceil(float64(viewportHeight) / float64(rowHeight)))
	overscan := int(math.Ceil(float64(visibleCount) * c.overscanFactor))

	rawStart := scrollTop / rowHeight

	start := rawStart - overscan
	if start < 0 {
		start = 0
	}

	end := rawStart + visibleCount + overscan
	if end > datasetLen-1 {
		end = datasetLen - 1
	}

	return domain.Window{
		Start:     start,
		End:       end,
		RowHeight: rowHeight,
		TopOffset: start * rowHeight,
	}
}

// ContentHeight is the total scrollable extent in cells. Reporting
// datasetLen * rowHeight is what keeps scrollbar math correct without
// materializing all rows.
func ContentHeight(datasetLen, rowHeight int) int {
	if rowHeight < 1 {
		rowHeight = 1
	}
	if datasetLen < 0 {
		return 0
	}
	return datasetLen * rowHeight
}

// MaxScrollTop is the largest useful vertical offset for the geometry
func MaxScrollTop(datasetLen, rowHeight, viewportHeight int) int {
	max := ContentHeight(datasetLen, rowHeight) - viewportHeight
	if max < 0 {
		return 0
	}
	return max
}
