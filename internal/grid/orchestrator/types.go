package orchestrator

import (
	"time"

	"gridview/internal/domain"
)

// Phase is the orchestrator's high-level lifecycle state
type Phase int

const (
	// PhaseEmpty means no dataset or columns are present; the surface
	// renders a placeholder and no window computation runs
	PhaseEmpty Phase = iota
	// PhaseLoaded is normal operation with all components active
	PhaseLoaded
)

// String returns the phase name
func (p Phase) String() string {
	if p == PhaseLoaded {
		return "loaded"
	}
	return "empty"
}

// Options are the layout engine's tuning knobs
type Options struct {
	OverscanFactor   float64
	Debounce         time.Duration
	DefaultRowHeight int
	HeightTolerance  int
}

// DefaultOptions returns the stock tuning values
func DefaultOptions() Options {
	return Options{
		OverscanFactor:   0.5,
		Debounce:         50 * time.Millisecond,
		DefaultRowHeight: 1,
		HeightTolerance:  0,
	}
}

// VisibleWindow is the materialized row slice handed to the rendering
// surface: the window geometry plus the records it covers, in display
// order. It is a copy; mutating it does not affect grid state.
type VisibleWindow struct {
	Start     int
	End       int
	TopOffset int
	RowHeight int
	Rows      []domain.Record
	Indices   []int // dataset indices backing each row, parallel to Rows
}

// ColumnLayout is the rendering surface's read-only view of the columns
type ColumnLayout struct {
	Columns    []domain.Column
	TotalWidth int
}

// RowMeasurer reports the rendered height, in screen lines, of one
// concrete record. Supplied by the host so the estimator can refine its
// default from a rendered sample.
type RowMeasurer func(rec domain.Record, cols []domain.Column) int
