// Package columns owns column identity, width and resize constraints.
// No other component writes column widths.
package columns

import (
	"gridview/internal/domain"
	"gridview/internal/grid/events"
)

// Service handles column layout
type Service struct {
	state      *State
	bus        events.EventBus
	totalWidth int
}

// NewService creates a new column layout service
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: &State{},
		bus:   bus,
	}
}

// SetColumns replaces the column sequence wholesale, normalizing each
// entry so MinWidth <= Width <= MaxWidth holds from the start
func (s *Service) SetColumns(cols []domain.Column) {
	normalized := make([]domain.Column, len(cols))
	for i, col := range cols {
		if col.MinWidth < 1 {
			col.MinWidth = 1
		}
		if col.MaxWidth < col.MinWidth {
			col.MaxWidth = col.MinWidth
		}
		col.Width = clamp(col.Width, col.MinWidth, col.MaxWidth)
		normalized[i] = col
	}
	s.state.Columns = normalized
	s.recomputeTotal()
}

// Columns returns a copy of the current column sequence
func (s *Service) Columns() []domain.Column {
	out := make([]domain.Column, len(s.state.Columns))
	copy(out, s.state.Columns)
	return out
}

// Column returns the column with the given id
func (s *Service) Column(id string) (domain.Column, bool) {
	for _, col := range s.state.Columns {
		if col.ID == id {
			return col, true
		}
	}
	return domain.Column{}, false
}

// Index returns the position of a column id, -1 when absent
func (s *Service) Index(id string) int {
	for i, col := range s.state.Columns {
		if col.ID == id {
			return i
		}
	}
	return -1
}

// Len returns the number of columns
func (s *Service) Len() int {
	return len(s.state.Columns)
}

// TotalWidth returns the sum of all current column widths
func (s *Service) TotalWidth() int {
	return s.totalWidth
}

// Resize clamps the proposed width into the column's [min, max] range and
// applies it, returning the clamped width. Non-resizable or unknown
// columns are a no-op; out-of-range proposals are clamped, never rejected.
func (s *Service) Resize(columnID string, proposedWidth int) int {
	idx := s.Index(columnID)
	if idx < 0 {
		return 0
	}

	col := s.state.Columns[idx]
	if !col.Resizable {
		return col.Width
	}

	clamped := clamp(proposedWidth, col.MinWidth, col.MaxWidth)
	if clamped == col.Width {
		return clamped
	}

	// Replace the entry rather than mutating it, so snapshots handed out
	// before this resize stay valid
	cols := make([]domain.Column, len(s.state.Columns))
	copy(cols, s.state.Columns)
	cols[idx].Width = clamped
	s.state.Columns = cols
	s.recomputeTotal()

	if s.bus != nil {
		s.bus.Publish(domain.ColumnResizedEvent{ColumnID: columnID, Width: clamped})
	}
	return clamped
}

// ResizeBy applies a width delta to a column, clamping the result
func (s *Service) ResizeBy(columnID string, deltaX int) int {
	col, ok := s.Column(columnID)
	if !ok {
		return 0
	}
	return s.Resize(columnID, col.Width+deltaX)
}

// OffsetOf returns the horizontal cell offset of a column's left edge
// within the content area
func (s *Service) OffsetOf(columnID string) int {
	offset := 0
	for _, col := range s.state.Columns {
		if col.ID == columnID {
			return offset
		}
		offset += col.Width
	}
	return offset
}

func (s *Service) recomputeTotal() {
	total := 0
	for _, col := range s.state.Columns {
		total += col.Width
	}
	s.totalWidth = total
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
