package sorting

import "gridview/internal/domain"

// State holds sorting state
type State struct {
	Current domain.SortState
}

// Event types
type SortChangedEvent struct {
	Old domain.SortState
	New domain.SortState
}
