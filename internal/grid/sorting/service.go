// Package sorting derives a sorted view of the dataset without mutating
// it. The derived order is an index permutation; the third toggle state
// is the identity permutation (original insertion order).
package sorting

import (
	"sort"
	"strings"

	"gridview/internal/domain"
	"gridview/internal/grid/events"
)

// Service handles sorting logic
type Service struct {
	state      *State
	bus        events.EventBus
	sortableFn func(string) bool // whether a column id may be activated
}

// NewService creates a new sorting service
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: &State{},
		bus:   bus,
	}
}

// SetSortableFunction sets the predicate used to gate column activation
func (s *Service) SetSortableFunction(fn func(string) bool) {
	s.sortableFn = fn
}

// Current returns the current sort state
func (s *Service) Current() domain.SortState {
	return s.state.Current
}

// Activate applies the 3-state toggle for a column activation and
// reports whether the state changed. Repeated activation of the same
// column cycles ascending -> descending -> unsorted; activating a
// different column always starts at ascending. Activation of a
// non-sortable column is a no-op.
func (s *Service) Activate(columnID string) bool {
	if columnID == "" {
		return false
	}
	if s.sortableFn != nil && !s.sortableFn(columnID) {
		return false
	}

	old := s.state.Current
	var next domain.SortState

	switch {
	case old.Key != columnID:
		next = domain.SortState{Key: columnID, Direction: domain.SortAsc}
	case old.Direction == domain.SortAsc:
		next = domain.SortState{Key: columnID, Direction: domain.SortDesc}
	default:
		next = domain.SortState{} // back to insertion order
	}

	s.state.Current = next
	if s.bus != nil {
		s.bus.Publish(SortChangedEvent{Old: old, New: next})
	}
	return true
}

// Reset clears the sort state without publishing. Called when the
// dataset is replaced.
func (s *Service) Reset() {
	s.state.Current = domain.SortState{}
}

// Order returns the display order of the dataset under the given sort
// state as a permutation of record indices. The input dataset is never
// reordered; with no active sort the identity order is returned. The
// sort is stable, so ties keep their original relative order.
func (s *Service) Order(dataset *domain.Dataset, state domain.SortState) []int {
	order := make([]int, dataset.Len())
	for i := range order {
		order[i] = i
	}
	if !state.Active() || dataset.Len() == 0 {
		return order
	}

	records := dataset.Records
	key := state.Key
	desc := state.Direction == domain.SortDesc

	sort.SliceStable(order, func(i, j int) bool {
		cmp := compareValues(records[order[i]].Get(key), records[order[j]].Get(key))
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return order
}

// compareValues applies a consistent type-aware ordering: numbers
// numerically, dates chronologically, text case-insensitively. Empty
// values sort after everything else; mixed kinds fall back to the kind
// rank so the comparator stays total.
func compareValues(a, b domain.FieldValue) int {
	if a.Kind == domain.KindEmpty || b.Kind == domain.KindEmpty {
		switch {
		case a.Kind == b.Kind:
			return 0
		case a.Kind == domain.KindEmpty:
			return 1
		default:
			return -1
		}
	}

	if a.Kind != b.Kind {
		return kindRank(a.Kind) - kindRank(b.Kind)
	}

	switch a.Kind {
	case domain.KindNumber:
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	case domain.KindDate:
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	default:
		return strings.Compare(strings.ToLower(a.Raw), strings.ToLower(b.Raw))
	}
}

func kindRank(k domain.FieldKind) int {
	switch k {
	case domain.KindNumber:
		return 0
	case domain.KindDate:
		return 1
	default:
		return 2
	}
}
