package domain

import "time"

// FieldKind classifies a single cell value
type FieldKind int

const (
	KindEmpty FieldKind = iota
	KindText
	KindNumber
	KindDate
)

// FieldValue is a typed cell value. Exactly one payload is meaningful,
// selected by Kind; Raw always holds the original text for display.
type FieldValue struct {
	Kind FieldKind
	Raw  string
	Num  float64
	Date time.Time
}

// EmptyValue returns the empty field value
func EmptyValue() FieldValue {
	return FieldValue{Kind: KindEmpty}
}

// Record is one row of the dataset: values keyed by column identifier.
// Records are immutable after load; identity is the positional index
// within the dataset.
type Record struct {
	Fields map[string]FieldValue
}

// Get returns the value for a column id, empty when the record has no
// entry for it (ragged source rows are not an error).
func (r Record) Get(columnID string) FieldValue {
	if v, ok := r.Fields[columnID]; ok {
		return v
	}
	return EmptyValue()
}

// Dataset is the fully resident record sequence. It is created wholesale
// on load and replaced wholesale; nothing mutates it in place.
type Dataset struct {
	Name    string
	Records []Record
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Column describes one column's identity and layout constraints.
// Invariant: MinWidth <= Width <= MaxWidth.
type Column struct {
	ID        string
	Title     string
	Width     int
	MinWidth  int
	MaxWidth  int
	Resizable bool
	Sortable  bool
}

// SortDirection is the direction of an active sort
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

// SortState is the active sort column and direction. Key == "" means
// the dataset is shown in its original insertion order.
type SortState struct {
	Key       string
	Direction SortDirection
}

// Active reports whether any column sort is applied
func (s SortState) Active() bool {
	return s.Key != ""
}

// Axis identifies a scroll axis
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// Region identifies one of the two horizontally scrollable regions
type Region int

const (
	RegionHeader Region = iota
	RegionBody
)

// ViewportState holds the live scroll offsets and container dimensions,
// in terminal cells. Written only by its owners (scroll synchronizer for
// offsets, orchestrator for dimensions).
type ViewportState struct {
	ScrollTop  int
	ScrollLeft int
	Width      int
	Height     int
}

// Window is the contiguous slice of rows currently materialized.
// Start and End are inclusive dataset indices; a window with End < Start
// is empty. Derived and recomputed, never persisted.
type Window struct {
	Start     int
	End       int
	RowHeight int
	TopOffset int
}

// Empty reports whether the window materializes no rows
func (w Window) Empty() bool {
	return w.End < w.Start
}

// Count returns the number of materialized rows
func (w Window) Count() int {
	if w.Empty() {
		return 0
	}
	return w.End - w.Start + 1
}
