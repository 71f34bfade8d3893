package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDatasetLoaded     EventType = "DatasetLoaded"
	EventDatasetLoadFailed EventType = "DatasetLoadFailed"
	EventDatasetReplaced   EventType = "DatasetReplaced"
	EventSortChanged       EventType = "SortChanged"
	EventColumnResized     EventType = "ColumnResized"
	EventWindowRecomputed  EventType = "WindowRecomputed"
	EventGeometryChanged   EventType = "GeometryChanged"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigChanged     EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DatasetLoadedEvent is emitted when a dataset has been fully acquired
type DatasetLoadedEvent struct {
	Dataset *Dataset
	Columns []Column
}

func (e DatasetLoadedEvent) Type() EventType { return EventDatasetLoaded }

// DatasetLoadFailedEvent is emitted when dataset acquisition fails
type DatasetLoadFailedEvent struct {
	Source string
	Err    error
}

func (e DatasetLoadFailedEvent) Type() EventType { return EventDatasetLoadFailed }

// DatasetReplacedEvent is emitted after the orchestrator swaps datasets
type DatasetReplacedEvent struct {
	Name    string
	Records int
}

func (e DatasetReplacedEvent) Type() EventType { return EventDatasetReplaced }

// SortChangedEvent is emitted when the sort state transitions
type SortChangedEvent struct {
	Old SortState
	New SortState
}

func (e SortChangedEvent) Type() EventType { return EventSortChanged }

// ColumnResizedEvent is emitted when a column width changes
type ColumnResizedEvent struct {
	ColumnID string
	Width    int
}

func (e ColumnResizedEvent) Type() EventType { return EventColumnResized }

// WindowRecomputedEvent is emitted after the visible window is recalculated
type WindowRecomputedEvent struct {
	Window Window
}

func (e WindowRecomputedEvent) Type() EventType { return EventWindowRecomputed }

// GeometryChangedEvent is emitted when the container dimensions change
type GeometryChangedEvent struct {
	Width  int
	Height int
}

func (e GeometryChangedEvent) Type() EventType { return EventGeometryChanged }

// ConfigLoadedEvent is emitted when configuration has been read
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigChangedEvent is emitted when a persisted setting changes at runtime
type ConfigChangedEvent struct {
	ColumnWidths map[string]int
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
