package ui

import (
	"time"

	"gridview/internal/domain"
)

// datasetLoadedMsg carries a freshly acquired dataset into the UI
type datasetLoadedMsg struct {
	dataset *domain.Dataset
	columns []domain.Column
}

// datasetErrMsg reports a failed dataset acquisition
type datasetErrMsg struct {
	source string
	err    error
}

// geometrySettledMsg tells the UI a debounced geometry pass has run and
// the window may have moved
type geometrySettledMsg struct{}

// clearStatusMsg clears a transient status bar message
type clearStatusMsg struct{}

// pagerDoneMsg reports that the record pager has exited
type pagerDoneMsg struct {
	err error
}

// tickMsg drives spinner animation while loading
type tickMsg time.Time
