// Package orchestrator composes the grid services into one engine: it
// owns the dataset, phase, sort and viewport state, and feeds the sorted
// order and visible window to the rendering surface.
package orchestrator

import (
	"log"
	"sync"

	"gridview/internal/domain"
	"gridview/internal/eventbus"
	"gridview/internal/grid/columns"
	"gridview/internal/grid/events"
	"gridview/internal/grid/geomwatch"
	"gridview/internal/grid/rowmetrics"
	"gridview/internal/grid/scrollsync"
	"gridview/internal/grid/sorting"
	"gridview/internal/grid/viewport"
)

// Orchestrator wires the grid services together and owns the state they
// do not. Components mutate only what they own: the column service
// writes widths, the scroll synchronizer writes offsets, and everything
// else is written here.
type Orchestrator struct {
	mu sync.Mutex

	bus     eventbus.EventBus
	gridBus *events.Bus
	opts    Options

	cols    *columns.Service
	metrics *rowmetrics.Estimator
	calc    *viewport.Calculator
	sorter  *sorting.Service
	scroll  *scrollsync.Service
	geom    *geomwatch.Service

	phase   Phase
	dataset *domain.Dataset
	order   []int // display order as a permutation of dataset indices
	view    domain.ViewportState
	window  domain.Window

	measurer RowMeasurer
}

// New creates a grid orchestrator
func New(bus eventbus.EventBus, opts Options) *Orchestrator {
	if opts.DefaultRowHeight < 1 {
		opts.DefaultRowHeight = 1
	}

	gridBus := events.NewBus()
	o := &Orchestrator{
		bus:     bus,
		gridBus: gridBus,
		opts:    opts,
		cols:    columns.NewService(gridBus),
		metrics: rowmetrics.NewEstimator(opts.DefaultRowHeight, opts.HeightTolerance),
		calc:    viewport.NewCalculator(opts.OverscanFactor),
		sorter:  sorting.NewService(gridBus),
		scroll:  scrollsync.NewService(gridBus),
		geom:    geomwatch.NewService(gridBus, opts.Debounce),
		phase:   PhaseEmpty,
		window:  domain.Window{Start: 0, End: -1, RowHeight: opts.DefaultRowHeight},
	}

	o.sorter.SetSortableFunction(func(id string) bool {
		col, ok := o.cols.Column(id)
		return ok && col.Sortable
	})

	o.scroll.SetBounds(
		func() int { return viewport.MaxScrollTop(o.datasetLen(), o.metrics.Estimate(), o.view.Height) },
		func() int {
			max := o.cols.TotalWidth() - o.view.Width
			if max < 0 {
				return 0
			}
			return max
		},
	)
	// The handler receives the exact offset just stored, so the window
	// recompute never sees a stale scrollTop.
	o.scroll.SetVerticalHandler(func(scrollTop int) {
		o.view.ScrollTop = scrollTop
		o.recomputeWindow()
	})

	o.geom.SetSettledHandler(o.onGeometrySettled)

	// Forward resize notifications from the column service to the app bus
	gridBus.Subscribe("domain.ColumnResizedEvent", func(e interface{}) {
		if ev, ok := e.(domain.ColumnResizedEvent); ok && o.bus != nil {
			o.bus.Publish(ev)
		}
	})

	return o
}

// GridBus exposes the service-level bus for host subscriptions
func (o *Orchestrator) GridBus() *events.Bus {
	return o.gridBus
}

// Monitor returns the geometry change monitor so a host can attach its
// observation source
func (o *Orchestrator) Monitor() *geomwatch.Service {
	return o.geom
}

// SetRowMeasurer supplies the host's row measurement capability
func (o *Orchestrator) SetRowMeasurer(fn RowMeasurer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.measurer = fn
}

// Phase returns the current lifecycle phase
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// LoadDataset replaces the dataset and column set wholesale. Scroll
// offsets, sort state and the height estimate are reset: nothing from a
// previous, differently-sized dataset survives. A zero-length dataset
// transitions (back) to the empty phase.
func (o *Orchestrator) LoadDataset(dataset *domain.Dataset, cols []domain.Column) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.dataset = dataset
	o.cols.SetColumns(cols)
	o.sorter.Reset()
	o.scroll.Reset()
	o.view.ScrollTop = 0
	o.view.ScrollLeft = 0
	o.metrics.Reset(o.opts.DefaultRowHeight)
	o.order = nil

	if dataset.Len() == 0 || len(cols) == 0 {
		o.phase = PhaseEmpty
		o.window = domain.Window{Start: 0, End: -1, RowHeight: o.metrics.Estimate()}
	} else {
		o.phase = PhaseLoaded
		o.rebuildOrder()
		o.recomputeWindow()
	}

	name := ""
	records := 0
	if dataset != nil {
		name = dataset.Name
		records = dataset.Len()
	}
	log.Printf("Orchestrator: dataset replaced (%s, %d records), phase=%s", name, records, o.phase)
	if o.bus != nil {
		o.bus.Publish(eventbus.DatasetReplacedEvent{Name: name, Records: records})
	}
}

// ActivateColumn applies the sort toggle for a header activation.
// Non-sortable columns are silently ignored.
func (o *Orchestrator) ActivateColumn(columnID string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.phase != PhaseLoaded {
		return
	}

	old := o.sorter.Current()
	if !o.sorter.Activate(columnID) {
		return
	}

	o.rebuildOrder()
	o.recomputeWindow()

	if o.bus != nil {
		o.bus.Publish(eventbus.SortChangedEvent{Old: old, New: o.sorter.Current()})
	}
}

// ResizeColumn applies a width delta from a resize gesture, returning
// the clamped resulting width. Offsets are re-clamped afterwards so a
// narrower content area cannot leave the regions over-scrolled.
func (o *Orchestrator) ResizeColumn(columnID string, deltaX int) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.phase != PhaseLoaded {
		return 0
	}

	width := o.cols.ResizeBy(columnID, deltaX)
	o.scroll.Reclamp()
	o.view.ScrollLeft = o.scroll.ScrollLeft()
	return width
}

// Scroll applies a scroll notification on an axis. Vertical scrolling is
// exclusive to the body; horizontal notifications default to the body
// region (use ScrollRegion for header-originated ones).
func (o *Orchestrator) Scroll(axis domain.Axis, offset int) {
	if axis == domain.AxisVertical {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.phase != PhaseLoaded {
			return
		}
		o.scroll.ScrollVertical(offset)
		return
	}
	o.ScrollRegion(domain.RegionBody, offset)
}

// ScrollBy applies a relative scroll on an axis
func (o *Orchestrator) ScrollBy(axis domain.Axis, delta int) {
	o.mu.Lock()
	top, left := o.scroll.ScrollTop(), o.scroll.ScrollLeft()
	o.mu.Unlock()

	if axis == domain.AxisVertical {
		o.Scroll(domain.AxisVertical, top+delta)
	} else {
		o.Scroll(domain.AxisHorizontal, left+delta)
	}
}

// ScrollRegion applies a horizontal scroll notification originating from
// one region; the synchronizer mirrors it to the other
func (o *Orchestrator) ScrollRegion(region domain.Region, offset int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.phase != PhaseLoaded {
		return
	}
	o.scroll.ScrollHorizontal(region, offset)
	o.view.ScrollLeft = o.scroll.ScrollLeft()
}

// GeometryChanged notifies the monitor of new container dimensions.
// Recomputation is debounced; bursts settle into a single pass.
func (o *Orchestrator) GeometryChanged(width, height int) {
	o.geom.NotifyResize(width, height)
}

// StructureChanged notifies the monitor of a rendered-surface mutation
func (o *Orchestrator) StructureChanged(kind geomwatch.MutationKind) {
	o.geom.NotifyMutation(kind)
}

// FlushGeometry forces any pending geometry settle to run now
func (o *Orchestrator) FlushGeometry() {
	o.geom.Flush()
}

// VisibleWindow returns the materialized row slice for the rendering
// surface. Rows are in display order, copied out of the grid state.
func (o *Orchestrator) VisibleWindow() VisibleWindow {
	o.mu.Lock()
	defer o.mu.Unlock()

	w := o.window
	vw := VisibleWindow{
		Start:     w.Start,
		End:       w.End,
		TopOffset: w.TopOffset,
		RowHeight: w.RowHeight,
	}
	if o.phase != PhaseLoaded || w.Empty() {
		return vw
	}

	vw.Rows = make([]domain.Record, 0, w.Count())
	vw.Indices = make([]int, 0, w.Count())
	for i := w.Start; i <= w.End && i < len(o.order); i++ {
		idx := o.order[i]
		vw.Rows = append(vw.Rows, o.dataset.Records[idx])
		vw.Indices = append(vw.Indices, idx)
	}
	return vw
}

// Record returns the record at a display position
func (o *Orchestrator) Record(displayIndex int) (domain.Record, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.phase != PhaseLoaded || displayIndex < 0 || displayIndex >= len(o.order) {
		return domain.Record{}, false
	}
	return o.dataset.Records[o.order[displayIndex]], true
}

// ColumnLayout returns the read-only column view
func (o *Orchestrator) ColumnLayout() ColumnLayout {
	o.mu.Lock()
	defer o.mu.Unlock()
	return ColumnLayout{
		Columns:    o.cols.Columns(),
		TotalWidth: o.cols.TotalWidth(),
	}
}

// SortState returns the current sort state
func (o *Orchestrator) SortState() domain.SortState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sorter.Current()
}

// ViewportState returns a snapshot of the live scroll/geometry state
func (o *Orchestrator) ViewportState() domain.ViewportState {
	o.mu.Lock()
	defer o.mu.Unlock()
	v := o.view
	v.ScrollTop = o.scroll.ScrollTop()
	v.ScrollLeft = o.scroll.ScrollLeft()
	return v
}

// HeaderLeft returns the header region's horizontal offset
func (o *Orchestrator) HeaderLeft() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.scroll.RegionLeft(domain.RegionHeader)
}

// ContentHeight returns the total scrollable extent in cells
func (o *Orchestrator) ContentHeight() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return viewport.ContentHeight(o.datasetLen(), o.metrics.Estimate())
}

// RowHeight returns the current effective row height estimate
func (o *Orchestrator) RowHeight() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.metrics.Estimate()
}

// DatasetLen returns the record count of the current dataset
func (o *Orchestrator) DatasetLen() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.datasetLen()
}

// onGeometrySettled runs once a geometry change burst settles: apply the
// latest dimensions, refine the row height from a rendered sample, then
// recompute the window. Order matters: measurement feeds the calculator.
func (o *Orchestrator) onGeometrySettled(width, height int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if width > 0 {
		o.view.Width = width
	}
	if height > 0 {
		o.view.Height = height
	}

	if o.phase != PhaseLoaded {
		return
	}

	if o.measurer != nil && !o.window.Empty() && o.window.Start < len(o.order) {
		sample := o.dataset.Records[o.order[o.window.Start]]
		if changed := o.metrics.Measure(o.measurer(sample, o.cols.Columns())); changed {
			log.Printf("Orchestrator: row height re-measured to %d", o.metrics.Estimate())
		}
	}

	o.scroll.Reclamp()
	o.view.ScrollTop = o.scroll.ScrollTop()
	o.view.ScrollLeft = o.scroll.ScrollLeft()
	o.recomputeWindow()

	if o.bus != nil {
		o.bus.Publish(eventbus.GeometryChangedEvent{Width: width, Height: height})
	}
}

// rebuildOrder refreshes the cached display permutation from the sorter
func (o *Orchestrator) rebuildOrder() {
	o.order = o.sorter.Order(o.dataset, o.sorter.Current())
}

func (o *Orchestrator) recomputeWindow() {
	o.window = o.calc.ComputeWindow(
		o.scroll.ScrollTop(),
		o.view.Height,
		o.metrics.Estimate(),
		o.datasetLen(),
	)
	if o.gridBus != nil {
		o.gridBus.Publish(domain.WindowRecomputedEvent{Window: o.window})
	}
}

func (o *Orchestrator) datasetLen() int {
	return o.dataset.Len()
}
