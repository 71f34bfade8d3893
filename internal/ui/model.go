package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gridview/internal/config"
	"gridview/internal/csvsource"
	"gridview/internal/domain"
	"gridview/internal/eventbus"
	"gridview/internal/grid/geomwatch"
	"gridview/internal/grid/orchestrator"
	"gridview/internal/ui/views"
)

// reservedLines is the chrome around the body: title, header row,
// separator, status bar and help bar
const reservedLines = 5

// wheelStep is how many cells one wheel notch scrolls
const wheelStep = 3

// colStep is how many cells a horizontal scroll key moves
const colStep = 4

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	orch   *orchestrator.Orchestrator

	width  int
	height int

	keys     keyMap
	help     help.Model
	renderer *views.Renderer
	pager    *PagerOps

	cursor    int // display index of the focused row
	activeCol int
	status    string
	errMsg    string
	loading   bool

	csvPath   string
	delimiter rune

	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, orch *orchestrator.Orchestrator, csvPath string, delimiter rune) *Model {
	m := &Model{
		bus:       bus,
		config:    cfg,
		orch:      orch,
		keys:      newKeyMap(),
		help:      help.New(),
		renderer:  views.NewRenderer(cfg.UISettings.WrapCells),
		pager:     NewPagerOps(),
		csvPath:   csvPath,
		delimiter: delimiter,
	}

	// The renderer is the measurement capability: a sample row's
	// rendered height refines the estimator after geometry settles.
	orch.SetRowMeasurer(func(rec domain.Record, cols []domain.Column) int {
		return m.renderer.MeasureRow(rec, cols)
	})

	return m
}

// SetProgram sets the program reference for terminal management and
// routes debounced geometry settles back into the message loop
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)

	m.orch.GridBus().Subscribe("geomwatch.SettledEvent", func(interface{}) {
		if m.program != nil {
			m.program.Send(geometrySettledMsg{})
		}
	})
}

// Init returns the initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.csvPath != "" {
		m.loading = true
		cmds = append(cmds, m.loadDataset())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.orch.GeometryChanged(m.gridWidth(), m.bodyHeight())

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case geometrySettledMsg:
		// Window already recomputed; repaint with the new geometry
		m.clampCursor()

	case datasetLoadedMsg:
		m.loading = false
		m.errMsg = ""
		m.orch.LoadDataset(msg.dataset, msg.columns)
		m.cursor = 0
		m.activeCol = 0
		m.applySavedWidths()
		// The rendered structure just changed wholesale; let the monitor
		// re-measure and settle
		m.orch.StructureChanged(geomwatch.MutationStructure)
		m.status = fmt.Sprintf("Loaded %s (%d rows)", msg.dataset.Name, msg.dataset.Len())
		return m, m.clearStatusLater()

	case datasetErrMsg:
		m.loading = false
		m.errMsg = fmt.Sprintf("Failed to load %s: %v", msg.source, msg.err)

	case pagerDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Pager error: %v", msg.err)
		}

	case clearStatusMsg:
		m.status = ""

	case tickMsg:
		if m.loading {
			return m, m.tick()
		}
	}

	return m, nil
}

// handleKey processes key input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.visibleRows())

	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.visibleRows())

	case key.Matches(msg, m.keys.Top):
		m.moveCursorTo(0)

	case key.Matches(msg, m.keys.Bottom):
		m.moveCursorTo(m.orch.DatasetLen() - 1)

	case key.Matches(msg, m.keys.Left):
		m.orch.ScrollBy(domain.AxisHorizontal, -colStep)

	case key.Matches(msg, m.keys.Right):
		m.orch.ScrollBy(domain.AxisHorizontal, colStep)

	case key.Matches(msg, m.keys.HeaderLeft):
		m.orch.ScrollRegion(domain.RegionHeader, m.orch.HeaderLeft()-colStep)

	case key.Matches(msg, m.keys.HeaderRight):
		m.orch.ScrollRegion(domain.RegionHeader, m.orch.HeaderLeft()+colStep)

	case key.Matches(msg, m.keys.NextCol):
		m.moveActiveColumn(1)

	case key.Matches(msg, m.keys.PrevCol):
		m.moveActiveColumn(-1)

	case key.Matches(msg, m.keys.Sort):
		if id := m.activeColumnID(); id != "" {
			m.orch.ActivateColumn(id)
		}

	case key.Matches(msg, m.keys.Narrow):
		m.resizeActive(-2)

	case key.Matches(msg, m.keys.Widen):
		m.resizeActive(2)

	case key.Matches(msg, m.keys.Inspect):
		return m, m.inspectRecord()

	case key.Matches(msg, m.keys.Reload):
		if m.csvPath != "" {
			m.loading = true
			return m, tea.Batch(m.loadDataset(), m.tick())
		}
	}

	return m, nil
}

// handleMouse maps wheel events onto scroll notifications
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.orch.ScrollBy(domain.AxisVertical, -wheelStep)
		m.followScroll()
	case tea.MouseButtonWheelDown:
		m.orch.ScrollBy(domain.AxisVertical, wheelStep)
		m.followScroll()
	case tea.MouseButtonWheelLeft:
		m.orch.ScrollBy(domain.AxisHorizontal, -wheelStep)
	case tea.MouseButtonWheelRight:
		m.orch.ScrollBy(domain.AxisHorizontal, wheelStep)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	vw := m.orch.VisibleWindow()
	vp := m.orch.ViewportState()

	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		BodyHeight:     m.bodyHeight(),
		Loaded:         m.orch.Phase() == orchestrator.PhaseLoaded,
		Loading:        m.loading,
		DatasetName:    m.datasetName(),
		DatasetLen:     m.orch.DatasetLen(),
		Window:         domain.Window{Start: vw.Start, End: vw.End, RowHeight: vw.RowHeight, TopOffset: vw.TopOffset},
		Rows:           vw.Rows,
		Layout:         m.orch.ColumnLayout(),
		Sort:           m.orch.SortState(),
		ScrollTop:      vp.ScrollTop,
		ScrollLeft:     vp.ScrollLeft,
		HeaderLeft:     m.orch.HeaderLeft(),
		Cursor:         m.cursor,
		ActiveColumn:   m.activeCol,
		ShowRowNumbers: m.config.UISettings.ShowRowNumber,
		StatusMessage:  m.status,
		ErrorMessage:   m.errMsg,
		HelpView:       m.help.View(m.keys),
	}
	return m.renderer.Render(state)
}

// moveCursor moves the focused row and scrolls to keep it visible
func (m *Model) moveCursor(delta int) {
	m.moveCursorTo(m.cursor + delta)
}

func (m *Model) moveCursorTo(target int) {
	total := m.orch.DatasetLen()
	if total == 0 {
		m.cursor = 0
		return
	}
	if target < 0 {
		target = 0
	}
	if target > total-1 {
		target = total - 1
	}
	m.cursor = target
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls vertically so the cursor row's span
// intersects the viewport
func (m *Model) ensureCursorVisible() {
	rh := m.orch.RowHeight()
	vp := m.orch.ViewportState()
	top := m.cursor * rh

	if top < vp.ScrollTop {
		m.orch.Scroll(domain.AxisVertical, top)
	} else if top+rh > vp.ScrollTop+m.bodyHeight() {
		m.orch.Scroll(domain.AxisVertical, top+rh-m.bodyHeight())
	}
}

// followScroll drags the cursor along when wheel scrolling moves the
// viewport away from it
func (m *Model) followScroll() {
	rh := m.orch.RowHeight()
	vp := m.orch.ViewportState()
	first := vp.ScrollTop / rh
	last := (vp.ScrollTop + m.bodyHeight() - 1) / rh

	if m.cursor < first {
		m.cursor = first
	} else if m.cursor > last {
		m.cursor = last
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if total := m.orch.DatasetLen(); total > 0 && m.cursor > total-1 {
		m.cursor = total - 1
	}
}

// moveActiveColumn shifts column focus and keeps it horizontally visible
func (m *Model) moveActiveColumn(delta int) {
	layout := m.orch.ColumnLayout()
	n := len(layout.Columns)
	if n == 0 {
		return
	}
	m.activeCol = ((m.activeCol+delta)%n + n) % n

	// Scroll the active column's span into view
	left := 0
	for i := 0; i < m.activeCol; i++ {
		left += layout.Columns[i].Width
	}
	col := layout.Columns[m.activeCol]
	vp := m.orch.ViewportState()

	if left < vp.ScrollLeft {
		m.orch.Scroll(domain.AxisHorizontal, left)
	} else if left+col.Width > vp.ScrollLeft+m.gridWidth() {
		m.orch.Scroll(domain.AxisHorizontal, left+col.Width-m.gridWidth())
	}
}

func (m *Model) resizeActive(delta int) {
	id := m.activeColumnID()
	if id == "" {
		return
	}
	width := m.orch.ResizeColumn(id, delta)
	m.rememberWidth(id, width)
}

func (m *Model) activeColumnID() string {
	layout := m.orch.ColumnLayout()
	if m.activeCol < 0 || m.activeCol >= len(layout.Columns) {
		return ""
	}
	return layout.Columns[m.activeCol].ID
}

// applySavedWidths restores persisted column widths after a load
func (m *Model) applySavedWidths() {
	if !m.config.UISettings.SaveWidths {
		return
	}
	for _, col := range m.orch.ColumnLayout().Columns {
		if w, ok := m.config.ColumnWidths[col.ID]; ok {
			m.orch.ResizeColumn(col.ID, w-col.Width)
		}
	}
}

// rememberWidth records a resize in the config and announces it so the
// app can persist the change
func (m *Model) rememberWidth(id string, width int) {
	if !m.config.UISettings.SaveWidths {
		return
	}
	if m.config.ColumnWidths == nil {
		m.config.ColumnWidths = make(map[string]int)
	}
	m.config.ColumnWidths[id] = width
	if m.bus != nil {
		widths := make(map[string]int, len(m.config.ColumnWidths))
		for k, v := range m.config.ColumnWidths {
			widths[k] = v
		}
		m.bus.Publish(eventbus.ConfigChangedEvent{ColumnWidths: widths})
	}
}

// inspectRecord shows the focused record in the ov pager
func (m *Model) inspectRecord() tea.Cmd {
	rec, ok := m.orch.Record(m.cursor)
	if !ok {
		return nil
	}
	cols := m.orch.ColumnLayout().Columns
	rowNumber := m.cursor + 1

	return func() tea.Msg {
		err := m.pager.ShowRecord(rec, cols, rowNumber)
		return pagerDoneMsg{err: err}
	}
}

// loadDataset acquires the CSV asynchronously; the core only sees the
// completed dataset
func (m *Model) loadDataset() tea.Cmd {
	path := m.csvPath
	opts := csvsource.Options{
		Delimiter: m.delimiter,
		MinWidth:  m.config.Tuning.MinColumnWidth,
		MaxWidth:  m.config.Tuning.MaxColumnWidth,
	}

	return func() tea.Msg {
		ds, cols, err := csvsource.Load(path, opts)
		if err != nil {
			log.Printf("Dataset load failed: %v", err)
			if m.bus != nil {
				m.bus.Publish(eventbus.DatasetLoadFailedEvent{Source: path, Err: err})
			}
			return datasetErrMsg{source: path, err: err}
		}
		if m.bus != nil {
			m.bus.Publish(eventbus.DatasetLoadedEvent{Dataset: ds, Columns: cols})
		}
		return datasetLoadedMsg{dataset: ds, columns: cols}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) clearStatusLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// bodyHeight is the vertical cell budget for rows
func (m *Model) bodyHeight() int {
	h := m.height - reservedLines
	if h < 1 {
		h = 1
	}
	return h
}

// gridWidth is the horizontal cell budget for the scrolling regions,
// excluding the row-number gutter
func (m *Model) gridWidth() int {
	w := m.width
	if m.config.UISettings.ShowRowNumber {
		w -= len(fmt.Sprint(m.orch.DatasetLen())) + 1
	}
	if w < 1 {
		w = 1
	}
	return w
}

// visibleRows is how many whole rows fit in the body
func (m *Model) visibleRows() int {
	n := m.bodyHeight() / m.orch.RowHeight()
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) datasetName() string {
	if m.csvPath == "" {
		return ""
	}
	return m.csvPath
}
