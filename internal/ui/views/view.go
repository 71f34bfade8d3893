package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"gridview/internal/domain"
	"gridview/internal/grid/orchestrator"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	Height     int
	BodyHeight int

	Loaded      bool
	Loading     bool
	DatasetName string
	DatasetLen  int

	Window domain.Window
	Rows   []domain.Record
	Layout orchestrator.ColumnLayout
	Sort   domain.SortState

	ScrollTop  int
	ScrollLeft int
	HeaderLeft int

	Cursor       int // display index of the focused row
	ActiveColumn int // index of the focused column

	ShowRowNumbers bool
	StatusMessage  string
	ErrorMessage   string
	HelpView       string
}

// Renderer handles all view rendering. With wrap enabled, cells longer
// than their column spill onto extra screen lines instead of truncating;
// the measured multi-line height feeds back into the layout engine.
type Renderer struct {
	styles *Styles
	wrap   bool
}

// NewRenderer creates a new renderer
func NewRenderer(wrap bool) *Renderer {
	return &Renderer{styles: NewStyles(), wrap: wrap}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	if !state.Loaded {
		content.WriteString(r.renderPlaceholder(state))
	} else {
		gutter := r.gutterWidth(state)
		gridWidth := state.Width - gutter
		if gridWidth < 1 {
			gridWidth = 1
		}

		content.WriteString(strings.Repeat(" ", gutter))
		content.WriteString(r.renderHeader(state, gridWidth))
		content.WriteString("\n")
		content.WriteString(strings.Repeat(" ", gutter))
		content.WriteString(r.styles.Dim.Render(cutCells(strings.Repeat("─", state.Layout.TotalWidth), state.HeaderLeft, gridWidth)))
		content.WriteString("\n")
		content.WriteString(r.renderBody(state, gutter, gridWidth))
	}

	content.WriteString(r.renderStatus(state))
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpView))

	return content.String()
}

// RowLine renders one record as full-width plain text, before
// horizontal clipping or styling. Also used to measure row height; with
// wrap enabled the result spans one line per wrapped segment.
func (r *Renderer) RowLine(rec domain.Record, cols []domain.Column) string {
	if !r.wrap {
		var b strings.Builder
		for _, col := range cols {
			b.WriteString(padCell(rec.Get(col.ID).Raw, col.Width, rec.Get(col.ID).Kind == domain.KindNumber))
		}
		return b.String()
	}

	lines := make([]string, r.wrappedHeight(rec, cols))
	for line := range lines {
		var b strings.Builder
		for _, col := range cols {
			val := rec.Get(col.ID)
			b.WriteString(padCell(cellSegment(val.Raw, col.Width-1, line), col.Width, val.Kind == domain.KindNumber && line == 0))
		}
		lines[line] = b.String()
	}
	return strings.Join(lines, "\n")
}

// wrappedHeight is how many screen lines a record needs when its longest
// cell wraps at its column width
func (r *Renderer) wrappedHeight(rec domain.Record, cols []domain.Column) int {
	height := 1
	for _, col := range cols {
		if n := len(wrapText(rec.Get(col.ID).Raw, col.Width-1)); n > height {
			height = n
		}
	}
	return height
}

// MeasureRow returns the rendered height of a record in screen lines
func (r *Renderer) MeasureRow(rec domain.Record, cols []domain.Column) int {
	return lipgloss.Height(r.RowLine(rec, cols))
}

// renderTitle renders the title bar with dataset summary
func (r *Renderer) renderTitle(state ViewState) string {
	title := r.styles.Title.Render("gridview")

	var info string
	if state.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		info = fmt.Sprintf("%s Loading", spinner[frame])
	} else if state.Loaded {
		info = fmt.Sprintf("%s — %d rows", state.DatasetName, state.DatasetLen)
		if state.Sort.Active() {
			dir := "▲"
			if state.Sort.Direction == domain.SortDesc {
				dir = "▼"
			}
			info += fmt.Sprintf("  sorted by %s %s", state.Sort.Key, dir)
		}
	}

	if info == "" {
		return title
	}
	return title + "  " + r.styles.Dim.Render(info)
}

// renderHeader renders the fixed header region at its own horizontal
// offset. Cells are clipped before styling so partially visible columns
// keep correct widths.
func (r *Renderer) renderHeader(state ViewState, gridWidth int) string {
	var b strings.Builder
	written := 0
	offset := 0

	for i, col := range state.Layout.Columns {
		cellStart := offset
		offset += col.Width
		if cellStart+col.Width <= state.HeaderLeft {
			continue
		}
		if cellStart >= state.HeaderLeft+gridWidth {
			break
		}

		title := col.Title
		if state.Sort.Active() && state.Sort.Key == col.ID {
			if state.Sort.Direction == domain.SortAsc {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		cell := padCell(title, col.Width, false)

		from := 0
		if cellStart < state.HeaderLeft {
			from = state.HeaderLeft - cellStart
		}
		avail := state.HeaderLeft + gridWidth - cellStart - from
		fragment := cutCells(cell, from, min(col.Width-from, avail))

		style := r.styles.Header
		if i == state.ActiveColumn {
			style = r.styles.HeaderActive
		}
		b.WriteString(style.Render(fragment))
		written += runewidth.StringWidth(fragment)
	}

	if written < gridWidth {
		b.WriteString(strings.Repeat(" ", gridWidth-written))
	}
	return b.String()
}

// renderBody renders the rows of the materialized window whose span
// intersects the visible viewport. Overscan rows outside the viewport
// stay materialized but unrendered.
func (r *Renderer) renderBody(state ViewState, gutter, gridWidth int) string {
	var b strings.Builder
	w := state.Window
	rh := w.RowHeight
	if rh < 1 {
		rh = 1
	}

	rendered := 0
	for i, rec := range state.Rows {
		displayIdx := w.Start + i
		rowTop := displayIdx * rh
		if rowTop+rh <= state.ScrollTop {
			continue
		}
		if rowTop >= state.ScrollTop+state.BodyHeight {
			break
		}

		row := r.renderRow(state, rec, gridWidth, displayIdx == state.Cursor)
		for l, line := range strings.Split(row, "\n") {
			if state.ShowRowNumbers {
				num := strings.Repeat(" ", gutter)
				if l == 0 {
					num = fmt.Sprintf("%*d ", gutter-1, displayIdx+1)
				}
				b.WriteString(r.styles.RowNumber.Render(num))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		rendered++
	}

	// Pad the body area so the status bar stays anchored
	for rendered < state.BodyHeight/rh {
		b.WriteString("\n")
		rendered++
	}
	return b.String()
}

// renderRow renders one record clipped to the body's horizontal offset.
// With wrap enabled the record spans the window's row height, one screen
// line per wrapped segment.
func (r *Renderer) renderRow(state ViewState, rec domain.Record, gridWidth int, focused bool) string {
	rh := 1
	if r.wrap && state.Window.RowHeight > 1 {
		rh = state.Window.RowHeight
	}

	lines := make([]string, rh)
	for l := range lines {
		lines[l] = r.renderRowLine(state, rec, gridWidth, focused, l)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderRowLine(state ViewState, rec domain.Record, gridWidth int, focused bool, line int) string {
	var b strings.Builder
	written := 0
	offset := 0

	for _, col := range state.Layout.Columns {
		cellStart := offset
		offset += col.Width
		if cellStart+col.Width <= state.ScrollLeft {
			continue
		}
		if cellStart >= state.ScrollLeft+gridWidth {
			break
		}

		val := rec.Get(col.ID)
		text := displayText(val)
		if r.wrap {
			text = cellSegment(text, col.Width-1, line)
		}
		cell := padCell(text, col.Width, val.Kind == domain.KindNumber && line == 0)

		from := 0
		if cellStart < state.ScrollLeft {
			from = state.ScrollLeft - cellStart
		}
		avail := state.ScrollLeft + gridWidth - cellStart - from
		fragment := cutCells(cell, from, min(col.Width-from, avail))

		if focused {
			b.WriteString(fragment)
		} else {
			b.WriteString(r.cellStyle(val.Kind).Render(fragment))
		}
		written += runewidth.StringWidth(fragment)
	}

	if written < gridWidth {
		b.WriteString(strings.Repeat(" ", gridWidth-written))
	}

	out := b.String()
	if focused {
		out = r.styles.CursorBg.Render(out)
	}
	return out
}

// renderStatus renders the status line: scroll position plus any
// transient message
func (r *Renderer) renderStatus(state ViewState) string {
	if state.ErrorMessage != "" {
		return r.styles.StatusError.Render(state.ErrorMessage)
	}
	if !state.Loaded {
		if state.StatusMessage != "" {
			return r.styles.Status.Render(state.StatusMessage)
		}
		return ""
	}

	pos := fmt.Sprintf("row %d/%d", state.Cursor+1, state.DatasetLen)
	if state.ScrollLeft > 0 {
		pos += fmt.Sprintf("  col +%d", state.ScrollLeft)
	}
	if state.StatusMessage != "" {
		pos += "  " + state.StatusMessage
	}
	return r.styles.Status.Render(pos)
}

// renderPlaceholder fills the body area in the empty phase
func (r *Renderer) renderPlaceholder(state ViewState) string {
	msg := "No dataset loaded — open a CSV file to begin"
	lines := state.BodyHeight + 2
	if lines < 1 {
		lines = 1
	}
	pad := lines / 2
	var b strings.Builder
	for i := 0; i < pad; i++ {
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Placeholder.Render(msg))
	for i := pad + 1; i < lines; i++ {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (r *Renderer) cellStyle(kind domain.FieldKind) lipgloss.Style {
	switch kind {
	case domain.KindNumber:
		return r.styles.NumberCell
	case domain.KindDate:
		return r.styles.DateCell
	case domain.KindEmpty:
		return r.styles.EmptyCell
	default:
		return lipgloss.NewStyle()
	}
}

// gutterWidth returns the row-number gutter width, 0 when disabled
func (r *Renderer) gutterWidth(state ViewState) int {
	if !state.ShowRowNumbers {
		return 0
	}
	return len(fmt.Sprint(state.DatasetLen)) + 1
}

// displayText is what a cell shows; empty cells render as a dash
func displayText(v domain.FieldValue) string {
	if v.Kind == domain.KindEmpty {
		return "·"
	}
	return v.Raw
}

// padCell truncates and pads text to an exact display width. Numbers are
// right-aligned; everything else left-aligned. One trailing cell of
// padding separates columns.
func padCell(text string, width int, rightAlign bool) string {
	if width < 1 {
		return ""
	}
	inner := width - 1
	if inner < 1 {
		return strings.Repeat(" ", width)
	}
	clipped := runewidth.Truncate(text, inner, "…")
	if rightAlign {
		return runewidth.FillLeft(clipped, inner) + " "
	}
	return runewidth.FillRight(clipped, inner) + " "
}

// wrapText splits text into display-width-sized segments. Splits are by
// width, not word boundaries; grid cells are data, not prose.
func wrapText(text string, width int) []string {
	if width < 1 || runewidth.StringWidth(text) <= width {
		return []string{text}
	}
	var segs []string
	var b strings.Builder
	taken := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if taken+rw > width && taken > 0 {
			segs = append(segs, b.String())
			b.Reset()
			taken = 0
		}
		b.WriteRune(r)
		taken += rw
	}
	if b.Len() > 0 {
		segs = append(segs, b.String())
	}
	return segs
}

// cellSegment returns the line-th wrapped segment of a cell, empty when
// the cell does not extend that far
func cellSegment(text string, width, line int) string {
	segs := wrapText(text, width)
	if line >= len(segs) {
		return ""
	}
	return segs[line]
}

// cutCells returns the substring of s covering display columns
// [from, from+width). Wide runes straddling either boundary are replaced
// with a space so the result has exactly the requested width when s is
// long enough.
func cutCells(s string, from, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	pos := 0
	taken := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if pos+rw <= from {
			pos += rw
			continue
		}
		if taken >= width {
			break
		}
		if pos < from || taken+rw > width {
			// boundary-straddling wide rune
			pad := min(rw, width-taken)
			if pos < from {
				pad = pos + rw - from
			}
			b.WriteString(strings.Repeat(" ", pad))
			taken += pad
		} else {
			b.WriteRune(r)
			taken += rw
		}
		pos += rw
	}
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
