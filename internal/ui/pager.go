package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"gridview/internal/domain"
)

// PagerOps shows record details in the ov pager, borrowing the terminal
// from the running Bubble Tea program
type PagerOps struct {
	program *tea.Program
}

// NewPagerOps creates a new PagerOps instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(prog *tea.Program) {
	p.program = prog
}

// ShowRecord displays one record's full field list in the pager
func (p *PagerOps) ShowRecord(rec domain.Record, cols []domain.Column, rowNumber int) error {
	return p.show(buildRecordDetail(rec, cols, rowNumber))
}

// show runs ov over the given content and restores the terminal after
func (p *PagerOps) show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Give ov time to fully exit before the program repaints
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// buildRecordDetail renders a record as a field-per-line report
func buildRecordDetail(rec domain.Record, cols []domain.Column, rowNumber int) string {
	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Render(fmt.Sprintf("Record %d", rowNumber))
	b.WriteString(title)
	b.WriteString("\n\n")

	nameWidth := 0
	for _, col := range cols {
		if len(col.Title) > nameWidth {
			nameWidth = len(col.Title)
		}
	}

	for _, col := range cols {
		val := rec.Get(col.ID)
		b.WriteString(fmt.Sprintf("%-*s  %s", nameWidth, col.Title, val.Raw))
		switch val.Kind {
		case domain.KindNumber:
			b.WriteString("  (number)")
		case domain.KindDate:
			b.WriteString("  (date)")
		case domain.KindEmpty:
			b.WriteString("  (empty)")
		}
		b.WriteString("\n")
	}

	b.WriteString("\nPress q to close")
	return b.String()
}
