package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Header       lipgloss.Style
	HeaderActive lipgloss.Style
	SortMarker   lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	StatusError  lipgloss.Style
	CursorBg     lipgloss.Style
	RowNumber    lipgloss.Style
	Placeholder  lipgloss.Style
	Help         lipgloss.Style
	NumberCell   lipgloss.Style
	DateCell     lipgloss.Style
	EmptyCell    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		HeaderActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")).
			Underline(true),
		SortMarker:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		CursorBg:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		RowNumber:   lipgloss.NewStyle().Faint(true),
		Placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true),
		Help:       lipgloss.NewStyle().Faint(true),
		NumberCell: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		DateCell:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		EmptyCell:  lipgloss.NewStyle().Faint(true),
	}
}
