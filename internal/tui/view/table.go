package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableContent contains table rows and cell styles.
type TableContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

// TableViewState holds data needed to render the tee sheet.
type TableViewState struct {
	InnerW       int
	GridH        int
	Headers      []string
	HeaderStyles []lipgloss.Style
	Content      TableContent
	BorderStyle  lipgloss.Style
	Bg           lipgloss.Color
	Render       bool
}

// TableChromeLines is the number of lines the table border and header take.
const TableChromeLines = 4

// RenderTable renders the visible rows of the tee sheet as a lipgloss table.
// Callers pass only the rows that fit in GridH.
func RenderTable(state TableViewState) string {
	if !state.Render || state.GridH <= 0 {
		return ""
	}

	t := table.New().
		Headers(state.Headers...).
		Width(max(0, state.InnerW-2)).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(state.BorderStyle).
		Rows(state.Content.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col >= 0 && col < len(state.HeaderStyles) {
					return state.HeaderStyles[col]
				}
				return lipgloss.NewStyle()
			}
			if row < 0 || row >= len(state.Content.CellStyles) || col < 0 || col >= len(state.Content.CellStyles[row]) {
				return lipgloss.NewStyle()
			}
			return state.Content.CellStyles[row][col]
		})

	return PlaceBox(state.InnerW, state.GridH, lipgloss.Top, t.Render(), state.Bg)
}

// VisibleRange returns the window [start, end) of total rows that keeps
// cursor visible when at most height rows fit, starting from offset.
func VisibleRange(total, height, cursor, offset int) (int, int) {
	if height <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	offset = min(max(offset, 0), total-height)
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	return offset, offset + height
}
