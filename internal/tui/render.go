package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"

	"github.com/jask/calbudget/internal/calendar"
)

const (
	defaultWidth    = 84
	minCellWidth    = 8
	maxEntryLines   = 4
	cellBorderWidth = 2
)

// money formats an amount the way the grid and the total show it: $-12.50.
func money(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}

func (a *App) cellWidth() int {
	w := a.width
	if w <= 0 {
		w = defaultWidth
	}
	return max(minCellWidth, w/7-cellBorderWidth)
}

func (a *App) renderHeader() string {
	width := 7 * (a.cellWidth() + cellBorderWidth)
	title := titleStyle.
		Background(monthAccent(a.month.Month)).
		Width(width).
		Align(lipgloss.Center).
		Render("‹  " + a.month.String() + "  ›")

	netStyle := netIncomeStyle
	if a.net.IsNegative() {
		netStyle = netExpenseStyle
	}
	net := lipgloss.PlaceHorizontal(width, lipgloss.Center,
		netStyle.Render("Net Total: "+money(a.currency, a.net)))
	return net + "\n" + title
}

func (a *App) renderWeekdays() string {
	w := a.cellWidth() + cellBorderWidth
	cols := make([]string, 0, 7)
	for i, name := range calendar.Weekdays {
		style := weekdayStyle
		if calendar.Weekend(i) {
			style = weekendStyle
		}
		cols = append(cols, style.Width(w).Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (a *App) renderGrid() string {
	rows := make([]string, 0, len(a.view.Weeks))
	for _, week := range a.view.Weeks {
		height := 2
		for _, c := range week {
			height = max(height, 1+min(len(c.Entries), maxEntryLines))
		}
		cells := make([]string, 0, 7)
		for _, c := range week {
			cells = append(cells, a.renderCell(c, height))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderCell(c calendar.DayCell, height int) string {
	w := a.cellWidth()
	if c.Blank() {
		return blankCellStyle.Width(w).Height(height).Render("")
	}

	selected := c.Day == a.day
	number := dayNumberStyle
	if c.Today {
		number = todayNumberStyle
	}
	lines := []string{number.Render(fmt.Sprintf("%d", c.Day))}

	shown := c.Entries
	if len(shown) > maxEntryLines {
		shown = shown[:maxEntryLines-1]
	}
	for i, e := range shown {
		style := incomeStyle
		if !e.Income() {
			style = expenseStyle
		}
		text := ansi.Truncate(e.Title+": "+money(a.currency, e.Amount), w, "…")
		if selected && i == a.entryIdx {
			style = style.Inherit(selectedEntry)
		}
		lines = append(lines, style.Render(text))
	}
	if hidden := len(c.Entries) - len(shown); hidden > 0 {
		lines = append(lines, moreStyle.Render(ansi.Truncate(fmt.Sprintf("+%d more", hidden), w, "…")))
	}

	style := cellStyle
	switch {
	case selected:
		style = selectedCellStyle
	case c.Today:
		style = todayCellStyle
	}
	return style.Width(w).Height(height).Render(strings.Join(lines, "\n"))
}

// renderSelection lists every entry of the selected day, including ones the
// cell had to fold away.
func (a *App) renderSelection() string {
	cell, ok := a.view.Cell(a.day)
	if !ok {
		return ""
	}
	if len(cell.Entries) == 0 {
		return moreStyle.Render(cell.Date + ": no entries")
	}
	if a.entryIdx < 0 {
		return moreStyle.Render(fmt.Sprintf("%s: %d entries", cell.Date, len(cell.Entries)))
	}
	e := cell.Entries[a.entryIdx]
	line := fmt.Sprintf("%s  %s  %s", cell.Date, e.Title, money(a.currency, e.Amount))
	if e.Description != "" {
		line += "  " + e.Description
	}
	return line
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return statusErrStyle.Render(a.status)
	}
	return statusStyle.Render(a.status)
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalForm:
		return modalStyle.Render(a.form.view() + "\n\n" + a.help.View(a.formKeys))
	case modalConfirmDelete:
		body := modalTitleStyle.Render("Delete entry?") + "\n" + a.confirmText + "\n\n" + a.help.View(newConfirmKeyMap())
		return modalStyle.Render(body)
	case modalError:
		body := modalTitleStyle.Render("Error") + "\n" + a.errText + "\n\npress any key to continue"
		return errorModalStyle.Render(body)
	default:
		return ""
	}
}
