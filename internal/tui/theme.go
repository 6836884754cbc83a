package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette, true-color hex values.
// https://catppuccin.com/palette
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorIncome   = colorGreen
	colorExpense  = colorRed
	colorSelected = colorLavender
	colorToday    = colorPeach
	colorWeekend  = colorBlue
	colorMuted    = colorOverlay1
	colorWarning  = colorYellow
)

// monthAccents tints the title bar, one pastel per month.
var monthAccents = [12]lipgloss.Color{
	"#FFDDEE", // soft pink
	"#D0F0C0", // tea green
	"#FFFACD", // lemon chiffon
	"#E6E6FA", // lavender
	"#F0FFF0", // honeydew
	"#E0FFFF", // light cyan
	"#FFEFD5", // papaya whip
	"#FFF0F5", // lavender blush
	"#F5F5DC", // beige
	"#FDF5E6", // old lace
	"#FAFAD2", // light goldenrod
	"#F0F8FF", // alice blue
}

func monthAccent(m time.Month) lipgloss.Color {
	if m < time.January || m > time.December {
		return colorSurface1
	}
	return monthAccents[m-1]
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Padding(0, 1)

	netIncomeStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorIncome)
	netExpenseStyle = lipgloss.NewStyle().Bold(true).Foreground(colorExpense)

	weekdayStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	weekendStyle = weekdayStyle.Foreground(colorWeekend)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorSurface1)
	todayCellStyle    = cellStyle.BorderForeground(colorToday)
	selectedCellStyle = cellStyle.Border(lipgloss.ThickBorder()).BorderForeground(colorSelected)
	blankCellStyle    = lipgloss.NewStyle().Border(lipgloss.HiddenBorder())

	dayNumberStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	todayNumberStyle = dayNumberStyle.Foreground(colorToday)
	incomeStyle      = lipgloss.NewStyle().Foreground(colorIncome)
	expenseStyle     = lipgloss.NewStyle().Foreground(colorExpense)
	selectedEntry    = lipgloss.NewStyle().Reverse(true)
	moreStyle        = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSelected).
			Padding(0, 1)
	errorModalStyle = modalStyle.BorderForeground(colorExpense)
	modalTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	formErrorStyle  = lipgloss.NewStyle().Foreground(colorExpense)

	statusStyle    = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorWarning).Background(colorMantle)
)
