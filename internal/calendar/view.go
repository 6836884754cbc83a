package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/jask/calbudget/internal/database/repository"
)

// EntryLister is the read side of the entry store used by the grid.
type EntryLister interface {
	ListByDate(ctx context.Context, date string) ([]repository.BudgetEntry, error)
}

// DayCell is one grid position. Day is 0 for positions outside the month.
type DayCell struct {
	Day     int
	Date    string
	Today   bool
	Entries []repository.BudgetEntry
}

func (c DayCell) Blank() bool { return c.Day == 0 }

// Week is a Monday-first row of the grid.
type Week [7]DayCell

// MonthView is the day grid of one month.
type MonthView struct {
	Month YearMonth
	Weeks []Week
}

// Weekdays lists column headers in grid order.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Weekend reports whether grid column col is Saturday or Sunday.
func Weekend(col int) bool { return col >= 5 }

// BuildMonthView lays out ym as full Monday-first weeks and loads the entries
// of every day. today is compared by calendar date only.
func BuildMonthView(ctx context.Context, store EntryLister, ym YearMonth, today time.Time) (MonthView, error) {
	todayStr := today.Format(DateLayout)
	lead := (int(ym.First().Weekday()) + 6) % 7
	days := ym.DaysIn()
	total := lead + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	view := MonthView{Month: ym, Weeks: make([]Week, total/7)}
	for i := 0; i < total; i++ {
		day := i - lead + 1
		if day < 1 || day > days {
			continue
		}
		date := ym.DateString(day)
		entries, err := store.ListByDate(ctx, date)
		if err != nil {
			return MonthView{}, fmt.Errorf("entries for %s: %w", date, err)
		}
		view.Weeks[i/7][i%7] = DayCell{
			Day:     day,
			Date:    date,
			Today:   date == todayStr,
			Entries: entries,
		}
	}
	return view, nil
}

// Cell returns the cell of day, or false when day is outside the month.
func (v MonthView) Cell(day int) (DayCell, bool) {
	for _, w := range v.Weeks {
		for _, c := range w {
			if !c.Blank() && c.Day == day {
				return c, true
			}
		}
	}
	return DayCell{}, false
}
