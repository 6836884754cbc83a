// Package calendar derives the month grid, net totals and month navigation
// from the entry store. Nothing here holds state beyond a YearMonth value.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the storage format of entry dates.
const DateLayout = "2006-01-02"

// YearMonth is the displayed month. Month is always within [1, 12].
type YearMonth struct {
	Year  int
	Month time.Month
}

// Current returns the month containing now.
func Current(now time.Time) YearMonth {
	return YearMonth{Year: now.Year(), Month: now.Month()}
}

// Advance moves n months forward (negative n moves back), rolling the year over.
func (ym YearMonth) Advance(n int) YearMonth {
	idx := ym.Year*12 + int(ym.Month) - 1 + n
	year, month := idx/12, idx%12
	if month < 0 {
		month += 12
		year--
	}
	return YearMonth{Year: year, Month: time.Month(month + 1)}
}

func (ym YearMonth) Next() YearMonth { return ym.Advance(1) }

func (ym YearMonth) Prev() YearMonth { return ym.Advance(-1) }

// First returns midnight UTC on the first day of the month.
func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the month.
func (ym YearMonth) DaysIn() int {
	return ym.First().AddDate(0, 1, -1).Day()
}

// DateString formats day of the month as YYYY-MM-DD.
func (ym YearMonth) DateString(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", ym.Year, int(ym.Month), day)
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%s %d", ym.Month, ym.Year)
}
