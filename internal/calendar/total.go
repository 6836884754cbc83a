package calendar

import (
	"context"

	"github.com/shopspring/decimal"
)

// AmountSummer is the aggregate side of the entry store.
type AmountSummer interface {
	SumAmountInRange(ctx context.Context, start, end string) (decimal.Decimal, error)
}

// MonthBounds returns the inclusive date-string range used for the net total.
// The upper bound is always day 31: dates compare as strings, so it bounds
// every real day of the month and stays below the next month's first day.
func MonthBounds(ym YearMonth) (start, end string) {
	return ym.DateString(1), ym.DateString(31)
}

// NetTotal sums every entry of the month.
func NetTotal(ctx context.Context, store AmountSummer, ym YearMonth) (decimal.Decimal, error) {
	start, end := MonthBounds(ym)
	return store.SumAmountInRange(ctx, start, end)
}
