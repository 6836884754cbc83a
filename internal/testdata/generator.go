// Package testdata seeds a store with reproducible sample entries.
package testdata

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/jask/calbudget/internal/calendar"
	"github.com/jask/calbudget/internal/database/repository"
)

// Creator is the write half of the entry store.
type Creator interface {
	Create(ctx context.Context, date, title string, amount decimal.Decimal, description string) (int64, error)
}

var titles = []string{"Rent", "Salary", "Groceries", "Coffee", "Spotify", "Refund", "Train", "Gift"}

// Seed creates n entries on random days of ym with random signed amounts in
// cents, plus one entry on each neighbouring month's boundary day so range
// queries have something to exclude. It returns the in-month entries only.
func Seed(ctx context.Context, store Creator, ym calendar.YearMonth, n int, rng *rand.Rand) ([]repository.BudgetEntry, error) {
	prev, next := ym.Prev(), ym.Next()
	if _, err := store.Create(ctx, prev.DateString(prev.DaysIn()), "Spill", decimal.New(-999, -2), ""); err != nil {
		return nil, err
	}
	if _, err := store.Create(ctx, next.DateString(1), "Spill", decimal.New(999, -2), ""); err != nil {
		return nil, err
	}

	out := make([]repository.BudgetEntry, 0, n)
	for i := 0; i < n; i++ {
		cents := int64(rng.Intn(200000) + 1)
		if rng.Intn(3) > 0 {
			cents = -cents
		}
		e := repository.BudgetEntry{
			Date:   ym.DateString(rng.Intn(ym.DaysIn()) + 1),
			Title:  titles[rng.Intn(len(titles))],
			Amount: decimal.New(cents, -2),
		}
		id, err := store.Create(ctx, e.Date, e.Title, e.Amount, e.Description)
		if err != nil {
			return nil, err
		}
		e.ID = id
		out = append(out, e)
	}
	return out, nil
}

// Sum adds up the amounts of entries.
func Sum(entries []repository.BudgetEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// ByDate groups entries by their date.
func ByDate(entries []repository.BudgetEntry) map[string][]repository.BudgetEntry {
	out := make(map[string][]repository.BudgetEntry)
	for _, e := range entries {
		out[e.Date] = append(out[e.Date], e)
	}
	return out
}
