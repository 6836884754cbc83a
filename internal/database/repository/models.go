package repository

import "github.com/shopspring/decimal"

// BudgetEntry represents a budget row.
type BudgetEntry struct {
	ID          int64
	Date        string // YYYY-MM-DD
	Title       string
	Amount      decimal.Decimal
	Description string
}

// Income reports whether the entry adds to the balance.
func (e BudgetEntry) Income() bool { return !e.Amount.IsNegative() }
