package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// EntryRepo handles the budget table.
type EntryRepo struct {
	db *sql.DB
}

func NewEntryRepo(db *sql.DB) *EntryRepo { return &EntryRepo{db: db} }

// Close releases the underlying connection.
func (r *EntryRepo) Close() error { return r.db.Close() }

func (r *EntryRepo) Create(ctx context.Context, date, title string, amount decimal.Decimal, description string) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, &ValidationError{Field: "title", Reason: "required"}
	}
	f, err := storable(amount)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO budget(date, title, amount, description) VALUES(?, ?, ?, ?)`,
		date, title, f, description)
	if err != nil {
		return 0, storeErr("create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storeErr("create", err)
	}
	return id, nil
}

func (r *EntryRepo) ListByDate(ctx context.Context, date string) ([]BudgetEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, date, title, amount, description FROM budget WHERE date = ? ORDER BY id`, date)
	if err != nil {
		return nil, storeErr("list by date", err)
	}
	out, err := scanEntries(rows)
	return out, storeErr("list by date", err)
}

// SumAmountInRange sums amounts of rows whose date string lies in [start, end].
// Rows are added as decimals so the total carries no float rounding.
func (r *EntryRepo) SumAmountInRange(ctx context.Context, start, end string) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT amount FROM budget WHERE date BETWEEN ? AND ?`, start, end)
	if err != nil {
		return decimal.Zero, storeErr("sum", err)
	}
	defer rows.Close()
	total := decimal.Zero
	for rows.Next() {
		var amount sql.NullFloat64
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, storeErr("sum", err)
		}
		d, err := fromStored(amount)
		if err != nil {
			return decimal.Zero, storeErr("sum", err)
		}
		total = total.Add(d)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, storeErr("sum", err)
	}
	return total, nil
}

func (r *EntryRepo) Get(ctx context.Context, id int64) (BudgetEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, date, title, amount, description FROM budget WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return BudgetEntry{}, ErrNotFound
	}
	if err != nil {
		return BudgetEntry{}, storeErr("get", err)
	}
	return e, nil
}

// Update overwrites title, amount and description of an existing row.
func (r *EntryRepo) Update(ctx context.Context, id int64, title string, amount decimal.Decimal, description string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	f, err := storable(amount)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE budget SET title = ?, amount = ?, description = ? WHERE id = ?`,
		title, f, description, id)
	if err != nil {
		return storeErr("update", err)
	}
	return affected(res, "update")
}

func (r *EntryRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budget WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete", err)
	}
	return affected(res, "delete")
}

// All returns every row ordered by id.
func (r *EntryRepo) All(ctx context.Context) ([]BudgetEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, date, title, amount, description FROM budget ORDER BY id`)
	if err != nil {
		return nil, storeErr("list", err)
	}
	out, err := scanEntries(rows)
	return out, storeErr("list", err)
}

func (r *EntryRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM budget`).Scan(&n); err != nil {
		return 0, storeErr("count", err)
	}
	return n, nil
}

func affected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEntry tolerates NULL columns left behind by older writers.
func scanEntry(row scanner) (BudgetEntry, error) {
	var e BudgetEntry
	var date, title, desc sql.NullString
	var amount sql.NullFloat64
	if err := row.Scan(&e.ID, &date, &title, &amount, &desc); err != nil {
		return BudgetEntry{}, err
	}
	e.Date = date.String
	e.Title = title.String
	e.Description = desc.String
	d, err := fromStored(amount)
	if err != nil {
		return BudgetEntry{}, fmt.Errorf("entry %d: %w", e.ID, err)
	}
	e.Amount = d
	return e, nil
}

// storable converts an amount to the REAL the column holds, rejecting values
// beyond float64 range.
func storable(amount decimal.Decimal) (float64, error) {
	f := amount.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &ValidationError{Field: "amount", Reason: "out of range"}
	}
	return f, nil
}

func fromStored(amount sql.NullFloat64) (decimal.Decimal, error) {
	if !amount.Valid {
		return decimal.Zero, nil
	}
	if math.IsInf(amount.Float64, 0) || math.IsNaN(amount.Float64) {
		return decimal.Zero, ErrBadAmount
	}
	return decimal.NewFromFloat(amount.Float64), nil
}

func scanEntries(rows *sql.Rows) ([]BudgetEntry, error) {
	defer rows.Close()
	var out []BudgetEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
