package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/calbudget/internal/database/repository"
)

type memStore struct {
	byDate map[string][]repository.BudgetEntry
	calls  int
	err    error
}

func (m *memStore) ListByDate(_ context.Context, date string) ([]repository.BudgetEntry, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.byDate[date], nil
}

func (m *memStore) SumAmountInRange(_ context.Context, start, end string) (decimal.Decimal, error) {
	if m.err != nil {
		return decimal.Zero, m.err
	}
	total := decimal.Zero
	for date, entries := range m.byDate {
		if date < start || date > end {
			continue
		}
		for _, e := range entries {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func TestBuildMonthViewLayout(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	// 1 March 2024 is a Friday.
	view, err := BuildMonthView(ctx, store, YearMonth{2024, time.March}, time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, view.Weeks, 5)
	require.Equal(t, 31, store.calls)

	for col := 0; col < 4; col++ {
		require.True(t, view.Weeks[0][col].Blank(), "col %d", col)
	}
	require.Equal(t, 1, view.Weeks[0][4].Day)
	require.Equal(t, "2024-03-01", view.Weeks[0][4].Date)
	require.Equal(t, 3, view.Weeks[0][6].Day)
	require.Equal(t, 31, view.Weeks[4][6].Day)

	today, ok := view.Cell(20)
	require.True(t, ok)
	require.True(t, today.Today)
	other, ok := view.Cell(19)
	require.True(t, ok)
	require.False(t, other.Today)

	_, ok = view.Cell(32)
	require.False(t, ok)

	require.Equal(t, 20, view.Weeks[3][2].Day)
}

func TestBuildMonthViewRowCounts(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		ym   YearMonth
		rows int
	}{
		{YearMonth{2021, time.February}, 4}, // starts Monday, 28 days
		{YearMonth{2024, time.September}, 6}, // starts Sunday, 30 days
		{YearMonth{2024, time.July}, 5},
	}
	for _, tt := range tests {
		view, err := BuildMonthView(ctx, &memStore{}, tt.ym, time.Time{})
		require.NoError(t, err)
		require.Len(t, view.Weeks, tt.rows, tt.ym.String())
		days := 0
		for _, w := range view.Weeks {
			for _, c := range w {
				if !c.Blank() {
					days++
					require.False(t, c.Today)
				}
			}
		}
		require.Equal(t, tt.ym.DaysIn(), days)
	}
}

func TestBuildMonthViewCarriesEntries(t *testing.T) {
	ctx := context.Background()
	rent := repository.BudgetEntry{ID: 1, Date: "2024-03-15", Title: "Rent", Amount: decimal.RequireFromString("-1200.00"), Description: "March rent"}
	store := &memStore{byDate: map[string][]repository.BudgetEntry{"2024-03-15": {rent}}}

	view, err := BuildMonthView(ctx, store, YearMonth{2024, time.March}, time.Time{})
	require.NoError(t, err)
	cell, ok := view.Cell(15)
	require.True(t, ok)
	require.Equal(t, []repository.BudgetEntry{rent}, cell.Entries)

	empty, ok := view.Cell(14)
	require.True(t, ok)
	require.Empty(t, empty.Entries)
}

func TestBuildMonthViewPropagatesStoreError(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := BuildMonthView(context.Background(), &memStore{err: boom}, YearMonth{2024, time.March}, time.Time{})
	require.ErrorIs(t, err, boom)
}

func TestNetTotal(t *testing.T) {
	ctx := context.Background()
	store := &memStore{byDate: map[string][]repository.BudgetEntry{
		"2024-02-10": {{Amount: decimal.RequireFromString("500")}, {Amount: decimal.RequireFromString("-200")}},
		"2024-02-29": {{Amount: decimal.RequireFromString("0.50")}},
		"2024-03-01": {{Amount: decimal.RequireFromString("-999")}},
		"2024-01-31": {{Amount: decimal.RequireFromString("-999")}},
	}}

	got, err := NetTotal(ctx, store, YearMonth{2024, time.February})
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.RequireFromString("300.50")), "got %s", got)

	got, err = NetTotal(ctx, store, YearMonth{2024, time.April})
	require.NoError(t, err)
	require.True(t, got.IsZero())
}
