package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jask/calbudget/internal/calendar"
	"github.com/jask/calbudget/internal/database/repository"
)

// EntryStore is the subset of the entry repository the service mutates through.
type EntryStore interface {
	Create(ctx context.Context, date, title string, amount decimal.Decimal, description string) (int64, error)
	Get(ctx context.Context, id int64) (repository.BudgetEntry, error)
	Update(ctx context.Context, id int64, title string, amount decimal.Decimal, description string) error
	Delete(ctx context.Context, id int64) error
}

// EntryInput is an entry as typed into the form.
type EntryInput struct {
	Date        string
	Title       string
	Amount      string
	Description string
}

// EntryService validates form input before it reaches the store.
type EntryService struct {
	Entries EntryStore
	Log     logrus.FieldLogger
}

func (s *EntryService) Create(ctx context.Context, in EntryInput) (int64, error) {
	date, err := ParseDate(in.Date)
	if err != nil {
		return 0, err
	}
	title, amount, err := validate(in)
	if err != nil {
		return 0, err
	}
	id, err := s.Entries.Create(ctx, date, title, amount, strings.TrimSpace(in.Description))
	if err != nil {
		s.fail(err, "create entry", logrus.Fields{"date": date})
		return 0, err
	}
	s.Log.WithFields(logrus.Fields{"entry_id": id, "date": date, "amount": amount.String()}).Info("entry created")
	return id, nil
}

// Update replaces title, amount and description. The date of an entry never changes.
func (s *EntryService) Update(ctx context.Context, id int64, in EntryInput) error {
	title, amount, err := validate(in)
	if err != nil {
		return err
	}
	if err := s.Entries.Update(ctx, id, title, amount, strings.TrimSpace(in.Description)); err != nil {
		s.fail(err, "update entry", logrus.Fields{"entry_id": id})
		return err
	}
	s.Log.WithFields(logrus.Fields{"entry_id": id, "amount": amount.String()}).Info("entry updated")
	return nil
}

func (s *EntryService) Delete(ctx context.Context, id int64) error {
	if err := s.Entries.Delete(ctx, id); err != nil {
		s.fail(err, "delete entry", logrus.Fields{"entry_id": id})
		return err
	}
	s.Log.WithField("entry_id", id).Info("entry deleted")
	return nil
}

func (s *EntryService) Get(ctx context.Context, id int64) (repository.BudgetEntry, error) {
	e, err := s.Entries.Get(ctx, id)
	if err != nil {
		s.fail(err, "get entry", logrus.Fields{"entry_id": id})
	}
	return e, err
}

// fail logs stale ids quietly and everything else as an error.
func (s *EntryService) fail(err error, msg string, fields logrus.Fields) {
	l := s.Log.WithFields(fields).WithError(err)
	if errors.Is(err, repository.ErrNotFound) {
		l.Warn(msg)
		return
	}
	l.Error(msg)
}

const currencySymbols = "$€£¥"

func validate(in EntryInput) (string, decimal.Decimal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", decimal.Zero, &repository.ValidationError{Field: "title", Reason: "required"}
	}
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return "", decimal.Zero, err
	}
	return title, amount, nil
}

// ParseAmount reads a signed decimal. Surrounding blanks, a leading plus sign,
// one currency symbol on either side of the sign and thousands separators are
// accepted, so "$-12.50" as shown in the grid parses back.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, &repository.ValidationError{Field: "amount", Reason: "required"}
	}
	bad := &repository.ValidationError{Field: "amount", Reason: "not a number: " + s}
	symbol := false
	if r, size := utf8.DecodeRuneInString(s); strings.ContainsRune(currencySymbols, r) {
		symbol, s = true, strings.TrimSpace(s[size:])
	}
	neg := false
	if s != "" {
		switch s[0] {
		case '-':
			neg, s = true, strings.TrimSpace(s[1:])
		case '+':
			s = strings.TrimSpace(s[1:])
		}
	}
	if r, size := utf8.DecodeRuneInString(s); !symbol && strings.ContainsRune(currencySymbols, r) {
		s = strings.TrimSpace(s[size:])
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || strings.ContainsAny(s, "+-eE"+currencySymbols) {
		return decimal.Zero, bad
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, bad
	}
	if math.IsInf(d.InexactFloat64(), 0) {
		return decimal.Zero, &repository.ValidationError{Field: "amount", Reason: "out of range"}
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// ParseDate checks that text is a real calendar date in YYYY-MM-DD form.
func ParseDate(text string) (string, error) {
	s := strings.TrimSpace(text)
	t, err := time.Parse(calendar.DateLayout, s)
	if err != nil || t.Format(calendar.DateLayout) != s {
		return "", &repository.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD, got " + text}
	}
	return s, nil
}
