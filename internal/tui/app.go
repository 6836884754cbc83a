package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jask/calbudget/internal/calendar"
	"github.com/jask/calbudget/internal/config"
	"github.com/jask/calbudget/internal/database/repository"
	"github.com/jask/calbudget/internal/service"
)

// App is the month calendar. It keeps no copy of the entries beyond the last
// loaded month view and reloads the whole month after every change.
type App struct {
	ctx      context.Context
	repos    Repos
	services Services
	log      logrus.FieldLogger
	tz       *time.Location
	now      func() time.Time
	currency string

	month    calendar.YearMonth
	day      int
	entryIdx int // -1 when no entry of the day is selected
	view     calendar.MonthView
	net      decimal.Decimal
	loaded   bool

	modal       modalState
	form        *entryForm
	deleteID    int64
	confirmText string
	errText     string

	status    string
	statusErr bool
	width     int
	height    int
	keys      keyMap
	formKeys  formKeyMap
	help      help.Model
}

// Repos are the read paths of the calendar.
type Repos struct {
	Entries *repository.EntryRepo
}

// Services are the write paths of the calendar.
type Services struct {
	Entries *service.EntryService
}

type modalState string

const (
	modalNone          modalState = ""
	modalForm          modalState = "form"
	modalConfirmDelete modalState = "confirmDelete"
	modalError         modalState = "error"
)

func New(ctx context.Context, cfg config.Config, repos Repos, services Services, log logrus.FieldLogger, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	currency := cfg.UI.CurrencySymbol
	if currency == "" {
		currency = "$"
	}
	a := &App{
		ctx:      ctx,
		repos:    repos,
		services: services,
		log:      log,
		tz:       tz,
		now:      time.Now,
		currency: currency,
		entryIdx: -1,
		keys:     newKeyMap(),
		formKeys: newFormKeyMap(),
		help:     help.New(),
	}
	a.gotoToday()
	return a
}

func (a *App) Init() tea.Cmd {
	return a.loadMonth()
}

func (a *App) today() time.Time { return a.now().In(a.tz) }

func (a *App) gotoToday() {
	now := a.today()
	a.month = calendar.Current(now)
	a.day = now.Day()
	a.entryIdx = -1
}

// commands

func (a *App) loadMonth() tea.Cmd {
	return loadMonthCmd(a.ctx, a.repos.Entries, a.month, a.today())
}

func loadMonthCmd(ctx context.Context, store *repository.EntryRepo, ym calendar.YearMonth, today time.Time) tea.Cmd {
	return func() tea.Msg {
		view, err := calendar.BuildMonthView(ctx, store, ym, today)
		if err != nil {
			return monthLoadFailedMsg{month: ym, err: err}
		}
		net, err := calendar.NetTotal(ctx, store, ym)
		if err != nil {
			return monthLoadFailedMsg{month: ym, err: err}
		}
		return monthLoadedMsg{view: view, net: net}
	}
}

func addEntryCmd(ctx context.Context, svc *service.EntryService, in service.EntryInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.Create(ctx, in); err != nil {
			return mutationErr(err)
		}
		return entrySavedMsg("added " + strings.TrimSpace(in.Title) + " on " + in.Date)
	}
}

func updateEntryCmd(ctx context.Context, svc *service.EntryService, id int64, in service.EntryInput) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Update(ctx, id, in); err != nil {
			return mutationErr(err)
		}
		return entrySavedMsg("updated " + strings.TrimSpace(in.Title))
	}
}

func deleteEntryCmd(ctx context.Context, svc *service.EntryService, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Delete(ctx, id); err != nil {
			return mutationErr(err)
		}
		return entrySavedMsg("entry deleted")
	}
}

func mutationErr(err error) tea.Msg {
	var verr *repository.ValidationError
	switch {
	case errors.As(err, &verr):
		return invalidInputMsg{verr}
	case errors.Is(err, repository.ErrNotFound):
		return entryGoneMsg{}
	default:
		return errMsg{err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
	case tea.KeyMsg:
		switch a.modal {
		case modalForm:
			return a.handleFormKey(m)
		case modalConfirmDelete:
			return a.handleConfirmKey(m)
		case modalError:
			a.modal = modalNone
			a.errText = ""
			return a, nil
		}
		return a.handleGridKey(m)
	case monthLoadedMsg:
		if m.view.Month != a.month {
			return a, nil // superseded by later navigation
		}
		a.view, a.net, a.loaded = m.view, m.net, true
		a.clampSelection()
	case entrySavedMsg:
		a.closeModal()
		a.setStatus(string(m), false)
		return a, a.loadMonth()
	case entryGoneMsg:
		a.closeModal()
		a.setStatus("entry no longer exists", true)
		return a, a.loadMonth()
	case invalidInputMsg:
		if a.modal == modalForm && a.form != nil {
			a.form.busy = false
			a.form.err = m.err.Error()
			a.form.focusField(m.err.Field)
		}
	case monthLoadFailedMsg:
		if m.month != a.month {
			return a, nil
		}
		a.showError(m.err)
	case errMsg:
		a.showError(m.err)
	}
	return a, nil
}

func (a *App) handleGridKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(m, a.keys.Left):
		a.moveDay(-1)
	case key.Matches(m, a.keys.Right):
		a.moveDay(1)
	case key.Matches(m, a.keys.Up):
		a.moveDay(-7)
	case key.Matches(m, a.keys.Down):
		a.moveDay(7)
	case key.Matches(m, a.keys.PrevMonth):
		return a, a.advance(-1)
	case key.Matches(m, a.keys.NextMonth):
		return a, a.advance(1)
	case key.Matches(m, a.keys.Today):
		a.gotoToday()
		a.status = ""
		return a, a.loadMonth()
	case key.Matches(m, a.keys.Add):
		a.openForm(newAddForm(a.month.DateString(a.day)))
	case key.Matches(m, a.keys.NextEntry):
		a.cycleEntry(1)
	case key.Matches(m, a.keys.PrevEntry):
		a.cycleEntry(-1)
	case key.Matches(m, a.keys.Edit):
		if e, ok := a.selectedEntry(); ok {
			a.openForm(newEditForm(e))
		}
	case key.Matches(m, a.keys.Delete):
		if e, ok := a.selectedEntry(); ok {
			a.askDelete(e)
		}
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := a.form
	switch {
	case key.Matches(m, a.formKeys.ForceQuit):
		return a, tea.Quit
	case key.Matches(m, a.formKeys.Cancel):
		a.closeModal()
		return a, nil
	case key.Matches(m, a.formKeys.NextField):
		f.move(1)
		return a, nil
	case key.Matches(m, a.formKeys.PrevField):
		f.move(-1)
		return a, nil
	case key.Matches(m, a.formKeys.Delete) && f.mode == formEdit:
		e := repository.BudgetEntry{ID: f.id, Title: f.inputs[fieldTitle].Value()}
		a.askDelete(e)
		return a, nil
	case key.Matches(m, a.formKeys.Submit):
		if f.busy {
			return a, nil
		}
		f.busy = true
		f.err = ""
		if f.mode == formEdit {
			return a, updateEntryCmd(a.ctx, a.services.Entries, f.id, f.value())
		}
		return a, addEntryCmd(a.ctx, a.services.Entries, f.value())
	}
	return a, f.update(m)
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := newConfirmKeyMap()
	switch {
	case key.Matches(m, keys.Yes):
		id := a.deleteID
		a.closeModal()
		return a, deleteEntryCmd(a.ctx, a.services.Entries, id)
	case key.Matches(m, keys.No):
		a.modal = modalNone
		if a.form != nil {
			a.modal = modalForm
		}
	}
	return a, nil
}

func (a *App) openForm(f *entryForm) {
	a.form = f
	a.formKeys.editing = f.mode == formEdit
	a.modal = modalForm
}

func (a *App) askDelete(e repository.BudgetEntry) {
	a.deleteID = e.ID
	a.confirmText = fmt.Sprintf("%q will be removed permanently.", e.Title)
	a.modal = modalConfirmDelete
}

func (a *App) closeModal() {
	a.modal = modalNone
	a.form = nil
	a.deleteID = 0
	a.confirmText = ""
}

func (a *App) showError(err error) {
	a.log.WithError(err).Error("calendar command failed")
	a.closeModal()
	a.modal = modalError
	a.errText = err.Error()
}

func (a *App) setStatus(s string, isErr bool) {
	a.status, a.statusErr = s, isErr
}

func (a *App) advance(n int) tea.Cmd {
	a.month = a.month.Advance(n)
	a.entryIdx = -1
	a.day = min(a.day, a.month.DaysIn())
	a.status = ""
	return a.loadMonth()
}

func (a *App) moveDay(delta int) {
	next := a.day + delta
	if next < 1 || next > a.month.DaysIn() {
		return
	}
	a.day = next
	a.entryIdx = -1
}

func (a *App) cycleEntry(dir int) {
	cell, ok := a.view.Cell(a.day)
	if !ok || len(cell.Entries) == 0 {
		a.setStatus("no entries on "+a.month.DateString(a.day), false)
		return
	}
	n := len(cell.Entries)
	if a.entryIdx < 0 {
		if dir > 0 {
			a.entryIdx = 0
		} else {
			a.entryIdx = n - 1
		}
		return
	}
	a.entryIdx = (a.entryIdx + dir + n) % n
}

// selectedEntry falls back to the day's first entry when none is selected.
func (a *App) selectedEntry() (repository.BudgetEntry, bool) {
	cell, ok := a.view.Cell(a.day)
	if !ok || len(cell.Entries) == 0 {
		a.setStatus("no entries on "+a.month.DateString(a.day), false)
		return repository.BudgetEntry{}, false
	}
	if a.entryIdx < 0 || a.entryIdx >= len(cell.Entries) {
		a.entryIdx = 0
	}
	return cell.Entries[a.entryIdx], true
}

func (a *App) clampSelection() {
	a.day = max(1, min(a.day, a.month.DaysIn()))
	cell, _ := a.view.Cell(a.day)
	if a.entryIdx >= len(cell.Entries) {
		a.entryIdx = len(cell.Entries) - 1
	}
}

func (a *App) View() string {
	if !a.loaded && a.modal != modalError {
		return "loading " + a.month.String() + "…"
	}
	parts := []string{
		a.renderHeader(),
		a.renderWeekdays(),
		a.renderGrid(),
		a.renderSelection(),
	}
	if a.modal != modalNone {
		parts = append(parts, a.renderModal())
	} else {
		parts = append(parts, a.help.View(a.keys))
	}
	if s := a.renderStatus(); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

// messages
type monthLoadedMsg struct {
	view calendar.MonthView
	net  decimal.Decimal
}

type entrySavedMsg string

type entryGoneMsg struct{}

type invalidInputMsg struct{ err *repository.ValidationError }

type monthLoadFailedMsg struct {
	month calendar.YearMonth
	err   error
}

type errMsg struct{ err error }
