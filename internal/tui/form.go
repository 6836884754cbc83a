package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/calbudget/internal/database/repository"
	"github.com/jask/calbudget/internal/service"
)

type formMode int

const (
	formAdd formMode = iota
	formEdit
)

const (
	fieldTitle = iota
	fieldAmount
	fieldDescription
)

// entryForm collects title, amount and description for one entry.
type entryForm struct {
	mode   formMode
	id     int64 // formEdit only
	date   string
	inputs []textinput.Model
	focus  int
	err    string
	busy   bool
}

func newAddForm(date string) *entryForm {
	return newEntryForm(formAdd, 0, date, "", "", "")
}

func newEditForm(e repository.BudgetEntry) *entryForm {
	return newEntryForm(formEdit, e.ID, e.Date, e.Title, e.Amount.String(), e.Description)
}

func newEntryForm(mode formMode, id int64, date, title, amount, desc string) *entryForm {
	labels := []string{"Title", "Amount", "Description"}
	values := []string{title, amount, desc}
	inputs := make([]textinput.Model, 0, len(labels))
	for i, label := range labels {
		inp := textinput.New()
		inp.Prompt = label + ": "
		inp.CharLimit = 256
		inp.Width = 40
		_ = inp.Cursor.SetMode(cursor.CursorStatic)
		inp.SetValue(values[i])
		if i == fieldTitle {
			inp.Focus()
		}
		inputs = append(inputs, inp)
	}
	inputs[fieldAmount].Placeholder = "-12.50 for an expense"
	inputs[fieldDescription].Placeholder = "optional"
	return &entryForm{mode: mode, id: id, date: date, inputs: inputs}
}

func (f *entryForm) value() service.EntryInput {
	return service.EntryInput{
		Date:        f.date,
		Title:       f.inputs[fieldTitle].Value(),
		Amount:      f.inputs[fieldAmount].Value(),
		Description: f.inputs[fieldDescription].Value(),
	}
}

func (f *entryForm) move(dir int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// focusField puts the cursor on the field a validation error refers to.
func (f *entryForm) focusField(field string) {
	target := map[string]int{"title": fieldTitle, "amount": fieldAmount}[field]
	f.move(target - f.focus)
}

func (f *entryForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *entryForm) view() string {
	title := "New entry on " + f.date
	if f.mode == formEdit {
		title = "Edit entry on " + f.date
	}
	lines := []string{modalTitleStyle.Render(title)}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	if f.err != "" {
		lines = append(lines, formErrorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}
