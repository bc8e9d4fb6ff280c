package view

import (
	"strings"
	"time"

	"budgetwise/internal/core"
)

// Form field names, shared with the HTML inputs.
const (
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldCategory    = "category"
)

// AddExpenseForm is the state of the add-expense dialog.
type AddExpenseForm struct {
	Open        bool
	Amount      string
	Description string
	CategoryID  string
	Errors      map[string]string
}

// FormEvent is a user action on the add-expense dialog.
type FormEvent interface {
	formEvent()
}

type (
	DialogOpened struct{}
	DialogClosed struct{}
	FieldChanged struct {
		Field string
		Value string
	}
	// Submitted carries the submission time, which becomes the draft date.
	Submitted struct{ At time.Time }
)

func (DialogOpened) formEvent() {}
func (DialogClosed) formEvent() {}
func (FieldChanged) formEvent() {}
func (Submitted) formEvent()    {}

// Apply returns the form after e. A draft is returned only for a valid
// submit, after which the fields are cleared and the dialog closes. An
// invalid submit keeps the dialog open with Errors filled in.
func (f AddExpenseForm) Apply(e FormEvent) (AddExpenseForm, *core.ExpenseDraft) {
	switch ev := e.(type) {
	case DialogOpened:
		f.Open = true
	case DialogClosed:
		f.Open = false
		f.Errors = nil
	case FieldChanged:
		switch ev.Field {
		case FieldAmount:
			f.Amount = ev.Value
		case FieldDescription:
			f.Description = ev.Value
		case FieldCategory:
			f.CategoryID = ev.Value
		}
	case Submitted:
		draft, errs := f.draft(ev.At)
		if len(errs) > 0 {
			f.Open = true
			f.Errors = errs
			return f, nil
		}
		return AddExpenseForm{}, draft
	}
	return f, nil
}

// Valid reports whether the last submit was accepted or none was made.
func (f AddExpenseForm) Valid() bool {
	return len(f.Errors) == 0
}

// Error returns the message for field, if any.
func (f AddExpenseForm) Error(field string) string {
	return f.Errors[field]
}

func (f AddExpenseForm) draft(at time.Time) (*core.ExpenseDraft, map[string]string) {
	errs := make(map[string]string)

	amountText := strings.TrimSpace(f.Amount)
	var draft core.ExpenseDraft
	if amountText == "" {
		errs[FieldAmount] = "Amount is required"
	} else if amount, err := core.ParseAmount(amountText); err != nil {
		errs[FieldAmount] = "Amount must be a number"
	} else {
		draft.Amount = amount
	}
	if strings.TrimSpace(f.Description) == "" {
		errs[FieldDescription] = "Description is required"
	}
	if strings.TrimSpace(f.CategoryID) == "" {
		errs[FieldCategory] = "Category is required"
	}
	if len(errs) > 0 {
		return nil, errs
	}

	draft.Date = core.NewDate(at.Year(), at.Month(), at.Day())
	draft.Description = strings.TrimSpace(f.Description)
	draft.CategoryID = strings.TrimSpace(f.CategoryID)
	return &draft, nil
}
