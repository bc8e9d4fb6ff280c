package core

import "github.com/shopspring/decimal"

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	CategoryID string
	Total      decimal.Decimal
}

// BudgetActual pairs a budget ceiling with what was spent against it.
type BudgetActual struct {
	CategoryID string
	Budgeted   decimal.Decimal
	Actual     decimal.Decimal
}

// Snapshot is the full dataset the dashboard renders from. It is loaded once
// and passed by value; nothing mutates it after load.
type Snapshot struct {
	Categories   []Category
	Transactions []Transaction
	Budgets      []Budget
	Trend        []MonthlyTotal
}

// Validate checks every record's shape. Dangling category references are
// allowed.
func (s Snapshot) Validate() error {
	for _, c := range s.Categories {
		if err := c.Validate(); err != nil {
			return &RecordError{Kind: "category", ID: c.ID, Err: err}
		}
	}
	for _, t := range s.Transactions {
		if err := t.Validate(); err != nil {
			return &RecordError{Kind: "transaction", ID: t.ID, Err: err}
		}
	}
	for _, b := range s.Budgets {
		if err := b.Validate(); err != nil {
			return &RecordError{Kind: "budget", ID: b.ID, Err: err}
		}
	}
	return nil
}

// RecordError reports which record of a snapshot failed validation.
type RecordError struct {
	Kind string
	ID   string
	Err  error
}

func (e *RecordError) Error() string {
	return e.Kind + " " + quoteID(e.ID) + ": " + e.Err.Error()
}

func (e *RecordError) Unwrap() error { return e.Err }

func quoteID(id string) string {
	if id == "" {
		return "(no id)"
	}
	return "'" + id + "'"
}
