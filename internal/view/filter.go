package view

import (
	"strings"

	"budgetwise/internal/core"
)

// ExpenseFilter is the search and category selection of the expenses page.
// The zero value shows every transaction.
type ExpenseFilter struct {
	Query      string `json:"q"`
	CategoryID string `json:"category"`
}

// FilterEvent is a user action on the expenses filter bar.
type FilterEvent interface {
	filterEvent()
}

type (
	SearchChanged         struct{ Query string }
	CategoryFilterChanged struct{ CategoryID string }
	FilterReset           struct{}
)

func (SearchChanged) filterEvent()         {}
func (CategoryFilterChanged) filterEvent() {}
func (FilterReset) filterEvent()           {}

// NewExpenseFilter builds the filter from raw query values.
func NewExpenseFilter(query, categoryID string) ExpenseFilter {
	return ExpenseFilter{}.
		Apply(SearchChanged{Query: query}).
		Apply(CategoryFilterChanged{CategoryID: categoryID})
}

// Apply returns the filter after e. The receiver is not modified.
func (f ExpenseFilter) Apply(e FilterEvent) ExpenseFilter {
	switch ev := e.(type) {
	case SearchChanged:
		f.Query = ev.Query
	case CategoryFilterChanged:
		f.CategoryID = strings.TrimSpace(ev.CategoryID)
		if f.CategoryID == "" {
			f.CategoryID = core.AllCategories
		}
	case FilterReset:
		f = ExpenseFilter{CategoryID: core.AllCategories}
	}
	return f
}

// Category returns the effective category filter.
func (f ExpenseFilter) Category() string {
	if f.CategoryID == "" {
		return core.AllCategories
	}
	return f.CategoryID
}

// Active reports whether the filter hides anything.
func (f ExpenseFilter) Active() bool {
	return f.Query != "" || f.Category() != core.AllCategories
}
