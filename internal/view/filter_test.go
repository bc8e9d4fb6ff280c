package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"budgetwise/internal/core"
)

func TestExpenseFilter_ZeroValue(t *testing.T) {
	var f ExpenseFilter
	assert.Equal(t, core.AllCategories, f.Category())
	assert.False(t, f.Active())
}

func TestExpenseFilter_Apply(t *testing.T) {
	base := NewExpenseFilter("", "")
	assert.False(t, base.Active())

	searched := base.Apply(SearchChanged{Query: "rent"})
	assert.Equal(t, "rent", searched.Query)
	assert.True(t, searched.Active())
	assert.Empty(t, base.Query, "receiver must not change")

	narrowed := searched.Apply(CategoryFilterChanged{CategoryID: "housing"})
	assert.Equal(t, "housing", narrowed.Category())
	assert.Equal(t, "rent", narrowed.Query)

	blank := narrowed.Apply(CategoryFilterChanged{CategoryID: "  "})
	assert.Equal(t, core.AllCategories, blank.Category())

	reset := narrowed.Apply(FilterReset{})
	assert.Empty(t, reset.Query)
	assert.Equal(t, core.AllCategories, reset.Category())
	assert.False(t, reset.Active())
}
