package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetwise/internal/core"
)

func TestEmbeddedSample(t *testing.T) {
	store, err := NewEmbedded()
	require.NoError(t, err)

	snap, err := store.ReadSnapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Categories, 8)
	assert.Len(t, snap.Transactions, 12)
	assert.Len(t, snap.Budgets, 8)
	assert.Len(t, snap.Trend, 7)

	food, ok := snap.CategoryByID("food")
	require.True(t, ok)
	assert.Equal(t, "Food & Dining", food.Name)
	assert.Equal(t, "#3B82F6", food.Color)

	first := snap.Transactions[0]
	assert.Equal(t, "Grocery shopping", first.Description)
	assert.True(t, first.Amount.Equal(core.FromCents(8575)))
	assert.Equal(t, time.July, first.Date.Month())
	assert.Equal(t, 1, first.Date.Day())

	assert.True(t, core.TotalBudget(snap.Budgets).Equal(core.FromCents(345000)))
	assert.True(t, core.TotalSpending(snap.Transactions).Equal(core.FromCents(192527)))
	assert.Equal(t, time.January, snap.Trend[0].Month)
}

func TestNewFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	doc := `{
  "categories": [{"id": "food", "name": "Food", "color": "#000000", "icon": "utensils"}],
  "transactions": [{"id": "a", "date": "2024-02-29", "amount": "10.5", "description": "Bagel", "category": "food"}],
  "budgets": [{"id": "b", "category": "food", "amount": "40"}]
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	store, err := NewFromFile(path)
	require.NoError(t, err)
	snap, _ := store.ReadSnapshot(context.Background())

	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, core.Monthly, snap.Budgets[0].Period, "period defaults to monthly")
	assert.Empty(t, snap.Trend)
}

func TestNewFromFileMissing(t *testing.T) {
	_, err := NewFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"bad date", `transactions: [{id: "1", date: "07/01/2023", amount: "1", category: food}]`, core.ErrInvalidDate},
		{"bad amount", `transactions: [{id: "1", date: "2023-07-01", amount: "ten", category: food}]`, core.ErrInvalidAmount},
		{"missing category", `transactions: [{id: "1", date: "2023-07-01", amount: "1"}]`, core.ErrEmptyCategory},
		{"bad period", `budgets: [{id: "1", category: food, amount: "1", period: yearly}]`, core.ErrInvalidPeriod},
		{"bad trend", `trend: [{month: "January", amount: "1"}]`, core.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseKeepsDanglingCategory(t *testing.T) {
	snap, err := Parse([]byte(`transactions: [{id: "1", date: "2023-07-01", amount: "3", description: x, category: ghost}]`))
	require.NoError(t, err)
	assert.Equal(t, core.UnknownCategoryName, snap.CategoryOrPlaceholder("ghost").Name)
}
