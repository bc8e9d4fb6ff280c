package view

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetwise/internal/core"
	"budgetwise/internal/data/memory"
)

func sample(t *testing.T) core.Snapshot {
	t.Helper()
	store, err := memory.NewEmbedded()
	require.NoError(t, err)
	snap, err := store.ReadSnapshot(context.Background())
	require.NoError(t, err)
	return snap
}

func TestBuildDashboard(t *testing.T) {
	d := BuildDashboard(sample(t))

	assert.Equal(t, "$1,925.27", d.TotalSpent)
	assert.Equal(t, "$3,450.00", d.TotalBudget)
	assert.Equal(t, 56, d.Percent)
	assert.Equal(t, core.StatusSuccess, d.Status)
	assert.Equal(t, "56% of your monthly budget used", d.Usage)

	require.Len(t, d.Recent, RecentLimit)
	assert.Equal(t, "Water bill", d.Recent[0].Description)
	assert.Equal(t, "Jul 12, 2023", d.Recent[0].Date)
	assert.Equal(t, "Utilities", d.Recent[0].CategoryName)
	assert.Equal(t, "Haircut", d.Recent[4].Description)

	require.Len(t, d.TopCategories, TopCategoriesLimit)
	names := make([]string, 0, len(d.TopCategories))
	for _, c := range d.TopCategories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Housing", "Utilities", "Shopping", "Food & Dining"}, names)
	assert.Equal(t, "$1,250.00", d.TopCategories[0].Amount)
	assert.Equal(t, 65, d.TopCategories[0].Percent)

	require.Len(t, d.Breakdown, 8)
	assert.Equal(t, "food", d.Breakdown[0].CategoryID)
	assert.Zero(t, d.Breakdown[0].Start)
	assert.InDelta(t, 100, d.Breakdown[len(d.Breakdown)-1].End, 0.001)
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(core.Snapshot{})

	assert.Equal(t, "$0.00", d.TotalSpent)
	assert.Equal(t, 0, d.Percent)
	assert.Equal(t, core.StatusSuccess, d.Status)
	assert.Empty(t, d.Recent)
	assert.Empty(t, d.Breakdown)
	assert.Empty(t, d.TopCategories)
}

func TestBuildExpenses(t *testing.T) {
	snap := sample(t)

	all := BuildExpenses(snap, ExpenseFilter{})
	assert.Len(t, all.Rows, 12)
	assert.Equal(t, "12 transactions found", all.Found)
	assert.Equal(t, "$1,925.27", all.Total)
	require.Len(t, all.Options, 9)
	assert.Equal(t, "All Categories", all.Options[0].Name)
	assert.True(t, all.Options[0].Selected)
	assert.False(t, all.Empty())

	bills := BuildExpenses(snap, NewExpenseFilter("BiLL", ""))
	require.Len(t, bills.Rows, 2)
	assert.Equal(t, "Water bill", bills.Rows[0].Description)
	assert.Equal(t, "Electricity bill", bills.Rows[1].Description)
	assert.Equal(t, "2 transactions found", bills.Found)
	assert.Equal(t, "$176.55", bills.Total)

	food := BuildExpenses(snap, NewExpenseFilter("", "food"))
	assert.Len(t, food.Rows, 2)
	for _, o := range food.Options {
		assert.Equal(t, o.ID == "food", o.Selected, o.ID)
	}

	one := BuildExpenses(snap, NewExpenseFilter("haircut", "all"))
	assert.Equal(t, "1 transaction found", one.Found)

	none := BuildExpenses(snap, NewExpenseFilter("bill", "housing"))
	assert.True(t, none.Empty())
	assert.Equal(t, "0 transactions found", none.Found)
	assert.Equal(t, "$0.00", none.Total)
}

func TestBuildExpenses_TruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("é", DescriptionLimit+5)
	snap := core.Snapshot{Transactions: []core.Transaction{{
		ID: "1", Date: core.NewDate(2023, time.July, 1), Amount: decimal.NewFromInt(1),
		Description: long, CategoryID: "nowhere",
	}}}

	row := BuildExpenses(snap, ExpenseFilter{}).Rows[0]
	assert.Equal(t, long, row.Description)
	assert.True(t, strings.HasSuffix(row.Short, "..."))
	assert.Equal(t, DescriptionLimit+3, utf8.RuneCountInString(row.Short))
	assert.Equal(t, core.UnknownCategoryName, row.CategoryName)
	assert.Equal(t, core.UnknownCategoryColor, row.CategoryColor)
}

func TestBuildBudgets(t *testing.T) {
	b := BuildBudgets(sample(t))

	require.Len(t, b.Cards, 8)

	food := b.Cards[0]
	assert.Equal(t, "Food & Dining", food.Title)
	assert.Equal(t, "$108.25 of $500.00", food.Subtitle)
	assert.Equal(t, 22, food.Percent)
	assert.Equal(t, "$391.75 remaining", food.Note)
	assert.Equal(t, core.StatusSuccess, food.Status)
	assert.False(t, food.Over)

	var housing BudgetCard
	for _, c := range b.Cards {
		if c.CategoryID == "housing" {
			housing = c
		}
	}
	assert.Equal(t, "$250.00 remaining", housing.Note)
	assert.Equal(t, 83, housing.Percent)
}

func TestBuildBudgets_OverAndDangling(t *testing.T) {
	snap := core.Snapshot{
		Transactions: []core.Transaction{
			{ID: "1", Date: core.NewDate(2023, time.July, 1), Amount: decimal.NewFromInt(130), Description: "x", CategoryID: "ghost"},
			{ID: "2", Date: core.NewDate(2023, time.July, 2), Amount: decimal.NewFromInt(90), Description: "y", CategoryID: "near"},
		},
		Budgets: []core.Budget{
			{ID: "a", CategoryID: "ghost", Amount: decimal.NewFromInt(100), Period: core.Monthly},
			{ID: "b", CategoryID: "near", Amount: decimal.NewFromInt(100), Period: core.Monthly},
			{ID: "c", CategoryID: "idle", Amount: decimal.NewFromInt(100), Period: core.Monthly},
		},
	}

	b := BuildBudgets(snap)
	require.Len(t, b.Cards, 3)

	assert.Equal(t, core.UnknownCategoryName, b.Cards[0].Title)
	assert.True(t, b.Cards[0].Over)
	assert.Equal(t, 100, b.Cards[0].Percent)
	assert.Equal(t, core.StatusDanger, b.Cards[0].Status)
	assert.Equal(t, "Over budget by $30.00", b.Cards[0].Note)

	assert.Equal(t, core.StatusWarning, b.Cards[1].Status)
	assert.Equal(t, "$10.00 remaining", b.Cards[1].Note)

	assert.Equal(t, "$0.00 of $100.00", b.Cards[2].Subtitle)
	assert.Equal(t, "$100.00 remaining", b.Cards[2].Note)
}

func TestBuildAnalytics(t *testing.T) {
	a := BuildAnalytics(sample(t))

	require.Len(t, a.Distribution, 8)
	require.Len(t, a.ByCategory, 8)
	for _, sl := range a.ByCategory {
		if sl.CategoryID == "housing" {
			assert.Equal(t, 100, sl.Percent)
		}
		if sl.CategoryID == "food" {
			assert.Equal(t, 9, sl.Percent)
		}
	}

	require.Len(t, a.Trend, 7)
	assert.Equal(t, "Jan", a.Trend[0].Label)
	assert.Equal(t, "$2,100.00", a.Trend[0].Amount)
	assert.Equal(t, "$2.1k", a.Trend[0].Axis)
	assert.Zero(t, a.Trend[0].X)
	assert.InDelta(t, 16, a.Trend[0].Y, 0.001)
	assert.InDelta(t, 100, a.Trend[6].X, 0.001)
	assert.InDelta(t, 0, a.Trend[6].Y, 0.001)
}

func TestBuildAnalytics_DerivesTrendWithoutSnapshotTrend(t *testing.T) {
	snap := sample(t)
	snap.Trend = nil

	a := BuildAnalytics(snap)
	require.Len(t, a.Trend, 1)
	assert.Equal(t, "Jul", a.Trend[0].Label)
	assert.Equal(t, "$1,925.27", a.Trend[0].Amount)
	assert.InDelta(t, 50, a.Trend[0].X, 0.001)
}

func TestPieGradient(t *testing.T) {
	assert.Equal(t, "conic-gradient(#9CA3AF 0% 100%)", PieGradient(nil))

	got := PieGradient([]Slice{
		{Color: "#111111", Start: 0, End: 25},
		{Color: "#222222", Start: 25, End: 100},
	})
	assert.Equal(t, "conic-gradient(#111111 0.00% 25.00%, #222222 25.00% 100.00%)", got)
}

func TestTrendPolyline(t *testing.T) {
	got := TrendPolyline([]TrendPoint{{X: 0, Y: 16}, {X: 100, Y: 0}})
	assert.Equal(t, "0.0,16.0 100.0,0.0", got)
	assert.Empty(t, TrendPolyline(nil))
}
