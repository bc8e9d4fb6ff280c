// Package view turns a snapshot into display-ready page models. Every
// string is preformatted and every category id is already resolved, so
// templates and the terminal report only lay things out.
package view

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"budgetwise/internal/core"
	"budgetwise/internal/format"
)

const (
	RecentLimit        = 5
	TopCategoriesLimit = 4
	DescriptionLimit   = 40
)

// TransactionRow is one line of a transaction list.
type TransactionRow struct {
	ID            string `json:"id"`
	Description   string `json:"description"`
	Short         string `json:"-"`
	Date          string `json:"date"`
	Amount        string `json:"amount"`
	CategoryID    string `json:"category_id"`
	CategoryName  string `json:"category"`
	CategoryColor string `json:"color"`
}

// Slice is one category's share of a chart.
type Slice struct {
	CategoryID string  `json:"category_id"`
	Label      string  `json:"name"`
	Color      string  `json:"color"`
	Value      float64 `json:"value"`
	Amount     string  `json:"amount"`
	Percent    int     `json:"percent"`
	Start      float64 `json:"-"` // pie offset, percent of the full circle
	End        float64 `json:"-"`
}

// CategoryBar is a top-category row with its share of total spending.
type CategoryBar struct {
	Name    string
	Color   string
	Amount  string
	Percent int
}

type Dashboard struct {
	TotalSpent    string
	TotalBudget   string
	Percent       int
	Status        core.Status
	Usage         string
	Breakdown     []Slice
	TopCategories []CategoryBar
	Recent        []TransactionRow
}

type CategoryOption struct {
	ID       string
	Name     string
	Selected bool
}

type Expenses struct {
	Filter  ExpenseFilter
	Options []CategoryOption
	Rows    []TransactionRow
	Found   string
	Total   string
}

// Empty reports whether the filter matched nothing.
func (e Expenses) Empty() bool { return len(e.Rows) == 0 }

type BudgetCard struct {
	CategoryID string
	Title      string
	Subtitle   string
	Color      string
	Spent      string
	Percent    int
	Status     core.Status
	Over       bool
	Note       string
}

type Budgets struct {
	Cards []BudgetCard
}

// TrendPoint is one month of the spending trend.
type TrendPoint struct {
	Label  string  `json:"month"`
	Value  float64 `json:"amount"`
	Amount string  `json:"formatted"`
	Axis   string  `json:"axis"`
	X      float64 `json:"-"` // chart coordinates, 0..100
	Y      float64 `json:"-"`
}

type Analytics struct {
	Distribution []Slice      `json:"distribution"`
	ByCategory   []Slice      `json:"by_category"`
	Trend        []TrendPoint `json:"trend"`
}

// BuildDashboard assembles the overview page.
func BuildDashboard(s core.Snapshot) Dashboard {
	spent := core.TotalSpending(s.Transactions)
	budget := core.TotalBudget(s.Budgets)
	spending := core.SpendingByCategory(s.Transactions)
	pct := core.Percentage(spent, budget)

	top := core.TopCategories(spending, TopCategoriesLimit)
	bars := make([]CategoryBar, 0, len(top))
	for _, ct := range top {
		c := s.CategoryOrPlaceholder(ct.CategoryID)
		bars = append(bars, CategoryBar{
			Name:    c.Name,
			Color:   c.Color,
			Amount:  format.Currency(ct.Total),
			Percent: core.Percentage(ct.Total, spent),
		})
	}

	return Dashboard{
		TotalSpent:    format.Currency(spent),
		TotalBudget:   format.Currency(budget),
		Percent:       pct,
		Status:        core.OverallStatus(pct),
		Usage:         fmt.Sprintf("%s of your monthly budget used", format.Percent(pct)),
		Breakdown:     pieSlices(s, spending, spent),
		TopCategories: bars,
		Recent:        rows(s, core.RecentTransactions(s.Transactions, RecentLimit)),
	}
}

// BuildExpenses assembles the transaction list for f.
func BuildExpenses(s core.Snapshot, f ExpenseFilter) Expenses {
	matched := core.FilterTransactions(s.Transactions, f.Query, f.Category())

	options := make([]CategoryOption, 0, len(s.Categories)+1)
	options = append(options, CategoryOption{
		ID:       core.AllCategories,
		Name:     "All Categories",
		Selected: f.Category() == core.AllCategories,
	})
	for _, c := range s.Categories {
		options = append(options, CategoryOption{ID: c.ID, Name: c.Name, Selected: f.Category() == c.ID})
	}

	return Expenses{
		Filter:  f,
		Options: options,
		Rows:    rows(s, matched),
		Found:   found(len(matched)),
		Total:   format.Currency(core.TotalSpending(matched)),
	}
}

// BuildBudgets assembles one card per budget, in budget order.
func BuildBudgets(s core.Snapshot) Budgets {
	bva := core.BudgetVsActual(s.Transactions, s.Budgets)
	cards := make([]BudgetCard, 0, len(bva))
	for _, row := range bva {
		c := s.CategoryOrPlaceholder(row.CategoryID)
		card := BudgetCard{
			CategoryID: row.CategoryID,
			Title:      c.Name,
			Subtitle:   format.Currency(row.Actual) + " of " + format.Currency(row.Budgeted),
			Color:      c.Color,
			Spent:      format.Currency(row.Actual),
			Percent:    core.Percentage(row.Actual, row.Budgeted),
			Status:     core.BudgetStatus(row),
			Over:       row.Over(),
		}
		if card.Over {
			card.Note = "Over budget by " + format.Currency(row.Overspend())
		} else {
			card.Note = format.Currency(row.Remaining()) + " remaining"
		}
		cards = append(cards, card)
	}
	return Budgets{Cards: cards}
}

// BuildAnalytics assembles the chart data. The trend comes from the
// snapshot when present and is otherwise derived from the transactions.
func BuildAnalytics(s core.Snapshot) Analytics {
	spending := core.SpendingByCategory(s.Transactions)
	total := core.TotalSpending(s.Transactions)

	trend := s.Trend
	if len(trend) == 0 {
		trend = core.MonthlyTotals(s.Transactions)
	}

	dist := pieSlices(s, spending, total)
	return Analytics{
		Distribution: dist,
		ByCategory:   barSlices(dist),
		Trend:        trendPoints(trend),
	}
}

// PieGradient renders slices as a CSS conic-gradient.
func PieGradient(slices []Slice) string {
	if len(slices) == 0 {
		return "conic-gradient(" + core.UnknownCategoryColor + " 0% 100%)"
	}
	stops := make([]string, 0, len(slices))
	for _, sl := range slices {
		stops = append(stops, fmt.Sprintf("%s %.2f%% %.2f%%", sl.Color, sl.Start, sl.End))
	}
	return "conic-gradient(" + strings.Join(stops, ", ") + ")"
}

// TrendPolyline renders trend points as SVG polyline coordinates.
func TrendPolyline(points []TrendPoint) string {
	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
	}
	return strings.Join(coords, " ")
}

func rows(s core.Snapshot, txs []core.Transaction) []TransactionRow {
	out := make([]TransactionRow, 0, len(txs))
	for _, t := range txs {
		c := s.CategoryOrPlaceholder(t.CategoryID)
		out = append(out, TransactionRow{
			ID:            t.ID,
			Description:   t.Description,
			Short:         format.Truncate(t.Description, DescriptionLimit),
			Date:          format.Date(t.Date.Time),
			Amount:        format.Currency(t.Amount),
			CategoryID:    t.CategoryID,
			CategoryName:  c.Name,
			CategoryColor: c.Color,
		})
	}
	return out
}

func pieSlices(s core.Snapshot, spending []core.CategoryTotal, total decimal.Decimal) []Slice {
	out := make([]Slice, 0, len(spending))
	var offset float64
	totalF := total.InexactFloat64()
	for _, ct := range spending {
		c := s.CategoryOrPlaceholder(ct.CategoryID)
		v := ct.Total.InexactFloat64()
		share := 0.0
		if totalF > 0 {
			share = v / totalF * 100
		}
		out = append(out, Slice{
			CategoryID: ct.CategoryID,
			Label:      c.Name,
			Color:      c.Color,
			Value:      v,
			Amount:     format.Currency(ct.Total),
			Percent:    core.Percentage(ct.Total, total),
			Start:      offset,
			End:        offset + share,
		})
		offset += share
	}
	return out
}

// barSlices rescales Percent so the largest category fills the bar.
func barSlices(dist []Slice) []Slice {
	out := make([]Slice, len(dist))
	copy(out, dist)
	var peak float64
	for _, sl := range out {
		if sl.Value > peak {
			peak = sl.Value
		}
	}
	for i := range out {
		if peak > 0 {
			out[i].Percent = int(out[i].Value/peak*100 + 0.5)
		}
	}
	return out
}

func trendPoints(trend []core.MonthlyTotal) []TrendPoint {
	var peak float64
	for _, m := range trend {
		if v := m.Amount.InexactFloat64(); v > peak {
			peak = v
		}
	}
	out := make([]TrendPoint, 0, len(trend))
	for i, m := range trend {
		v := m.Amount.InexactFloat64()
		x := 50.0
		if len(trend) > 1 {
			x = float64(i) / float64(len(trend)-1) * 100
		}
		y := 100.0
		if peak > 0 {
			y = 100 - v/peak*100
		}
		out = append(out, TrendPoint{
			Label:  m.Month.String()[:3],
			Value:  v,
			Amount: format.Currency(m.Amount),
			Axis:   format.CompactCurrency(m.Amount),
			X:      x,
			Y:      y,
		})
	}
	return out
}

func found(n int) string {
	if n == 1 {
		return "1 transaction found"
	}
	return fmt.Sprintf("%d transactions found", n)
}
