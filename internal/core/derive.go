package core

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SpendingByCategory sums transaction amounts per category id. Output order
// follows the first occurrence of each id in txs. Categories without
// transactions do not appear; callers treat a missing id as zero.
func SpendingByCategory(txs []Transaction) []CategoryTotal {
	index := make(map[string]int, len(txs))
	out := make([]CategoryTotal, 0)
	for _, t := range txs {
		i, ok := index[t.CategoryID]
		if !ok {
			i = len(out)
			index[t.CategoryID] = i
			out = append(out, CategoryTotal{CategoryID: t.CategoryID, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(t.Amount)
	}
	return out
}

// TotalSpending sums every transaction amount.
func TotalSpending(txs []Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// TotalBudget sums every budget amount.
func TotalBudget(budgets []Budget) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range budgets {
		sum = sum.Add(b.Amount)
	}
	return sum
}

// BudgetVsActual returns one row per budget, in budget order. Spending in
// categories that have no budget is not reported.
func BudgetVsActual(txs []Transaction, budgets []Budget) []BudgetActual {
	spent := make(map[string]decimal.Decimal)
	for _, ct := range SpendingByCategory(txs) {
		spent[ct.CategoryID] = ct.Total
	}
	out := make([]BudgetActual, 0, len(budgets))
	for _, b := range budgets {
		actual, ok := spent[b.CategoryID]
		if !ok {
			actual = decimal.Zero
		}
		out = append(out, BudgetActual{
			CategoryID: b.CategoryID,
			Budgeted:   b.Amount,
			Actual:     actual,
		})
	}
	return out
}

// Percentage returns value as a whole percentage of total, capped at 100.
// A zero total yields 0. Negative inputs are not guarded.
func Percentage(value, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	p := value.Div(total).Mul(hundred).Round(0).IntPart()
	if p > 100 {
		return 100
	}
	return int(p)
}

// RecentTransactions returns at most n transactions, newest first. Ties keep
// input order.
func RecentTransactions(txs []Transaction, n int) []Transaction {
	sorted := sortedByDateDesc(txs)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TopCategories returns at most n category totals, largest first. Ties keep
// input order.
func TopCategories(spending []CategoryTotal, n int) []CategoryTotal {
	sorted := make([]CategoryTotal, len(spending))
	copy(sorted, spending)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total.GreaterThan(sorted[j].Total)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// AllCategories is the category filter value that matches every transaction.
const AllCategories = "all"

// FilterTransactions keeps transactions whose description contains query
// (case-insensitive) and whose category matches categoryID. An empty
// categoryID or AllCategories matches any category. The result is newest
// first.
func FilterTransactions(txs []Transaction, query, categoryID string) []Transaction {
	q := strings.ToLower(query)
	out := make([]Transaction, 0, len(txs))
	for _, t := range sortedByDateDesc(txs) {
		if !strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		if categoryID != "" && categoryID != AllCategories && t.CategoryID != categoryID {
			continue
		}
		out = append(out, t)
	}
	return out
}

// MonthlyTotals sums transactions per calendar month, oldest month first.
func MonthlyTotals(txs []Transaction) []MonthlyTotal {
	type key struct {
		year  int
		month time.Month
	}
	sums := make(map[key]decimal.Decimal)
	for _, t := range txs {
		k := key{t.Date.Time.Year(), t.Date.Time.Month()}
		sums[k] = sums[k].Add(t.Amount)
	}
	out := make([]MonthlyTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, MonthlyTotal{Year: k.year, Month: k.month, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

func sortedByDateDesc(txs []Transaction) []Transaction {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date.Time)
	})
	return sorted
}
