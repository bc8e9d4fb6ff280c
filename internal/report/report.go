// Package report renders the dashboard pages as styled terminal text.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"budgetwise/internal/core"
	"budgetwise/internal/view"
)

// Page names accepted by Render.
const (
	PageDashboard = "dashboard"
	PageExpenses  = "expenses"
	PageBudgets   = "budgets"
	PageAnalytics = "analytics"
)

// Pages lists the page names in navigation order.
var Pages = []string{PageDashboard, PageExpenses, PageBudgets, PageAnalytics}

var ErrUnknownPage = errors.New("unknown page")

const barWidth = 20

// Report writes pages to out. Colour is used only when out is a terminal.
type Report struct {
	out io.Writer

	title    lipgloss.Style
	subtitle lipgloss.Style
	heading  lipgloss.Style
	subtle   lipgloss.Style
	amount   lipgloss.Style
	box      lipgloss.Style
	status   map[core.Status]lipgloss.Style
}

func New(out io.Writer) *Report {
	r := lipgloss.NewRenderer(out)
	return &Report{
		out:      out,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		subtitle: r.NewStyle().Foreground(lipgloss.Color("#6B7280")).MarginBottom(1),
		heading:  r.NewStyle().Bold(true),
		subtle:   r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		amount:   r.NewStyle().Bold(true).Align(lipgloss.Right),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E5E7EB")).
			Padding(0, 1),
		status: map[core.Status]lipgloss.Style{
			core.StatusSuccess: r.NewStyle().Foreground(lipgloss.Color("#10B981")),
			core.StatusWarning: r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
			core.StatusDanger:  r.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		},
	}
}

// Render builds page from snap and writes it. The filter applies to the
// expenses page only.
func (r *Report) Render(page string, snap core.Snapshot, filter view.ExpenseFilter) error {
	var out string
	switch page {
	case PageDashboard:
		out = r.Dashboard(view.BuildDashboard(snap))
	case PageExpenses:
		out = r.Expenses(view.BuildExpenses(snap, filter))
	case PageBudgets:
		out = r.Budgets(view.BuildBudgets(snap))
	case PageAnalytics:
		out = r.Analytics(view.BuildAnalytics(snap))
	default:
		return fmt.Errorf("%w %q (want one of %s)", ErrUnknownPage, page, strings.Join(Pages, ", "))
	}
	_, err := io.WriteString(r.out, out+"\n")
	return err
}

func (r *Report) Dashboard(d view.Dashboard) string {
	overview := r.card("Monthly Overview", "Budget vs. Spending",
		r.heading.Render(d.TotalSpent)+" "+r.subtle.Render("of "+d.TotalBudget+" budget"),
		r.bar(d.Percent, d.Status),
		d.Usage,
	)

	top := make([]string, 0, len(d.TopCategories))
	for _, c := range d.TopCategories {
		top = append(top, fmt.Sprintf("%-16s %s %s", c.Name, r.bar(c.Percent, ""), c.Amount))
	}
	if len(top) == 0 {
		top = append(top, r.subtle.Render("No spending yet"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		r.header("Financial Overview", "Your spending at a glance"),
		overview,
		r.card("Top Categories", "Where you spend the most", top...),
		r.card("Recent Transactions", "Last 5 transactions", r.transactions(d.Recent)...),
	)
}

func (r *Report) Expenses(e view.Expenses) string {
	lines := []string{r.heading.Render(e.Found) + "  " + r.subtle.Render("Total: "+e.Total)}
	if e.Filter.Active() {
		lines = append(lines, r.subtle.Render(fmt.Sprintf("search %q, category %s", e.Filter.Query, e.Filter.Category())))
	}
	if e.Empty() {
		lines = append(lines, "", r.subtle.Render("No transactions found"))
	} else {
		lines = append(lines, "")
		lines = append(lines, r.transactions(e.Rows)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		r.header("Expenses", "Manage and track your spending"),
		r.box.Render(strings.Join(lines, "\n")),
	)
}

func (r *Report) Budgets(b view.Budgets) string {
	blocks := []string{r.header("Budget Goals", "Track your spending against budget targets")}
	for _, c := range b.Cards {
		blocks = append(blocks, r.card(c.Title, c.Subtitle,
			r.bar(c.Percent, c.Status),
			r.statusStyle(c.Status).Render(c.Note),
		))
	}
	if len(b.Cards) == 0 {
		blocks = append(blocks, r.subtle.Render("No budgets defined"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *Report) Analytics(a view.Analytics) string {
	dist := make([]string, 0, len(a.Distribution))
	for _, s := range a.Distribution {
		dist = append(dist, fmt.Sprintf("%-16s %3d%%  %s", s.Label, s.Percent, s.Amount))
	}
	bars := make([]string, 0, len(a.ByCategory))
	for _, s := range a.ByCategory {
		bars = append(bars, fmt.Sprintf("%-16s %s", s.Label, r.bar(s.Percent, "")))
	}
	trend := make([]string, 0, len(a.Trend))
	for _, p := range a.Trend {
		trend = append(trend, fmt.Sprintf("%-4s %s %s", p.Label, r.bar(int(100-p.Y+0.5), ""), p.Axis))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		r.header("Spending Analytics", "Visualize your spending patterns"),
		r.card("Spending Distribution", "By Category", dist...),
		r.card("Spending by Category", "Bar Chart", bars...),
		r.card("Monthly Spending Trend", fmt.Sprintf("Past %d months", len(a.Trend)), trend...),
	)
}

func (r *Report) header(title, subtitle string) string {
	return r.title.Render(title) + "\n" + r.subtitle.Render(subtitle)
}

func (r *Report) card(title, subtitle string, lines ...string) string {
	head := r.heading.Render(title)
	if subtitle != "" {
		head += "\n" + r.subtle.Render(subtitle)
	}
	return r.box.Render(head + "\n\n" + strings.Join(lines, "\n"))
}

func (r *Report) transactions(rows []view.TransactionRow) []string {
	if len(rows) == 0 {
		return []string{r.subtle.Render("No transactions found")}
	}
	out := make([]string, 0, len(rows))
	for _, t := range rows {
		out = append(out, fmt.Sprintf("%-12s %-43s %-16s %s",
			t.Date, t.Short, t.CategoryName, r.amount.Render(t.Amount)))
	}
	return out
}

// bar draws a fixed-width progress bar. An empty status draws it uncoloured.
func (r *Report) bar(percent int, status core.Status) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * barWidth / 100
	b := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	if status != "" {
		b = r.statusStyle(status).Render(b)
	}
	return b + fmt.Sprintf(" %3d%%", percent)
}

func (r *Report) statusStyle(s core.Status) lipgloss.Style {
	if st, ok := r.status[s]; ok {
		return st
	}
	return r.subtle
}
