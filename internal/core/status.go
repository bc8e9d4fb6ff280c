package core

import "github.com/shopspring/decimal"

// Status is the colour band a progress bar is drawn in.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// OverallStatus classifies the share of the total budget already spent.
func OverallStatus(percent int) Status {
	switch {
	case percent > 90:
		return StatusDanger
	case percent > 75:
		return StatusWarning
	default:
		return StatusSuccess
	}
}

// BudgetStatus classifies a single budget card. A category at or past its
// ceiling is danger regardless of the clamped percentage.
func BudgetStatus(row BudgetActual) Status {
	if row.Over() {
		return StatusDanger
	}
	if Percentage(row.Actual, row.Budgeted) > 85 {
		return StatusWarning
	}
	return StatusSuccess
}

// Over reports whether spending reached the ceiling. A zero budget with no
// spending is not over.
func (r BudgetActual) Over() bool {
	if r.Budgeted.IsZero() {
		return r.Actual.IsPositive()
	}
	return r.Actual.GreaterThanOrEqual(r.Budgeted)
}

// Remaining is what is left under the ceiling, or zero when over.
func (r BudgetActual) Remaining() decimal.Decimal {
	if r.Over() {
		return decimal.Zero
	}
	return r.Budgeted.Sub(r.Actual)
}

// Overspend is how far spending went past the ceiling, or zero when under.
func (r BudgetActual) Overspend() decimal.Decimal {
	if !r.Over() {
		return decimal.Zero
	}
	return r.Actual.Sub(r.Budgeted)
}
