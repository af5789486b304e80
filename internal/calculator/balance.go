// Package calculator implements the balance math for loans.
//
// It is the single server-side source of truth for financial computation:
// every place that displays a balance (per-loan views, the dashboard rollup,
// the browser client) must agree with the formulas here. The functions are
// pure and never fail; malformed numeric input is coerced to zero for display
// purposes only. Write-path validation is stricter and lives in the service
// layer.
package calculator

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// LoanTotals is the computed financial summary for a single loan.
type LoanTotals struct {
	TotalOwed float64 // principal plus simple interest
	TotalPaid float64 // sum of all payment amounts
	Balance   float64 // max(0, TotalOwed - TotalPaid)
}

// LoanForRollup carries the minimal loan information needed for aggregate
// dashboard totals.
type LoanForRollup struct {
	Principal float64
	Interest  float64
	DueDate   string
	Payments  []float64
}

// Summary aggregates totals across all loans for the dashboard.
type Summary struct {
	TotalPrincipal float64
	TotalPaid      float64
	TotalBalance   float64
	NextDue        string // earliest non-empty due date, "" if none
}

var hundred = decimal.NewFromInt(100)

// Totals computes owed, paid and outstanding balance for one loan:
//
//	totalOwed = P + (I/100) * P   (simple interest, applied once)
//	totalPaid = sum of payment amounts
//	balance   = max(0, totalOwed - totalPaid)
//
// Interest is a percentage: Totals(10000, 5, ...) owes 10500.
func Totals(principal, interest float64, payments []float64) LoanTotals {
	p := sanitize(principal)
	owed := p.Add(p.Mul(sanitize(interest)).Div(hundred))

	paid := decimal.Zero
	for _, amount := range payments {
		paid = paid.Add(sanitize(amount))
	}

	balance := owed.Sub(paid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	owedF, _ := owed.Float64()
	paidF, _ := paid.Float64()
	balanceF, _ := balance.Float64()
	return LoanTotals{TotalOwed: owedF, TotalPaid: paidF, Balance: balanceF}
}

// Rollup aggregates per-loan totals into dashboard-wide sums.
// Each loan's contribution is computed with Totals, so the aggregate can
// never drift from the per-loan views.
func Rollup(loans []LoanForRollup) Summary {
	principal := decimal.Zero
	paid := decimal.Zero
	balance := decimal.Zero
	var nextDue string
	var nextDueTime time.Time

	for _, loan := range loans {
		totals := Totals(loan.Principal, loan.Interest, loan.Payments)
		principal = principal.Add(sanitize(loan.Principal))
		paid = paid.Add(decimal.NewFromFloat(totals.TotalPaid))
		balance = balance.Add(decimal.NewFromFloat(totals.Balance))

		if loan.DueDate == "" {
			continue
		}
		due, ok := parseDate(loan.DueDate)
		if !ok {
			continue
		}
		if nextDue == "" || due.Before(nextDueTime) {
			nextDue = loan.DueDate
			nextDueTime = due
		}
	}

	principalF, _ := principal.Float64()
	paidF, _ := paid.Float64()
	balanceF, _ := balance.Float64()
	return Summary{
		TotalPrincipal: principalF,
		TotalPaid:      paidF,
		TotalBalance:   balanceF,
		NextDue:        nextDue,
	}
}

// sanitize coerces NaN and infinities to zero. decimal.NewFromFloat panics
// on non-finite input, and display math must never fail.
func sanitize(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
