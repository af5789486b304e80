package calculator

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// goldenVector mirrors testdata/vectors.json. The browser client implements
// the same formula and must satisfy the same vectors.
type goldenVector struct {
	Name      string    `json:"name"`
	Principal float64   `json:"principal"`
	Interest  float64   `json:"interest"`
	Payments  []float64 `json:"payments"`
	TotalOwed float64   `json:"totalOwed"`
	TotalPaid float64   `json:"totalPaid"`
	Balance   float64   `json:"balance"`
}

func TestTotalsGoldenVectors(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "vectors.json"))
	if err != nil {
		t.Fatalf("failed to read golden vectors: %v", err)
	}

	var vectors []goldenVector
	if err := json.Unmarshal(data, &vectors); err != nil {
		t.Fatalf("failed to parse golden vectors: %v", err)
	}
	if len(vectors) == 0 {
		t.Fatal("no golden vectors found")
	}

	for _, v := range vectors {
		t.Run(v.Name, func(t *testing.T) {
			got := Totals(v.Principal, v.Interest, v.Payments)
			if math.Abs(got.TotalOwed-v.TotalOwed) > 1e-9 {
				t.Errorf("TotalOwed = %v, want %v", got.TotalOwed, v.TotalOwed)
			}
			if math.Abs(got.TotalPaid-v.TotalPaid) > 1e-9 {
				t.Errorf("TotalPaid = %v, want %v", got.TotalPaid, v.TotalPaid)
			}
			if math.Abs(got.Balance-v.Balance) > 1e-9 {
				t.Errorf("Balance = %v, want %v", got.Balance, v.Balance)
			}
		})
	}
}

func TestTotalsCoercesMalformedInput(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		interest  float64
		payments  []float64
		want      LoanTotals
	}{
		{
			name:      "NaN principal treated as zero",
			principal: math.NaN(),
			interest:  5,
			payments:  []float64{100},
			want:      LoanTotals{TotalOwed: 0, TotalPaid: 100, Balance: 0},
		},
		{
			name:      "infinite interest treated as zero",
			principal: 1000,
			interest:  math.Inf(1),
			payments:  nil,
			want:      LoanTotals{TotalOwed: 1000, TotalPaid: 0, Balance: 1000},
		},
		{
			name:      "NaN payment treated as zero",
			principal: 1000,
			interest:  0,
			payments:  []float64{math.NaN(), 250},
			want:      LoanTotals{TotalOwed: 1000, TotalPaid: 250, Balance: 750},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Totals(tt.principal, tt.interest, tt.payments)
			if got != tt.want {
				t.Errorf("Totals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRollupMatchesPerLoanTotals(t *testing.T) {
	loans := []LoanForRollup{
		{Principal: 10000, Interest: 5, DueDate: "2026-10-01", Payments: []float64{1000, 2000}},
		{Principal: 1000, Interest: 0, Payments: []float64{2000}}, // overpaid
		{Principal: 199.99, Interest: 2.5, DueDate: "2026-09-15", Payments: []float64{49.99}},
		{Principal: 500, Interest: 20, DueDate: "2027-01-01", Payments: nil},
	}

	summary := Rollup(loans)

	// The aggregate must equal the sum of per-loan calculator outputs.
	var wantPrincipal, wantPaid, wantBalance float64
	for _, loan := range loans {
		totals := Totals(loan.Principal, loan.Interest, loan.Payments)
		wantPrincipal += loan.Principal
		wantPaid += totals.TotalPaid
		wantBalance += totals.Balance
	}

	if math.Abs(summary.TotalPrincipal-wantPrincipal) > 1e-9 {
		t.Errorf("TotalPrincipal = %v, want %v", summary.TotalPrincipal, wantPrincipal)
	}
	if math.Abs(summary.TotalPaid-wantPaid) > 1e-9 {
		t.Errorf("TotalPaid = %v, want %v", summary.TotalPaid, wantPaid)
	}
	if math.Abs(summary.TotalBalance-wantBalance) > 1e-9 {
		t.Errorf("TotalBalance = %v, want %v", summary.TotalBalance, wantBalance)
	}
	if summary.NextDue != "2026-09-15" {
		t.Errorf("NextDue = %q, want %q", summary.NextDue, "2026-09-15")
	}
}

func TestRollupNextDue(t *testing.T) {
	tests := []struct {
		name  string
		loans []LoanForRollup
		want  string
	}{
		{
			name:  "no loans",
			loans: nil,
			want:  "",
		},
		{
			name: "all due dates empty",
			loans: []LoanForRollup{
				{Principal: 100},
				{Principal: 200},
			},
			want: "",
		},
		{
			name: "earliest wins regardless of order",
			loans: []LoanForRollup{
				{Principal: 100, DueDate: "2027-03-01"},
				{Principal: 100, DueDate: "2026-11-20"},
				{Principal: 100, DueDate: "2026-12-05"},
			},
			want: "2026-11-20",
		},
		{
			name: "RFC3339 and date-only compare correctly",
			loans: []LoanForRollup{
				{Principal: 100, DueDate: "2026-10-02T08:00:00Z"},
				{Principal: 100, DueDate: "2026-10-01"},
			},
			want: "2026-10-01",
		},
		{
			name: "unparseable dates are skipped",
			loans: []LoanForRollup{
				{Principal: 100, DueDate: "whenever"},
				{Principal: 100, DueDate: "2026-12-31"},
			},
			want: "2026-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rollup(tt.loans).NextDue; got != tt.want {
				t.Errorf("NextDue = %q, want %q", got, tt.want)
			}
		})
	}
}
