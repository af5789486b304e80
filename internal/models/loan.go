package models

// Loan represents a tracked debt.
//
// Interest is a simple rate: the total owed is principal plus interest
// applied once to the principal, never compounded per period.
type Loan struct {
	// ID is the unique identifier for the loan (UUID format).
	ID string `json:"id"`

	// Name is the display name of the loan (e.g., "Car loan", "Dentist").
	Name string `json:"name"`

	// Principal is the original amount owed, before interest. Non-negative.
	Principal float64 `json:"principal"`

	// Interest is the simple interest rate as a percentage (5 means 5%).
	Interest float64 `json:"interest"`

	// DueDate is an optional ISO-8601 date; empty when the loan has none.
	DueDate string `json:"dueDate"`

	// Notes is optional free-form text.
	Notes string `json:"notes"`

	// CreatedAt is the Unix timestamp when the loan was created.
	CreatedAt int64 `json:"createdAt"`

	// Payments are the loan's payments, most recent first.
	// Never nil on API responses, so clients always see an array.
	Payments []Payment `json:"payments"`
}

// Payment is an amount applied against a loan's balance.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// LoanID references the parent loan. A payment cannot outlive its loan.
	LoanID string `json:"loanId"`

	// Amount is the paid amount. Strictly positive at creation.
	Amount float64 `json:"amount"`

	// Date is the ISO-8601 timestamp of the payment.
	Date string `json:"date"`

	// Note is optional free-form text.
	Note string `json:"note"`
}
