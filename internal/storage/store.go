// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"loantracker/internal/models"
)

// ErrNotFound is returned when a loan or payment id does not exist.
// Callers should test for it with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the interface for loan storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer, and makes the store trivially
// substitutable in tests.
type Store interface {
	// ListLoans returns all loans with their payments attached.
	// Loans are ordered most-recently-created first; each loan's payments
	// are ordered most-recent first.
	ListLoans(ctx context.Context) ([]models.Loan, error)

	// GetLoan retrieves a loan by id, payments attached.
	// Returns ErrNotFound if the id is unknown.
	GetLoan(ctx context.Context, loanID string) (*models.Loan, error)

	// CreateLoan persists a new loan. The loan.ID and loan.CreatedAt fields
	// will be populated by the store.
	CreateLoan(ctx context.Context, loan *models.Loan) error

	// UpdateLoan overwrites a loan's mutable fields (name, principal,
	// interest, due date, notes). Returns ErrNotFound if the id is unknown.
	UpdateLoan(ctx context.Context, loan *models.Loan) error

	// DeleteLoan removes a loan and all its payments atomically.
	// Returns ErrNotFound if the id is unknown.
	DeleteLoan(ctx context.Context, loanID string) error

	// CreatePayment persists a new payment under its parent loan.
	// The payment.ID field will be populated by the store.
	// Returns ErrNotFound if the parent loan id is unknown.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPayments returns a loan's payments, most recent first.
	ListPayments(ctx context.Context, loanID string) ([]models.Payment, error)

	// DeletePayment removes a payment by id and reports the parent loan id.
	// Returns ErrNotFound if the id is unknown.
	DeletePayment(ctx context.Context, paymentID string) (loanID string, err error)

	// Close releases any resources held by the store.
	Close() error
}
