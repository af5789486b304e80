// Package service implements the business layer between the HTTP handlers
// and the store: write-path validation, payment date defaulting and loan
// list caching.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"loantracker/internal/cache"
	"loantracker/internal/calculator"
	"loantracker/internal/models"
	"loantracker/internal/storage"
)

// loansCacheKey holds the serialized loan list. Every mutation deletes it.
const loansCacheKey = "loans:all"

// ValidationError is a user-correctable input problem. Handlers surface its
// message verbatim with a 400 status.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// CreateLoanInput is the decoded body of a loan creation request.
// Principal is a pointer so an absent field can be told apart from zero.
type CreateLoanInput struct {
	Name      string   `json:"name"`
	Principal *float64 `json:"principal"`
	Interest  float64  `json:"interest"`
	DueDate   string   `json:"dueDate"`
	Notes     string   `json:"notes"`
}

// UpdateLoanInput is the decoded body of a loan update request.
// Every field is optional; absent fields keep their stored value.
type UpdateLoanInput struct {
	Name      *string  `json:"name"`
	Principal *float64 `json:"principal"`
	Interest  *float64 `json:"interest"`
	DueDate   *string  `json:"dueDate"`
	Notes     *string  `json:"notes"`
}

// AddPaymentInput is the decoded body of a payment creation request.
type AddPaymentInput struct {
	Amount *float64 `json:"amount"`
	Note   string   `json:"note"`
	Date   string   `json:"date"`
}

// LoanService coordinates loan and payment operations.
type LoanService struct {
	store storage.Store
	cache cache.Cache
}

// NewLoanService creates a LoanService with the given storage and cache
// backends.
func NewLoanService(store storage.Store, c cache.Cache) *LoanService {
	return &LoanService{store: store, cache: c}
}

// ListLoans returns all loans with payments attached, newest loan first.
// Serves from the cache when the list has not changed since the last read.
func (s *LoanService) ListLoans(ctx context.Context) ([]models.Loan, error) {
	if cached, ok := s.cache.Get(ctx, loansCacheKey); ok {
		var loans []models.Loan
		if err := json.Unmarshal([]byte(cached), &loans); err == nil {
			slog.Debug("ListLoans served from cache", "count", len(loans))
			return loans, nil
		}
		// Unreadable cache entry: fall through to the store.
		s.invalidate(ctx)
	}

	loans, err := s.store.ListLoans(ctx)
	if err != nil {
		slog.Error("ListLoans failed", "error", err)
		return nil, err
	}

	if data, err := json.Marshal(loans); err == nil {
		if err := s.cache.Set(ctx, loansCacheKey, string(data)); err != nil {
			slog.Warn("Failed to cache loan list", "error", err)
		}
	}

	slog.Info("ListLoans successful", "count", len(loans))
	return loans, nil
}

// CreateLoan validates and persists a new loan.
// Name and principal are required; principal must be non-negative.
func (s *LoanService) CreateLoan(ctx context.Context, in CreateLoanInput) (*models.Loan, error) {
	slog.Info("CreateLoan request received", "name", in.Name)

	if in.Name == "" || in.Principal == nil {
		return nil, validationErrorf("name and principal required")
	}
	if *in.Principal < 0 {
		return nil, validationErrorf("principal must be non-negative")
	}

	loan := &models.Loan{
		Name:      in.Name,
		Principal: *in.Principal,
		Interest:  in.Interest,
		DueDate:   in.DueDate,
		Notes:     in.Notes,
		Payments:  []models.Payment{},
	}
	if err := s.store.CreateLoan(ctx, loan); err != nil {
		slog.Error("CreateLoan failed", "error", err)
		return nil, err
	}
	s.invalidate(ctx)

	slog.Info("Loan created", "loan_id", loan.ID, "principal", loan.Principal)
	return loan, nil
}

// UpdateLoan applies the provided subset of fields to an existing loan.
func (s *LoanService) UpdateLoan(ctx context.Context, loanID string, in UpdateLoanInput) (*models.Loan, error) {
	slog.Info("UpdateLoan request received", "loan_id", loanID)

	loan, err := s.store.GetLoan(ctx, loanID)
	if err != nil {
		slog.Error("UpdateLoan failed", "loan_id", loanID, "error", err)
		return nil, err
	}

	if in.Name != nil {
		loan.Name = *in.Name
	}
	if in.Principal != nil {
		if *in.Principal < 0 {
			return nil, validationErrorf("principal must be non-negative")
		}
		loan.Principal = *in.Principal
	}
	if in.Interest != nil {
		loan.Interest = *in.Interest
	}
	if in.DueDate != nil {
		loan.DueDate = *in.DueDate
	}
	if in.Notes != nil {
		loan.Notes = *in.Notes
	}

	if err := s.store.UpdateLoan(ctx, loan); err != nil {
		slog.Error("UpdateLoan failed", "loan_id", loanID, "error", err)
		return nil, err
	}
	s.invalidate(ctx)

	slog.Info("Loan updated", "loan_id", loan.ID)
	return loan, nil
}

// DeleteLoan removes a loan and all its payments.
func (s *LoanService) DeleteLoan(ctx context.Context, loanID string) error {
	slog.Info("DeleteLoan request received", "loan_id", loanID)

	if err := s.store.DeleteLoan(ctx, loanID); err != nil {
		slog.Error("DeleteLoan failed", "loan_id", loanID, "error", err)
		return err
	}
	s.invalidate(ctx)

	slog.Info("Loan deleted", "loan_id", loanID)
	return nil
}

// AddPayment validates and records a payment against a loan, returning the
// created payment and the loan's refreshed payment list (newest first).
// The date defaults to the current time when omitted.
func (s *LoanService) AddPayment(ctx context.Context, loanID string, in AddPaymentInput) (*models.Payment, []models.Payment, error) {
	slog.Info("AddPayment request received", "loan_id", loanID)

	loan, err := s.store.GetLoan(ctx, loanID)
	if err != nil {
		slog.Error("AddPayment failed", "loan_id", loanID, "error", err)
		return nil, nil, err
	}

	if in.Amount == nil || *in.Amount <= 0 {
		return nil, nil, validationErrorf("amount required")
	}

	date := in.Date
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}

	payment := &models.Payment{
		LoanID: loanID,
		Amount: *in.Amount,
		Date:   date,
		Note:   in.Note,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("AddPayment failed", "loan_id", loanID, "error", err)
		return nil, nil, err
	}
	s.invalidate(ctx)

	payments, err := s.store.ListPayments(ctx, loanID)
	if err != nil {
		slog.Error("AddPayment failed to refresh payments", "loan_id", loanID, "error", err)
		return nil, nil, err
	}

	amounts := make([]float64, len(payments))
	for i, p := range payments {
		amounts[i] = p.Amount
	}
	totals := calculator.Totals(loan.Principal, loan.Interest, amounts)
	slog.Info("Payment recorded",
		"loan_id", loanID,
		"payment_id", payment.ID,
		"amount", payment.Amount,
		"balance", totals.Balance,
	)

	return payment, payments, nil
}

// DeletePayment removes a payment and reports the parent loan id.
func (s *LoanService) DeletePayment(ctx context.Context, paymentID string) (string, error) {
	slog.Info("DeletePayment request received", "payment_id", paymentID)

	loanID, err := s.store.DeletePayment(ctx, paymentID)
	if err != nil {
		slog.Error("DeletePayment failed", "payment_id", paymentID, "error", err)
		return "", err
	}
	s.invalidate(ctx)

	slog.Info("Payment deleted", "payment_id", paymentID, "loan_id", loanID)
	return loanID, nil
}

func (s *LoanService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, loansCacheKey); err != nil {
		slog.Warn("Failed to invalidate loan list cache", "error", err)
	}
}
