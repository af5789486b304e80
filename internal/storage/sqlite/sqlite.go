// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"loantracker/internal/models"
	"loantracker/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListLoans retrieves all loans with their payments attached,
// most-recently-created loan first.
func (s *SQLiteStore) ListLoans(ctx context.Context) ([]models.Loan, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, principal, interest, due_date, notes, created_at FROM loans ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	loans := []models.Loan{}
	for rows.Next() {
		var loan models.Loan
		if err := rows.Scan(&loan.ID, &loan.Name, &loan.Principal, &loan.Interest, &loan.DueDate, &loan.Notes, &loan.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loans: %w", err)
	}

	for i := range loans {
		payments, err := s.ListPayments(ctx, loans[i].ID)
		if err != nil {
			return nil, err
		}
		loans[i].Payments = payments
	}

	return loans, nil
}

// GetLoan retrieves a loan by ID, payments attached.
func (s *SQLiteStore) GetLoan(ctx context.Context, loanID string) (*models.Loan, error) {
	loan := &models.Loan{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, principal, interest, due_date, notes, created_at FROM loans WHERE id = ?",
		loanID,
	).Scan(&loan.ID, &loan.Name, &loan.Principal, &loan.Interest, &loan.DueDate, &loan.Notes, &loan.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("loan %s: %w", loanID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	payments, err := s.ListPayments(ctx, loanID)
	if err != nil {
		return nil, err
	}
	loan.Payments = payments

	return loan, nil
}

// CreateLoan persists a new loan, assigning its ID and creation time.
func (s *SQLiteStore) CreateLoan(ctx context.Context, loan *models.Loan) error {
	if loan.ID == "" {
		loan.ID = uuid.New().String()
	}
	if loan.CreatedAt == 0 {
		loan.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO loans (id, name, principal, interest, due_date, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		loan.ID, loan.Name, loan.Principal, loan.Interest, loan.DueDate, loan.Notes, loan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert loan: %w", err)
	}

	return nil
}

// UpdateLoan overwrites a loan's mutable fields.
func (s *SQLiteStore) UpdateLoan(ctx context.Context, loan *models.Loan) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE loans SET name = ?, principal = ?, interest = ?, due_date = ?, notes = ? WHERE id = ?",
		loan.Name, loan.Principal, loan.Interest, loan.DueDate, loan.Notes, loan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("loan %s: %w", loan.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteLoan removes a loan and all its payments in one transaction.
func (s *SQLiteStore) DeleteLoan(ctx context.Context, loanID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE loan_id = ?", loanID); err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM loans WHERE id = ?", loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("loan %s: %w", loanID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CreatePayment persists a new payment, assigning its ID.
// The parent loan must exist.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM loans WHERE id = ?", payment.LoanID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("loan %s: %w", payment.LoanID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check loan: %w", err)
	}

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO payments (id, loan_id, amount, date, note) VALUES (?, ?, ?, ?, ?)",
		payment.ID, payment.LoanID, payment.Amount, payment.Date, payment.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// ListPayments returns a loan's payments, most recent first.
func (s *SQLiteStore) ListPayments(ctx context.Context, loanID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, loan_id, amount, date, note FROM payments WHERE loan_id = ? ORDER BY date DESC, rowid DESC",
		loanID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.LoanID, &p.Amount, &p.Date, &p.Note); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// DeletePayment removes a payment and reports the parent loan id.
func (s *SQLiteStore) DeletePayment(ctx context.Context, paymentID string) (string, error) {
	var loanID string
	err := s.db.QueryRowContext(ctx,
		"SELECT loan_id FROM payments WHERE id = ?", paymentID,
	).Scan(&loanID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get payment: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", paymentID); err != nil {
		return "", fmt.Errorf("failed to delete payment: %w", err)
	}

	return loanID, nil
}
