// Package models defines the core domain models for LoanTracker.
//
// The domain is deliberately small:
//   - Loan: a tracked debt with a principal, a simple interest rate and an
//     optional due date
//   - Payment: an amount applied against a loan's balance
//
// A Payment's lifecycle is fully subordinate to its Loan: payments cannot be
// created without an existing parent loan, and deleting a loan removes its
// payments with it.
//
// Monetary amounts are plain float64 values in a single implicit currency;
// multi-currency handling is out of scope. Dates travel as ISO-8601 strings
// so the store and the wire surface agree without conversion.
package models
