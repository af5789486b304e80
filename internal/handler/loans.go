// Package handler exposes the loan tracker's JSON REST surface.
package handler

import (
	"encoding/json"
	"net/http"

	"loantracker/internal/service"
)

// LoanHandler serves the /api routes backed by a LoanService.
type LoanHandler struct {
	service *service.LoanService
}

// NewLoanHandler creates a LoanHandler.
func NewLoanHandler(svc *service.LoanService) *LoanHandler {
	return &LoanHandler{service: svc}
}

// Routes registers the API endpoints on mux.
func (h *LoanHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/loans", h.ListLoans)
	mux.HandleFunc("POST /api/loans", h.CreateLoan)
	mux.HandleFunc("PUT /api/loans/{id}", h.UpdateLoan)
	mux.HandleFunc("DELETE /api/loans/{id}", h.DeleteLoan)
	mux.HandleFunc("POST /api/loans/{id}/payments", h.AddPayment)
	mux.HandleFunc("DELETE /api/payments/{id}", h.DeletePayment)
	mux.HandleFunc("GET /api/health", h.Health)
}

// ListLoans returns every loan with its payments attached.
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.ListLoans(r.Context())
	if err != nil {
		respondError(w, err, "Loan not found", "Failed to fetch loans")
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

// CreateLoan creates a loan from {name, principal, interest?, dueDate?, notes?}.
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var in service.CreateLoanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), in)
	if err != nil {
		respondError(w, err, "Loan not found", "Failed to create loan")
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

// UpdateLoan applies any subset of loan fields to the loan in the path.
func (h *LoanHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateLoanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	loan, err := h.service.UpdateLoan(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, err, "Loan not found", "Failed to update loan")
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// DeleteLoan removes the loan in the path and all its payments.
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLoan(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err, "Loan not found", "Failed to delete loan")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Health is the liveness probe.
func (h *LoanHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
