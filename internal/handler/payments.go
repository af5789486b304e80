package handler

import (
	"encoding/json"
	"net/http"

	"loantracker/internal/models"
	"loantracker/internal/service"
)

// paymentCreatedResponse is the created payment plus the loan's refreshed
// payment list, so the client can redraw the history without a second call.
type paymentCreatedResponse struct {
	models.Payment
	Payments []models.Payment `json:"payments"`
}

// AddPayment records a payment from {amount, note?, date?} against the loan
// in the path. The date defaults to the current time.
func (h *LoanHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var in service.AddPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, payments, err := h.service.AddPayment(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, err, "Loan not found", "Failed to add payment")
		return
	}
	writeJSON(w, http.StatusCreated, paymentCreatedResponse{
		Payment:  *payment,
		Payments: payments,
	})
}

// DeletePayment removes the payment in the path and reports its parent loan.
func (h *LoanHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	loanID, err := h.service.DeletePayment(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err, "Payment not found", "Failed to delete payment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "loanId": loanID})
}
