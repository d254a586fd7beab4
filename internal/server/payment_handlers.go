package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type paymentRequest struct {
	SubscriberID string  `json:"subscriberId"`
	Amount       float64 `json:"amount"`
	Notes        string  `json:"notes,omitempty"`
}

type paymentResponse struct {
	ID             string  `json:"id"`
	InstallmentID  string  `json:"installmentId"`
	SubscriberID   string  `json:"subscriberId"`
	SubscriberName string  `json:"subscriberName,omitempty"`
	PaymentDate    int64   `json:"paymentDate"`
	AmountPaid     float64 `json:"amountPaid"`
	Notes          string  `json:"notes,omitempty"`
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	payment, err := s.payments.Record(r.Context(), chi.URLParam(r, "installmentID"), req.SubscriberID, req.Amount, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, paymentResponse{
		ID:            payment.ID,
		InstallmentID: payment.InstallmentID,
		SubscriberID:  payment.SubscriberID,
		PaymentDate:   payment.PaymentDate,
		AmountPaid:    payment.AmountPaid,
		Notes:         payment.Notes,
	})
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.payments.ListForInstallment(r.Context(), chi.URLParam(r, "installmentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentResponse{
			ID:             p.ID,
			InstallmentID:  p.InstallmentID,
			SubscriberID:   p.SubscriberID,
			SubscriberName: p.SubscriberName,
			PaymentDate:    p.PaymentDate,
			AmountPaid:     p.AmountPaid,
			Notes:          p.Notes,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type duesStatusResponse struct {
	EnrollmentID       string  `json:"enrollmentId"`
	SubscriberID       string  `json:"subscriberId"`
	SubscriberName     string  `json:"subscriberName"`
	AssignedChitNumber int     `json:"assignedChitNumber"`
	Status             string  `json:"status"`
	TotalPaid          float64 `json:"totalPaid"`
}

// handleDuesStatus renders the Paid/Due roster for one month of a group,
// selected with the ?month query parameter.
func (s *Server) handleDuesStatus(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 {
		badRequest(w, "month must be a positive integer query parameter")
		return
	}

	statuses, err := s.payments.StatusForInstallment(r.Context(), chi.URLParam(r, "groupID"), month)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]duesStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, duesStatusResponse{
			EnrollmentID:       st.EnrollmentID,
			SubscriberID:       st.SubscriberID,
			SubscriberName:     st.SubscriberName,
			AssignedChitNumber: st.AssignedChitNumber,
			Status:             st.Status,
			TotalPaid:          st.TotalPaid,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
