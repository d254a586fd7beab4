package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foremenchoice/chitledger/internal/models"
)

type installmentResponse struct {
	ID                 string   `json:"id"`
	GroupID            string   `json:"groupId"`
	MonthNumber        int      `json:"monthNumber"`
	DueDate            string   `json:"dueDate"`
	IsAuctionConducted bool     `json:"isAuctionConducted"`
	AuctionPrizeAmount *float64 `json:"auctionPrizeAmount,omitempty"`
	AuctionWinnerID    *string  `json:"auctionWinnerId,omitempty"`
	IsCompleted        bool     `json:"isCompleted"`
}

func toInstallmentResponse(inst *models.Installment) installmentResponse {
	return installmentResponse{
		ID:                 inst.ID,
		GroupID:            inst.GroupID,
		MonthNumber:        inst.MonthNumber,
		DueDate:            formatDate(inst.DueDate),
		IsAuctionConducted: inst.IsAuctionConducted,
		AuctionPrizeAmount: inst.AuctionPrizeAmount,
		AuctionWinnerID:    inst.AuctionWinnerID,
		IsCompleted:        inst.IsCompleted,
	}
}

// handleGenerateInstallments creates the full monthly schedule for a group.
// Generation is one-shot; a second call is rejected as a conflict.
func (s *Server) handleGenerateInstallments(w http.ResponseWriter, r *http.Request) {
	installments, err := s.installments.Generate(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]installmentResponse, 0, len(installments))
	for _, inst := range installments {
		out = append(out, toInstallmentResponse(inst))
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleListInstallments(w http.ResponseWriter, r *http.Request) {
	installments, err := s.installments.List(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]installmentResponse, 0, len(installments))
	for _, inst := range installments {
		out = append(out, toInstallmentResponse(inst))
	}
	writeJSON(w, http.StatusOK, out)
}

type auctionRequest struct {
	PrizeAmount        float64 `json:"prizeAmount"`
	WinnerSubscriberID string  `json:"winnerSubscriberId"`
}

func (s *Server) handleRecordAuction(w http.ResponseWriter, r *http.Request) {
	var req auctionRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	inst, err := s.installments.RecordAuction(r.Context(), chi.URLParam(r, "installmentID"), req.PrizeAmount, req.WinnerSubscriberID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInstallmentResponse(inst))
}
