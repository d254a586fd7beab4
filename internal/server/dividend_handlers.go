package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foremenchoice/chitledger/internal/models"
)

type distributeRequest struct {
	MonthNumber               int     `json:"monthNumber"`
	WinningBidDiscountPercent float64 `json:"winningBidDiscountPercent"`
}

type dividendResponse struct {
	ID               string  `json:"id"`
	GroupID          string  `json:"groupId"`
	SubscriberID     string  `json:"subscriberId"`
	SubscriberName   string  `json:"subscriberName,omitempty"`
	AuctionDate      string  `json:"auctionDate"`
	DividendAmount   float64 `json:"dividendAmount"`
	DistributionDate string  `json:"distributionDate"`
}

func toDividendResponse(d *models.Dividend) dividendResponse {
	return dividendResponse{
		ID:               d.ID,
		GroupID:          d.GroupID,
		SubscriberID:     d.SubscriberID,
		AuctionDate:      formatDate(d.AuctionDate),
		DividendAmount:   d.DividendAmount,
		DistributionDate: formatDate(d.DistributionDate),
	}
}

// handleDistributeDividends splits a month's auction discount, net of the
// foreman commission, across the non-winning members.
func (s *Server) handleDistributeDividends(w http.ResponseWriter, r *http.Request) {
	var req distributeRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	dividends, err := s.dividends.Distribute(r.Context(), chi.URLParam(r, "groupID"), req.MonthNumber, req.WinningBidDiscountPercent)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]dividendResponse, 0, len(dividends))
	for _, d := range dividends {
		out = append(out, toDividendResponse(d))
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleDividendHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.dividends.History(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]dividendResponse, 0, len(history))
	for _, d := range history {
		resp := toDividendResponse(&d.Dividend)
		resp.SubscriberName = d.SubscriberName
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}
