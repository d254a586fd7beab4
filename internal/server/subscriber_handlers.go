package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/service"
)

type subscriberRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address,omitempty"`
}

type subscriberResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address,omitempty"`
	CreatedDate int64  `json:"createdDate"`
	IsActive    bool   `json:"isActive"`
}

func toSubscriberResponse(sub *models.Subscriber) subscriberResponse {
	return subscriberResponse{
		ID:          sub.ID,
		Name:        sub.Name,
		PhoneNumber: sub.PhoneNumber,
		Address:     sub.Address,
		CreatedDate: sub.CreatedDate,
		IsActive:    sub.IsActive,
	}
}

func (s *Server) handleCreateSubscriber(w http.ResponseWriter, r *http.Request) {
	var req subscriberRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	sub, err := s.subscribers.Create(r.Context(), service.SubscriberParams{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubscriberResponse(sub))
}

func (s *Server) handleGetSubscriber(w http.ResponseWriter, r *http.Request) {
	sub, err := s.subscribers.Get(r.Context(), chi.URLParam(r, "subscriberID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubscriberResponse(sub))
}

func (s *Server) handleListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := s.subscribers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]subscriberResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toSubscriberResponse(sub))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteSubscriber(w http.ResponseWriter, r *http.Request) {
	if err := s.subscribers.Delete(r.Context(), chi.URLParam(r, "subscriberID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
