package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foremenchoice/chitledger/internal/models"
	"github.com/foremenchoice/chitledger/internal/service"
)

type groupRequest struct {
	Name                        string   `json:"name"`
	Value                       float64  `json:"value"`
	NumberOfSubscribers         int      `json:"numberOfSubscribers"`
	Duration                    int      `json:"duration"`
	StartDate                   string   `json:"startDate"`
	ForemanCommissionPercentage *float64 `json:"foremanCommissionPercentage,omitempty"`
}

type groupResponse struct {
	ID                          string   `json:"id"`
	Name                        string   `json:"name"`
	Value                       float64  `json:"value"`
	NumberOfSubscribers         int      `json:"numberOfSubscribers"`
	Duration                    int      `json:"duration"`
	StartDate                   string   `json:"startDate"`
	ForemanCommissionPercentage *float64 `json:"foremanCommissionPercentage,omitempty"`
	InstallmentAmount           float64  `json:"installmentAmount"`
	IsActive                    bool     `json:"isActive"`
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:                          g.ID,
		Name:                        g.Name,
		Value:                       g.Value,
		NumberOfSubscribers:         g.NumberOfSubscribers,
		Duration:                    g.Duration,
		StartDate:                   formatDate(g.StartDate),
		ForemanCommissionPercentage: g.ForemanCommissionPercentage,
		InstallmentAmount:           g.InstallmentAmount,
		IsActive:                    g.IsActive,
	}
}

func (req *groupRequest) toParams() (service.GroupParams, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return service.GroupParams{}, err
	}
	return service.GroupParams{
		Name:                        req.Name,
		Value:                       req.Value,
		NumberOfSubscribers:         req.NumberOfSubscribers,
		Duration:                    req.Duration,
		StartDate:                   startDate,
		ForemanCommissionPercentage: req.ForemanCommissionPercentage,
	}, nil
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	params, err := req.toParams()
	if err != nil {
		badRequest(w, "startDate must be a YYYY-MM-DD date")
		return
	}

	group, err := s.groups.Create(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.Get(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	params, err := req.toParams()
	if err != nil {
		badRequest(w, "startDate must be a YYYY-MM-DD date")
		return
	}

	group, err := s.groups.Update(r.Context(), chi.URLParam(r, "groupID"), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.Delete(r.Context(), chi.URLParam(r, "groupID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
