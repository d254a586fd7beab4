package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type enrollRequest struct {
	SubscriberID       string `json:"subscriberId"`
	AssignedChitNumber int    `json:"assignedChitNumber"`
	JoinDate           string `json:"joinDate"`
}

type enrollmentResponse struct {
	ID                 string `json:"id"`
	SubscriberID       string `json:"subscriberId"`
	GroupID            string `json:"groupId"`
	AssignedChitNumber int    `json:"assignedChitNumber"`
	JoinDate           string `json:"joinDate"`
	SubscriberName     string `json:"subscriberName,omitempty"`
	SubscriberPhone    string `json:"subscriberPhone,omitempty"`
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	joinDate, err := parseDate(req.JoinDate)
	if err != nil {
		badRequest(w, "joinDate must be a YYYY-MM-DD date")
		return
	}

	enrollment, err := s.enrollments.Enroll(r.Context(), req.SubscriberID, chi.URLParam(r, "groupID"), req.AssignedChitNumber, joinDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, enrollmentResponse{
		ID:                 enrollment.ID,
		SubscriberID:       enrollment.SubscriberID,
		GroupID:            enrollment.GroupID,
		AssignedChitNumber: enrollment.AssignedChitNumber,
		JoinDate:           formatDate(enrollment.JoinDate),
	})
}

// handleListEnrollments returns the group roster ordered by chit number.
func (s *Server) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	roster, err := s.enrollments.List(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]enrollmentResponse, 0, len(roster))
	for _, e := range roster {
		out = append(out, enrollmentResponse{
			ID:                 e.ID,
			SubscriberID:       e.SubscriberID,
			GroupID:            e.GroupID,
			AssignedChitNumber: e.AssignedChitNumber,
			JoinDate:           formatDate(e.JoinDate),
			SubscriberName:     e.SubscriberName,
			SubscriberPhone:    e.SubscriberPhone,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
