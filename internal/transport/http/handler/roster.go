package handler

import (
	"encoding/json"
	"net/http"

	"github.com/evote-api-nosql/internal/application/voter"
	"github.com/evote-api-nosql/internal/domain"
	"github.com/evote-api-nosql/internal/pkg/validate"
)

// RosterHandler handles eligible-voter roster seeding.
type RosterHandler struct {
	svc voter.Service
}

func NewRosterHandler(svc voter.Service) *RosterHandler {
	return &RosterHandler{svc: svc}
}

type seedRosterRequest struct {
	Entries []domain.EligibleVoter `json:"entries" validate:"required,min=1,dive"`
}

func (h *RosterHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var req seedRosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.SeedRoster(r.Context(), req.Entries); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "roster entries added"})
}
