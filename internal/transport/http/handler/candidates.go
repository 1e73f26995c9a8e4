package handler

import (
	"encoding/json"
	"net/http"

	"github.com/evote-api-nosql/internal/application/vote"
	"github.com/evote-api-nosql/internal/domain"
	"github.com/evote-api-nosql/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// CandidateHandler handles the public candidate listing and the admin
// candidate management endpoints.
type CandidateHandler struct {
	svc vote.Service
}

func NewCandidateHandler(svc vote.Service) *CandidateHandler {
	return &CandidateHandler{svc: svc}
}

func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.svc.ListCandidates(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.CreateCandidate(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.svc.UpdateCandidate(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
