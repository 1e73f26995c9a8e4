package handler

import (
	"encoding/json"
	"net/http"

	"github.com/evote-api-nosql/internal/application/voter"
	"github.com/evote-api-nosql/internal/domain"
	"github.com/evote-api-nosql/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// VoterHandler handles enrollment and voter lookup endpoints.
type VoterHandler struct {
	svc voter.Service
}

func NewVoterHandler(svc voter.Service) *VoterHandler {
	return &VoterHandler{svc: svc}
}

func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, RegisterEnvelope{
		Message: "voter registered",
		LegalID: res.LegalID,
		Name:    res.Name,
	})
}

func (h *VoterHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Get(r.Context(), chi.URLParam(r, "legalId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPublicVoter(v))
}
