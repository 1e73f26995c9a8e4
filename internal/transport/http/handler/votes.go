package handler

import (
	"encoding/json"
	"net/http"

	"github.com/evote-api-nosql/internal/application/vote"
	"github.com/evote-api-nosql/internal/domain"
	"github.com/evote-api-nosql/internal/pkg/validate"
	"github.com/evote-api-nosql/internal/transport/http/middleware"
)

// VoteHandler handles ballot casting.
type VoteHandler struct {
	svc vote.Service
}

func NewVoteHandler(svc vote.Service) *VoteHandler {
	return &VoteHandler{svc: svc}
}

type castVoteRequest struct {
	CandidateID string `json:"candidate_id" validate:"required"`
	LegalID     string `json:"legal_id,omitempty"`
}

func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// The token is authoritative for who is voting; the body field only
	// matters when the service runs without a signing key. A non-voter
	// bearer cannot cast on someone else's behalf.
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		if claims.Role != domain.RoleVoter || claims.LegalID == "" {
			writeError(w, http.StatusForbidden, "only voters may cast ballots")
			return
		}
		req.LegalID = claims.LegalID
	}
	if req.LegalID == "" {
		writeError(w, http.StatusUnauthorized, "voter identity required")
		return
	}
	v, err := h.svc.CastVote(r.Context(), req.LegalID, req.CandidateID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VoteEnvelope{
		Message: "vote recorded",
		Voter:   toPublicVoter(v),
	})
}
