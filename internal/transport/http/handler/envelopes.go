package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/evote-api-nosql/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// PublicVoter is the externally visible voter shape. The password hash, the
// enrolled embedding and the face key never leave the service.
type PublicVoter struct {
	LegalID   string     `json:"legal_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	HasVoted  bool       `json:"has_voted"`
	VotedAt   *time.Time `json:"voted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toPublicVoter(v *domain.Voter) *PublicVoter {
	return &PublicVoter{
		LegalID:   v.LegalID,
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		HasVoted:  v.HasVoted,
		VotedAt:   v.VotedAt,
		CreatedAt: v.CreatedAt,
	}
}

// RegisterEnvelope wraps successful enrollment responses.
type RegisterEnvelope struct {
	Message string `json:"message"`
	LegalID string `json:"legal_id"`
	Name    string `json:"name"`
}

// LoginEnvelope wraps login responses. Match reports the biometric outcome;
// Bearer is present only when both credential and face checks passed.
type LoginEnvelope struct {
	Bearer  string       `json:"Bearer,omitempty"`
	Match   bool         `json:"match"`
	Voter   *PublicVoter `json:"voter,omitempty"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// VoteEnvelope wraps vote-cast responses.
type VoteEnvelope struct {
	Message string       `json:"message,omitempty"`
	Voter   *PublicVoter `json:"voter,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeDomainError maps the sentinel errors onto HTTP statuses. Wrapped
// errors resolve through errors.Is, so callers can annotate freely.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredential), errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotEligible):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrCandidateNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyVoted), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
