package handler

import (
	"encoding/json"
	"net/http"

	"github.com/evote-api-nosql/internal/application/auth"
	"github.com/evote-api-nosql/internal/pkg/validate"
)

// SessionHandler handles voter login and the static admin login.
type SessionHandler struct {
	svc auth.Service
}

func NewSessionHandler(svc auth.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !res.Match {
		// Valid credentials but the face did not verify. The record's
		// public fields still come back with the outcome; only the
		// token is withheld.
		writeJSON(w, http.StatusOK, LoginEnvelope{
			Match:   false,
			Voter:   toPublicVoter(res.Voter),
			Message: "face verification failed",
		})
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{
		Bearer: res.Bearer,
		Match:  true,
		Voter:  toPublicVoter(res.Voter),
	})
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *SessionHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bearer, err := h.svc.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{Bearer: bearer, Match: true})
}
