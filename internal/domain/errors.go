package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrBadRequest        = errors.New("bad request")
	ErrNotEligible       = errors.New("not in voter roster")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrAlreadyVoted      = errors.New("vote already cast")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrStorage           = errors.New("storage failure")
)

// DuplicateFieldError reports a uniqueness violation on a single registration
// field (legal_id, email or phone).
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("%s already registered", e.Field)
}

func (e *DuplicateFieldError) Unwrap() error { return ErrConflict }

// DuplicateFaceError reports that a registration embedding matched an already
// enrolled identity. MatchedLegalID may be empty when the collision was
// detected by the face-key constraint rather than the scan.
type DuplicateFaceError struct {
	MatchedLegalID string
}

func (e *DuplicateFaceError) Error() string { return "face already enrolled" }

func (e *DuplicateFaceError) Unwrap() error { return ErrConflict }

// DimensionMismatchError reports two embeddings of different lengths, which
// are not comparable.
type DimensionMismatchError struct {
	Want, Got int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: want %d, got %d", e.Want, e.Got)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrBadRequest }
