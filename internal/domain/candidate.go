package domain

import "time"

// Candidate statuses. Status is informational only; the tally protocol does
// not consult it.
const (
	CandidateActive    = "active"
	CandidateInactive  = "inactive"
	CandidateSuspended = "suspended"
)

type Candidate struct {
	CandidateID string    `json:"id" dynamodbav:"candidate_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Party       string    `json:"party" dynamodbav:"party"`
	Position    string    `json:"position" dynamodbav:"position"`
	Description string    `json:"description" dynamodbav:"description"`
	Image       string    `json:"image,omitempty" dynamodbav:"image"`
	Age         string    `json:"age,omitempty" dynamodbav:"age"`
	VoteCount   int64     `json:"vote_count" dynamodbav:"vote_count"`
	Status      string    `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateCandidateRequest struct {
	Name        string `json:"name" validate:"required"`
	Party       string `json:"party" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"`
	Age         string `json:"age"`
}

type UpdateCandidateRequest struct {
	Name        *string `json:"name"`
	Party       *string `json:"party"`
	Position    *string `json:"position"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Age         *string `json:"age"`
	Status      *string `json:"status"`
}
