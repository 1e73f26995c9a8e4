package domain

import "time"

// Embedding is a fixed-length face descriptor produced by the external
// extraction model. Vectors are only comparable when their lengths match;
// the configured dimension is enforced at registration time.
type Embedding []float32

// Roles carried in JWT claims.
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

type Voter struct {
	LegalID      string     `json:"legal_id" dynamodbav:"legal_id"`
	Name         string     `json:"name" dynamodbav:"name"`
	Email        string     `json:"email" dynamodbav:"email"`
	Phone        string     `json:"phone" dynamodbav:"phone"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Embedding    Embedding  `json:"-" dynamodbav:"embedding"`
	FaceKey      string     `json:"-" dynamodbav:"face_key"`
	HasVoted     bool       `json:"has_voted" dynamodbav:"has_voted"`
	VotedAt      *time.Time `json:"voted_at,omitempty" dynamodbav:"voted_at"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
}

// EnrolledEmbedding is the projection the duplicate-identity scan works on.
type EnrolledEmbedding struct {
	LegalID   string    `dynamodbav:"legal_id"`
	Embedding Embedding `dynamodbav:"embedding"`
}

type RegisterVoterRequest struct {
	LegalID   string    `json:"legal_id" validate:"required,len=12,numeric"`
	Name      string    `json:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"required,len=10,numeric"`
	Password  string    `json:"password" validate:"required,min=8,max=72"`
	Embedding Embedding `json:"embedding" validate:"required"`
}

// RegisterVoterResult is the only data exposed after a successful
// registration. The embedding and password hash never leave the service.
type RegisterVoterResult struct {
	LegalID string `json:"legal_id"`
	Name    string `json:"name"`
}
