package http

import (
	"github.com/evote-api-nosql/internal/biometric"
	"github.com/evote-api-nosql/internal/infrastructure/dynamo"
	jwtinfra "github.com/evote-api-nosql/internal/infrastructure/jwt"
	"github.com/evote-api-nosql/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	VoterRepo       *dynamo.VoterRepo
	BallotRepo      *dynamo.BallotRepo
	CandidateRepo   *dynamo.CandidateRepo
	EligibilityRepo *dynamo.EligibilityRepo

	// Guard is the duplicate-face check used at enrollment.
	Guard *biometric.Guard

	// Mailer may be nil; registration then skips the confirmation email.
	Mailer smtp.Mailer

	// JWTProvider may be nil; authenticated routes then pass through and
	// voters identify themselves in the request body.
	JWTProvider *jwtinfra.Provider
}
