package domain

// EligibleVoter is one entry of the externally issued voter roster. A legal id
// must appear here before registration is accepted.
type EligibleVoter struct {
	LegalID string `json:"legal_id" dynamodbav:"legal_id" validate:"required,len=12,numeric"`
	Name    string `json:"name" dynamodbav:"name" validate:"required"`
}
