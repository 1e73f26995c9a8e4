package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/evote-api-nosql/internal/biometric"
	"github.com/evote-api-nosql/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	// Identifier is either the 12-digit legal id or the registered email.
	Identifier string           `json:"identifier" validate:"required"`
	Password   string           `json:"password" validate:"required"`
	Embedding  domain.Embedding `json:"embedding" validate:"required"`
}

// LoginResult carries the outcome of a credential + face check. Match is
// data, not an error: a failed biometric check with valid credentials is a
// legitimate response and the caller decides what to do with it.
type LoginResult struct {
	Voter  *domain.Voter
	Match  bool
	Bearer string
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)
}

type voterStore interface {
	Get(ctx context.Context, legalID string) (*domain.Voter, error)
	GetByEmail(ctx context.Context, email string) (*domain.Voter, error)
}

type tokenSigner interface {
	Sign(legalID, role string) (string, error)
}

type service struct {
	repo           voterStore
	signer         tokenSigner
	loginThreshold float64
	adminUsername  string
	adminPassHash  string
}

type ServiceDeps struct {
	VoterRepo         voterStore
	Signer            tokenSigner
	LoginThreshold    float64
	AdminUsername     string
	AdminPasswordHash string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:           deps.VoterRepo,
		signer:         deps.Signer,
		loginThreshold: deps.LoginThreshold,
		adminUsername:  deps.AdminUsername,
		adminPassHash:  deps.AdminPasswordHash,
	}
}

// Login verifies the password and compares the supplied embedding against the
// enrolled one at the login threshold. Credential failure is an error;
// biometric mismatch is not (the two are distinguishable failure classes).
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	v, err := s.repo.Get(ctx, req.Identifier)
	if err != nil {
		v, err = s.repo.GetByEmail(ctx, req.Identifier)
		if err != nil {
			return nil, fmt.Errorf("voter %s: %w", req.Identifier, domain.ErrNotFound)
		}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredential
	}

	match, err := biometric.IsMatch(v.Embedding, req.Embedding, s.loginThreshold)
	if err != nil {
		return nil, err
	}

	// A bearer is only worth issuing when both factors pass. A mismatch is
	// still reported to the caller as data, just without a token.
	bearer := ""
	if match && s.signer != nil {
		bearer, err = s.signer.Sign(v.LegalID, domain.RoleVoter)
		if err != nil {
			return nil, err
		}
	}
	return &LoginResult{Voter: v, Match: match, Bearer: bearer}, nil
}

// AdminLogin checks the statically configured admin credentials and issues an
// admin bearer. Disabled entirely when no hash is configured.
func (s *service) AdminLogin(_ context.Context, username, password string) (string, error) {
	if s.adminPassHash == "" {
		return "", errors.New("admin login is not configured")
	}
	if username != s.adminUsername {
		return "", domain.ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPassHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredential
	}
	if s.signer == nil {
		return "", errors.New("token signer not available")
	}
	return s.signer.Sign("", domain.RoleAdmin)
}
