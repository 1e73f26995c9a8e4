package voter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/evote-api-nosql/internal/biometric"
	"github.com/evote-api-nosql/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, req domain.RegisterVoterRequest) (*domain.RegisterVoterResult, error)
	Get(ctx context.Context, legalID string) (*domain.Voter, error)
	SeedRoster(ctx context.Context, entries []domain.EligibleVoter) error
}

type voterStore interface {
	Create(ctx context.Context, v *domain.Voter) error
	Get(ctx context.Context, legalID string) (*domain.Voter, error)
	GetByEmail(ctx context.Context, email string) (*domain.Voter, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Voter, error)
}

type eligibilityStore interface {
	IsEligible(ctx context.Context, legalID string) (bool, error)
}

type duplicateGuard interface {
	CheckNoDuplicate(ctx context.Context, candidate domain.Embedding) error
	Observe(legalID string, e domain.Embedding)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type rosterSeeder interface {
	Put(ctx context.Context, e *domain.EligibleVoter) error
}

type service struct {
	repo         voterStore
	roster       eligibilityStore
	rosterSeed   rosterSeeder
	guard        duplicateGuard
	mailer       mailer
	embeddingDim int
}

type ServiceDeps struct {
	VoterRepo       voterStore
	EligibilityRepo eligibilityStore
	RosterSeeder    rosterSeeder
	Guard           duplicateGuard
	Mailer          mailer
	EmbeddingDim    int
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:         deps.VoterRepo,
		roster:       deps.EligibilityRepo,
		rosterSeed:   deps.RosterSeeder,
		guard:        deps.Guard,
		mailer:       deps.Mailer,
		embeddingDim: deps.EmbeddingDim,
	}
}

// Register runs the enrollment checks in order, each short-circuiting:
// roster eligibility, field uniqueness, duplicate face, then the persist.
// The persist itself re-checks legal-id and face-key uniqueness inside a
// transaction, so two racing registrations cannot both slip past the scan.
func (s *service) Register(ctx context.Context, req domain.RegisterVoterRequest) (*domain.RegisterVoterResult, error) {
	if len(req.Embedding) != s.embeddingDim {
		return nil, &domain.DimensionMismatchError{Want: s.embeddingDim, Got: len(req.Embedding)}
	}

	eligible, err := s.roster.IsEligible(ctx, req.LegalID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, fmt.Errorf("legal id %s: %w", req.LegalID, domain.ErrNotEligible)
	}

	if _, err := s.repo.Get(ctx, req.LegalID); err == nil {
		return nil, &domain.DuplicateFieldError{Field: "legal_id"}
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, &domain.DuplicateFieldError{Field: "email"}
	}
	if _, err := s.repo.GetByPhone(ctx, req.Phone); err == nil {
		return nil, &domain.DuplicateFieldError{Field: "phone"}
	}

	if err := s.guard.CheckNoDuplicate(ctx, req.Embedding); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	v := &domain.Voter{
		LegalID:      req.LegalID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Embedding:    req.Embedding,
		FaceKey:      biometric.FaceKey(req.Embedding),
		HasVoted:     false,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	s.guard.Observe(v.LegalID, v.Embedding)

	if s.mailer != nil {
		if err := s.mailer.SendEmail(v.Email, "Registration confirmed",
			fmt.Sprintf("Hello %s, your voter registration was recorded.", v.Name)); err != nil {
			slog.Warn("failed to send registration email", "legal_id", v.LegalID, "err", err)
		}
	}

	return &domain.RegisterVoterResult{LegalID: v.LegalID, Name: v.Name}, nil
}

func (s *service) Get(ctx context.Context, legalID string) (*domain.Voter, error) {
	return s.repo.Get(ctx, legalID)
}

// SeedRoster inserts roster entries; used by the admin seeding endpoint.
func (s *service) SeedRoster(ctx context.Context, entries []domain.EligibleVoter) error {
	for i := range entries {
		if err := s.rosterSeed.Put(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}
