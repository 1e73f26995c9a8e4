package vote

import (
	"context"
	"fmt"
	"time"

	"github.com/evote-api-nosql/internal/domain"
	"github.com/evote-api-nosql/internal/pkg/id"
)

type Service interface {
	CastVote(ctx context.Context, legalID, candidateID string) (*domain.Voter, error)
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
	CreateCandidate(ctx context.Context, req domain.CreateCandidateRequest) (*domain.Candidate, error)
	UpdateCandidate(ctx context.Context, candidateID string, req domain.UpdateCandidateRequest) (*domain.Candidate, error)
}

type voterStore interface {
	Get(ctx context.Context, legalID string) (*domain.Voter, error)
}

type ballotStore interface {
	CommitVote(ctx context.Context, legalID, candidateID string, votedAt time.Time) error
}

type candidateStore interface {
	Put(ctx context.Context, c *domain.Candidate) error
	Get(ctx context.Context, candidateID string) (*domain.Candidate, error)
	Scan(ctx context.Context) ([]domain.Candidate, error)
	Update(ctx context.Context, candidateID string, updates map[string]interface{}) error
}

type service struct {
	voters     voterStore
	ballots    ballotStore
	candidates candidateStore
}

type ServiceDeps struct {
	VoterRepo     voterStore
	BallotRepo    ballotStore
	CandidateRepo candidateStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		voters:     deps.VoterRepo,
		ballots:    deps.BallotRepo,
		candidates: deps.CandidateRepo,
	}
}

// CastVote transitions a voter from NotVoted to Voted exactly once. The read
// ahead of the commit only classifies the obvious failures early; the real
// guarantee comes from the conditional transaction in the ballot store, which
// either flips the flag and bumps the tally together or does neither.
func (s *service) CastVote(ctx context.Context, legalID, candidateID string) (*domain.Voter, error) {
	v, err := s.voters.Get(ctx, legalID)
	if err != nil {
		return nil, err
	}
	if v.HasVoted {
		return nil, domain.ErrAlreadyVoted
	}

	now := time.Now().UTC()
	if err := s.ballots.CommitVote(ctx, legalID, candidateID, now); err != nil {
		return nil, err
	}

	v.HasVoted = true
	v.VotedAt = &now
	return v, nil
}

func (s *service) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	return s.candidates.Scan(ctx)
}

func (s *service) CreateCandidate(ctx context.Context, req domain.CreateCandidateRequest) (*domain.Candidate, error) {
	now := time.Now().UTC()
	c := &domain.Candidate{
		CandidateID: id.New(),
		Name:        req.Name,
		Party:       req.Party,
		Position:    req.Position,
		Description: req.Description,
		Image:       req.Image,
		Age:         req.Age,
		VoteCount:   0,
		Status:      domain.CandidateActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.candidates.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateCandidate(ctx context.Context, candidateID string, req domain.UpdateCandidateRequest) (*domain.Candidate, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Party != nil {
		updates["party"] = *req.Party
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Status != nil {
		switch *req.Status {
		case domain.CandidateActive, domain.CandidateInactive, domain.CandidateSuspended:
			updates["status"] = *req.Status
		default:
			return nil, fmt.Errorf("invalid status: %w", domain.ErrBadRequest)
		}
	}
	if len(updates) == 0 {
		return s.candidates.Get(ctx, candidateID)
	}
	if err := s.candidates.Update(ctx, candidateID, updates); err != nil {
		return nil, err
	}
	return s.candidates.Get(ctx, candidateID)
}
