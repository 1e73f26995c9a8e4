package vote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/evote-api-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockVoterStore struct{ mock.Mock }

func (m *mockVoterStore) Get(ctx context.Context, legalID string) (*domain.Voter, error) {
	args := m.Called(ctx, legalID)
	if v, _ := args.Get(0).(*domain.Voter); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBallotStore struct{ mock.Mock }

func (m *mockBallotStore) CommitVote(ctx context.Context, legalID, candidateID string, votedAt time.Time) error {
	return m.Called(ctx, legalID, candidateID, votedAt).Error(0)
}

type mockCandidateStore struct{ mock.Mock }

func (m *mockCandidateStore) Put(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCandidateStore) Get(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	args := m.Called(ctx, candidateID)
	if c, _ := args.Get(0).(*domain.Candidate); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCandidateStore) Scan(ctx context.Context) ([]domain.Candidate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Candidate), args.Error(1)
}
func (m *mockCandidateStore) Update(ctx context.Context, candidateID string, updates map[string]interface{}) error {
	return m.Called(ctx, candidateID, updates).Error(0)
}

// --- CastVote tests ---

func TestCastVote_VoterNotFound(t *testing.T) {
	vs := &mockVoterStore{}
	vs.On("Get", mock.Anything, "000000000000").Return(nil, domain.ErrNotFound)

	svc := NewService(ServiceDeps{VoterRepo: vs})
	_, err := svc.CastVote(context.Background(), "000000000000", "c1")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCastVote_AlreadyVotedFastPath(t *testing.T) {
	vs := &mockVoterStore{}
	vs.On("Get", mock.Anything, "111122223333").Return(&domain.Voter{
		LegalID: "111122223333", HasVoted: true,
	}, nil)
	bs := &mockBallotStore{}

	svc := NewService(ServiceDeps{VoterRepo: vs, BallotRepo: bs})
	_, err := svc.CastVote(context.Background(), "111122223333", "c1")

	assert.True(t, errors.Is(err, domain.ErrAlreadyVoted))
	bs.AssertNotCalled(t, "CommitVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCastVote_CandidateNotFound(t *testing.T) {
	vs := &mockVoterStore{}
	vs.On("Get", mock.Anything, "111122223333").Return(&domain.Voter{LegalID: "111122223333"}, nil)
	bs := &mockBallotStore{}
	bs.On("CommitVote", mock.Anything, "111122223333", "ghost", mock.Anything).
		Return(domain.ErrCandidateNotFound)

	svc := NewService(ServiceDeps{VoterRepo: vs, BallotRepo: bs})
	_, err := svc.CastVote(context.Background(), "111122223333", "ghost")

	assert.True(t, errors.Is(err, domain.ErrCandidateNotFound))
}

func TestCastVote_HappyPath(t *testing.T) {
	vs := &mockVoterStore{}
	vs.On("Get", mock.Anything, "111122223333").Return(&domain.Voter{
		LegalID: "111122223333", Name: "Asha Rao",
	}, nil)
	bs := &mockBallotStore{}
	bs.On("CommitVote", mock.Anything, "111122223333", "c1", mock.Anything).Return(nil)

	svc := NewService(ServiceDeps{VoterRepo: vs, BallotRepo: bs})
	v, err := svc.CastVote(context.Background(), "111122223333", "c1")

	require.NoError(t, err)
	assert.True(t, v.HasVoted)
	require.NotNil(t, v.VotedAt)
	bs.AssertExpectations(t)
}

// --- concurrency property ---

// casStore emulates the storage layer's conditional-write semantics: the
// voted flag flips and the tally bumps together, only while the precondition
// still holds under the lock. The struct stands in for both the voter read
// path and the ballot commit so the race window between them is real.
type casStore struct {
	mu     sync.Mutex
	voters map[string]*domain.Voter
	tally  map[string]int64
}

func newCASStore() *casStore {
	return &casStore{voters: map[string]*domain.Voter{}, tally: map[string]int64{}}
}

func (s *casStore) Get(_ context.Context, legalID string) (*domain.Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.voters[legalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	snapshot := *v
	return &snapshot, nil
}

func (s *casStore) CommitVote(_ context.Context, legalID, candidateID string, votedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.voters[legalID]
	if !ok || v.HasVoted {
		return domain.ErrAlreadyVoted
	}
	if _, ok := s.tally[candidateID]; !ok {
		return domain.ErrCandidateNotFound
	}
	v.HasVoted = true
	v.VotedAt = &votedAt
	s.tally[candidateID]++
	return nil
}

func TestCastVote_ConcurrentAttemptsCommitExactlyOnce(t *testing.T) {
	store := newCASStore()
	store.voters["111122223333"] = &domain.Voter{LegalID: "111122223333"}
	store.tally["c1"] = 0
	store.tally["c2"] = 0

	svc := NewService(ServiceDeps{VoterRepo: store, BallotRepo: store})

	const attempts = 32
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		candidateID := "c1"
		if i%2 == 1 {
			candidateID = "c2"
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.CastVote(context.Background(), "111122223333", id)
			results <- err
		}(candidateID)
	}
	wg.Wait()
	close(results)

	successes, alreadyVoted := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrAlreadyVoted):
			alreadyVoted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, alreadyVoted)
	assert.Equal(t, int64(1), store.tally["c1"]+store.tally["c2"])
}

// --- candidate management tests ---

func TestCreateCandidate_DefaultsToActiveWithZeroVotes(t *testing.T) {
	cs := &mockCandidateStore{}
	cs.On("Put", mock.Anything, mock.AnythingOfType("*domain.Candidate")).Return(nil)

	svc := NewService(ServiceDeps{CandidateRepo: cs})
	c, err := svc.CreateCandidate(context.Background(), domain.CreateCandidateRequest{
		Name: "Jordan Lee", Party: "Independent", Position: "Mayor", Description: "Incumbent",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, c.CandidateID)
	assert.Equal(t, domain.CandidateActive, c.Status)
	assert.Equal(t, int64(0), c.VoteCount)
	cs.AssertExpectations(t)
}

func ptr[T any](v T) *T { return &v }

func TestUpdateCandidate_InvalidStatus(t *testing.T) {
	svc := NewService(ServiceDeps{CandidateRepo: &mockCandidateStore{}})
	_, err := svc.UpdateCandidate(context.Background(), "c1", domain.UpdateCandidateRequest{
		Status: ptr("expelled"),
	})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdateCandidate_EmptyRequestReturnsExisting(t *testing.T) {
	cs := &mockCandidateStore{}
	existing := &domain.Candidate{CandidateID: "c1", Name: "Jordan Lee"}
	cs.On("Get", mock.Anything, "c1").Return(existing, nil)

	svc := NewService(ServiceDeps{CandidateRepo: cs})
	c, err := svc.UpdateCandidate(context.Background(), "c1", domain.UpdateCandidateRequest{})

	require.NoError(t, err)
	assert.Equal(t, existing, c)
	cs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCandidate_NeverTouchesVoteCount(t *testing.T) {
	cs := &mockCandidateStore{}
	cs.On("Update", mock.Anything, "c1", mock.Anything).Return(nil)
	cs.On("Get", mock.Anything, "c1").Return(&domain.Candidate{CandidateID: "c1"}, nil)

	svc := NewService(ServiceDeps{CandidateRepo: cs})
	_, err := svc.UpdateCandidate(context.Background(), "c1", domain.UpdateCandidateRequest{
		Name: ptr("Jordan A. Lee"), Status: ptr(domain.CandidateInactive),
	})

	require.NoError(t, err)
	updates := cs.Calls[0].Arguments.Get(2).(map[string]interface{})
	_, hasVoteCount := updates["vote_count"]
	assert.False(t, hasVoteCount)
}
