package biometric

import (
	"context"
	"fmt"

	"github.com/evote-api-nosql/internal/domain"
)

// Number of approximate neighbors probed per duplicate check. Only the
// nearest enrolled face can match, but a few extra probes absorb HNSW
// approximation error.
const guardProbes = 8

const scanPageSize = 500

// EmbeddingSource is the read path the guard needs from the voter registry.
type EmbeddingSource interface {
	ScanEmbeddings(ctx context.Context, limit int32, cursor string) ([]domain.EnrolledEmbedding, string, error)
}

// Guard decides whether a registration embedding collides with an already
// enrolled identity. The exhaustive paged scan is the authoritative check; a
// warm HNSW index narrows it to a handful of exact comparisons. Cross-instance
// races are closed by the face-key constraint at write time, not here.
type Guard struct {
	store     EmbeddingSource
	threshold float64
	index     *Index
}

// NewGuard builds a guard using the given registration threshold. The
// threshold is deliberately tighter than the login threshold: a false accept
// here blocks a legitimate registrant, a false reject lets one person enroll
// twice.
func NewGuard(store EmbeddingSource, threshold float64) *Guard {
	return &Guard{store: store, threshold: threshold, index: NewIndex()}
}

// CheckNoDuplicate returns nil when the candidate embedding matches no
// enrolled identity, and a DuplicateFaceError naming the matched legal id
// otherwise.
func (g *Guard) CheckNoDuplicate(ctx context.Context, candidate domain.Embedding) error {
	if g.index.Warm() {
		// Mirror the scan path's comparison rules before touching the
		// graph: an absent embedding matches nothing, and a wrong-length
		// one is not comparable at all.
		if len(candidate) == 0 {
			return nil
		}
		if dim := g.index.Dim(); dim > 0 && len(candidate) != dim {
			return &domain.DimensionMismatchError{Want: dim, Got: len(candidate)}
		}
		for _, e := range g.index.Nearest(candidate, guardProbes) {
			match, err := IsMatch(candidate, e.Embedding, g.threshold)
			if err != nil {
				return err
			}
			if match {
				return &domain.DuplicateFaceError{MatchedLegalID: e.LegalID}
			}
		}
		return nil
	}
	return g.scan(ctx, candidate)
}

// Observe records a successful enrollment so subsequent checks see it without
// a rescan.
func (g *Guard) Observe(legalID string, e domain.Embedding) {
	g.index.Add(legalID, e)
}

// scan walks every enrolled embedding page by page, short-circuiting on the
// first match. On a clean pass the collected entries seed the index.
func (g *Guard) scan(ctx context.Context, candidate domain.Embedding) error {
	var all []domain.EnrolledEmbedding
	cursor := ""
	for {
		entries, next, err := g.store.ScanEmbeddings(ctx, scanPageSize, cursor)
		if err != nil {
			return fmt.Errorf("scan embeddings: %w", err)
		}
		for _, e := range entries {
			match, err := IsMatch(candidate, e.Embedding, g.threshold)
			if err != nil {
				return err
			}
			if match {
				return &domain.DuplicateFaceError{MatchedLegalID: e.LegalID}
			}
		}
		all = append(all, entries...)
		if next == "" {
			break
		}
		cursor = next
	}
	g.index.Rebuild(all)
	return nil
}
