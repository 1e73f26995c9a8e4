package biometric

import (
	"sync"

	"github.com/coder/hnsw"
	"github.com/evote-api-nosql/internal/domain"
)

const indexMaxNeighbors = 16

// Index is an in-process HNSW graph over enrolled embeddings, keyed by legal
// id. It accelerates the duplicate scan by narrowing the candidate set; every
// hit is re-verified with the exact L2 distance before a decision is made.
type Index struct {
	mu    sync.RWMutex
	graph *hnsw.Graph[string]
	size  int
	dim   int
	warm  bool
}

func NewIndex() *Index {
	return &Index{}
}

// Warm reports whether the index has been built from a full registry scan.
func (ix *Index) Warm() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.warm
}

// Rebuild replaces the graph with one built from a complete set of enrolled
// embeddings.
func (ix *Index) Rebuild(entries []domain.EnrolledEmbedding) {
	g := hnsw.NewGraph[string]()
	g.M = indexMaxNeighbors
	g.Ml = 1.0 / float64(indexMaxNeighbors)
	g.Distance = hnsw.EuclideanDistance
	size, dim := 0, 0
	for _, e := range entries {
		if len(e.Embedding) == 0 {
			continue
		}
		g.Add(hnsw.MakeNode(e.LegalID, e.Embedding))
		size++
		dim = len(e.Embedding)
	}

	ix.mu.Lock()
	ix.graph = g
	ix.size = size
	ix.dim = dim
	ix.warm = true
	ix.mu.Unlock()
}

// Dim returns the dimension of the indexed embeddings, or 0 when the index
// holds none.
func (ix *Index) Dim() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.dim
}

// Add inserts one enrolled embedding. No-op until the index is warm.
func (ix *Index) Add(legalID string, e domain.Embedding) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if !ix.warm || len(e) == 0 {
		return
	}
	ix.graph.Add(hnsw.MakeNode(legalID, e))
	ix.size++
	ix.dim = len(e)
}

// Nearest returns up to k approximate nearest enrolled embeddings.
func (ix *Index) Nearest(query domain.Embedding, k int) []domain.EnrolledEmbedding {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.warm || ix.size == 0 {
		return nil
	}
	nodes := ix.graph.Search(query, k)
	out := make([]domain.EnrolledEmbedding, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, domain.EnrolledEmbedding{LegalID: n.Key, Embedding: n.Value})
	}
	return out
}
