package biometric

import (
	"math"

	"github.com/evote-api-nosql/internal/domain"
)

// Distance returns the Euclidean (L2) distance between two embeddings.
// A nil or empty vector is treated as "no enrolled face": the distance is
// +Inf, so it never matches any threshold. Vectors of different lengths are
// not comparable and fail with a DimensionMismatchError.
func Distance(a, b domain.Embedding) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return math.Inf(1), nil
	}
	if len(a) != len(b) {
		return 0, &domain.DimensionMismatchError{Want: len(a), Got: len(b)}
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// IsMatch reports whether two embeddings belong to the same identity under
// the given threshold. The comparison is strict: a distance exactly equal to
// the threshold is a non-match.
func IsMatch(a, b domain.Embedding, threshold float64) (bool, error) {
	d, err := Distance(a, b)
	if err != nil {
		return false, err
	}
	return d < threshold, nil
}
