package biometric

import (
	"errors"
	"math"
	"testing"

	"github.com/evote-api-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(vals ...float32) domain.Embedding { return domain.Embedding(vals) }

func TestDistance_SelfIsZero(t *testing.T) {
	a := vec(0.1, -0.2, 0.3, 0.4)
	d, err := Distance(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestDistance_Symmetry(t *testing.T) {
	a := vec(0.1, -0.2, 0.3, 0.4)
	b := vec(-0.5, 0.2, 0.0, 1.1)
	dab, err := Distance(a, b)
	require.NoError(t, err)
	dba, err := Distance(b, a)
	require.NoError(t, err)
	assert.Equal(t, dab, dba)
}

func TestDistance_KnownValue(t *testing.T) {
	// Single differing component: distance equals the component delta.
	a := vec(0, 0, 0, 0)
	b := vec(0.4, 0, 0, 0)
	d, err := Distance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, d, 1e-6)
}

func TestDistance_DimensionMismatch(t *testing.T) {
	_, err := Distance(vec(1, 2, 3), vec(1, 2))
	require.Error(t, err)
	var dm *domain.DimensionMismatchError
	require.True(t, errors.As(err, &dm))
	assert.Equal(t, 3, dm.Want)
	assert.Equal(t, 2, dm.Got)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestDistance_AbsentVectorIsInfinite(t *testing.T) {
	d, err := Distance(nil, vec(1, 2, 3))
	require.NoError(t, err)
	assert.True(t, math.IsInf(d, 1))

	d, err = Distance(vec(1, 2, 3), domain.Embedding{})
	require.NoError(t, err)
	assert.True(t, math.IsInf(d, 1))
}

func TestIsMatch_StrictThreshold(t *testing.T) {
	a := vec(0, 0)
	b := vec(0.6, 0) // distance exactly 0.6

	match, err := IsMatch(a, b, 0.6)
	require.NoError(t, err)
	assert.False(t, match, "distance equal to threshold must not match")

	match, err = IsMatch(a, b, 0.6000001)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestIsMatch_AbsentVectorNeverMatches(t *testing.T) {
	match, err := IsMatch(nil, nil, math.MaxFloat64)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestFaceKey_StableAndSignSensitive(t *testing.T) {
	a := vec(0.1, -0.2, 0.3, -0.4)
	assert.Equal(t, FaceKey(a), FaceKey(a))
	assert.Len(t, FaceKey(a), 16)

	flipped := vec(-0.1, -0.2, 0.3, -0.4)
	assert.NotEqual(t, FaceKey(a), FaceKey(flipped))
}

func TestFaceKey_IgnoresComponentsBeyond64(t *testing.T) {
	long := make(domain.Embedding, 128)
	for i := range long {
		long[i] = 1
	}
	short := make(domain.Embedding, 64)
	for i := range short {
		short[i] = 1
	}
	assert.Equal(t, FaceKey(short), FaceKey(long))
}
