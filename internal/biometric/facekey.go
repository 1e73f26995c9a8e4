package biometric

import (
	"fmt"

	"github.com/evote-api-nosql/internal/domain"
)

// FaceKey derives a coarse 64-bit key from an embedding by quantizing the
// sign of its first 64 components, returned as a 16-digit hex string.
//
// The key backs a uniqueness constraint on the face_keys table: two
// registrations racing past the duplicate scan with near-identical faces
// quantize to the same key, and the second conditional insert fails. It is a
// coarse filter only: similar faces can still land on different keys, so the
// exact scan remains the primary duplicate check.
func FaceKey(e domain.Embedding) string {
	var bits uint64
	n := len(e)
	if n > 64 {
		n = 64
	}
	for i := 0; i < n; i++ {
		if e[i] > 0 {
			bits |= 1 << uint(63-i)
		}
	}
	return fmt.Sprintf("%016x", bits)
}
