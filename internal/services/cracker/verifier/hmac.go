package verifier

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"

	"github.com/gx0r/jwt-secret-finder/internal/services/cracker"
)

// TagSize is the length of an HMAC-SHA256 tag.
const TagSize = sha256.Size

// Sign computes HMAC-SHA256 of message under key.
func Sign(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

type hmacVerifier struct {
	message []byte
	target  []byte
}

var _ cracker.Verifier = (*hmacVerifier)(nil)

func NewHMACSHA256(signingInput, targetTag []byte) *hmacVerifier {
	return &hmacVerifier{
		message: signingInput,
		target:  targetTag,
	}
}

// Verify compares in variable time: the target is already known to the
// caller, there is no oracle to protect.
func (v *hmacVerifier) Verify(candidate []byte) bool {
	if len(v.target) != TagSize {
		return false
	}

	mac := hmac.New(sha256.New, candidate)
	mac.Write(v.message)

	var sum [TagSize]byte
	return bytes.Equal(mac.Sum(sum[:0]), v.target)
}
