package cracker

import "github.com/gx0r/jwt-secret-finder/pkg/set"

// NormalizeAlphabet drops repeated symbols, keeping the first occurrence, so
// that every candidate is enumerated once.
func NormalizeAlphabet(alphabet string) []byte {
	return set.NewOrdered([]byte(alphabet)...).Slice()
}
