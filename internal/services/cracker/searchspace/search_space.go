// Package searchspace maps candidate indexes to candidate keys.
//
// For an alphabet of A symbols and a length L, every index in [0, A^L) is a
// base-A number with exactly L digits. Digit 0 of the key is the most
// significant one, so indexes enumerate keys in lexicographic alphabet order.
package searchspace

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/gx0r/jwt-secret-finder/internal/services/cracker"
)

// MaxCandidateLength bounds the length of a single candidate key.
const MaxCandidateLength = 64

// Buffer is the fixed-capacity scratch space Decode writes into.
type Buffer [MaxCandidateLength]byte

// Decode writes the candidate with the given index and length into buf and
// returns the written prefix of buf. The returned slice aliases buf and is
// overwritten by the next call with the same buffer.
func Decode(index uint64, length int, alphabet []byte, buf *Buffer) ([]byte, error) {
	if length < 0 || length > MaxCandidateLength {
		return nil, errors.Wrapf(cracker.ErrLengthTooLong, "length %d, max %d", length, MaxCandidateLength)
	}

	if length == 0 {
		return buf[:0], nil
	}

	base := uint64(len(alphabet))
	if base == 0 {
		return nil, cracker.ErrEmptyAlphabet
	}

	for i := length - 1; i >= 0; i-- {
		buf[i] = alphabet[index%base]
		index /= base
	}

	return buf[:length], nil
}

type SearchSpace struct {
	alphabet []byte
	maxLen   int

	// sizes[l] = alphabet^l
	sizes []uint64
}

// New precomputes the size of every length in [0, maxLen]. It fails if any
// of them does not fit into uint64 or maxLen exceeds MaxCandidateLength.
func New(alphabet []byte, maxLen int) (*SearchSpace, error) {
	if maxLen < 0 || maxLen > MaxCandidateLength {
		return nil, errors.Wrapf(cracker.ErrLengthTooLong, "max length %d, limit %d", maxLen, MaxCandidateLength)
	}

	base := uint64(len(alphabet))
	sizes := make([]uint64, maxLen+1)
	sizes[0] = 1

	for l := 1; l <= maxLen; l++ {
		hi, lo := bits.Mul64(sizes[l-1], base)
		if hi != 0 {
			return nil, errors.Wrapf(cracker.ErrIndexOverflow, "%d^%d", base, l)
		}
		sizes[l] = lo
	}

	return &SearchSpace{
		alphabet: alphabet,
		maxLen:   maxLen,
		sizes:    sizes,
	}, nil
}

func (s *SearchSpace) Alphabet() []byte {
	return s.alphabet
}

func (s *SearchSpace) MaxLength() int {
	return s.maxLen
}

// Size returns the number of candidates of exactly the given length,
// or 0 if the length is outside [0, MaxLength()].
func (s *SearchSpace) Size(length int) uint64 {
	if length < 0 || length > s.maxLen {
		return 0
	}
	return s.sizes[length]
}

// TotalSize returns the number of candidates of length 1 to MaxLength(),
// saturating at math.MaxUint64.
func (s *SearchSpace) TotalSize() uint64 {
	var total uint64
	for l := 1; l <= s.maxLen; l++ {
		sum, carry := bits.Add64(total, s.sizes[l], 0)
		if carry != 0 {
			return ^uint64(0)
		}
		total = sum
	}
	return total
}

// Decode is Decode bound to the space's alphabet.
func (s *SearchSpace) Decode(index uint64, length int, buf *Buffer) ([]byte, error) {
	if length > s.maxLen {
		return nil, errors.Wrapf(cracker.ErrLengthTooLong, "length %d, max %d", length, s.maxLen)
	}
	return Decode(index, length, s.alphabet, buf)
}
