package crackerservice

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gx0r/jwt-secret-finder/internal/services/cracker"
	"github.com/gx0r/jwt-secret-finder/internal/services/cracker/verifier"
)

const (
	signingInput = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiIxMjM0NTY3ODkwIiwibmFtZSI6IkpvaG4gRG9lIiwiYWRtaW4iOnRydWV9"
	lowercase    = "abcdefghijklmnopqrstuvwxyz"
	digits       = "0123456789"
)

func hmacProvider(signingInput, targetTag []byte) cracker.Verifier {
	return verifier.NewHMACSHA256(signingInput, targetTag)
}

// countingVerifier wraps the real verifier and records every candidate.
type countingVerifier struct {
	next cracker.Verifier

	mu   sync.Mutex
	seen map[string]int
}

func (v *countingVerifier) Verify(candidate []byte) bool {
	v.mu.Lock()
	v.seen[string(candidate)]++
	v.mu.Unlock()
	return v.next.Verify(candidate)
}

type panickingVerifier struct{}

func (panickingVerifier) Verify([]byte) bool {
	panic("verifier exploded")
}

func newTask(alphabet string, maxLength int, key string) *cracker.Task {
	message := []byte(signingInput)
	return &cracker.Task{
		Alphabet:     []byte(alphabet),
		MaxLength:    maxLength,
		SigningInput: message,
		TargetTag:    verifier.Sign([]byte(key), message),
	}
}

func TestService_Crack(t *testing.T) {
	t.Run("finds pass in lowercase up to 4", func(t *testing.T) {
		s := NewService(&cracker.Config{}, hmacProvider, nil)

		result, err := s.Crack(context.Background(), newTask(lowercase, 4, "pass"))
		require.NoError(t, err)
		require.True(t, result.Found())
		assert.Equal(t, "pass", string(result.Secret))
		assert.Equal(t, cracker.StatusFound, result.Status)
		assert.NotZero(t, result.Attempts)
	})

	t.Run("outcome does not depend on worker count", func(t *testing.T) {
		for _, workers := range []int{1, 2, 7, 64} {
			s := NewService(&cracker.Config{Workers: workers}, hmacProvider, nil)

			result, err := s.Crack(context.Background(), newTask("abc", 5, "cab"))
			require.NoError(t, err, "workers %d", workers)
			require.True(t, result.Found(), "workers %d", workers)
			assert.Equal(t, "cab", string(result.Secret), "workers %d", workers)
		}
	})

	t.Run("exhausts digits up to 2, every candidate once", func(t *testing.T) {
		var counter *countingVerifier
		provider := func(signingInput, targetTag []byte) cracker.Verifier {
			counter = &countingVerifier{
				next: verifier.NewHMACSHA256(signingInput, targetTag),
				seen: make(map[string]int),
			}
			return counter
		}
		s := NewService(&cracker.Config{Workers: 3, ProgressEvery: 4}, provider, nil)

		result, err := s.Crack(context.Background(), newTask(digits, 2, "pass"))
		require.NoError(t, err)
		assert.False(t, result.Found())
		assert.Equal(t, cracker.StatusExhausted, result.Status)
		assert.Nil(t, result.Secret)
		assert.Equal(t, uint64(110), result.Attempts)

		require.Len(t, counter.seen, 110)
		for candidate, n := range counter.seen {
			assert.Equal(t, 1, n, "candidate %q", candidate)
		}
		assert.Contains(t, counter.seen, "0")
		assert.Contains(t, counter.seen, "99")
	})

	t.Run("stops at the length of the match", func(t *testing.T) {
		var counter *countingVerifier
		provider := func(signingInput, targetTag []byte) cracker.Verifier {
			counter = &countingVerifier{
				next: verifier.NewHMACSHA256(signingInput, targetTag),
				seen: make(map[string]int),
			}
			return counter
		}
		s := NewService(&cracker.Config{Workers: 4}, provider, nil)

		result, err := s.Crack(context.Background(), newTask(digits, 6, "42"))
		require.NoError(t, err)
		require.True(t, result.Found())
		assert.Equal(t, "42", string(result.Secret))

		for candidate := range counter.seen {
			assert.LessOrEqual(t, len(candidate), 2, "candidate %q was checked after the match", candidate)
		}
	})

	t.Run("degenerate configurations are exhausted without work", func(t *testing.T) {
		tests := []struct {
			name      string
			alphabet  string
			maxLength int
		}{
			{name: "max length 0", alphabet: lowercase, maxLength: 0},
			{name: "empty alphabet", alphabet: "", maxLength: 3},
			{name: "empty alphabet, max above buffer", alphabet: "", maxLength: 100},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				called := false
				provider := func(signingInput, targetTag []byte) cracker.Verifier {
					called = true
					return verifier.NewHMACSHA256(signingInput, targetTag)
				}
				s := NewService(&cracker.Config{}, provider, nil)

				result, err := s.Crack(context.Background(), newTask(tt.alphabet, tt.maxLength, "x"))
				require.NoError(t, err)
				assert.Equal(t, cracker.StatusExhausted, result.Status)
				assert.Zero(t, result.Attempts)
				assert.False(t, called)
			})
		}
	})

	t.Run("index overflow fails before searching", func(t *testing.T) {
		called := false
		provider := func(signingInput, targetTag []byte) cracker.Verifier {
			called = true
			return verifier.NewHMACSHA256(signingInput, targetTag)
		}
		s := NewService(&cracker.Config{}, provider, nil)

		_, err := s.Crack(context.Background(), newTask(lowercase+digits, 13, "x"))
		require.ErrorIs(t, err, cracker.ErrIndexOverflow)
		assert.False(t, called)
	})

	t.Run("length above limit fails", func(t *testing.T) {
		s := NewService(&cracker.Config{}, hmacProvider, nil)

		_, err := s.Crack(context.Background(), newTask("x", 65, "x"))
		require.ErrorIs(t, err, cracker.ErrLengthTooLong)
	})

	t.Run("invalid tasks are rejected", func(t *testing.T) {
		s := NewService(&cracker.Config{}, hmacProvider, nil)

		_, err := s.Crack(context.Background(), nil)
		require.ErrorIs(t, err, cracker.ErrInvalidTask)

		task := newTask("ab", 1, "a")
		task.MaxLength = -1
		_, err = s.Crack(context.Background(), task)
		require.ErrorIs(t, err, cracker.ErrInvalidTask)
	})

	t.Run("empty target tag is searched and exhausted", func(t *testing.T) {
		s := NewService(&cracker.Config{Workers: 2}, hmacProvider, nil)

		task := newTask("ab", 2, "a")
		task.TargetTag = nil

		result, err := s.Crack(context.Background(), task)
		require.NoError(t, err)
		assert.Equal(t, cracker.StatusExhausted, result.Status)
		assert.Equal(t, uint64(6), result.Attempts)
	})

	t.Run("worker failure is fatal", func(t *testing.T) {
		provider := func([]byte, []byte) cracker.Verifier { return panickingVerifier{} }
		s := NewService(&cracker.Config{Workers: 4}, provider, nil)

		result, err := s.Crack(context.Background(), newTask(lowercase, 3, "x"))
		require.ErrorIs(t, err, cracker.ErrWorkerFailed)
		assert.Nil(t, result)
	})

	t.Run("cancelled context interrupts the search", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := NewService(&cracker.Config{Workers: 2}, hmacProvider, nil)

		result, err := s.Crack(ctx, newTask(lowercase, 8, "zzzzzzzz"))
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
	})
}

func TestNewService(t *testing.T) {
	s := NewService(&cracker.Config{}, hmacProvider, nil)
	assert.Positive(t, s.workers)

	s = NewService(&cracker.Config{Workers: 3}, hmacProvider, nil)
	assert.Equal(t, 3, s.workers)
}
