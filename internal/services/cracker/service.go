package cracker

import (
	"context"
)

type Service interface {
	Crack(ctx context.Context, task *Task) (*Result, error)
}

// Verifier reports whether a candidate key reproduces the target tag.
// Implementations must be safe for concurrent use.
type Verifier interface {
	Verify(candidate []byte) bool
}
