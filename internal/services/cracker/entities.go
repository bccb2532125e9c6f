package cracker

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFound      Status = "FOUND"
	StatusExhausted  Status = "EXHAUSTED"
	StatusAborted    Status = "ABORTED"
)

type Status string

// Task describes one search run. All byte slices are treated as read-only
// for the whole run.
type Task struct {
	Alphabet     []byte
	MaxLength    int
	SigningInput []byte
	TargetTag    []byte
}

type Result struct {
	RunID    uuid.UUID
	Status   Status
	Secret   []byte
	Attempts uint64
	Elapsed  time.Duration
}

func (r *Result) Found() bool {
	return r != nil && r.Status == StatusFound
}

// Progress is a snapshot of a running search.
type Progress struct {
	RunID      uuid.UUID
	Length     int
	LengthSize uint64
	Checked    uint64 // candidates checked at Length
	Attempts   uint64 // candidates checked since the run started
	Status     Status
}
