// Package pool runs one length of a search: one goroutine per work range,
// all of them joined before Run returns.
package pool

import (
	"runtime/debug"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/gx0r/jwt-secret-finder/internal/services/cracker"
	"github.com/gx0r/jwt-secret-finder/internal/services/cracker/coordinator"
	"github.com/gx0r/jwt-secret-finder/internal/services/cracker/searchspace"
	"github.com/gx0r/jwt-secret-finder/pkg"
)

// Progress receives per-worker counts of checked candidates.
type Progress interface {
	Add(workerID int, n uint64) bool
	Flush(workerID int, n uint64)
}

type Pool struct {
	space         *searchspace.SearchSpace
	verifier      cracker.Verifier
	coordinator   *coordinator.Coordinator
	progress      Progress
	progressEvery uint64
}

func New(
	space *searchspace.SearchSpace,
	verifier cracker.Verifier,
	coord *coordinator.Coordinator,
	progress Progress,
	progressEvery uint64,
) *Pool {
	if progressEvery == 0 {
		progressEvery = cracker.DefaultProgressEvery
	}

	return &Pool{
		space:         space,
		verifier:      verifier,
		coordinator:   coord,
		progress:      progress,
		progressEvery: progressEvery,
	}
}

// Run scans every range for the given length, one goroutine per range.
// A failing worker aborts the coordinator, so its siblings stop early, and
// its error is returned once all of them have exited.
func (p *Pool) Run(length int, ranges []pkg.Range) error {
	var g errgroup.Group

	for id, r := range ranges {
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = errors.Wrapf(cracker.ErrWorkerFailed, "worker %d panicked: %v\n%s", id, rec, debug.Stack())
				}
				if err != nil {
					p.coordinator.Abort()
				}
			}()

			return p.scan(id, length, r)
		})
	}

	return g.Wait()
}

func (p *Pool) scan(id int, length int, r pkg.Range) error {
	var buf searchspace.Buffer
	var pending uint64

	defer func() {
		if p.progress != nil {
			p.progress.Flush(id, pending)
		}
	}()

	for idx := r.Start; idx < r.End; idx++ {
		if p.coordinator.Done() {
			return nil
		}

		candidate, err := p.space.Decode(idx, length, &buf)
		if err != nil {
			return errors.Wrapf(cracker.ErrWorkerFailed, "worker %d: decode index %d: %v", id, idx, err)
		}

		pending++

		if p.verifier.Verify(candidate) {
			p.coordinator.ReportFound(candidate)
			return nil
		}

		if pending >= p.progressEvery && p.progress != nil && p.progress.Add(id, pending) {
			pending = 0
		}
	}

	return nil
}
