package crackerservice

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/gx0r/jwt-secret-finder/internal/services/cracker"
	"github.com/gx0r/jwt-secret-finder/internal/services/cracker/coordinator"
	"github.com/gx0r/jwt-secret-finder/internal/services/cracker/pool"
	"github.com/gx0r/jwt-secret-finder/internal/services/cracker/progress"
	"github.com/gx0r/jwt-secret-finder/internal/services/cracker/searchspace"
	"github.com/gx0r/jwt-secret-finder/pkg"
)

// VerifierProvider builds the verifier of a run from its signing input and
// target tag.
type VerifierProvider func(signingInput, targetTag []byte) cracker.Verifier

type crackerService struct {
	workers        int
	progressEvery  uint64
	progressPeriod time.Duration

	verifierProvider VerifierProvider
	notifier         progress.Notifier
}

var _ cracker.Service = (*crackerService)(nil)

func NewService(config *cracker.Config, verifierProvider VerifierProvider, notifier progress.Notifier) *crackerService {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &crackerService{
		workers:          workers,
		progressEvery:    config.ProgressEvery,
		progressPeriod:   config.ProgressPeriod,
		verifierProvider: verifierProvider,
		notifier:         notifier,
	}
}

// Crack searches lengths 1..task.MaxLength in order. All workers of a length
// are joined before the next length starts, and no length starts once the
// run is stopped.
func (s *crackerService) Crack(ctx context.Context, task *cracker.Task) (*cracker.Result, error) {
	if err := cracker.ValidateTask(task); err != nil {
		return nil, err
	}

	runID := uuid.New()
	logger := slog.With(slog.String("run_id", runID.String()))
	started := time.Now()

	result := &cracker.Result{
		RunID:  runID,
		Status: cracker.StatusExhausted,
	}

	// no candidate can be decoded, so the length bound does not apply
	if len(task.Alphabet) == 0 || task.MaxLength == 0 {
		logger.Info("search space is empty, nothing to do",
			slog.Int("alphabet_size", len(task.Alphabet)),
			slog.Int("max_length", task.MaxLength),
		)
		return result, nil
	}

	space, err := searchspace.New(task.Alphabet, task.MaxLength)
	if err != nil {
		return nil, err
	}

	tracker, err := progress.NewTracker(runID, s.notifier, s.progressPeriod)
	if err != nil {
		return nil, err
	}

	coord := coordinator.New()
	workerPool := pool.New(space, s.verifierProvider(task.SigningInput, task.TargetTag), coord, tracker, s.progressEvery)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		<-runCtx.Done()
		if ctx.Err() != nil && coord.Abort() {
			logger.Warn("search interrupted", slog.Any("error", ctx.Err()))
		}
	}()

	trackerDone := make(chan struct{})
	go func() {
		defer close(trackerDone)
		tracker.Run(runCtx)
	}()

	logger.Info("search started",
		slog.Int("alphabet_size", len(task.Alphabet)),
		slog.Int("max_length", task.MaxLength),
		slog.Int("workers", s.workers),
		slog.Uint64("total_candidates", space.TotalSize()),
	)

	runErr := s.run(logger, space, workerPool, coord, tracker)

	stop()
	<-watchDone
	<-trackerDone

	result.Elapsed = time.Since(started)

	if runErr != nil {
		tracker.Finish(cracker.StatusAborted)
		logger.Error("search failed", slog.Any("error", runErr))
		return nil, runErr
	}

	if secret, ok := coord.Result(); ok {
		result.Status = cracker.StatusFound
		result.Secret = secret
	} else if ctx.Err() != nil {
		tracker.Finish(cracker.StatusAborted)
		return nil, errors.Wrap(ctx.Err(), "search interrupted")
	}

	final := tracker.Finish(result.Status)
	result.Attempts = final.Attempts

	logger.Info("search finished",
		slog.String("status", string(result.Status)),
		slog.Uint64("attempts", result.Attempts),
		slog.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}

func (s *crackerService) run(
	logger *slog.Logger,
	space *searchspace.SearchSpace,
	workerPool *pool.Pool,
	coord *coordinator.Coordinator,
	tracker *progress.Tracker,
) error {
	for length := 1; length <= space.MaxLength(); length++ {
		if coord.Done() {
			return nil
		}

		size := space.Size(length)
		ranges, err := pkg.SplitRange(size, s.workers)
		if err != nil {
			return err
		}

		logger.Info("checking length",
			slog.Int("length", length),
			slog.Uint64("candidates", size),
		)

		tracker.StartLength(length, size)

		if err := workerPool.Run(length, ranges); err != nil {
			return err
		}
	}

	return nil
}
