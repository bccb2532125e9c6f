package progress

import (
	"log/slog"

	"github.com/gx0r/jwt-secret-finder/internal/services/cracker"
)

type Notifier interface {
	Notify(progress *cracker.Progress) error
}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier reports progress snapshots as debug records.
func NewLogNotifier(logger *slog.Logger) *logNotifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(p *cracker.Progress) error {
	n.logger.Debug("search progress",
		slog.String("run_id", p.RunID.String()),
		slog.String("status", string(p.Status)),
		slog.Int("length", p.Length),
		slog.Uint64("checked", p.Checked),
		slog.Uint64("length_size", p.LengthSize),
		slog.Uint64("attempts", p.Attempts),
	)
	return nil
}
