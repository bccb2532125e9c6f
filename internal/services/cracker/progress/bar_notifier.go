package progress

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/gx0r/jwt-secret-finder/internal/services/cracker"
)

type barNotifier struct {
	bar    *progressbar.ProgressBar
	length int
}

// NewBarNotifier draws one progress bar per candidate length on w.
func NewBarNotifier(w io.Writer) *barNotifier {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("starting"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("keys"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetPredictTime(true),
	)

	return &barNotifier{bar: bar}
}

func (n *barNotifier) Notify(p *cracker.Progress) error {
	if p.Length != n.length {
		n.length = p.Length
		n.bar.Reset()
		n.bar.ChangeMax64(clampInt64(p.LengthSize))
		n.bar.Describe(fmt.Sprintf("length %d", p.Length))
	}

	if err := n.bar.Set64(clampInt64(p.Checked)); err != nil {
		return err
	}

	switch p.Status {
	case cracker.StatusFound, cracker.StatusExhausted, cracker.StatusAborted:
		return n.bar.Clear()
	}

	return nil
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
