package pkg

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Range represents a range [Start, End)
type Range struct {
	Start uint64
	End   uint64
}

func (r Range) Len() uint64 {
	return r.End - r.Start
}

func (r Range) Empty() bool {
	return r.Start >= r.End
}

// SplitRange splits [0, totalSize) into exactly 'parts' contiguous ranges of
// ceil(totalSize/parts) elements each. The last ranges are shorter or empty
// when totalSize is not a multiple of the chunk size or is smaller than parts.
func SplitRange(totalSize uint64, parts int) ([]Range, error) {
	if parts <= 0 {
		return nil, errors.Errorf("parts must be positive, got %d", parts)
	}

	n := uint64(parts)
	chunk := totalSize / n
	if totalSize%n != 0 {
		chunk++
	}

	ranges := make([]Range, parts)
	for i := uint64(0); i < n; i++ {
		start := totalSize
		if hi, lo := bits.Mul64(i, chunk); hi == 0 && lo < totalSize {
			start = lo
		}

		end := totalSize
		if totalSize-start > chunk {
			end = start + chunk
		}

		ranges[i] = Range{Start: start, End: end}
	}

	return ranges, nil
}
