package degseq

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/matzehuels/orbitgen/pkg/partition"
)

var (
	// ErrUnsorted is returned by [Sequence.Validate] and [Generator.Generate]
	// when an entry is larger than the one before it.
	ErrUnsorted = errors.New("degree sequence is not sorted non-increasing")

	// ErrNegativeDegree is returned by [Sequence.Validate] and
	// [Generator.Generate] for an entry below zero.
	ErrNegativeDegree = errors.New("negative degree")
)

// Sequence is a target degree per vertex, sorted non-increasing.
type Sequence []int

type degreeExpr struct {
	Neg   bool `parser:"@\"-\"?"`
	Value int  `parser:"@Int"`
}

type sequenceExpr struct {
	Degrees []*degreeExpr `parser:"\"[\"? (@@ (\",\"? @@)*)? \"]\"?"`
}

var parseSequence = participle.MustBuild[sequenceExpr]()

// Parse reads a sequence written as integers separated by commas or
// whitespace, optionally in brackets: "3,3,2,2,1,1", "3 3 2 2 1 1" and
// "[3, 3, 2, 2, 1, 1]" are equivalent. Parse does not validate ordering.
func Parse(s string) (Sequence, error) {
	expr, err := parseSequence.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parse degree sequence %q: %w", s, err)
	}
	seq := make(Sequence, len(expr.Degrees))
	for i, d := range expr.Degrees {
		seq[i] = d.Value
		if d.Neg {
			seq[i] = -d.Value
		}
	}
	return seq, nil
}

// Validate checks that every entry is non-negative and that the sequence is
// sorted non-increasing.
func (s Sequence) Validate() error {
	for i, d := range s {
		if d < 0 {
			return fmt.Errorf("%w: entry %d is %d", ErrNegativeDegree, i, d)
		}
		if i > 0 && d > s[i-1] {
			return fmt.Errorf("%w: entry %d (%d) exceeds entry %d (%d)", ErrUnsorted, i, d, i-1, s[i-1])
		}
	}
	return nil
}

// Sum returns the total degree, twice the edge count of any realization.
func (s Sequence) Sum() int {
	total := 0
	for _, d := range s {
		total += d
	}
	return total
}

// IsGraphical reports whether some simple graph realizes s, by the
// Erdős–Gallai inequalities. s must be valid.
func (s Sequence) IsGraphical() bool {
	if s.Sum()%2 != 0 {
		return false
	}
	n := len(s)
	left := 0
	for k := 1; k <= n; k++ {
		left += s[k-1]
		right := k * (k - 1)
		for _, d := range s[k:] {
			right += min(d, k)
		}
		if left > right {
			return false
		}
	}
	return true
}

// Orbits groups equal entries into the static degree partition.
func (s Sequence) Orbits() partition.Partition {
	return partition.FromDegrees(s)
}

// String renders the sequence comma-separated, as accepted by [Parse].
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}
