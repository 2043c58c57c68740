package preprocessing

import (
	"cmp"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	nbErrors "github.com/ezoic/nbayes/pkg/errors"
)

// NewRand returns a PCG-backed generator seeded with seed, for reproducible
// resampling.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func newTimeSeededRand() *rand.Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now^0xdeadbeef))
}

// Oversample balances class frequencies. Let nbSamples be the size of the
// largest class. For every class, in ascending label order, nbSamples row
// indices are drawn uniformly with replacement from that class's rows; the
// blocks are stacked and the combined (X, y) is shuffled with one global
// permutation. The result has k*nbSamples rows. X and y are not modified.
//
// A nil rng uses a time-seeded generator; pass NewRand(seed) for
// reproducible output.
func Oversample[L cmp.Ordered](X mat.Matrix, y []L, rng *rand.Rand) (_ *mat.Dense, _ []L, err error) {
	defer nbErrors.Recover(&err, "Oversample")

	if len(y) == 0 {
		return nil, nil, nbErrors.NewModelError("Oversample", "empty labels", nbErrors.ErrEmptyData)
	}
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, nil, nbErrors.NewModelError("Oversample", "empty data", nbErrors.ErrEmptyData)
	}
	if rows != len(y) {
		return nil, nil, nbErrors.NewDimensionError("Oversample", rows, len(y), 0)
	}
	if rng == nil {
		rng = newTimeSeededRand()
	}

	enc := NewLabelEncoder[L]()
	codes, err := enc.FitTransform(y)
	if err != nil {
		return nil, nil, err
	}

	// Row indices of each class
	groups := make([][]int, enc.NClasses())
	for i, c := range codes {
		groups[c] = append(groups[c], i)
	}

	nbSamples := 0
	for _, n := range enc.Counts {
		nbSamples = max(nbSamples, n)
	}

	total := enc.NClasses() * nbSamples
	source := make([]int, 0, total)
	labels := make([]L, 0, total)
	for c, members := range groups {
		for s := 0; s < nbSamples; s++ {
			source = append(source, members[rng.IntN(len(members))])
			labels = append(labels, enc.Classes[c])
		}
	}

	XOut := mat.NewDense(total, cols, nil)
	yOut := make([]L, total)
	row := make([]float64, cols)
	for i, p := range rng.Perm(total) {
		mat.Row(row, source[p], X)
		XOut.SetRow(i, row)
		yOut[i] = labels[p]
	}

	return XOut, yOut, nil
}
