package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	nbErrors "github.com/ezoic/nbayes/pkg/errors"
)

// Binarizer coerces features to presence/absence indicators: every non-zero
// entry becomes 1 and zero stays 0. It is stateless, so Transform can be
// called without fitting.
type Binarizer struct{}

// NewBinarizer creates a Binarizer.
func NewBinarizer() *Binarizer {
	return &Binarizer{}
}

// Transform returns a new 0/1 matrix with the shape of X.
func (b *Binarizer) Transform(X mat.Matrix) (_ *mat.Dense, err error) {
	defer nbErrors.Recover(&err, "Binarizer.Transform")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, nbErrors.NewModelError("Binarizer.Transform", "empty data", nbErrors.ErrEmptyData)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if X.At(i, j) != 0 {
				result.Set(i, j, 1)
			}
		}
	}
	return result, nil
}

// PresenceAbsence returns the [present | absent] expansion of X: an
// r x 2c matrix whose left block is the binarized X and whose right block
// is its complement.
func (b *Binarizer) PresenceAbsence(X mat.Matrix) (_ *mat.Dense, err error) {
	defer nbErrors.Recover(&err, "Binarizer.PresenceAbsence")
	present, err := b.Transform(X)
	if err != nil {
		return nil, err
	}

	r, c := present.Dims()
	result := mat.NewDense(r, 2*c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			p := present.At(i, j)
			result.Set(i, j, p)
			result.Set(i, c+j, 1-p)
		}
	}
	return result, nil
}
