package naive_bayes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/nbayes/pkg/errors"
)

// checkFitInput validates the shapes of a training pair.
func checkFitInput[L any](op string, X mat.Matrix, y []L) (rows, cols int, err error) {
	if X == nil {
		return 0, 0, errors.NewModelError(op, "nil feature matrix", errors.ErrEmptyData)
	}
	rows, cols = X.Dims()
	if rows == 0 || cols == 0 {
		return 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(y) != rows {
		return 0, 0, errors.NewDimensionError(op, rows, len(y), 0)
	}
	return rows, cols, nil
}

// checkPredictInput validates a matrix passed to a fitted model.
func checkPredictInput(op string, X mat.Matrix, nFeatures int) (rows int, err error) {
	if X == nil {
		return 0, errors.NewModelError(op, "nil feature matrix", errors.ErrEmptyData)
	}
	rows, cols := X.Dims()
	if rows == 0 {
		return 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if cols != nFeatures {
		return 0, errors.NewDimensionError(op, nFeatures, cols, 1)
	}
	return rows, nil
}

// checkNonNegative rejects matrices with negative or NaN counts.
func checkNonNegative(op string, X mat.Matrix) error {
	rows, cols := X.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				return errors.NewValueError(op, fmt.Sprintf("MultinomialNB requires numeric features, got NaN at (%d, %d)", i, j))
			}
			if v < 0 {
				return errors.NewValueError(op, fmt.Sprintf("MultinomialNB requires non-negative features, got %g at (%d, %d)", v, i, j))
			}
		}
	}
	return nil
}

// groupRows returns the row indices of each class.
func groupRows(codes []int, nClasses int) [][]int {
	groups := make([][]int, nClasses)
	for i, c := range codes {
		groups[c] = append(groups[c], i)
	}
	return groups
}
