// Package metrics provides evaluation metrics for classifiers.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	nbErrors "github.com/ezoic/nbayes/pkg/errors"
)

// ErrorRateScore calculates the fraction of positions where yPred differs
// from yTrue. Labels may be of any comparable type.
//
// Parameters:
//   - yTrue: Ground truth labels
//   - yPred: Predicted labels
//
// Returns:
//   - The error rate (between 0 and 1)
//   - An error if inputs are empty or of different lengths
func ErrorRateScore[L comparable](yTrue, yPred []L) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, nbErrors.NewValueError(
			"ErrorRateScore",
			"input label slices cannot be empty",
		)
	}

	if n != len(yPred) {
		return 0, nbErrors.NewDimensionError(
			"ErrorRateScore",
			n,
			len(yPred),
			0,
		)
	}

	// Count misclassifications
	errors := 0
	for i := 0; i < n; i++ {
		if yTrue[i] != yPred[i] {
			errors++
		}
	}

	return float64(errors) / float64(n), nil
}

// AccuracyScore calculates the fraction of correct predictions.
//
// Example:
//
//	acc, err := AccuracyScore([]string{"a", "b", "b"}, []string{"a", "b", "a"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Accuracy: %.3f\n", acc) // Output: Accuracy: 0.667
func AccuracyScore[L comparable](yTrue, yPred []L) (float64, error) {
	errorRate, err := ErrorRateScore(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1.0 - errorRate, nil
}

// ClassificationError calculates the classification error rate for labels
// stored in vectors.
//
// Example:
//
//	yTrue := mat.NewVecDense(5, []float64{0, 1, 2, 1, 0})
//	yPred := mat.NewVecDense(5, []float64{0, 1, 1, 1, 0})
//	errorRate, err := ClassificationError(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Error Rate: %f\n", errorRate) // Output: Error Rate: 0.2
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, nbErrors.NewValueError(
			"ClassificationError",
			"input vectors cannot be nil",
		)
	}
	return ErrorRateScore(mat.Col(nil, 0, yTrue), mat.Col(nil, 0, yPred))
}

// Accuracy calculates the classification accuracy for labels stored in
// vectors.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	errorRate, err := ClassificationError(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1.0 - errorRate, nil
}

// LogLoss calculates the multi-class cross-entropy of predicted class
// probabilities.
//
// Parameters:
//   - yTrue: class indices in [0, n_classes)
//   - proba: n_samples x n_classes matrix of predicted probabilities
//
// Returns:
//   - The mean negative log-likelihood of the true classes
//   - An error if inputs are invalid
func LogLoss(yTrue []int, proba mat.Matrix) (float64, error) {
	n := len(yTrue)
	if n == 0 || proba == nil {
		return 0, nbErrors.NewValueError(
			"LogLoss",
			"inputs cannot be empty",
		)
	}

	rows, cols := proba.Dims()
	if n != rows {
		return 0, nbErrors.NewDimensionError(
			"LogLoss",
			n,
			rows,
			0,
		)
	}

	// Clip probabilities to avoid log(0)
	const epsilon = 1e-15
	loss := 0.0

	for i, c := range yTrue {
		if c < 0 || c >= cols {
			return 0, nbErrors.NewValidationError(
				"yTrue",
				fmt.Sprintf("class index %d at position %d is outside [0, %d)", c, i, cols),
				c,
			)
		}

		p := proba.At(i, c)
		if math.IsNaN(p) || p < epsilon {
			p = epsilon
		} else if p > 1-epsilon {
			p = 1 - epsilon
		}
		loss -= math.Log(p)
	}

	return loss / float64(n), nil
}
