// Package preprocessing provides the data preparation steps used around the
// Naive Bayes estimators.
//
// This package implements:
//
//   - LabelEncoder: maps arbitrary ordered labels to zero-based class indices
//   - Binarizer: coerces feature counts to presence/absence indicators
//   - Oversample: balances class frequencies by resampling with replacement
//
// Example usage:
//
//	enc := preprocessing.NewLabelEncoder[string]()
//	if err := enc.Fit(y); err != nil {
//		log.Fatal(err)
//	}
//	codes, err := enc.Transform(y)
package preprocessing

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ezoic/nbayes/core/model"
	nbErrors "github.com/ezoic/nbayes/pkg/errors"
)

// LabelEncoder maps labels to class indices. Classes are sorted in
// ascending order and index i stands for Classes[i].
type LabelEncoder[L cmp.Ordered] struct {
	state *model.StateManager

	// Classes holds the distinct labels in ascending order
	Classes []L

	// Counts holds how often each class occurred, aligned with Classes
	Counts []int

	classToIdx map[L]int
}

// NewLabelEncoder creates an unfitted LabelEncoder.
func NewLabelEncoder[L cmp.Ordered]() *LabelEncoder[L] {
	return &LabelEncoder[L]{state: model.NewStateManager()}
}

// Fit learns the sorted set of labels in y and how often each occurs.
// Any previous mapping is discarded.
func (e *LabelEncoder[L]) Fit(y []L) (err error) {
	defer nbErrors.Recover(&err, "LabelEncoder.Fit")
	e.state.Reset()
	e.Classes, e.Counts, e.classToIdx = nil, nil, nil

	if len(y) == 0 {
		return nbErrors.NewModelError("LabelEncoder.Fit", "empty labels", nbErrors.ErrEmptyData)
	}

	counts := make(map[L]int)
	for i, label := range y {
		// NaN is the only value not equal to itself
		if label != label {
			return nbErrors.NewValueError("LabelEncoder.Fit", fmt.Sprintf("label at index %d is NaN", i))
		}
		counts[label]++
	}

	classes := make([]L, 0, len(counts))
	for label := range counts {
		classes = append(classes, label)
	}
	slices.Sort(classes)

	e.Classes = classes
	e.Counts = make([]int, len(classes))
	e.classToIdx = make(map[L]int, len(classes))
	for idx, label := range classes {
		e.classToIdx[label] = idx
		e.Counts[idx] = counts[label]
	}

	e.state.SetDimensions(0, len(y), len(classes))
	e.state.SetFitted()
	return nil
}

// IsFitted reports whether Fit has succeeded.
func (e *LabelEncoder[L]) IsFitted() bool {
	return e.state.IsFitted()
}

// NClasses returns the number of distinct labels seen by Fit.
func (e *LabelEncoder[L]) NClasses() int {
	return len(e.Classes)
}

// Index returns the class index of label.
func (e *LabelEncoder[L]) Index(label L) (int, bool) {
	idx, ok := e.classToIdx[label]
	return idx, ok
}

// Label returns the label for class index idx. It panics if idx is out of
// range, like a slice index.
func (e *LabelEncoder[L]) Label(idx int) L {
	return e.Classes[idx]
}

// Transform maps labels to class indices. A label not seen by Fit is an
// error.
func (e *LabelEncoder[L]) Transform(y []L) (_ []int, err error) {
	defer nbErrors.Recover(&err, "LabelEncoder.Transform")
	if !e.IsFitted() {
		return nil, nbErrors.NewNotFittedError("LabelEncoder", "Transform")
	}

	codes := make([]int, len(y))
	for i, label := range y {
		idx, ok := e.classToIdx[label]
		if !ok {
			return nil, nbErrors.NewValueError("LabelEncoder.Transform", fmt.Sprintf("unseen label %v at index %d", label, i))
		}
		codes[i] = idx
	}
	return codes, nil
}

// InverseTransform maps class indices back to labels.
func (e *LabelEncoder[L]) InverseTransform(codes []int) (_ []L, err error) {
	defer nbErrors.Recover(&err, "LabelEncoder.InverseTransform")
	if !e.IsFitted() {
		return nil, nbErrors.NewNotFittedError("LabelEncoder", "InverseTransform")
	}

	labels := make([]L, len(codes))
	for i, c := range codes {
		if c < 0 || c >= len(e.Classes) {
			return nil, nbErrors.NewValueError("LabelEncoder.InverseTransform", fmt.Sprintf("class index %d out of range [0, %d)", c, len(e.Classes)))
		}
		labels[i] = e.Classes[c]
	}
	return labels, nil
}

// FitTransform fits on y and returns its class indices.
func (e *LabelEncoder[L]) FitTransform(y []L) (_ []int, err error) {
	defer nbErrors.Recover(&err, "LabelEncoder.FitTransform")
	if err := e.Fit(y); err != nil {
		return nil, err
	}
	return e.Transform(y)
}
