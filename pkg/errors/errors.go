// Package errors provides the error taxonomy shared by every estimator in
// nbayes.
//
// It re-exports the wrapping helpers of github.com/cockroachdb/errors, so
// errors carry stack traces when printed with %+v, and adds typed errors for
// the failure modes of fitting and inference:
//
//   - DimensionError: a matrix or label vector has the wrong shape
//   - NotFittedError: a fitted-only method was called before Fit
//   - ValueError: an argument holds an invalid value (negative counts, bad alpha)
//   - ValidationError: a named parameter failed validation
//   - ModelError: an operation failed with an underlying cause (e.g. ErrEmptyData)
//
// Every typed error matches its sentinel with errors.Is, so callers can test
// for the category without type assertions:
//
//	if errors.Is(err, errors.ErrNotFitted) {
//		// fit first
//	}
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors.
var (
	ErrNotImplemented    = errors.New("not implemented")
	ErrEmptyData         = errors.New("empty data")
	ErrNotFitted         = errors.New("model not fitted")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidInput      = errors.New("invalid input")
)

// Wrapping helpers backed by cockroachdb/errors.
var (
	New       = errors.New
	Newf      = errors.Newf
	Wrap      = errors.Wrap
	Wrapf     = errors.Wrapf
	WithStack = errors.WithStack
	Is        = errors.Is
	As        = errors.As
	Unwrap    = errors.Unwrap
)

// DimensionError reports that an input does not have the expected size along
// an axis (0 = rows/samples, 1 = columns/features).
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError for operation op.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	axis := "samples"
	if e.Axis == 1 {
		axis = "features"
	}
	return fmt.Sprintf("nbayes: %s: dimension mismatch: expected %d %s, got %d", e.Op, e.Expected, axis, e.Got)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionError) Is(target error) bool { return target == ErrDimensionMismatch }

// NotFittedError is returned when a method that needs learned parameters is
// called on an unfitted estimator.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("nbayes: %s: this %s instance is not fitted yet, call Fit before %s", e.ModelName, e.ModelName, e.Method)
}

// Is reports whether target is ErrNotFitted.
func (e *NotFittedError) Is(target error) bool { return target == ErrNotFitted }

// ValueError reports an argument with an invalid value.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError.
func NewValueError(op, message string) *ValueError {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("nbayes: %s: %s", e.Op, e.Message)
}

// Is reports whether target is ErrInvalidInput.
func (e *ValueError) Is(target error) bool { return target == ErrInvalidInput }

// ValidationError reports a named parameter that failed validation.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

// NewValidationError creates a ValidationError.
func NewValidationError(paramName, reason string, value interface{}) *ValidationError {
	return &ValidationError{ParamName: paramName, Reason: reason, Value: value}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("nbayes: invalid parameter %q (value %v): %s", e.ParamName, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ModelError is a failure inside an operation with an underlying cause.
type ModelError struct {
	Op     string
	Kind   string
	Reason error
}

// NewModelError creates a ModelError wrapping reason.
func NewModelError(op, kind string, reason error) *ModelError {
	return &ModelError{Op: op, Kind: kind, Reason: reason}
}

func (e *ModelError) Error() string {
	if e.Reason == nil {
		return fmt.Sprintf("nbayes: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("nbayes: %s: %s: %v", e.Op, e.Kind, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *ModelError) Unwrap() error { return e.Reason }

// Recover converts a panic raised below the deferred call into an error
// stored in *errp. gonum panics on shape mismatches; this keeps those from
// escaping public methods.
//
//	func (s *Thing) Fit(X mat.Matrix) (err error) {
//		defer errors.Recover(&err, "Thing.Fit")
//		...
//	}
func Recover(errp *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	var cause error
	switch v := r.(type) {
	case error:
		cause = v
	default:
		cause = errors.Newf("%v", v)
	}
	*errp = errors.Wrapf(cause, "%s: recovered from panic", op)
}
