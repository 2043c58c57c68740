package model

import (
	"fmt"
	"math"

	"github.com/ezoic/nbayes/pkg/errors"
)

// DefaultAlpha is the Laplace smoothing used when none is configured.
const DefaultAlpha = 1.0

// Params holds the hyperparameters of a Naive Bayes estimator.
type Params struct {
	// Alpha is the additive smoothing added to every count. 0 disables
	// smoothing and yields maximum-likelihood estimates.
	Alpha float64 `yaml:"alpha" json:"alpha"`
}

// DefaultParams returns Params with Laplace smoothing.
func DefaultParams() Params {
	return Params{Alpha: DefaultAlpha}
}

// Validate checks that Alpha is a finite non-negative number.
func (p Params) Validate() error {
	if math.IsNaN(p.Alpha) || math.IsInf(p.Alpha, 0) {
		return errors.NewValidationError("alpha", "must be finite", p.Alpha)
	}
	if p.Alpha < 0 {
		return errors.NewValidationError("alpha", "must be non-negative", p.Alpha)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("Params(alpha=%g)", p.Alpha)
}
