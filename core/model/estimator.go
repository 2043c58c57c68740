// Package model provides the abstractions shared by nbayes estimators.
//
// It defines:
//
//   - StateManager: fitted-state and shape tracking held by composition
//   - Params: the hyperparameter struct exposed to tuning collaborators
//   - Classifier / ProbabilisticClassifier: the fit/predict/score capability
//   - Tunable: get/set access to Params
//
// The two Naive Bayes variants implement these interfaces independently;
// there is no shared base type. A hyperparameter search drives any Tunable
// classifier the same way:
//
//	for _, alpha := range grid {
//		if err := clf.SetParams(model.Params{Alpha: alpha}); err != nil {
//			return err
//		}
//		// fit on the training fold, Score on the held-out fold
//	}
package model

import (
	"cmp"

	"gonum.org/v1/gonum/mat"
)

// Predictor maps feature rows to labels.
type Predictor[L cmp.Ordered] interface {
	Predict(X mat.Matrix) ([]L, error)
}

// Scorer computes mean accuracy against true labels.
type Scorer[L cmp.Ordered] interface {
	Score(X mat.Matrix, y []L) (float64, error)
	ScoreWithPrediction(X mat.Matrix, y []L) (float64, []L, error)
}

// Classifier is a fitted-or-not classifier over labels of type L.
type Classifier[L cmp.Ordered] interface {
	Predictor[L]
	Scorer[L]

	// LogProbabilities returns an n_samples x n_classes matrix of per-class
	// log scores, columns ordered as Classes.
	LogProbabilities(X mat.Matrix) (*mat.Dense, error)

	// Classes returns the fitted class labels in ascending order.
	Classes() []L

	IsFitted() bool
}

// ProbabilisticClassifier is a Classifier that reports a confidence score
// with each prediction.
type ProbabilisticClassifier[L cmp.Ordered] interface {
	Classifier[L]
	PredictWithProba(X mat.Matrix) ([]L, []float64, error)
}

// Tunable exposes hyperparameters to an external search.
type Tunable interface {
	Params() Params
	SetParams(p Params) error
}

// Estimator is a Tunable Classifier whose Fit returns the fitted instance E.
type Estimator[L cmp.Ordered, E any] interface {
	Classifier[L]
	Tunable
	Fit(X mat.Matrix, y []L) (E, error)
}
