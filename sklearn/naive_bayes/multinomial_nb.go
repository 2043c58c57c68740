// Package naive_bayes implements Multinomial and Bernoulli Naive Bayes
// classifiers over discrete feature-count matrices.
//
// Both models fold their learned log-probabilities into a single weight
// matrix W so that scoring is one affine transform in log space:
//
//	scores = [X | 1] . W
//
// They are independent implementations of model.Classifier; they share no
// base type because their preprocessing and the shape of W differ.
package naive_bayes

import (
	"cmp"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/nbayes/core/model"
	"github.com/ezoic/nbayes/metrics"
	"github.com/ezoic/nbayes/pkg/errors"
	"github.com/ezoic/nbayes/pkg/log"
	"github.com/ezoic/nbayes/preprocessing"
)

// MultinomialNB implements the Multinomial Naive Bayes classifier
// for discrete features (e.g., word counts for text classification).
type MultinomialNB[L cmp.Ordered] struct {
	// State management using composition
	state  *model.StateManager
	logger log.Logger

	// Hyperparameters
	alpha    float64 // Additive (Laplace/Lidstone) smoothing parameter
	fitPrior bool    // Whether to learn class prior probabilities

	// Learned parameters
	labels_       *preprocessing.LabelEncoder[L] // Class index <-> label
	featureCount_ *mat.Dense                     // Raw feature counts (n_classes x n_features)
	w_            *mat.Dense                     // Feature log probs plus prior row ((n_features+1) x n_classes)
	finite_       bool                           // Whether w_ has no infinities

	mu sync.RWMutex
}

// Compile-time interface checks
var (
	_ model.ProbabilisticClassifier[int]              = (*MultinomialNB[int])(nil)
	_ model.Estimator[string, *MultinomialNB[string]] = (*MultinomialNB[string])(nil)
)

// NewMultinomialNB creates a new Multinomial Naive Bayes classifier
func NewMultinomialNB[L cmp.Ordered](options ...Option) *MultinomialNB[L] {
	cfg := newConfig("MultinomialNB", options)

	return &MultinomialNB[L]{
		state:    model.NewStateManager(),
		logger:   cfg.logger,
		alpha:    cfg.alpha,
		fitPrior: cfg.fitPrior,
	}
}

// Fit trains the classifier on the count matrix X (n_samples x n_features)
// and labels y, replacing any previous fit, and returns the receiver.
//
// For each class c the feature counts of its rows are summed, alpha is added
// to every sum, and feature j gets log(C[c,j] / sum_j C[c,j]). The class log
// prior is log(n_c / n). If the model was already fitted, X must have the
// same number of columns as before.
func (nb *MultinomialNB[L]) Fit(X mat.Matrix, y []L) (_ *MultinomialNB[L], err error) {
	defer errors.Recover(&err, "MultinomialNB.Fit")
	nb.mu.Lock()
	defer nb.mu.Unlock()

	if err := (model.Params{Alpha: nb.alpha}).Validate(); err != nil {
		return nil, err
	}
	rows, cols, err := checkFitInput("MultinomialNB.Fit", X, y)
	if err != nil {
		return nil, err
	}
	if err := nb.state.CheckFeatures("MultinomialNB.Fit", cols); err != nil {
		return nil, err
	}
	if err := checkNonNegative("MultinomialNB.Fit", X); err != nil {
		return nil, err
	}

	labels := preprocessing.NewLabelEncoder[L]()
	codes, err := labels.FitTransform(y)
	if err != nil {
		return nil, err
	}
	nClasses := labels.NClasses()

	nb.logger.Debug("Fitting MultinomialNB",
		"n_samples", rows,
		"n_features", cols,
		"n_classes", nClasses,
		"alpha", nb.alpha,
	)

	// Class blocks are independent; each goroutine owns one row of counts
	counts := mat.NewDense(nClasses, cols, nil)
	var wg sync.WaitGroup
	for c, members := range groupRows(codes, nClasses) {
		wg.Add(1)
		go func(dst []float64, members []int) {
			defer wg.Done()
			for _, i := range members {
				for j := 0; j < cols; j++ {
					dst[j] += X.At(i, j)
				}
			}
		}(counts.RawRowView(c), members)
	}
	wg.Wait()

	w := mat.NewDense(cols+1, nClasses, nil)
	for c := 0; c < nClasses; c++ {
		classCounts := counts.RawRowView(c)

		total := 0.0
		for j := 0; j < cols; j++ {
			total += classCounts[j] + nb.alpha
		}
		for j := 0; j < cols; j++ {
			w.Set(j, c, safeLog(classCounts[j]+nb.alpha, total))
		}

		if nb.fitPrior {
			w.Set(cols, c, math.Log(float64(labels.Counts[c])/float64(rows)))
		} else {
			w.Set(cols, c, -math.Log(float64(nClasses)))
		}
	}

	nb.labels_ = labels
	nb.featureCount_ = counts
	nb.w_ = w
	nb.finite_ = allFinite(w)
	nb.state.SetDimensions(cols, rows, nClasses)
	nb.state.SetFitted()

	if !nb.finite_ {
		nb.logger.Debug("Some feature log probabilities are -Inf; set alpha > 0 to smooth unseen features",
			"alpha", nb.alpha)
	}

	return nb, nil
}

// LogProbabilities returns the n_samples x n_classes matrix of log posterior
// probabilities. Each row is normalized with a numerically stable
// log-sum-exp; a row in which every class scores -Inf is returned as is.
func (nb *MultinomialNB[L]) LogProbabilities(X mat.Matrix) (_ *mat.Dense, err error) {
	defer errors.Recover(&err, "MultinomialNB.LogProbabilities")
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return nb.logProbabilities("MultinomialNB.LogProbabilities", X)
}

func (nb *MultinomialNB[L]) logProbabilities(op string, X mat.Matrix) (*mat.Dense, error) {
	if err := nb.state.RequireFitted("MultinomialNB", op); err != nil {
		return nil, err
	}
	nFeatures, _, _ := nb.state.GetDimensions()
	if _, err := checkPredictInput(op, X, nFeatures); err != nil {
		return nil, err
	}
	if err := checkNonNegative(op, X); err != nil {
		return nil, err
	}

	scores := jointLogLikelihood(X, nb.w_, nb.finite_)
	normalizeLogRows(scores)
	return scores, nil
}

// PredictProba returns the posterior probabilities, exp(LogProbabilities).
func (nb *MultinomialNB[L]) PredictProba(X mat.Matrix) (_ *mat.Dense, err error) {
	defer errors.Recover(&err, "MultinomialNB.PredictProba")
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	logProba, err := nb.logProbabilities("MultinomialNB.PredictProba", X)
	if err != nil {
		return nil, err
	}
	logProba.Apply(func(_, _ int, v float64) float64 { return math.Exp(v) }, logProba)
	return logProba, nil
}

// Predict returns the most probable label for each row of X. Ties go to
// the smallest label.
func (nb *MultinomialNB[L]) Predict(X mat.Matrix) (_ []L, err error) {
	defer errors.Recover(&err, "MultinomialNB.Predict")
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	labels, _, err := nb.predict("MultinomialNB.Predict", X)
	return labels, err
}

// PredictWithProba is Predict that also returns, for each row, the
// posterior probability of the predicted label.
func (nb *MultinomialNB[L]) PredictWithProba(X mat.Matrix) (_ []L, _ []float64, err error) {
	defer errors.Recover(&err, "MultinomialNB.PredictWithProba")
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	return nb.predict("MultinomialNB.PredictWithProba", X)
}

func (nb *MultinomialNB[L]) predict(op string, X mat.Matrix) ([]L, []float64, error) {
	logProba, err := nb.logProbabilities(op, X)
	if err != nil {
		return nil, nil, err
	}

	best := argmaxRows(logProba)
	labels, err := nb.labels_.InverseTransform(best)
	if err != nil {
		return nil, nil, err
	}

	probs := make([]float64, len(best))
	for i, c := range best {
		probs[i] = math.Exp(logProba.At(i, c))
	}
	return labels, probs, nil
}

// Score returns the mean accuracy on the given test data and labels
func (nb *MultinomialNB[L]) Score(X mat.Matrix, y []L) (float64, error) {
	accuracy, _, err := nb.ScoreWithPrediction(X, y)
	return accuracy, err
}

// ScoreWithPrediction returns the mean accuracy together with the
// predicted labels.
func (nb *MultinomialNB[L]) ScoreWithPrediction(X mat.Matrix, y []L) (_ float64, _ []L, err error) {
	defer errors.Recover(&err, "MultinomialNB.Score")
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if X != nil {
		if rows, _ := X.Dims(); rows != len(y) {
			return 0, nil, errors.NewDimensionError("MultinomialNB.Score", rows, len(y), 0)
		}
	}
	predicted, _, err := nb.predict("MultinomialNB.Score", X)
	if err != nil {
		return 0, nil, err
	}
	accuracy, err := metrics.AccuracyScore(y, predicted)
	if err != nil {
		return 0, nil, err
	}
	return accuracy, predicted, nil
}

// Params returns the current hyperparameters.
func (nb *MultinomialNB[L]) Params() model.Params {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return model.Params{Alpha: nb.alpha}
}

// SetParams replaces the hyperparameters. The change takes effect at the
// next Fit.
func (nb *MultinomialNB[L]) SetParams(p model.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.alpha = p.Alpha
	return nil
}

// Alpha returns the smoothing parameter.
func (nb *MultinomialNB[L]) Alpha() float64 {
	return nb.Params().Alpha
}

// SetAlpha sets the smoothing parameter.
func (nb *MultinomialNB[L]) SetAlpha(alpha float64) error {
	return nb.SetParams(model.Params{Alpha: alpha})
}

// IsFitted reports whether Fit has succeeded.
func (nb *MultinomialNB[L]) IsFitted() bool {
	return nb.state.IsFitted()
}

// Classes returns the class labels
func (nb *MultinomialNB[L]) Classes() []L {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if nb.labels_ == nil {
		return nil
	}

	classes := make([]L, len(nb.labels_.Classes))
	copy(classes, nb.labels_.Classes)
	return classes
}

// ClassCount returns the number of training samples of each class.
func (nb *MultinomialNB[L]) ClassCount() []int {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if nb.labels_ == nil {
		return nil
	}

	counts := make([]int, len(nb.labels_.Counts))
	copy(counts, nb.labels_.Counts)
	return counts
}

// NFeatures returns the number of features seen during fit.
func (nb *MultinomialNB[L]) NFeatures() int {
	nFeatures, _, _ := nb.state.GetDimensions()
	return nFeatures
}

// FeatureCount returns the unsmoothed per-class feature counts
// (n_classes x n_features).
func (nb *MultinomialNB[L]) FeatureCount() *mat.Dense {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if nb.featureCount_ == nil {
		return nil
	}
	return mat.DenseCopyOf(nb.featureCount_)
}

// Weights returns a copy of the (n_features+1) x n_classes weight matrix.
func (nb *MultinomialNB[L]) Weights() *mat.Dense {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if nb.w_ == nil {
		return nil
	}
	return mat.DenseCopyOf(nb.w_)
}

// FeatureLogProb returns the log probability of features given classes
// (n_classes x n_features).
func (nb *MultinomialNB[L]) FeatureLogProb() [][]float64 {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if nb.w_ == nil {
		return nil
	}

	rows, nClasses := nb.w_.Dims()
	result := make([][]float64, nClasses)
	for c := range result {
		result[c] = mat.Col(nil, c, nb.w_.Slice(0, rows-1, 0, nClasses))
	}
	return result
}

// ClassLogPrior returns the log prior probabilities of classes
func (nb *MultinomialNB[L]) ClassLogPrior() []float64 {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if nb.w_ == nil {
		return nil
	}

	rows, _ := nb.w_.Dims()
	return mat.Row(nil, rows-1, nb.w_)
}

// Reset discards the fitted parameters.
func (nb *MultinomialNB[L]) Reset() {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	nb.labels_ = nil
	nb.featureCount_ = nil
	nb.w_ = nil
	nb.finite_ = false
	nb.state.Reset()
}
