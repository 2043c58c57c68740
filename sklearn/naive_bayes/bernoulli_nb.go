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

// BernoulliNB implements Naive Bayes for binary presence/absence features.
// Any non-zero input value counts as present.
type BernoulliNB[L cmp.Ordered] struct {
	state  *model.StateManager
	logger log.Logger

	alpha    float64
	fitPrior bool

	binarizer *preprocessing.Binarizer

	labels_       *preprocessing.LabelEncoder[L]
	featureCount_ *mat.Dense // Rows of each class where the feature is present (n_classes x n_features)
	w_            *mat.Dense // log p, log(1-p), log prior stacked ((2*n_features+1) x n_classes)
	finite_       bool

	mu sync.RWMutex
}

var _ model.Estimator[int, *BernoulliNB[int]] = (*BernoulliNB[int])(nil)

// NewBernoulliNB creates a new Bernoulli Naive Bayes classifier
func NewBernoulliNB[L cmp.Ordered](options ...Option) *BernoulliNB[L] {
	cfg := newConfig("BernoulliNB", options)

	return &BernoulliNB[L]{
		state:     model.NewStateManager(),
		logger:    cfg.logger,
		alpha:     cfg.alpha,
		fitPrior:  cfg.fitPrior,
		binarizer: preprocessing.NewBinarizer(),
	}
}

// Fit trains the classifier and returns the receiver.
//
// X is binarized first. For class c with n_c rows, of which N_cj have
// feature j present, P(j present | c) = (N_cj + alpha) / (n_c + 2 alpha).
// The denominator smooths over the two outcomes present and absent.
func (nb *BernoulliNB[L]) Fit(X mat.Matrix, y []L) (_ *BernoulliNB[L], err error) {
	defer errors.Recover(&err, "BernoulliNB.Fit")
	nb.mu.Lock()
	defer nb.mu.Unlock()

	if err := (model.Params{Alpha: nb.alpha}).Validate(); err != nil {
		return nil, err
	}
	rows, cols, err := checkFitInput("BernoulliNB.Fit", X, y)
	if err != nil {
		return nil, err
	}
	if err := nb.state.CheckFeatures("BernoulliNB.Fit", cols); err != nil {
		return nil, err
	}

	present, err := nb.binarizer.Transform(X)
	if err != nil {
		return nil, err
	}

	labels := preprocessing.NewLabelEncoder[L]()
	codes, err := labels.FitTransform(y)
	if err != nil {
		return nil, err
	}
	nClasses := labels.NClasses()

	nb.logger.Debug("Fitting BernoulliNB",
		"n_samples", rows,
		"n_features", cols,
		"n_classes", nClasses,
		"alpha", nb.alpha,
	)

	counts := mat.NewDense(nClasses, cols, nil)
	var wg sync.WaitGroup
	for c, members := range groupRows(codes, nClasses) {
		wg.Add(1)
		go func(dst []float64, members []int) {
			defer wg.Done()
			for _, i := range members {
				for j, v := range present.RawRowView(i) {
					dst[j] += v
				}
			}
		}(counts.RawRowView(c), members)
	}
	wg.Wait()

	w := mat.NewDense(2*cols+1, nClasses, nil)
	for c := 0; c < nClasses; c++ {
		nc := float64(labels.Counts[c])
		for j, n := range counts.RawRowView(c) {
			p := (n + nb.alpha) / (nc + 2*nb.alpha)
			w.Set(j, c, math.Log(p))
			w.Set(cols+j, c, math.Log1p(-p))
		}

		if nb.fitPrior {
			w.Set(2*cols, c, math.Log(nc/float64(rows)))
		} else {
			w.Set(2*cols, c, -math.Log(float64(nClasses)))
		}
	}

	nb.labels_ = labels
	nb.featureCount_ = counts
	nb.w_ = w
	nb.finite_ = allFinite(w)
	nb.state.SetDimensions(cols, rows, nClasses)
	nb.state.SetFitted()

	return nb, nil
}

// LogProbabilities returns the n_samples x n_classes matrix of joint log
// likelihoods [present | absent | 1] . W. The rows are not normalized: the
// scores are only compared within a row.
func (nb *BernoulliNB[L]) LogProbabilities(X mat.Matrix) (_ *mat.Dense, err error) {
	defer errors.Recover(&err, "BernoulliNB.LogProbabilities")
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return nb.logProbabilities("BernoulliNB.LogProbabilities", X)
}

func (nb *BernoulliNB[L]) logProbabilities(op string, X mat.Matrix) (*mat.Dense, error) {
	if err := nb.state.RequireFitted("BernoulliNB", op); err != nil {
		return nil, err
	}
	nFeatures, _, _ := nb.state.GetDimensions()
	if _, err := checkPredictInput(op, X, nFeatures); err != nil {
		return nil, err
	}

	design, err := nb.binarizer.PresenceAbsence(X)
	if err != nil {
		return nil, err
	}
	return jointLogLikelihood(design, nb.w_, nb.finite_), nil
}

// Predict returns the highest scoring label for each row of X. Ties go to
// the smallest label.
func (nb *BernoulliNB[L]) Predict(X mat.Matrix) (_ []L, err error) {
	defer errors.Recover(&err, "BernoulliNB.Predict")
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return nb.predict("BernoulliNB.Predict", X)
}

func (nb *BernoulliNB[L]) predict(op string, X mat.Matrix) ([]L, error) {
	scores, err := nb.logProbabilities(op, X)
	if err != nil {
		return nil, err
	}
	return nb.labels_.InverseTransform(argmaxRows(scores))
}

// Score returns the mean accuracy on the given test data and labels
func (nb *BernoulliNB[L]) Score(X mat.Matrix, y []L) (float64, error) {
	accuracy, _, err := nb.ScoreWithPrediction(X, y)
	return accuracy, err
}

// ScoreWithPrediction returns the mean accuracy together with the
// predicted labels.
func (nb *BernoulliNB[L]) ScoreWithPrediction(X mat.Matrix, y []L) (_ float64, _ []L, err error) {
	defer errors.Recover(&err, "BernoulliNB.Score")
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if X != nil {
		if rows, _ := X.Dims(); rows != len(y) {
			return 0, nil, errors.NewDimensionError("BernoulliNB.Score", rows, len(y), 0)
		}
	}
	predicted, err := nb.predict("BernoulliNB.Score", X)
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
func (nb *BernoulliNB[L]) Params() model.Params {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return model.Params{Alpha: nb.alpha}
}

// SetParams replaces the hyperparameters. The change takes effect at the
// next Fit.
func (nb *BernoulliNB[L]) SetParams(p model.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.alpha = p.Alpha
	return nil
}

func (nb *BernoulliNB[L]) Alpha() float64 {
	return nb.Params().Alpha
}

func (nb *BernoulliNB[L]) SetAlpha(alpha float64) error {
	return nb.SetParams(model.Params{Alpha: alpha})
}

func (nb *BernoulliNB[L]) IsFitted() bool {
	return nb.state.IsFitted()
}

// Classes returns the class labels
func (nb *BernoulliNB[L]) Classes() []L {
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
func (nb *BernoulliNB[L]) ClassCount() []int {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if nb.labels_ == nil {
		return nil
	}

	counts := make([]int, len(nb.labels_.Counts))
	copy(counts, nb.labels_.Counts)
	return counts
}

func (nb *BernoulliNB[L]) NFeatures() int {
	nFeatures, _, _ := nb.state.GetDimensions()
	return nFeatures
}

// FeatureCount returns, per class, how many training rows had each feature
// present (n_classes x n_features).
func (nb *BernoulliNB[L]) FeatureCount() *mat.Dense {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if nb.featureCount_ == nil {
		return nil
	}
	return mat.DenseCopyOf(nb.featureCount_)
}

// Weights returns a copy of the (2*n_features+1) x n_classes weight matrix.
func (nb *BernoulliNB[L]) Weights() *mat.Dense {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if nb.w_ == nil {
		return nil
	}
	return mat.DenseCopyOf(nb.w_)
}

// FeatureLogProb returns log P(feature present | class)
// (n_classes x n_features).
func (nb *BernoulliNB[L]) FeatureLogProb() [][]float64 {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if nb.w_ == nil {
		return nil
	}

	rows, nClasses := nb.w_.Dims()
	nFeatures := (rows - 1) / 2
	result := make([][]float64, nClasses)
	for c := range result {
		result[c] = mat.Col(nil, c, nb.w_.Slice(0, nFeatures, 0, nClasses))
	}
	return result
}

// ClassLogPrior returns the log prior probabilities of classes
func (nb *BernoulliNB[L]) ClassLogPrior() []float64 {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	if nb.w_ == nil {
		return nil
	}

	rows, _ := nb.w_.Dims()
	return mat.Row(nil, rows-1, nb.w_)
}

// Reset discards the fitted parameters.
func (nb *BernoulliNB[L]) Reset() {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	nb.labels_ = nil
	nb.featureCount_ = nil
	nb.w_ = nil
	nb.finite_ = false
	nb.state.Reset()
}
