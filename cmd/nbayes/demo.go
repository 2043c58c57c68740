package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/nbayes/core/model"
	"github.com/ezoic/nbayes/metrics"
	"github.com/ezoic/nbayes/pkg/errors"
	"github.com/ezoic/nbayes/pkg/log"
	"github.com/ezoic/nbayes/preprocessing"
	"github.com/ezoic/nbayes/sklearn/naive_bayes"
)

// SweepResult is the held-out accuracy of both models at one alpha
type SweepResult struct {
	Alpha       float64
	Multinomial float64
	Bernoulli   float64
}

// DemoReport summarizes one demo run
type DemoReport struct {
	TrainRows       int
	BalancedRows    int
	TestRows        int
	Multinomial     float64 // accuracy at the configured alpha
	Bernoulli       float64
	ErrorRate       float64 // multinomial misclassification rate
	LogLoss         float64 // multinomial posterior cross-entropy on the test rows
	Sweep           []SweepResult
	BestAlpha       float64
	BestMultinomial float64
}

// dataset is a labelled count matrix
type dataset struct {
	X *mat.Dense
	y []int
}

// generateCorpus builds an imbalanced word-count corpus. Class c owns a
// contiguous block of the vocabulary and has Samples >> c rows (at least
// 2). Each row draws DocLength tokens, a Signal share of them from the
// class block and the rest uniformly.
func generateCorpus(cfg DataConfig, rng *rand.Rand) dataset {
	block := cfg.Features / cfg.Classes

	var data []float64
	var y []int
	for c := 0; c < cfg.Classes; c++ {
		n := max(cfg.Samples>>c, 2)
		for i := 0; i < n; i++ {
			row := make([]float64, cfg.Features)
			for t := 0; t < cfg.DocLength; t++ {
				if rng.Float64() < cfg.Signal {
					row[c*block+rng.IntN(block)]++
				} else {
					row[rng.IntN(cfg.Features)]++
				}
			}
			data = append(data, row...)
			y = append(y, c)
		}
	}

	return dataset{X: mat.NewDense(len(y), cfg.Features, data), y: y}
}

// stratifiedSplit holds out a fraction of every class, keeping at least
// one row of each class for training.
func stratifiedSplit(d dataset, fraction float64, rng *rand.Rand) (train, test dataset) {
	byClass := map[int][]int{}
	for i, label := range d.y {
		byClass[label] = append(byClass[label], i)
	}

	var trainIdx, testIdx []int
	for c := 0; c < len(byClass); c++ {
		members := byClass[c]
		rng.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
		nTest := min(int(float64(len(members))*fraction), len(members)-1)
		testIdx = append(testIdx, members[:nTest]...)
		trainIdx = append(trainIdx, members[nTest:]...)
	}

	return subset(d, trainIdx), subset(d, testIdx)
}

func subset(d dataset, idx []int) dataset {
	if len(idx) == 0 {
		return dataset{X: &mat.Dense{}}
	}
	_, cols := d.X.Dims()
	out := dataset{X: mat.NewDense(len(idx), cols, nil), y: make([]int, len(idx))}
	for i, src := range idx {
		out.X.SetRow(i, d.X.RawRowView(src))
		out.y[i] = d.y[src]
	}
	return out
}

// runDemo generates data, balances the training split, fits both models
// and sweeps alpha. A human readable summary is written to w.
func runDemo(cfg *Config, w io.Writer) (*DemoReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := log.GetLoggerWithName("demo")
	rng := preprocessing.NewRand(cfg.Seed)

	corpus := generateCorpus(cfg.Data, rng)
	train, test := stratifiedSplit(corpus, cfg.Data.TestFraction, rng)
	if len(test.y) == 0 {
		return nil, errors.NewModelError("demo", "empty test split", errors.ErrEmptyData)
	}

	XBal, yBal, err := preprocessing.Oversample(train.X, train.y, rng)
	if err != nil {
		return nil, errors.Wrap(err, "oversampling training split")
	}
	balancedRows, _ := XBal.Dims()
	logger.Info("Generated corpus",
		"train_rows", len(train.y),
		"balanced_rows", balancedRows,
		"test_rows", len(test.y),
		"features", cfg.Data.Features,
	)

	report := &DemoReport{
		TrainRows:    len(train.y),
		BalancedRows: balancedRows,
		TestRows:     len(test.y),
	}

	mnb, err := naive_bayes.NewMultinomialNB[int](naive_bayes.WithParams(cfg.Model)).Fit(XBal, yBal)
	if err != nil {
		return nil, errors.Wrap(err, "fitting MultinomialNB")
	}
	bnb, err := naive_bayes.NewBernoulliNB[int](naive_bayes.WithParams(cfg.Model)).Fit(XBal, yBal)
	if err != nil {
		return nil, errors.Wrap(err, "fitting BernoulliNB")
	}

	if report.Multinomial, err = mnb.Score(test.X, test.y); err != nil {
		return nil, err
	}
	if report.Bernoulli, err = heldOutAccuracy(bnb, test); err != nil {
		return nil, err
	}
	if report.ErrorRate, err = heldOutErrorRate(mnb, test); err != nil {
		return nil, err
	}
	if report.LogLoss, err = logLoss(mnb, test); err != nil {
		return nil, err
	}

	report.Sweep, err = sweepAlpha(cfg.Alphas, mnb, bnb, XBal, yBal, test)
	if err != nil {
		return nil, err
	}
	report.BestAlpha, report.BestMultinomial = report.Sweep[0].Alpha, report.Sweep[0].Multinomial
	for _, r := range report.Sweep[1:] {
		if r.Multinomial > report.BestMultinomial {
			report.BestAlpha, report.BestMultinomial = r.Alpha, r.Multinomial
		}
	}

	logger.Info("Demo finished",
		"alpha", cfg.Model.Alpha,
		"multinomial_accuracy", report.Multinomial,
		"bernoulli_accuracy", report.Bernoulli,
		"multinomial_error_rate", report.ErrorRate,
		"log_loss", report.LogLoss,
		"best_alpha", report.BestAlpha,
	)

	printReport(w, cfg, report)
	return report, nil
}

// labelVectors predicts the test rows and returns the true and predicted
// labels as vectors.
func labelVectors(p model.Predictor[int], test dataset) (yTrue, yPred *mat.VecDense, err error) {
	pred, err := p.Predict(test.X)
	if err != nil {
		return nil, nil, err
	}
	yTrue = mat.NewVecDense(len(test.y), nil)
	yPred = mat.NewVecDense(len(pred), nil)
	for i := range test.y {
		yTrue.SetVec(i, float64(test.y[i]))
		yPred.SetVec(i, float64(pred[i]))
	}
	return yTrue, yPred, nil
}

func heldOutAccuracy(p model.Predictor[int], test dataset) (float64, error) {
	yTrue, yPred, err := labelVectors(p, test)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(yTrue, yPred)
}

func heldOutErrorRate(p model.Predictor[int], test dataset) (float64, error) {
	yTrue, yPred, err := labelVectors(p, test)
	if err != nil {
		return 0, err
	}
	return metrics.ClassificationError(yTrue, yPred)
}

// logLoss scores the multinomial posteriors against the test labels.
func logLoss(nb *naive_bayes.MultinomialNB[int], test dataset) (float64, error) {
	proba, err := nb.PredictProba(test.X)
	if err != nil {
		return 0, err
	}

	encoder := preprocessing.NewLabelEncoder[int]()
	if err := encoder.Fit(nb.Classes()); err != nil {
		return 0, err
	}
	codes, err := encoder.Transform(test.y)
	if err != nil {
		return 0, err
	}
	return metrics.LogLoss(codes, proba)
}

// sweepAlpha refits each tunable model at every alpha and scores it on the
// test split. The models are left fitted at the last alpha.
func sweepAlpha(
	alphas []float64,
	mnb *naive_bayes.MultinomialNB[int],
	bnb *naive_bayes.BernoulliNB[int],
	XTrain mat.Matrix, yTrain []int,
	test dataset,
) ([]SweepResult, error) {
	results := make([]SweepResult, 0, len(alphas))
	for _, alpha := range alphas {
		p := model.Params{Alpha: alpha}
		if err := mnb.SetParams(p); err != nil {
			return nil, err
		}
		if err := bnb.SetParams(p); err != nil {
			return nil, err
		}

		r := SweepResult{Alpha: alpha}
		var err error
		if r.Multinomial, err = fitAndScore[*naive_bayes.MultinomialNB[int]](mnb, XTrain, yTrain, test); err != nil {
			return nil, errors.Wrapf(err, "alpha=%g", alpha)
		}
		if r.Bernoulli, err = fitAndScore[*naive_bayes.BernoulliNB[int]](bnb, XTrain, yTrain, test); err != nil {
			return nil, errors.Wrapf(err, "alpha=%g", alpha)
		}
		results = append(results, r)
	}
	return results, nil
}

func fitAndScore[E model.Classifier[int]](est model.Estimator[int, E], X mat.Matrix, y []int, test dataset) (float64, error) {
	fitted, err := est.Fit(X, y)
	if err != nil {
		return 0, err
	}
	return fitted.Score(test.X, test.y)
}

func printReport(w io.Writer, cfg *Config, r *DemoReport) {
	fmt.Fprintln(w, "Naive Bayes demo")
	fmt.Fprintln(w, "================")
	fmt.Fprintf(w, "seed=%d classes=%d features=%d\n", cfg.Seed, cfg.Data.Classes, cfg.Data.Features)
	fmt.Fprintf(w, "train rows: %d (balanced to %d), test rows: %d\n", r.TrainRows, r.BalancedRows, r.TestRows)
	fmt.Fprintf(w, "\n%s\n", cfg.Model)
	fmt.Fprintf(w, "  MultinomialNB accuracy: %.4f\n", r.Multinomial)
	fmt.Fprintf(w, "  BernoulliNB accuracy:   %.4f\n", r.Bernoulli)
	fmt.Fprintf(w, "  MultinomialNB error:    %.4f\n", r.ErrorRate)
	fmt.Fprintf(w, "  MultinomialNB log loss: %.4f\n", r.LogLoss)

	fmt.Fprintf(w, "\n%-8s %-13s %-13s\n", "alpha", "multinomial", "bernoulli")
	for _, s := range r.Sweep {
		fmt.Fprintf(w, "%-8g %-13.4f %-13.4f\n", s.Alpha, s.Multinomial, s.Bernoulli)
	}
	fmt.Fprintf(w, "\nbest alpha (multinomial): %g (%.4f)\n", r.BestAlpha, r.BestMultinomial)
}
