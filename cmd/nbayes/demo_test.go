package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/nbayes/pkg/errors"
	"github.com/ezoic/nbayes/pkg/log"
	"github.com/ezoic/nbayes/preprocessing"
	"github.com/ezoic/nbayes/sklearn/naive_bayes"
)

func init() {
	log.SetupLoggerWithWriter(io.Discard, "error")
}

func TestGenerateCorpusShape(t *testing.T) {
	cfg := DefaultConfig().Data
	d := generateCorpus(cfg, preprocessing.NewRand(1))

	rows, cols := d.X.Dims()
	assert.Equal(t, cfg.Features, cols)
	assert.Equal(t, 60+30+15, rows)
	assert.Len(t, d.y, rows)

	for i := 0; i < rows; i++ {
		sum := 0.0
		for _, v := range d.X.RawRowView(i) {
			sum += v
		}
		assert.Equal(t, float64(cfg.DocLength), sum)
	}
}

func TestStratifiedSplitKeepsEveryClass(t *testing.T) {
	cfg := DefaultConfig().Data
	rng := preprocessing.NewRand(3)
	d := generateCorpus(cfg, rng)

	train, test := stratifiedSplit(d, 0.25, rng)
	assert.Equal(t, len(d.y), len(train.y)+len(test.y))

	seen := map[int]int{}
	for _, label := range train.y {
		seen[label]++
	}
	assert.Len(t, seen, cfg.Classes)
	assert.Equal(t, 45, seen[0])
	assert.Equal(t, 23, seen[1])
	assert.Equal(t, 12, seen[2])
}

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	report, err := runDemo(DefaultConfig(), &out)
	require.NoError(t, err)

	assert.Equal(t, 3*45, report.BalancedRows)
	assert.GreaterOrEqual(t, report.Multinomial, 0.9)
	assert.Greater(t, report.Bernoulli, 0.6)
	assert.InDelta(t, 1-report.Multinomial, report.ErrorRate, 1e-12)
	assert.Greater(t, report.LogLoss, 0.0)
	assert.Len(t, report.Sweep, len(DefaultConfig().Alphas))
	assert.Contains(t, DefaultConfig().Alphas, report.BestAlpha)

	assert.Contains(t, out.String(), "MultinomialNB accuracy")
	assert.Contains(t, out.String(), "best alpha")
	assert.Contains(t, out.String(), "MultinomialNB error")
}

func TestHeldOutVectorMetricsMatchScore(t *testing.T) {
	cfg := DefaultConfig()
	rng := preprocessing.NewRand(cfg.Seed)
	train, test := stratifiedSplit(generateCorpus(cfg.Data, rng), cfg.Data.TestFraction, rng)

	nb, err := naive_bayes.NewBernoulliNB[int]().Fit(train.X, train.y)
	require.NoError(t, err)

	score, err := nb.Score(test.X, test.y)
	require.NoError(t, err)
	acc, err := heldOutAccuracy(nb, test)
	require.NoError(t, err)
	errorRate, err := heldOutErrorRate(nb, test)
	require.NoError(t, err)

	assert.InDelta(t, score, acc, 1e-12)
	assert.InDelta(t, 1-score, errorRate, 1e-12)

	_, err = heldOutAccuracy(naive_bayes.NewBernoulliNB[int](), test)
	assert.True(t, errors.Is(err, errors.ErrNotFitted))
}

func TestRunDemoDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 11

	first, err := runDemo(cfg, io.Discard)
	require.NoError(t, err)
	second, err := runDemo(cfg, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDemoCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"demo", "--seed", "5", "--samples", "40", "--alpha", "0.5", "--log-level", "error"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "seed=5")
	assert.Contains(t, out.String(), "Params(alpha=0.5)")
}

func TestDemoCommandRejectsNegativeAlpha(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"demo", "--alpha=-1", "--log-level", "error"})

	assert.Error(t, cmd.Execute())
}

func TestConfigCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "alpha: 1")
	assert.Contains(t, out.String(), "test_fraction: 0.25")
}

func TestSavePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.png")
	sweep := []SweepResult{
		{Alpha: 0, Multinomial: 0.8, Bernoulli: 0.7},
		{Alpha: 1, Multinomial: 0.95, Bernoulli: 0.85},
		{Alpha: 5, Multinomial: 0.9, Bernoulli: 0.8},
	}
	require.NoError(t, savePlot(sweep, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.True(t, errors.Is(savePlot(nil, path), errors.ErrEmptyData))
}

func TestDemoCommandWritesPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.svg")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"demo", "--samples", "20", "--plot", path, "--log-level", "error"})

	require.NoError(t, cmd.Execute())
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), "Sweep plot written to")
}
