package naive_bayes

import (
	"github.com/ezoic/nbayes/core/model"
	"github.com/ezoic/nbayes/pkg/log"
)

// Option configures a MultinomialNB or BernoulliNB.
type Option func(*config)

type config struct {
	alpha    float64
	fitPrior bool
	logger   log.Logger
}

func newConfig(name string, options []Option) *config {
	cfg := &config{
		alpha:    model.DefaultAlpha,
		fitPrior: true,
	}
	for _, opt := range options {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName(name)
	}
	return cfg
}

// WithAlpha sets the smoothing parameter (0 for no smoothing)
func WithAlpha(alpha float64) Option {
	return func(c *config) {
		c.alpha = alpha
	}
}

// WithParams sets every hyperparameter from p.
func WithParams(p model.Params) Option {
	return WithAlpha(p.Alpha)
}

// WithFitPrior sets whether to learn class prior probabilities. When false
// a uniform prior is used.
func WithFitPrior(fitPrior bool) Option {
	return func(c *config) {
		c.fitPrior = fitPrior
	}
}

// WithLogger overrides the logger obtained from the global provider.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
