package fmax

import (
	"log/slog"

	"github.com/jamesainslie/go-fmax/ontology"
	"github.com/jamesainslie/go-fmax/precrec"
)

// Option configures an Assessor.
type Option func(*config)

type config struct {
	sweep       precrec.Config
	classifier  ontology.Classifier
	cafaHeaders bool
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		sweep:  precrec.DefaultConfig(),
		logger: slog.Default(),
	}
}

// WithThresholds sets the number of swept thresholds (default: 99).
func WithThresholds(n int) Option {
	return func(c *config) {
		c.sweep.Thresholds = n
	}
}

// WithZeroThreshold makes the grid run from 1 down to 0 inclusive.
func WithZeroThreshold() Option {
	return func(c *config) {
		c.sweep.IncludeZero = true
	}
}

// WithWorkers sets how many thresholds are evaluated concurrently
// (default: runtime.NumCPU()). Results do not depend on it.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.sweep.Workers = n
		}
	}
}

// WithAveraging selects micro (default) or macro averaging.
func WithAveraging(a precrec.Averaging) Option {
	return func(c *config) {
		c.sweep.Averaging = a
	}
}

// WithClassifier filters terms by namespace using cls, typically an
// ontology loaded from an OBO file. Without it, inputs are assumed to be
// split per ontology already and every term is kept.
func WithClassifier(cls ontology.Classifier) Option {
	return func(c *config) {
		c.classifier = cls
	}
}

// WithCAFAHeaders accepts CAFA keyword records in prediction files.
func WithCAFAHeaders() Option {
	return func(c *config) {
		c.cafaHeaders = true
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
