package fmax

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jamesainslie/go-fmax/benchmark"
	"github.com/jamesainslie/go-fmax/ontology"
	"github.com/jamesainslie/go-fmax/precrec"
	"github.com/jamesainslie/go-fmax/prediction"
)

// Source is a named input stream. Name appears in error messages.
type Source struct {
	Name   string
	Reader io.Reader
}

// Result is the outcome of one assessment run.
type Result struct {
	Namespace ontology.Namespace
	Curve     precrec.Curve
	Best      precrec.Best

	BenchmarkProteins int // proteins in the filtered benchmark
	PredictedProteins int // proteins with at least one prediction in the namespace
	CoveredProteins   int // benchmarked proteins with at least one prediction
}

// Fmax returns the maximum harmonic mean of precision and recall.
func (r *Result) Fmax() float64 {
	return r.Best.F
}

// Thresholds returns the swept thresholds, highest first.
func (r *Result) Thresholds() []float64 {
	return r.Curve.Thresholds()
}

// Precision returns the precision at each threshold.
func (r *Result) Precision() []float64 {
	return r.Curve.Precision()
}

// Recall returns the recall at each threshold.
func (r *Result) Recall() []float64 {
	return r.Curve.Recall()
}

// Assessor runs precision-recall assessments. It holds only configuration
// and is safe for concurrent use.
type Assessor struct {
	cfg    config
	logger *slog.Logger
}

// New creates an Assessor.
func New(opts ...Option) *Assessor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Assessor{cfg: cfg, logger: cfg.logger}
}

// AssessFiles opens the prediction and benchmark files and runs Assess.
func (a *Assessor) AssessFiles(ctx context.Context, ontologyTag, predictionsPath, benchmarkPath string) (*Result, error) {
	// Reject the selector before touching the filesystem.
	if _, err := ontology.Parse(ontologyTag); err != nil {
		return nil, err
	}

	bf, err := os.Open(benchmarkPath)
	if err != nil {
		return nil, fmt.Errorf("open benchmark: %w", err)
	}
	defer func() { _ = bf.Close() }()

	pf, err := os.Open(predictionsPath)
	if err != nil {
		return nil, fmt.Errorf("open predictions: %w", err)
	}
	defer func() { _ = pf.Close() }()

	return a.Assess(ctx, ontologyTag,
		Source{Name: predictionsPath, Reader: pf},
		Source{Name: benchmarkPath, Reader: bf},
	)
}

// Assess evaluates predictions against benchmark for one namespace.
// Any malformed line in either input aborts the run.
func (a *Assessor) Assess(ctx context.Context, ontologyTag string, predictions, bench Source) (*Result, error) {
	ns, err := ontology.Parse(ontologyTag)
	if err != nil {
		return nil, err
	}
	if _, err := precrec.Thresholds(a.cfg.sweep.Thresholds, a.cfg.sweep.IncludeZero); err != nil {
		return nil, err
	}
	filter := ontology.NewFilter(ns, a.cfg.classifier)

	store, err := benchmark.Read(bench.Reader, bench.Name, filter)
	if err != nil {
		return nil, fmt.Errorf("load benchmark: %w", err)
	}
	if store.Len() == 0 {
		return nil, fmt.Errorf("%w: %s has no %s annotations", ErrEmptyBenchmark, bench.Name, ns)
	}
	a.logger.Debug("benchmark loaded",
		"file", bench.Name,
		"namespace", ns.String(),
		"proteins", store.Len(),
		"annotations", store.TotalTerms(),
	)

	var readOpts []prediction.ReadOption
	if a.cfg.cafaHeaders {
		readOpts = append(readOpts, prediction.WithCAFAHeaders())
	}
	preds, err := prediction.Read(predictions.Reader, predictions.Name, filter, readOpts...)
	if err != nil {
		return nil, fmt.Errorf("load predictions: %w", err)
	}

	covered := 0
	for _, p := range store.Proteins() {
		if len(preds.Predictions(p)) > 0 {
			covered++
		}
	}
	a.logger.Debug("predictions loaded",
		"file", predictions.Name,
		"proteins", preds.Len(),
		"predictions", preds.Count(),
		"covered", covered,
	)

	curve, err := precrec.Sweep(ctx, store, preds, a.cfg.sweep)
	if err != nil {
		return nil, fmt.Errorf("threshold sweep: %w", err)
	}
	best := precrec.SelectFmax(curve.Points)

	a.logger.Info("assessment complete",
		"namespace", ns.String(),
		"fmax", best.F,
		"threshold", best.Threshold,
		"precision", best.Precision,
		"recall", best.Recall,
		"averaging", a.cfg.sweep.Averaging.String(),
	)

	return &Result{
		Namespace:         ns,
		Curve:             curve,
		Best:              best,
		BenchmarkProteins: store.Len(),
		PredictedProteins: preds.Len(),
		CoveredProteins:   covered,
	}, nil
}
