// Package precrec computes protein-centric precision-recall curves over a
// threshold sweep and selects the Fmax operating point.
package precrec

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/jamesainslie/go-fmax/ontology"
)

var (
	// ErrEmptyBenchmark indicates a benchmark with no annotated proteins,
	// for which recall is undefined.
	ErrEmptyBenchmark = errors.New("fmax: benchmark has no annotated proteins")

	// ErrInvalidThresholds indicates an unusable threshold count.
	ErrInvalidThresholds = errors.New("fmax: invalid threshold count")
)

// Benchmark is the ground truth the sweep aggregates over.
type Benchmark interface {
	Proteins() []string
	TrueTerms(protein string) ontology.TermSet
}

// Predictions supplies the predicted terms of a protein at a threshold.
type Predictions interface {
	TermsAboveThreshold(protein string, t float64) ontology.TermSet
}

// Averaging selects how per-protein counts are combined.
type Averaging int

const (
	// Micro pools counts: precision is Σtp/Σ|predicted| over proteins with
	// predictions, recall is Σtp/Σ|true| over all benchmarked proteins.
	Micro Averaging = iota
	// Macro averages per-protein ratios: precision over the coverage set,
	// recall over all benchmarked proteins.
	Macro
)

// ParseAveraging accepts "micro" or "macro" in any case. Empty means Micro.
func ParseAveraging(s string) (Averaging, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "micro":
		return Micro, nil
	case "macro":
		return Macro, nil
	}
	return 0, fmt.Errorf("unknown averaging %q", s)
}

func (a Averaging) String() string {
	if a == Macro {
		return "macro"
	}
	return "micro"
}

// Config holds sweep parameters.
type Config struct {
	Thresholds  int  // number of thresholds
	IncludeZero bool // include threshold 0 in the grid
	Workers     int  // thresholds evaluated concurrently
	Averaging   Averaging
}

// DefaultConfig returns the default sweep configuration.
func DefaultConfig() Config {
	return Config{
		Thresholds: DefaultThresholds,
		Workers:    runtime.NumCPU(),
		Averaging:  Micro,
	}
}

// Point is the precision and recall at one threshold.
type Point struct {
	Threshold     float64
	Precision     float64
	Recall        float64
	TruePositives int // Σtp
	Predicted     int // Σ|predicted|
	Covered       int // proteins with at least one surviving prediction
}

// F returns the harmonic mean of the point's precision and recall.
func (p Point) F() float64 {
	return HarmonicMean(p.Precision, p.Recall)
}

// Curve is the result of a sweep, ordered by decreasing threshold.
type Curve struct {
	Points    []Point
	Proteins  int // benchmarked proteins
	TotalTrue int // Σ|true|, fixed for the whole sweep
	Averaging Averaging
}

// Thresholds returns the threshold of every point.
func (c Curve) Thresholds() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Threshold
	}
	return out
}

// Precision returns the precision sequence.
func (c Curve) Precision() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Precision
	}
	return out
}

// Recall returns the recall sequence.
func (c Curve) Recall() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Recall
	}
	return out
}

// Sweep evaluates every threshold of the configured grid against the
// benchmark. Points come back in decreasing threshold order, so recall is
// non-decreasing along the curve. A threshold at which no prediction
// survives gets precision 0.
//
// Thresholds are independent and run on up to cfg.Workers goroutines; each
// writes only its own slot, so the result does not depend on the worker count.
func Sweep(ctx context.Context, b Benchmark, p Predictions, cfg Config) (Curve, error) {
	proteins := b.Proteins()
	if len(proteins) == 0 {
		return Curve{}, ErrEmptyBenchmark
	}

	thresholds, err := Thresholds(cfg.Thresholds, cfg.IncludeZero)
	if err != nil {
		return Curve{}, err
	}

	truth := make([]ontology.TermSet, len(proteins))
	totalTrue := 0
	for i, protein := range proteins {
		truth[i] = b.TrueTerms(protein)
		totalTrue += truth[i].Len()
	}
	if totalTrue == 0 {
		return Curve{}, ErrEmptyBenchmark
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	points := make([]Point, len(thresholds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, t := range thresholds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if cfg.Averaging == Macro {
				points[i] = evaluateMacro(proteins, truth, p, t)
			} else {
				points[i] = evaluateMicro(proteins, truth, totalTrue, p, t)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Curve{}, fmt.Errorf("sweep: %w", err)
	}

	return Curve{
		Points:    points,
		Proteins:  len(proteins),
		TotalTrue: totalTrue,
		Averaging: cfg.Averaging,
	}, nil
}

func evaluateMicro(proteins []string, truth []ontology.TermSet, totalTrue int, p Predictions, t float64) Point {
	pt := Point{Threshold: t}
	for i, protein := range proteins {
		pred := p.TermsAboveThreshold(protein, t)
		if pred.Len() == 0 {
			continue
		}
		pt.Covered++
		pt.Predicted += pred.Len()
		pt.TruePositives += pred.IntersectionLen(truth[i])
	}

	if pt.Predicted > 0 {
		pt.Precision = float64(pt.TruePositives) / float64(pt.Predicted)
	}
	pt.Recall = float64(pt.TruePositives) / float64(totalTrue)
	return pt
}

func evaluateMacro(proteins []string, truth []ontology.TermSet, p Predictions, t float64) Point {
	pt := Point{Threshold: t}
	precisions := make([]float64, 0, len(proteins))
	recalls := make([]float64, len(proteins))

	for i, protein := range proteins {
		pred := p.TermsAboveThreshold(protein, t)
		tp := pred.IntersectionLen(truth[i])
		if n := truth[i].Len(); n > 0 {
			recalls[i] = float64(tp) / float64(n)
		}
		if pred.Len() == 0 {
			continue
		}
		pt.Covered++
		pt.Predicted += pred.Len()
		pt.TruePositives += tp
		precisions = append(precisions, float64(tp)/float64(pred.Len()))
	}

	if len(precisions) > 0 {
		pt.Precision = floats.Sum(precisions) / float64(len(precisions))
	}
	pt.Recall = floats.Sum(recalls) / float64(len(recalls))
	return pt
}
