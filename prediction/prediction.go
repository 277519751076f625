// Package prediction holds scored GO-term predictions grouped by protein.
package prediction

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-fmax/internal/input"
	"github.com/jamesainslie/go-fmax/ontology"
)

// cafaKeywords are the header and trailer records of a CAFA submission file.
var cafaKeywords = map[string]bool{
	"AUTHOR":   true,
	"MODEL":    true,
	"KEYWORDS": true,
	"ACCURACY": true,
	"END":      true,
}

// Scored is one predicted term with its confidence.
type Scored struct {
	Term  string
	Score float64
}

// Set indexes predictions by protein. Each protein's predictions hold one
// entry per term, sorted by descending score. Set is read-only once built.
type Set struct {
	ns        ontology.Namespace
	byProtein map[string][]Scored
	count     int
}

// ReadOption configures Read.
type ReadOption func(*readConfig)

type readConfig struct {
	cafaHeaders bool
}

// WithCAFAHeaders skips CAFA submission keyword records (AUTHOR, MODEL,
// KEYWORDS, ACCURACY, END) instead of rejecting them.
func WithCAFAHeaders() ReadOption {
	return func(c *readConfig) {
		c.cafaHeaders = true
	}
}

// Load reads a prediction file from path.
func Load(path string, filter ontology.Filter, opts ...ReadOption) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open predictions: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f, path, filter, opts...)
}

// Read parses three-column "protein term score" lines from r, keeping the
// terms accepted by filter. Scores must be decimals in [0,1]. When a
// (protein, term) pair repeats, the highest score is kept.
func Read(r io.Reader, name string, filter ontology.Filter, opts ...ReadOption) (*Set, error) {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	best := make(map[string]map[string]float64)

	sc := input.NewScanner(r, name)
	for sc.Scan() {
		f := sc.Fields()
		if cfg.cafaHeaders && cafaKeywords[f[0]] {
			continue
		}
		if len(f) != 3 {
			return nil, sc.Malformed(nil, "expected 3 fields (protein, GO term, score), got %d", len(f))
		}
		score, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return nil, sc.Malformed(err, "bad score %q", f[2])
		}
		if math.IsNaN(score) || score < 0 || score > 1 {
			return nil, sc.Malformed(nil, "score %q outside [0,1]", f[2])
		}

		protein, term := f[0], f[1]
		if !filter.Keep(term) {
			continue
		}
		terms, ok := best[protein]
		if !ok {
			terms = make(map[string]float64)
			best[protein] = terms
		}
		if prev, seen := terms[term]; !seen || score > prev {
			terms[term] = score
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return build(filter.Namespace(), best), nil
}

// FromScores builds a Set from protein -> predictions, applying filter and
// the max-score rule for duplicate terms. Scores are not range-checked.
func FromScores(m map[string][]Scored, filter ontology.Filter) *Set {
	best := make(map[string]map[string]float64, len(m))
	for protein, preds := range m {
		for _, p := range preds {
			if !filter.Keep(p.Term) {
				continue
			}
			terms, ok := best[protein]
			if !ok {
				terms = make(map[string]float64)
				best[protein] = terms
			}
			if prev, seen := terms[p.Term]; !seen || p.Score > prev {
				terms[p.Term] = p.Score
			}
		}
	}
	return build(filter.Namespace(), best)
}

func build(ns ontology.Namespace, best map[string]map[string]float64) *Set {
	s := &Set{ns: ns, byProtein: make(map[string][]Scored, len(best))}
	for protein, terms := range best {
		preds := make([]Scored, 0, len(terms))
		for term, score := range terms {
			preds = append(preds, Scored{Term: term, Score: score})
		}
		slices.SortFunc(preds, func(a, b Scored) int {
			if c := cmp.Compare(b.Score, a.Score); c != 0 {
				return c
			}
			return cmp.Compare(a.Term, b.Term)
		})
		s.byProtein[protein] = preds
		s.count += len(preds)
	}
	return s
}

// Above returns the predictions for protein with score >= t, highest first.
// The returned slice aliases internal storage and must not be modified.
func (s *Set) Above(protein string, t float64) []Scored {
	preds := s.byProtein[protein]
	n, _ := slices.BinarySearchFunc(preds, t, func(p Scored, t float64) int {
		// preds are descending; everything >= t sorts before t.
		if p.Score >= t {
			return -1
		}
		return 1
	})
	return preds[:n]
}

// TermsAboveThreshold returns the terms predicted for protein with score >= t.
// A protein without predictions yields an empty set.
func (s *Set) TermsAboveThreshold(protein string, t float64) ontology.TermSet {
	above := s.Above(protein, t)
	set := make(ontology.TermSet, len(above))
	for _, p := range above {
		set.Add(p.Term)
	}
	return set
}

// Predictions returns all predictions for protein, highest score first.
// The returned slice must not be modified.
func (s *Set) Predictions(protein string) []Scored {
	return s.byProtein[protein]
}

// Proteins returns the predicted proteins in sorted order.
func (s *Set) Proteins() []string {
	proteins := lo.Keys(s.byProtein)
	slices.Sort(proteins)
	return proteins
}

// Len returns the number of predicted proteins.
func (s *Set) Len() int {
	return len(s.byProtein)
}

// Count returns the number of distinct (protein, term) predictions.
func (s *Set) Count() int {
	return s.count
}

// Namespace returns the namespace the set was filtered to.
func (s *Set) Namespace() ontology.Namespace {
	return s.ns
}
