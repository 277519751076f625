// Package benchmark holds the ground truth: experimentally verified GO
// annotations per protein, restricted to one ontology namespace.
package benchmark

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-fmax/internal/input"
	"github.com/jamesainslie/go-fmax/ontology"
)

// Store maps benchmarked proteins to their true GO terms. It is read-only
// once built and safe for concurrent readers.
type Store struct {
	ns       ontology.Namespace
	terms    map[string]ontology.TermSet
	proteins []string
	total    int
}

// Load reads a benchmark file from path.
func Load(path string, filter ontology.Filter) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open benchmark: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f, path, filter)
}

// Read parses two-column "protein term" lines from r, keeping only the terms
// accepted by filter. A protein none of whose terms survive the filter is not
// benchmarked. Any line without exactly two fields aborts the read.
func Read(r io.Reader, name string, filter ontology.Filter) (*Store, error) {
	s := &Store{
		ns:    filter.Namespace(),
		terms: make(map[string]ontology.TermSet),
	}

	sc := input.NewScanner(r, name)
	for sc.Scan() {
		f := sc.Fields()
		if len(f) != 2 {
			return nil, sc.Malformed(nil, "expected 2 fields (protein, GO term), got %d", len(f))
		}
		protein, term := f[0], f[1]
		if !filter.Keep(term) {
			continue
		}
		set, ok := s.terms[protein]
		if !ok {
			set = make(ontology.TermSet)
			s.terms[protein] = set
		}
		if !set.Has(term) {
			set.Add(term)
			s.total++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	s.proteins = lo.Keys(s.terms)
	slices.Sort(s.proteins)
	return s, nil
}

// FromMap builds a Store directly from protein -> terms, applying filter.
func FromMap(m map[string][]string, filter ontology.Filter) *Store {
	s := &Store{
		ns:    filter.Namespace(),
		terms: make(map[string]ontology.TermSet),
	}
	for protein, terms := range m {
		for _, term := range terms {
			if !filter.Keep(term) {
				continue
			}
			set, ok := s.terms[protein]
			if !ok {
				set = make(ontology.TermSet)
				s.terms[protein] = set
			}
			if !set.Has(term) {
				set.Add(term)
				s.total++
			}
		}
	}
	s.proteins = lo.Keys(s.terms)
	slices.Sort(s.proteins)
	return s
}

// TrueTerms returns the true terms of protein. Unknown proteins yield an
// empty set. The returned set must not be modified.
func (s *Store) TrueTerms(protein string) ontology.TermSet {
	return s.terms[protein]
}

// Proteins returns the benchmarked proteins in sorted order. The returned
// slice must not be modified.
func (s *Store) Proteins() []string {
	return s.proteins
}

// Has reports whether protein is benchmarked.
func (s *Store) Has(protein string) bool {
	_, ok := s.terms[protein]
	return ok
}

// Len returns the number of benchmarked proteins.
func (s *Store) Len() int {
	return len(s.proteins)
}

// TotalTerms returns the number of (protein, term) annotations, the
// denominator of micro-averaged recall.
func (s *Store) TotalTerms() int {
	return s.total
}

// Namespace returns the namespace the store was filtered to.
func (s *Store) Namespace() ontology.Namespace {
	return s.ns
}
