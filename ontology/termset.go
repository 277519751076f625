package ontology

import (
	"slices"

	"github.com/samber/lo"
)

// TermSet is a set of GO term identifiers.
type TermSet map[string]struct{}

// NewTermSet returns a set holding terms.
func NewTermSet(terms ...string) TermSet {
	s := make(TermSet, len(terms))
	for _, t := range terms {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts term.
func (s TermSet) Add(term string) {
	s[term] = struct{}{}
}

// Has reports whether term is in the set. A nil set holds nothing.
func (s TermSet) Has(term string) bool {
	_, ok := s[term]
	return ok
}

// Len returns the number of terms.
func (s TermSet) Len() int {
	return len(s)
}

// IntersectionLen returns |s ∩ other| without building the intersection.
func (s TermSet) IntersectionLen(other TermSet) int {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	n := 0
	for t := range small {
		if large.Has(t) {
			n++
		}
	}
	return n
}

// Sorted returns the terms in lexical order.
func (s TermSet) Sorted() []string {
	terms := lo.Keys(s)
	slices.Sort(terms)
	return terms
}
