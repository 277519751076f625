package swissprot

import (
	"errors"
	"io"

	"github.com/samber/lo"
)

// DefaultEvidence lists the evidence codes treated as experimental.
var DefaultEvidence = []string{"EXP", "IDA", "IPI", "IMP", "IGI", "IEP", "TAS", "IC"}

// Counts holds experimentally supported GO cross-references per aspect.
type Counts struct {
	BPO int
	CCO int
	MFO int
}

// Total returns the sum over the three aspects.
func (c Counts) Total() int {
	return c.BPO + c.CCO + c.MFO
}

// CountExperimental counts the GO cross-references of taxon's records whose
// evidence code is in evidence, split by aspect. A nil evidence list means
// DefaultEvidence.
func CountExperimental(r io.Reader, taxon string, evidence []string) (Counts, error) {
	c, _, err := tally(r, taxon, evidence)
	return c, err
}

// CountProteins counts the records of taxon with at least one
// experimentally supported GO cross-reference. Each protein counts once
// however many such cross-references it carries; use CountExperimental
// and Counts.Total for the per-annotation figure.
func CountProteins(r io.Reader, taxon string, evidence []string) (int, error) {
	_, n, err := tally(r, taxon, evidence)
	return n, err
}

func tally(r io.Reader, taxon string, evidence []string) (Counts, int, error) {
	if evidence == nil {
		evidence = DefaultEvidence
	}
	exp := lo.SliceToMap(evidence, func(code string) (string, struct{}) {
		return code, struct{}{}
	})

	var (
		c        Counts
		proteins int
	)
	rd := NewReader(r)
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return c, proteins, nil
		}
		if err != nil {
			return Counts{}, 0, err
		}
		if !rec.HasTaxon(taxon) {
			continue
		}

		supported := false
		for _, x := range rec.GO {
			if _, ok := exp[x.Evidence]; !ok {
				continue
			}
			supported = true
			switch x.Aspect {
			case 'P':
				c.BPO++
			case 'C':
				c.CCO++
			case 'F':
				c.MFO++
			}
		}
		if supported {
			proteins++
		}
	}
}
