// Package ontology models the three Gene Ontology namespaces and the
// filtering of GO terms into one of them.
package ontology

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownNamespace indicates an ontology selector outside BPO, MFO and CCO.
var ErrUnknownNamespace = errors.New("fmax: unknown ontology namespace")

// Namespace is one of the three disjoint top-level GO categories.
type Namespace int

const (
	// BPO is Biological Process.
	BPO Namespace = iota + 1
	// MFO is Molecular Function.
	MFO
	// CCO is Cellular Component.
	CCO
)

// All lists the namespaces in their conventional order.
var All = []Namespace{BPO, MFO, CCO}

var aliases = map[string]Namespace{
	"bpo":                BPO,
	"bp":                 BPO,
	"p":                  BPO,
	"biological_process": BPO,
	"mfo":                MFO,
	"mf":                 MFO,
	"f":                  MFO,
	"molecular_function": MFO,
	"cco":                CCO,
	"cc":                 CCO,
	"c":                  CCO,
	"cellular_component": CCO,
}

// Parse resolves an ontology selector. Matching is case-insensitive and
// accepts the tags BPO/MFO/CCO, the short forms BP/MF/CC, the OBO namespace
// names and the GO aspect letters P/F/C.
func Parse(tag string) (Namespace, error) {
	ns, ok := aliases[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNamespace, tag)
	}
	return ns, nil
}

func (n Namespace) String() string {
	switch n {
	case BPO:
		return "BPO"
	case MFO:
		return "MFO"
	case CCO:
		return "CCO"
	}
	return fmt.Sprintf("Namespace(%d)", int(n))
}

// OBOName returns the namespace as spelled in OBO files.
func (n Namespace) OBOName() string {
	switch n {
	case BPO:
		return "biological_process"
	case MFO:
		return "molecular_function"
	case CCO:
		return "cellular_component"
	}
	return ""
}

// Aspect returns the single-letter GO aspect (P, F or C).
func (n Namespace) Aspect() byte {
	switch n {
	case BPO:
		return 'P'
	case MFO:
		return 'F'
	case CCO:
		return 'C'
	}
	return 0
}

// Valid reports whether n is one of BPO, MFO or CCO.
func (n Namespace) Valid() bool {
	return n == BPO || n == MFO || n == CCO
}
