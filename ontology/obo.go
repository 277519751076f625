package ontology

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jamesainslie/go-fmax/internal/input"
)

// Map is a Classifier backed by a plain term -> namespace map.
type Map map[string]Namespace

// Namespace implements Classifier.
func (m Map) Namespace(term string) (Namespace, bool) {
	ns, ok := m[term]
	return ns, ok
}

// OBO holds the term namespaces read from a Gene Ontology OBO file.
type OBO struct {
	terms    Map
	obsolete map[string]bool
}

// Namespace implements Classifier. Alternate IDs resolve to the namespace of
// their primary term.
func (o *OBO) Namespace(term string) (Namespace, bool) {
	return o.terms.Namespace(term)
}

// Len returns the number of identifiers known, alternate IDs included.
func (o *OBO) Len() int {
	return len(o.terms)
}

// Obsolete reports whether term is flagged is_obsolete.
func (o *OBO) Obsolete(term string) bool {
	return o.obsolete[term]
}

// LoadOBO reads an OBO file from path.
func LoadOBO(path string) (*OBO, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ontology: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadOBO(f, path)
}

// ReadOBO parses [Term] stanzas from r. Only id, alt_id, namespace and
// is_obsolete tags are consulted; other stanzas are skipped.
func ReadOBO(r io.Reader, name string) (*OBO, error) {
	o := &OBO{terms: make(Map), obsolete: make(map[string]bool)}

	var (
		inTerm   bool
		id       string
		alts     []string
		ns       Namespace
		obsolete bool
		stanzaLn int
	)

	flush := func() error {
		if !inTerm {
			return nil
		}
		if id == "" {
			return &input.Error{File: name, Line: stanzaLn, Reason: "term stanza without id"}
		}
		if ns == 0 {
			return &input.Error{File: name, Line: stanzaLn, Reason: fmt.Sprintf("term %s has no namespace", id)}
		}
		o.terms[id] = ns
		for _, a := range alts {
			o.terms[a] = ns
		}
		if obsolete {
			o.obsolete[id] = true
		}
		return nil
	}

	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '!' {
			continue
		}
		if line[0] == '[' {
			if err := flush(); err != nil {
				return nil, err
			}
			inTerm = line == "[Term]"
			id, alts, ns, obsolete, stanzaLn = "", nil, 0, false, ln
			continue
		}
		if !inTerm {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if i := strings.Index(value, " !"); i >= 0 {
			value = strings.TrimSpace(value[:i])
		}

		switch key {
		case "id":
			id = value
		case "alt_id":
			alts = append(alts, value)
		case "namespace":
			parsed, err := Parse(value)
			if err != nil {
				return nil, &input.Error{File: name, Line: ln, Reason: "bad namespace", Err: err}
			}
			ns = parsed
		case "is_obsolete":
			obsolete = value == "true"
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return o, nil
}
