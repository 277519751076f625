// Package swissprot reads UniProtKB/Swiss-Prot flat files and counts
// experimentally supported Gene Ontology cross-references. It is used to
// size benchmarks for a species before an assessment is run.
package swissprot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ErrMalformed indicates a flat-file line that could not be parsed.
var ErrMalformed = errors.New("swissprot: malformed record")

// Record holds the fields of one entry that counting needs.
type Record struct {
	ID         string
	Accessions []string
	TaxonIDs   []string
	GO         []GOXref
}

// GOXref is one "DR   GO; ..." cross-reference.
type GOXref struct {
	Term     string // GO:0005737
	Aspect   byte   // 'P', 'F' or 'C'
	Name     string // cytoplasm
	Evidence string // IDA
	Source   string // SGD
}

// HasTaxon reports whether the record's organism carries taxon.
func (r *Record) HasTaxon(taxon string) bool {
	return slices.Contains(r.TaxonIDs, taxon)
}

// Reader yields records from a flat file.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	return &Reader{sc: sc}
}

// Next returns the next record, or io.EOF when the input is exhausted.
func (rd *Reader) Next() (*Record, error) {
	var (
		rec   *Record
		start int
	)
	for rd.sc.Scan() {
		rd.line++
		line := rd.sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if rec == nil {
			rec = &Record{}
			start = rd.line
		}

		tag, body := splitLine(line)
		switch tag {
		case "//":
			if rec.ID == "" {
				return nil, rd.malformed(start, "record without ID line")
			}
			return rec, nil
		case "ID":
			f := strings.Fields(body)
			if len(f) == 0 {
				return nil, rd.malformed(rd.line, "empty ID line")
			}
			rec.ID = f[0]
		case "AC":
			for _, ac := range strings.Split(body, ";") {
				if ac = strings.TrimSpace(ac); ac != "" {
					rec.Accessions = append(rec.Accessions, ac)
				}
			}
		case "OX":
			id, ok := parseTaxon(body)
			if !ok {
				return nil, rd.malformed(rd.line, "bad OX line")
			}
			rec.TaxonIDs = append(rec.TaxonIDs, id)
		case "DR":
			if !strings.HasPrefix(body, "GO;") {
				continue
			}
			x, err := parseGO(body)
			if err != nil {
				return nil, rd.malformed(rd.line, err.Error())
			}
			rec.GO = append(rec.GO, x)
		}
	}
	if err := rd.sc.Err(); err != nil {
		return nil, fmt.Errorf("swissprot: read: %w", err)
	}
	if rec != nil {
		return nil, rd.malformed(start, "record not terminated by //")
	}
	return nil, io.EOF
}

func (rd *Reader) malformed(line int, reason string) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, line, reason)
}

// splitLine separates the two-letter line code from its data, which
// starts in column 6.
func splitLine(line string) (tag, body string) {
	if len(line) < 2 {
		return line, ""
	}
	tag = line[:2]
	if len(line) > 5 {
		body = strings.TrimSpace(line[5:])
	}
	return tag, body
}

// parseTaxon extracts the ID from "NCBI_TaxID=559292;" and its variants
// carrying evidence tags.
func parseTaxon(body string) (string, bool) {
	_, rest, ok := strings.Cut(body, "NCBI_TaxID=")
	if !ok {
		return "", false
	}
	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(rest)
	}
	if end == 0 {
		return "", false
	}
	return rest[:end], true
}

// parseGO parses "GO; GO:0005737; C:cytoplasm; IDA:SGD."
func parseGO(body string) (GOXref, error) {
	parts := strings.Split(strings.TrimSuffix(body, "."), ";")
	if len(parts) < 4 {
		return GOXref{}, fmt.Errorf("GO cross-reference has %d fields, want 4", len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	aspect, name, ok := strings.Cut(parts[2], ":")
	if !ok || len(aspect) != 1 {
		return GOXref{}, fmt.Errorf("bad GO aspect %q", parts[2])
	}
	evidence, source, _ := strings.Cut(parts[3], ":")
	if evidence == "" {
		return GOXref{}, fmt.Errorf("missing evidence code in %q", body)
	}
	return GOXref{
		Term:     parts[1],
		Aspect:   strings.ToUpper(aspect)[0],
		Name:     name,
		Evidence: evidence,
		Source:   source,
	}, nil
}
