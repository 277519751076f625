// Package input reads the whitespace-separated flat files that carry
// benchmark annotations and scored predictions.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLineLen bounds a single input line. GO annotation files are narrow,
// so anything longer is almost certainly not a column file.
const maxLineLen = 1 << 20

// ErrMalformed indicates a line that does not follow the expected column layout.
var ErrMalformed = errors.New("fmax: malformed input")

// Error describes a malformed line. It matches ErrMalformed with errors.Is.
type Error struct {
	File   string
	Line   int
	Reason string
	Err    error // underlying parse error, if any
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s:%d: %s", ErrMalformed, e.File, e.Line, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrMalformed.
func (e *Error) Is(target error) bool {
	return target == ErrMalformed
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Scanner iterates the non-blank lines of a column file and splits them into fields.
type Scanner struct {
	sc     *bufio.Scanner
	name   string
	line   int
	fields []string
}

// NewScanner returns a Scanner over r. name is used in error messages.
func NewScanner(r io.Reader, name string) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineLen)
	return &Scanner{sc: sc, name: name}
}

// Scan advances to the next non-blank line.
func (s *Scanner) Scan() bool {
	for s.sc.Scan() {
		s.line++
		text := strings.TrimSpace(s.sc.Text())
		if text == "" {
			continue
		}
		s.fields = strings.Fields(text)
		return true
	}
	s.fields = nil
	return false
}

// Fields returns the fields of the current line.
func (s *Scanner) Fields() []string {
	return s.fields
}

// Line returns the 1-based number of the current line.
func (s *Scanner) Line() int {
	return s.line
}

// Name returns the source name given to NewScanner.
func (s *Scanner) Name() string {
	return s.name
}

// Malformed builds an *Error for the current line.
func (s *Scanner) Malformed(err error, format string, a ...any) error {
	return &Error{
		File:   s.name,
		Line:   s.line,
		Reason: fmt.Sprintf(format, a...),
		Err:    err,
	}
}

// Err returns the first read error, if any.
func (s *Scanner) Err() error {
	if err := s.sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return &Error{File: s.name, Line: s.line + 1, Reason: "line too long", Err: err}
		}
		return fmt.Errorf("reading %s: %w", s.name, err)
	}
	return nil
}
