package fmax

import (
	"github.com/jamesainslie/go-fmax/internal/input"
	"github.com/jamesainslie/go-fmax/ontology"
	"github.com/jamesainslie/go-fmax/precrec"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrMalformedInput indicates a prediction or benchmark line with the
	// wrong column count or an unparsable score. The error chain holds a
	// *MalformedInputError naming the file and line.
	ErrMalformedInput = input.ErrMalformed

	// ErrUnknownNamespace indicates an ontology selector other than BPO, MFO or CCO.
	ErrUnknownNamespace = ontology.ErrUnknownNamespace

	// ErrEmptyBenchmark indicates that no benchmarked protein survived
	// namespace filtering, so recall is undefined.
	ErrEmptyBenchmark = precrec.ErrEmptyBenchmark

	// ErrInvalidThresholds indicates an unusable threshold count.
	ErrInvalidThresholds = precrec.ErrInvalidThresholds
)

// MalformedInputError locates a malformed input line. Retrieve it with errors.As.
type MalformedInputError = input.Error
