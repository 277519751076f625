package fmax

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-fmax/ontology"
	"github.com/jamesainslie/go-fmax/precrec"
)

const (
	testPredictionsPath = "testdata/bpo.predictions.txt"
	testBenchmarkPath   = "testdata/bpo.benchmark.txt"
	testOBOPath         = "testdata/go-sample.obo"
)

func source(name, body string) Source {
	return Source{Name: name, Reader: strings.NewReader(body)}
}

// untouchable fails the test if the assessor reads from it.
type untouchable struct{ t *testing.T }

func (u untouchable) Read([]byte) (int, error) {
	u.t.Error("input read after a fail-fast error")
	return 0, io.EOF
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultConfigUsesSweepDefaults(t *testing.T) {
	assert.Equal(t, precrec.DefaultConfig(), defaultConfig().sweep)

	a := New(WithWorkers(0))
	assert.Equal(t, precrec.DefaultConfig().Workers, a.cfg.sweep.Workers, "non-positive workers keep the default")
}

func TestAssessWorkedExample(t *testing.T) {
	a := New(WithThresholds(3), WithZeroThreshold(), WithWorkers(1), WithLogger(quietLogger()))

	res, err := a.Assess(context.Background(), "BPO",
		source("pred", "P1 GO:1 0.9\nP1 GO:3 0.4\n"),
		source("bench", "P1 GO:1\nP1 GO:2\n"),
	)
	require.NoError(t, err)

	assert.Equal(t, ontology.BPO, res.Namespace)
	assert.Equal(t, []float64{1, 0.5, 0}, res.Thresholds())
	assert.InDelta(t, 1.0, res.Precision()[1], 1e-12)
	assert.InDelta(t, 0.5, res.Recall()[1], 1e-12)
	assert.InDelta(t, 0.667, res.Fmax(), 1e-3)
	assert.Equal(t, 1, res.Best.Index)
}

func TestAssessFiles(t *testing.T) {
	a := New(WithLogger(quietLogger()))

	res, err := a.AssessFiles(context.Background(), "bpo", testPredictionsPath, testBenchmarkPath)
	require.NoError(t, err)

	assert.Len(t, res.Curve.Points, precrec.DefaultThresholds)
	assert.Equal(t, 3, res.BenchmarkProteins)
	assert.Equal(t, 3, res.PredictedProteins)
	assert.Equal(t, 2, res.CoveredProteins)
	assert.Equal(t, 5, res.Curve.TotalTrue)

	assert.InDelta(t, 2.0/3.0, res.Fmax(), 1e-9)
	assert.Equal(t, 53, res.Best.Index)
	assert.InDelta(t, 46.0/99.0, res.Best.Threshold, 1e-12)
	assert.InDelta(t, 0.75, res.Best.Precision, 1e-12)
	assert.InDelta(t, 0.6, res.Best.Recall, 1e-12)
}

func TestAssessRepeatable(t *testing.T) {
	first, err := New(WithLogger(quietLogger()), WithWorkers(1)).
		AssessFiles(context.Background(), "BPO", testPredictionsPath, testBenchmarkPath)
	require.NoError(t, err)

	second, err := New(WithLogger(quietLogger()), WithWorkers(8)).
		AssessFiles(context.Background(), "BPO", testPredictionsPath, testBenchmarkPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssessUnknownNamespaceFailsFast(t *testing.T) {
	a := New(WithLogger(quietLogger()))

	_, err := a.Assess(context.Background(), "XYZ",
		Source{Name: "pred", Reader: untouchable{t}},
		Source{Name: "bench", Reader: untouchable{t}},
	)
	assert.ErrorIs(t, err, ErrUnknownNamespace)

	_, err = a.AssessFiles(context.Background(), "XYZ", "does/not/exist", "does/not/exist")
	assert.ErrorIs(t, err, ErrUnknownNamespace)
}

func TestAssessInvalidThresholds(t *testing.T) {
	a := New(WithThresholds(0), WithLogger(quietLogger()))

	_, err := a.Assess(context.Background(), "MFO",
		Source{Name: "pred", Reader: untouchable{t}},
		Source{Name: "bench", Reader: untouchable{t}},
	)
	assert.ErrorIs(t, err, ErrInvalidThresholds)
}

func TestAssessMalformedInput(t *testing.T) {
	tests := []struct {
		name     string
		pred     string
		bench    string
		wantFile string
		wantLine int
	}{
		{
			name:     "benchmark column count",
			pred:     "P1 GO:1 0.5\n",
			bench:    "P1 GO:1\nP2 GO:2 extra\n",
			wantFile: "bench.txt",
			wantLine: 2,
		},
		{
			name:     "prediction score",
			pred:     "P1 GO:1 0.5\nP1 GO:2 0,7\n",
			bench:    "P1 GO:1\n",
			wantFile: "pred.txt",
			wantLine: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(WithLogger(quietLogger()))
			res, err := a.Assess(context.Background(), "CCO",
				source("pred.txt", tt.pred), source("bench.txt", tt.bench))
			assert.Nil(t, res, "no partial result")
			require.ErrorIs(t, err, ErrMalformedInput)

			var mErr *MalformedInputError
			require.True(t, errors.As(err, &mErr))
			assert.Equal(t, tt.wantFile, mErr.File)
			assert.Equal(t, tt.wantLine, mErr.Line)
		})
	}
}

func TestAssessEmptyBenchmark(t *testing.T) {
	cls, err := ontology.LoadOBO(testOBOPath)
	require.NoError(t, err)

	a := New(WithClassifier(cls), WithLogger(quietLogger()))
	_, err = a.Assess(context.Background(), "CCO",
		source("pred", "T1 GO:0005737 0.5\n"),
		source("bench", "T1 GO:0006915\nT2 GO:0005515\n"),
	)
	assert.ErrorIs(t, err, ErrEmptyBenchmark)
}

func TestAssessNamespaceFiltering(t *testing.T) {
	cls, err := ontology.LoadOBO(testOBOPath)
	require.NoError(t, err)

	bench := "T1 GO:0006915\nT1 GO:0005737\nT2 GO:0005515\n"
	pred := "T1 GO:0006915 0.8\nT1 GO:0005737 0.9\nT2 GO:0005515 0.9\n"

	a := New(WithClassifier(cls), WithThresholds(10), WithLogger(quietLogger()))
	res, err := a.Assess(context.Background(), "BPO", source("pred", pred), source("bench", bench))
	require.NoError(t, err)

	// Only the BPO term survives on either side.
	assert.Equal(t, 1, res.BenchmarkProteins)
	assert.Equal(t, 1, res.PredictedProteins)
	assert.Equal(t, 1, res.Curve.TotalTrue)
	assert.Equal(t, 1.0, res.Fmax())
	assert.InDelta(t, 0.8, res.Best.Threshold, 1e-12)
}

func TestAssessCAFAHeaders(t *testing.T) {
	pred := "AUTHOR team\nMODEL 1\nKEYWORDS homology.\nP1 GO:1 0.9\nEND\n"

	_, err := New(WithLogger(quietLogger())).Assess(context.Background(), "MFO",
		source("pred", pred), source("bench", "P1 GO:1\n"))
	require.ErrorIs(t, err, ErrMalformedInput)

	res, err := New(WithCAFAHeaders(), WithLogger(quietLogger())).Assess(context.Background(), "MFO",
		source("pred", pred), source("bench", "P1 GO:1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Fmax())
}

func TestAssessMacroAveraging(t *testing.T) {
	a := New(WithAveraging(precrec.Macro), WithLogger(quietLogger()))
	res, err := a.AssessFiles(context.Background(), "BPO", testPredictionsPath, testBenchmarkPath)
	require.NoError(t, err)
	assert.Equal(t, precrec.Macro, res.Curve.Averaging)
	assert.Greater(t, res.Fmax(), 0.0)
}

func TestAssessLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(WithLogger(logger)).AssessFiles(context.Background(), "BPO", testPredictionsPath, testBenchmarkPath)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "benchmark loaded")
	assert.Contains(t, out, "assessment complete")
	assert.Contains(t, out, "namespace=BPO")
}

func TestAssessFilesMissing(t *testing.T) {
	dir := t.TempDir()
	bench := filepath.Join(dir, "bench.txt")
	require.NoError(t, os.WriteFile(bench, []byte("P1 GO:1\n"), 0o644))

	_, err := New(WithLogger(quietLogger())).AssessFiles(context.Background(), "BPO", filepath.Join(dir, "nope"), bench)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = New(WithLogger(quietLogger())).AssessFiles(context.Background(), "BPO", bench, filepath.Join(dir, "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
