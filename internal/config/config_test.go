package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-fmax/internal/plot"
	"github.com/jamesainslie/go-fmax/ontology"
	"github.com/jamesainslie/go-fmax/precrec"
)

func TestLoad(t *testing.T) {
	c, err := Load("testdata/run.yaml")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "BPO", c.Ontology)
	assert.Equal(t, "team1.bpo.txt", c.Predictions)
	assert.Equal(t, "bm.bpo.txt", c.Benchmark)
	assert.Equal(t, "team1.bpo.png", c.Output)
	assert.Equal(t, "go-basic.obo", c.OBO)
	assert.Equal(t, 50, c.Thresholds)
	assert.True(t, c.IncludeZero)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, precrec.Macro, c.AveragingMode())
	assert.True(t, c.CAFAHeaders)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/nope.yaml")
	assert.Error(t, err)
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte("ontology: mfo\npredictions: p\nbenchmark: b\noutput: o.png\n"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, precrec.DefaultThresholds, c.Thresholds)
	assert.False(t, c.IncludeZero)
	assert.Equal(t, precrec.Micro, c.AveragingMode())
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseUnknownKey(t *testing.T) {
	_, err := Parse([]byte("ontology: BPO\nthreshold: 10\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := Default()
		c.Ontology = "CCO"
		c.Predictions = "p.txt"
		c.Benchmark = "b.txt"
		c.Output = "out.png"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		msg     string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no ontology", mutate: func(c *Config) { c.Ontology = "" }, msg: "ontology is required"},
		{name: "bad ontology", mutate: func(c *Config) { c.Ontology = "XYZ" }, wantErr: ontology.ErrUnknownNamespace},
		{name: "no predictions", mutate: func(c *Config) { c.Predictions = "" }, msg: "predictions"},
		{name: "no benchmark", mutate: func(c *Config) { c.Benchmark = "" }, msg: "benchmark"},
		{name: "no output", mutate: func(c *Config) { c.Output = "" }, msg: "output"},
		{name: "bmp output", mutate: func(c *Config) { c.Output = "out.bmp" }, wantErr: plot.ErrUnsupportedFormat},
		{name: "output without extension", mutate: func(c *Config) { c.Output = "out" }, wantErr: plot.ErrUnsupportedFormat},
		{name: "upper-case extension", mutate: func(c *Config) { c.Output = "out.PDF" }},
		{name: "zero thresholds", mutate: func(c *Config) { c.Thresholds = 0 }, wantErr: precrec.ErrInvalidThresholds},
		{
			name:    "single threshold with zero",
			mutate:  func(c *Config) { c.Thresholds = 1; c.IncludeZero = true },
			wantErr: precrec.ErrInvalidThresholds,
		},
		{name: "negative workers", mutate: func(c *Config) { c.Workers = -1 }, msg: "workers"},
		{name: "bad averaging", mutate: func(c *Config) { c.Averaging = "weighted" }, msg: "averaging"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.msg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.msg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
