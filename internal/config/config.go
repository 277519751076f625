// Package config loads assessment runs from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/go-fmax/internal/plot"
	"github.com/jamesainslie/go-fmax/ontology"
	"github.com/jamesainslie/go-fmax/precrec"
)

// Config describes one assessment run.
type Config struct {
	Ontology    string `yaml:"ontology"`
	Predictions string `yaml:"predictions"`
	Benchmark   string `yaml:"benchmark"`
	Output      string `yaml:"output"`
	OBO         string `yaml:"obo"`
	Thresholds  int    `yaml:"thresholds"`
	IncludeZero bool   `yaml:"include_zero"`
	Workers     int    `yaml:"workers"`
	Averaging   string `yaml:"averaging"`
	CAFAHeaders bool   `yaml:"cafa_headers"`
}

// Default returns a run with the standard threshold grid and no inputs.
func Default() *Config {
	return &Config{
		Thresholds: precrec.DefaultThresholds,
		Averaging:  precrec.Micro.String(),
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}
	return c, nil
}

// Validate reports the first problem that would stop a run.
func (c *Config) Validate() error {
	if c.Ontology == "" {
		return errors.New("ontology is required")
	}
	if _, err := ontology.Parse(c.Ontology); err != nil {
		return err
	}
	if c.Predictions == "" {
		return errors.New("predictions file is required")
	}
	if c.Benchmark == "" {
		return errors.New("benchmark file is required")
	}
	if c.Output == "" {
		return errors.New("output image path is required")
	}
	if err := plot.CheckFormat(c.Output); err != nil {
		return err
	}
	if _, err := precrec.Thresholds(c.Thresholds, c.IncludeZero); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if _, err := precrec.ParseAveraging(c.Averaging); err != nil {
		return err
	}
	return nil
}

// AveragingMode returns the parsed averaging, Micro when unset or invalid.
func (c *Config) AveragingMode() precrec.Averaging {
	a, err := precrec.ParseAveraging(c.Averaging)
	if err != nil {
		return precrec.Micro
	}
	return a
}
