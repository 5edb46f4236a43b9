// Package scenario loads toy-test scenario files.
//
// A scenario is a YAML document naming the parameters of one assembler
// smoke-test invocation:
//
//	name: toy
//	description: "E. coli 500kb corrected PacBio reads"
//	entry_point: [python, bin/flye]
//	read_mode: pacbio-corr
//	reads: data/ecoli_500kb_reads_hifi.fastq.gz
//	genome_size: 500k
//	out_dir: flye_toy_test
//	min_overlap: 1000
//	timeout: 2h
//	keep_artifacts: true
//
// Only name is required; every omitted field keeps the built-in toy value.
// Files are checked against an embedded CUE schema before decoding, so typos
// and out-of-range values fail with a position instead of running the
// assembler with a wrong command line.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/flyetoy/internal/toytest"
)

// Scenario describes one toy-test invocation.
type Scenario struct {
	// Name identifies the scenario in logs.
	Name string `yaml:"name"`

	Description string `yaml:"description,omitempty"`

	// EntryPoint is the executable followed by any leading tokens.
	EntryPoint []string `yaml:"entry_point,omitempty"`

	// ReadMode is the assembler read-type flag without dashes.
	ReadMode string `yaml:"read_mode,omitempty"`

	// Reads is the sample input. Relative paths are resolved against the
	// scenario file's directory by Load.
	Reads string `yaml:"reads,omitempty"`

	GenomeSize string `yaml:"genome_size,omitempty"`
	OutDir     string `yaml:"out_dir,omitempty"`
	MinOverlap int    `yaml:"min_overlap,omitempty"`

	// Timeout uses Go duration syntax. Empty means no timeout.
	Timeout string `yaml:"timeout,omitempty"`

	KeepArtifacts bool `yaml:"keep_artifacts"`
}

// Default returns the built-in toy scenario.
func Default() *Scenario {
	cfg := toytest.DefaultConfig()
	return &Scenario{
		Name:          "toy",
		Description:   "E. coli 500kb reads; passes if the assembler does not crash",
		EntryPoint:    cfg.EntryPoint,
		ReadMode:      cfg.ReadMode,
		Reads:         cfg.Reads,
		GenomeSize:    cfg.GenomeSize,
		OutDir:        cfg.OutDir,
		MinOverlap:    cfg.MinOverlap,
		KeepArtifacts: cfg.KeepArtifacts,
	}
}

// Load reads a scenario file, validates it against the schema and layers it
// over the defaults. Returns an error if the file doesn't exist, is
// malformed, contains unknown fields, or violates the schema.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	if err := validate(path, data); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	s := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if !filepath.IsAbs(s.Reads) {
		s.Reads = filepath.Join(filepath.Dir(path), s.Reads)
	}

	return s, nil
}

// Config converts the scenario into a runner configuration for a host with
// the given number of cores.
func (s *Scenario) Config(cores int) (toytest.Config, error) {
	var timeout time.Duration
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return toytest.Config{}, fmt.Errorf("scenario %s: invalid timeout: %w", s.Name, err)
		}
		timeout = d
	}

	return toytest.Config{
		EntryPoint:    append([]string(nil), s.EntryPoint...),
		ReadMode:      s.ReadMode,
		Reads:         s.Reads,
		GenomeSize:    s.GenomeSize,
		OutDir:        s.OutDir,
		MinOverlap:    s.MinOverlap,
		Cores:         cores,
		Timeout:       timeout,
		KeepArtifacts: s.KeepArtifacts,
	}, nil
}
