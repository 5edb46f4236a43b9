package toytest

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Toy dataset defaults.
const (
	DefaultReadMode   = "pacbio-corr"
	DefaultReadsFile  = "ecoli_500kb_reads_hifi.fastq.gz"
	DefaultGenomeSize = "500k"
	DefaultOutDir     = "flye_toy_test"
	DefaultMinOverlap = 1000
)

// DefaultEntryPoint launches the in-tree assembler script.
var DefaultEntryPoint = []string{"python", "bin/flye"}

// Config holds every input of a single toy-test run.
type Config struct {
	// EntryPoint is the executable followed by any leading tokens
	// (e.g. an interpreter and a script path). Must be non-empty.
	EntryPoint []string

	// ReadMode selects the assembler's read type flag, without the
	// leading dashes (e.g. "pacbio-corr").
	ReadMode string

	// Reads is the sample input path. Relative paths are made absolute
	// against the current directory; existence is not checked.
	Reads string

	GenomeSize string
	OutDir     string
	MinOverlap int

	// Cores is the host core count the worker count is derived from.
	Cores int

	// Timeout bounds the child's wall-clock time. Zero waits forever.
	Timeout time.Duration

	// KeepArtifacts leaves OutDir on disk after a successful run.
	KeepArtifacts bool

	// WorkDir is the child's working directory. Empty means the current one.
	WorkDir string
}

// DefaultConfig returns the toy-test configuration, sized for this host.
func DefaultConfig() Config {
	return Config{
		EntryPoint:    append([]string(nil), DefaultEntryPoint...),
		ReadMode:      DefaultReadMode,
		Reads:         filepath.Join(sampleDataDir(SourceDir()), DefaultReadsFile),
		GenomeSize:    DefaultGenomeSize,
		OutDir:        DefaultOutDir,
		MinOverlap:    DefaultMinOverlap,
		Cores:         runtime.NumCPU(),
		KeepArtifacts: true,
	}
}

// SourceDir returns the directory holding this package's source files.
// The bundled sample data lives beneath it, so the toy test does not
// depend on the caller's working directory.
func SourceDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Dir(file)
}

// sampleDataDir locates the bundled sample data. Binaries built with
// -trimpath carry a module-relative source path, so the data is looked up
// in the assembler checkout layout relative to the current directory.
func sampleDataDir(srcDir string) string {
	if filepath.IsAbs(srcDir) {
		return filepath.Join(srcDir, "data")
	}
	return filepath.Join("flye", "tests", "data")
}

// WorkerCount derives the assembler thread count from a core count.
// Half the cores, never fewer than one.
func WorkerCount(cores int) int {
	return max(1, cores/2)
}

// Invocation is the ordered argument list handed to the process spawner.
type Invocation struct {
	Args    []string
	Workers int
}

// BuildInvocation assembles the command line for cfg.
//
// The reads path is resolved to an absolute path but not checked for
// existence; a missing file is the assembler's failure to report.
func BuildInvocation(cfg Config) (Invocation, error) {
	if len(cfg.EntryPoint) == 0 || cfg.EntryPoint[0] == "" {
		return Invocation{}, fmt.Errorf("entry point is required")
	}

	reads, err := filepath.Abs(cfg.Reads)
	if err != nil {
		return Invocation{}, fmt.Errorf("failed to resolve reads path: %w", err)
	}

	workers := WorkerCount(cfg.Cores)

	args := make([]string, 0, len(cfg.EntryPoint)+10)
	args = append(args, cfg.EntryPoint...)
	args = append(args,
		"--"+cfg.ReadMode, reads,
		"-g", cfg.GenomeSize,
		"-o", cfg.OutDir,
		"-t", strconv.Itoa(workers),
		"-m", strconv.Itoa(cfg.MinOverlap),
	)

	return Invocation{Args: args, Workers: workers}, nil
}

// String renders the command line as echoed before execution.
func (inv Invocation) String() string {
	return strings.Join(inv.Args, " ")
}
