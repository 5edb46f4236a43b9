package toytest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureConfig(cores int) Config {
	cfg := DefaultConfig()
	cfg.Reads = "/fixtures/" + DefaultReadsFile
	cfg.Cores = cores
	return cfg
}

func TestWorkerCount(t *testing.T) {
	tests := []struct {
		cores int
		want  int
	}{
		{cores: 8, want: 4},
		{cores: 7, want: 3},
		{cores: 3, want: 1},
		{cores: 2, want: 1},
		{cores: 1, want: 1},
		{cores: 0, want: 1},
		{cores: -4, want: 1},
		{cores: 64, want: 32},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WorkerCount(tt.cores), "cores=%d", tt.cores)
	}
}

func TestBuildInvocationOrder(t *testing.T) {
	inv, err := BuildInvocation(fixtureConfig(8))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"python", "bin/flye",
		"--pacbio-corr", "/fixtures/ecoli_500kb_reads_hifi.fastq.gz",
		"-g", "500k",
		"-o", "flye_toy_test",
		"-t", "4",
		"-m", "1000",
	}, inv.Args)
	assert.Equal(t, 4, inv.Workers)
}

func TestBuildInvocationGolden(t *testing.T) {
	inv, err := BuildInvocation(fixtureConfig(8))
	require.NoError(t, err)
	AssertGolden(t, "toy_default", inv)

	inv, err = BuildInvocation(fixtureConfig(1))
	require.NoError(t, err)
	AssertGolden(t, "toy_single_core", inv)
}

func TestBuildInvocationRelativeReadsBecomeAbsolute(t *testing.T) {
	cfg := fixtureConfig(4)
	cfg.Reads = filepath.Join("data", DefaultReadsFile)

	inv, err := BuildInvocation(cfg)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "data", DefaultReadsFile), inv.Args[3])
}

func TestBuildInvocationMissingReadsIsNotChecked(t *testing.T) {
	cfg := fixtureConfig(4)
	cfg.Reads = filepath.Join(t.TempDir(), "missing.fastq.gz")

	inv, err := BuildInvocation(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Reads, inv.Args[3])
}

func TestBuildInvocationEmptyEntryPoint(t *testing.T) {
	cfg := fixtureConfig(4)
	cfg.EntryPoint = nil

	_, err := BuildInvocation(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry point is required")
}

func TestInvocationString(t *testing.T) {
	inv, err := BuildInvocation(fixtureConfig(2))
	require.NoError(t, err)
	assert.Equal(t,
		"python bin/flye --pacbio-corr /fixtures/ecoli_500kb_reads_hifi.fastq.gz -g 500k -o flye_toy_test -t 1 -m 1000",
		inv.String())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"python", "bin/flye"}, cfg.EntryPoint)
	assert.Equal(t, "pacbio-corr", cfg.ReadMode)
	assert.Equal(t, "500k", cfg.GenomeSize)
	assert.Equal(t, "flye_toy_test", cfg.OutDir)
	assert.Equal(t, 1000, cfg.MinOverlap)
	assert.True(t, cfg.KeepArtifacts)
	assert.Zero(t, cfg.Timeout)
	assert.GreaterOrEqual(t, cfg.Cores, 1)
	assert.True(t, filepath.IsAbs(cfg.Reads))
	assert.Equal(t, filepath.Join(sampleDataDir(SourceDir()), DefaultReadsFile), cfg.Reads)
}

func TestDefaultConfigEntryPointIsCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EntryPoint[0] = "python3"
	assert.Equal(t, "python", DefaultEntryPoint[0])
}

func TestSourceDir(t *testing.T) {
	_, err := os.Stat(filepath.Join(SourceDir(), "invocation.go"))
	assert.NoError(t, err, "SourceDir should point at the toytest sources")
}

func TestSampleDataDir(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "internal", "toytest")
	assert.Equal(t, filepath.Join(abs, "data"), sampleDataDir(abs))

	// Module-relative source paths, as recorded by -trimpath builds.
	assert.Equal(t, filepath.Join("flye", "tests", "data"),
		sampleDataDir("github.com/roach88/flyetoy/internal/toytest"))
}
