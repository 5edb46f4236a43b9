package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeAssemblerRecordsArgs(t *testing.T) {
	fake := NewFakeAssembler(t, FakeOptions{})
	workDir := t.TempDir()

	cmd := exec.Command(fake.Path, "--pacbio-corr", "reads.fq", "-o", "out")
	cmd.Dir = workDir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "fake assembler output: %s", out)

	runs := fake.Runs(t)
	require.Len(t, runs, 1)
	assert.Equal(t, []string{"--pacbio-corr", "reads.fq", "-o", "out"}, runs[0])

	_, err = os.Stat(filepath.Join(workDir, "out", "assembly.fasta"))
	assert.NoError(t, err, "fake assembler should populate the -o directory")
}

func TestFakeAssemblerExitCode(t *testing.T) {
	fake := NewFakeAssembler(t, FakeOptions{ExitCode: 3})

	err := exec.Command(fake.Path).Run()
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestFakeAssemblerNoRuns(t *testing.T) {
	fake := NewFakeAssembler(t, FakeOptions{})
	assert.Empty(t, fake.Runs(t))
}

func TestFakeAssemblerRequireReads(t *testing.T) {
	fake := NewFakeAssembler(t, FakeOptions{RequireReads: true})
	dir := t.TempDir()
	reads := filepath.Join(dir, "reads.fq")

	err := exec.Command(fake.Path, "--pacbio-corr", reads, "-o", filepath.Join(dir, "out")).Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())

	require.NoError(t, os.WriteFile(reads, []byte("@r1\nACGT\n+\nIIII\n"), 0o644))
	require.NoError(t, exec.Command(fake.Path, "--pacbio-corr", reads, "-o", filepath.Join(dir, "out")).Run())
}
