package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// FakeAssembler is a shell script standing in for the real assembler.
//
// Each run appends its arguments (one per line, followed by a "--" separator
// line) to ArgsFile, writes a line to stdout and one to stderr, creates the
// directory passed after -o with a placeholder assembly in it, optionally
// sleeps, and exits with the configured status. With RequireReads set it
// first exits 1 if the file following the read-mode flag does not exist.
type FakeAssembler struct {
	Path     string
	ArgsFile string
}

// FakeOptions configures a FakeAssembler.
type FakeOptions struct {
	ExitCode     int
	Sleep        time.Duration
	RequireReads bool
}

const fakeScript = `#!/bin/sh
for a in "$@"; do printf '%%s\n' "$a"; done >> %q
echo -- >> %q
echo "fake assembler: started"
echo "fake assembler: diagnostics" >&2
if [ -n "%s" ]; then
	reads=""
	prev=""
	for a in "$@"; do
		case "$prev" in --*) reads="$a" ;; esac
		prev="$a"
	done
	if [ ! -f "$reads" ]; then
		echo "fake assembler: reads not found: $reads" >&2
		exit 1
	fi
fi
out=""
prev=""
for a in "$@"; do
	if [ "$prev" = "-o" ]; then out="$a"; fi
	prev="$a"
done
if [ -n "$out" ]; then
	mkdir -p "$out" && echo ">contig_1" > "$out/assembly.fasta"
fi
%s
exit %d
`

// NewFakeAssembler writes a fake assembler into a fresh temp directory.
// Skips the test on platforms without /bin/sh.
func NewFakeAssembler(t *testing.T, opts FakeOptions) *FakeAssembler {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake assembler requires /bin/sh")
	}

	dir := t.TempDir()
	fake := &FakeAssembler{
		Path:     filepath.Join(dir, "fake-flye"),
		ArgsFile: filepath.Join(dir, "args.txt"),
	}

	sleep := ""
	if opts.Sleep > 0 {
		sleep = fmt.Sprintf("sleep %d", int(opts.Sleep.Round(time.Second)/time.Second))
	}

	requireReads := ""
	if opts.RequireReads {
		requireReads = "1"
	}

	script := fmt.Sprintf(fakeScript, fake.ArgsFile, fake.ArgsFile, requireReads, sleep, opts.ExitCode)
	if err := os.WriteFile(fake.Path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake assembler: %v", err)
	}
	return fake
}

// Runs returns the argument lists of every run so far, in order.
func (f *FakeAssembler) Runs(t *testing.T) [][]string {
	t.Helper()

	data, err := os.ReadFile(f.ArgsFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read fake assembler args: %v", err)
	}

	var runs [][]string
	var current []string
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if line == "--" {
			runs = append(runs, current)
			current = nil
			continue
		}
		current = append(current, line)
	}
	return runs
}
