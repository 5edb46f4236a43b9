// Package toytest drives the Flye toy-dataset smoke test.
//
// The smoke test builds exactly one assembler invocation against a small
// bundled read set, runs it as a child process and reports failure if the
// child exits non-zero. Nothing about the assembly itself is inspected: if
// the assembler did not crash, the test passes.
//
// # Invocation Shape
//
//	<entry-point...> --pacbio-corr <reads> -g 500k -o flye_toy_test -t <cpus> -m 1000
//
// where <cpus> is WorkerCount(cores) = max(1, cores/2).
//
// # Core Count Injection
//
// Config.Cores is an explicit input. Only the outermost entry points
// (DefaultConfig, the CLI) query runtime.NumCPU, so tests can pin any value,
// including 0 or negative counts, which clamp to one worker.
//
// # Failure Kinds
//
//   - *ProcessExecutionError: the child exited non-zero or never started
//   - *TimeoutError: the child outlived Config.Timeout and was killed
//
// # Artifacts
//
// The output directory is left on disk by default so failed and successful
// runs can be inspected. Set Config.KeepArtifacts to false to remove it after
// a successful run; failed runs always keep it.
//
// # Usage
//
//	cfg := toytest.DefaultConfig()
//	if err := toytest.RunToyTest(ctx, cfg, os.Stdout, os.Stderr); err != nil {
//	    log.Fatal(err)
//	}
package toytest
