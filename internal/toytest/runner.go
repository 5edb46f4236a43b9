package toytest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// SuccessBanner is printed once after the assembler exits cleanly.
const SuccessBanner = "TEST SUCCESSFUL"

// waitDelay bounds how long Wait keeps copying output after the child is
// killed, in case a stray grandchild still holds the pipes open.
const waitDelay = 5 * time.Second

// Runner executes one toy-test invocation.
type Runner struct {
	cfg    Config
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	runIDs RunIDGenerator
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithRunIDGenerator overrides the UUIDv7 run ID source (for testing).
func WithRunIDGenerator(gen RunIDGenerator) Option {
	return func(r *Runner) {
		r.runIDs = gen
	}
}

// NewRunner creates a runner. The echoed command line, the child's output
// and the success banner go to stdout and stderr; nil writers discard.
func NewRunner(cfg Config, stdout, stderr io.Writer, opts ...Option) *Runner {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	r := &Runner{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		runIDs: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunToyTest runs the toy test once with cfg.
func RunToyTest(ctx context.Context, cfg Config, stdout, stderr io.Writer, opts ...Option) error {
	return NewRunner(cfg, stdout, stderr, opts...).Run(ctx)
}

// Run builds the invocation, executes it synchronously and returns nil only
// if the child exited with status zero.
//
// Execution flow:
// 1. Derive the worker count and absolute reads path
// 2. If artifacts are not kept, check OutDir sits below the working dir
// 3. Echo the exact command line
// 4. Spawn the child and block until it exits (or times out)
// 5. Remove the output directory if artifacts are not kept
// 6. Print the success banner
func (r *Runner) Run(ctx context.Context) error {
	inv, err := BuildInvocation(r.cfg)
	if err != nil {
		return fmt.Errorf("failed to build invocation: %w", err)
	}

	var outDir string
	if !r.cfg.KeepArtifacts {
		outDir, err = r.artifactDir()
		if err != nil {
			return err
		}
	}

	logger := r.logger.With("run_id", r.runIDs.Generate())

	fmt.Fprint(r.stdout, "Running toy test:\n\n")
	fmt.Fprintf(r.stdout, "Running command:\n%s\n\n", inv)

	logger.Info("starting assembler",
		"args", inv.Args,
		"workers", inv.Workers,
		"cores", r.cfg.Cores,
		"timeout", r.cfg.Timeout,
	)

	start := time.Now()
	if err := r.execute(ctx, inv); err != nil {
		logger.Error("assembler failed",
			"error", err,
			"duration", time.Since(start),
		)
		return err
	}
	logger.Info("assembler finished", "duration", time.Since(start))

	if !r.cfg.KeepArtifacts {
		if err := os.RemoveAll(outDir); err != nil {
			return fmt.Errorf("failed to remove output directory %s: %w", outDir, err)
		}
		logger.Debug("output directory removed", "path", outDir)
	}

	fmt.Fprintf(r.stdout, "\n%s\n", SuccessBanner)
	return nil
}

// execute spawns the child and translates its outcome into an error.
func (r *Runner) execute(ctx context.Context, inv Invocation) error {
	runCtx := ctx
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, inv.Args[0], inv.Args[1:]...)
	cmd.Dir = r.cfg.WorkDir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.WaitDelay = waitDelay
	isolateProcessGroup(cmd)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	// Deadline hit on our timer, not on the caller's context.
	if r.cfg.Timeout > 0 && ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Args: inv.Args, Timeout: r.cfg.Timeout}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("%w: %w", ctxErr, err)
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return &ProcessExecutionError{
		Args:     inv.Args,
		ExitCode: exitCode,
		Err:      err,
	}
}

// artifactDir resolves the output directory against the child's working
// directory. Only a path strictly below the working directory may be
// removed; anything else is refused.
func (r *Runner) artifactDir() (string, error) {
	base := r.cfg.WorkDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}

	target := r.cfg.OutDir
	if !filepath.IsAbs(target) {
		target = filepath.Join(base, target)
	}
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("refusing to clean %q under %s: %w", r.cfg.OutDir, base, ErrUnsafeOutDir)
	}
	return target, nil
}
