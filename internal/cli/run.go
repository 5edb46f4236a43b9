package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/flyetoy/internal/toytest"
)

// flyeRootEnv names the assembler checkout used as the default --workdir.
const flyeRootEnv = "FLYE_ROOT"

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ScenarioOptions
	Timeout time.Duration
	Clean   bool
	WorkDir string

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs toytest.RunIDGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the assembler toy test",
		Long: `Run the assembler once on the toy dataset and fail if it exits non-zero.

The exact command line is printed before execution so failures can be
reproduced by hand. The output directory is left on disk unless --clean
is given; failed runs always keep it.

The assembler runs in --workdir, which defaults to $FLYE_ROOT when set.
The default reads path is the sample data next to the toytest sources
this binary was built from. Binaries built with -trimpath fall back to
flye/tests/data under the current directory. On another machine neither
location may exist; use a --scenario with an explicit reads path there.

Exit codes:
  0 - Assembler exited cleanly
  1 - Assembler failed, timed out or was interrupted
  2 - Command error (invalid flags or scenario file)

Examples:
  flyetoy run
  flyetoy run --workdir ~/src/Flye --timeout 2h
  flyetoy run --scenario ./scenarios/toy.yaml --cores 16 --clean`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToyTest(opts, cmd)
		},
	}

	addScenarioFlags(cmd, &opts.ScenarioOptions)
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "kill the assembler after this long (overrides the scenario; 0 waits forever)")
	cmd.Flags().BoolVar(&opts.Clean, "clean", false, "remove the output directory after a successful run")
	cmd.Flags().StringVar(&opts.WorkDir, "workdir", os.Getenv(flyeRootEnv), "working directory for the assembler (default: $"+flyeRootEnv+" or the current directory)")

	return cmd
}

func runToyTest(opts *RunOptions, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	s, cfg, err := loadConfig(&opts.ScenarioOptions)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = opts.Timeout
	}
	if opts.Clean {
		cfg.KeepArtifacts = false
	}
	cfg.WorkDir = opts.WorkDir

	logger.Debug("scenario loaded", "name", s.Name, "source", scenarioSource(opts.Scenario))

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Warn("received signal, killing assembler", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	runOpts := []toytest.Option{toytest.WithLogger(logger)}
	if opts.RunIDs != nil {
		runOpts = append(runOpts, toytest.WithRunIDGenerator(opts.RunIDs))
	}

	err = toytest.RunToyTest(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), runOpts...)
	if err == nil {
		return nil
	}

	var procErr *toytest.ProcessExecutionError
	var timeoutErr *toytest.TimeoutError
	if errors.As(err, &procErr) || errors.As(err, &timeoutErr) {
		return WrapExitError(ExitFailure, "toy test failed", err)
	}
	return WrapExitError(ExitCommandError, "toy test could not start", err)
}

func scenarioSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
