package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/roach88/flyetoy/internal/scenario"
	"github.com/roach88/flyetoy/internal/toytest"
)

// ScenarioOptions holds the flags shared by commands that build an
// invocation.
type ScenarioOptions struct {
	Scenario string // optional scenario file; empty uses the built-in toy scenario
	Cores    int
}

func addScenarioFlags(cmd *cobra.Command, opts *ScenarioOptions) {
	cmd.Flags().StringVarP(&opts.Scenario, "scenario", "s", "", "scenario YAML file (default: built-in toy scenario)")
	cmd.Flags().IntVar(&opts.Cores, "cores", runtime.NumCPU(), "host core count; the assembler gets max(1, cores/2) threads")
}

// loadConfig resolves the scenario and turns it into a runner config.
// Errors are command errors: nothing has been run yet.
func loadConfig(opts *ScenarioOptions) (*scenario.Scenario, toytest.Config, error) {
	s := scenario.Default()
	if opts.Scenario != "" {
		loaded, err := scenario.Load(opts.Scenario)
		if err != nil {
			return nil, toytest.Config{}, WrapExitError(ExitCommandError, "failed to load scenario", err)
		}
		s = loaded
	}

	cfg, err := s.Config(opts.Cores)
	if err != nil {
		return nil, toytest.Config{}, WrapExitError(ExitCommandError, "invalid scenario", err)
	}
	return s, cfg, nil
}
