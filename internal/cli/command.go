package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/flyetoy/internal/toytest"
)

// CommandOptions holds flags for the command command.
type CommandOptions struct {
	*RootOptions
	ScenarioOptions
}

// NewCommandCommand creates the command command, which prints the assembler
// command line without running it.
func NewCommandCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CommandOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "command",
		Short: "Print the assembler command line without running it",
		Long: `Print the exact command line that "flyetoy run" would execute.

Examples:
  flyetoy command
  flyetoy command --cores 1
  flyetoy command --scenario ./scenarios/toy.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCommand(opts, cmd)
		},
	}

	addScenarioFlags(cmd, &opts.ScenarioOptions)

	return cmd
}

func printCommand(opts *CommandOptions, cmd *cobra.Command) error {
	_, cfg, err := loadConfig(&opts.ScenarioOptions)
	if err != nil {
		return err
	}

	inv, err := toytest.BuildInvocation(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build invocation", err)
	}

	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "workers: %d (from %d cores)\n", inv.Workers, cfg.Cores)
	}
	fmt.Fprintln(cmd.OutOrStdout(), inv.String())
	return nil
}
