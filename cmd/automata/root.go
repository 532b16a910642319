package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

// opts is resolved once per invocation by the root PersistentPreRunE.
var opts cli.Options

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata is a deterministic finite automaton simulator",
	Long: `Automata loads DFA descriptions, replays input words against them and searches
the shortest path from where a run stopped to the nearest final state.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: resolveOptions,
}

// Execute adds all child commands to the root command and returns the process exit code.
func Execute() int {
	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Description file or directory (overrides config 'source')")
	rootCmd.PersistentFlags().String("backend", "", "Loader backend: file, loam or redis (overrides config)")
	rootCmd.PersistentFlags().String("format", "", "Output format: text or json (overrides config)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().Bool("validate", false, "Reject automata that reference undeclared states or symbols")
}

func resolveOptions(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = config.DefaultFile
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return &cli.ExitError{Code: cli.ExitCommandError, Err: err}
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Source, _ = flags.GetString("dir")
	}
	if flags.Changed("backend") {
		cfg.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("validate") {
		cfg.Validate, _ = flags.GetBool("validate")
	}
	if err := cfg.Check(); err != nil {
		return &cli.ExitError{Code: cli.ExitCommandError, Err: err}
	}

	debug, _ := flags.GetBool("debug")
	opts = cli.Options{
		Config: cfg,
		Debug:  debug,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
	return nil
}

// optionalState reads an int flag as a state, returning nil when it was not given.
func optionalState(cmd *cobra.Command, name string) *domain.State {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	s := domain.State(v)
	return &s
}
