package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [automaton]",
	Short: "Check an automaton for consistency",
	Long:  `Reports undeclared states or symbols, redefined transitions, unreachable states and dead ends.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(cmd.Context(), target(args))
	},
}

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [automaton]",
	Short: "Export the automaton as a Mermaid diagram",
	Long:  `Outputs a Mermaid flowchart (graph LR). With --word, the run and the search path are highlighted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		word, _ := cmd.Flags().GetString("word")
		return cli.Graph(cmd.Context(), cli.GraphOptions{TargetOptions: target(args), Word: word})
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe [automaton]",
	Short: "Summarize an automaton",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Describe(cmd.Context(), target(args))
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available automata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.List(cmd.Context(), opts)
	},
}

func target(args []string) cli.TargetOptions {
	t := cli.TargetOptions{Options: opts}
	if len(args) > 0 {
		t.Automaton = args[0]
	}
	return t
}

func init() {
	rootCmd.AddCommand(validateCmd, graphCmd, describeCmd, listCmd)

	graphCmd.Flags().String("word", "", "Replay this word and highlight the run")
}
