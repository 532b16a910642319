package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Find the shortest path to a final state",
	Long:  `Runs a breadth-first search from a state (the initial one by default) and prints the shortest path to any final state.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		automaton, _ := cmd.Flags().GetString("automaton")
		strict, _ := cmd.Flags().GetBool("strict")

		return cli.FindPath(cmd.Context(), cli.PathOptions{
			Options:   opts,
			Automaton: automaton,
			From:      optionalState(cmd, "from"),
			Strict:    strict,
		})
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)

	pathCmd.Flags().StringP("automaton", "a", "", "Automaton ID (optional when only one is available)")
	pathCmd.Flags().Int("from", 0, "Start state (defaults to the initial state)")
	pathCmd.Flags().Bool("strict", false, "Exit with code 1 when no final state is reachable")
}
