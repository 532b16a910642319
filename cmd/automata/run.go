package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [word]",
	Short: "Replay a word and search the nearest final state",
	Long: `Feeds every character of the word to the automaton, printing each transition.
Processing stops at the first rejected symbol. The shortest path from the state reached
to a final state is printed afterwards in every case.

Without a word argument, the first line of standard input is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		word, err := readWord(cmd, args)
		if err != nil {
			return err
		}
		automaton, _ := cmd.Flags().GetString("automaton")
		strict, _ := cmd.Flags().GetBool("strict")
		withGraph, _ := cmd.Flags().GetBool("graph")

		return cli.Run(cmd.Context(), cli.RunOptions{
			Options:   opts,
			Automaton: automaton,
			Word:      word,
			Start:     optionalState(cmd, "start"),
			Strict:    strict,
			Graph:     withGraph,
		})
	},
}

func readWord(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	in := cmd.InOrStdin()
	if tui.IsTerminal(cmd.OutOrStdout()) {
		fmt.Fprint(cmd.ErrOrStderr(), "Input word: ")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading word: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("automaton", "a", "", "Automaton ID (optional when only one is available)")
	runCmd.Flags().Int("start", 0, "Start state (defaults to the initial state)")
	runCmd.Flags().Bool("strict", false, "Exit with code 1 unless the word is accepted and a final state is reachable")
	runCmd.Flags().Bool("graph", false, "Append a Mermaid diagram highlighting the run")
}
