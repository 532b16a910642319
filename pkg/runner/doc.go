/*
Package runner replays an input word against an automaton and reports what happened.

A run feeds the word to a domain.Machine one symbol at a time, stops at the first
rejected symbol and then always searches for the nearest final state from wherever
the machine came to rest. Progress is streamed to a pluggable Handler.

# Key Components

  - Runner: checks the word, drives the machine and builds a Report.
  - Handler: decouples how a run is presented (plain text, NDJSON).
  - TextHandler: the line-oriented output used by the CLI.
  - JSONHandler: one JSON event per line for scripting.

# Usage

	r := runner.New(
		runner.WithHandler(runner.NewTextHandler(os.Stdout)),
		runner.WithLogger(logger),
	)

	report, err := r.Run(ctx, domain.NewMachine(a), "ab")
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
