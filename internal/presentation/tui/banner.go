package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// PrintBanner writes the ASCII banner and version to w.
// Nothing is written when w is not a terminal, so piped output stays clean.
func PrintBanner(w io.Writer, version string) {
	if !IsTerminal(w) {
		return
	}
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ ", "#818cf8"},
		{"  / _` | | | | __/ _ \\| '_ ` _ \\ / _` | __/ _` |", "#a78bfa"},
		{" | (_| | |_| | || (_) | | | | | | (_| | || (_| |", "#c084fc"},
		{"  \\__,_|\\__,_|\\__\\___/|_| |_| |_|\\__,_|\\__\\__,_|", "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}

// Verdict renders an accept/reject status word, colored on terminals.
func Verdict(w io.Writer, accepted bool) string {
	text, color := "REJECTED", "#f87171"
	if accepted {
		text, color = "ACCEPTED", "#4ade80"
	}
	if !IsTerminal(w) {
		return text
	}
	p := termenv.ColorProfile()
	return termenv.String(text).Foreground(p.Color(color)).Bold().String()
}
