package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
)

// DescribeMarkdown summarizes an automaton as a Markdown document.
func DescribeMarkdown(id string, a *domain.Automaton, res validator.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", id)

	symbols := make([]string, 0, len(a.Alphabet()))
	for _, s := range a.Alphabet() {
		symbols = append(symbols, "`"+s.String()+"`")
	}
	finals := make([]string, 0, len(a.Finals()))
	for _, s := range a.Finals() {
		finals = append(finals, s.String())
	}

	fmt.Fprintf(&sb, "- **Alphabet:** %s\n", strings.Join(symbols, ", "))
	fmt.Fprintf(&sb, "- **States:** %d\n", len(a.States()))
	fmt.Fprintf(&sb, "- **Initial state:** %d\n", a.Initial())
	fmt.Fprintf(&sb, "- **Final states:** %s\n", strings.Join(finals, ", "))
	sb.WriteString("\n## Transitions\n\n")

	transitions := a.Transitions()
	if len(transitions) == 0 {
		sb.WriteString("_none_\n")
	} else {
		sb.WriteString("| From | Symbol | To |\n|---:|:---:|---:|\n")
		for _, t := range transitions {
			fmt.Fprintf(&sb, "| %d | `%s` | %d |\n", t.From, t.Symbol, t.To)
		}
	}

	if len(res.Errors)+len(res.Warnings) > 0 {
		sb.WriteString("\n## Diagnostics\n\n")
		for _, e := range res.Errors {
			fmt.Fprintf(&sb, "- ❌ %s\n", e)
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(&sb, "- ⚠️ %s\n", w)
		}
	}

	return sb.String()
}
