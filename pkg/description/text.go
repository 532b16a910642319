package description

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/aretw0/automata/pkg/domain"
)

// Parse reads a text description and builds the automaton.
func Parse(r io.Reader) (*domain.Automaton, error) {
	table, err := Lex(r)
	if err != nil {
		return nil, err
	}
	def, err := Decode(table)
	if err != nil {
		return nil, err
	}
	return domain.NewAutomaton(def), nil
}

// ParseBytes is Parse over an in-memory description.
func ParseBytes(data []byte) (*domain.Automaton, error) {
	return Parse(bytes.NewReader(data))
}

// Decode turns a section table into a Definition.
// InitialState= is mandatory and must hold exactly one state; every other section may be empty.
func Decode(table *Sections) (domain.Definition, error) {
	var def domain.Definition

	if sec := table.Get(KeyInputSymbols); sec != nil {
		for _, tok := range sec.Tokens {
			sym, err := parseSymbol(tok)
			if err != nil {
				return def, err
			}
			def.Alphabet = append(def.Alphabet, sym)
		}
	}

	if sec := table.Get(KeyStates); sec != nil {
		states, err := parseStates(sec.Tokens)
		if err != nil {
			return def, err
		}
		def.States = states
	}

	sec := table.Get(KeyInitialState)
	if sec == nil {
		return def, errorf(0, "missing %s section", KeyInitialState)
	}
	if len(sec.Tokens) != 1 {
		return def, errorf(sec.Line, "%s expects exactly one state, got %d", KeyInitialState, len(sec.Tokens))
	}
	initial, err := parseState(sec.Tokens[0])
	if err != nil {
		return def, err
	}
	def.Initial = initial

	if sec := table.Get(KeyFinalStates); sec != nil {
		finals, err := parseStates(sec.Tokens)
		if err != nil {
			return def, err
		}
		def.Finals = finals
	}

	if sec := table.Get(KeyTransitionFunction); sec != nil {
		toks := sec.Tokens
		if len(toks)%3 != 0 {
			last := toks[len(toks)-1]
			return def, errorf(last.Line, "incomplete transition: expected \"from symbol to\" triples, %d tokens left over", len(toks)%3)
		}
		for i := 0; i < len(toks); i += 3 {
			t, err := parseTriple(toks[i], toks[i+1], toks[i+2])
			if err != nil {
				return def, err
			}
			def.Transitions = append(def.Transitions, t)
		}
	}

	return def, nil
}

func parseTriple(from, sym, to Token) (domain.Transition, error) {
	f, err := parseState(from)
	if err != nil {
		return domain.Transition{}, err
	}
	s, err := parseSymbol(sym)
	if err != nil {
		return domain.Transition{}, err
	}
	t, err := parseState(to)
	if err != nil {
		return domain.Transition{}, err
	}
	return domain.Transition{From: f, Symbol: s, To: t}, nil
}

func parseStates(tokens []Token) ([]domain.State, error) {
	out := make([]domain.State, 0, len(tokens))
	for _, tok := range tokens {
		s, err := parseState(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func parseState(tok Token) (domain.State, error) {
	s, err := domain.ParseState(tok.Text)
	if err != nil {
		return 0, errorf(tok.Line, "%v", err)
	}
	return s, nil
}

func parseSymbol(tok Token) (domain.Symbol, error) {
	sym, err := domain.ParseSymbol(tok.Text)
	if err != nil {
		return 0, errorf(tok.Line, "%v", err)
	}
	if !unicode.IsLetter(rune(sym)) && !unicode.IsDigit(rune(sym)) {
		return 0, errorf(tok.Line, "symbol %q is not alphanumeric", tok.Text)
	}
	return sym, nil
}

// Render writes an automaton in the text format. Parse(Render(a)) rebuilds an equal automaton.
func Render(a *domain.Automaton) string {
	var sb strings.Builder

	sb.WriteString(KeyInputSymbols)
	for _, sym := range a.Alphabet() {
		fmt.Fprintf(&sb, " %c", rune(sym))
	}
	sb.WriteString("\n")

	sb.WriteString(KeyStates)
	for _, s := range a.States() {
		fmt.Fprintf(&sb, " %d", s)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "%s %d\n", KeyInitialState, a.Initial())

	sb.WriteString(KeyFinalStates)
	for _, s := range a.Finals() {
		fmt.Fprintf(&sb, " %d", s)
	}
	sb.WriteString("\n")

	sb.WriteString(KeyTransitionFunction + "\n")
	for _, t := range a.Transitions() {
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
