package domain

import "fmt"

// Transition is a single edge of the transition relation.
// It is also the observable record emitted for every accepted step.
type Transition struct {
	From   State  `json:"from" yaml:"from"`
	Symbol Symbol `json:"symbol" yaml:"symbol"`
	To     State  `json:"to" yaml:"to"`
}

// String renders the triple as "from symbol to".
func (t Transition) String() string {
	return fmt.Sprintf("%d %c %d", t.From, rune(t.Symbol), t.To)
}

// MarshalText lets Symbol values appear as characters in JSON and YAML.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(string(rune(s))), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *Symbol) UnmarshalText(text []byte) error {
	sym, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = sym
	return nil
}
