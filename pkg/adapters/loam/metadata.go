package loam

import (
	"github.com/aretw0/automata/pkg/description"
)

// Metadata is the front matter (or JSON/YAML body) of an automaton document.
// It uses "mapstructure" tags to match the structured description keys.
// When Alphabet and Initial are absent the document body is read as a text description.
type Metadata struct {
	ID          string   `json:"id" mapstructure:"id"`
	Name        string   `json:"name" mapstructure:"name"`
	Description string   `json:"description" mapstructure:"description"`
	Alphabet    []string `json:"alphabet" mapstructure:"alphabet"`
	States      []int    `json:"states" mapstructure:"states"`
	Initial     *int     `json:"initial" mapstructure:"initial"`
	Finals      []int    `json:"finals" mapstructure:"finals"`
	Transitions []any    `json:"transitions" mapstructure:"transitions"`
}

// structured reports whether the metadata itself carries the automaton.
func (m Metadata) structured() bool {
	return m.Initial != nil
}

func (m Metadata) document() *description.Document {
	return &description.Document{
		Name:        m.Name,
		Description: m.Description,
		Alphabet:    m.Alphabet,
		States:      m.States,
		Initial:     m.Initial,
		Finals:      m.Finals,
		Transitions: m.Transitions,
	}
}
