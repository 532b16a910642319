package description

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a description.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor guesses the encoding from a file name. Unknown extensions are text.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Document is the structured form of a description.
// The mapstructure tags are shared by the YAML/JSON decoder and by front-matter loaders.
type Document struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Alphabet    []string `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	States      []int    `json:"states" yaml:"states" mapstructure:"states"`
	Initial     *int     `json:"initial" yaml:"initial" mapstructure:"initial"`
	Finals      []int    `json:"finals" yaml:"finals" mapstructure:"finals"`

	// Transitions accepts "from symbol to" strings or {from, symbol, to} objects.
	Transitions []any `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

type transitionDoc struct {
	From   int    `mapstructure:"from"`
	Symbol string `mapstructure:"symbol"`
	To     int    `mapstructure:"to"`
}

// DecodeDocument maps a generic key/value tree (YAML, JSON or front matter) onto a Document.
func DecodeDocument(raw map[string]any) (*Document, error) {
	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &doc, nil
}

// Definition converts the document into a domain Definition.
func (d *Document) Definition() (domain.Definition, error) {
	var def domain.Definition

	for _, text := range d.Alphabet {
		sym, err := parseSymbol(Token{Text: text})
		if err != nil {
			return def, err
		}
		def.Alphabet = append(def.Alphabet, sym)
	}
	for _, s := range d.States {
		def.States = append(def.States, domain.State(s))
	}
	if d.Initial == nil {
		return def, errorf(0, "missing initial state")
	}
	def.Initial = domain.State(*d.Initial)
	for _, s := range d.Finals {
		def.Finals = append(def.Finals, domain.State(s))
	}

	for i, raw := range d.Transitions {
		t, err := decodeTransition(raw)
		if err != nil {
			return def, fmt.Errorf("transition #%d: %w", i+1, err)
		}
		def.Transitions = append(def.Transitions, t)
	}
	return def, nil
}

func decodeTransition(raw any) (domain.Transition, error) {
	switch v := raw.(type) {
	case string:
		fields := strings.Fields(v)
		if len(fields) != 3 {
			return domain.Transition{}, errorf(0, "expected \"from symbol to\", got %q", v)
		}
		return parseTriple(Token{Text: fields[0]}, Token{Text: fields[1]}, Token{Text: fields[2]})
	case map[string]any:
		var td transitionDoc
		if err := mapstructure.WeakDecode(v, &td); err != nil {
			return domain.Transition{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		sym, err := parseSymbol(Token{Text: td.Symbol})
		if err != nil {
			return domain.Transition{}, err
		}
		return domain.Transition{From: domain.State(td.From), Symbol: sym, To: domain.State(td.To)}, nil
	default:
		return domain.Transition{}, errorf(0, "unsupported transition value of type %T", raw)
	}
}

// ParseDocument decodes a YAML or JSON description.
func ParseDocument(format Format, data []byte) (*domain.Automaton, error) {
	raw := make(map[string]any)
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		return nil, err
	}
	def, err := doc.Definition()
	if err != nil {
		return nil, err
	}
	return domain.NewAutomaton(def), nil
}

// ParseFormat dispatches to the parser for format.
func ParseFormat(format Format, data []byte) (*domain.Automaton, error) {
	if format == FormatText || format == "" {
		return ParseBytes(data)
	}
	return ParseDocument(format, data)
}

// NewDocument builds the structured form of an automaton.
func NewDocument(a *domain.Automaton) *Document {
	doc := &Document{}
	for _, sym := range a.Alphabet() {
		doc.Alphabet = append(doc.Alphabet, sym.String())
	}
	for _, s := range a.States() {
		doc.States = append(doc.States, int(s))
	}
	initial := int(a.Initial())
	doc.Initial = &initial
	for _, s := range a.Finals() {
		doc.Finals = append(doc.Finals, int(s))
	}
	for _, t := range a.Transitions() {
		doc.Transitions = append(doc.Transitions, t.String())
	}
	return doc
}
