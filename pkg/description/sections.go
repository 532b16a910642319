package description

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// Recognised section keys of the text format.
const (
	KeyInputSymbols       = "InputSymbols="
	KeyStates             = "StatesOfAutomata="
	KeyInitialState       = "InitialState="
	KeyFinalStates        = "FinalStates="
	KeyTransitionFunction = "TransitionFunction="
)

var knownKeys = map[string]bool{
	KeyInputSymbols:       true,
	KeyStates:             true,
	KeyInitialState:       true,
	KeyFinalStates:        true,
	KeyTransitionFunction: true,
}

// Token is a single word of the description with the line it came from.
type Token struct {
	Text string
	Line int
}

// Section holds the tokens that followed a key.
type Section struct {
	Key    string
	Line   int
	Tokens []Token
}

// Sections is the parsed table of a text description, indexed by key.
// Repeated keys are merged in order of appearance.
type Sections struct {
	order []string
	byKey map[string]*Section
}

// Get returns the section for key, or nil if the key never appeared.
func (s *Sections) Get(key string) *Section {
	return s.byKey[key]
}

// Keys returns the keys in order of first appearance.
func (s *Sections) Keys() []string {
	return append([]string(nil), s.order...)
}

func (s *Sections) open(key string, line int) *Section {
	if sec, ok := s.byKey[key]; ok {
		return sec
	}
	sec := &Section{Key: key, Line: line}
	s.byKey[key] = sec
	s.order = append(s.order, key)
	return sec
}

// Lex splits a text description into sections.
func Lex(r io.Reader) (*Sections, error) {
	table := &Sections{byKey: make(map[string]*Section)}
	var current *Section

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		for _, field := range strings.FieldsFunc(line, isSeparator) {
			key, rest, isKey := splitKey(field)
			if isKey {
				if !knownKeys[key] {
					return nil, errorf(lineNo, "unknown key %q", key)
				}
				current = table.open(key, lineNo)
				if rest == "" {
					continue
				}
				field = rest
			}
			if current == nil {
				return nil, errorf(lineNo, "token %q appears before any key", field)
			}
			current.Tokens = append(current.Tokens, Token{Text: field, Line: lineNo})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ','
}

// splitKey recognises "Key=" and "Key=value" fields.
func splitKey(field string) (key, rest string, ok bool) {
	idx := strings.IndexByte(field, '=')
	if idx <= 0 {
		return "", "", false
	}
	return field[:idx+1], field[idx+1:], true
}
