package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
)

func abAutomaton() *domain.Automaton {
	return domain.NewAutomaton(domain.Definition{
		Alphabet: []domain.Symbol{'a', 'b'},
		States:   []domain.State{0, 1, 2, -1},
		Initial:  0,
		Finals:   []domain.State{2},
		Transitions: []domain.Transition{
			{From: 0, Symbol: 'a', To: 1},
			{From: 0, Symbol: 'b', To: 1},
			{From: 1, Symbol: 'b', To: 2},
			{From: 2, Symbol: 'a', To: -1},
		},
	})
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "State Shapes",
			contains: []string{
				`s0(("0"))`,
				`s2((("2")))`,
				"entry --> s0",
			},
		},
		{
			name: "ID Sanitization",
			contains: []string{
				`s_1(("-1"))`,
				`s2 -- "a" --> s_1`,
			},
		},
		{
			name: "Parallel Edges Merged",
			contains: []string{
				`s0 -- "a, b" --> s1`,
			},
			excludes: []string{
				`s0 -- "a" --> s1`,
			},
		},
		{
			name: "No Overlay",
			excludes: []string{
				"classDef visited",
			},
		},
		{
			name: "Overlay",
			overlay: graph.NewOverlay(0,
				[]domain.Transition{{From: 0, Symbol: 'a', To: 1}},
				1,
				&domain.Path{Start: 1, Steps: []domain.PathStep{{State: 2, Symbol: 'b'}}},
			),
			contains: []string{
				"class s0 visited;",
				"class s1 visited;",
				"class s2 path;",
				"class s1 current;",
				`s1 -- "b" ==> s2`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(abAutomaton(), tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
		})
	}
}

func TestGenerateMermaid_UndeclaredStates(t *testing.T) {
	a := domain.NewAutomaton(domain.Definition{
		Alphabet:    []domain.Symbol{'a'},
		States:      []domain.State{0},
		Transitions: []domain.Transition{{From: 0, Symbol: 'a', To: 9}},
	})

	got := graph.GenerateMermaid(a, nil)
	if !strings.Contains(got, `s9(("9"))`) {
		t.Errorf("expected a node for undeclared state 9, got:\n%s", got)
	}
}
