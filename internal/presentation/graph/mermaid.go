package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// GraphOverlay contains run data to highlight on the diagram.
type GraphOverlay struct {
	// VisitedStates are the states the replay went through.
	VisitedStates []domain.State
	// Current is the state the replay stopped on.
	Current *domain.State
	// Path is the search result from Current, if any.
	Path *domain.Path
}

// NewOverlay builds an overlay from a replay trace and its search result.
func NewOverlay(start domain.State, trace []domain.Transition, final domain.State, path *domain.Path) *GraphOverlay {
	visited := []domain.State{start}
	for _, t := range trace {
		visited = append(visited, t.To)
	}
	return &GraphOverlay{VisitedStates: visited, Current: &final, Path: path}
}

// GenerateMermaid produces a Mermaid flowchart of the automaton.
// States are circles, final states double circles, and an invisible entry node points at the
// initial state. Parallel edges between the same pair of states are merged into one arrow
// whose label lists the symbols. With an overlay, visited states, the current state and the
// states of the search path are styled.
func GenerateMermaid(a *domain.Automaton, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	sb.WriteString("    entry[ ]:::entry\n")
	for _, s := range a.States() {
		writeState(&sb, a, s)
	}
	// Referenced but undeclared states still need a node.
	declared := make(map[domain.State]bool)
	for _, s := range a.States() {
		declared[s] = true
	}
	for _, t := range a.Transitions() {
		for _, s := range []domain.State{t.From, t.To} {
			if !declared[s] {
				declared[s] = true
				writeState(&sb, a, s)
			}
		}
	}

	sb.WriteString(fmt.Sprintf("    entry --> %s\n", nodeID(a.Initial())))

	type pair struct{ from, to domain.State }
	labels := make(map[pair][]string)
	var order []pair
	for _, t := range a.Transitions() {
		k := pair{t.From, t.To}
		if _, ok := labels[k]; !ok {
			order = append(order, k)
		}
		labels[k] = append(labels[k], t.Symbol.String())
	}
	pathEdges := make(map[pair]bool)
	if overlay != nil && overlay.Path != nil {
		for _, t := range overlay.Path.Transitions() {
			pathEdges[pair{t.From, t.To}] = true
		}
	}
	for _, k := range order {
		label := strings.ReplaceAll(strings.Join(labels[k], ", "), "\"", "'")
		arrow := "-->"
		if pathEdges[k] {
			arrow = "==>"
		}
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" %s %s\n", nodeID(k.from), label, arrow, nodeID(k.to)))
	}

	sb.WriteString("    classDef entry fill:none,stroke:none;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef path fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		styled := make(map[domain.State]bool)
		for _, s := range overlay.VisitedStates {
			if !styled[s] {
				styled[s] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(s)))
			}
		}

		if overlay.Path != nil {
			var onPath []domain.State
			for _, step := range overlay.Path.Steps {
				if !styled[step.State] {
					styled[step.State] = true
					onPath = append(onPath, step.State)
				}
			}
			sort.Slice(onPath, func(i, j int) bool { return onPath[i] < onPath[j] })
			for _, s := range onPath {
				sb.WriteString(fmt.Sprintf("    class %s path;\n", nodeID(s)))
			}
		}

		if overlay.Current != nil {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(*overlay.Current)))
		}
	}

	return sb.String()
}

func writeState(sb *strings.Builder, a *domain.Automaton, s domain.State) {
	opener, closer := "((", "))"
	if a.IsFinal(s) {
		opener, closer = "(((", ")))"
	}
	sb.WriteString(fmt.Sprintf("    %s%s\"%d\"%s\n", nodeID(s), opener, s, closer))
}

func nodeID(s domain.State) string {
	return sanitizeMermaidID(fmt.Sprintf("s%d", s))
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
