package domain

// PathStep is a state reached during a search and the symbol that led to it.
type PathStep struct {
	State  State  `json:"state"`
	Symbol Symbol `json:"symbol"`
}

// Path is a sequence of transitions from Start to a final state.
// Steps holds one entry per edge; a zero-length path has no steps.
type Path struct {
	Start State      `json:"start"`
	Steps []PathStep `json:"steps"`
}

// Len returns the number of edges.
func (p Path) Len() int {
	return len(p.Steps)
}

// End returns the last state of the path.
func (p Path) End() State {
	if len(p.Steps) == 0 {
		return p.Start
	}
	return p.Steps[len(p.Steps)-1].State
}

// Nodes returns the states visited, start first. The start entry carries no symbol.
func (p Path) Nodes() []PathStep {
	nodes := make([]PathStep, 0, len(p.Steps)+1)
	nodes = append(nodes, PathStep{State: p.Start})
	return append(nodes, p.Steps...)
}

// Transitions returns the edges of the path in order.
func (p Path) Transitions() []Transition {
	out := make([]Transition, 0, len(p.Steps))
	prev := p.Start
	for _, step := range p.Steps {
		out = append(out, Transition{From: prev, Symbol: step.Symbol, To: step.State})
		prev = step.State
	}
	return out
}
