package search

import (
	"slices"

	"github.com/aretw0/automata/pkg/domain"
)

// predecessor records how a state was first discovered.
type predecessor struct {
	from   domain.State
	symbol domain.Symbol
}

// FindPathToAnyFinalState returns a shortest path (by number of transitions) from start
// to some final state of a.
//
// States are checked against the final set when dequeued, the start state included, so a
// final start yields the zero-length path. Outgoing edges are expanded in ascending symbol
// order, which makes the choice among equally near final states deterministic.
// When no final state is reachable the error wraps domain.ErrPathNotFound.
func FindPathToAnyFinalState(a *domain.Automaton, start domain.State) (domain.Path, error) {
	frontier := []domain.State{start}
	visited := map[domain.State]bool{start: true}
	preds := make(map[domain.State]predecessor)

	for len(frontier) > 0 {
		cursor := frontier[0]
		frontier = frontier[1:]

		if a.IsFinal(cursor) {
			return reconstruct(start, cursor, preds), nil
		}

		for _, edge := range a.Edges(cursor) {
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true
			preds[edge.To] = predecessor{from: cursor, symbol: edge.Symbol}
			frontier = append(frontier, edge.To)
		}
	}

	return domain.Path{}, &domain.NotFoundError{From: start}
}

// reconstruct walks the predecessor chain back from end to start and reverses it.
func reconstruct(start, end domain.State, preds map[domain.State]predecessor) domain.Path {
	steps := []domain.PathStep{}
	for cur := end; cur != start; {
		p := preds[cur]
		steps = append(steps, domain.PathStep{State: cur, Symbol: p.symbol})
		cur = p.from
	}
	slices.Reverse(steps)
	return domain.Path{Start: start, Steps: steps}
}

// Reachable returns every state reachable from start (start included), in ascending order.
func Reachable(a *domain.Automaton, start domain.State) []domain.State {
	seen := map[domain.State]bool{start: true}
	queue := []domain.State{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, edge := range a.Edges(cur) {
			if !seen[edge.To] {
				seen[edge.To] = true
				queue = append(queue, edge.To)
			}
		}
	}

	out := make([]domain.State, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
