package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// LoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.AutomatonLoader.
// expected maps every ID the loader must serve to the transitions it must contain.
func LoaderContractTest(t *testing.T, loader ports.AutomatonLoader, expected map[string][]domain.Transition) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for id, want := range expected {
			a, err := loader.Load(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error loading %s: %v", id, err)
			}
			got := a.Transitions()
			if len(got) != len(want) {
				t.Fatalf("transition count mismatch for %s: got %v, want %v", id, got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("transition %d mismatch for %s: got %v, want %v", i, id, got[i], want[i])
				}
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-automaton")
		if err == nil {
			t.Fatal("expected error for non-existent automaton, got nil")
		}
		if !errors.Is(err, domain.ErrAutomatonNotFound) {
			t.Errorf("expected ErrAutomatonNotFound, got %v", err)
		}
		if !errors.Is(err, domain.ErrLoad) {
			t.Errorf("expected ErrLoad, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		ids, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing automata: %v", err)
		}
		if len(ids) != len(expected) {
			t.Errorf("expected %d automata, got %d (%v)", len(expected), len(ids), ids)
		}

		lookup := make(map[string]bool)
		for i, id := range ids {
			lookup[id] = true
			if i > 0 && ids[i-1] > id {
				t.Errorf("list is not sorted: %v", ids)
			}
		}
		for id := range expected {
			if !lookup[id] {
				t.Errorf("automaton %s missing from list", id)
			}
		}
	})
}
