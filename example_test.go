package automata_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/runner"
)

// ExampleEngine_Simulate replays a word that gets stuck and prints the route to acceptance.
func ExampleEngine_Simulate() {
	loader, err := memory.NewFromSources(map[string]string{
		"ab": `InputSymbols= a, b
StatesOfAutomata= 0, 1, 2
InitialState= 0
FinalStates= 2
TransitionFunction=
0 a 1
1 b 2`,
	})
	if err != nil {
		log.Fatal(err)
	}

	eng, err := automata.New("", automata.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	_, err = eng.Simulate(context.Background(), "ab", "b", runner.WithHandler(runner.NewTextHandler(os.Stdout)))
	if err != nil {
		log.Fatal(err)
	}
	// Output:
	// The transition for the current state '0' with input symbol 'b' is not defined.
	// ------------------------------------------
	// 0
	// 0 a
	// 1
	// 1 b
	// 2
}

// ExampleEngine_FindPath searches without replaying any input.
func ExampleEngine_FindPath() {
	loader, err := memory.NewFromSources(map[string]string{
		"loop": `InputSymbols= x, y
StatesOfAutomata= 0, 1
InitialState= 0
FinalStates= 1
TransitionFunction=
0 x 0
0 y 1`,
	})
	if err != nil {
		log.Fatal(err)
	}

	eng, err := automata.New("", automata.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	path, err := eng.FindPath(context.Background(), "loop", 0)
	if err != nil {
		log.Fatal(err)
	}
	for _, t := range path.Transitions() {
		fmt.Println(t)
	}
	// Output:
	// 0 y 1
}
