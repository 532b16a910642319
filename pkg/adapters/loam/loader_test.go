package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"

	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for filename, content := range files {
		err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644)
		require.NoError(t, err)
	}
}

func TestLoader_Contract(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		// Structured front matter
		"ab.md": `---
id: ab
name: a then b
alphabet: [a, b]
states: [0, 1, 2]
initial: 0
finals: [2]
transitions:
  - "0 a 1"
  - {from: 1, symbol: b, to: 2}
---
Accepts the word "ab".`,
		// Text description in the body
		"loop.md": `---
id: loop
---
InputSymbols= x
StatesOfAutomata= 0
InitialState= 0
FinalStates= 0
TransitionFunction=
0 x 0`,
	})

	loader := New(loam.NewTypedRepository[Metadata](repo))

	tests.LoaderContractTest(t, loader, map[string][]domain.Transition{
		"ab":   {{From: 0, Symbol: 'a', To: 1}, {From: 1, Symbol: 'b', To: 2}},
		"loop": {{From: 0, Symbol: 'x', To: 0}},
	})
}

func TestLoader_List_NormalizesIDs(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"first.md": `---
id: first.md
initial: 0
---`,
		"second.json": `{"initial": 0, "states": [0]}`,
	})

	loader := New(loam.NewTypedRepository[Metadata](repo))
	ids, err := loader.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, ids)
}

func TestLoader_List_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"foo.md": `---
id: foo
initial: 0
---`,
		"foo.json": `{"id": "foo", "initial": 0}`,
	})

	loader := New(loam.NewTypedRepository[Metadata](repo))
	_, err := loader.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoader_MalformedBody(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"bad.md": `---
id: bad
---
StatesOfAutomata= 0`,
	})

	loader := New(loam.NewTypedRepository[Metadata](repo))
	_, err := loader.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.NotErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestLoader_Load_ErrorKinds(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"broken.json": `{"initial": 0, "states": [`,
	})

	loader := New(loam.NewTypedRepository[Metadata](repo))

	_, err := loader.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	_, err = loader.Load(context.Background(), "broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.NotErrorIs(t, err, domain.ErrAutomatonNotFound)
}
