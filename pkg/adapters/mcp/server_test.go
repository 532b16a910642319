package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const abSource = `InputSymbols= a, b, c
StatesOfAutomata= 0, 1, 2, 3
InitialState= 0
FinalStates= 2
TransitionFunction=
0 a 1
1 b 2
0 c 3
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	loader, err := memory.NewFromSources(map[string]string{"ab": abSource})
	require.NoError(t, err)
	eng, err := automata.New("", automata.WithLoader(loader))
	require.NoError(t, err)
	return NewServer(eng, nil)
}

func TestHandleSimulate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"automaton": "ab",
		"word":      "b",
	})
	require.NoError(t, err)

	assert.Empty(t, res.Trace)
	assert.Equal(t, "The transition for the current state '0' with input symbol 'b' is not defined.", res.Rejection)
	assert.Equal(t, domain.State(0), res.Final)
	assert.False(t, res.Accepted)
	assert.True(t, res.Search.Found)
	assert.Equal(t, []string{"0 a 1", "1 b 2"}, res.Search.Path)

	res, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"automaton": "ab",
		"word":      "b",
		"start":     float64(1),
	})
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, []string{"1 b 2"}, res.Trace)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"automaton": "missing",
		"word":      "a",
	})
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestHandleFindPath(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleFindPath(ctx, mcp.CallToolRequest{}, map[string]interface{}{"automaton": "ab"})
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, domain.State(0), res.From)
	assert.Equal(t, []string{"0 a 1", "1 b 2"}, res.Path)

	res, err = s.handleFindPath(ctx, mcp.CallToolRequest{}, map[string]interface{}{"automaton": "ab", "from": float64(3)})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Path)
	assert.Equal(t, "The path from state 3 to the final state was not found.", res.Message)
}

func TestHandleList(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleList(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, `["ab"]`, text.Text)
}

func TestReadDescription(t *testing.T) {
	s := newTestServer(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = ResourceScheme + "ab"

	contents, err := s.readDescription(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Contains(t, text.Text, "TransitionFunction=")
	assert.Contains(t, text.Text, "0 a 1")
}
