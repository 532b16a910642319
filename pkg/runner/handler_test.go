package runner

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

var scenarios = []struct {
	name string
	word string
}{
	{"accepted", "ab"},
	{"undefined_transition", "b"},
	{"unknown_symbol", "ax"},
	{"not_found", "c"},
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestTextHandler_Golden(t *testing.T) {
	g := newGoldie(t)

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := New(WithHandler(NewTextHandler(&buf)), WithRunIDGenerator(fixedID))

			_, err := r.Run(context.Background(), domain.NewMachine(loadFixture(t)), sc.word)
			require.NoError(t, err)

			g.Assert(t, "text_"+sc.name, buf.Bytes())
		})
	}
}

func TestJSONHandler_Golden(t *testing.T) {
	g := newGoldie(t)

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := New(WithHandler(NewJSONHandler(&buf)), WithRunIDGenerator(fixedID))

			_, err := r.Run(context.Background(), domain.NewMachine(loadFixture(t)), sc.word)
			require.NoError(t, err)

			g.Assert(t, "json_"+sc.name, buf.Bytes())
		})
	}
}

func TestWritePath_ZeroLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePath(&buf, domain.Path{Start: 7}))
	require.Equal(t, "7\n", buf.String())
}
