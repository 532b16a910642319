package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/domain"
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

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func testOptions(source string) (Options, *bytes.Buffer) {
	cfg := config.Default()
	cfg.Source = source
	out := &bytes.Buffer{}
	return Options{Config: cfg, Stdout: out, Stderr: &bytes.Buffer{}}, out
}

func TestRun_Text(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ab.txt": abSource})
	opts, out := testOptions(dir)

	err := Run(context.Background(), RunOptions{Options: opts, Word: "cb"})
	require.NoError(t, err)

	expected := "0 c 3\n" +
		"The transition for the current state '3' with input symbol 'b' is not defined.\n" +
		"------------------------------------------\n" +
		"The path from state 3 to the final state was not found.\n"
	assert.Equal(t, expected, out.String())
}

func TestRun_StartStateAndStrict(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ab.txt": abSource})
	opts, out := testOptions(filepath.Join(dir, "ab.txt"))

	start := domain.State(1)
	err := Run(context.Background(), RunOptions{Options: opts, Word: "b", Start: &start, Strict: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "1 b 2\n"))

	err = Run(context.Background(), RunOptions{Options: opts, Word: "a", Strict: true})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestRun_JSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ab.txt": abSource})
	opts, out := testOptions(dir)
	opts.Config.Format = "json"

	err := Run(context.Background(), RunOptions{Options: opts, Word: "ab"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"type":"transition"`)
	assert.Contains(t, lines[2], `"type":"path"`)
	assert.Contains(t, lines[2], `"accepted":true`)
}

func TestRun_LoadFailure(t *testing.T) {
	opts, _ := testOptions(filepath.Join(t.TempDir(), "missing.txt"))

	err := Run(context.Background(), RunOptions{Options: opts, Word: "a"})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, domain.ErrLoad)
}

func TestRun_AmbiguousDirectory(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ab.txt": abSource, "other.txt": abSource})
	opts, _ := testOptions(dir)

	err := Run(context.Background(), RunOptions{Options: opts, Word: "a"})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	err = Run(context.Background(), RunOptions{Options: opts, Automaton: "other", Word: "a"})
	assert.NoError(t, err)
}

func TestFindPath(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ab.txt": abSource})
	opts, out := testOptions(dir)

	require.NoError(t, FindPath(context.Background(), PathOptions{Options: opts}))
	assert.Equal(t, "0\n0 a\n1\n1 b\n2\n", out.String())

	out.Reset()
	from := domain.State(3)
	err := FindPath(context.Background(), PathOptions{Options: opts, From: &from, Strict: true})
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, domain.ErrPathNotFound)
	assert.Equal(t, "The path from state 3 to the final state was not found.\n", out.String())
}

func TestValidate(t *testing.T) {
	broken := strings.Replace(abSource, "0 c 3", "0 c 9", 1)
	dir := writeFiles(t, map[string]string{"ab.txt": abSource, "broken.txt": broken})
	opts, out := testOptions(dir)

	require.NoError(t, Validate(context.Background(), TargetOptions{Options: opts, Automaton: "ab"}))
	assert.Contains(t, out.String(), "warning: state 3 is a dead end")
	assert.Contains(t, out.String(), "ab is valid")

	out.Reset()
	err := Validate(context.Background(), TargetOptions{Options: opts, Automaton: "broken"})
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, domain.ErrInvalidAutomaton)
	assert.Contains(t, out.String(), "error:")
}

func TestGraph(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ab.txt": abSource})
	opts, out := testOptions(dir)

	require.NoError(t, Graph(context.Background(), GraphOptions{TargetOptions: TargetOptions{Options: opts}, Word: "a"}))
	assert.True(t, strings.HasPrefix(out.String(), "graph LR\n"))
	assert.Contains(t, out.String(), "classDef current")
}

func TestDescribe(t *testing.T) {
	dir := writeFiles(t, map[string]string{"ab.txt": abSource})
	opts, out := testOptions(dir)

	// A buffer is not a terminal, so the markdown comes back unstyled.
	require.NoError(t, Describe(context.Background(), TargetOptions{Options: opts}))
	assert.Contains(t, out.String(), "# ab")
	assert.Contains(t, out.String(), "| 0 | `a` | 1 |")
}

func TestPushThenRunFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := writeFiles(t, map[string]string{"ab.txt": abSource})

	opts, out := testOptions(dir)
	opts.Config.Redis.Addr = mr.Addr()

	err := Push(context.Background(), PushOptions{Options: opts, Files: []string{filepath.Join(dir, "ab.txt")}})
	require.NoError(t, err)
	assert.Equal(t, "published ab\n", out.String())

	out.Reset()
	opts.Config.Backend = "redis"
	require.NoError(t, List(context.Background(), opts))
	assert.Equal(t, "ab\n", out.String())

	out.Reset()
	require.NoError(t, Run(context.Background(), RunOptions{Options: opts, Word: "ab"}))
	assert.True(t, strings.HasPrefix(out.String(), "0 a 1\n1 b 2\n"))
}

func TestPush_Arguments(t *testing.T) {
	opts, _ := testOptions(".")

	err := Push(context.Background(), PushOptions{Options: opts})
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	err = Push(context.Background(), PushOptions{Options: opts, Files: []string{"a.txt", "b.txt"}, ID: "x"})
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCreateLoader_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "s3"
	_, closeFn, err := createLoader(cfg)
	require.Error(t, err)
	assert.NoError(t, closeFn())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))

	wrapped := &ExitError{Code: ExitCommandError, Message: "load failed", Err: domain.ErrLoad}
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.Equal(t, "load failed: "+domain.ErrLoad.Error(), wrapped.Error())
	assert.ErrorIs(t, wrapped, domain.ErrLoad)
}

func TestDetermineEntryPoint(t *testing.T) {
	t.Run("Default wins", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"default.txt": abSource, "main.yaml": "x"})
		assert.Equal(t, "default", determineEntryPoint(dir))
	})

	t.Run("Fallback to main", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"main.dfa": abSource, "other.txt": abSource})
		assert.Equal(t, "main", determineEntryPoint(dir))
	})

	t.Run("Fallback to DirectoryName", func(t *testing.T) {
		tmpRoot := t.TempDir()
		moduleDir := filepath.Join(tmpRoot, "parity")
		require.NoError(t, os.Mkdir(moduleDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(moduleDir, "parity.md"), []byte(abSource), 0644))

		assert.Equal(t, "parity", determineEntryPoint(moduleDir))
	})

	t.Run("Nothing matches", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"other.txt": abSource})
		assert.Equal(t, "", determineEntryPoint(dir))
	})

	t.Run("Not a directory", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{"ab.txt": abSource})
		assert.Equal(t, "", determineEntryPoint(filepath.Join(dir, "ab.txt")))
	})
}
