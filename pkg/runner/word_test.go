package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareWord(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		limit   int
		want    string
		wantErr error
	}{
		{name: "plain word", word: "abba", limit: 8, want: "abba"},
		{name: "surrounding whitespace", word: "\t ab \r\n", limit: 16, want: "ab"},
		{name: "control runes kept", word: "a\x00b\x1b", limit: 8, want: "a\x00b\x1b"},
		{name: "multibyte runes kept", word: "αβ", limit: 4, want: "αβ"},
		{name: "at the limit", word: "abc", limit: 3, want: "abc"},
		{name: "over the limit", word: "abcd", limit: 3, wantErr: ErrInputTooLarge},
		{name: "limit counts bytes", word: "αβ", limit: 3, wantErr: ErrInputTooLarge},
		{name: "invalid utf-8", word: "a\xffb", limit: 8, wantErr: ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrepareWord(tt.word, tt.limit)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxInputSize(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		configured int
		want       int
	}{
		{name: "default", want: DefaultMaxInputSize},
		{name: "configured", configured: 64, want: 64},
		{name: "env wins over configured", env: "16", configured: 64, want: 16},
		{name: "bad env ignored", env: "many", configured: 64, want: 64},
		{name: "non-positive env ignored", env: "0", want: DefaultMaxInputSize},
		{name: "negative configured ignored", configured: -1, want: DefaultMaxInputSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvMaxInputSize, tt.env)
			assert.Equal(t, tt.want, MaxInputSize(tt.configured))
		})
	}
}

func TestPrepareWord_EnvLimit(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "2")

	_, err := PrepareWord(strings.Repeat("a", 3), MaxInputSize(0))
	assert.ErrorIs(t, err, ErrInputTooLarge)
}
