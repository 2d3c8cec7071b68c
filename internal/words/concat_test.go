package words_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/words"
)

func TestConcat(t *testing.T) {
	tests := []struct {
		name      string
		input     []string
		want      string
		extracted int
		skipped   int
	}{
		{name: "all long enough", input: []string{"hello", "world", "test"}, want: "hos", extracted: 3},
		{name: "exact length boundary", input: []string{"hello", "hi", "test"}, want: "his", extracted: 3},
		{name: "too short", input: []string{"a", "b", "c"}, want: "a", extracted: 1, skipped: 2},
		{name: "single word", input: []string{"x"}, want: "x", extracted: 1},
		{name: "trimmed", input: []string{"  ab ", " cd"}, want: "ad", extracted: 2},
		{name: "runes", input: []string{"über", "çé"}, want: "üé", extracted: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := words.Concat(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.want, res.Result)
			require.Equal(t, tc.extracted, res.CharactersExtracted)
			require.Equal(t, tc.skipped, res.CharactersSkipped)
			require.Len(t, res.Words, len(tc.input))
		})
	}
}

func TestConcatRejectsBlankWords(t *testing.T) {
	_, err := words.Concat(nil)
	require.True(t, common.HasCode(err, common.CodeValidation))

	_, err = words.Concat([]string{"ok", "  "})
	require.True(t, common.HasCode(err, common.CodeValidation))
	require.EqualError(t, err, "word at position 1 cannot be empty")
}
