package words

import (
	"fmt"
	"strings"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/textnorm"
)

const concatHint = "Provide a non-empty list of non-empty words, e.g. [\"hello\", \"world\"]."

// Result describes a positional concatenation.
type Result struct {
	Result              string   `json:"result"`
	Words               []string `json:"words"`
	CharactersExtracted int      `json:"characters_extracted"`
	CharactersSkipped   int      `json:"characters_skipped"`
}

// Concat takes the i-th character of the i-th word. Words shorter than
// i+1 characters contribute nothing and are counted as skipped. Positions
// are counted in runes.
func Concat(input []string) (Result, error) {
	if len(input) == 0 {
		return Result{}, common.ValidationError("words list cannot be empty", nil).
			WithDetails(map[string]any{"hint": concatHint})
	}
	trimmed := make([]string, len(input))
	for i, word := range input {
		w, err := textnorm.Normalize(word)
		if err != nil {
			return Result{}, common.ValidationError(fmt.Sprintf("word at position %d cannot be empty", i), err).
				WithDetails(map[string]any{"position": i, "hint": concatHint})
		}
		trimmed[i] = w
	}

	var b strings.Builder
	res := Result{Words: trimmed}
	for i, word := range trimmed {
		runes := []rune(word)
		if len(runes) > i {
			b.WriteRune(runes[i])
			res.CharactersExtracted++
			continue
		}
		res.CharactersSkipped++
	}
	res.Result = b.String()
	return res, nil
}
