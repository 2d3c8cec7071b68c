package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// WordList is the seed file layout.
type WordList struct {
	Words []Word `yaml:"words"`
}

// Word is a single seed entry.
type Word struct {
	Word       string `yaml:"word"`
	Definition string `yaml:"definition"`
}

// Report summarises a seeding run.
type Report struct {
	Added      []string
	Duplicates []string
	Failed     map[string]error
}

func (r *Report) fail(word string, err error) {
	if r.Failed == nil {
		r.Failed = map[string]error{}
	}
	r.Failed[word] = err
}

// Err returns a non-nil error when any word failed for a reason other than
// already being stored.
func (r Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d words failed to seed", len(r.Failed))
}

func (r Report) log(logger zerolog.Logger) {
	for word, err := range r.Failed {
		logger.Error().Err(err).Str("word", word).Msg("seed failed")
	}
	logger.Info().
		Int("added", len(r.Added)).
		Strs("duplicates", r.Duplicates).
		Int("failed", len(r.Failed)).
		Msg("seeding finished")
}

func loadWords(path string) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return parseWords(f)
}

func parseWords(r io.Reader) ([]Word, error) {
	var list WordList
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&list); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("word list is empty")
		}
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	out := make([]Word, 0, len(list.Words))
	for i, w := range list.Words {
		if strings.TrimSpace(w.Word) == "" {
			return nil, fmt.Errorf("entry %d: word is required", i)
		}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil, errors.New("word list is empty")
	}
	return out, nil
}
