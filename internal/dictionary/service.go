package dictionary

//go:generate mockgen -source=service.go -destination=../mocks/dictionary/mock_repository.go -package=mock_dictionary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/obs"
	"github.com/noah-isme/devtools-playground/internal/resilience"
	"github.com/noah-isme/devtools-playground/internal/store"
	"github.com/noah-isme/devtools-playground/internal/textnorm"
)

// Length limits applied after trimming.
const (
	MaxWordLength       = 100
	MaxDefinitionLength = 1000
)

var (
	// ErrNotFound is wrapped by lookups that miss.
	ErrNotFound = errors.New("dictionary: word not found")
	// ErrAlreadyExists is wrapped by adds that collide with a stored word.
	ErrAlreadyExists = errors.New("dictionary: word already exists")
)

const (
	addHint       = "Ensure word and definition are not empty and meet length requirements."
	getHint       = "Ensure the word parameter is not empty."
	duplicateHint = "Words are stored case-insensitively. Use GET endpoint to retrieve existing word."
	missingHint   = "The word may not exist in the dictionary. Use POST /add to add new words."
)

// Repository is the persistence the service depends on.
type Repository interface {
	FindByWord(ctx context.Context, word string) (store.Entry, error)
	Create(ctx context.Context, word, definition string) (store.Entry, error)
}

// ServiceConfig configures the dictionary service.
type ServiceConfig struct {
	Repository Repository
	Cache      *Cache
	Metrics    *obs.DomainMetrics
	Logger     zerolog.Logger
}

// Service implements case-insensitive add and lookup.
type Service struct {
	repo    Repository
	cache   *Cache
	metrics *obs.DomainMetrics
	logger  zerolog.Logger
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Repository == nil {
		return nil, errors.New("dictionary repository is required")
	}
	return &Service{
		repo:    cfg.Repository,
		cache:   cfg.Cache,
		metrics: cfg.Metrics,
		logger:  cfg.Logger.With().Str("component", "dictionary").Logger(),
	}, nil
}

// Add stores a new word. The word is trimmed and lowercased, the
// definition trimmed.
func (s *Service) Add(ctx context.Context, word, definition string) (entry store.Entry, err error) {
	ctx, span := otel.Tracer("dictionary").Start(ctx, "dictionary.add")
	defer func() {
		s.metrics.ObserveDictionary("add", obs.Outcome(err))
		endSpan(span, err)
	}()

	key, _ := textnorm.NormalizeKey(word)
	def := strings.TrimSpace(definition)
	span.SetAttributes(attribute.String("dictionary.word", key))
	if err := validateEntry(key, def); err != nil {
		return store.Entry{}, err
	}

	_, err = s.repo.FindByWord(ctx, key)
	switch {
	case err == nil:
		s.logger.Warn().Str("word", word).Str("normalized", key).Msg("attempted to add duplicate word")
		return store.Entry{}, alreadyExists(key, nil)
	case !errors.Is(err, store.ErrNotFound):
		return store.Entry{}, fmt.Errorf("lookup word %q: %w", key, err)
	}

	entry, err = s.repo.Create(ctx, key, def)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			s.logger.Warn().Err(err).Str("word", key).Msg("word inserted concurrently")
			return store.Entry{}, alreadyExists(key, err)
		}
		return store.Entry{}, fmt.Errorf("store word %q: %w", key, err)
	}

	if cacheErr := s.cache.Set(ctx, entry); cacheErr != nil {
		s.logger.Warn().Err(cacheErr).Str("word", key).Msg("cache dictionary entry")
	}
	s.logger.Info().Str("word", key).Int("definition_length", utf8.RuneCountInString(def)).Msg("added word")
	return entry, nil
}

// Get returns the entry stored under word, matched case-insensitively.
func (s *Service) Get(ctx context.Context, word string) (entry store.Entry, err error) {
	ctx, span := otel.Tracer("dictionary").Start(ctx, "dictionary.get")
	defer func() {
		s.metrics.ObserveDictionary("get", obs.Outcome(err))
		endSpan(span, err)
	}()

	key, _ := textnorm.NormalizeKey(word)
	if key == "" {
		return store.Entry{}, common.ValidationError("Word cannot be empty or only whitespace", textnorm.ErrEmptyInput).
			WithDetails(map[string]any{"hint": getHint})
	}
	span.SetAttributes(attribute.String("dictionary.word", key))

	cached, hit, cacheErr := s.cache.Get(ctx, key)
	if cacheErr != nil && !errors.Is(cacheErr, resilience.ErrOpenCircuit) {
		s.logger.Warn().Err(cacheErr).Str("word", key).Msg("read dictionary cache")
	}
	if s.cache.Enabled() {
		s.metrics.ObserveCache(hit)
	}
	if hit {
		return cached, nil
	}

	entry, err = s.repo.FindByWord(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Warn().Str("word", word).Str("normalized", key).Msg("word not found")
			return store.Entry{}, common.NotFoundError(fmt.Sprintf("Word '%s' not found in dictionary", key), errors.Join(ErrNotFound, err)).
				WithDetails(map[string]any{"word": key, "hint": missingHint})
		}
		return store.Entry{}, fmt.Errorf("lookup word %q: %w", key, err)
	}
	if cacheErr := s.cache.Set(ctx, entry); cacheErr != nil {
		s.logger.Warn().Err(cacheErr).Str("word", key).Msg("cache dictionary entry")
	}
	return entry, nil
}

func validateEntry(word, definition string) error {
	switch {
	case word == "":
		return invalid("Word cannot be empty", textnorm.ErrEmptyInput)
	case definition == "":
		return invalid("Definition cannot be empty", textnorm.ErrEmptyInput)
	case utf8.RuneCountInString(word) > MaxWordLength:
		return invalid(fmt.Sprintf("Word must be at most %d characters", MaxWordLength), nil)
	case utf8.RuneCountInString(definition) > MaxDefinitionLength:
		return invalid(fmt.Sprintf("Definition must be at most %d characters", MaxDefinitionLength), nil)
	}
	return nil
}

func invalid(message string, err error) error {
	return common.ValidationError(message, err).WithDetails(map[string]any{"hint": addHint})
}

func alreadyExists(word string, cause error) error {
	return common.AlreadyExistsError(fmt.Sprintf("Word '%s' already exists in dictionary", word), errors.Join(ErrAlreadyExists, cause)).
		WithDetails(map[string]any{"word": word, "hint": duplicateHint})
}

func endSpan(span trace.Span, err error) {
	if err != nil && common.StatusOf(err) >= http.StatusInternalServerError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
