package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"codequiz-service/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSlot is the storage key used when a caller has no client identity.
const DefaultSlot = "quizResults"

// SlotFor returns the results slot of a client; an empty client maps to DefaultSlot.
func SlotFor(clientID string) string {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return DefaultSlot
	}
	return DefaultSlot + ":" + clientID
}

// CategoryRepository lists and resolves categories.
type CategoryRepository interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Category(ctx context.Context, key string) (domain.Category, error)
}

// QuizRepository loads quiz content (from cache/backing store) by category name.
type QuizRepository interface {
	GetQuiz(ctx context.Context, category string) (domain.Quiz, error)
}

// ResultsRepository is the durable single-slot store for completed attempts.
// Load returns domain.ErrResultsNotFound when nothing was saved in slot.
type ResultsRepository interface {
	Save(ctx context.Context, slot string, payload domain.ResultsPayload) error
	Load(ctx context.Context, slot string) (domain.ResultsPayload, error)
}

// QuizService contains the quiz-taking use cases.
type QuizService struct {
	catalog   CategoryRepository
	quizzes   QuizRepository
	results   ResultsRepository
	countdown Countdown
	opts      AttemptOptions
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
}

// Option customises a QuizService.
type Option func(*QuizService)

// WithCountdown replaces the ticker-driven countdown.
func WithCountdown(c Countdown) Option {
	return func(s *QuizService) { s.countdown = c }
}

// WithAttemptOptions overrides the attempt timing and threshold.
func WithAttemptOptions(o AttemptOptions) Option {
	return func(s *QuizService) { s.opts = o.withDefaults() }
}

// WithClock is test-only for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

func NewQuizService(catalog CategoryRepository, quizzes QuizRepository, results ResultsRepository, log *zap.Logger, opts ...Option) *QuizService {
	s := &QuizService{
		catalog:   catalog,
		quizzes:   quizzes,
		results:   results,
		countdown: TickerCountdown{},
		opts:      DefaultAttemptOptions(),
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Options returns the attempt options in effect.
func (s *QuizService) Options() AttemptOptions { return s.opts }

// Categories lists the catalog.
func (s *QuizService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.Categories(ctx)
}

// Category resolves a category key.
func (s *QuizService) Category(ctx context.Context, key string) (domain.Category, error) {
	return s.catalog.Category(ctx, key)
}

// Resolve finds the quiz for a route key. Both the category and its quiz must
// exist; any miss is reported as domain.ErrQuizNotFound.
func (s *QuizService) Resolve(ctx context.Context, key string) (domain.Category, domain.Quiz, error) {
	category, err := s.catalog.Category(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return domain.Category{}, domain.Quiz{}, domain.ErrQuizNotFound
		}
		return domain.Category{}, domain.Quiz{}, err
	}
	quiz, err := s.quizzes.GetQuiz(ctx, category.Name)
	if err != nil {
		return domain.Category{}, domain.Quiz{}, err
	}
	if len(quiz.Questions) == 0 {
		return domain.Category{}, domain.Quiz{}, fmt.Errorf("%w: %s has no questions", domain.ErrQuizNotFound, category.Name)
	}
	// The payload carries the display name, as the site shows it.
	quiz.Category = category.Name
	return category, quiz, nil
}

// Start begins a new attempt whose results will be written to slot. On a lookup
// miss no attempt is created.
func (s *QuizService) Start(ctx context.Context, key, slot string) (*Attempt, error) {
	_, quiz, err := s.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if slot == "" {
		slot = DefaultSlot
	}

	attempt := newAttempt(s.newID(), slot, quiz, s.results, s.countdown, s.opts, s.log, s.now)
	attempt.start()
	s.log.Info("quiz attempt started",
		zap.String("attempt_id", attempt.ID()),
		zap.String("category", quiz.Category),
		zap.Int("questions", len(quiz.Questions)),
		zap.String("slot", slot))
	return attempt, nil
}
