// Package content holds the bundled category and quiz tables.
package content

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"codequiz-service/internal/domain"
	"codequiz-service/pkg/validator"
)

//go:embed data/categories.json data/quizzes.json
var bundled embed.FS

// Store is an immutable in-memory catalog loaded once at startup.
type Store struct {
	categories []domain.Category
	quizzes    []domain.Quiz
}

// Load decodes and validates the bundled tables.
func Load() (*Store, error) {
	var categories []domain.Category
	if err := decode("data/categories.json", &categories); err != nil {
		return nil, err
	}
	var quizzes []domain.Quiz
	if err := decode("data/quizzes.json", &quizzes); err != nil {
		return nil, err
	}
	return New(categories, quizzes)
}

// New builds a store from explicit tables, validating every record.
func New(categories []domain.Category, quizzes []domain.Quiz) (*Store, error) {
	seen := make(map[string]struct{}, len(categories))
	for i, category := range categories {
		if err := validator.ValidateStruct(category); err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		id := strings.ToLower(category.ID)
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate category id %q", category.ID)
		}
		seen[id] = struct{}{}
	}
	for i, quiz := range quizzes {
		if err := validator.ValidateStruct(quiz); err != nil {
			return nil, fmt.Errorf("quiz %d (%s): %w", i, quiz.Category, err)
		}
	}

	s := &Store{
		categories: append([]domain.Category(nil), categories...),
		quizzes:    make([]domain.Quiz, len(quizzes)),
	}
	for i, quiz := range quizzes {
		s.quizzes[i] = quiz.Clone()
	}
	return s, nil
}

// MustLoad is Load for process start-up, where bad bundled data is a programming error.
func MustLoad() *Store {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

func decode(name string, v any) error {
	raw, err := bundled.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Categories lists every category in display order.
func (s *Store) Categories(_ context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), s.categories...), nil
}

// Category resolves a route key by ID first, then by name, case-insensitively.
func (s *Store) Category(_ context.Context, key string) (domain.Category, error) {
	key = strings.TrimSpace(key)
	for _, category := range s.categories {
		if strings.EqualFold(category.ID, key) {
			return category, nil
		}
	}
	for _, category := range s.categories {
		if strings.EqualFold(category.Name, key) {
			return category, nil
		}
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

// Quizzes returns copies of all bundled quizzes (used for seeding).
func (s *Store) Quizzes() []domain.Quiz {
	out := make([]domain.Quiz, len(s.quizzes))
	for i, quiz := range s.quizzes {
		out[i] = quiz.Clone()
	}
	return out
}

// GetQuiz resolves a route key to its quiz. The key is matched against category
// IDs and names first, so "javascript" and "JavaScript" both find the same quiz.
func (s *Store) GetQuiz(ctx context.Context, key string) (domain.Quiz, error) {
	name := key
	if category, err := s.Category(ctx, key); err == nil {
		name = category.Name
	}
	return s.LoadQuiz(ctx, name)
}

// LoadQuiz finds the quiz whose category name equals name, ignoring case.
func (s *Store) LoadQuiz(_ context.Context, name string) (domain.Quiz, error) {
	for _, quiz := range s.quizzes {
		if strings.EqualFold(quiz.Category, strings.TrimSpace(name)) {
			return quiz.Clone(), nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}
