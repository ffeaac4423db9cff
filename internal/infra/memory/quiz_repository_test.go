package memory

import (
	"context"
	"testing"
	"time"

	"codequiz-service/internal/domain"
)

func TestQuizRepositoryCaches(t *testing.T) {
	loader := &countingLoader{quizzes: map[string]domain.Quiz{"html": sampleQuiz()}}
	repo := NewQuizRepository(loader, time.Minute)

	if _, err := repo.GetQuiz(context.Background(), "HTML"); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetQuiz(context.Background(), "html"); err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuizRepositoryExpires(t *testing.T) {
	loader := &countingLoader{quizzes: map[string]domain.Quiz{"html": sampleQuiz()}}
	repo := NewQuizRepository(loader, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetQuiz(context.Background(), "HTML")
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetQuiz(context.Background(), "HTML")

	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestQuizRepositoryReturnsCopies(t *testing.T) {
	loader := &countingLoader{quizzes: map[string]domain.Quiz{"html": sampleQuiz()}}
	repo := NewQuizRepository(loader, time.Minute)

	quiz, _ := repo.GetQuiz(context.Background(), "HTML")
	quiz.Questions[0].Options[0] = "mutated"

	again, _ := repo.GetQuiz(context.Background(), "HTML")
	if again.Questions[0].Options[0] != "3" {
		t.Fatalf("cache entry was mutated: %q", again.Questions[0].Options[0])
	}
}

func TestQuizRepositoryPropagatesMiss(t *testing.T) {
	repo := NewQuizRepository(&countingLoader{}, time.Minute)
	if _, err := repo.GetQuiz(context.Background(), "Go"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

type countingLoader struct {
	quizzes map[string]domain.Quiz
	calls   int
}

func (l *countingLoader) LoadQuiz(_ context.Context, category string) (domain.Quiz, error) {
	l.calls++
	for name, quiz := range l.quizzes {
		if name == category || quiz.Category == category {
			return quiz.Clone(), nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		Category:   "HTML",
		Difficulty: domain.Beginner,
		Questions: []domain.Question{
			{
				Prompt:      "What is 2 + 2?",
				Options:     []string{"3", "4", "5", "6"},
				AnswerIndex: 1,
			},
		},
	}
}
