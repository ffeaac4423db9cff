package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"codequiz-service/internal/domain"
)

func TestResultsStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quiz.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Load(ctx, "quizResults"); err != domain.ErrResultsNotFound {
		t.Fatalf("expected ErrResultsNotFound, got %v", err)
	}

	first := domain.ResultsPayload{Category: "HTML", Score: 2, Total: 5, Percentage: 40, Answers: map[int]int{0: 0, 3: 1}}
	second := domain.ResultsPayload{Category: "CSS", Score: 5, Total: 5, Percentage: 100, Answers: map[int]int{0: 1}}
	if err := store.Save(ctx, "quizResults", first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.Save(ctx, "quizResults", second); err != nil {
		t.Fatalf("save second: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx, "quizResults")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Category != "CSS" || got.Percentage != 100 || got.Answers[0] != 1 {
		t.Fatalf("expected latest payload, got %+v", got)
	}
}
