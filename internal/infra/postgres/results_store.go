package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"codequiz-service/internal/domain"
	"github.com/uptrace/bun"
)

type resultRow struct {
	bun.BaseModel `bun:"table:quiz_results"`

	Slot        string                `bun:"slot,pk"`
	AttemptID   string                `bun:"attempt_id"`
	Category    string                `bun:"category"`
	Score       int                   `bun:"score"`
	Total       int                   `bun:"total"`
	Percentage  int                   `bun:"percentage"`
	Payload     domain.ResultsPayload `bun:"payload,type:jsonb"`
	CompletedAt time.Time             `bun:"completed_at"`
}

// ResultsStore keeps one row per slot in quiz_results.
type ResultsStore struct {
	db *bun.DB
}

func NewResultsStore(db *bun.DB) *ResultsStore {
	return &ResultsStore{db: db}
}

// Save upserts the slot row so the newest attempt replaces the previous one.
func (s *ResultsStore) Save(ctx context.Context, slot string, payload domain.ResultsPayload) error {
	completedAt := payload.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}
	row := resultRow{
		Slot:        slot,
		AttemptID:   payload.AttemptID,
		Category:    payload.Category,
		Score:       payload.Score,
		Total:       payload.Total,
		Percentage:  payload.Percentage,
		Payload:     payload,
		CompletedAt: completedAt,
	}
	_, err := s.db.NewInsert().
		Model(&row).
		On("CONFLICT (slot) DO UPDATE").
		Set("attempt_id = EXCLUDED.attempt_id").
		Set("category = EXCLUDED.category").
		Set("score = EXCLUDED.score").
		Set("total = EXCLUDED.total").
		Set("percentage = EXCLUDED.percentage").
		Set("payload = EXCLUDED.payload").
		Set("completed_at = EXCLUDED.completed_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	return nil
}

func (s *ResultsStore) Load(ctx context.Context, slot string) (domain.ResultsPayload, error) {
	var row resultRow
	err := s.db.NewSelect().Model(&row).Where("slot = ?", slot).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ResultsPayload{}, domain.ErrResultsNotFound
	}
	if err != nil {
		return domain.ResultsPayload{}, fmt.Errorf("load results: %w", err)
	}
	return row.Payload, nil
}
