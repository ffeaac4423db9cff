package postgres

import (
	"context"
	"fmt"
	"time"

	"codequiz-service/internal/domain"
	"github.com/uptrace/bun"
)

type quizRow struct {
	bun.BaseModel `bun:"table:quizzes"`

	Category  string      `bun:"category,pk"`
	Data      domain.Quiz `bun:"data,type:jsonb"`
	UpdatedAt time.Time   `bun:"updated_at"`
}

// SeedQuizzes upserts quizzes keyed by category inside one transaction.
func SeedQuizzes(ctx context.Context, db *bun.DB, quizzes []domain.Quiz) error {
	if len(quizzes) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]quizRow, 0, len(quizzes))
	for _, quiz := range quizzes {
		rows = append(rows, quizRow{Category: quiz.Category, Data: quiz, UpdatedAt: now})
	}
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&rows).
			On("CONFLICT (category) DO UPDATE").
			Set("data = EXCLUDED.data").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("seed quizzes: %w", err)
		}
		return nil
	})
}
