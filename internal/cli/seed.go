package cli

import (
	"codequiz-service/internal/content"
	"codequiz-service/internal/infra/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSeedCmd copies the bundled quizzes into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled quizzes into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := runMigrationsWithConfig(cmd.Context(), cfg, log); err != nil {
				return err
			}
			catalog, err := content.Load()
			if err != nil {
				return err
			}

			db := postgres.OpenBun(cfg.Postgres.URL)
			defer db.Close()
			quizzes := catalog.Quizzes()
			if err := postgres.SeedQuizzes(cmd.Context(), db, quizzes); err != nil {
				return err
			}
			log.Info("quizzes seeded", zap.Int("count", len(quizzes)))
			return nil
		},
	}
}
