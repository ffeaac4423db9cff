package cli

import (
	"errors"
	"fmt"
	"io"

	"codequiz-service/internal/app"
	"codequiz-service/internal/domain"
	"codequiz-service/internal/infra/sqlite"
	"github.com/spf13/cobra"
)

// NewResultsCmd prints the review of the last terminal attempt.
func NewResultsCmd(configPath *string) *cobra.Command {
	var clientID string
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Review the last quiz attempt",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			store, err := sqlite.Open(cfg.SQLite.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			review, err := app.NewReporter(store, cfg.Certificate.Threshold).Report(cmd.Context(), app.SlotFor(clientID))
			if errors.Is(err, domain.ErrResultsNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No results yet. Run `codequiz play <category>` first.")
				return nil
			}
			if err != nil {
				return err
			}
			printReview(cmd.OutOrStdout(), review)
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "results slot suffix")
	return cmd
}

func printReview(out io.Writer, review app.Review) {
	fmt.Fprintf(out, "%s: %d/%d (%d%%) %s\n", review.Category, review.Score, review.Total, review.Percentage, review.Message)
	for _, item := range review.Items {
		status := "wrong"
		if item.Correct {
			status = "correct"
		}
		fmt.Fprintf(out, "\n%d. %s [%s]\n", item.Number, item.Prompt, status)
		for _, option := range item.Options {
			marker := " "
			switch {
			case option.Correct:
				marker = "+"
			case option.Selected:
				marker = "x"
			}
			fmt.Fprintf(out, "  %s %s. %s\n", marker, option.Letter, option.Text)
		}
		if item.Explanation != "" {
			fmt.Fprintf(out, "  %s\n", item.Explanation)
		}
	}
	if review.Eligible {
		fmt.Fprintln(out, "\nCertificate available: run `codequiz certificate --name \"Your Name\"`.")
	}
}
