package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"codequiz-service/internal/app"
	"codequiz-service/internal/config"
	"codequiz-service/internal/content"
	"codequiz-service/internal/infra/memory"
	"codequiz-service/internal/infra/sqlite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewPlayCmd runs one attempt in the terminal. Results land in the local SQLite slot.
func NewPlayCmd(configPath *string) *cobra.Command {
	var clientID string
	cmd := &cobra.Command{
		Use:   "play <category>",
		Short: "Take a quiz in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			catalog, err := content.Load()
			if err != nil {
				return err
			}
			store, err := sqlite.Open(cfg.SQLite.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			service := app.NewQuizService(catalog,
				memory.NewQuizRepository(catalog, config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)),
				store, log, app.WithAttemptOptions(attemptOptions(cfg)))
			attempt, err := service.Start(cmd.Context(), args[0], app.SlotFor(clientID))
			if err != nil {
				return err
			}
			defer attempt.Close()

			return play(cmd.Context(), attempt, cmd.InOrStdin(), cmd.OutOrStdout(), log)
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "results slot suffix")
	return cmd
}

func play(ctx context.Context, attempt *app.Attempt, in io.Reader, out io.Writer, log *zap.Logger) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	updates, unsubscribe := attempt.Subscribe()
	defer unsubscribe()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintln(out, "Answer with 1-4, move with n (next) and p (previous), q quits.")
	shown := -1
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			if snap.Completion != nil {
				printCompletion(out, snap.Completion)
				select {
				case <-time.After(snap.Completion.RedirectAfter):
				case <-ctx.Done():
				}
				return nil
			}
			if snap.Index != shown {
				shown = snap.Index
				printQuestion(out, snap)
			} else if snap.TimeLeft > 0 && snap.TimeLeft <= 5 {
				fmt.Fprintf(out, "  %ds left\n", snap.TimeLeft)
			}
		case line, ok := <-lines:
			if !ok {
				// stdin is gone; the countdown still finishes the attempt
				lines = nil
				continue
			}
			if line == "q" {
				return nil
			}
			if err := applyCommand(attempt, line); err != nil {
				log.Debug("command rejected", zap.String("input", line), zap.Error(err))
				fmt.Fprintf(out, "  %v\n", err)
			}
		}
	}
}

func applyCommand(attempt *app.Attempt, line string) error {
	switch line {
	case "n", "next":
		return attempt.Advance()
	case "p", "prev", "previous":
		return attempt.Retreat()
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return fmt.Errorf("unknown command %q", line)
	}
	return attempt.SelectAnswer(n - 1)
}

func printQuestion(out io.Writer, snap app.Snapshot) {
	if snap.Question == nil {
		return
	}
	fmt.Fprintf(out, "\n%s  question %d of %d  (%ds)\n%s\n", snap.Category, snap.Index+1, snap.Total, snap.TimeLeft, snap.Question.Prompt)
	for i, option := range snap.Question.Options {
		marker := " "
		if snap.Selected != nil && *snap.Selected == i {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %d. %s\n", marker, i+1, option)
	}
}

func printCompletion(out io.Writer, c *app.Completion) {
	fmt.Fprintf(out, "\nQuiz complete: %d/%d (%d%%)\n", c.Payload.Score, c.Payload.Total, c.Payload.Percentage)
	if c.SaveError != "" {
		fmt.Fprintf(out, "results could not be saved: %s\n", c.SaveError)
	}
	if c.Eligible {
		fmt.Fprintln(out, "You earned a certificate. Run `codequiz certificate --name \"Your Name\"`.")
		return
	}
	fmt.Fprintln(out, "Run `codequiz results` to review your answers.")
}
