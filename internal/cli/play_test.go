package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"codequiz-service/internal/app"
	"codequiz-service/internal/content"
	"codequiz-service/internal/domain"
	"codequiz-service/internal/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type idleCountdown struct{}

func (idleCountdown) Start(time.Duration, func()) app.CancelFunc { return func() {} }

func startHTML(t *testing.T, results app.ResultsRepository) (*app.Attempt, domain.Quiz) {
	t.Helper()
	catalog, err := content.Load()
	require.NoError(t, err)
	opts := app.DefaultAttemptOptions()
	opts.RedirectDelay = 0
	service := app.NewQuizService(catalog, memory.NewQuizRepository(catalog, time.Minute), results, zap.NewNop(),
		app.WithCountdown(idleCountdown{}), app.WithAttemptOptions(opts))
	_, quiz, err := service.Resolve(context.Background(), "html")
	require.NoError(t, err)
	attempt, err := service.Start(context.Background(), "html", app.DefaultSlot)
	require.NoError(t, err)
	t.Cleanup(attempt.Close)
	return attempt, quiz
}

func TestPlayPerfectRun(t *testing.T) {
	results := memory.NewResultsStore()
	attempt, quiz := startHTML(t, results)

	var in strings.Builder
	for _, q := range quiz.Questions {
		fmt.Fprintf(&in, "%d\nn\n", q.AnswerIndex+1)
	}
	var out bytes.Buffer
	require.NoError(t, play(context.Background(), attempt, strings.NewReader(in.String()), &out, zap.NewNop()))

	assert.Contains(t, out.String(), "Quiz complete: 5/5 (100%)")
	assert.Contains(t, out.String(), "You earned a certificate")

	payload, err := results.Load(context.Background(), app.DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, 100, payload.Percentage)
}

func TestPlayRejectsBadInput(t *testing.T) {
	attempt, _ := startHTML(t, memory.NewResultsStore())

	var out bytes.Buffer
	err := play(context.Background(), attempt, strings.NewReader("p\n9\nwat\nq\n"), &out, zap.NewNop())
	require.NoError(t, err)

	assert.Contains(t, out.String(), domain.ErrNoPreviousQuestion.Error())
	assert.Contains(t, out.String(), domain.ErrInvalidOption.Error())
	assert.Contains(t, out.String(), `unknown command "wat"`)
	assert.Equal(t, app.StateInProgress, attempt.Snapshot().State)
}

func TestPrintReview(t *testing.T) {
	selected := 1
	review := app.Review{
		Category:   "CSS",
		Score:      1,
		Total:      1,
		Percentage: 100,
		Message:    "Outstanding!",
		Eligible:   true,
		Items: []app.ReviewItem{{
			Number:  1,
			Prompt:  "What does CSS stand for?",
			Correct: true,
			Options: []app.ReviewOption{
				{Letter: "A", Text: "Creative Style Sheets"},
				{Letter: "B", Text: "Cascading Style Sheets", Correct: true, Selected: true},
			},
			Selected:     &selected,
			CorrectIndex: 1,
		}},
	}

	var out bytes.Buffer
	printReview(&out, review)
	assert.Contains(t, out.String(), "CSS: 1/1 (100%) Outstanding!")
	assert.Contains(t, out.String(), "+ B. Cascading Style Sheets")
	assert.Contains(t, out.String(), "Certificate available")
}
