package app_test

import (
	"context"
	"testing"

	"codequiz-service/internal/app"
	"codequiz-service/internal/domain"
	"codequiz-service/internal/infra/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload(answers map[int]int, score, percentage int) domain.ResultsPayload {
	return domain.ResultsPayload{
		AttemptID:  "a-1",
		Category:   "Go",
		Score:      score,
		Total:      3,
		Percentage: percentage,
		Answers:    answers,
		Questions: []domain.Question{
			{Prompt: "one", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 0, Explanation: "first"},
			{Prompt: "two", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 1, Explanation: "second"},
			{Prompt: "three", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 2, Explanation: "third"},
		},
	}
}

func TestReportProjectsPayload(t *testing.T) {
	ctx := context.Background()
	results := memory.NewResultsStore()
	require.NoError(t, results.Save(ctx, app.DefaultSlot, samplePayload(map[int]int{0: 0, 1: 3}, 1, 33)))

	review, err := app.NewReporter(results, 90).Report(ctx, app.DefaultSlot)
	require.NoError(t, err)

	assert.Equal(t, 1, review.Score)
	assert.Equal(t, 33, review.Percentage)
	assert.Equal(t, "Keep practicing!", review.Message)
	assert.False(t, review.Eligible)
	require.Len(t, review.Items, 3)

	first := review.Items[0]
	assert.True(t, first.Correct)
	require.NotNil(t, first.Selected)
	assert.Equal(t, 0, *first.Selected)
	assert.Equal(t, "A", first.Options[0].Letter)
	assert.True(t, first.Options[0].Correct)
	assert.True(t, first.Options[0].Selected)

	second := review.Items[1]
	assert.False(t, second.Correct)
	assert.True(t, second.Options[3].Selected)
	assert.True(t, second.Options[1].Correct)
	assert.Equal(t, "second", second.Explanation)

	third := review.Items[2]
	assert.False(t, third.Correct)
	assert.Nil(t, third.Selected, "unanswered")
	for _, opt := range third.Options {
		assert.False(t, opt.Selected)
	}
}

func TestReportTrustsStoredScore(t *testing.T) {
	review := app.BuildReview(samplePayload(map[int]int{0: 0}, 3, 100), 90)
	assert.Equal(t, 3, review.Score)
	assert.Equal(t, 100, review.Percentage)
	assert.True(t, review.Eligible)
}

func TestReportWithoutPayload(t *testing.T) {
	_, err := app.NewReporter(memory.NewResultsStore(), 0).Report(context.Background(), app.DefaultSlot)
	assert.ErrorIs(t, err, domain.ErrResultsNotFound)
}

func TestPerformanceMessage(t *testing.T) {
	cases := map[int]string{
		100: "Outstanding!",
		90:  "Outstanding!",
		89:  "Excellent work!",
		80:  "Excellent work!",
		75:  "Good job!",
		60:  "Not bad!",
		59:  "Keep practicing!",
		0:   "Keep practicing!",
	}
	for percentage, want := range cases {
		assert.Equal(t, want, app.PerformanceMessage(percentage), "percentage %d", percentage)
	}
}
