package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fiveQuestions() []Question {
	qs := make([]Question, 5)
	for i := range qs {
		qs[i] = Question{Prompt: "q", Options: []string{"a", "b", "c", "d"}, AnswerIndex: i % 4}
	}
	return qs
}

func TestScore(t *testing.T) {
	qs := fiveQuestions()

	tests := []struct {
		name    string
		answers map[int]int
		want    int
	}{
		{name: "all correct", answers: map[int]int{0: 0, 1: 1, 2: 2, 3: 3, 4: 0}, want: 5},
		{name: "one wrong", answers: map[int]int{0: 0, 1: 1, 2: 2, 3: 3, 4: 1}, want: 4},
		{name: "unanswered counts as wrong", answers: map[int]int{0: 0, 2: 2}, want: 2},
		{name: "empty", answers: nil, want: 0},
		{name: "out of range indexes ignored", answers: map[int]int{7: 0, -1: 0}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(qs, tt.answers)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, len(qs))
		})
	}
}

func TestPercentageRoundsHalfUp(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{5, 5, 100},
		{4, 5, 80},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5
		{17, 19, 89},
		{9, 10, 90},
		{179, 200, 90}, // 89.5
		{0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.score, tt.total), "score=%d total=%d", tt.score, tt.total)
	}
}

func TestEligible(t *testing.T) {
	assert.True(t, Eligible(90, CertificateThreshold))
	assert.True(t, Eligible(100, CertificateThreshold))
	assert.False(t, Eligible(89, CertificateThreshold))
}

func TestQuizCloneIsDeep(t *testing.T) {
	q := Quiz{Category: "HTML", Difficulty: Beginner, Questions: fiveQuestions()}
	c := q.Clone()
	c.Questions[0].Options[0] = "changed"
	c.Questions[1].Prompt = "changed"

	assert.Equal(t, "a", q.Questions[0].Options[0])
	assert.Equal(t, "q", q.Questions[1].Prompt)
}

func TestDifficultyValid(t *testing.T) {
	assert.True(t, Beginner.Valid())
	assert.True(t, Advanced.Valid())
	assert.False(t, Difficulty("Expert").Valid())
}
