package domain

import "time"

// Difficulty is the level label shown on a category card.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Valid reports whether d is one of the known labels.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Category describes a subject area that groups one quiz.
type Category struct {
	ID             string     `json:"id" validate:"required"`
	Name           string     `json:"name" validate:"required"`
	Description    string     `json:"description"`
	Icon           string     `json:"icon"`
	Color          string     `json:"color"`
	Difficulty     Difficulty `json:"difficulty" validate:"oneof=Beginner Intermediate Advanced"`
	QuestionsCount int        `json:"questionsCount" validate:"min=0"`
	AvgTime        string     `json:"avgTime"`
	Completions    int        `json:"completions" validate:"min=0"`
}

// OptionsPerQuestion is the fixed number of choices of every question.
const OptionsPerQuestion = 4

// Question models a multiple-choice question with exactly one correct option.
type Question struct {
	Prompt      string   `json:"prompt" validate:"required"`
	Options     []string `json:"options" validate:"len=4,dive,required"`
	AnswerIndex int      `json:"answerIndex" validate:"min=0,max=3"`
	Explanation string   `json:"explanation"`
}

// Quiz is the ordered question list of one category.
type Quiz struct {
	Category   string     `json:"category" validate:"required"`
	Difficulty Difficulty `json:"difficulty" validate:"oneof=Beginner Intermediate Advanced"`
	Questions  []Question `json:"questions" validate:"min=1,dive"`
}

// Clone returns a deep copy so callers can't mutate shared content.
func (q Quiz) Clone() Quiz {
	out := Quiz{Category: q.Category, Difficulty: q.Difficulty}
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Options = append([]string(nil), question.Options...)
		out.Questions[i] = question
	}
	return out
}

// ResultsPayload is the durable record of a completed attempt.
type ResultsPayload struct {
	AttemptID   string      `json:"attemptId"`
	Category    string      `json:"category"`
	Score       int         `json:"score"`
	Total       int         `json:"total"`
	Percentage  int         `json:"percentage"`
	Answers     map[int]int `json:"answers"`
	Questions   []Question  `json:"questions"`
	CompletedAt time.Time   `json:"completedAt"`
}

// Answer returns the recorded option for question i.
func (p ResultsPayload) Answer(i int) (int, bool) {
	option, ok := p.Answers[i]
	return option, ok
}
