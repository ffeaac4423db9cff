package app

import (
	"context"

	"codequiz-service/internal/domain"
)

// ReviewOption is one lettered choice in the question review.
type ReviewOption struct {
	Letter   string `json:"letter"`
	Text     string `json:"text"`
	Correct  bool   `json:"correct"`
	Selected bool   `json:"selected"`
}

// ReviewItem reports how one question was answered.
type ReviewItem struct {
	Number       int            `json:"number"`
	Prompt       string         `json:"prompt"`
	Options      []ReviewOption `json:"options"`
	Selected     *int           `json:"selected"`
	CorrectIndex int            `json:"correctIndex"`
	Correct      bool           `json:"correct"`
	Explanation  string         `json:"explanation"`
}

// Review is the scored projection of a stored payload.
type Review struct {
	AttemptID  string       `json:"attemptId"`
	Category   string       `json:"category"`
	Score      int          `json:"score"`
	Total      int          `json:"total"`
	Percentage int          `json:"percentage"`
	Message    string       `json:"message"`
	Eligible   bool         `json:"certificateEligible"`
	Items      []ReviewItem `json:"questions"`
}

// Reporter renders the most recent payload of a slot.
type Reporter struct {
	results   ResultsRepository
	threshold int
}

func NewReporter(results ResultsRepository, threshold int) *Reporter {
	if threshold <= 0 {
		threshold = domain.CertificateThreshold
	}
	return &Reporter{results: results, threshold: threshold}
}

// Report loads the payload in slot and projects it. The stored score and
// percentage are trusted as-is.
func (r *Reporter) Report(ctx context.Context, slot string) (Review, error) {
	payload, err := r.results.Load(ctx, slot)
	if err != nil {
		return Review{}, err
	}
	return BuildReview(payload, r.threshold), nil
}

// BuildReview projects payload without touching storage.
func BuildReview(payload domain.ResultsPayload, threshold int) Review {
	review := Review{
		AttemptID:  payload.AttemptID,
		Category:   payload.Category,
		Score:      payload.Score,
		Total:      payload.Total,
		Percentage: payload.Percentage,
		Message:    PerformanceMessage(payload.Percentage),
		Eligible:   domain.Eligible(payload.Percentage, threshold),
		Items:      make([]ReviewItem, 0, len(payload.Questions)),
	}
	for i, question := range payload.Questions {
		item := ReviewItem{
			Number:       i + 1,
			Prompt:       question.Prompt,
			CorrectIndex: question.AnswerIndex,
			Explanation:  question.Explanation,
			Options:      make([]ReviewOption, len(question.Options)),
		}
		selected, answered := payload.Answer(i)
		if answered {
			s := selected
			item.Selected = &s
			item.Correct = selected == question.AnswerIndex
		}
		for j, text := range question.Options {
			item.Options[j] = ReviewOption{
				Letter:   string(rune('A' + j)),
				Text:     text,
				Correct:  j == question.AnswerIndex,
				Selected: answered && j == selected,
			}
		}
		review.Items = append(review.Items, item)
	}
	return review
}

// PerformanceMessage is the headline shown above the score.
func PerformanceMessage(percentage int) string {
	switch {
	case percentage >= 90:
		return "Outstanding!"
	case percentage >= 80:
		return "Excellent work!"
	case percentage >= 70:
		return "Good job!"
	case percentage >= 60:
		return "Not bad!"
	default:
		return "Keep practicing!"
	}
}
