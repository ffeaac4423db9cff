package domain

// CertificateThreshold is the minimum percentage that earns a certificate.
const CertificateThreshold = 90

// Score counts the questions whose recorded answer matches the correct option.
// Unanswered questions never match.
func Score(questions []Question, answers map[int]int) int {
	score := 0
	for i, question := range questions {
		if option, ok := answers[i]; ok && option == question.AnswerIndex {
			score++
		}
	}
	return score
}

// Percentage rounds score/total*100 to the nearest integer, halves rounding up.
// Integer arithmetic keeps the 90% gate exact.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*score + total) / (2 * total)
}

// Eligible reports whether percentage reaches threshold.
func Eligible(percentage, threshold int) bool {
	return percentage >= threshold
}
