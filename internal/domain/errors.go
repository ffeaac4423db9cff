package domain

import "errors"

var (
	// ErrQuizNotFound indicates no quiz exists for the requested category.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrCategoryNotFound indicates the category key matched nothing.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrResultsNotFound is returned when no completed attempt has been stored in a slot.
	ErrResultsNotFound = errors.New("quiz results not found")
	// ErrAttemptCompleted is returned by mutators once an attempt has finished.
	ErrAttemptCompleted = errors.New("attempt already completed")
	// ErrAttemptClosed is returned after the attempt has been torn down.
	ErrAttemptClosed = errors.New("attempt closed")
	// ErrInvalidOption indicates a selected option index outside the question's options.
	ErrInvalidOption = errors.New("option not found")
	// ErrNoPreviousQuestion is returned when retreating from the first question.
	ErrNoPreviousQuestion = errors.New("already at the first question")
	// ErrNameRequired is returned when a certificate is requested without a student name.
	ErrNameRequired = errors.New("student name is required")
	// ErrNotEligible means the stored score does not qualify for a certificate.
	ErrNotEligible = errors.New("no certificate available")
	// ErrRenderFailed wraps rasterizer failures.
	ErrRenderFailed = errors.New("certificate rendering failed")
)
