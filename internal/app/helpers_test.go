package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"codequiz-service/internal/app"
	"codequiz-service/internal/content"
	"codequiz-service/internal/domain"
	"codequiz-service/internal/infra/memory"
	"go.uber.org/zap"
)

// manualCountdown records every countdown so tests can fire ticks by hand.
type manualCountdown struct {
	mu        sync.Mutex
	ticks     []func()
	cancelled []bool
}

func (m *manualCountdown) Start(_ time.Duration, tick func()) app.CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := len(m.ticks)
	m.ticks = append(m.ticks, tick)
	m.cancelled = append(m.cancelled, false)
	return func() {
		m.mu.Lock()
		m.cancelled[i] = true
		m.mu.Unlock()
	}
}

// fire delivers n ticks to the most recently started countdown that is still running.
func (m *manualCountdown) fire(n int) {
	for i := 0; i < n; i++ {
		m.mu.Lock()
		var tick func()
		for j := len(m.ticks) - 1; j >= 0; j-- {
			if !m.cancelled[j] {
				tick = m.ticks[j]
				break
			}
		}
		m.mu.Unlock()
		if tick == nil {
			return
		}
		tick()
	}
}

func (m *manualCountdown) started() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ticks)
}

func (m *manualCountdown) running() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.cancelled {
		if !c {
			n++
		}
	}
	return n
}

func (m *manualCountdown) tickAt(i int) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks[i]
}

type failingResults struct{}

func (failingResults) Save(context.Context, string, domain.ResultsPayload) error {
	return errors.New("disk full")
}

func (failingResults) Load(context.Context, string) (domain.ResultsPayload, error) {
	return domain.ResultsPayload{}, domain.ErrResultsNotFound
}

// Answer keys of the Go quiz below: 0, 1, 2, 3, 0.
var goAnswers = []int{0, 1, 2, 3, 0}

func testCatalog(t *testing.T) *content.Store {
	t.Helper()
	questions := make([]domain.Question, len(goAnswers))
	for i, answer := range goAnswers {
		questions[i] = domain.Question{
			Prompt:      "Question " + string(rune('A'+i)),
			Options:     []string{"w", "x", "y", "z"},
			AnswerIndex: answer,
			Explanation: "Because.",
		}
	}
	store, err := content.New(
		[]domain.Category{
			{ID: "go", Name: "Go", Difficulty: domain.Intermediate, QuestionsCount: 5},
			{ID: "rust", Name: "Rust", Difficulty: domain.Advanced},
		},
		[]domain.Quiz{{Category: "Go", Difficulty: domain.Intermediate, Questions: questions}},
	)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return store
}

type testEnv struct {
	service   *app.QuizService
	results   *memory.ResultsStore
	countdown *manualCountdown
}

func newTestEnv(t *testing.T, opts ...app.Option) testEnv {
	t.Helper()
	catalog := testCatalog(t)
	results := memory.NewResultsStore()
	countdown := &manualCountdown{}
	all := append([]app.Option{
		app.WithCountdown(countdown),
		app.WithClock(func() time.Time { return time.Date(2024, 11, 22, 12, 0, 0, 0, time.UTC) }),
	}, opts...)
	service := app.NewQuizService(catalog, memory.NewQuizRepository(catalog, time.Minute), results, zap.NewNop(), all...)
	return testEnv{service: service, results: results, countdown: countdown}
}

func answerAll(t *testing.T, attempt *app.Attempt, answers []int) {
	t.Helper()
	for _, option := range answers {
		if err := attempt.SelectAnswer(option); err != nil {
			t.Fatalf("select: %v", err)
		}
		if err := attempt.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
}
