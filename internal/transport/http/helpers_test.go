package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"codequiz-service/internal/app"
	"codequiz-service/internal/content"
	"codequiz-service/internal/domain"
	"codequiz-service/internal/infra/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// idleCountdown never ticks; the tests drive attempts through the socket only.
type idleCountdown struct{}

func (idleCountdown) Start(time.Duration, func()) app.CancelFunc { return func() {} }

type stubRasterizer struct {
	err error
}

func (s stubRasterizer) Rasterize(_ context.Context, cert app.Certificate) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("png:" + cert.Student), nil
}

// Answer keys of the Go quiz: 0, 1, 2, 3.
var goAnswers = []int{0, 1, 2, 3}

type testServer struct {
	*httptest.Server
	results *memory.ResultsStore
}

func newTestServer(t *testing.T, rasterizer app.Rasterizer) testServer {
	t.Helper()
	questions := make([]domain.Question, len(goAnswers))
	for i, answer := range goAnswers {
		questions[i] = domain.Question{
			Prompt:      "Question " + string(rune('A'+i)),
			Options:     []string{"w", "x", "y", "z"},
			AnswerIndex: answer,
		}
	}
	catalog, err := content.New(
		[]domain.Category{{ID: "go", Name: "Go", Difficulty: domain.Beginner, QuestionsCount: len(questions)}},
		[]domain.Quiz{{Category: "Go", Difficulty: domain.Beginner, Questions: questions}},
	)
	require.NoError(t, err)

	results := memory.NewResultsStore()
	opts := app.DefaultAttemptOptions()
	opts.RedirectDelay = 20 * time.Millisecond
	service := app.NewQuizService(catalog, memory.NewQuizRepository(catalog, time.Minute), results, zap.NewNop(),
		app.WithCountdown(idleCountdown{}), app.WithAttemptOptions(opts))
	reporter := app.NewReporter(results, opts.Threshold)
	certificates := app.NewCertificateService(results, rasterizer, app.CertificateOptions{
		Issuer:    "CodeWithHimanshu",
		Signatory: "Himanshu Vishwakarma",
		Threshold: opts.Threshold,
	}, zap.NewNop())

	srv := httptest.NewServer(NewRouter(service, reporter, certificates, zap.NewNop()))
	t.Cleanup(srv.Close)
	return testServer{Server: srv, results: results}
}

func (s testServer) seed(t *testing.T, slot string, score int) {
	t.Helper()
	total := len(goAnswers)
	payload := domain.ResultsPayload{
		AttemptID:   "attempt-1",
		Category:    "Go",
		Score:       score,
		Total:       total,
		Percentage:  domain.Percentage(score, total),
		Answers:     map[int]int{},
		CompletedAt: time.Date(2024, 11, 22, 12, 0, 0, 0, time.UTC),
	}
	for i, answer := range goAnswers {
		payload.Questions = append(payload.Questions, domain.Question{
			Prompt:      "Question " + string(rune('A'+i)),
			Options:     []string{"w", "x", "y", "z"},
			AnswerIndex: answer,
		})
		if i < score {
			payload.Answers[i] = answer
		}
	}
	require.NoError(t, s.results.Save(context.Background(), slot, payload))
}
