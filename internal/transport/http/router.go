package http

import (
	"net/http"

	"codequiz-service/internal/app"
	"go.uber.org/zap"
)

// NewRouter wires every endpoint of the quiz service.
func NewRouter(quizzes *app.QuizService, reporter *app.Reporter, certificates *app.CertificateService, log *zap.Logger) http.Handler {
	api := NewAPI(quizzes, reporter, certificates, log)
	ws := NewWSHandler(quizzes, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /categories", api.HandleCategories)
	mux.HandleFunc("GET /categories/{id}", api.HandleCategory)
	mux.HandleFunc("GET /quiz/{category}/ws", ws.ServeWS)
	mux.HandleFunc("GET /results", api.HandleResults)
	mux.HandleFunc("GET /certificate", api.HandleCertificateStatus)
	mux.HandleFunc("POST /certificate", api.HandleIssueCertificate)
	return mux
}
