package http

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"codequiz-service/internal/app"
	"codequiz-service/internal/domain"
	"go.uber.org/zap"
)

// API serves the catalog, results and certificate endpoints.
type API struct {
	quizzes      *app.QuizService
	reporter     *app.Reporter
	certificates *app.CertificateService
	log          *zap.Logger
}

func NewAPI(quizzes *app.QuizService, reporter *app.Reporter, certificates *app.CertificateService, log *zap.Logger) *API {
	return &API{quizzes: quizzes, reporter: reporter, certificates: certificates, log: log}
}

type errorResponse struct {
	Error string `json:"error"`
}

type certificateStatus struct {
	Available  bool   `json:"available"`
	Category   string `json:"category"`
	Percentage int    `json:"percentage"`
	Message    string `json:"message,omitempty"`
}

type certificateRequest struct {
	Name string `json:"name"`
}

func (a *API) HandleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.quizzes.Categories(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (a *API) HandleCategory(w http.ResponseWriter, r *http.Request) {
	category, err := a.quizzes.Category(r.Context(), r.PathValue("id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// HandleResults returns the review of the caller's latest attempt, or sends
// the caller back to the landing page when there is none.
func (a *API) HandleResults(w http.ResponseWriter, r *http.Request) {
	review, err := a.reporter.Report(r.Context(), slotFromRequest(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// HandleCertificateStatus tells the client whether a certificate can be issued.
func (a *API) HandleCertificateStatus(w http.ResponseWriter, r *http.Request) {
	payload, err := a.certificates.Eligibility(r.Context(), slotFromRequest(r))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, certificateStatus{Available: true, Category: payload.Category, Percentage: payload.Percentage})
	case errors.Is(err, domain.ErrNotEligible):
		writeJSON(w, http.StatusOK, certificateStatus{
			Category:   payload.Category,
			Percentage: payload.Percentage,
			Message:    domain.ErrNotEligible.Error(),
		})
	default:
		a.fail(w, r, err)
	}
}

// HandleIssueCertificate renders the certificate PNG as a download.
func (a *API) HandleIssueCertificate(w http.ResponseWriter, r *http.Request) {
	var req certificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	issued, err := a.certificates.Issue(r.Context(), slotFromRequest(r), req.Name)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": issued.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(issued.Image)))
	w.Header().Set("X-Certificate-Id", issued.Certificate.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(issued.Image)
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := statusFor(err); status >= http.StatusInternalServerError {
		a.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeServiceError(w, r, err)
}

func slotFromRequest(r *http.Request) string {
	return app.SlotFor(r.URL.Query().Get("clientId"))
}
