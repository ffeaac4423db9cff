package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"codequiz-service/internal/domain"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrQuizNotFound), errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrResultsNotFound):
		return http.StatusSeeOther
	case errors.Is(err, domain.ErrNameRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotEligible):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch status := statusFor(err); status {
	case http.StatusSeeOther:
		// nothing to show without a completed attempt: back to the landing page
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case http.StatusNotFound:
		if errors.Is(err, domain.ErrQuizNotFound) {
			writeJSON(w, status, errorResponse{Error: "quiz not found"})
			return
		}
		writeJSON(w, status, errorResponse{Error: "category not found"})
	case http.StatusInternalServerError:
		if errors.Is(err, domain.ErrRenderFailed) {
			writeJSON(w, status, errorResponse{Error: "could not generate certificate, please try again"})
			return
		}
		writeJSON(w, status, errorResponse{Error: "request failed"})
	default:
		writeJSON(w, status, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
