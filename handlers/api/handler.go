package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/aditya-niranjan/smart-summarizer/errors"
	"github.com/aditya-niranjan/smart-summarizer/youtube"
)

// errorResponse is the failure envelope shared by all endpoints.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError

	if appErr, ok := asAppError(err); ok {
		code = appErr.Code
	} else if youtube.IsPermanent(err) {
		// A private or removed video is the client's problem, not ours.
		code = http.StatusBadRequest
	}

	logrus.WithFields(logrus.Fields{
		"error":      err,
		"status":     code,
		"request_id": r.Context().Value("request_id"),
		"path":       r.URL.Path,
		"method":     r.Method,
	}).Error("Request error")

	respondJSON(w, r, code, errorResponse{
		Success: false,
		Error:   errors.FriendlyMessage(err),
	})
}

func asAppError(err error) (*errors.AppError, bool) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
