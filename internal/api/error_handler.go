package api

import (
	stderrors "errors"
	"net/http"

	"github.com/vytor/lumina/internal/errors"
	"github.com/vytor/lumina/internal/logger"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	// Check if it's already an AppError
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		// Engine sentinels map onto their own codes, anything else is internal
		appErr = errors.FromEngine(err)
	}

	// Log based on status code
	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
