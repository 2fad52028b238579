package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorBody is the wire format for failures: {success:false, error, details?}
type errorBody struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Handler converts errors into structured HTTP responses at the request
// boundary. Nothing escapes as an unhandled fault; unknown errors become a
// generic 500 with the cause logged server-side only.
type Handler struct {
	logger *zap.Logger
	debug  bool
}

// NewHandler creates a new error handler
func NewHandler(logger *zap.Logger, debug bool) *Handler {
	return &Handler{
		logger: logger,
		debug:  debug,
	}
}

// Respond processes an error and sends the structured failure response
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	appErr := GetAppError(err)
	if appErr == nil {
		h.logger.Error("unhandled error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, errorBody{
			Success: false,
			Error:   "Internal server error",
		})
		return
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	h.log(r, appErr, status)

	body := errorBody{
		Success: false,
		Error:   appErr.Message,
		Details: appErr.Details,
	}
	// Infrastructure faults keep their cause out of the response body
	if status >= http.StatusInternalServerError && !h.debug {
		body.Error = "Internal server error"
		body.Details = nil
	}

	writeError(w, status, body)
}

func (h *Handler) log(r *http.Request, appErr *AppError, status int) {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("errorType", string(appErr.Type)),
		zap.Int("status", status),
	}
	if appErr.Cause != nil {
		fields = append(fields, zap.NamedError("cause", appErr.Cause))
	}

	switch {
	case status >= http.StatusInternalServerError:
		h.logger.Error(appErr.Message, fields...)
	case status == http.StatusConflict:
		h.logger.Info(appErr.Message, fields...)
	default:
		h.logger.Warn(appErr.Message, fields...)
	}
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
