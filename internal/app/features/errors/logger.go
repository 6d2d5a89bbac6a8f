// internal/app/features/errors/logger.go
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/dalemusser/presensihub/internal/app/system/apperr"
	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and renders the matching
// error page. Handlers return right after calling it.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	f := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("kind", apperr.Kind(err)),
		zap.Error(err),
	}
	if u, ok := auth.CurrentUser(r); ok {
		f = append(f, zap.String("sid", u.SID), zap.String("role", u.Role))
		if u.MentorID != nil {
			f = append(f, zap.Int("mentor_id", *u.MentorID))
		}
	}
	return f
}

// LogServerError logs at error level and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, e.fields(r, err)...)
	RenderError(w, r, http.StatusInternalServerError, "Terjadi kesalahan", userMsg, backURL)
}

// LogBadRequest logs at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, e.fields(r, err)...)
	RenderError(w, r, http.StatusBadRequest, "Permintaan tidak valid", userMsg, backURL)
}

// LogUnavailable logs at error level and renders a 503 page. Used when the
// spreadsheet cannot be reached.
func (e *ErrorLogger) LogUnavailable(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, e.fields(r, err)...)
	RenderError(w, r, http.StatusServiceUnavailable, "Layanan tidak tersedia", userMsg, backURL)
}

// LogStoreError picks the page from the error's kind and shows the
// apperr.Message text.
func (e *ErrorLogger) LogStoreError(w http.ResponseWriter, r *http.Request, msg string, err error, backURL string) {
	userMsg := apperr.Message(err)
	switch StatusFor(err) {
	case http.StatusServiceUnavailable:
		e.LogUnavailable(w, r, msg, err, userMsg, backURL)
	case http.StatusBadRequest:
		e.LogBadRequest(w, r, msg, err, userMsg, backURL)
	case http.StatusNotFound:
		e.log.Info(msg, e.fields(r, err)...)
		RenderError(w, r, http.StatusNotFound, "Data tidak ditemukan", userMsg, backURL)
	case http.StatusConflict:
		e.log.Warn(msg, e.fields(r, err)...)
		RenderError(w, r, http.StatusConflict, "Data berubah", userMsg, backURL)
	default:
		e.LogServerError(w, r, msg, err, userMsg, backURL)
	}
}

// StatusFor maps a store error to the status of the page that reports it.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.Is(err, apperr.ErrConnection):
		return http.StatusServiceUnavailable
	case stderrors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case stderrors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, apperr.ErrPositionMismatch):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// LogFormError logs a store failure the handler shows inline on its form
// and returns the status to write with the re-rendered form.
func (e *ErrorLogger) LogFormError(r *http.Request, msg string, err error) int {
	status := StatusFor(err)
	switch {
	case status >= http.StatusInternalServerError:
		e.log.Error(msg, e.fields(r, err)...)
	case status == http.StatusConflict:
		e.log.Warn(msg, e.fields(r, err)...)
	default:
		e.log.Info(msg, e.fields(r, err)...)
	}
	return status
}
