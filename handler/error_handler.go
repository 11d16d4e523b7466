package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/toast"
	"github.com/dmitrymomot/toastkit/pkg/validator"
)

// GenericErrorMessage is shown for failures that carry no user facing text.
const GenericErrorMessage = "An error occurred. Please try again."

// Notifier raises toasts on a page.
type Notifier interface {
	Notify(message string, sev toast.Severity) toast.Handle
}

// NotifierResolver finds the notifier of the page that sent the request.
// It returns nil when the request belongs to no page.
type NotifierResolver func(ctx Context) Notifier

// ErrorInfo is the classified form of a handler error.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Severity   toast.Severity
	LogLevel   slog.Level
}

// formatValidationErrors lists the failed fields for the user.
func formatValidationErrors(verrs validator.ValidationErrors) string {
	if verrs.IsEmpty() {
		return "Validation failed"
	}
	return verrs.Summary()
}

// ClassifyError maps err to a status code, a toast message and a severity.
// Client errors become warnings and everything else an error. Validation
// errors are answered with 400 and their field messages.
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    GenericErrorMessage,
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		if httpErr.Code < http.StatusInternalServerError {
			info.Message = http.StatusText(httpErr.Code)
		}
	}

	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		info.StatusCode = http.StatusBadRequest
		info.Message = formatValidationErrors(verrs)
	}

	if info.StatusCode >= http.StatusBadRequest && info.StatusCode < http.StatusInternalServerError {
		info.Severity = toast.SeverityWarning
		info.LogLevel = slog.LevelWarn
	} else {
		info.Severity = toast.SeverityError
		info.LogLevel = slog.LevelError
	}
	return info
}

// NewErrorHandler logs every error and reports it to the user. Datastar
// requests get a toast on their page; other requests a plain HTTP error.
func NewErrorHandler(log *slog.Logger, resolve NotifierResolver) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := ClassifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if IsDataStar(r) && resolve != nil {
			if n := resolve(ctx); n != nil {
				n.Notify(info.Message, info.Severity)
				ctx.ResponseWriter().WriteHeader(info.StatusCode)
				return
			}
		}
		http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
	}
}
