package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// NotificationID records a toast id under "notification_id".
func NotificationID(id string) slog.Attr {
	return slog.String("notification_id", id)
}

// Severity records a toast severity under "severity".
func Severity(sev string) slog.Attr {
	return slog.String("severity", sev)
}

// PageID records the page a toast belongs to under "page_id".
func PageID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("page_id", id)
}

// Action records a bulk action name under "action".
func Action(name string) slog.Attr {
	return slog.String("action", name)
}

// Duration records a duration under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
