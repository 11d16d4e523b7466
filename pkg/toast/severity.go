package toast

import (
	"fmt"
	"strings"
)

// Severity classifies a notification. It only affects presentation.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ParseSeverity converts a caller supplied tag into a Severity.
// An empty string yields SeverityInfo.
func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case "":
		return SeverityInfo, nil
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return sev, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
	}
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// orInfo falls back to info for anything unrecognized.
func (s Severity) orInfo() Severity {
	if s.Valid() {
		return s
	}
	return SeverityInfo
}

// Class returns the CSS class that styles a toast of this severity.
func (s Severity) Class() string {
	return "toast-" + string(s.orInfo())
}

// Icon returns the Font Awesome icon name for this severity.
func (s Severity) Icon() string {
	switch s.orInfo() {
	case SeveritySuccess:
		return "check-circle"
	case SeverityWarning:
		return "exclamation-triangle"
	case SeverityError:
		return "exclamation-circle"
	default:
		return "info-circle"
	}
}

// Title returns the human readable heading for this severity.
func (s Severity) Title() string {
	switch s.orInfo() {
	case SeveritySuccess:
		return "Success"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return "Info"
	}
}
