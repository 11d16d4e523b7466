package outcome

import "github.com/dmitrymomot/toastkit/pkg/toast"

// Messages shown when the collaborator does not supply one.
const (
	MsgFormSuccess  = "Operation completed successfully"
	MsgFormFailure  = "Operation failed"
	MsgBulkFailure  = "Action failed"
	MsgTransport    = "An error occurred. Please try again."
	MsgNoSelection  = "Please select items to perform this action"
	bulkSuccessTmpl = "%s completed successfully"
)

// Result is the JSON payload returned by the collaborator for form
// submissions and bulk actions.
type Result struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	Redirect    string `json:"redirect,omitempty"`
	ReloadTable bool   `json:"reload_table,omitempty"`
}

// Notifier raises toasts. *toast.Manager satisfies it.
type Notifier interface {
	Notify(message string, sev toast.Severity) toast.Handle
}

// Report turns res into a toast: successMsg on success, otherwise the
// collaborator's message or failureMsg when it sent none.
func Report(n Notifier, res Result, successMsg, failureMsg string) toast.Handle {
	if res.Success {
		return n.Notify(successMsg, toast.SeveritySuccess)
	}
	if res.Message != "" {
		return n.Notify(res.Message, toast.SeverityError)
	}
	return n.Notify(failureMsg, toast.SeverityError)
}
