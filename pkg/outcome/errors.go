package outcome

import "errors"

var (
	// ErrNoSelection is returned by BulkAction when no ids are given.
	ErrNoSelection = errors.New("no items selected")

	// ErrUnexpectedResponse is returned when the collaborator answers with
	// something other than a JSON result.
	ErrUnexpectedResponse = errors.New("unexpected collaborator response")

	// ErrRequest wraps transport failures.
	ErrRequest = errors.New("collaborator request failed")
)
