package toast

import "errors"

var (
	// ErrUnknownSeverity is returned by ParseSeverity for unrecognized tags.
	ErrUnknownSeverity = errors.New("unknown severity")

	// ErrNilDocument is returned by Attach when no document is given.
	ErrNilDocument = errors.New("nil document")

	// ErrManagerClosed is returned by Attach after Close.
	ErrManagerClosed = errors.New("toast manager closed")

	// ErrSurfaceMissing is returned by a document asked to append a node
	// before the surface was mounted.
	ErrSurfaceMissing = errors.New("toast surface not mounted")

	// ErrDuplicateNode is returned by a document asked to append a node id
	// it already holds.
	ErrDuplicateNode = errors.New("duplicate toast node")
)
