package binder

import "errors"

var (
	// ErrBinderNotApplicable tells Wrap to skip a binder for this request.
	ErrBinderNotApplicable  = errors.New("binder not applicable")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidPath          = errors.New("invalid path parameter")
	ErrInvalidSignals       = errors.New("invalid datastar signals")
)
