package flash

import "errors"

var (
	// ErrEmptyKey is returned when a queue key is empty.
	ErrEmptyKey = errors.New("flash: empty key")

	// ErrDecode is returned when a stored message cannot be decoded.
	ErrDecode = errors.New("flash: failed to decode message")
)
