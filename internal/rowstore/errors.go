package rowstore

import "errors"

var (
	// ErrUnavailable marks transient backend failures. Callers may retry;
	// every other error from this package is permanent.
	ErrUnavailable = errors.New("row store unavailable")

	ErrUnknownTable   = errors.New("unknown table")
	ErrRowOutOfRange  = errors.New("row index out of range")
	ErrCellOutOfRange = errors.New("cell index out of range")
)
