package store

import "errors"

// store errors
var (
	ErrStoreClosed = errors.New("store closed")
)
