package memory

import "errors"

var (
	ErrNilRecord = errors.New("nil record")
	ErrEmptyID   = errors.New("empty record id")
)
