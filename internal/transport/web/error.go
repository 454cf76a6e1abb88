package web

import "errors"

var (
	ErrPanic       = errors.New("panic")
	ErrMalformBody = errors.New("malformed request body")
)
