package report

import "errors"

var (
	ErrAccountNotFound    = errors.New("report account not found")
	ErrInvalidCredentials = errors.New("invalid report username or password")
)
