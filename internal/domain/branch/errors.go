package branch

import "errors"

var (
	ErrBranchNotFound = errors.New("branch not found")
	ErrInvalidRadius  = errors.New("branch radius must be greater than zero")
)
