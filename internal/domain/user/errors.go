package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrNationalIDExists       = errors.New("national id already registered")
	ErrDeviceAlreadyBound     = errors.New("device already belongs to another employee")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
