package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// AdminID is the fixed id of the synthetic admin user. The admin is derived
// from AppConfig credentials and never persisted to the registry.
const AdminID = "admin-id"

type User struct {
	ID               string
	FullName         string
	NationalID       string
	Password         string
	Role             Role
	DeviceID         *string
	JobTitle         string
	DefaultBranchID  *string
	RegistrationDate *time.Time
}

// IsBound reports whether the account is locked to a device. A bound account
// only logs in from the device holding that token until an admin resets it.
func (u *User) IsBound() bool {
	return u.DeviceID != nil && *u.DeviceID != ""
}

// BoundTo reports whether the account is bound to the given device token.
func (u *User) BoundTo(deviceID string) bool {
	return u.IsBound() && *u.DeviceID == deviceID
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
