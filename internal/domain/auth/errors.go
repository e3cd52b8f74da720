package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrOffline rejects registration/login while the sheet endpoint is
	// unreachable: authenticating against a stale cache could accept
	// credentials revoked remotely.
	ErrOffline = errors.New("sync endpoint unreachable; try again when online")

	// ErrNotConnected rejects employee flows before a sync URL is configured.
	ErrNotConnected = errors.New("application is not linked to a company yet")

	ErrIncompleteRegistration = errors.New("complete all fields and pick a job")
	ErrInvalidNationalID      = errors.New("national id must be exactly 14 digits")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")

	// ErrInvalidCredentials deliberately does not distinguish a wrong
	// national id from a wrong password.
	ErrInvalidCredentials = errors.New("invalid national id or password")

	// ErrDeviceMismatch means the account is locked to a different device;
	// only an admin reset clears it.
	ErrDeviceMismatch = errors.New("account is locked to the device it first registered on")

	ErrInvalidAdminCredentials = errors.New("invalid admin username or password")

	ErrInvalidToken = errors.New("invalid or expired token")
)

// DeviceConflictError rejects a login or registration from a device that
// already belongs to a different national id.
type DeviceConflictError struct {
	OwnerName string
}

func (e *DeviceConflictError) Error() string {
	return fmt.Sprintf("this device is already registered to %s", e.OwnerName)
}
