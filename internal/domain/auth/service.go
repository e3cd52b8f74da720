package auth

import (
	"context"
)

// AuthService defines business logic for identity and session operations
type AuthService interface {
	// Register creates a new employee account bound to the presenting
	// device and opens a session for it
	Register(ctx context.Context, req RegisterRequest) (SessionResponse, error)

	// Login authenticates an employee by national ID and password and
	// enforces the one-account-one-device binding rules
	Login(ctx context.Context, req LoginRequest) (SessionResponse, error)

	// AdminLogin authenticates the operator account held in app settings
	AdminLogin(ctx context.Context, req AdminLoginRequest) (SessionResponse, error)
}
