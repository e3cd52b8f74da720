package auth

import (
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/user"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	FullName        string  `json:"full_name"`
	NationalID      string  `json:"national_id"`
	Password        string  `json:"password"`
	JobTitle        string  `json:"job_title"`
	DefaultBranchID *string `json:"default_branch_id,omitempty"`
	DeviceID        string  `json:"device_id"`
}

// Validate applies the local rules in their fixed order and returns the
// first violation: completeness, then national id shape, then password
// length. Uniqueness rules run later, in the service, against the registry.
func (r *RegisterRequest) Validate() error {
	if validator.IsEmpty(r.FullName) || validator.IsEmpty(r.NationalID) ||
		validator.IsEmpty(r.Password) || validator.IsEmpty(r.JobTitle) {
		return ErrIncompleteRegistration
	}
	if !validator.IsValidNationalID(r.NationalID) {
		return ErrInvalidNationalID
	}
	if len(r.Password) < 6 {
		return ErrPasswordTooShort
	}
	return nil
}

type LoginRequest struct {
	NationalID string `json:"national_id"`
	Password   string `json:"password"`
	DeviceID   string `json:"device_id"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Token     string            `json:"token"`
	ExpiresAt int64             `json:"expires_at"`
	User      user.UserResponse `json:"user"`
}
