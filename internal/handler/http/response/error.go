package response

import (
	"errors"
	"net/http"

	"github.com/uniteam-app/uniteam-backend-go/internal/domain/attendance"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/auth"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/branch"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/job"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/report"
	syncdomain "github.com/uniteam-app/uniteam-backend-go/internal/domain/sync"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/user"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var deviceConflict *auth.DeviceConflictError
	if errors.As(err, &deviceConflict) {
		Conflict(w, deviceConflict.Error())
		return
	}

	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		Forbidden(w, outOfRange.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrOffline):
		ServiceUnavailable(w, err.Error())
	case errors.Is(err, auth.ErrNotConnected):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrIncompleteRegistration),
		errors.Is(err, auth.ErrInvalidNationalID),
		errors.Is(err, auth.ErrPasswordTooShort):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidAdminCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrDeviceMismatch):
		Forbidden(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrNationalIDExists):
		Conflict(w, "National ID already registered")
	case errors.Is(err, user.ErrDeviceAlreadyBound):
		Conflict(w, "Device already belongs to another employee")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Registry domain errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrMissingInput):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrBranchGone):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Report domain errors
	case errors.Is(err, report.ErrAccountNotFound):
		NotFound(w, "Report account not found")
	case errors.Is(err, report.ErrInvalidCredentials):
		Unauthorized(w, err.Error())

	// Sync domain errors
	case errors.Is(err, syncdomain.ErrNoSyncURL):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, syncdomain.ErrBusy):
		Conflict(w, err.Error())
	case errors.Is(err, syncdomain.ErrInvalidBootstrapLink):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
