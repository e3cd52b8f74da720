package attendance

import (
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/validator"
)

// AttemptRequest carries one check-in/check-out attempt. Coordinates are
// pointers so an absent location can be told apart from (0, 0).
type AttemptRequest struct {
	Type      RecordType `json:"type"`
	BranchID  string     `json:"branch_id"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
}

func (r *AttemptRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != TypeCheckIn && r.Type != TypeCheckOut {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be check-in or check-out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	UserName   string     `json:"user_name"`
	UserJob    string     `json:"user_job,omitempty"`
	BranchID   string     `json:"branch_id"`
	BranchName string     `json:"branch_name"`
	Type       RecordType `json:"type"`
	Timestamp  string     `json:"timestamp"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
}

// RecordFilter narrows report listings. Jobs scopes records to the given job
// titles; an empty slice matches nothing for report accounts.
type RecordFilter struct {
	UserID string
	Jobs   []string
	Limit  int
}
