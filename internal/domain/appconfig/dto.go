package appconfig

import (
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/validator"
)

type ConfigResponse struct {
	SyncURL         string  `json:"sync_url"`
	GoogleSheetLink string  `json:"google_sheet_link"`
	AdminUsername   string  `json:"admin_username"`
	LastUpdated     *string `json:"last_updated,omitempty"`
}

type UpdateConfigRequest struct {
	SyncURL         *string `json:"sync_url,omitempty"`
	GoogleSheetLink *string `json:"google_sheet_link,omitempty"`
	AdminUsername   *string `json:"admin_username,omitempty"`
	AdminPassword   *string `json:"admin_password,omitempty"`
}

func (r *UpdateConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SyncURL != nil && !validator.IsEmpty(*r.SyncURL) && !validator.IsValidSyncURL(*r.SyncURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "sync_url",
			Message: "sync_url must start with http:// or https://",
		})
	}

	if r.AdminUsername != nil && validator.IsEmpty(*r.AdminUsername) {
		errs = append(errs, validator.ValidationError{
			Field:   "admin_username",
			Message: "admin_username must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
