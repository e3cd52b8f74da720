package report

import (
	"context"

	"github.com/uniteam-app/uniteam-backend-go/internal/domain/attendance"
)

// ReportService defines business logic for scoped reporting access
type ReportService interface {
	// Login authenticates a report account and returns the attendance
	// rows its allowed jobs permit it to see
	Login(ctx context.Context, req LoginRequest) ([]Row, error)

	// Export renders the scoped attendance rows as an xlsx workbook
	Export(ctx context.Context, req LoginRequest) ([]byte, error)
}

// Row is a single exported attendance line, enriched with the
// employee's national ID for payroll matching.
type Row struct {
	Record     attendance.RecordResponse `json:"record"`
	NationalID string                    `json:"nationalId"`
}
