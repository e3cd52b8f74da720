package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Attempt verifies location against the selected branch geofence and,
	// when inside range, commits a check-in or check-out record
	Attempt(ctx context.Context, req AttemptRequest) (RecordResponse, error)

	// GetMyRecords retrieves records for the authenticated employee,
	// newest first
	GetMyRecords(ctx context.Context, limit int) ([]RecordResponse, error)

	// ListRecords retrieves records with filters (admin)
	ListRecords(ctx context.Context, filter RecordFilter) ([]RecordResponse, error)
}
