package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/attendance"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/branch"
	syncdomain "github.com/uniteam-app/uniteam-backend-go/internal/domain/sync"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/geo"
)

type AttendanceServiceImpl struct {
	attendance.RecordRepository
	branch.BranchRepository
	outboxRepo syncdomain.OutboxRepository
}

func NewAttendanceService(
	recordRepo attendance.RecordRepository,
	branchRepo branch.BranchRepository,
	outboxRepo syncdomain.OutboxRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		RecordRepository: recordRepo,
		BranchRepository: branchRepo,
		outboxRepo:       outboxRepo,
	}
}

// Attempt implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Attempt(ctx context.Context, req attendance.AttemptRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return attendance.RecordResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}
	fullName, _ := claims["full_name"].(string)
	jobTitle, _ := claims["job_title"].(string)
	nationalID, _ := claims["national_id"].(string)

	// A branch selection and a live location fix are both required before
	// any verification runs.
	if req.BranchID == "" || req.Latitude == nil || req.Longitude == nil {
		return attendance.RecordResponse{}, attendance.ErrMissingInput
	}

	branchData, err := a.BranchRepository.GetByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branch.ErrBranchNotFound) {
			return attendance.RecordResponse{}, attendance.ErrBranchGone
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to load branch: %w", err)
	}

	distance := geo.Distance(*req.Latitude, *req.Longitude, branchData.Latitude, branchData.Longitude)
	if distance > float64(branchData.RadiusMeters) {
		return attendance.RecordResponse{}, &attendance.OutOfRangeError{
			DistanceMeters: int(math.Round(distance)),
			RadiusMeters:   branchData.RadiusMeters,
		}
	}

	record := attendance.Record{
		ID:         uuid.NewString(),
		UserID:     userID,
		UserName:   fullName,
		UserJob:    jobTitle,
		BranchID:   branchData.ID,
		BranchName: branchData.Name,
		Type:       req.Type,
		Timestamp:  time.Now().Format(time.RFC3339),
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
	}

	created, err := a.RecordRepository.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to save attendance record: %w", err)
	}

	// The local commit is the source of truth; remote delivery is queued and
	// never reverses it.
	if err := a.enqueueRecord(ctx, created, nationalID); err != nil {
		slog.Warn("failed to queue attendance record for delivery", "record_id", created.ID, "error", err)
	}

	return toResponse(created), nil
}

// GetMyRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyRecords(ctx context.Context, limit int) ([]attendance.RecordResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("user_id claim is missing or invalid")
	}

	records, err := a.RecordRepository.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return toResponses(records), nil
}

// ListRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) ([]attendance.RecordResponse, error) {
	records, err := a.RecordRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return toResponses(records), nil
}

func (a *AttendanceServiceImpl) enqueueRecord(ctx context.Context, record attendance.Record, nationalID string) error {
	body, err := json.Marshal(map[string]any{
		"action":     syncdomain.ActionSaveAttendance,
		"id":         record.ID,
		"userId":     record.UserID,
		"userName":   record.UserName,
		"userJob":    record.UserJob,
		"nationalId": nationalID,
		"branchId":   record.BranchID,
		"branchName": record.BranchName,
		"type":       string(record.Type),
		"timestamp":  record.Timestamp,
		"latitude":   record.Latitude,
		"longitude":  record.Longitude,
	})
	if err != nil {
		return fmt.Errorf("marshal attendance payload: %w", err)
	}
	return a.outboxRepo.Enqueue(ctx, syncdomain.ActionSaveAttendance, body)
}

func toResponse(record attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:         record.ID,
		UserID:     record.UserID,
		UserName:   record.UserName,
		UserJob:    record.UserJob,
		BranchID:   record.BranchID,
		BranchName: record.BranchName,
		Type:       record.Type,
		Timestamp:  record.Timestamp,
		Latitude:   record.Latitude,
		Longitude:  record.Longitude,
	}
}

func toResponses(records []attendance.Record) []attendance.RecordResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}
	return responses
}
