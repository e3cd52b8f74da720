package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uniteam-app/uniteam-backend-go/internal/domain/attendance"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/report"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/user"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Attendance"

type ReportServiceImpl struct {
	accountRepo report.AccountRepository
	recordRepo  attendance.RecordRepository
	userRepo    user.UserRepository
}

func NewReportService(
	accountRepo report.AccountRepository,
	recordRepo attendance.RecordRepository,
	userRepo user.UserRepository,
) report.ReportService {
	return &ReportServiceImpl{
		accountRepo: accountRepo,
		recordRepo:  recordRepo,
		userRepo:    userRepo,
	}
}

// Login implements report.ReportService.
func (s *ReportServiceImpl) Login(ctx context.Context, req report.LoginRequest) ([]report.Row, error) {
	account, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.scopedRows(ctx, account)
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.LoginRequest) ([]byte, error) {
	account, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	rows, err := s.scopedRows(ctx, account)
	if err != nil {
		return nil, err
	}

	return renderWorkbook(rows)
}

func (s *ReportServiceImpl) authenticate(ctx context.Context, req report.LoginRequest) (report.Account, error) {
	account, err := s.accountRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, report.ErrAccountNotFound) {
			return report.Account{}, report.ErrInvalidCredentials
		}
		return report.Account{}, fmt.Errorf("failed to look up report account: %w", err)
	}
	if account.Password != req.Password {
		return report.Account{}, report.ErrInvalidCredentials
	}
	return account, nil
}

// scopedRows returns only the records whose job titles the account is
// allowed to see. An account with no allowed jobs sees nothing.
func (s *ReportServiceImpl) scopedRows(ctx context.Context, account report.Account) ([]report.Row, error) {
	if len(account.AllowedJobs) == 0 {
		return []report.Row{}, nil
	}

	records, err := s.recordRepo.List(ctx, attendance.RecordFilter{Jobs: account.AllowedJobs})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	nationalIDs, err := s.nationalIDsByUser(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]report.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, report.Row{
			Record: attendance.RecordResponse{
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
			},
			NationalID: nationalIDs[record.UserID],
		})
	}
	return rows, nil
}

func (s *ReportServiceImpl) nationalIDsByUser(ctx context.Context) (map[string]string, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	byID := make(map[string]string, len(users))
	for _, u := range users {
		byID[u.ID] = u.NationalID
	}
	return byID, nil
}

func renderWorkbook(rows []report.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Date", "Time", "Name", "National ID", "Job", "Branch", "Type", "Latitude", "Longitude"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		date, clock := splitTimestamp(row.Record.Timestamp)
		values := []any{
			date,
			clock,
			row.Record.UserName,
			row.NationalID,
			row.Record.UserJob,
			row.Record.BranchName,
			string(row.Record.Type),
			row.Record.Latitude,
			row.Record.Longitude,
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// splitTimestamp breaks an RFC3339 timestamp into date and clock columns.
// Malformed values land verbatim in the date column rather than vanish.
func splitTimestamp(timestamp string) (string, string) {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp, ""
	}
	return t.Format("2006-01-02"), t.Format("15:04:05")
}
