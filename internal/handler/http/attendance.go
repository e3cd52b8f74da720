package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/uniteam-app/uniteam-backend-go/internal/domain/attendance"
	"github.com/uniteam-app/uniteam-backend-go/internal/handler/http/response"
)

const defaultMyRecordsLimit = 50

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetMyRecords(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.attempt(w, r, attendance.TypeCheckIn)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.attempt(w, r, attendance.TypeCheckOut)
}

func (h *AttendanceHandlerImpl) attempt(w http.ResponseWriter, r *http.Request, recordType attendance.RecordType) {
	var attemptReq attendance.AttemptRequest

	if err := json.NewDecoder(r.Body).Decode(&attemptReq); err != nil {
		slog.Error("Attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	attemptReq.Type = recordType

	record, err := h.attendanceService.Attempt(r.Context(), attemptReq)
	if err != nil {
		slog.Error("Attendance attempt rejected", "type", recordType, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", record)
}

// GetMyRecords implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	limit := defaultMyRecordsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	records, err := h.attendanceService.GetMyRecords(r.Context(), limit)
	if err != nil {
		slog.Error("GetMyRecords service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListRecords implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RecordFilter{
		UserID: r.URL.Query().Get("user_id"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, "limit must be a positive integer", nil)
			return
		}
		filter.Limit = parsed
	}

	records, err := h.attendanceService.ListRecords(r.Context(), filter)
	if err != nil {
		slog.Error("ListRecords service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
