package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/uniteam-app/uniteam-backend-go/internal/domain/report"
	"github.com/uniteam-app/uniteam-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// Login implements ReportHandler. A successful login immediately returns
// the rows the account is scoped to; there is no separate session.
func (h *ReportHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq report.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rows, err := h.reportService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Report login failed", "username", loginReq.Username, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// Export implements ReportHandler. Credentials ride in the body the same
// way the login does; the result is a binary workbook, not the JSON envelope.
func (h *ReportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	var loginReq report.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	workbook, err := h.reportService.Export(r.Context(), loginReq)
	if err != nil {
		slog.Error("Report export failed", "username", loginReq.Username, "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(workbook); err != nil {
		slog.Error("Report export write failed", "error", err)
	}
}
