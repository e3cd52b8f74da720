package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/appconfig"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/branch"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/job"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/report"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/user"
	"github.com/uniteam-app/uniteam-backend-go/internal/handler/http/response"
	"github.com/uniteam-app/uniteam-backend-go/internal/service/master"
)

type MasterHandler interface {
	CreateBranch(w http.ResponseWriter, r *http.Request)
	GetBranch(w http.ResponseWriter, r *http.Request)
	ListBranches(w http.ResponseWriter, r *http.Request)
	UpdateBranch(w http.ResponseWriter, r *http.Request)
	DeleteBranch(w http.ResponseWriter, r *http.Request)

	CreateJob(w http.ResponseWriter, r *http.Request)
	GetJob(w http.ResponseWriter, r *http.Request)
	ListJobs(w http.ResponseWriter, r *http.Request)
	UpdateJob(w http.ResponseWriter, r *http.Request)
	DeleteJob(w http.ResponseWriter, r *http.Request)

	GetUser(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
	ResetDevice(w http.ResponseWriter, r *http.Request)

	CreateReportAccount(w http.ResponseWriter, r *http.Request)
	GetReportAccount(w http.ResponseWriter, r *http.Request)
	ListReportAccounts(w http.ResponseWriter, r *http.Request)
	UpdateReportAccount(w http.ResponseWriter, r *http.Request)
	DeleteReportAccount(w http.ResponseWriter, r *http.Request)

	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{masterService: masterService}
}

// ==================== BRANCH HANDLERS ====================

func (h *masterHandlerImpl) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req branch.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateBranch(r.Context(), req)
	if err != nil {
		slog.Error("CreateBranch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Branch created", created)
}

func (h *masterHandlerImpl) GetBranch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.masterService.GetBranch(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

func (h *masterHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.masterService.ListBranches(r.Context())
	if err != nil {
		slog.Error("ListBranches service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, branches)
}

func (h *masterHandlerImpl) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req branch.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := h.masterService.UpdateBranch(r.Context(), req); err != nil {
		slog.Error("UpdateBranch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch updated", nil)
}

func (h *masterHandlerImpl) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.DeleteBranch(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch deleted", nil)
}

// ==================== JOB HANDLERS ====================

func (h *masterHandlerImpl) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req job.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateJob(r.Context(), req)
	if err != nil {
		slog.Error("CreateJob service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Job created", created)
}

func (h *masterHandlerImpl) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.masterService.GetJob(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

func (h *masterHandlerImpl) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.masterService.ListJobs(r.Context())
	if err != nil {
		slog.Error("ListJobs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, jobs)
}

func (h *masterHandlerImpl) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req job.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := h.masterService.UpdateJob(r.Context(), req); err != nil {
		slog.Error("UpdateJob service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job updated", nil)
}

func (h *masterHandlerImpl) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.DeleteJob(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job deleted", nil)
}

// ==================== USER HANDLERS ====================

func (h *masterHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.masterService.GetUser(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

func (h *masterHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.masterService.ListUsers(r.Context())
	if err != nil {
		slog.Error("ListUsers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

func (h *masterHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := h.masterService.UpdateUser(r.Context(), req); err != nil {
		slog.Error("UpdateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated", nil)
}

func (h *masterHandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.DeleteUser(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deleted", nil)
}

func (h *masterHandlerImpl) ResetDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.ResetDevice(r.Context(), id); err != nil {
		slog.Error("ResetDevice service error", "user_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Device binding reset", "user_id", id)
	response.SuccessWithMessage(w, "Device binding reset; next login will adopt a new device", nil)
}

// ==================== REPORT ACCOUNT HANDLERS ====================

func (h *masterHandlerImpl) CreateReportAccount(w http.ResponseWriter, r *http.Request) {
	var req report.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateReportAccount(r.Context(), req)
	if err != nil {
		slog.Error("CreateReportAccount service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report account created", created)
}

func (h *masterHandlerImpl) GetReportAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.masterService.GetReportAccount(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

func (h *masterHandlerImpl) ListReportAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.masterService.ListReportAccounts(r.Context())
	if err != nil {
		slog.Error("ListReportAccounts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, accounts)
}

func (h *masterHandlerImpl) UpdateReportAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req report.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := h.masterService.UpdateReportAccount(r.Context(), req); err != nil {
		slog.Error("UpdateReportAccount service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report account updated", nil)
}

func (h *masterHandlerImpl) DeleteReportAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.masterService.DeleteReportAccount(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report account deleted", nil)
}

// ==================== SETTINGS HANDLERS ====================

func (h *masterHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.masterService.GetSettings(r.Context())
	if err != nil {
		slog.Error("GetSettings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

func (h *masterHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req appconfig.UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	settings, err := h.masterService.UpdateSettings(r.Context(), req)
	if err != nil {
		slog.Error("UpdateSettings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings saved", settings)
}
