package http

import (
	"log/slog"
	"net/http"

	syncdomain "github.com/uniteam-app/uniteam-backend-go/internal/domain/sync"
	"github.com/uniteam-app/uniteam-backend-go/internal/handler/http/response"
)

type SyncHandler interface {
	Pull(w http.ResponseWriter, r *http.Request)
	Push(w http.ResponseWriter, r *http.Request)
	Bootstrap(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type SyncHandlerImpl struct {
	syncService syncdomain.SyncService
}

func NewSyncHandler(syncService syncdomain.SyncService) SyncHandler {
	return &SyncHandlerImpl{syncService: syncService}
}

// Pull implements SyncHandler.
func (h *SyncHandlerImpl) Pull(w http.ResponseWriter, r *http.Request) {
	if err := h.syncService.Pull(r.Context()); err != nil {
		slog.Error("Manual pull failed", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Manual pull completed")
	response.SuccessWithMessage(w, "Local data refreshed from remote", nil)
}

// Push implements SyncHandler.
func (h *SyncHandlerImpl) Push(w http.ResponseWriter, r *http.Request) {
	if err := h.syncService.Push(r.Context()); err != nil {
		slog.Error("Manual push failed", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Manual push completed")
	response.SuccessWithMessage(w, "Local data uploaded to remote", nil)
}

// Bootstrap implements SyncHandler. The link query parameter carries the
// base64-encoded endpoint URL from the setup deep link.
func (h *SyncHandlerImpl) Bootstrap(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("link")
	if link == "" {
		response.BadRequest(w, "link query parameter is required", nil)
		return
	}

	if err := h.syncService.Bootstrap(r.Context(), link); err != nil {
		slog.Error("Bootstrap failed", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Sync endpoint bootstrapped")
	response.SuccessWithMessage(w, "Sync endpoint configured", nil)
}

// Status implements SyncHandler.
func (h *SyncHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.syncService.Status(r.Context())
	if err != nil {
		slog.Error("Status service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}
