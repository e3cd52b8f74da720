package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	syncdomain "github.com/uniteam-app/uniteam-backend-go/internal/domain/sync"
)

type SyncJobs struct {
	syncService syncdomain.SyncService
}

func NewSyncJobs(syncService syncdomain.SyncService) *SyncJobs {
	return &SyncJobs{syncService: syncService}
}

func (j *SyncJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("remote_pull", 5*time.Minute, j.PullRemote)
	scheduler.AddJob("outbox_dispatch", 1*time.Minute, j.DispatchOutbox)
}

// PullRemote refreshes the local collections from the remote endpoint.
// A run that finds nothing configured or a sync already in flight is a
// no-op, not a failure.
func (j *SyncJobs) PullRemote(ctx context.Context) error {
	err := j.syncService.Pull(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, syncdomain.ErrNoSyncURL), errors.Is(err, syncdomain.ErrBusy):
		return nil
	default:
		slog.Warn("Cron: remote pull failed, keeping local data", "error", err)
		return fmt.Errorf("remote pull: %w", err)
	}
}

// DispatchOutbox drains queued writes toward the remote endpoint.
func (j *SyncJobs) DispatchOutbox(ctx context.Context) error {
	if err := j.syncService.DispatchOutbox(ctx); err != nil {
		return fmt.Errorf("outbox dispatch: %w", err)
	}
	return nil
}
