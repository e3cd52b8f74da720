package sync

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	stdsync "sync"
	"sync/atomic"
	"time"

	"github.com/uniteam-app/uniteam-backend-go/internal/domain/appconfig"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/attendance"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/branch"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/job"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/report"
	syncdomain "github.com/uniteam-app/uniteam-backend-go/internal/domain/sync"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/user"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/database"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/sheet"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/validator"
	"github.com/uniteam-app/uniteam-backend-go/internal/repository/postgresql"
)

const dispatchBatchSize = 50

type SyncServiceImpl struct {
	branchRepo  branch.BranchRepository
	jobRepo     job.JobRepository
	userRepo    user.UserRepository
	recordRepo  attendance.RecordRepository
	accountRepo report.AccountRepository
	configRepo  appconfig.ConfigRepository
	outboxRepo  syncdomain.OutboxRepository
	sheetClient sheet.Client

	// runInTx wraps the wholesale replacement so a half-applied snapshot
	// can never be observed.
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error

	// mu serializes pulls and pushes; TryLock turns a concurrent attempt
	// into ErrBusy instead of a queue.
	mu        stdsync.Mutex
	syncing   atomic.Bool
	syncError atomic.Bool
}

func NewSyncService(
	db *database.DB,
	branchRepo branch.BranchRepository,
	jobRepo job.JobRepository,
	userRepo user.UserRepository,
	recordRepo attendance.RecordRepository,
	accountRepo report.AccountRepository,
	configRepo appconfig.ConfigRepository,
	outboxRepo syncdomain.OutboxRepository,
	sheetClient sheet.Client,
) syncdomain.SyncService {
	return &SyncServiceImpl{
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		branchRepo:  branchRepo,
		jobRepo:     jobRepo,
		userRepo:    userRepo,
		recordRepo:  recordRepo,
		accountRepo: accountRepo,
		configRepo:  configRepo,
		outboxRepo:  outboxRepo,
		sheetClient: sheetClient,
	}
}

// Pull implements sync.SyncService.
func (s *SyncServiceImpl) Pull(ctx context.Context) error {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load app config: %w", err)
	}
	if !cfg.Connected() {
		return syncdomain.ErrNoSyncURL
	}

	if !s.mu.TryLock() {
		return syncdomain.ErrBusy
	}
	defer s.mu.Unlock()

	s.syncing.Store(true)
	defer s.syncing.Store(false)

	snapshot, err := s.sheetClient.GetData(ctx, cfg.SyncURL)
	if err != nil {
		// Local data stays intact; the app keeps serving what it has.
		s.syncError.Store(true)
		return fmt.Errorf("pull failed: %w", err)
	}

	err = s.runInTx(ctx, func(txCtx context.Context) error {
		if err := s.branchRepo.ReplaceAll(txCtx, branchesFromPayload(snapshot.Branches)); err != nil {
			return fmt.Errorf("replace branches: %w", err)
		}
		if err := s.jobRepo.ReplaceAll(txCtx, jobsFromPayload(snapshot.Jobs)); err != nil {
			return fmt.Errorf("replace jobs: %w", err)
		}
		// Older endpoint revisions omit users and report accounts; absence
		// means "not served here", not "deleted".
		if snapshot.Users != nil {
			if err := s.userRepo.ReplaceAll(txCtx, usersFromPayload(snapshot.Users)); err != nil {
				return fmt.Errorf("replace users: %w", err)
			}
		}
		if snapshot.ReportAccounts != nil {
			if err := s.accountRepo.ReplaceAll(txCtx, accountsFromPayload(snapshot.ReportAccounts)); err != nil {
				return fmt.Errorf("replace report accounts: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.syncError.Store(true)
		return fmt.Errorf("pull failed: %w", err)
	}

	if err := s.configRepo.TouchLastUpdated(ctx, time.Now()); err != nil {
		slog.Warn("failed to record pull timestamp", "error", err)
	}

	s.syncError.Store(false)
	return nil
}

// Push implements sync.SyncService.
func (s *SyncServiceImpl) Push(ctx context.Context) error {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load app config: %w", err)
	}
	if !cfg.Connected() {
		return syncdomain.ErrNoSyncURL
	}

	if !s.mu.TryLock() {
		return syncdomain.ErrBusy
	}
	defer s.mu.Unlock()

	s.syncing.Store(true)
	defer s.syncing.Store(false)

	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}
	jobs, err := s.jobRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list report accounts: %w", err)
	}

	payload := sheet.UpdateSystemPayload{
		Action:         "updateSystem",
		Branches:       branchesToPayload(branches),
		Jobs:           jobsToPayload(jobs),
		Users:          usersToPayload(users),
		ReportAccounts: accountsToPayload(accounts),
		AdminUsername:  cfg.AdminUsername,
		AdminPassword:  cfg.AdminPassword,
	}

	if err := s.sheetClient.Post(ctx, cfg.SyncURL, payload); err != nil {
		s.syncError.Store(true)
		return fmt.Errorf("push failed: %w", err)
	}

	s.syncError.Store(false)
	return nil
}

// Bootstrap implements sync.SyncService.
func (s *SyncServiceImpl) Bootstrap(ctx context.Context, encodedLink string) error {
	decoded, err := base64.StdEncoding.DecodeString(encodedLink)
	if err != nil {
		decoded, err = base64.URLEncoding.DecodeString(encodedLink)
		if err != nil {
			return syncdomain.ErrInvalidBootstrapLink
		}
	}

	endpoint := string(decoded)
	if !validator.IsValidSyncURL(endpoint) {
		return syncdomain.ErrInvalidBootstrapLink
	}

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load app config: %w", err)
	}
	cfg.SyncURL = endpoint
	cfg.GoogleSheetLink = endpoint
	if err := s.configRepo.Save(ctx, cfg); err != nil {
		return fmt.Errorf("failed to persist endpoint: %w", err)
	}

	// The link is bound even if the first pull fails; the app simply runs
	// on whatever data it already holds until the next attempt.
	if err := s.Pull(ctx); err != nil {
		slog.Warn("initial pull after bootstrap failed", "error", err)
	}

	return nil
}

// DispatchOutbox implements sync.SyncService.
func (s *SyncServiceImpl) DispatchOutbox(ctx context.Context) error {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load app config: %w", err)
	}
	if !cfg.Connected() {
		return nil
	}

	entries, err := s.outboxRepo.ListPending(ctx, dispatchBatchSize)
	if err != nil {
		return fmt.Errorf("failed to list pending entries: %w", err)
	}

	for _, entry := range entries {
		if err := s.sheetClient.Post(ctx, cfg.SyncURL, json.RawMessage(entry.Payload)); err != nil {
			slog.Warn("outbox delivery failed",
				"entry_id", entry.ID,
				"action", entry.Action,
				"attempts", entry.Attempts+1,
				"error", err)
			if markErr := s.outboxRepo.MarkFailed(ctx, entry.ID, err.Error()); markErr != nil {
				return fmt.Errorf("failed to mark entry %d failed: %w", entry.ID, markErr)
			}
			continue
		}
		if err := s.outboxRepo.MarkDelivered(ctx, entry.ID); err != nil {
			return fmt.Errorf("failed to mark entry %d delivered: %w", entry.ID, err)
		}
	}

	return nil
}

// Status implements sync.SyncService.
func (s *SyncServiceImpl) Status(ctx context.Context) (syncdomain.Status, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return syncdomain.Status{}, fmt.Errorf("failed to load app config: %w", err)
	}

	pending, err := s.outboxRepo.CountPending(ctx)
	if err != nil {
		return syncdomain.Status{}, fmt.Errorf("failed to count pending entries: %w", err)
	}

	records, err := s.recordRepo.Count(ctx)
	if err != nil {
		return syncdomain.Status{}, fmt.Errorf("failed to count attendance records: %w", err)
	}

	return syncdomain.Status{
		Syncing:     s.syncing.Load(),
		SyncError:   s.syncError.Load(),
		LastUpdated: cfg.LastUpdated,
		Pending:     pending,
		Records:     records,
	}, nil
}

func branchesFromPayload(payloads []sheet.BranchPayload) []branch.Branch {
	branches := make([]branch.Branch, 0, len(payloads))
	for _, p := range payloads {
		branches = append(branches, branch.Branch{
			ID:           p.ID,
			Name:         p.Name,
			Latitude:     p.Latitude,
			Longitude:    p.Longitude,
			RadiusMeters: p.Radius,
		})
	}
	return branches
}

func branchesToPayload(branches []branch.Branch) []sheet.BranchPayload {
	payloads := make([]sheet.BranchPayload, 0, len(branches))
	for _, b := range branches {
		payloads = append(payloads, sheet.BranchPayload{
			ID:        b.ID,
			Name:      b.Name,
			Latitude:  b.Latitude,
			Longitude: b.Longitude,
			Radius:    b.RadiusMeters,
		})
	}
	return payloads
}

func jobsFromPayload(payloads []sheet.JobPayload) []job.Job {
	jobs := make([]job.Job, 0, len(payloads))
	for _, p := range payloads {
		jobs = append(jobs, job.Job{ID: p.ID, Title: p.Title})
	}
	return jobs
}

func jobsToPayload(jobs []job.Job) []sheet.JobPayload {
	payloads := make([]sheet.JobPayload, 0, len(jobs))
	for _, j := range jobs {
		payloads = append(payloads, sheet.JobPayload{ID: j.ID, Title: j.Title})
	}
	return payloads
}

func usersFromPayload(payloads []sheet.UserPayload) []user.User {
	users := make([]user.User, 0, len(payloads))
	for _, p := range payloads {
		u := user.User{
			ID:         p.ID,
			FullName:   p.FullName,
			NationalID: p.NationalID,
			Password:   p.Password,
			Role:       user.Role(p.Role),
			JobTitle:   p.JobTitle,
		}
		if u.Role == "" {
			u.Role = user.RoleEmployee
		}
		if p.DeviceID != "" {
			deviceID := p.DeviceID
			u.DeviceID = &deviceID
		}
		if p.DefaultBranchID != "" {
			branchID := p.DefaultBranchID
			u.DefaultBranchID = &branchID
		}
		if p.Registration != "" {
			if t, err := time.Parse(time.RFC3339, p.Registration); err == nil {
				u.RegistrationDate = &t
			}
		}
		users = append(users, u)
	}
	return users
}

func usersToPayload(users []user.User) []sheet.UserPayload {
	payloads := make([]sheet.UserPayload, 0, len(users))
	for _, u := range users {
		p := sheet.UserPayload{
			ID:         u.ID,
			FullName:   u.FullName,
			NationalID: u.NationalID,
			Password:   u.Password,
			Role:       string(u.Role),
			JobTitle:   u.JobTitle,
		}
		if u.DeviceID != nil {
			p.DeviceID = *u.DeviceID
		}
		if u.DefaultBranchID != nil {
			p.DefaultBranchID = *u.DefaultBranchID
		}
		if u.RegistrationDate != nil {
			p.Registration = u.RegistrationDate.Format(time.RFC3339)
		}
		payloads = append(payloads, p)
	}
	return payloads
}

func accountsFromPayload(payloads []sheet.AccountPayload) []report.Account {
	accounts := make([]report.Account, 0, len(payloads))
	for _, p := range payloads {
		accounts = append(accounts, report.Account{
			ID:          p.ID,
			Username:    p.Username,
			Password:    p.Password,
			AllowedJobs: p.AllowedJobs,
		})
	}
	return accounts
}

func accountsToPayload(accounts []report.Account) []sheet.AccountPayload {
	payloads := make([]sheet.AccountPayload, 0, len(accounts))
	for _, a := range accounts {
		payloads = append(payloads, sheet.AccountPayload{
			ID:          a.ID,
			Username:    a.Username,
			Password:    a.Password,
			AllowedJobs: a.AllowedJobs,
		})
	}
	return payloads
}
