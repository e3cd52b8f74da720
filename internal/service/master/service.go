package master

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/appconfig"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/branch"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/job"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/report"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/user"
)

type MasterService interface {
	// Branch operations
	CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error)
	GetBranch(ctx context.Context, id string) (branch.BranchResponse, error)
	ListBranches(ctx context.Context) ([]branch.BranchResponse, error)
	UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) error
	DeleteBranch(ctx context.Context, id string) error

	// Job operations
	CreateJob(ctx context.Context, req job.CreateJobRequest) (job.JobResponse, error)
	GetJob(ctx context.Context, id string) (job.JobResponse, error)
	ListJobs(ctx context.Context) ([]job.JobResponse, error)
	UpdateJob(ctx context.Context, req job.UpdateJobRequest) error
	DeleteJob(ctx context.Context, id string) error

	// User operations
	GetUser(ctx context.Context, id string) (user.UserResponse, error)
	ListUsers(ctx context.Context) ([]user.UserResponse, error)
	UpdateUser(ctx context.Context, req user.UpdateUserRequest) error
	DeleteUser(ctx context.Context, id string) error

	// ResetDevice unbinds an employee's device so their next login can
	// adopt a new one
	ResetDevice(ctx context.Context, id string) error

	// Report account operations
	CreateReportAccount(ctx context.Context, req report.CreateAccountRequest) (report.AccountResponse, error)
	GetReportAccount(ctx context.Context, id string) (report.AccountResponse, error)
	ListReportAccounts(ctx context.Context) ([]report.AccountResponse, error)
	UpdateReportAccount(ctx context.Context, req report.UpdateAccountRequest) error
	DeleteReportAccount(ctx context.Context, id string) error

	// Settings operations
	GetSettings(ctx context.Context) (appconfig.ConfigResponse, error)
	UpdateSettings(ctx context.Context, req appconfig.UpdateConfigRequest) (appconfig.ConfigResponse, error)
}

type masterServiceImpl struct {
	branchRepo  branch.BranchRepository
	jobRepo     job.JobRepository
	userRepo    user.UserRepository
	accountRepo report.AccountRepository
	configRepo  appconfig.ConfigRepository
}

func NewMasterService(
	branchRepo branch.BranchRepository,
	jobRepo job.JobRepository,
	userRepo user.UserRepository,
	accountRepo report.AccountRepository,
	configRepo appconfig.ConfigRepository,
) MasterService {
	return &masterServiceImpl{
		branchRepo:  branchRepo,
		jobRepo:     jobRepo,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		configRepo:  configRepo,
	}
}

// ==================== BRANCH OPERATIONS ====================

func (s *masterServiceImpl) CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	radius := req.RadiusMeters
	if radius == 0 {
		radius = branch.DefaultRadiusMeters
	}

	entity := branch.Branch{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: radius,
	}

	created, err := s.branchRepo.Create(ctx, entity)
	if err != nil {
		return branch.BranchResponse{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return branchToResponse(created), nil
}

func (s *masterServiceImpl) GetBranch(ctx context.Context, id string) (branch.BranchResponse, error) {
	entity, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branchToResponse(entity), nil
}

func (s *masterServiceImpl) ListBranches(ctx context.Context) ([]branch.BranchResponse, error) {
	entities, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	responses := make([]branch.BranchResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, branchToResponse(entity))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.branchRepo.Update(ctx, req)
}

func (s *masterServiceImpl) DeleteBranch(ctx context.Context, id string) error {
	return s.branchRepo.Delete(ctx, id)
}

// ==================== JOB OPERATIONS ====================

func (s *masterServiceImpl) CreateJob(ctx context.Context, req job.CreateJobRequest) (job.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	entity := job.Job{
		ID:    uuid.NewString(),
		Title: req.Title,
	}

	created, err := s.jobRepo.Create(ctx, entity)
	if err != nil {
		return job.JobResponse{}, fmt.Errorf("failed to create job: %w", err)
	}

	return job.JobResponse{ID: created.ID, Title: created.Title}, nil
}

func (s *masterServiceImpl) GetJob(ctx context.Context, id string) (job.JobResponse, error) {
	entity, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return job.JobResponse{}, err
	}
	return job.JobResponse{ID: entity.ID, Title: entity.Title}, nil
}

func (s *masterServiceImpl) ListJobs(ctx context.Context) ([]job.JobResponse, error) {
	entities, err := s.jobRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	responses := make([]job.JobResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, job.JobResponse{ID: entity.ID, Title: entity.Title})
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateJob(ctx context.Context, req job.UpdateJobRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.jobRepo.Update(ctx, req)
}

func (s *masterServiceImpl) DeleteJob(ctx context.Context, id string) error {
	return s.jobRepo.Delete(ctx, id)
}

// ==================== USER OPERATIONS ====================

func (s *masterServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	entity, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return userToResponse(entity), nil
}

func (s *masterServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	entities, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, userToResponse(entity))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, req)
}

func (s *masterServiceImpl) DeleteUser(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *masterServiceImpl) ResetDevice(ctx context.Context, id string) error {
	return s.userRepo.ClearDevice(ctx, id)
}

// ==================== REPORT ACCOUNT OPERATIONS ====================

func (s *masterServiceImpl) CreateReportAccount(ctx context.Context, req report.CreateAccountRequest) (report.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return report.AccountResponse{}, err
	}

	entity := report.Account{
		ID:          uuid.NewString(),
		Username:    req.Username,
		Password:    req.Password,
		AllowedJobs: req.AllowedJobs,
	}

	created, err := s.accountRepo.Create(ctx, entity)
	if err != nil {
		return report.AccountResponse{}, fmt.Errorf("failed to create report account: %w", err)
	}

	return accountToResponse(created), nil
}

func (s *masterServiceImpl) GetReportAccount(ctx context.Context, id string) (report.AccountResponse, error) {
	entity, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return report.AccountResponse{}, err
	}
	return accountToResponse(entity), nil
}

func (s *masterServiceImpl) ListReportAccounts(ctx context.Context) ([]report.AccountResponse, error) {
	entities, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list report accounts: %w", err)
	}

	responses := make([]report.AccountResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, accountToResponse(entity))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateReportAccount(ctx context.Context, req report.UpdateAccountRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.accountRepo.Update(ctx, req)
}

func (s *masterServiceImpl) DeleteReportAccount(ctx context.Context, id string) error {
	return s.accountRepo.Delete(ctx, id)
}

// ==================== SETTINGS OPERATIONS ====================

func (s *masterServiceImpl) GetSettings(ctx context.Context) (appconfig.ConfigResponse, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return appconfig.ConfigResponse{}, fmt.Errorf("failed to load app config: %w", err)
	}
	return configToResponse(cfg), nil
}

func (s *masterServiceImpl) UpdateSettings(ctx context.Context, req appconfig.UpdateConfigRequest) (appconfig.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return appconfig.ConfigResponse{}, err
	}

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return appconfig.ConfigResponse{}, fmt.Errorf("failed to load app config: %w", err)
	}

	if req.SyncURL != nil {
		cfg.SyncURL = *req.SyncURL
	}
	if req.GoogleSheetLink != nil {
		cfg.GoogleSheetLink = *req.GoogleSheetLink
	}
	if req.AdminUsername != nil {
		cfg.AdminUsername = *req.AdminUsername
	}
	if req.AdminPassword != nil {
		cfg.AdminPassword = *req.AdminPassword
	}

	if err := s.configRepo.Save(ctx, cfg); err != nil {
		return appconfig.ConfigResponse{}, fmt.Errorf("failed to save app config: %w", err)
	}

	return configToResponse(cfg), nil
}

func branchToResponse(entity branch.Branch) branch.BranchResponse {
	return branch.BranchResponse{
		ID:           entity.ID,
		Name:         entity.Name,
		Latitude:     entity.Latitude,
		Longitude:    entity.Longitude,
		RadiusMeters: entity.RadiusMeters,
	}
}

func userToResponse(entity user.User) user.UserResponse {
	resp := user.UserResponse{
		ID:              entity.ID,
		FullName:        entity.FullName,
		NationalID:      entity.NationalID,
		Role:            entity.Role,
		DeviceID:        entity.DeviceID,
		JobTitle:        entity.JobTitle,
		DefaultBranchID: entity.DefaultBranchID,
	}
	if entity.RegistrationDate != nil {
		formatted := entity.RegistrationDate.Format(time.RFC3339)
		resp.RegistrationDate = &formatted
	}
	return resp
}

func accountToResponse(entity report.Account) report.AccountResponse {
	return report.AccountResponse{
		ID:          entity.ID,
		Username:    entity.Username,
		AllowedJobs: entity.AllowedJobs,
	}
}

func configToResponse(cfg appconfig.Config) appconfig.ConfigResponse {
	resp := appconfig.ConfigResponse{
		SyncURL:         cfg.SyncURL,
		GoogleSheetLink: cfg.GoogleSheetLink,
		AdminUsername:   cfg.AdminUsername,
	}
	if cfg.LastUpdated != nil {
		formatted := cfg.LastUpdated.Format(time.RFC3339)
		resp.LastUpdated = &formatted
	}
	return resp
}
