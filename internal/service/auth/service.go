package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/appconfig"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/auth"
	syncdomain "github.com/uniteam-app/uniteam-backend-go/internal/domain/sync"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/user"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/device"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/jwt"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/sheet"
)

type AuthServiceImpl struct {
	user.UserRepository
	appconfig.ConfigRepository
	syncdomain.OutboxRepository
	jwt.Service
	identifier  device.Identifier
	sheetClient sheet.Client
}

func NewAuthService(
	userRepo user.UserRepository,
	configRepo appconfig.ConfigRepository,
	outboxRepo syncdomain.OutboxRepository,
	jwtService jwt.Service,
	identifier device.Identifier,
	sheetClient sheet.Client,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:   userRepo,
		ConfigRepository: configRepo,
		OutboxRepository: outboxRepo,
		Service:          jwtService,
		identifier:       identifier,
		sheetClient:      sheetClient,
	}
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.SessionResponse, error) {
	cfg, err := a.ConfigRepository.Get(ctx)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to load app config: %w", err)
	}
	if !cfg.Connected() {
		return auth.SessionResponse{}, auth.ErrNotConnected
	}

	// Reachability is a hard precondition: accounts must never be created
	// while the registry endpoint is unreachable.
	if err := a.sheetClient.Ping(ctx, cfg.SyncURL); err != nil {
		return auth.SessionResponse{}, auth.ErrOffline
	}

	if err := req.Validate(); err != nil {
		return auth.SessionResponse{}, err
	}

	if _, err := a.UserRepository.GetByNationalID(ctx, req.NationalID); err == nil {
		return auth.SessionResponse{}, user.ErrNationalIDExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.SessionResponse{}, fmt.Errorf("failed to check national id uniqueness: %w", err)
	}

	deviceID := a.identifier.GetOrCreate(req.DeviceID)
	if owner, err := a.UserRepository.GetByDeviceID(ctx, deviceID); err == nil {
		if owner.NationalID != req.NationalID {
			return auth.SessionResponse{}, user.ErrDeviceAlreadyBound
		}
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.SessionResponse{}, fmt.Errorf("failed to check device uniqueness: %w", err)
	}

	now := time.Now()
	newUser := user.User{
		ID:               uuid.NewString(),
		FullName:         req.FullName,
		NationalID:       req.NationalID,
		Password:         req.Password,
		Role:             user.RoleEmployee,
		DeviceID:         &deviceID,
		JobTitle:         req.JobTitle,
		DefaultBranchID:  req.DefaultBranchID,
		RegistrationDate: &now,
	}

	created, err := a.UserRepository.Create(ctx, newUser)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	// Remote registration is best-effort: the queued write is delivered by
	// the dispatcher, and a stuck queue never blocks the session.
	if err := a.enqueueRegistration(ctx, created); err != nil {
		slog.Warn("failed to queue remote registration", "user_id", created.ID, "error", err)
	}

	return a.openSession(created, deviceID)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.SessionResponse, error) {
	cfg, err := a.ConfigRepository.Get(ctx)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to load app config: %w", err)
	}
	if !cfg.Connected() {
		return auth.SessionResponse{}, auth.ErrNotConnected
	}
	if err := a.sheetClient.Ping(ctx, cfg.SyncURL); err != nil {
		return auth.SessionResponse{}, auth.ErrOffline
	}

	userData, err := a.UserRepository.GetByNationalID(ctx, req.NationalID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.SessionResponse{}, auth.ErrInvalidCredentials
		}
		return auth.SessionResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if userData.Password != req.Password {
		return auth.SessionResponse{}, auth.ErrInvalidCredentials
	}

	deviceID := a.identifier.GetOrCreate(req.DeviceID)

	// The device may already belong to someone else entirely.
	if owner, err := a.UserRepository.GetByDeviceID(ctx, deviceID); err == nil {
		if owner.NationalID != userData.NationalID {
			return auth.SessionResponse{}, &auth.DeviceConflictError{OwnerName: owner.FullName}
		}
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.SessionResponse{}, fmt.Errorf("failed to look up device owner: %w", err)
	}

	switch {
	case !userData.IsBound():
		// First login on a fresh or admin-reset account adopts this device.
		if err := a.UserRepository.BindDevice(ctx, userData.ID, deviceID); err != nil {
			return auth.SessionResponse{}, fmt.Errorf("failed to bind device: %w", err)
		}
		userData.DeviceID = &deviceID
		if err := a.enqueueDeviceUpdate(ctx, userData.NationalID, deviceID); err != nil {
			slog.Warn("failed to queue device binding", "user_id", userData.ID, "error", err)
		}
	case !userData.BoundTo(deviceID):
		return auth.SessionResponse{}, auth.ErrDeviceMismatch
	}

	return a.openSession(userData, deviceID)
}

// AdminLogin implements auth.AuthService.
func (a *AuthServiceImpl) AdminLogin(ctx context.Context, req auth.AdminLoginRequest) (auth.SessionResponse, error) {
	cfg, err := a.ConfigRepository.Get(ctx)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to load app config: %w", err)
	}

	if req.Username != cfg.AdminUsername || req.Password != cfg.AdminPassword {
		return auth.SessionResponse{}, auth.ErrInvalidAdminCredentials
	}

	// The admin identity is synthetic: it exists only in app settings and
	// never appears in the user registry.
	admin := user.User{
		ID:       user.AdminID,
		FullName: "Administrator",
		Role:     user.RoleAdmin,
	}

	return a.openSession(admin, "")
}

func (a *AuthServiceImpl) openSession(u user.User, deviceID string) (auth.SessionResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(u.ID, u.NationalID, u.FullName, u.JobTitle, u.Role)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	resp := auth.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: user.UserResponse{
			ID:              u.ID,
			FullName:        u.FullName,
			NationalID:      u.NationalID,
			Role:            u.Role,
			JobTitle:        u.JobTitle,
			DefaultBranchID: u.DefaultBranchID,
		},
	}
	if deviceID != "" {
		resp.User.DeviceID = &deviceID
	}
	if u.RegistrationDate != nil {
		formatted := u.RegistrationDate.Format(time.RFC3339)
		resp.User.RegistrationDate = &formatted
	}
	return resp, nil
}

func (a *AuthServiceImpl) enqueueRegistration(ctx context.Context, u user.User) error {
	payload := map[string]any{
		"action":     syncdomain.ActionRegisterUser,
		"id":         u.ID,
		"fullName":   u.FullName,
		"nationalId": u.NationalID,
		"password":   u.Password,
		"role":       string(u.Role),
		"jobTitle":   u.JobTitle,
	}
	if u.DeviceID != nil {
		payload["deviceId"] = *u.DeviceID
	}
	if u.DefaultBranchID != nil {
		payload["defaultBranchId"] = *u.DefaultBranchID
	}
	if u.RegistrationDate != nil {
		payload["registrationDate"] = u.RegistrationDate.Format(time.RFC3339)
	}
	payload["timestamp"] = time.Now().Format(time.RFC3339)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal registration payload: %w", err)
	}
	return a.OutboxRepository.Enqueue(ctx, syncdomain.ActionRegisterUser, body)
}

func (a *AuthServiceImpl) enqueueDeviceUpdate(ctx context.Context, nationalID, deviceID string) error {
	body, err := json.Marshal(map[string]any{
		"action":     syncdomain.ActionUpdateUserDevice,
		"nationalId": nationalID,
		"deviceId":   deviceID,
	})
	if err != nil {
		return fmt.Errorf("marshal device update payload: %w", err)
	}
	return a.OutboxRepository.Enqueue(ctx, syncdomain.ActionUpdateUserDevice, body)
}
