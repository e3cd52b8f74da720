package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/uniteam-app/uniteam-backend-go/internal/domain/auth"
	"github.com/uniteam-app/uniteam-backend-go/internal/handler/http/response"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/device"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	AdminLogin(w http.ResponseWriter, r *http.Request)
	DeviceToken(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
	identifier  device.Identifier
}

func NewAuthHandler(authService auth.AuthService, identifier device.Identifier) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
		identifier:  identifier,
	}
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq auth.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	session, err := a.authService.Register(r.Context(), registerReq)
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User registered", "user_id", session.User.ID)
	response.Created(w, "Registration successful", session)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	session, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

// AdminLogin implements AuthHandler.
func (a *AuthHandlerImpl) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var adminReq auth.AdminLoginRequest

	if err := json.NewDecoder(r.Body).Decode(&adminReq); err != nil {
		slog.Error("AdminLogin decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	session, err := a.authService.AdminLogin(r.Context(), adminReq)
	if err != nil {
		slog.Error("AdminLogin service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

// DeviceToken implements AuthHandler. Clients call it once, persist the
// token locally and present it on every register/login after that.
func (a *AuthHandlerImpl) DeviceToken(w http.ResponseWriter, r *http.Request) {
	var tokenReq struct {
		DeviceID string `json:"device_id"`
	}

	// An empty body is fine: it means the client holds no token yet.
	if err := json.NewDecoder(r.Body).Decode(&tokenReq); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	token := a.identifier.GetOrCreate(tokenReq.DeviceID)
	response.Success(w, map[string]string{"device_id": token})
}
