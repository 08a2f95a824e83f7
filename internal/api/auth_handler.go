package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	result := h.authService.Register(r.Context(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if !result.Success {
		shared.RespondWithError(w, r, AuthFailureStatus(result.Failure), result.Message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewAuthResponse(result))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	result := h.authService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if !result.Success {
		shared.RespondWithError(w, r, AuthFailureStatus(result.Failure), result.Message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewAuthResponse(result))
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	result := h.authService.RefreshToken(r.Context(), req.RefreshToken)
	if !result.Success {
		shared.RespondWithError(w, r, AuthFailureStatus(result.Failure), result.Message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewAuthResponse(result))
}

// Validate handles POST /api/auth/validate.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateTokenRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	valid := h.authService.ValidateToken(r.Context(), req.Token)
	shared.RespondWithJSON(w, r, http.StatusOK, ValidateTokenResponse{Valid: valid})
}
