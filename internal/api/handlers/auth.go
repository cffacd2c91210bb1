package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	service "github.com/Muhammed-KRM/E-ticaret/internal/services"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService service.AuthService
	validator   *validator.Validate
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService, validator: validator.New()}
}

// Signup godoc
//	@Summary		Register a new customer
//	@Description	Creates a customer account. Emails are stored lowercased and must be unique.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.SignupRequest	true	"Account details"
//	@Success		201		{object}	models.User				"Account created"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Email already registered"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/auth/signup [post]
func (h *AuthHandler) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.SignupRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid signup input")
			return
		}

		user, err := h.authService.Signup(r.Context(), &req)
		if err != nil {
			logger.Error("Signup failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User registered", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusCreated, user)
	}
}

// Login godoc
//	@Summary		Log in
//	@Description	Exchanges email and password for a signed session token. Repeated failures are rate limited per email.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Login credentials"
//	@Success		200			{object}	models.LoginResponse	"Session token"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid credentials"
//	@Failure		429			{object}	response.ErrorResponse	"Too many login attempts"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, err := h.authService.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User logged in", slog.String("userId", resp.User.ID.String()))
		response.Success(w, http.StatusOK, resp)
	}
}

// Logout godoc
//	@Summary		Log out
//	@Description	Acknowledges a logout. Tokens stay valid until they expire.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	response.APIResponse	"Logged out"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		TokenAuth
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		principal, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		if err := h.authService.Logout(r.Context(), principal); err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("User logged out")
		response.Success(w, http.StatusOK, map[string]string{"message": "Logged out"})
	}
}

// RegisterAdmin godoc
//	@Summary		Register an administrator
//	@Description	Creates an admin account. Only a super admin may call this.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.SignupRequest	true	"Admin account details"
//	@Success		201		{object}	models.User				"Admin created"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse	"Super admin role required"
//	@Failure		409		{object}	response.ErrorResponse	"Email already registered"
//	@Security		TokenAuth
//	@Router			/auth/admins [post]
func (h *AuthHandler) RegisterAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		principal, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		var req models.SignupRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid admin registration input")
			return
		}

		user, err := h.authService.RegisterAdmin(r.Context(), principal, &req)
		if err != nil {
			logger.Error("Admin registration failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Admin registered", slog.String("adminId", user.ID.String()))
		response.Success(w, http.StatusCreated, user)
	}
}

// Profile godoc
//	@Summary		Current user profile
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	models.User				"Profile"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		TokenAuth
//	@Router			/users/profile [get]
func (h *AuthHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		principal, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		user, err := h.authService.Profile(r.Context(), principal)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
