package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/config"
	"github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	repository "github.com/Muhammed-KRM/E-ticaret/internal/repositories"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingToken = stdErrors.New("session token is missing")
	ErrInvalidToken = stdErrors.New("session token is invalid or expired")
	ErrUserNotFound = stdErrors.New("session user no longer exists")
)

type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	RegisterAdmin(ctx context.Context, caller *models.Principal, req *models.SignupRequest) (*models.User, error)
	Authenticate(ctx context.Context, token string) (*models.Principal, error)
	Profile(ctx context.Context, principal *models.Principal) (*models.User, error)
	Logout(ctx context.Context, principal *models.Principal) error
}

type authService struct {
	userRepo  repository.UserRepository
	rateLimit repository.RateLimitRepository
	jwtKey    []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, rateLimit repository.RateLimitRepository, cfg config.Security) AuthService {
	return &authService{
		userRepo:  userRepo,
		rateLimit: rateLimit,
		jwtKey:    []byte(cfg.JWTKey),
		tokenTTL:  cfg.TokenTTL,
		now:       time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	return s.createUser(ctx, req, models.RoleUser)
}

// RegisterAdmin creates an admin account. Only a super admin may do this.
func (s *authService) RegisterAdmin(ctx context.Context, caller *models.Principal, req *models.SignupRequest) (*models.User, error) {

	if caller == nil || caller.Role != models.RoleSuperAdmin {
		return nil, errors.ForbiddenError("Only a super admin can register admins")
	}

	return s.createUser(ctx, req, models.RoleAdmin)
}

func (s *authService) createUser(ctx context.Context, req *models.SignupRequest, role models.Role) (*models.User, error) {

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:     utils.SanitizeText(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    utils.SanitizeText(req.Phone),
		Address:  utils.SanitizeText(req.Address),
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if stdErrors.Is(err, repository.ErrEmailExists) {
			return nil, errors.DuplicateEntryError("Email already registered").WithNumber(errors.NumEmailTaken)
		}

		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("User registered", slog.String("userId", user.ID.String()), slog.String("role", role.String()))

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	email := strings.ToLower(strings.TrimSpace(req.Email))

	allowed, _, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, email)
	if err != nil {
		return nil, errors.ExternalServiceError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithNumber(errors.NumLoginRateLimited).
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to load user").WithError(err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errors.UnauthorizedError("Invalid email or password").WithNumber(errors.NumInvalidCredentials)
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)

	claims := &models.Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Token:     tokenString,
		ExpiresIn: int(s.tokenTTL.Seconds()),
		User:      user,
	}, nil
}

// Authenticate validates the token and re-reads the user so deleted accounts and
// role changes take effect immediately.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.Principal, error) {

	if token == "" {
		return nil, errors.UnauthorizedError("Session token is required").WithError(ErrMissingToken)
	}

	claims := &models.Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, errors.UnauthorizedError("Invalid or expired token").WithError(ErrInvalidToken)
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.UnauthorizedError("Invalid or expired token").WithError(ErrUserNotFound)
		}

		return nil, errors.DatabaseError("Failed to load user").WithError(err)
	}

	return &models.Principal{UserID: user.ID, Role: user.Role, User: user}, nil
}

func (s *authService) Profile(ctx context.Context, principal *models.Principal) (*models.User, error) {

	if principal == nil {
		return nil, errors.UnauthorizedError("Authentication required")
	}

	if principal.User != nil {
		return principal.User, nil
	}

	user, err := s.userRepo.GetUserByID(ctx, principal.UserID)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	return user, nil
}

// Logout only acknowledges the request. Tokens stay valid until they expire.
func (s *authService) Logout(ctx context.Context, principal *models.Principal) error {
	if principal == nil {
		return errors.UnauthorizedError("Authentication required")
	}

	middleware.LoggerFromContext(ctx).Info("User logged out")

	return nil
}
