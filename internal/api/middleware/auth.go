package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils/response"
	"github.com/google/uuid"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

const DefaultTokenHeader = "token"

// Authenticator resolves a raw session token into a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Principal, error)
}

type AuthMiddleware struct {
	auth        Authenticator
	tokenHeader string
}

func NewAuthMiddleware(auth Authenticator, tokenHeader string) *AuthMiddleware {
	if tokenHeader == "" {
		tokenHeader = DefaultTokenHeader
	}

	return &AuthMiddleware{auth: auth, tokenHeader: tokenHeader}
}

// Authenticate rejects requests without a valid token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		token := r.Header.Get(m.tokenHeader)
		if token == "" {
			logger.Warn("Missing session token")
			response.Error(w, errors.UnauthorizedError("Session token is required"))
			return
		}

		m.serveAuthenticated(w, r, next, token)
	}
}

// Optional lets guests through. A token that is present but invalid is still rejected.
func (m *AuthMiddleware) Optional(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		token := r.Header.Get(m.tokenHeader)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		m.serveAuthenticated(w, r, next, token)
	}
}

// RequireRole authenticates and then checks the principal's role.
func (m *AuthMiddleware) RequireRole(role models.Role, next http.Handler) http.HandlerFunc {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		principal, _ := PrincipalFromContext(r.Context())

		if !principal.Role.Satisfies(role) {
			LoggerFromContext(r.Context()).Warn("Insufficient role",
				slog.String("role", principal.Role.String()),
				slog.String("required", role.String()))
			response.Error(w, errors.ForbiddenError("You are not allowed to perform this action"))
			return
		}

		next.ServeHTTP(w, r)
	}))
}

func (m *AuthMiddleware) serveAuthenticated(w http.ResponseWriter, r *http.Request, next http.Handler, token string) {

	logger := LoggerFromContext(r.Context())

	principal, err := m.auth.Authenticate(r.Context(), token)
	if err != nil {
		logger.Warn("Authentication failed", slog.Any("error", err))
		response.Error(w, err)
		return
	}

	ctx := context.WithValue(r.Context(), UserContextKey, principal)

	requestScopedLogger := logger.With(slog.String("userId", principal.UserID.String()))
	ctx = WithLogger(ctx, requestScopedLogger)

	requestScopedLogger.Debug("User authenticated")

	next.ServeHTTP(w, r.WithContext(ctx))
}

func PrincipalFromContext(ctx context.Context) (*models.Principal, bool) {
	principal, ok := ctx.Value(UserContextKey).(*models.Principal)
	return principal, ok && principal != nil
}
