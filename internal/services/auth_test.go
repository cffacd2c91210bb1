package service_test

import (
	"database/sql"
	stdErrors "errors"
	"testing"
	"time"

	"github.com/Muhammed-KRM/E-ticaret/internal/config"
	appErrors "github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	repository "github.com/Muhammed-KRM/E-ticaret/internal/repositories"
	repoMocks "github.com/Muhammed-KRM/E-ticaret/internal/repositories/mocks"
	service "github.com/Muhammed-KRM/E-ticaret/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecurity = config.Security{JWTKey: "test-secret", TokenTTL: time.Hour, TokenHeader: "token"}

func setupAuthServiceTest(t *testing.T) (service.AuthService, *repoMocks.MockUserRepository, *repoMocks.MockRateLimitRepository) {
	users := repoMocks.NewMockUserRepository(t)
	limiter := repoMocks.NewMockRateLimitRepository(t)

	return service.NewAuthService(users, limiter, testSecurity), users, limiter
}

func storedUser(t *testing.T, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", Password: string(hash), Role: role}
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("Success - Password is hashed and role is user", func(t *testing.T) {
		// Arrange
		svc, users, _ := setupAuthServiceTest(t)
		users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "ada@example.com" && u.Role == models.RoleUser &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")) == nil
		})).Return(nil).Once()

		// Act
		user, err := svc.Signup(t.Context(), &models.SignupRequest{Email: " Ada@Example.com ", Password: "secret1", Name: "Ada"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("Failure - Email already registered", func(t *testing.T) {
		svc, users, _ := setupAuthServiceTest(t)
		users.On("CreateUser", mock.Anything, mock.Anything).Return(repository.ErrEmailExists).Once()

		user, err := svc.Signup(t.Context(), &models.SignupRequest{Email: "ada@example.com", Password: "secret1", Name: "Ada"})

		assert.Nil(t, user)
		appErr := requireAppError(t, err, appErrors.NumEmailTaken)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
	})
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	t.Run("Success - Super admin registers an admin", func(t *testing.T) {
		svc, users, _ := setupAuthServiceTest(t)
		caller := &models.Principal{UserID: uuid.New(), Role: models.RoleSuperAdmin}
		users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool { return u.Role == models.RoleAdmin })).Return(nil).Once()

		user, err := svc.RegisterAdmin(t.Context(), caller, &models.SignupRequest{Email: "new@example.com", Password: "secret1", Name: "New"})

		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("Failure - Admin cannot register admins", func(t *testing.T) {
		svc, _, _ := setupAuthServiceTest(t)

		_, err := svc.RegisterAdmin(t.Context(), adminPrincipal(), &models.SignupRequest{Email: "new@example.com", Password: "secret1", Name: "New"})

		requireAppError(t, err, appErrors.NumAdminRequired)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("Success - Token carries the user and role", func(t *testing.T) {
		// Arrange
		svc, users, limiter := setupAuthServiceTest(t)
		user := storedUser(t, "secret1", models.RoleAdmin)
		limiter.On("CheckLoginRateLimit", mock.Anything, "ada@example.com").Return(true, 1, 0, nil).Once()
		users.On("GetUserByEmail", mock.Anything, "ada@example.com").Return(user, nil).Once()

		// Act
		resp, err := svc.Login(t.Context(), &models.LoginRequest{Email: "ada@example.com", Password: "secret1"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3600, resp.ExpiresIn)

		claims := &models.Claims{}
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (any, error) { return []byte(testSecurity.JWTKey), nil })
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, models.RoleAdmin, claims.Role)
		assert.Equal(t, user.ID.String(), claims.Subject)
	})

	t.Run("Failure - Wrong password", func(t *testing.T) {
		svc, users, limiter := setupAuthServiceTest(t)
		limiter.On("CheckLoginRateLimit", mock.Anything, "ada@example.com").Return(true, 1, 0, nil).Once()
		users.On("GetUserByEmail", mock.Anything, "ada@example.com").Return(storedUser(t, "secret1", models.RoleUser), nil).Once()

		_, err := svc.Login(t.Context(), &models.LoginRequest{Email: "ada@example.com", Password: "wrong"})

		requireAppError(t, err, appErrors.NumInvalidCredentials)
	})

	t.Run("Failure - Unknown email looks like a wrong password", func(t *testing.T) {
		svc, users, limiter := setupAuthServiceTest(t)
		limiter.On("CheckLoginRateLimit", mock.Anything, "nobody@example.com").Return(true, 1, 0, nil).Once()
		users.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, sql.ErrNoRows).Once()

		_, err := svc.Login(t.Context(), &models.LoginRequest{Email: "nobody@example.com", Password: "x"})

		requireAppError(t, err, appErrors.NumInvalidCredentials)
	})

	t.Run("Failure - Rate limited", func(t *testing.T) {
		// Arrange
		svc, users, limiter := setupAuthServiceTest(t)
		limiter.On("CheckLoginRateLimit", mock.Anything, "ada@example.com").Return(false, 6, 120, nil).Once()

		// Act
		_, err := svc.Login(t.Context(), &models.LoginRequest{Email: "ada@example.com", Password: "secret1"})

		// Assert
		appErr := requireAppError(t, err, appErrors.NumLoginRateLimited)
		assert.Contains(t, appErr.Detail, "120")
		users.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Rate limiter unavailable", func(t *testing.T) {
		svc, _, limiter := setupAuthServiceTest(t)
		limiter.On("CheckLoginRateLimit", mock.Anything, "ada@example.com").Return(false, 0, 0, stdErrors.New("redis down")).Once()

		_, err := svc.Login(t.Context(), &models.LoginRequest{Email: "ada@example.com", Password: "secret1"})

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeExternalService, appErr.Code)
	})
}

func signToken(t *testing.T, claims *models.Claims, method jwt.SigningMethod, key any) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func TestAuthService_Authenticate(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()

	claimsAt := func(expiresAt time.Time) *models.Claims {
		return &models.Claims{
			UserID:           userID,
			Role:             models.RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String(), ExpiresAt: jwt.NewNumericDate(expiresAt)},
		}
	}

	t.Run("Success - Valid token resolves the principal", func(t *testing.T) {
		// Arrange
		svc, users, _ := setupAuthServiceTest(t)
		service.SetClock(svc, fixedClock(now))
		token := signToken(t, claimsAt(now.Add(time.Hour)), jwt.SigningMethodHS256, []byte(testSecurity.JWTKey))
		user := &models.User{ID: userID, Role: models.RoleAdmin}
		users.On("GetUserByID", mock.Anything, userID).Return(user, nil).Once()

		// Act
		principal, err := svc.Authenticate(t.Context(), token)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, principal.UserID)
		assert.Equal(t, models.RoleAdmin, principal.Role)
		assert.Same(t, user, principal.User)
	})

	t.Run("Failure - Missing token", func(t *testing.T) {
		svc, _, _ := setupAuthServiceTest(t)

		_, err := svc.Authenticate(t.Context(), "")

		requireAppError(t, err, appErrors.NumInvalidToken)
		assert.ErrorIs(t, err, service.ErrMissingToken)
	})

	t.Run("Failure - Expired token", func(t *testing.T) {
		svc, _, _ := setupAuthServiceTest(t)
		service.SetClock(svc, fixedClock(now))
		token := signToken(t, claimsAt(now.Add(-time.Minute)), jwt.SigningMethodHS256, []byte(testSecurity.JWTKey))

		_, err := svc.Authenticate(t.Context(), token)

		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("Failure - Wrong signing key", func(t *testing.T) {
		svc, _, _ := setupAuthServiceTest(t)
		service.SetClock(svc, fixedClock(now))
		token := signToken(t, claimsAt(now.Add(time.Hour)), jwt.SigningMethodHS256, []byte("other-secret"))

		_, err := svc.Authenticate(t.Context(), token)

		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("Failure - Unexpected algorithm", func(t *testing.T) {
		svc, _, _ := setupAuthServiceTest(t)
		service.SetClock(svc, fixedClock(now))
		token := signToken(t, claimsAt(now.Add(time.Hour)), jwt.SigningMethodHS512, []byte(testSecurity.JWTKey))

		_, err := svc.Authenticate(t.Context(), token)

		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("Failure - User no longer exists", func(t *testing.T) {
		svc, users, _ := setupAuthServiceTest(t)
		service.SetClock(svc, fixedClock(now))
		token := signToken(t, claimsAt(now.Add(time.Hour)), jwt.SigningMethodHS256, []byte(testSecurity.JWTKey))
		users.On("GetUserByID", mock.Anything, userID).Return(nil, sql.ErrNoRows).Once()

		_, err := svc.Authenticate(t.Context(), token)

		requireAppError(t, err, appErrors.NumInvalidToken)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestAuthService_ProfileAndLogout(t *testing.T) {
	svc, _, _ := setupAuthServiceTest(t)
	principal := customerPrincipal()

	user, err := svc.Profile(t.Context(), principal)
	require.NoError(t, err)
	assert.Equal(t, principal.User, user)

	require.NoError(t, svc.Logout(t.Context(), principal))
	requireAppError(t, svc.Logout(t.Context(), nil), appErrors.NumInvalidToken)
}
