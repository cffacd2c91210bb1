package errors_test

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorBuilders(t *testing.T) {
	t.Run("Success - Number, detail and cause are attached", func(t *testing.T) {
		// Arrange
		cause := stdErrors.New("gateway timeout")

		// Act
		err := appErrors.ExternalServiceError("Refund failed").
			WithNumber(appErrors.NumCancelRefundFailed).
			WithDetail("order 42").
			WithError(cause)

		// Assert
		assert.Equal(t, appErrors.ErrCodeExternalService, err.Code)
		assert.Equal(t, appErrors.NumCancelRefundFailed, err.Number)
		assert.Equal(t, http.StatusBadGateway, err.StatusCode)
		assert.Equal(t, "order 42", err.Detail)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "gateway timeout")
	})

	t.Run("Success - Defaults carry the documented numbers", func(t *testing.T) {
		assert.Equal(t, appErrors.NumInvalidToken, appErrors.UnauthorizedError("x").Number)
		assert.Equal(t, appErrors.NumAdminRequired, appErrors.ForbiddenError("x").Number)
		assert.Equal(t, appErrors.NumUnexpected, appErrors.InternalError("x").Number)
		assert.Equal(t, appErrors.NumInsufficientStock, appErrors.InsufficientStockError("x").Number)
		assert.Equal(t, appErrors.NumInvalidRefundAmount, appErrors.InvalidAmountError("x").Number)
		assert.Equal(t, appErrors.NumReturnWindowExpired, appErrors.ReturnWindowExpiredError("x").Number)
	})
}

func TestIsAppError(t *testing.T) {
	t.Run("Success - Wrapped AppError is found", func(t *testing.T) {
		// Arrange
		inner := appErrors.InvalidStateError("Order cannot be cancelled").WithNumber(appErrors.NumIllegalTransition)
		wrapped := fmt.Errorf("cancel: %w", inner)

		// Act
		appErr, ok := appErrors.IsAppError(wrapped)

		// Assert
		require.True(t, ok)
		assert.Equal(t, appErrors.NumIllegalTransition, appErr.Number)
	})

	t.Run("Failure - Plain error is not an AppError", func(t *testing.T) {
		appErr, ok := appErrors.IsAppError(stdErrors.New("boom"))

		assert.False(t, ok)
		assert.Nil(t, appErr)
	})
}
