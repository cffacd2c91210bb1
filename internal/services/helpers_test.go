package service_test

import (
	"testing"
	"time"

	appErrors "github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func requireAppError(t *testing.T, err error, number int) *appErrors.AppError {
	t.Helper()

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	assert.Equal(t, number, appErr.Number)

	return appErr
}

// decimalEq matches a decimal argument by value, ignoring its scale.
func decimalEq(want decimal.Decimal) any {
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(want) })
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func customerPrincipal() *models.Principal {
	user := &models.User{ID: uuid.New(), Name: "Ada Lovelace", Email: "ada@example.com", Phone: "5551234", Role: models.RoleUser}

	return &models.Principal{UserID: user.ID, Role: user.Role, User: user}
}

func adminPrincipal() *models.Principal {
	user := &models.User{ID: uuid.New(), Name: "Grace", Email: "grace@example.com", Role: models.RoleAdmin}

	return &models.Principal{UserID: user.ID, Role: user.Role, User: user}
}

func orderFor(principal *models.Principal, status models.OrderStatus) *models.Order {
	id := uuid.New()
	order := &models.Order{
		ID:              id,
		MerchantOID:     "0f8fad5bd9cb469fa16570867728950e",
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		ShippingAddress: "1 Main St",
		TotalAmount:     decimal.RequireFromString("30.00"),
		Status:          status,
		Items: []models.OrderItem{
			{ID: uuid.New(), OrderID: id, ProductID: uuid.New(), ProductName: "Mug", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 2},
			{ID: uuid.New(), OrderID: id, ProductID: uuid.New(), ProductName: "Coaster", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 1},
		},
	}

	if principal != nil {
		userID := principal.UserID
		order.UserID = &userID
	}

	return order
}
