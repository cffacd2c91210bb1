package service_test

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"math"
	"regexp"
	"testing"

	appErrors "github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	repository "github.com/Muhammed-KRM/E-ticaret/internal/repositories"
	repoMocks "github.com/Muhammed-KRM/E-ticaret/internal/repositories/mocks"
	service "github.com/Muhammed-KRM/E-ticaret/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCartRetries = 3

func setupCartServiceTest(t *testing.T) (service.CartService, *repoMocks.MockCartRepository, *repoMocks.MockProductRepository) {
	carts := repoMocks.NewMockCartRepository(t)
	products := repoMocks.NewMockProductRepository(t)

	return service.NewCartService(carts, products, testCartRetries), carts, products
}

func mugProduct(stock int) *models.Product {
	return &models.Product{
		ID:            uuid.New(),
		Name:          "Mug",
		Price:         decimal.RequireFromString("12.50"),
		StockQuantity: stock,
		IsActive:      true,
	}
}

func userOwner() models.CartOwner {
	id := uuid.New()
	return models.CartOwner{UserID: &id}
}

// freshCart hands out a new copy on every read so retries start from clean state.
func freshCart(owner models.CartOwner, lines ...models.CartLine) func(context.Context, models.CartOwner) *models.Cart {
	return func(context.Context, models.CartOwner) *models.Cart {
		items := append([]models.CartLine{}, lines...)
		return &models.Cart{ID: uuid.New(), UserID: owner.UserID, GuestID: owner.GuestID, Items: items, Version: 1}
	}
}

func TestCartService_GetCart(t *testing.T) {
	t.Run("Success - Missing cart is empty", func(t *testing.T) {
		// Arrange
		svc, carts, _ := setupCartServiceTest(t)
		owner := userOwner()
		carts.On("GetCart", mock.Anything, owner).Return(nil, sql.ErrNoRows).Once()

		// Act
		snapshot, err := svc.GetCart(t.Context(), owner)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, snapshot.CartID)
		assert.Empty(t, snapshot.Lines)
		assert.True(t, snapshot.Total.IsZero())
	})

	t.Run("Success - Guest without id never hits the database", func(t *testing.T) {
		svc, _, _ := setupCartServiceTest(t)

		snapshot, err := svc.GetCart(t.Context(), models.CartOwner{})

		require.NoError(t, err)
		assert.Empty(t, snapshot.GuestID)
		assert.Equal(t, 0, snapshot.ItemCount)
	})

	t.Run("Success - Totals are summed", func(t *testing.T) {
		svc, carts, _ := setupCartServiceTest(t)
		owner := userOwner()
		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner,
			models.CartLine{ID: uuid.New(), ProductName: "Mug", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 2},
			models.CartLine{ID: uuid.New(), ProductName: "Coaster", UnitPrice: decimal.RequireFromString("5"), Quantity: 1},
		), nil).Once()

		snapshot, err := svc.GetCart(t.Context(), owner)

		require.NoError(t, err)
		assert.Equal(t, 3, snapshot.ItemCount)
		assert.True(t, decimal.RequireFromString("30").Equal(snapshot.Total))
	})

	t.Run("Failure - Database error", func(t *testing.T) {
		svc, carts, _ := setupCartServiceTest(t)
		owner := userOwner()
		carts.On("GetCart", mock.Anything, owner).Return(nil, stdErrors.New("db down")).Once()

		_, err := svc.GetCart(t.Context(), owner)

		requireAppError(t, err, appErrors.NumUnexpected)
	})
}

func TestCartService_AddItem(t *testing.T) {
	t.Run("Success - First item creates the cart", func(t *testing.T) {
		// Arrange
		svc, carts, products := setupCartServiceTest(t)
		owner := userOwner()
		product := mugProduct(5)

		carts.On("GetCart", mock.Anything, owner).Return(nil, sql.ErrNoRows).Once()
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()
		carts.On("CreateCart", mock.Anything, mock.MatchedBy(func(c *models.Cart) bool {
			return c.UserID == owner.UserID && len(c.Items) == 1 && c.Items[0].Quantity == 2
		})).Return(nil).Once()

		// Act
		snapshot, err := svc.AddItem(t.Context(), owner, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 2})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, snapshot.CartID)
		assert.Equal(t, 2, snapshot.ItemCount)
		assert.True(t, decimal.RequireFromString("25").Equal(snapshot.Total))
	})

	t.Run("Success - Guest without id is issued one", func(t *testing.T) {
		svc, carts, products := setupCartServiceTest(t)
		product := mugProduct(5)

		carts.On("GetCart", mock.Anything, mock.MatchedBy(func(o models.CartOwner) bool { return o.GuestID != "" })).Return(nil, sql.ErrNoRows).Once()
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()
		carts.On("CreateCart", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		snapshot, err := svc.AddItem(t.Context(), models.CartOwner{}, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 1})

		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^guest_\d+_[0-9a-f]{8}$`), snapshot.GuestID)
	})

	t.Run("Success - Re-adding merges and takes the current price", func(t *testing.T) {
		// Arrange
		svc, carts, products := setupCartServiceTest(t)
		owner := userOwner()
		product := mugProduct(10)
		product.DiscountedPrice = decimal.NewNullDecimal(decimal.RequireFromString("9.99"))
		line := models.CartLine{ID: uuid.New(), ProductID: product.ID, ProductName: "Old Mug", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 2}

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner, line), nil).Once()
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()
		carts.On("SaveCart", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		snapshot, err := svc.AddItem(t.Context(), owner, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 3})

		// Assert
		require.NoError(t, err)
		require.Len(t, snapshot.Lines, 1)
		assert.Equal(t, 5, snapshot.Lines[0].Quantity)
		assert.Equal(t, "Mug", snapshot.Lines[0].ProductName)
		assert.True(t, decimal.RequireFromString("9.99").Equal(snapshot.Lines[0].UnitPrice))
	})

	t.Run("Success - Stale write is retried", func(t *testing.T) {
		// Arrange
		svc, carts, products := setupCartServiceTest(t)
		owner := userOwner()
		product := mugProduct(10)

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner), nil).Twice()
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Twice()
		carts.On("SaveCart", mock.Anything, mock.Anything).Return(repository.ErrStaleCart).Once()
		carts.On("SaveCart", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		snapshot, err := svc.AddItem(t.Context(), owner, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 1})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, snapshot.ItemCount)
	})

	t.Run("Success - Concurrent create is retried as an update", func(t *testing.T) {
		svc, carts, products := setupCartServiceTest(t)
		owner := userOwner()
		product := mugProduct(10)

		carts.On("GetCart", mock.Anything, owner).Return(nil, sql.ErrNoRows).Once()
		carts.On("CreateCart", mock.Anything, mock.Anything).Return(repository.ErrCartExists).Once()
		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner), nil).Once()
		carts.On("SaveCart", mock.Anything, mock.Anything).Return(nil).Once()
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Twice()

		_, err := svc.AddItem(t.Context(), owner, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 1})

		require.NoError(t, err)
	})

	t.Run("Failure - Retries exhausted", func(t *testing.T) {
		// Arrange
		svc, carts, products := setupCartServiceTest(t)
		owner := userOwner()
		product := mugProduct(10)

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner), nil).Times(testCartRetries)
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Times(testCartRetries)
		carts.On("SaveCart", mock.Anything, mock.Anything).Return(repository.ErrStaleCart).Times(testCartRetries)

		// Act
		snapshot, err := svc.AddItem(t.Context(), owner, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 1})

		// Assert
		assert.Nil(t, snapshot)
		appErr := requireAppError(t, err, appErrors.NumCartConflict)
		assert.Equal(t, appErrors.ErrCodeConflict, appErr.Code)
	})

	t.Run("Failure - Inactive product", func(t *testing.T) {
		svc, carts, products := setupCartServiceTest(t)
		owner := userOwner()
		product := mugProduct(10)
		product.IsActive = false

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner), nil).Once()
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()

		_, err := svc.AddItem(t.Context(), owner, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 1})

		requireAppError(t, err, appErrors.NumProductUnavailable)
		carts.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown product", func(t *testing.T) {
		svc, carts, products := setupCartServiceTest(t)
		owner := userOwner()
		productID := uuid.New()

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner), nil).Once()
		products.On("GetProductByID", mock.Anything, productID).Return(nil, sql.ErrNoRows).Once()

		_, err := svc.AddItem(t.Context(), owner, &models.AddCartItemRequest{ProductID: productID, Quantity: 1})

		requireAppError(t, err, appErrors.NumProductUnavailable)
	})

	t.Run("Failure - Merged quantity exceeds stock", func(t *testing.T) {
		svc, carts, products := setupCartServiceTest(t)
		owner := userOwner()
		product := mugProduct(4)
		line := models.CartLine{ID: uuid.New(), ProductID: product.ID, ProductName: "Mug", UnitPrice: product.Price, Quantity: 3}

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner, line), nil).Once()
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()

		_, err := svc.AddItem(t.Context(), owner, &models.AddCartItemRequest{ProductID: product.ID, Quantity: 2})

		requireAppError(t, err, appErrors.NumInsufficientStock)
	})

	t.Run("Failure - Huge quantity on re-add does not wrap past the stock check", func(t *testing.T) {
		// Arrange
		svc, carts, products := setupCartServiceTest(t)
		owner := userOwner()
		product := mugProduct(5)
		line := models.CartLine{ID: uuid.New(), ProductID: product.ID, ProductName: "Mug", UnitPrice: product.Price, Quantity: 1}

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner, line), nil).Once()
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()

		// Act
		_, err := svc.AddItem(t.Context(), owner, &models.AddCartItemRequest{ProductID: product.ID, Quantity: math.MaxInt})

		// Assert
		requireAppError(t, err, appErrors.NumInsufficientStock)
		carts.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything)
	})
}

func TestAddCartItemRequest_QuantityBounds(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name     string
		quantity int
		valid    bool
	}{
		{name: "Success - One", quantity: 1, valid: true},
		{name: "Success - Upper bound", quantity: 10000, valid: true},
		{name: "Failure - Zero", quantity: 0},
		{name: "Failure - Above upper bound", quantity: math.MaxInt},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(&models.AddCartItemRequest{ProductID: uuid.New(), Quantity: tc.quantity})

			assert.Equal(t, tc.valid, err == nil)
		})
	}
}

func TestCartService_UpdateItem(t *testing.T) {
	product := mugProduct(5)
	lineID := uuid.New()
	line := models.CartLine{ID: lineID, ProductID: product.ID, ProductName: "Mug", UnitPrice: product.Price, Quantity: 1}

	t.Run("Success - Quantity is overwritten", func(t *testing.T) {
		// Arrange
		svc, carts, products := setupCartServiceTest(t)
		owner := userOwner()

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner, line), nil).Once()
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()
		carts.On("SaveCart", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		snapshot, err := svc.UpdateItem(t.Context(), owner, lineID, 4)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 4, snapshot.Lines[0].Quantity)
	})

	t.Run("Success - Zero removes the line", func(t *testing.T) {
		svc, carts, _ := setupCartServiceTest(t)
		owner := userOwner()

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner, line), nil).Once()
		carts.On("SaveCart", mock.Anything, mock.MatchedBy(func(c *models.Cart) bool { return len(c.Items) == 0 })).Return(nil).Once()

		snapshot, err := svc.UpdateItem(t.Context(), owner, lineID, 0)

		require.NoError(t, err)
		assert.Empty(t, snapshot.Lines)
	})

	t.Run("Failure - Above stock", func(t *testing.T) {
		svc, carts, products := setupCartServiceTest(t)
		owner := userOwner()

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner, line), nil).Once()
		products.On("GetProductByID", mock.Anything, product.ID).Return(product, nil).Once()

		_, err := svc.UpdateItem(t.Context(), owner, lineID, 6)

		requireAppError(t, err, appErrors.NumInsufficientStock)
	})

	t.Run("Failure - Unknown line", func(t *testing.T) {
		svc, carts, _ := setupCartServiceTest(t)
		owner := userOwner()

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner, line), nil).Once()

		_, err := svc.UpdateItem(t.Context(), owner, uuid.New(), 2)

		requireAppError(t, err, appErrors.NumCartLineNotFound)
	})

	t.Run("Failure - No cart at all", func(t *testing.T) {
		svc, carts, _ := setupCartServiceTest(t)
		owner := userOwner()

		carts.On("GetCart", mock.Anything, owner).Return(nil, sql.ErrNoRows).Once()

		_, err := svc.UpdateItem(t.Context(), owner, lineID, 2)

		requireAppError(t, err, appErrors.NumCartLineNotFound)
	})

	t.Run("Failure - Guest without id", func(t *testing.T) {
		svc, _, _ := setupCartServiceTest(t)

		_, err := svc.UpdateItem(t.Context(), models.CartOwner{}, lineID, 2)

		requireAppError(t, err, appErrors.NumGuestCartIDRequired)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	t.Run("Success - Guest line is removed", func(t *testing.T) {
		// Arrange
		svc, carts, _ := setupCartServiceTest(t)
		owner := models.CartOwner{GuestID: "guest_1_abcdef01"}
		keep := models.CartLine{ID: uuid.New(), ProductName: "Coaster", UnitPrice: decimal.RequireFromString("5"), Quantity: 1}
		drop := models.CartLine{ID: uuid.New(), ProductName: "Mug", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 1}

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner, keep, drop), nil).Once()
		carts.On("SaveCart", mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		snapshot, err := svc.RemoveItem(t.Context(), owner, drop.ID)

		// Assert
		require.NoError(t, err)
		require.Len(t, snapshot.Lines, 1)
		assert.Equal(t, keep.ID, snapshot.Lines[0].ID)
		assert.Equal(t, "guest_1_abcdef01", snapshot.GuestID)
	})

	t.Run("Failure - Guest without id", func(t *testing.T) {
		svc, _, _ := setupCartServiceTest(t)

		_, err := svc.RemoveItem(t.Context(), models.CartOwner{}, uuid.New())

		requireAppError(t, err, appErrors.NumGuestCartIDRequired)
	})

	t.Run("Failure - Save error", func(t *testing.T) {
		svc, carts, _ := setupCartServiceTest(t)
		owner := userOwner()
		line := models.CartLine{ID: uuid.New(), Quantity: 1}

		carts.On("GetCart", mock.Anything, owner).Return(freshCart(owner, line), nil).Once()
		carts.On("SaveCart", mock.Anything, mock.Anything).Return(stdErrors.New("db down")).Once()

		_, err := svc.RemoveItem(t.Context(), owner, line.ID)

		requireAppError(t, err, appErrors.NumUnexpected)
	})
}
