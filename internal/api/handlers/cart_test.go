package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/handlers"
	appErrors "github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/Muhammed-KRM/E-ticaret/internal/services/mocks"
	"github.com/Muhammed-KRM/E-ticaret/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCartHandler_GetCart(t *testing.T) {
	t.Run("Success - User cart", func(t *testing.T) {
		// Arrange
		cartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(cartService)
		principal := customer()

		cartService.On("GetCart", mock.Anything, mock.MatchedBy(func(o models.CartOwner) bool {
			return o.UserID != nil && *o.UserID == principal.UserID
		})).Return(&models.CartSnapshot{Lines: []models.CartLine{}}, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, principal, nil)

		// Act
		handler.GetCart()(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get(handlers.GuestCartHeader))
	})

	t.Run("Success - Guest id from query", func(t *testing.T) {
		cartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("GetCart", mock.Anything, models.CartOwner{GuestID: "guest_1_abcdef01"}).
			Return(&models.CartSnapshot{GuestID: "guest_1_abcdef01"}, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/cart?guestCartId=guest_1_abcdef01", nil, nil)

		handler.GetCart()(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "guest_1_abcdef01", rr.Header().Get(handlers.GuestCartHeader))
	})
}

func TestCartHandler_AddItem(t *testing.T) {
	productID := uuid.New()
	body := `{"product_id":"` + productID.String() + `","quantity":2}`

	t.Run("Success - Header wins over query and issued id is echoed", func(t *testing.T) {
		// Arrange
		cartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("AddItem", mock.Anything, models.CartOwner{GuestID: "from-header"}, &models.AddCartItemRequest{ProductID: productID, Quantity: 2}).
			Return(&models.CartSnapshot{GuestID: "from-header", ItemCount: 2}, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/cart/items?guestCartId=from-query", strings.NewReader(body), nil)
		req.Header.Set(handlers.GuestCartHeader, "from-header")

		// Act
		handler.AddItem()(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "from-header", rr.Header().Get(handlers.GuestCartHeader))

		var snapshot models.CartSnapshot
		testutils.DecodeAPIResponse(t, rr, &snapshot)
		assert.Equal(t, 2, snapshot.ItemCount)
	})

	t.Run("Failure - Zero quantity", func(t *testing.T) {
		cartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(cartService)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items",
			strings.NewReader(`{"product_id":"`+productID.String()+`","quantity":0}`), customer(), nil)

		handler.AddItem()(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		cartService.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Insufficient stock", func(t *testing.T) {
		cartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("AddItem", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, appErrors.InsufficientStockError("Only 1 of Mug in stock")).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body), customer(), nil)

		handler.AddItem()(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		resp := testutils.DecodeAPIResponse(t, rr, nil)
		assert.Equal(t, appErrors.NumInsufficientStock, resp.Error.Number)
	})
}

func TestCartHandler_UpdateItem(t *testing.T) {
	t.Run("Success - Quantity forwarded", func(t *testing.T) {
		cartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(cartService)
		principal := customer()
		lineID := uuid.New()

		cartService.On("UpdateItem", mock.Anything, mock.Anything, lineID, 0).Return(&models.CartSnapshot{}, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/cart/items/"+lineID.String(),
			strings.NewReader(`{"quantity":0}`), principal, map[string]string{"lineId": lineID.String()})

		handler.UpdateItem()(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Invalid line id", func(t *testing.T) {
		cartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(cartService)

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/cart/items/nope",
			strings.NewReader(`{"quantity":1}`), customer(), map[string]string{"lineId": "nope"})

		handler.UpdateItem()(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCartHandler_RemoveItem(t *testing.T) {
	t.Run("Failure - Guest without id", func(t *testing.T) {
		cartService := mocks.NewMockCartService(t)
		handler := handlers.NewCartHandler(cartService)
		lineID := uuid.New()

		cartService.On("RemoveItem", mock.Anything, models.CartOwner{}, lineID).
			Return(nil, appErrors.BadRequestError("Guest cart id is required").WithNumber(appErrors.NumGuestCartIDRequired)).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/api/v1/cart/items/"+lineID.String(), nil, map[string]string{"lineId": lineID.String()})

		handler.RemoveItem()(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := testutils.DecodeAPIResponse(t, rr, nil)
		assert.Equal(t, appErrors.NumGuestCartIDRequired, resp.Error.Number)
	})
}
