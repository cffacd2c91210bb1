package handlers_test

import (
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/handlers"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/Muhammed-KRM/E-ticaret/internal/services/mocks"
	"github.com/Muhammed-KRM/E-ticaret/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotificationHandler_ListNotifications(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		notificationService := mocks.NewMockNotificationService(t)
		handler := handlers.NewNotificationHandler(notificationService)

		notificationService.On("ListNotifications", mock.Anything, 3, 10).
			Return([]*models.Notification{{Recipient: "ada@example.com", Status: models.StatusSent}}, 21, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/notifications?page=3&pageSize=10", nil, admin(), nil)

		// Act
		handler.ListNotifications()(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var page models.PaginatedResponse
		testutils.DecodeAPIResponse(t, rr, &page)
		assert.Equal(t, 3, page.Page)
		assert.Equal(t, 21, page.Total)
	})

	t.Run("Failure - Service error", func(t *testing.T) {
		notificationService := mocks.NewMockNotificationService(t)
		handler := handlers.NewNotificationHandler(notificationService)

		notificationService.On("ListNotifications", mock.Anything, 0, 0).Return(nil, 0, stdErrors.New("boom")).Once()

		rr := httptest.NewRecorder()
		handler.ListNotifications()(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/notifications", nil, admin(), nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "boom")
	})
}
