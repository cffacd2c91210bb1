package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	service "github.com/Muhammed-KRM/E-ticaret/internal/services"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications godoc
//	@Summary		Sent notifications (admin)
//	@Description	Pages through the notification log, newest first.
//	@Tags			Notifications
//	@Produce		json
//	@Param			page		query		int														false	"Page number (default: 1)"				minimum(1)
//	@Param			pageSize	query		int														false	"Items per page (default and max: 50)"	minimum(1)	maximum(50)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Notification}	"Notifications"
//	@Failure		403			{object}	response.ErrorResponse									"Admin role required"
//	@Failure		500			{object}	response.ErrorResponse									"Internal server error"
//	@Security		TokenAuth
//	@Router			/notifications [get]
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize := pageParams(r)

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), page, pageSize)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		page, pageSize = models.NormalizePage(page, pageSize, 50)

		response.Success(w, http.StatusOK, &models.PaginatedResponse{Data: notifications, Total: total, Page: page, PageSize: pageSize})
	}
}
