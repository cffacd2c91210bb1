package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	service "github.com/Muhammed-KRM/E-ticaret/internal/services"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type RefundHandler struct {
	refundService service.RefundService
	validator     *validator.Validate
}

func NewRefundHandler(refundService service.RefundService) *RefundHandler {
	return &RefundHandler{refundService: refundService, validator: validator.New()}
}

// ListPending godoc
//	@Summary		Returns awaiting review (admin)
//	@Tags			Refunds
//	@Produce		json
//	@Param			page		query		int												false	"Page number (default: 1)"					minimum(1)
//	@Param			pageSize	query		int												false	"Items per page (default and max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Order}	"Orders with a pending return, oldest first"
//	@Failure		403			{object}	response.ErrorResponse							"Admin role required"
//	@Failure		500			{object}	response.ErrorResponse							"Internal server error"
//	@Security		TokenAuth
//	@Router			/refunds/pending [get]
func (h *RefundHandler) ListPending() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize := pageParams(r)

		orders, total, err := h.refundService.ListPendingReturns(r.Context(), page, pageSize)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list pending returns", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		page, pageSize = models.NormalizePage(page, pageSize, 100)

		response.Success(w, http.StatusOK, &models.PaginatedResponse{Data: orders, Total: total, Page: page, PageSize: pageSize})
	}
}

// Approve godoc
//	@Summary		Approve a return (admin)
//	@Description	Refunds the given amount, or the full remaining total when omitted, through the gateway.
//	@Tags			Refunds
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Order ID (UUID)"	Format(uuid)
//	@Param			review	body		models.ProcessReturnRequest	false	"Refund amount and note"
//	@Success		200		{object}	models.Order				"Refunded order"
//	@Failure		400		{object}	response.ErrorResponse		"Invalid amount"
//	@Failure		403		{object}	response.ErrorResponse		"Admin role required"
//	@Failure		404		{object}	response.ErrorResponse		"Order not found"
//	@Failure		409		{object}	response.ErrorResponse		"No pending return"
//	@Failure		502		{object}	response.ErrorResponse		"Gateway refund failed"
//	@Security		TokenAuth
//	@Router			/refunds/{id}/approve [post]
func (h *RefundHandler) Approve() http.HandlerFunc {
	return h.review("approve", h.refundService.ApproveReturn)
}

// Reject godoc
//	@Summary		Reject a return (admin)
//	@Tags			Refunds
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Order ID (UUID)"	Format(uuid)
//	@Param			review	body		models.ProcessReturnRequest	false	"Rejection note"
//	@Success		200		{object}	models.Order				"Order with the return rejected"
//	@Failure		403		{object}	response.ErrorResponse		"Admin role required"
//	@Failure		404		{object}	response.ErrorResponse		"Order not found"
//	@Failure		409		{object}	response.ErrorResponse		"No pending return"
//	@Security		TokenAuth
//	@Router			/refunds/{id}/reject [post]
func (h *RefundHandler) Reject() http.HandlerFunc {
	return h.review("reject", h.refundService.RejectReturn)
}

type reviewFunc func(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.ProcessReturnRequest) (*models.Order, error)

func (h *RefundHandler) review(action string, apply reviewFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("action", action))

		principal, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.ProcessReturnRequest
		if r.ContentLength != 0 && !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid return review input")
			return
		}

		order, err := apply(r.Context(), principal, id, &req)
		if err != nil {
			logger.Warn("Return review failed", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Return reviewed", slog.String("orderId", id.String()), slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}

// RequestRefund godoc
//	@Summary		Refund an order by its token (admin)
//	@Description	Refunds a paid, processing, shipped or delivered order looked up by merchant order token.
//	@Tags			Refunds
//	@Accept			json
//	@Produce		json
//	@Param			refund	body		models.RefundRequest	true	"Order token, amount and reason"
//	@Success		200		{object}	models.Order			"Refunded order"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid amount"
//	@Failure		403		{object}	response.ErrorResponse	"Admin role required"
//	@Failure		404		{object}	response.ErrorResponse	"Order not found"
//	@Failure		409		{object}	response.ErrorResponse	"Order is not refundable"
//	@Failure		502		{object}	response.ErrorResponse	"Gateway refund failed"
//	@Security		TokenAuth
//	@Router			/refunds/request [post]
func (h *RefundHandler) RequestRefund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		principal, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		var req models.RefundRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid refund input")
			return
		}

		order, err := h.refundService.RequestRefund(r.Context(), principal, &req)
		if err != nil {
			logger.Warn("Refund failed", slog.String("merchantOid", req.MerchantOID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order refunded", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusOK, order)
	}
}
