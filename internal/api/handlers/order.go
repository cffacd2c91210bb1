package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	service "github.com/Muhammed-KRM/E-ticaret/internal/services"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// CreateOrder godoc
//	@Summary		Place an order from the current cart
//	@Description	Snapshots the caller's cart into a pending order and clears the cart. Guests pass their cart id and contact details in the body.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CreateOrderRequest	true	"Shipping details (and guest details for guest checkout)"
//	@Success		201		{object}	models.Order				"Order created"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error, empty cart or missing guest details"
//	@Failure		409		{object}	response.ErrorResponse		"Cart changed during checkout"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Router			/orders [post]
func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create order input")
			return
		}

		principal, ok := middleware.PrincipalFromContext(r.Context())
		if !ok {
			principal = nil
			if req.GuestCartID == "" {
				req.GuestCartID = guestCartID(r)
			}
		}

		order, err := h.orderService.CreateOrder(r.Context(), principal, &req)
		if err != nil {
			logger.Error("Failed to create order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order created successfully", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//	@Summary		Get an order
//	@Description	Returns an order owned by the caller (or any order for admins) with the actions still available on it.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.OrderDetails		"Order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		TokenAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		principal, id, ok := h.orderTarget(w, r)
		if !ok {
			return
		}

		details, err := h.orderService.GetOrder(r.Context(), principal, id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to get order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, details)
	}
}

// ListMyOrders godoc
//	@Summary		List the caller's orders
//	@Tags			Orders
//	@Produce		json
//	@Param			page		query		int												false	"Page number (default: 1)"					minimum(1)
//	@Param			pageSize	query		int												false	"Items per page (default and max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Order}	"Orders"
//	@Failure		401			{object}	response.ErrorResponse							"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse							"Internal server error"
//	@Security		TokenAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListMyOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		principal, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		page, pageSize := pageParams(r)

		orders, total, err := h.orderService.ListMyOrders(r.Context(), principal, page, pageSize)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		page, pageSize = models.NormalizePage(page, pageSize, 100)

		response.Success(w, http.StatusOK, &models.PaginatedResponse{Data: orders, Total: total, Page: page, PageSize: pageSize})
	}
}

// ListOrders godoc
//	@Summary		List all orders (admin)
//	@Description	Filters orders by status, customer and creation date. Delivered, cancelled and failed orders are hidden unless a status filter or includeClosed=true is given.
//	@Tags			Admin
//	@Produce		json
//	@Param			status				query		string											false	"Order status"
//	@Param			userId				query		string											false	"Customer ID (UUID)"	Format(uuid)
//	@Param			from				query		string											false	"Created at or after (RFC3339 or YYYY-MM-DD)"
//	@Param			to					query		string											false	"Created before (RFC3339 or YYYY-MM-DD)"
//	@Param			includeClosed	query		bool											false	"Include delivered, cancelled and failed orders"
//	@Param			sort				query		string											false	"asc or desc (default)"
//	@Param			page				query		int												false	"Page number (default: 1)"					minimum(1)
//	@Param			pageSize			query		int												false	"Items per page (default and max: 100)"	minimum(1)	maximum(100)
//	@Success		200					{object}	models.PaginatedResponse{Data=[]models.Order}	"Orders"
//	@Failure		400					{object}	response.ErrorResponse							"Invalid filter"
//	@Failure		401					{object}	response.ErrorResponse							"Authentication required"
//	@Failure		403					{object}	response.ErrorResponse							"Admin role required"
//	@Failure		500					{object}	response.ErrorResponse							"Internal server error"
//	@Security		TokenAuth
//	@Router			/admin/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter, err := parseOrderFilter(r)
		if err != nil {
			logger.Warn("Invalid order filter", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		orders, total, err := h.orderService.ListOrders(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		page, pageSize := models.NormalizePage(filter.Page, filter.PageSize, 100)

		response.Success(w, http.StatusOK, &models.PaginatedResponse{Data: orders, Total: total, Page: page, PageSize: pageSize})
	}
}

// GetTracking godoc
//	@Summary		Shipment tracking for an order
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.TrackingInfo		"Tracking"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		TokenAuth
//	@Router			/orders/{id}/tracking [get]
func (h *OrderHandler) GetTracking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		principal, id, ok := h.orderTarget(w, r)
		if !ok {
			return
		}

		tracking, err := h.orderService.GetTracking(r.Context(), principal, id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, tracking)
	}
}

// CancelOrder godoc
//	@Summary		Cancel an order
//	@Description	Cancels a pending, paid or processing order. Paid orders are refunded in full first.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Order ID (UUID)"	Format(uuid)
//	@Param			reason	body		models.CancelOrderRequest	false	"Cancellation reason"
//	@Success		200		{object}	models.Order				"Cancelled order"
//	@Failure		400		{object}	response.ErrorResponse		"Invalid input"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Order not found"
//	@Failure		409		{object}	response.ErrorResponse		"Order can no longer be cancelled"
//	@Failure		502		{object}	response.ErrorResponse		"Refund failed"
//	@Security		TokenAuth
//	@Router			/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		principal, id, ok := h.orderTarget(w, r)
		if !ok {
			return
		}

		var req models.CancelOrderRequest
		if r.ContentLength != 0 && !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cancel order input")
			return
		}

		order, err := h.orderService.CancelOrder(r.Context(), principal, id, &req)
		if err != nil {
			logger.Warn("Failed to cancel order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order cancelled", slog.String("orderId", id.String()))
		response.Success(w, http.StatusOK, order)
	}
}

// RequestReturn godoc
//	@Summary		Request a return
//	@Description	Opens a return for a delivered order within the return window.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Order ID (UUID)"	Format(uuid)
//	@Param			reason	body		models.ReturnOrderRequest	true	"Return reason"
//	@Success		200		{object}	models.Order				"Order awaiting return review"
//	@Failure		400		{object}	response.ErrorResponse		"Invalid input"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Order not found"
//	@Failure		409		{object}	response.ErrorResponse		"Not delivered, window expired or return already started"
//	@Security		TokenAuth
//	@Router			/orders/{id}/return [post]
func (h *OrderHandler) RequestReturn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		principal, id, ok := h.orderTarget(w, r)
		if !ok {
			return
		}

		var req models.ReturnOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid return request input")
			return
		}

		order, err := h.orderService.RequestReturn(r.Context(), principal, id, &req)
		if err != nil {
			logger.Warn("Failed to request return", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Return requested", slog.String("orderId", id.String()))
		response.Success(w, http.StatusOK, order)
	}
}

// UpdateShipping godoc
//	@Summary		Set shipment details (admin)
//	@Description	Records the tracking number and carrier and marks the order shipped.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			shipping	body		models.UpdateShippingRequest	true	"Tracking details"
//	@Success		200			{object}	models.Order					"Shipped order"
//	@Failure		400			{object}	response.ErrorResponse			"Invalid input"
//	@Failure		403			{object}	response.ErrorResponse			"Admin role required"
//	@Failure		404			{object}	response.ErrorResponse			"Order not found"
//	@Failure		409			{object}	response.ErrorResponse			"Order cannot be shipped"
//	@Security		TokenAuth
//	@Router			/orders/{id}/shipping [put]
func (h *OrderHandler) UpdateShipping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		principal, id, ok := h.orderTarget(w, r)
		if !ok {
			return
		}

		var req models.UpdateShippingRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid shipping input")
			return
		}

		order, err := h.orderService.UpdateShipping(r.Context(), principal, id, &req)
		if err != nil {
			logger.Warn("Failed to update shipping", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order shipped", slog.String("orderId", id.String()))
		response.Success(w, http.StatusOK, order)
	}
}

// UpdateStatus godoc
//	@Summary		Set an order status (admin)
//	@Description	Sets any known status. This bypasses the transition table.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success		200		{object}	models.Order					"Updated order"
//	@Failure		400		{object}	response.ErrorResponse			"Unknown status"
//	@Failure		403		{object}	response.ErrorResponse			"Admin role required"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Failure		409		{object}	response.ErrorResponse			"Order changed concurrently"
//	@Security		TokenAuth
//	@Router			/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		principal, id, ok := h.orderTarget(w, r)
		if !ok {
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid status input")
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), principal, id, &req)
		if err != nil {
			logger.Warn("Failed to update order status", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated", slog.String("orderId", id.String()), slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}

// orderTarget resolves the caller and the {id} path parameter shared by the per-order routes.
func (h *OrderHandler) orderTarget(w http.ResponseWriter, r *http.Request) (*models.Principal, uuid.UUID, bool) {

	principal, ok := requirePrincipal(w, r)
	if !ok {
		return nil, uuid.Nil, false
	}

	id, err := utils.ParseID(r, "id")
	if err != nil {
		middleware.LoggerFromContext(r.Context()).Warn("Invalid order id", slog.String("error", err.Error()))
		response.Error(w, err)
		return nil, uuid.Nil, false
	}

	return principal, id, true
}

func parseOrderFilter(r *http.Request) (models.OrderFilter, error) {

	query := r.URL.Query()

	var filter models.OrderFilter
	filter.Page, filter.PageSize = pageParams(r)
	filter.IncludeClosed = query.Get("includeClosed") == "true"
	filter.SortAsc = query.Get("sort") == "asc"

	if raw := query.Get("status"); raw != "" {
		status := models.OrderStatus(raw)
		filter.Status = &status
	}

	if raw := query.Get("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.BadRequestError("Invalid userId format").WithError(err)
		}
		filter.UserID = &userID
	}

	for key, dest := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := query.Get(key)
		if raw == "" {
			continue
		}

		at, err := parseTime(raw)
		if err != nil {
			return filter, errors.BadRequestError("Invalid " + key + " date").WithError(err)
		}
		*dest = &at
	}

	return filter, nil
}

func parseTime(raw string) (time.Time, error) {
	if at, err := time.Parse(time.RFC3339, raw); err == nil {
		return at, nil
	}

	return time.Parse(time.DateOnly, raw)
}
