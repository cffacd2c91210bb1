package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/metrics"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	repository "github.com/Muhammed-KRM/E-ticaret/internal/repositories"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils"
	"github.com/Muhammed-KRM/E-ticaret/pkg/paytr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrder(ctx context.Context, principal *models.Principal, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, principal *models.Principal, id uuid.UUID) (*models.OrderDetails, error)
	ListMyOrders(ctx context.Context, principal *models.Principal, page, size int) ([]*models.Order, int, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int, error)
	GetTracking(ctx context.Context, principal *models.Principal, id uuid.UUID) (*models.TrackingInfo, error)
	CancelOrder(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.CancelOrderRequest) (*models.Order, error)
	UpdateShipping(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.UpdateShippingRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	RequestReturn(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.ReturnOrderRequest) (*models.Order, error)
}

type orderService struct {
	lifecycle
	carts        repository.CartRepository
	users        repository.UserRepository
	gateway      paytr.Client
	notifier     Notifier
	returnWindow time.Duration
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	users repository.UserRepository,
	audit repository.AuditRepository,
	gateway paytr.Client,
	notifier Notifier,
	returnWindow time.Duration,
) OrderService {
	return &orderService{
		lifecycle:    lifecycle{orders: orders, audit: audit, now: time.Now},
		carts:        carts,
		users:        users,
		gateway:      gateway,
		notifier:     notifier,
		returnWindow: returnWindow,
	}
}

func orderNotFound() *errors.AppError {
	return errors.NotFoundError("Order not found").WithNumber(errors.NumOrderNotFound)
}

// NewMerchantOID returns the order token sent to the gateway: a uuid without dashes.
func NewMerchantOID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CreateOrder turns the caller's cart into a pending order and consumes the cart.
func (s *orderService) CreateOrder(ctx context.Context, principal *models.Principal, req *models.CreateOrderRequest) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	order := &models.Order{
		ID:              uuid.New(),
		MerchantOID:     NewMerchantOID(),
		ShippingAddress: utils.SanitizeText(req.ShippingAddress),
		BillingAddress:  utils.SanitizeText(req.BillingAddress),
		Status:          models.OrderStatusPending,
	}

	var owner models.CartOwner

	if principal != nil {
		user, err := s.customer(ctx, principal)
		if err != nil {
			return nil, err
		}

		owner = models.CartOwner{UserID: &user.ID}
		order.UserID = &user.ID
		order.CustomerName = user.Name
		order.CustomerEmail = user.Email
		order.CustomerPhone = user.Phone
	} else {
		if req.GuestCartID == "" || strings.TrimSpace(req.GuestName) == "" || req.GuestEmail == "" {
			return nil, errors.ValidationError("Guest checkout needs a cart id, a name and an email").WithNumber(errors.NumGuestInfoRequired)
		}

		owner = models.CartOwner{GuestID: req.GuestCartID}
		order.GuestID = req.GuestCartID
		order.CustomerName = utils.SanitizeText(req.GuestName)
		order.CustomerEmail = strings.ToLower(strings.TrimSpace(req.GuestEmail))
		order.CustomerPhone = utils.SanitizeText(req.GuestPhone)
	}

	if order.BillingAddress == "" {
		order.BillingAddress = order.ShippingAddress
	}

	cart, err := s.carts.GetCart(ctx, owner)
	if err != nil && !stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if cart == nil || len(cart.Items) == 0 {
		return nil, errors.BadRequestError("Cart is empty").WithNumber(errors.NumCartEmpty)
	}

	total := decimal.Zero
	order.Items = make([]models.OrderItem, 0, len(cart.Items))

	for _, line := range cart.Items {
		item := models.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		}

		total = total.Add(item.Subtotal())
		order.Items = append(order.Items, item)
	}

	order.TotalAmount = total

	if err := s.orders.CreateOrder(ctx, order, cart); err != nil {
		if stdErrors.Is(err, repository.ErrStaleCart) {
			return nil, errors.ConflictError("Cart changed during checkout, please review it and retry").WithNumber(errors.NumCheckoutConflict)
		}

		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	s.record(ctx, models.AuditCreate, nil, order, actorID(principal))
	metrics.OrderTransitions.WithLabelValues("none", string(order.Status)).Inc()

	logger.Info("Order created",
		slog.String("orderId", order.ID.String()),
		slog.String("merchantOid", order.MerchantOID),
		slog.String("owner", owner.String()),
		slog.String("total", order.TotalAmount.StringFixed(2)),
	)

	s.notifier.OrderPlaced(ctx, order)

	return order, nil
}

func (s *orderService) customer(ctx context.Context, principal *models.Principal) (*models.User, error) {

	if principal.User != nil {
		return principal.User, nil
	}

	user, err := s.users.GetUserByID(ctx, principal.UserID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.UnauthorizedError("User not found").WithError(ErrUserNotFound)
		}

		return nil, errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	return user, nil
}

func (s *orderService) GetOrder(ctx context.Context, principal *models.Principal, id uuid.UUID) (*models.OrderDetails, error) {

	order, err := s.loadVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	return &models.OrderDetails{
		Order:            order,
		CanBeCancelled:   cancellable(order.Status),
		CanRequestReturn: order.Status == models.OrderStatusDelivered && returnWindowOpen(order, s.now(), s.returnWindow),
	}, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, principal *models.Principal, page, size int) ([]*models.Order, int, error) {

	page, size = models.NormalizePage(page, size, 50)

	orders, total, err := s.orders.ListOrdersByUser(ctx, principal.UserID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, total, nil
}

// ListOrders is the admin view. Without a status filter delivered orders are left out.
func (s *orderService) ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int, error) {

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, errors.ValidationError("Unknown order status").WithNumber(errors.NumUnknownStatus)
	}

	filter.Page, filter.PageSize = models.NormalizePage(filter.Page, filter.PageSize, 100)

	orders, total, err := s.orders.ListOrders(ctx, filter)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, total, nil
}

func (s *orderService) GetTracking(ctx context.Context, principal *models.Principal, id uuid.UUID) (*models.TrackingInfo, error) {

	order, err := s.loadVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	return &models.TrackingInfo{
		OrderID:         order.ID,
		Status:          order.Status,
		TrackingNumber:  order.TrackingNumber,
		ShippingCarrier: order.ShippingCarrier,
		ShippedAt:       order.ShippedAt,
		DeliveredAt:     order.DeliveredAt,
	}, nil
}

// CancelOrder cancels a pending, paid or processing order. A paid order is refunded in
// full first; if the gateway refuses, the order is left untouched.
func (s *orderService) CancelOrder(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.CancelOrderRequest) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	order, err := s.loadVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if !cancellable(order.Status) {
		return nil, errors.InvalidStateError("Order cannot be cancelled in status " + string(order.Status)).
			WithNumber(errors.NumIllegalTransition)
	}

	refunded := false

	if order.Status == models.OrderStatusPaid {
		err := s.gateway.RequestRefund(ctx, order.MerchantOID, order.TotalAmount)
		metrics.ObserveGateway("refund", err)

		if err != nil {
			logger.Error("Refund for cancelled order failed", slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))

			return nil, errors.ExternalServiceError("Refund failed, the order was not cancelled").
				WithNumber(errors.NumCancelRefundFailed).
				WithError(err)
		}

		refunded = true
	}

	reason := utils.SanitizeText(req.Reason)

	err = s.transition(ctx, order, models.OrderStatusCancelled, actorID(principal), func(o *models.Order) {
		if reason != "" {
			o.CancellationReason = &reason
		}

		if refunded {
			o.RefundedAmount = decimal.NewNullDecimal(o.TotalAmount)
		}
	})
	if err != nil {
		if refunded {
			logger.Error("Order refunded but not marked cancelled", slog.String("orderId", order.ID.String()))
		}

		return nil, err
	}

	s.notifier.StatusChanged(ctx, order)

	return order, nil
}

// UpdateShipping records tracking details and marks the order shipped.
func (s *orderService) UpdateShipping(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.UpdateShippingRequest) (*models.Order, error) {

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, models.OrderStatusShipped) {
		return nil, errors.InvalidStateError("Order cannot be shipped in status " + string(order.Status)).
			WithNumber(errors.NumIllegalTransition)
	}

	tracking := utils.SanitizeText(req.TrackingNumber)
	carrier := utils.SanitizeText(req.ShippingCarrier)
	now := s.now().UTC()

	err = s.transition(ctx, order, models.OrderStatusShipped, actorID(principal), func(o *models.Order) {
		o.TrackingNumber = &tracking
		o.ShippingCarrier = &carrier

		if o.ShippedAt == nil {
			o.ShippedAt = &now
		}
	})
	if err != nil {
		return nil, err
	}

	s.notifier.StatusChanged(ctx, order)

	return order, nil
}

// UpdateStatus sets any known status without consulting the transition table.
func (s *orderService) UpdateStatus(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {

	if !req.Status.Valid() {
		return nil, errors.ValidationError("Unknown order status").WithNumber(errors.NumUnknownStatus)
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	middleware.LoggerFromContext(ctx).Warn("Unguarded order status update",
		slog.String("orderId", order.ID.String()),
		slog.String("from", string(order.Status)),
		slog.String("to", string(req.Status)),
	)

	now := s.now().UTC()

	err = s.transition(ctx, order, req.Status, actorID(principal), func(o *models.Order) {
		if req.Status == models.OrderStatusShipped && o.ShippedAt == nil {
			o.ShippedAt = &now
		}

		if req.Status == models.OrderStatusDelivered && o.DeliveredAt == nil {
			o.DeliveredAt = &now
		}
	})
	if err != nil {
		return nil, err
	}

	s.notifier.StatusChanged(ctx, order)

	return order, nil
}

// RequestReturn opens a return on a delivered order while the return window is open.
// The window end is inclusive.
func (s *orderService) RequestReturn(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.ReturnOrderRequest) (*models.Order, error) {

	order, err := s.loadVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case models.OrderStatusReturnRequested, models.OrderStatusRefunded, models.OrderStatusPartiallyRefunded, models.OrderStatusReturnRejected:
		return nil, errors.InvalidStateError("A return was already requested for this order").WithNumber(errors.NumReturnAlreadyStarted)
	case models.OrderStatusDelivered:
	default:
		return nil, errors.InvalidStateError("Only delivered orders can be returned").WithNumber(errors.NumReturnNotDelivered)
	}

	if !returnWindowOpen(order, s.now(), s.returnWindow) {
		return nil, errors.ReturnWindowExpiredError("The return window for this order has closed")
	}

	reason := utils.SanitizeText(req.Reason)

	err = s.transition(ctx, order, models.OrderStatusReturnRequested, actorID(principal), func(o *models.Order) {
		o.ReturnReason = &reason
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderService) load(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, orderNotFound()
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

// loadVisible hides orders of other customers behind the same not-found error.
func (s *orderService) loadVisible(ctx context.Context, principal *models.Principal, id uuid.UUID) (*models.Order, error) {

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if principal == nil || (!principal.IsAdmin() && !order.OwnedBy(principal.UserID)) {
		return nil, orderNotFound()
	}

	return order, nil
}
