package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"time"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/config"
	"github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/metrics"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	repository "github.com/Muhammed-KRM/E-ticaret/internal/repositories"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils"
	"github.com/Muhammed-KRM/E-ticaret/pkg/paytr"
)

var (
	ErrInvalidSignature = stdErrors.New("payment callback signature is invalid")
	ErrUnknownOrder     = stdErrors.New("payment callback names an unknown order")
)

type PaymentService interface {
	InitiatePayment(ctx context.Context, principal *models.Principal, req *models.InitiatePaymentRequest, clientIP string) (*models.InitiatePaymentResponse, error)
	HandleCallback(ctx context.Context, cb *models.PaymentCallback) error
}

type paymentService struct {
	lifecycle
	carts       repository.CartRepository
	gateway     paytr.Client
	notifier    Notifier
	iframeURL   string
	callbackURL string
}

func NewPaymentService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	audit repository.AuditRepository,
	gateway paytr.Client,
	notifier Notifier,
	cfg config.PayTR,
) PaymentService {
	return &paymentService{
		lifecycle:   lifecycle{orders: orders, audit: audit, now: time.Now},
		carts:       carts,
		gateway:     gateway,
		notifier:    notifier,
		iframeURL:   cfg.IframeURL,
		callbackURL: cfg.CallbackURL,
	}
}

// InitiatePayment asks the gateway for a checkout token for a pending order.
// The order itself is not changed; the callback moves it on.
func (s *paymentService) InitiatePayment(ctx context.Context, principal *models.Principal, req *models.InitiatePaymentRequest, clientIP string) (*models.InitiatePaymentResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	order, err := s.orders.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithNumber(errors.NumPaymentOrderNotFound)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if !payableBy(order, principal, req.GuestCartID) {
		return nil, errors.ForbiddenError("Order belongs to another customer").WithNumber(errors.NumPaymentNotOwner)
	}

	if order.Status != models.OrderStatusPending {
		return nil, errors.InvalidStateError("Order is not awaiting payment").WithNumber(errors.NumPaymentNotPending)
	}

	basket := make([]paytr.BasketItem, 0, len(order.Items))
	for _, item := range order.Items {
		basket = append(basket, paytr.BasketItem{Name: item.ProductName, UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}

	token, err := s.gateway.RequestPaymentToken(ctx, &paytr.TokenRequest{
		MerchantOID: order.MerchantOID,
		UserIP:      clientIP,
		Email:       order.CustomerEmail,
		Amount:      order.TotalAmount,
		Basket:      basket,
		UserName:    order.CustomerName,
		UserAddress: order.ShippingAddress,
		UserPhone:   order.CustomerPhone,
		CallbackURL: s.callbackURL,
	})
	metrics.ObserveGateway("token", err)

	if err != nil {
		logger.Error("Payment token request failed", slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))

		return nil, gatewayTokenError(err)
	}

	logger.Info("Payment initiated", slog.String("orderId", order.ID.String()), slog.String("merchantOid", order.MerchantOID))

	return &models.InitiatePaymentResponse{
		Token:       token,
		IframeURL:   s.iframeURL + token,
		OrderID:     order.ID,
		MerchantOID: order.MerchantOID,
	}, nil
}

// payableBy: user orders only by their owner, guest orders only with the guest id they were placed with.
func payableBy(order *models.Order, principal *models.Principal, guestID string) bool {

	if order.UserID != nil {
		return principal != nil && order.OwnedBy(principal.UserID)
	}

	return principal == nil && guestID != "" && guestID == order.GuestID
}

func gatewayTokenError(err error) *errors.AppError {

	switch {
	case stdErrors.Is(err, paytr.ErrGatewayRejected):
		return errors.ExternalServiceError("Payment gateway rejected the request").WithNumber(errors.NumGatewayRejected).WithError(err)
	case stdErrors.Is(err, paytr.ErrMissingToken):
		return errors.ExternalServiceError("Payment gateway returned no token").WithNumber(errors.NumGatewayNoToken).WithError(err)
	default:
		return errors.ExternalServiceError("Payment gateway is unavailable").WithNumber(errors.NumGatewayUnavailable).WithError(err)
	}
}

// HandleCallback applies a gateway payment notification. Deliveries for orders that
// already left Pending are acknowledged without changes, so retries are harmless.
func (s *paymentService) HandleCallback(ctx context.Context, cb *models.PaymentCallback) error {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("merchantOid", cb.MerchantOID), slog.String("status", cb.Status))

	if !s.gateway.VerifyCallback(cb.Hash, cb.MerchantOID, cb.Status, cb.TotalAmount) {
		metrics.PaymentCallbacks.WithLabelValues("invalid_signature").Inc()
		logger.Warn("Rejected payment callback with a bad signature")

		return ErrInvalidSignature
	}

	order, err := s.orders.GetOrderByMerchantOID(ctx, cb.MerchantOID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			metrics.PaymentCallbacks.WithLabelValues("unknown_order").Inc()
			logger.Warn("Payment callback for an unknown order")

			return ErrUnknownOrder
		}

		return errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.Status != models.OrderStatusPending {
		metrics.PaymentCallbacks.WithLabelValues("duplicate").Inc()
		logger.Info("Payment callback already applied", slog.String("orderStatus", string(order.Status)))

		return nil
	}

	if cb.Status == models.CallbackStatusSuccess {
		return s.markPaid(ctx, logger, order, cb)
	}

	return s.markFailed(ctx, logger, order, cb)
}

func (s *paymentService) markPaid(ctx context.Context, logger *slog.Logger, order *models.Order, cb *models.PaymentCallback) error {

	paid := cb.PaymentAmount
	if paid == "" {
		paid = cb.TotalAmount
	}

	amount, err := paytr.ParseMinorUnits(paid)
	switch {
	case err != nil:
		logger.Warn("Payment callback carries an unreadable amount", slog.String("amount", paid))
	case !amount.Equal(order.TotalAmount):
		logger.Error("Paid amount differs from order total",
			slog.String("paid", amount.StringFixed(2)),
			slog.String("total", order.TotalAmount.StringFixed(2)),
		)
	}

	if err := s.transition(ctx, order, models.OrderStatusPaid, nil, nil); err != nil {
		return s.lostRace(logger, err)
	}

	owner := models.CartOwner{UserID: order.UserID}
	if order.UserID == nil {
		owner.GuestID = order.GuestID
	}

	if owner.UserID != nil || owner.GuestID != "" {
		if err := s.carts.DeleteCartByOwner(ctx, owner); err != nil {
			logger.Warn("Failed to clear leftover cart", slog.String("owner", owner.String()), slog.String("error", err.Error()))
		}
	}

	metrics.PaymentCallbacks.WithLabelValues("paid").Inc()
	s.notifier.PaymentReceived(ctx, order)

	return nil
}

func (s *paymentService) markFailed(ctx context.Context, logger *slog.Logger, order *models.Order, cb *models.PaymentCallback) error {

	reason := utils.SanitizeText(cb.FailedReasonMsg)
	if reason == "" {
		reason = utils.SanitizeText(cb.FailedReasonCode)
	}

	err := s.transition(ctx, order, models.OrderStatusFailed, nil, func(o *models.Order) {
		if reason != "" {
			o.FailureReason = &reason
		}
	})
	if err != nil {
		return s.lostRace(logger, err)
	}

	logger.Info("Payment failed", slog.String("reason", reason))
	metrics.PaymentCallbacks.WithLabelValues("failed").Inc()
	s.notifier.StatusChanged(ctx, order)

	return nil
}

// lostRace treats a concurrent status change as an earlier delivery of the same callback.
func (s *paymentService) lostRace(logger *slog.Logger, err error) error {

	if stdErrors.Is(err, repository.ErrStaleOrder) {
		metrics.PaymentCallbacks.WithLabelValues("duplicate").Inc()
		logger.Info("Payment callback lost the race to a concurrent delivery")

		return nil
	}

	return err
}
