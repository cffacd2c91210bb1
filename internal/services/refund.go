package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
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

type RefundService interface {
	ApproveReturn(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.ProcessReturnRequest) (*models.Order, error)
	RejectReturn(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.ProcessReturnRequest) (*models.Order, error)
	ListPendingReturns(ctx context.Context, page, size int) ([]*models.Order, int, error)
	RequestRefund(ctx context.Context, principal *models.Principal, req *models.RefundRequest) (*models.Order, error)
}

type refundService struct {
	lifecycle
	gateway  paytr.Client
	notifier Notifier
}

func NewRefundService(orders repository.OrderRepository, audit repository.AuditRepository, gateway paytr.Client, notifier Notifier) RefundService {
	return &refundService{
		lifecycle: lifecycle{orders: orders, audit: audit, now: time.Now},
		gateway:   gateway,
		notifier:  notifier,
	}
}

func refundOrderNotFound() *errors.AppError {
	return errors.NotFoundError("Order not found").WithNumber(errors.NumRefundOrderNotFound)
}

func noPendingReturn(status models.OrderStatus) *errors.AppError {
	return errors.InvalidStateError("Order has no pending return (status " + string(status) + ")").WithNumber(errors.NumNoPendingReturn)
}

// ApproveReturn refunds a returned order, in full unless a smaller amount is given.
func (s *refundService) ApproveReturn(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.ProcessReturnRequest) (*models.Order, error) {

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status != models.OrderStatusReturnRequested {
		return nil, noPendingReturn(order.Status)
	}

	amount, err := refundAmount(order, req.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.refund(ctx, order, amount); err != nil {
		return nil, err
	}

	note := utils.SanitizeText(req.Note)

	return s.settle(ctx, principal, order, amount, note)
}

func (s *refundService) RejectReturn(ctx context.Context, principal *models.Principal, id uuid.UUID, req *models.ProcessReturnRequest) (*models.Order, error) {

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status != models.OrderStatusReturnRequested {
		return nil, noPendingReturn(order.Status)
	}

	note := utils.SanitizeText(req.Note)

	err = s.transition(ctx, order, models.OrderStatusReturnRejected, actorID(principal), func(o *models.Order) {
		if note != "" {
			o.ResolutionNote = &note
		}
	})
	if err != nil {
		return nil, err
	}

	s.notifier.StatusChanged(ctx, order)

	return order, nil
}

func (s *refundService) ListPendingReturns(ctx context.Context, page, size int) ([]*models.Order, int, error) {

	page, size = models.NormalizePage(page, size, 100)
	status := models.OrderStatusReturnRequested

	orders, total, err := s.orders.ListOrders(ctx, models.OrderFilter{Status: &status, SortAsc: true, Page: page, PageSize: size})
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list pending returns").WithError(err)
	}

	return orders, total, nil
}

// RequestRefund refunds an order identified by its gateway token, outside the return flow.
func (s *refundService) RequestRefund(ctx context.Context, principal *models.Principal, req *models.RefundRequest) (*models.Order, error) {

	order, err := s.orders.GetOrderByMerchantOID(ctx, req.MerchantOID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, refundOrderNotFound()
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	switch order.Status {
	case models.OrderStatusPaid, models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusDelivered:
	default:
		return nil, errors.InvalidStateError("Order cannot be refunded in status " + string(order.Status)).WithNumber(errors.NumNotRefundable)
	}

	amount, err := refundAmount(order, req.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.refund(ctx, order, amount); err != nil {
		return nil, err
	}

	return s.settle(ctx, principal, order, amount, utils.SanitizeText(req.Reason))
}

func (s *refundService) refund(ctx context.Context, order *models.Order, amount decimal.Decimal) error {

	err := s.gateway.RequestRefund(ctx, order.MerchantOID, amount)
	metrics.ObserveGateway("refund", err)

	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Gateway refund failed",
			slog.String("orderId", order.ID.String()),
			slog.String("amount", amount.StringFixed(2)),
			slog.String("error", err.Error()),
		)

		return errors.ExternalServiceError("Refund was not accepted by the payment gateway").
			WithNumber(errors.NumRefundGatewayError).
			WithError(err)
	}

	return nil
}

// settle records a completed gateway refund on the order.
func (s *refundService) settle(ctx context.Context, principal *models.Principal, order *models.Order, amount decimal.Decimal, note string) (*models.Order, error) {

	target := models.OrderStatusPartiallyRefunded
	if amount.Equal(paytr.RoundToMinor(order.TotalAmount)) {
		target = models.OrderStatusRefunded
	}

	err := s.transition(ctx, order, target, actorID(principal), func(o *models.Order) {
		o.RefundedAmount = decimal.NewNullDecimal(amount)

		if note != "" {
			o.ResolutionNote = &note
		}
	})
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Order refunded but not updated", slog.String("orderId", order.ID.String()))
		return nil, err
	}

	s.notifier.StatusChanged(ctx, order)

	return order, nil
}

func (s *refundService) load(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, refundOrderNotFound()
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

// refundAmount defaults to the order total and must lie in (0, total]. Both sides are
// rounded to minor units first, so the order records exactly what the gateway refunds.
func refundAmount(order *models.Order, requested *decimal.Decimal) (decimal.Decimal, error) {

	total := paytr.RoundToMinor(order.TotalAmount)
	if requested == nil {
		return total, nil
	}

	amount := paytr.RoundToMinor(*requested)
	if !amount.IsPositive() || amount.GreaterThan(total) {
		return decimal.Zero, errors.InvalidAmountError("Refund amount must be greater than zero and at most the order total")
	}

	return amount, nil
}
