package service

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"time"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/metrics"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	repository "github.com/Muhammed-KRM/E-ticaret/internal/repositories"
	"github.com/google/uuid"
)

var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending: {
		models.OrderStatusPaid, models.OrderStatusFailed, models.OrderStatusCancelled, models.OrderStatusShipped,
	},
	models.OrderStatusPaid: {
		models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusCancelled,
		models.OrderStatusRefunded, models.OrderStatusPartiallyRefunded,
	},
	models.OrderStatusProcessing: {
		models.OrderStatusShipped, models.OrderStatusCancelled, models.OrderStatusRefunded, models.OrderStatusPartiallyRefunded,
	},
	models.OrderStatusShipped: {
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusRefunded, models.OrderStatusPartiallyRefunded,
	},
	models.OrderStatusDelivered: {
		models.OrderStatusReturnRequested, models.OrderStatusRefunded, models.OrderStatusPartiallyRefunded,
	},
	models.OrderStatusReturnRequested: {
		models.OrderStatusRefunded, models.OrderStatusPartiallyRefunded, models.OrderStatusReturnRejected,
	},
}

// CanTransition reports whether a guarded operation may move an order from one status to another.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

func cancellable(status models.OrderStatus) bool {
	return status == models.OrderStatusPending || status == models.OrderStatusPaid || status == models.OrderStatusProcessing
}

func returnWindowOpen(order *models.Order, now time.Time, window time.Duration) bool {
	return order.DeliveredAt != nil && !now.After(order.DeliveredAt.Add(window))
}

// lifecycle commits order status changes. It is shared by the order, refund and payment services.
type lifecycle struct {
	orders repository.OrderRepository
	audit  repository.AuditRepository
	now    func() time.Time
}

// transition copies order, applies change and stores the copy with status `to`, but only if the
// stored status still equals the one order was read with. On success order is replaced with the
// stored copy. A lost race returns an INVALID_STATE error wrapping repository.ErrStaleOrder.
func (l *lifecycle) transition(ctx context.Context, order *models.Order, to models.OrderStatus, actor *uuid.UUID, change func(*models.Order)) error {

	logger := middleware.LoggerFromContext(ctx)
	from := order.Status

	updated := *order
	if change != nil {
		change(&updated)
	}
	updated.Status = to

	if err := l.orders.UpdateOrderState(ctx, &updated, from); err != nil {
		if stdErrors.Is(err, repository.ErrStaleOrder) {
			logger.Warn("Order status changed concurrently",
				slog.String("orderId", order.ID.String()),
				slog.String("expected", string(from)),
				slog.String("target", string(to)),
			)

			return errors.InvalidStateError("Order status changed, reload and retry").
				WithNumber(errors.NumStaleOrder).
				WithError(err)
		}

		return errors.DatabaseError("Failed to update order").WithError(err)
	}

	metrics.OrderTransitions.WithLabelValues(string(from), string(to)).Inc()

	l.record(ctx, models.AuditUpdate, order, &updated, actor)

	logger.Info("Order status changed",
		slog.String("orderId", order.ID.String()),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)

	*order = updated

	return nil
}

// record writes an audit row. Failures are logged only.
func (l *lifecycle) record(ctx context.Context, action models.AuditAction, before, after *models.Order, actor *uuid.UUID) {

	logger := middleware.LoggerFromContext(ctx)

	entry := &models.AuditLog{
		ID:        uuid.New(),
		TableName: "orders",
		Action:    action,
		ModUser:   actor,
		ModTime:   l.now().UTC(),
	}

	var err error

	if before != nil {
		if entry.OldValue, err = json.Marshal(before); err != nil {
			logger.Error("Failed to encode audit snapshot", slog.String("error", err.Error()))
			return
		}
	}

	if after != nil {
		if entry.NewValue, err = json.Marshal(after); err != nil {
			logger.Error("Failed to encode audit snapshot", slog.String("error", err.Error()))
			return
		}
	}

	if err := l.audit.Log(ctx, entry); err != nil {
		logger.Error("Failed to write audit log", slog.String("table", entry.TableName), slog.String("error", err.Error()))
	}
}

func actorID(principal *models.Principal) *uuid.UUID {
	if principal == nil {
		return nil
	}

	id := principal.UserID

	return &id
}
