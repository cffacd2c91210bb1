package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/errors"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	repository "github.com/Muhammed-KRM/E-ticaret/internal/repositories"
	"github.com/Muhammed-KRM/E-ticaret/pkg/sendGrid"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Notifier sends order event mails. Delivery is best effort and runs after the caller
// returns: nothing is returned and failures only show up in the logs and the notification records.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *models.Order)
	PaymentReceived(ctx context.Context, order *models.Order)
	StatusChanged(ctx context.Context, order *models.Order)
}

type NotificationService interface {
	Notifier
	ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error)
	// Wait blocks until every mail already handed to the service has been processed.
	Wait()
}

const deliveryTimeout = 30 * time.Second

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendGrid.EmailService
	adminEmail   string
	inFlight     sync.WaitGroup
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendGrid.EmailService, adminEmail string) NotificationService {
	return &notificationService{repo: repo, emailService: emailService, adminEmail: adminEmail}
}

type message struct {
	to      string
	subject string
	text    string
	html    string
}

func (n *notificationService) OrderPlaced(ctx context.Context, order *models.Order) {

	msgs := n.adminMessages(fmt.Sprintf("New order %s", order.MerchantOID), orderSummary(order, "A new order was placed."))
	msgs = append(msgs, customerMessage(order, "We received your order", "Thank you, we received your order."))

	n.dispatch(ctx, models.EventOrderPlaced, order, msgs)
}

func (n *notificationService) PaymentReceived(ctx context.Context, order *models.Order) {

	msgs := n.adminMessages(fmt.Sprintf("Payment received for order %s", order.MerchantOID), orderSummary(order, "Payment was confirmed by the gateway."))
	msgs = append(msgs, customerMessage(order, "Payment confirmed", "Your payment was confirmed. We are preparing your order."))

	n.dispatch(ctx, models.EventPaymentReceived, order, msgs)
}

func (n *notificationService) StatusChanged(ctx context.Context, order *models.Order) {

	intro := fmt.Sprintf("Your order is now %s.", strings.ReplaceAll(string(order.Status), "_", " "))
	if order.TrackingNumber != nil && order.ShippingCarrier != nil {
		intro += fmt.Sprintf(" Tracking: %s (%s).", *order.TrackingNumber, *order.ShippingCarrier)
	}

	n.dispatch(ctx, models.EventStatusChanged, order, []message{customerMessage(order, "Order update", intro)})
}

func (n *notificationService) ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error) {

	page, size = models.NormalizePage(page, size, 50)

	notifications, total, err := n.repo.ListNotifications(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list notifications").WithError(err)
	}

	return notifications, total, nil
}

func (n *notificationService) Wait() {
	n.inFlight.Wait()
}

// adminMessages addresses the configured admin mailbox, if any.
func (n *notificationService) adminMessages(subject, text string) []message {

	if n.adminEmail == "" {
		return nil
	}

	return []message{{to: n.adminEmail, subject: subject, text: text, html: htmlBody(text)}}
}

// dispatch delivers the mails on a background goroutine that outlives the caller's context.
func (n *notificationService) dispatch(ctx context.Context, event models.NotificationEvent, order *models.Order, msgs []message) {

	pending := make([]message, 0, len(msgs))
	for _, msg := range msgs {
		if msg.to != "" {
			pending = append(pending, msg)
		}
	}

	if len(pending) == 0 {
		return
	}

	tags := map[string]string{
		"event":        string(event),
		"order_id":     order.ID.String(),
		"merchant_oid": order.MerchantOID,
	}

	n.inFlight.Add(1)

	go func() {
		defer n.inFlight.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout)
		defer cancel()

		var g errgroup.Group
		g.SetLimit(4)

		for _, msg := range pending {
			g.Go(func() error {
				return n.deliver(sendCtx, tags, msg)
			})
		}

		if err := g.Wait(); err != nil {
			middleware.LoggerFromContext(sendCtx).Warn("Order notification not delivered",
				slog.String("event", tags["event"]),
				slog.String("orderId", tags["order_id"]),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// deliver records the notification, sends it and stores the outcome.
func (n *notificationService) deliver(ctx context.Context, tags map[string]string, msg message) error {

	metadata, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Recipient: msg.to,
		Subject:   msg.subject,
		Content:   msg.text,
		Status:    models.StatusPending,
		Metadata:  metadata,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification record: %w", err)
	}

	sendErr := n.emailService.Send(ctx, &models.EmailNotificationRequest{
		To:          msg.to,
		Subject:     msg.subject,
		Content:     msg.text,
		HTMLContent: msg.html,
		Metadata:    tags,
	})

	if sendErr != nil {
		if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, sendErr.Error()); err != nil {
			middleware.LoggerFromContext(ctx).Error("Failed to update notification status", slog.String("error", err.Error()))
		}

		return fmt.Errorf("failed to send email to %s: %w", msg.to, sendErr)
	}

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return fmt.Errorf("notification sent but failed to update its status: %w", err)
	}

	return nil
}

func customerMessage(order *models.Order, subject, intro string) message {
	text := orderSummary(order, fmt.Sprintf("Hello %s,\n\n%s", order.CustomerName, intro))

	return message{to: order.CustomerEmail, subject: subject, text: text, html: htmlBody(text)}
}

func orderSummary(order *models.Order, intro string) string {

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\nOrder: %s\nStatus: %s\n", intro, order.MerchantOID, order.Status)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x%d: %s\n", item.ProductName, item.Quantity, item.Subtotal().StringFixed(2))
	}

	fmt.Fprintf(&b, "Total: %s\n", order.TotalAmount.StringFixed(2))

	return b.String()
}

func htmlBody(text string) string {
	return "<p>" + strings.ReplaceAll(html.EscapeString(text), "\n", "<br>") + "</p>"
}
