package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "pending"
	OrderStatusPaid              OrderStatus = "paid"
	OrderStatusFailed            OrderStatus = "failed"
	OrderStatusProcessing        OrderStatus = "processing"
	OrderStatusShipped           OrderStatus = "shipped"
	OrderStatusDelivered         OrderStatus = "delivered"
	OrderStatusCancelled         OrderStatus = "cancelled"
	OrderStatusReturnRequested   OrderStatus = "return_requested"
	OrderStatusRefunded          OrderStatus = "refunded"
	OrderStatusPartiallyRefunded OrderStatus = "partially_refunded"
	OrderStatusReturnRejected    OrderStatus = "return_rejected"
)

var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusFailed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturnRequested,
	OrderStatusRefunded,
	OrderStatusPartiallyRefunded,
	OrderStatusReturnRejected,
}

func (s OrderStatus) Valid() bool {
	for _, known := range AllOrderStatuses {
		if s == known {
			return true
		}
	}

	return false
}

type Order struct {
	ID                 uuid.UUID           `json:"id"`
	MerchantOID        string              `json:"merchant_oid"`
	UserID             *uuid.UUID          `json:"user_id,omitempty"`
	GuestID            string              `json:"guest_id,omitempty"`
	CustomerName       string              `json:"customer_name"`
	CustomerEmail      string              `json:"customer_email"`
	CustomerPhone      string              `json:"customer_phone,omitempty"`
	ShippingAddress    string              `json:"shipping_address"`
	BillingAddress     string              `json:"billing_address,omitempty"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	RefundedAmount     decimal.NullDecimal `json:"refunded_amount"`
	Status             OrderStatus         `json:"status"`
	TrackingNumber     *string             `json:"tracking_number,omitempty"`
	ShippingCarrier    *string             `json:"shipping_carrier,omitempty"`
	CancellationReason *string             `json:"cancellation_reason,omitempty"`
	ReturnReason       *string             `json:"return_reason,omitempty"`
	FailureReason      *string             `json:"failure_reason,omitempty"`
	ResolutionNote     *string             `json:"resolution_note,omitempty"`
	ShippedAt          *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt        *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Items              []OrderItem         `json:"items,omitempty"`
}

type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (o *Order) OwnedBy(userID uuid.UUID) bool {
	return o.UserID != nil && *o.UserID == userID
}

// OrderDetails adds the actions the customer can still take on the order.
type OrderDetails struct {
	*Order
	CanBeCancelled   bool `json:"can_be_cancelled"`
	CanRequestReturn bool `json:"can_request_return"`
}

type TrackingInfo struct {
	OrderID         uuid.UUID   `json:"order_id"`
	Status          OrderStatus `json:"status"`
	TrackingNumber  *string     `json:"tracking_number,omitempty"`
	ShippingCarrier *string     `json:"shipping_carrier,omitempty"`
	ShippedAt       *time.Time  `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time  `json:"delivered_at,omitempty"`
}

type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,max=1000"`
	BillingAddress  string `json:"billing_address,omitempty" validate:"omitempty,max=1000"`
	GuestCartID     string `json:"guest_cart_id,omitempty"`
	GuestName       string `json:"guest_name,omitempty" validate:"omitempty,max=100"`
	GuestEmail      string `json:"guest_email,omitempty" validate:"omitempty,email"`
	GuestPhone      string `json:"guest_phone,omitempty" validate:"omitempty,max=20"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type ReturnOrderRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type UpdateShippingRequest struct {
	TrackingNumber  string `json:"tracking_number" validate:"required,max=100"`
	ShippingCarrier string `json:"shipping_carrier" validate:"required,max=100"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}

// OrderFilter drives the admin order listing.
type OrderFilter struct {
	Status        *OrderStatus
	UserID        *uuid.UUID
	From          *time.Time
	To            *time.Time
	IncludeClosed bool
	SortAsc       bool
	Page          int
	PageSize      int
}
