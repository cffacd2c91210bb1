package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartOwner identifies a cart by exactly one of a registered user or a guest id.
type CartOwner struct {
	UserID  *uuid.UUID
	GuestID string
}

func (o CartOwner) IsGuest() bool {
	return o.UserID == nil
}

func (o CartOwner) String() string {
	if o.UserID != nil {
		return "user:" + o.UserID.String()
	}

	return "guest:" + o.GuestID
}

type Cart struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	GuestID    string     `json:"guest_id,omitempty"`
	GuestName  string     `json:"guest_name,omitempty"`
	GuestEmail string     `json:"guest_email,omitempty"`
	GuestPhone string     `json:"guest_phone,omitempty"`
	Items      []CartLine `json:"items"`
	Version    int        `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartLine struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (c *Cart) Owner() CartOwner {
	return CartOwner{UserID: c.UserID, GuestID: c.GuestID}
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Items {
		total = total.Add(line.Subtotal())
	}

	return total
}

func (c *Cart) LineByProduct(productID uuid.UUID) (int, bool) {
	for i, line := range c.Items {
		if line.ProductID == productID {
			return i, true
		}
	}

	return -1, false
}

func (c *Cart) LineByID(lineID uuid.UUID) (int, bool) {
	for i, line := range c.Items {
		if line.ID == lineID {
			return i, true
		}
	}

	return -1, false
}

// CartSnapshot is what every cart operation returns to the caller.
type CartSnapshot struct {
	CartID    *uuid.UUID      `json:"cart_id,omitempty"`
	GuestID   string          `json:"guest_cart_id,omitempty"`
	Lines     []CartLine      `json:"lines"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

func NewCartSnapshot(cart *Cart, owner CartOwner) *CartSnapshot {
	snapshot := &CartSnapshot{GuestID: owner.GuestID, Lines: []CartLine{}, Total: decimal.Zero}
	if cart == nil {
		return snapshot
	}

	id := cart.ID
	snapshot.CartID = &id
	snapshot.Lines = cart.Items
	snapshot.Total = cart.Total()

	for _, line := range cart.Items {
		snapshot.ItemCount += line.Quantity
	}

	return snapshot
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0,max=10000"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"max=10000"`
}
