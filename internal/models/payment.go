package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InitiatePaymentRequest struct {
	OrderID     uuid.UUID `json:"order_id" validate:"required"`
	GuestCartID string    `json:"guest_cart_id,omitempty"`
}

type InitiatePaymentResponse struct {
	Token       string    `json:"token"`
	IframeURL   string    `json:"iframe_url"`
	OrderID     uuid.UUID `json:"order_id"`
	MerchantOID string    `json:"merchant_oid"`
}

// PaymentCallback is the form-encoded notification posted by the gateway.
type PaymentCallback struct {
	MerchantOID      string
	Status           string
	TotalAmount      string
	Hash             string
	PaymentAmount    string
	FailedReasonCode string
	FailedReasonMsg  string
	TestMode         string
	PaymentType      string
	Currency         string
	InstallmentCount string
}

const CallbackStatusSuccess = "success"

type RefundRequest struct {
	MerchantOID string           `json:"merchant_oid" validate:"required"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Reason      string           `json:"reason,omitempty" validate:"max=1000"`
}

type ProcessReturnRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Note   string           `json:"note,omitempty" validate:"max=1000"`
}
