package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	service "github.com/Muhammed-KRM/E-ticaret/internal/services"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// CallbackAck is the body the gateway expects on every callback delivery.
const CallbackAck = "OK"

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

// InitiatePayment godoc
//	@Summary		Start a payment for a pending order
//	@Description	Requests a gateway session token and returns the iframe URL the client should load.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			X-Guest-Cart-Id	header		string							false	"Guest cart id used at checkout"
//	@Param			payment			body		models.InitiatePaymentRequest	true	"Order to pay"
//	@Success		200				{object}	models.InitiatePaymentResponse	"Gateway session"
//	@Failure		400				{object}	response.ErrorResponse			"Order not found, not owned or not pending"
//	@Failure		502				{object}	response.ErrorResponse			"Gateway error"
//	@Router			/payments/initiate [post]
func (h *PaymentHandler) InitiatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.InitiatePaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid payment input")
			return
		}

		principal, ok := middleware.PrincipalFromContext(r.Context())
		if !ok {
			if req.GuestCartID == "" {
				req.GuestCartID = guestCartID(r)
			}
		}

		resp, err := h.paymentService.InitiatePayment(r.Context(), principal, &req, utils.ClientIP(r))
		if err != nil {
			logger.Error("Failed to initiate payment", slog.String("orderId", req.OrderID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment initiated", slog.String("orderId", resp.OrderID.String()), slog.String("merchantOid", resp.MerchantOID))
		response.Success(w, http.StatusOK, resp)
	}
}

// Callback godoc
//	@Summary		Gateway payment callback
//	@Description	Called by the payment gateway with a signed, form-encoded outcome. Always answers 200 "OK"; the outcome is visible only through the order state.
//	@Tags			Payments
//	@Accept			x-www-form-urlencoded
//	@Produce		plain
//	@Param			merchant_oid	formData	string	true	"Order token"
//	@Param			status			formData	string	true	"success or failed"
//	@Param			total_amount	formData	string	true	"Paid amount in minor units"
//	@Param			hash			formData	string	true	"Callback signature"
//	@Success		200				{string}	string	"OK"
//	@Router			/payments/callback [post]
func (h *PaymentHandler) Callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := r.ParseForm(); err != nil {
			logger.Warn("Unreadable payment callback", slog.Any("error", err))
			response.Text(w, http.StatusOK, CallbackAck)
			return
		}

		cb := &models.PaymentCallback{
			MerchantOID:      r.PostForm.Get("merchant_oid"),
			Status:           r.PostForm.Get("status"),
			TotalAmount:      r.PostForm.Get("total_amount"),
			Hash:             r.PostForm.Get("hash"),
			PaymentAmount:    r.PostForm.Get("payment_amount"),
			FailedReasonCode: r.PostForm.Get("failed_reason_code"),
			FailedReasonMsg:  r.PostForm.Get("failed_reason_msg"),
			TestMode:         r.PostForm.Get("test_mode"),
			PaymentType:      r.PostForm.Get("payment_type"),
			Currency:         r.PostForm.Get("currency"),
			InstallmentCount: r.PostForm.Get("installment_count"),
		}

		logger = logger.With(slog.String("merchantOid", cb.MerchantOID), slog.String("status", cb.Status))

		if err := h.paymentService.HandleCallback(r.Context(), cb); err != nil {
			logger.Error("Payment callback rejected", slog.Any("error", err))
		} else {
			logger.Info("Payment callback processed")
		}

		response.Text(w, http.StatusOK, CallbackAck)
	}
}
