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

// CartHandler serves both registered users and guests. A guest is identified by
// the X-Guest-Cart-Id header or the guestCartId query parameter; the first add
// without one issues a new id, echoed back in the header and in the snapshot.
type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func writeCart(w http.ResponseWriter, snapshot *models.CartSnapshot) {
	if snapshot.GuestID != "" {
		w.Header().Set(GuestCartHeader, snapshot.GuestID)
	}

	response.Success(w, http.StatusOK, snapshot)
}

// GetCart godoc
//	@Summary		Get the current cart
//	@Description	Returns the caller's cart. A missing cart is returned as an empty snapshot.
//	@Tags			Cart
//	@Produce		json
//	@Param			X-Guest-Cart-Id	header		string					false	"Guest cart id"
//	@Success		200				{object}	models.CartSnapshot		"Cart"
//	@Failure		401				{object}	response.ErrorResponse	"Invalid token"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner, _ := cartOwner(r)

		snapshot, err := h.cartService.GetCart(r.Context(), owner)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to get cart", slog.String("owner", owner.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		writeCart(w, snapshot)
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds or merges a line. The line always takes the product's current name and sale price.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Guest-Cart-Id	header		string						false	"Guest cart id"
//	@Param			item			body		models.AddCartItemRequest	true	"Product and quantity"
//	@Success		200				{object}	models.CartSnapshot			"Updated cart"
//	@Failure		400				{object}	response.ErrorResponse		"Validation error"
//	@Failure		409				{object}	response.ErrorResponse		"Concurrent modification"
//	@Failure		422				{object}	response.ErrorResponse		"Product unavailable or insufficient stock"
//	@Failure		500				{object}	response.ErrorResponse		"Internal server error"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		owner, _ := cartOwner(r)

		var req models.AddCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		snapshot, err := h.cartService.AddItem(r.Context(), owner, &req)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.String("productId", req.ProductID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID.String()), slog.Int("quantity", req.Quantity))
		writeCart(w, snapshot)
	}
}

// UpdateItem godoc
//	@Summary		Change a cart line quantity
//	@Description	Overwrites the quantity. Zero or less removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Guest-Cart-Id	header		string							false	"Guest cart id"
//	@Param			lineId			path		string							true	"Cart line ID (UUID)"	Format(uuid)
//	@Param			item			body		models.UpdateCartItemRequest	true	"New quantity"
//	@Success		200				{object}	models.CartSnapshot				"Updated cart"
//	@Failure		400				{object}	response.ErrorResponse			"Invalid input or missing guest id"
//	@Failure		404				{object}	response.ErrorResponse			"Cart line not found"
//	@Failure		422				{object}	response.ErrorResponse			"Insufficient stock"
//	@Failure		500				{object}	response.ErrorResponse			"Internal server error"
//	@Router			/cart/items/{lineId} [put]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		owner, _ := cartOwner(r)

		lineID, err := utils.ParseID(r, "lineId")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update cart input")
			return
		}

		snapshot, err := h.cartService.UpdateItem(r.Context(), owner, lineID, req.Quantity)
		if err != nil {
			logger.Warn("Failed to update cart line", slog.String("lineId", lineID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		writeCart(w, snapshot)
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Tags			Cart
//	@Produce		json
//	@Param			X-Guest-Cart-Id	header		string					false	"Guest cart id"
//	@Param			lineId			path		string					true	"Cart line ID (UUID)"	Format(uuid)
//	@Success		200				{object}	models.CartSnapshot		"Updated cart"
//	@Failure		400				{object}	response.ErrorResponse	"Missing guest id"
//	@Failure		404				{object}	response.ErrorResponse	"Cart line not found"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart/items/{lineId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner, _ := cartOwner(r)

		lineID, err := utils.ParseID(r, "lineId")
		if err != nil {
			response.Error(w, err)
			return
		}

		snapshot, err := h.cartService.RemoveItem(r.Context(), owner, lineID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to remove cart line", slog.String("lineId", lineID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		writeCart(w, snapshot)
	}
}
