package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"shopfront-be/internal/logger"
	"shopfront-be/internal/order"
	"shopfront-be/internal/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type checkoutRequest struct {
	CartItems []order.CartLine `json:"cartItems"`
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	receipt, err := h.svc.Checkout(r.Context(), req.CartItems)
	if err != nil {
		h.writeCheckoutError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Order placed successfully!",
		"orderId":  receipt.OrderID,
		"total":    receipt.Total,
		"items":    receipt.Items,
		"user_id":  receipt.UserID,
		"username": receipt.Username,
	})
}

func (h *OrderHandler) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *order.NotFoundError
	var noStock *order.InsufficientStockError

	switch {
	case errors.Is(err, order.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Please log in to checkout.")
	case errors.Is(err, order.ErrCartEmpty):
		writeError(w, http.StatusBadRequest, "Cart is empty.")
	case errors.Is(err, order.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "Quantity must be greater than zero.")
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("Product with ID %d not found.", notFound.ProductID))
	case errors.As(err, &noStock):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Not enough stock for %s. Available: %d", noStock.ProductName, noStock.Available))
	default:
		logger.FromCtx(r.Context()).Error("checkout failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An error occurred during checkout.")
	}
}

func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Please log in to view your orders.")
		return
	}

	entries, err := h.svc.History(r.Context(), userID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("order history failed",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "Failed to load order history.")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
