package order

import (
	"context"

	"shopfront-be/internal/logger"
	"shopfront-be/internal/metrics"
	"shopfront-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, lines []CartLine) (*Receipt, error)
	History(ctx context.Context, userID uint) ([]HistoryEntry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Checkout validates the cart, runs the atomic checkout transaction and
// echoes the committed order back. The caller identity comes from the
// request context, placed there by the auth middleware.
func (s *service) Checkout(ctx context.Context, lines []CartLine) (*Receipt, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		metrics.CheckoutTotal.WithLabelValues("unauthorized").Inc()
		return nil, ErrUnauthorized
	}
	username := utils.GetUsernameFromContext(ctx)

	if len(lines) == 0 {
		log.Debug("rejecting empty cart", zap.Uint("user_id", userID))
		metrics.CheckoutTotal.WithLabelValues("invalid_request").Inc()
		return nil, ErrCartEmpty
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			log.Debug("rejecting non-positive quantity",
				zap.Uint("user_id", userID),
				zap.Int("product_id", line.ProductID),
				zap.Int("quantity", line.Quantity),
			)
			metrics.CheckoutTotal.WithLabelValues("invalid_request").Inc()
			return nil, ErrInvalidQuantity
		}
	}

	o, err := s.repo.CreateOrderTx(ctx, userID, lines)
	if err != nil {
		metrics.CheckoutTotal.WithLabelValues(checkoutOutcome(err)).Inc()
		return nil, err
	}

	metrics.CheckoutTotal.WithLabelValues("success").Inc()
	metrics.OrderAmount.Observe(o.TotalAmount)

	log.Info("checkout completed",
		zap.Uint("user_id", userID),
		zap.Uint("order_id", o.ID),
		zap.Float64("total", o.TotalAmount),
		zap.Int("item_count", len(o.Items)),
	)

	return toReceipt(o, username), nil
}

// History returns the user's past orders, newest first, with line items
// expanded to display names.
func (s *service) History(ctx context.Context, userID uint) ([]HistoryEntry, error) {
	orders, err := s.repo.FetchOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]uint, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	items, err := s.repo.FetchOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	return toHistory(orders, items), nil
}
