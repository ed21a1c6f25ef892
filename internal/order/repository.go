package order

import (
	"context"
	"database/sql"
	"errors"

	"shopfront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, userID uint, lines []CartLine) (*Order, error)
	FetchOrdersByUser(ctx context.Context, userID uint) ([]*Order, error)
	FetchOrderItems(ctx context.Context, orderIDs []uint) (map[uint][]OrderItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx runs the whole checkout as one transaction: an order shell
// is created first, then every cart line locks its product row, checks
// stock, decrements it and snapshots the current price into an order item.
// Any failure rolls the whole thing back; the store observes no partial
// state.
func (r *repository) CreateOrderTx(
	ctx context.Context,
	userID uint,
	lines []CartLine,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", userID),
		zap.Int("line_count", len(lines)),
	)

	log.Debug("starting checkout transaction")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	// Order shell: total 0 until the lines are processed, created first so
	// the items have an order id to reference.
	o := &Order{UserID: userID}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_amount)
		VALUES ($1, 0)
		RETURNING id, created_at
	`, userID).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		log.Error("failed to insert order shell", zap.Error(err))
		return nil, err
	}

	var totalCost float64

	for _, line := range lines {
		var (
			name  string
			price float64
			stock int
		)

		// FOR UPDATE serializes concurrent checkouts of the same product,
		// so the stock check and the decrement below act as one unit.
		err = tx.QueryRowContext(ctx, `
			SELECT name, price, stock
			FROM products
			WHERE id = $1
			FOR UPDATE
		`, line.ProductID).Scan(&name, &price, &stock)

		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("checkout references unknown product",
				zap.Int("product_id", line.ProductID),
			)
			return nil, &NotFoundError{ProductID: line.ProductID}
		}
		if err != nil {
			log.Error("failed to fetch product for checkout",
				zap.Int("product_id", line.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		if stock < line.Quantity {
			log.Warn("insufficient stock",
				zap.Int("product_id", line.ProductID),
				zap.Int("requested", line.Quantity),
				zap.Int("available", stock),
			)
			return nil, &InsufficientStockError{
				ProductID:   line.ProductID,
				ProductName: name,
				Available:   stock,
			}
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1
			WHERE id = $2 AND stock >= $1
		`, line.Quantity, line.ProductID)
		if err != nil {
			log.Error("failed to decrement stock",
				zap.Int("product_id", line.ProductID),
				zap.Error(err),
			)
			return nil, err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return nil, &InsufficientStockError{
				ProductID:   line.ProductID,
				ProductName: name,
				Available:   stock,
			}
		}

		var itemID uint
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, o.ID, line.ProductID, line.Quantity, price).Scan(&itemID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("product_id", line.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		o.Items = append(o.Items, OrderItem{
			ID:              itemID,
			OrderID:         o.ID,
			ProductID:       line.ProductID,
			ProductName:     name,
			Quantity:        line.Quantity,
			PriceAtPurchase: price,
		})

		totalCost += price * float64(line.Quantity)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET total_amount = $1 WHERE id = $2
	`, totalCost, o.ID)
	if err != nil {
		log.Error("failed to update order total", zap.Error(err))
		return nil, err
	}
	o.TotalAmount = totalCost

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit checkout transaction", zap.Error(err))
		return nil, err
	}

	committed = true
	log.Info("checkout transaction committed",
		zap.Uint("order_id", o.ID),
		zap.Float64("total", totalCost),
	)

	return o, nil
}

// FetchOrdersByUser returns the user's orders newest first. Ties on the
// creation timestamp break by id descending for determinism.
func (r *repository) FetchOrdersByUser(ctx context.Context, userID uint) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "FetchOrdersByUser"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, created_at, total_amount
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.TotalAmount); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

// FetchOrderItems loads the line items for a set of orders, keyed by order
// id. Product names resolve through a LEFT JOIN so items survive catalog
// deletions with a placeholder label.
func (r *repository) FetchOrderItems(ctx context.Context, orderIDs []uint) (map[uint][]OrderItem, error) {
	items := make(map[uint][]OrderItem)
	if len(orderIDs) == 0 {
		return items, nil
	}

	ids := make([]int64, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = int64(id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price_at_purchase,
		       COALESCE(p.name, 'Unknown Product')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`, pq.Array(ids))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.PriceAtPurchase,
			&item.ProductName,
		); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}

	return items, rows.Err()
}
