package order

import (
	"errors"
	"time"
)

// checkoutOutcome maps a checkout error to its metrics label.
func checkoutOutcome(err error) string {
	var notFound *NotFoundError
	var noStock *InsufficientStockError

	switch {
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &noStock):
		return "insufficient_stock"
	default:
		return "internal"
	}
}

func toReceipt(o *Order, username string) *Receipt {
	r := &Receipt{
		OrderID:  o.ID,
		Total:    o.TotalAmount,
		UserID:   o.UserID,
		Username: username,
		Items:    make([]ReceiptItem, 0, len(o.Items)),
	}

	for _, item := range o.Items {
		r.Items = append(r.Items, ReceiptItem{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			Price:     item.PriceAtPurchase,
		})
	}

	return r
}

func toHistory(orders []*Order, items map[uint][]OrderItem) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(orders))

	for _, o := range orders {
		entry := HistoryEntry{
			OrderID:     o.ID,
			OrderDate:   o.CreatedAt.UTC().Format(time.RFC3339),
			TotalAmount: o.TotalAmount,
			Items:       make([]HistoryItem, 0, len(items[o.ID])),
		}

		for _, item := range items[o.ID] {
			entry.Items = append(entry.Items, HistoryItem{
				ProductName:     item.ProductName,
				Quantity:        item.Quantity,
				PriceAtPurchase: item.PriceAtPurchase,
			})
		}

		entries = append(entries, entry)
	}

	return entries
}
