package order

import "time"

type Order struct {
	ID          uint
	UserID      uint
	CreatedAt   time.Time
	TotalAmount float64
	Items       []OrderItem
}

type OrderItem struct {
	ID              uint
	OrderID         uint
	ProductID       int
	ProductName     string
	Quantity        int
	PriceAtPurchase float64
}

// CartLine is one {product id, quantity} pair submitted at checkout.
type CartLine struct {
	ProductID int `json:"id"`
	Quantity  int `json:"quantity"`
}

// Receipt echoes a committed checkout back to the caller.
type Receipt struct {
	OrderID  uint          `json:"orderId"`
	Total    float64       `json:"total"`
	UserID   uint          `json:"user_id"`
	Username string        `json:"username"`
	Items    []ReceiptItem `json:"items"`
}

type ReceiptItem struct {
	ProductID int     `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// HistoryEntry is one past order projected for the history endpoint.
type HistoryEntry struct {
	OrderID     uint          `json:"order_id"`
	OrderDate   string        `json:"order_date"`
	TotalAmount float64       `json:"total_amount"`
	Items       []HistoryItem `json:"items"`
}

type HistoryItem struct {
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}
