package models

import "encoding/json"

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderItem is a single line of the canned order.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is the record managed by the order service. UserID, Items and Total
// hold the caller's JSON values as given; absent fields are omitted.
type Order struct {
	ID        string          `json:"id" validate:"required,alphanum,lowercase"`
	UserID    json.RawMessage `json:"userId,omitempty" swaggertype:"string"`
	Items     json.RawMessage `json:"items,omitempty" swaggertype:"array,object"`
	Total     json.RawMessage `json:"total,omitempty" swaggertype:"number"`
	Status    OrderStatus     `json:"status" validate:"required,oneof=pending processing completed cancelled"`
	CreatedAt string          `json:"createdAt" validate:"required"`
}

// Validate validates the order data
func (o *Order) Validate() error {
	return validateStruct(o)
}

// IsValid reports whether s is one of the known order states.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
