package services

import (
	"context"
	"fmt"

	"lambda-services-api/internal/ids"
	"lambda-services-api/internal/models"
)

// orderService implements the OrderService interface
type orderService struct {
	clock Clock
	ids   ids.Generator
}

// NewOrderService creates a new order service instance
func NewOrderService(config *ServiceConfig) OrderService {
	config = config.withDefaults()
	return &orderService{
		clock: config.Clock,
		ids:   config.IDs,
	}
}

// CreateOrder creates a new pending order. Nothing is persisted.
func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	if req == nil {
		req = &CreateOrderRequest{}
	}

	return &models.Order{
		ID:        s.ids.NewID(),
		UserID:    req.UserID,
		Items:     req.Items,
		Total:     req.Total,
		Status:    models.OrderStatusPending,
		CreatedAt: models.FormatTimestamp(s.clock()),
	}, nil
}

// GetOrder returns the canned order with its id replaced by id
func (s *orderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	if id == "" {
		return nil, fmt.Errorf("get order: %w", ErrMissingID)
	}

	return &models.Order{
		ID:     id,
		UserID: models.RawJSON("user123"),
		Items: models.RawJSON([]models.OrderItem{
			{Name: "Product A", Quantity: 2, Price: 29.99},
		}),
		Total:     models.RawJSON(59.98),
		Status:    models.OrderStatusCompleted,
		CreatedAt: models.SeedTimestamp,
	}, nil
}
