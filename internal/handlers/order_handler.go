package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"lambda-services-api/internal/models"
	"lambda-services-api/internal/services"
	"lambda-services-api/pkg/lambda"
)

// OrderIDParam is the path parameter carrying an order id
const OrderIDParam = "orderId"

// OrderHandler implements the order resource operations
type OrderHandler struct {
	orderService services.OrderService
	opts         ResponseOptions
}

// CreateOrderResponse is the body returned for a created order
type CreateOrderResponse struct {
	Message string        `json:"message"`
	Order   *models.Order `json:"order"`
}

// GetOrderResponse is the body returned for an order lookup
type GetOrderResponse struct {
	Order *models.Order `json:"order"`
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService services.OrderService, opts ResponseOptions) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		opts:         opts,
	}
}

// @Summary Create an order
// @Description Fabricate a pending order from the request body. Nothing is stored.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body services.CreateOrderRequest false "Order data"
// @Success 201 {object} CreateOrderResponse
// @Failure 400 {object} MessageBody
// @Failure 500 {object} MessageBody
// @Router /orders [post]
func (h *OrderHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var body services.CreateOrderRequest
	if err := decodeJSONObject(req.Body, &body); err != nil {
		return MessageResponse(http.StatusBadRequest, "Invalid request body", h.opts), nil
	}

	order, err := h.orderService.CreateOrder(ctx, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return JSONResponse(http.StatusCreated, CreateOrderResponse{
		Message: "Order created successfully",
		Order:   order,
	}, h.opts), nil
}

// @Summary Get an order
// @Description Return the canned order record carrying the requested id
// @Tags orders
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {object} GetOrderResponse
// @Failure 400 {object} MessageBody
// @Failure 500 {object} MessageBody
// @Router /orders/{orderId} [get]
func (h *OrderHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id := req.PathParam(OrderIDParam)
	if id == "" {
		return MessageResponse(http.StatusBadRequest, "Order ID is required", h.opts), nil
	}

	order, err := h.orderService.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}

	return JSONResponse(http.StatusOK, GetOrderResponse{Order: order}, h.opts), nil
}

// NewOrderDispatcher wires an OrderHandler into a ResourceDispatcher
func NewOrderDispatcher(orderService services.OrderService, opts ResponseOptions, logger logrus.FieldLogger) *ResourceDispatcher {
	return NewResourceDispatcher("order", OrderIDParam, NewOrderHandler(orderService, opts), opts, logger)
}
