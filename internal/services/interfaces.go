package services

import (
	"context"
	"encoding/json"

	"lambda-services-api/internal/models"
)

// UserService defines the operations behind the user resource
type UserService interface {
	// CreateUser fabricates a new user record from the request
	CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error)

	// GetUser returns the canned user record carrying the requested id
	GetUser(ctx context.Context, id string) (*models.User, error)

	// LookupUser consults the fixed user directory
	LookupUser(ctx context.Context, id string) (*models.DirectoryUser, error)
}

// OrderService defines the operations behind the order resource
type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
}

// WeatherService produces mock weather observations
type WeatherService interface {
	CurrentWeather(ctx context.Context, city string) (*models.WeatherReading, error)
}

// HelloService gathers the account snapshot reported by the hello-world function
type HelloService interface {
	Snapshot(ctx context.Context) (*HelloSnapshot, error)
}

// CreateUserRequest holds the fields a caller may supply when creating a user.
// Values of any JSON type are kept as given. Absent fields stay nil and are
// omitted from the created record.
type CreateUserRequest struct {
	Name  json.RawMessage `json:"name" swaggertype:"string"`
	Email json.RawMessage `json:"email" swaggertype:"string"`
}

// CreateOrderRequest holds the fields a caller may supply when creating an order
type CreateOrderRequest struct {
	UserID json.RawMessage `json:"userId" swaggertype:"string"`
	Items  json.RawMessage `json:"items" swaggertype:"array,object"`
	Total  json.RawMessage `json:"total" swaggertype:"number"`
}

// WeatherQuery is the input accepted by the weather function
type WeatherQuery struct {
	City string `json:"city" validate:"required"`
}

// HelloSnapshot is the account information reported by the hello-world function
type HelloSnapshot struct {
	DefaultUser *models.DirectoryUser
	Region      string
	BucketCount int
	BucketNames []string
}
