package services

import (
	"fmt"

	"lambda-services-api/internal/adapters/storage"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	UserService    UserService
	OrderService   OrderService
	WeatherService WeatherService
	HelloService   HelloService
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(buckets storage.BucketLister, config *ServiceConfig) (*ServiceContainer, error) {
	if buckets == nil {
		return nil, fmt.Errorf("bucket lister cannot be nil")
	}

	config = config.withDefaults()

	userService := NewUserService(config)

	return &ServiceContainer{
		UserService:    userService,
		OrderService:   NewOrderService(config),
		WeatherService: NewWeatherService(config),
		HelloService:   NewHelloService(buckets, userService, config),
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.UserService == nil {
		return fmt.Errorf("user service is nil")
	}
	if sc.OrderService == nil {
		return fmt.Errorf("order service is nil")
	}
	if sc.WeatherService == nil {
		return fmt.Errorf("weather service is nil")
	}
	if sc.HelloService == nil {
		return fmt.Errorf("hello service is nil")
	}

	return nil
}

// Close performs cleanup for all services
func (sc *ServiceContainer) Close() error {
	return nil
}
