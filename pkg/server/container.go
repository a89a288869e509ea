package server

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"lambda-services-api/internal/adapters/storage"
	"lambda-services-api/internal/config"
	"lambda-services-api/internal/handlers"
	"lambda-services-api/internal/middleware"
	"lambda-services-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	UserService    services.UserService
	OrderService   services.OrderService
	WeatherService services.WeatherService
	HelloService   services.HelloService
	AuthService    *middleware.AuthService

	Users    *handlers.ResourceDispatcher
	Orders   *handlers.ResourceDispatcher
	Weather  *handlers.WeatherHandler
	Hello    *handlers.HelloHandler
	Greeting *handlers.GreetingHandler

	// Internal dependencies
	buckets  storage.BucketLister
	services *services.ServiceContainer
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := NewLogger(&cfg.Log)

	buckets, err := storage.CreateFromConfig(ctx, &storage.StorageConfig{
		Type:    cfg.Storage.Type,
		Region:  cfg.Storage.Region,
		Options: map[string]string{"buckets": cfg.Storage.Buckets},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket lister: %w", err)
	}

	serviceConfig := &services.ServiceConfig{
		Region:           cfg.AWSRegion,
		DirectoryLatency: cfg.Directory.Latency,
	}

	serviceContainer, err := services.NewServiceContainer(buckets, serviceConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}
	if err := serviceContainer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service container: %w", err)
	}

	plain := handlers.ResponseOptions{}

	container := &Container{
		Config:         cfg,
		Logger:         logger,
		UserService:    serviceContainer.UserService,
		OrderService:   serviceContainer.OrderService,
		WeatherService: serviceContainer.WeatherService,
		HelloService:   serviceContainer.HelloService,
		Users:          handlers.NewUserDispatcher(serviceContainer.UserService, plain, logger),
		Orders:         handlers.NewOrderDispatcher(serviceContainer.OrderService, plain, logger),
		Weather:        handlers.NewWeatherHandler(serviceContainer.WeatherService, logger),
		Hello:          handlers.NewHelloHandler(serviceContainer.HelloService, logger),
		Greeting:       handlers.NewGreetingHandler(logger),
		buckets:        buckets,
		services:       serviceContainer,
	}

	logger.WithFields(logrus.Fields{
		"environment":  cfg.Environment,
		"storage_type": cfg.Storage.Type,
		"region":       cfg.AWSRegion,
		"mode":         config.GetDeploymentMode(),
	}).Debug("Container initialized")

	return container, nil
}

// EnableAuth validates the JWT settings and builds the token authorizer used
// by the local server's /greet route. Lambda functions rely on the API
// Gateway authorizer and never call it.
func (c *Container) EnableAuth() error {
	if err := c.Config.JWT.Validate(c.Config.Environment); err != nil {
		return fmt.Errorf("invalid authorizer configuration: %w", err)
	}

	c.AuthService = middleware.NewAuthService(&middleware.AuthConfig{
		JWTSecret:     c.Config.JWT.Secret,
		TokenDuration: c.Config.JWT.TokenDuration(),
		Issuer:        c.Config.JWT.Issuer,
	})
	return nil
}

// RouterConfig exposes the container's handlers to the local router
func (c *Container) RouterConfig() *handlers.RouterConfig {
	return &handlers.RouterConfig{
		Users:       c.Users,
		Orders:      c.Orders,
		Weather:     c.Weather,
		Hello:       c.Hello,
		Greeting:    c.Greeting,
		AuthService: c.AuthService,
		Logger:      c.Logger,
	}
}

// MiddlewareConfig exposes the settings for the global middleware chain
func (c *Container) MiddlewareConfig() *handlers.MiddlewareConfig {
	return &handlers.MiddlewareConfig{
		Logger:         c.Logger,
		RateLimitRPS:   c.Config.RateLimit.RequestsPerSecond,
		RateLimitBurst: c.Config.RateLimit.Burst,
	}
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.services != nil {
		if err := c.services.Close(); err != nil {
			return fmt.Errorf("failed to close services: %w", err)
		}
	}
	return nil
}

// NewLogger builds the application logger. JSON output is used on Lambda so
// CloudWatch receives one document per line.
func NewLogger(cfg *config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
