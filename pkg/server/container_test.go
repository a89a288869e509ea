package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"lambda-services-api/internal/config"
	"lambda-services-api/pkg/lambda"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8081",
		AWSRegion:   "eu-central-1",
		Log:         config.LogConfig{Level: "error", Format: "text"},
		Storage:     config.StorageConfig{Type: "mock", Region: "eu-central-1", Buckets: "alpha, beta"},
		JWT:         config.JWTConfig{Secret: "test-secret", Issuer: "greeting-api", ExpiryHours: 1},
		RateLimit:   config.RateLimitConfig{RequestsPerSecond: 10, Burst: 20},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.UserService == nil || container.OrderService == nil || container.WeatherService == nil || container.HelloService == nil {
		t.Error("Expected every service to be initialized")
	}
	if container.Users == nil || container.Orders == nil || container.Weather == nil || container.Hello == nil || container.Greeting == nil {
		t.Error("Expected every function handler to be initialized")
	}
	if container.Logger.GetLevel() != logrus.ErrorLevel {
		t.Errorf("logger level = %v, want error", container.Logger.GetLevel())
	}

	if container.AuthService != nil {
		t.Error("Expected no authorizer before EnableAuth")
	}
	if err := container.EnableAuth(); err != nil {
		t.Fatalf("EnableAuth() error = %v", err)
	}

	routes := container.RouterConfig()
	if routes.AuthService == nil || routes.AuthService != container.AuthService || routes.Users == nil {
		t.Error("RouterConfig does not expose the container's handlers")
	}
	if mw := container.MiddlewareConfig(); mw.RateLimitRPS != 10 || mw.RateLimitBurst != 20 {
		t.Errorf("MiddlewareConfig = %+v", mw)
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

func TestNewContainer_HelloUsesConfiguredInventory(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	defer container.Close()

	snapshot, err := container.HelloService.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snapshot.Region != "eu-central-1" || snapshot.BucketCount != 2 {
		t.Errorf("snapshot = %+v", snapshot)
	}
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown storage", func(c *config.Config) { c.Storage.Type = "ftp" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			if _, err := NewContainer(context.Background(), cfg); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestContainer_EnableAuth(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*config.Config)
		expectErr bool
	}{
		{name: "valid secret", mutate: func(c *config.Config) {}},
		{name: "empty jwt secret", mutate: func(c *config.Config) { c.JWT.Secret = "" }, expectErr: true},
		{name: "default secret in production", mutate: func(c *config.Config) {
			c.Environment = "production"
			c.JWT.Secret = "local-development-secret"
		}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)

			container, err := NewContainer(context.Background(), cfg)
			if err != nil {
				t.Fatalf("NewContainer() error = %v", err)
			}
			defer container.Close()

			err = container.EnableAuth()
			if tt.expectErr && err == nil {
				t.Error("Expected an error")
			}
			if !tt.expectErr && (err != nil || container.AuthService == nil) {
				t.Errorf("EnableAuth() error = %v, authorizer = %v", err, container.AuthService)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	jsonLogger := NewLogger(&config.LogConfig{Level: "debug", Format: "json"})
	if _, ok := jsonLogger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want JSON", jsonLogger.Formatter)
	}
	if jsonLogger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", jsonLogger.GetLevel())
	}

	fallback := NewLogger(&config.LogConfig{Level: "loud", Format: "text"})
	if _, ok := fallback.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("formatter = %T, want text", fallback.Formatter)
	}
	if fallback.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", fallback.GetLevel())
	}
}

func TestConnectionManager_ReusesContainer(t *testing.T) {
	loads := 0
	cm := NewConnectionManager(func() (*config.Config, error) {
		loads++
		return testConfig(), nil
	})

	if cm.IsHealthy() {
		t.Error("Expected an uninitialized manager to be unhealthy")
	}

	first, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer() error = %v", err)
	}
	second, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer() error = %v", err)
	}

	if first != second {
		t.Error("Expected the warm container to be reused")
	}
	if loads != 1 {
		t.Errorf("config loaded %d times, want 1", loads)
	}
	if !cm.IsHealthy() {
		t.Error("Expected manager to be healthy after use")
	}

	if err := cm.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if cm.IsHealthy() {
		t.Error("Expected manager to be unhealthy after cleanup")
	}

	third, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer() error = %v", err)
	}
	if third == first {
		t.Error("Expected a fresh container after cleanup")
	}
}

func TestConnectionManager_RetriesFailedLoad(t *testing.T) {
	fail := true
	cm := NewConnectionManager(func() (*config.Config, error) {
		if fail {
			return nil, errors.New("missing configuration")
		}
		return testConfig(), nil
	})

	if _, err := cm.GetContainer(context.Background()); err == nil {
		t.Fatal("Expected the load error")
	}

	fail = false
	if _, err := cm.GetContainer(context.Background()); err != nil {
		t.Fatalf("GetContainer() error after recovery = %v", err)
	}
}

func TestLambdaHandler(t *testing.T) {
	cm := NewConnectionManager(func() (*config.Config, error) { return testConfig(), nil })
	handler := LambdaHandler(cm, func(c *Container) lambda.Handler { return c.Greeting })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp, err := handler(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/greet",
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: "gw-1",
			Authorizer: map[string]interface{}{
				"claims": map[string]interface{}{"cognito:username": "carol"},
			},
		},
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Message != "Hello carol! Welcome to the Greeting API on AWS Lambda." || body.RequestID != "gw-1" {
		t.Errorf("body = %+v", body)
	}
}

func TestLambdaHandler_ProductionWithoutJWTSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "users")
	t.Setenv("STORAGE_TYPE", "mock")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LOG_LEVEL", "error")

	cm := NewConnectionManager(config.GetOptimizedConfig)
	defer cm.Cleanup()
	handler := LambdaHandler(cm, func(c *Container) lambda.Handler { return c.Users })

	resp, err := handler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/users",
		Body:       `{"name":"Ada","email":"ada@example.com"}`,
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", resp.StatusCode, resp.Body)
	}
	if !strings.Contains(resp.Body, `"name":"Ada"`) {
		t.Errorf("body = %s", resp.Body)
	}
}

func TestLambdaHandler_InitFailure(t *testing.T) {
	cm := NewConnectionManager(func() (*config.Config, error) { return nil, errors.New("boom") })
	handler := LambdaHandler(cm, func(c *Container) lambda.Handler { return c.Users })

	resp, err := handler(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError || resp.Body != `{"message":"Internal server error"}` {
		t.Errorf("response = %+v", resp)
	}
}
