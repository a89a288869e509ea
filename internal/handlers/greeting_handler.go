package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"lambda-services-api/internal/models"
	"lambda-services-api/pkg/lambda"
)

const (
	greetingService = "greeting-api"
	anonymousUser   = "Anonymous"
)

// GreetingHandler greets the caller identified by the upstream authorizer
type GreetingHandler struct {
	opts   ResponseOptions
	logger logrus.FieldLogger
}

// GreetingResponse is the body returned by /greet
type GreetingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId,omitempty"`
}

// HealthResponse is the body returned by /health
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// NewGreetingHandler creates a new greeting handler
func NewGreetingHandler(logger logrus.FieldLogger) *GreetingHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &GreetingHandler{
		opts: ResponseOptions{
			CORS:         true,
			AllowMethods: "GET,OPTIONS",
			AllowHeaders: "Content-Type,Authorization",
		},
		logger: logger.WithField("function", "greeting"),
	}
}

// @Summary Greet the caller
// @Description Greet the user named by the authorizer claims
// @Tags greeting
// @Produce json
// @Security BearerAuth
// @Success 200 {object} GreetingResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 405 {object} MessageBody
// @Router /greet [get]
func (h *GreetingHandler) Handle(ctx context.Context, req *lambda.Request) *lambda.Response {
	return guard(h.logger, h.opts, func() (*lambda.Response, error) {
		if req == nil {
			req = &lambda.Request{}
		}
		logRequest(h.logger, req)

		if req.Method != http.MethodGet {
			return MessageResponse(http.StatusMethodNotAllowed, "Method not allowed", h.opts), nil
		}

		now := models.FormatTimestamp(time.Now())

		if isHealthPath(req.Path) {
			return JSONResponse(http.StatusOK, HealthResponse{
				Status:    "healthy",
				Service:   greetingService,
				Timestamp: now,
			}, h.opts), nil
		}

		userName := GreetingName(req.Claims)
		h.logger.WithFields(logrus.Fields{
			"request_id": req.RequestID,
			"user":       userName,
		}).Debug("Greeting user")

		return JSONResponse(http.StatusOK, GreetingResponse{
			Message:   "Hello " + userName + "! Welcome to the Greeting API on AWS Lambda.",
			Timestamp: now,
			RequestID: req.RequestID,
		}, h.opts), nil
	})
}

// GreetingName picks the display name from authorizer claims:
// cognito:username, then sub, then Anonymous.
func GreetingName(claims map[string]string) string {
	if name := claims["cognito:username"]; name != "" {
		return name
	}
	if sub := claims["sub"]; sub != "" {
		return sub
	}
	return anonymousUser
}

func isHealthPath(path string) bool {
	return strings.HasSuffix(strings.TrimRight(path, "/"), "/health")
}
