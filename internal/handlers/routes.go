package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lambda-services-api/internal/middleware"
	"lambda-services-api/internal/models"
	"lambda-services-api/pkg/lambda"
)

// maxRequestSize matches the API Gateway payload limit
const maxRequestSize = 10 * 1024 * 1024

// RouterConfig holds the function handlers mounted on the local server
type RouterConfig struct {
	Users       lambda.Handler
	Orders      lambda.Handler
	Weather     lambda.Handler
	Hello       lambda.Handler
	Greeting    lambda.Handler
	AuthService *middleware.AuthService
	Logger      logrus.FieldLogger
}

// MiddlewareConfig holds configuration for the global middleware chain
type MiddlewareConfig struct {
	Logger         logrus.FieldLogger
	RateLimitRPS   float64
	RateLimitBurst int
}

// TokenRequest is the body accepted by the development token endpoint
type TokenRequest struct {
	Username string `json:"username" validate:"required,alphanum,max=128"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// TokenResponse carries a signed development token
type TokenResponse struct {
	Token   string `json:"token"`
	Subject string `json:"sub"`
}

// SetupRoutes mounts every function on the same paths API Gateway routes to it
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	users := GinHandler(config.Users)
	router.Any("/users", users)
	router.Any("/users/:"+UserIDParam, users)

	orders := GinHandler(config.Orders)
	router.Any("/orders", orders)
	router.Any("/orders/:"+OrderIDParam, orders)

	router.Any("/weather", GinHandler(config.Weather))
	router.Any("/hello", GinHandler(config.Hello))

	greeting := GinHandler(config.Greeting)
	router.GET("/health", greeting)
	router.GET("/greet", middleware.Authentication(config.AuthService, config.Logger), greeting)
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, config *MiddlewareConfig) {
	// Request ID and correlation ID
	router.Use(middleware.RequestID())
	router.Use(middleware.CorrelationID())

	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(maxRequestSize))
	router.Use(middleware.RateLimiter(config.Logger, config.RateLimitRPS, config.RateLimitBurst))

	router.Use(middleware.StructuredLogger(config.Logger))
	router.Use(middleware.PerformanceMonitor(config.Logger, time.Second))
	router.Use(middleware.AuditLogger(config.Logger))
	router.Use(middleware.ErrorTracker(config.Logger))
}

// SetupDevelopmentRoutes adds development-only routes
func SetupDevelopmentRoutes(router *gin.Engine, config *RouterConfig) {
	dev := router.Group("/dev")
	{
		// Issue a token the local authorizer accepts on /greet
		dev.POST("/token", func(c *gin.Context) {
			var req TokenRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, middleware.NewErrorResponse(c, "Invalid request body", err.Error()))
				return
			}

			if err := models.Validator().Struct(&req); err != nil {
				resp := middleware.NewErrorResponse(c, "Validation failed", "request body failed validation")
				if validationErrors, ok := err.(validator.ValidationErrors); ok {
					resp.ValidationErrors = middleware.FormatValidationErrors(validationErrors)
				}
				c.JSON(http.StatusBadRequest, resp)
				return
			}

			subject := uuid.New().String()
			token, err := config.AuthService.GenerateToken(subject, req.Username, req.Email)
			if err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusInternalServerError, middleware.NewErrorResponse(c, "Internal server error", "failed to issue token"))
				return
			}

			c.JSON(http.StatusOK, TokenResponse{Token: token, Subject: subject})
		})
	}
}
