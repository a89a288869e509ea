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

// UserIDParam is the path parameter carrying a user id
const UserIDParam = "userId"

// UserHandler implements the user resource operations
type UserHandler struct {
	userService services.UserService
	opts        ResponseOptions
}

// CreateUserResponse is the body returned for a created user
type CreateUserResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// GetUserResponse is the body returned for a user lookup
type GetUserResponse struct {
	User *models.User `json:"user"`
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService, opts ResponseOptions) *UserHandler {
	return &UserHandler{
		userService: userService,
		opts:        opts,
	}
}

// @Summary Create a user
// @Description Fabricate a user record from the request body. Nothing is stored.
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.CreateUserRequest false "User data"
// @Success 201 {object} CreateUserResponse
// @Failure 400 {object} MessageBody
// @Failure 500 {object} MessageBody
// @Router /users [post]
func (h *UserHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var body services.CreateUserRequest
	if err := decodeJSONObject(req.Body, &body); err != nil {
		return MessageResponse(http.StatusBadRequest, "Invalid request body", h.opts), nil
	}

	user, err := h.userService.CreateUser(ctx, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return JSONResponse(http.StatusCreated, CreateUserResponse{
		Message: "User created successfully",
		User:    user,
	}, h.opts), nil
}

// @Summary Get a user
// @Description Return the canned user record carrying the requested id
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} GetUserResponse
// @Failure 400 {object} MessageBody
// @Failure 500 {object} MessageBody
// @Router /users/{userId} [get]
func (h *UserHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id := req.PathParam(UserIDParam)
	if id == "" {
		return MessageResponse(http.StatusBadRequest, "User ID is required", h.opts), nil
	}

	user, err := h.userService.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	return JSONResponse(http.StatusOK, GetUserResponse{User: user}, h.opts), nil
}

// NewUserDispatcher wires a UserHandler into a ResourceDispatcher
func NewUserDispatcher(userService services.UserService, opts ResponseOptions, logger logrus.FieldLogger) *ResourceDispatcher {
	return NewResourceDispatcher("user", UserIDParam, NewUserHandler(userService, opts), opts, logger)
}
