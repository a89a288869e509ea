package services

import (
	"context"
	"fmt"
	"time"

	"lambda-services-api/internal/ids"
	"lambda-services-api/internal/models"
)

// directory is the fixed set of users known to LookupUser
var directory = map[string]models.DirectoryUser{
	"1": {ID: "1", Name: "John Doe"},
	"2": {ID: "2", Name: "Jane Smith"},
	"3": {ID: "3", Name: "Bob Johnson"},
}

// userService implements the UserService interface
type userService struct {
	clock   Clock
	ids     ids.Generator
	latency time.Duration
}

// NewUserService creates a new user service instance
func NewUserService(config *ServiceConfig) UserService {
	config = config.withDefaults()
	return &userService{
		clock:   config.Clock,
		ids:     config.IDs,
		latency: config.DirectoryLatency,
	}
}

// CreateUser creates a new user. Nothing is persisted.
func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if req == nil {
		req = &CreateUserRequest{}
	}

	return &models.User{
		ID:        s.ids.NewID(),
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: models.FormatTimestamp(s.clock()),
	}, nil
}

// GetUser returns the canned user with its id replaced by id
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("get user: %w", ErrMissingID)
	}

	return &models.User{
		ID:        id,
		Name:      models.RawJSON("John Doe"),
		Email:     models.RawJSON("john.doe@example.com"),
		CreatedAt: models.SeedTimestamp,
	}, nil
}

// LookupUser resolves id against the fixed directory after the configured
// latency. Cancellation of ctx aborts the wait.
func (s *userService) LookupUser(ctx context.Context, id string) (*models.DirectoryUser, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("lookup user %s: %w", id, ctx.Err())
		case <-timer.C:
		}
	}

	user, ok := directory[id]
	if !ok {
		return nil, fmt.Errorf("lookup user %s: %w", id, ErrUserNotFound)
	}
	return &user, nil
}
