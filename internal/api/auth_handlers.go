package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/alawler14/Bibliotheca/internal/domain"
	"github.com/alawler14/Bibliotheca/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/auth/register",
		Summary:       "Register new user",
		Description:   "Creates a new account and returns a session token for it. The display name is optional and defaults to the email's local part.",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Log in",
		Description: "Verifies credentials and returns a fresh session token.",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "me",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Current user",
		Description: "Returns the account behind the presented token.",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMe)
}

// === DTOs ===

// RegisterInput wraps the registration request body.
type RegisterInput struct {
	Body service.RegisterRequest
}

// LoginInput wraps the login request body.
type LoginInput struct {
	Body service.LoginRequest
}

// AuthOutput wraps the session token response.
type AuthOutput struct {
	Body service.AuthResponse
}

// MeResponse contains the authenticated user.
type MeResponse struct {
	User *domain.User `json:"user" doc:"The authenticated user"`
}

// MeOutput wraps the current-user response.
type MeOutput struct {
	Body MeResponse
}

// === Handlers ===

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Register(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: *resp}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: *resp}, nil
}

func (s *Server) handleMe(ctx context.Context, _ *struct{}) (*MeOutput, error) {
	userID, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Auth.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &MeOutput{Body: MeResponse{User: user}}, nil
}
