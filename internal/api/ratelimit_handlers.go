package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerRateLimitRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "rateLimitStatus",
		Method:      http.MethodGet,
		Path:        "/rate-limit-status",
		Summary:     "Search quota status",
		Description: "Reports the caller's remaining daily search quota. Polling this endpoint never consumes any of it.",
		Tags:        []string{"Books"},
	}, s.handleRateLimitStatus)
}

// RateLimitStatusResponse reports the caller's quota state.
type RateLimitStatusResponse struct {
	Limit     int       `json:"limit" doc:"Search requests allowed per 24-hour window"`
	Remaining int       `json:"remaining" doc:"Requests left in the current window"`
	ResetTime time.Time `json:"resetTime" doc:"When the current window resets"`
}

// RateLimitStatusOutput wraps the quota status response.
type RateLimitStatusOutput struct {
	Body RateLimitStatusResponse
}

func (s *Server) handleRateLimitStatus(ctx context.Context, _ *struct{}) (*RateLimitStatusOutput, error) {
	decision := s.limiter.Status(ClientIP(ctx))

	return &RateLimitStatusOutput{
		Body: RateLimitStatusResponse{
			Limit:     decision.Limit,
			Remaining: decision.Remaining,
			ResetTime: decision.ResetAt,
		},
	}, nil
}
