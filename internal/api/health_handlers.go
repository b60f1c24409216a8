package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server status, the current time, and the search cache size",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status    string    `json:"status" doc:"Server status"`
	Timestamp time.Time `json:"timestamp" doc:"Current server time"`
	CacheSize int       `json:"cacheSize" doc:"Entries in the search cache"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{
		Body: HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC(),
			CacheSize: s.services.Search.CacheSize(),
		},
	}, nil
}
