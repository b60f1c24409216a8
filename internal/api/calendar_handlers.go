package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/alawler14/Bibliotheca/internal/domain"
)

func (s *Server) registerCalendarRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCalendar",
		Method:      http.MethodGet,
		Path:        "/calendar/{year}",
		Summary:     "Release calendar",
		Description: "Returns the caller's tracked books releasing in the given year, in ascending date order.",
		Tags:        []string{"Calendar"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCalendar)
}

// === DTOs ===

// CalendarInput selects the calendar year.
type CalendarInput struct {
	Year int `path:"year" doc:"Four-digit calendar year"`
}

// CalendarResponse lists the caller's tracked releases for one year.
type CalendarResponse struct {
	Releases []*domain.Release `json:"releases" doc:"Releases in ascending date order"`
}

// CalendarOutput wraps the calendar response.
type CalendarOutput struct {
	Body CalendarResponse
}

// === Handlers ===

func (s *Server) handleGetCalendar(ctx context.Context, input *CalendarInput) (*CalendarOutput, error) {
	userID, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	releases, err := s.services.Tracking.Calendar(ctx, userID, input.Year)
	if err != nil {
		return nil, err
	}

	return &CalendarOutput{Body: CalendarResponse{Releases: releases}}, nil
}
