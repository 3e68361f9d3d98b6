package profile

import (
	"log/slog"

	"hustings/internal/catalog"
	"hustings/internal/profile/handler"
	"hustings/internal/profile/service"
)

// Service exposes profile orchestration: implicit creation, the two update
// channels, and district claim enforcement.
type Service = service.Service

// Handler wires HTTP endpoints to the profile service.
type Handler = handler.Handler

// NewService constructs the profile service with required dependencies.
func NewService(profiles service.ProfileStore, claims service.ClaimStore, cat *catalog.Catalog, opts ...service.Option) *Service {
	return service.New(profiles, claims, cat, opts...)
}

// NewHandler constructs the HTTP handler for candidate-facing profile routes.
func NewHandler(s *Service, cat *catalog.Catalog, logger *slog.Logger, opts ...handler.Option) *Handler {
	return handler.New(s, cat, logger, opts...)
}
