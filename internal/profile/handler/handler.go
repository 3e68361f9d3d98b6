// Package handler exposes the profile API over HTTP. Handlers decode, call
// the service, and map domain error codes to status codes; no business rules
// live here.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hustings/internal/catalog"
	"hustings/internal/platform/middleware"
	"hustings/internal/profile/cache"
	"hustings/internal/profile/cascade"
	"hustings/internal/profile/models"
	"hustings/internal/profile/service"
	dErrors "hustings/pkg/domain-errors"
	"hustings/pkg/platform/sentinel"
)

// Handler serves the profile routes.
type Handler struct {
	svc     *service.Service
	catalog *catalog.Catalog
	mirror  cache.ProfileCache
	logger  *slog.Logger
}

// Option configures the Handler.
type Option func(*Handler)

// WithCache enables best-effort snapshot reads from the mirror. A store read
// populates the mirror, updates invalidate it, so a later read never serves
// the pre-update state.
func WithCache(mirror cache.ProfileCache) Option {
	return func(h *Handler) { h.mirror = mirror }
}

// New constructs the Handler.
func New(svc *service.Service, cat *catalog.Catalog, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{svc: svc, catalog: cat, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the profile routes on the router. The router is expected to
// already carry the auth middleware; every route assumes an authenticated
// identity in the context.
func (h *Handler) Register(r chi.Router) {
	r.Get("/profile", h.getProfile)
	r.Put("/profile/jurisdiction", h.updateJurisdiction)
	r.Put("/profile/content", h.updateContent)
	r.Get("/profile/catalog/regions", h.listRegions)
	r.Get("/profile/catalog/subregions", h.listSubRegions)
	r.Get("/profile/catalog/districts", h.listDistricts)
	r.Delete("/me", h.deleteProfile)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identityID := middleware.GetIdentityID(ctx)

	if h.mirror != nil {
		if p, err := h.mirror.Get(ctx, identityID); err == nil {
			h.writeJSON(w, http.StatusOK, p)
			return
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			h.logger.WarnContext(ctx, "cache read failed, falling back to store",
				"request_id", middleware.GetRequestID(ctx), "error", err)
		}
	}

	p, err := h.svc.GetProfile(ctx, identityID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if h.mirror != nil {
		if err := h.mirror.Put(ctx, p); err != nil {
			h.logger.WarnContext(ctx, "cache write failed",
				"request_id", middleware.GetRequestID(ctx), "error", err)
		}
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) updateJurisdiction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identityID := middleware.GetIdentityID(ctx)

	var upd models.IdentityUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.svc.UpdateIdentity(ctx, identityID, upd); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidate(r, identityID)

	p, err := h.svc.GetProfile(ctx, identityID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) updateContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identityID := middleware.GetIdentityID(ctx)

	var upd models.ContentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.svc.UpdateContent(ctx, identityID, upd); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidate(r, identityID)

	p, err := h.svc.GetProfile(ctx, identityID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) listRegions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]string{"regions": h.catalog.Regions()})
}

func (h *Handler) listSubRegions(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "region is required"))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"subregions": h.catalog.SubRegions(region)})
}

func (h *Handler) listDistricts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	position := models.Position(q.Get("position"))
	if !position.Valid() {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "unknown position"))
		return
	}
	sel := cascade.Selection{
		Position:  position,
		Region:    q.Get("region"),
		SubRegion: q.Get("subregion"),
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"districts": cascade.AvailableDistricts(h.catalog, sel)})
}

func (h *Handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identityID := middleware.GetIdentityID(ctx)

	if err := h.svc.DeleteProfile(ctx, identityID); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.invalidate(r, identityID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) invalidate(r *http.Request, identityID string) {
	if h.mirror == nil {
		return
	}
	if err := h.mirror.Invalidate(r.Context(), identityID); err != nil {
		h.logger.WarnContext(r.Context(), "cache invalidation failed",
			"request_id", middleware.GetRequestID(r.Context()), "error", err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	h.writeJSON(w, status, errorResponse{
		Error:   string(code),
		Message: err.Error(),
	})
}
