// Package service implements the authoritative side of the profile contract:
// implicit creation on first access, the two independently submittable update
// channels, and district claim enforcement. The claim check-then-claim is
// delegated to the claim store, which guarantees it atomically; this layer
// decides ordering and compensation around it.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hustings/internal/audit"
	"hustings/internal/catalog"
	"hustings/internal/platform/metrics"
	"hustings/internal/profile/bio"
	"hustings/internal/profile/cascade"
	"hustings/internal/profile/models"
	dErrors "hustings/pkg/domain-errors"
	"hustings/pkg/platform/sentinel"
)

// ProfileStore is the snapshot persistence port.
type ProfileStore interface {
	Find(ctx context.Context, identityID string) (*models.Profile, error)
	Save(ctx context.Context, p *models.Profile) error
	Delete(ctx context.Context, identityID string) error
}

// ClaimStore is the district uniqueness port. ClaimIfAvailable must be
// atomic: check-then-claim, all-or-nothing.
type ClaimStore interface {
	ClaimIfAvailable(ctx context.Context, districtKey, identityID string) error
	Release(ctx context.Context, districtKey, identityID string) error
	ReleaseAll(ctx context.Context, identityID string) error
}

// AuditPublisher records profile lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates profile reads and the two update channels.
type Service struct {
	profiles ProfileStore
	claims   ClaimStore
	catalog  *catalog.Catalog

	logger        *slog.Logger
	auditor       AuditPublisher
	metrics       *metrics.Metrics
	maxBioEntries int
	now           func() time.Time
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditor = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithMaxBioEntries(n int) Option {
	return func(s *Service) { s.maxBioEntries = n }
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs a Service.
func New(profiles ProfileStore, claims ClaimStore, cat *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		profiles:      profiles,
		claims:        claims,
		catalog:       cat,
		logger:        slog.Default(),
		maxBioEntries: 8,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetProfile returns the authoritative snapshot, creating the default empty
// aggregate on first authenticated access.
func (s *Service) GetProfile(ctx context.Context, identityID string) (*models.Profile, error) {
	if identityID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "identity id is required")
	}

	p, err := s.profiles.Find(ctx, identityID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load profile")
	}

	p = models.NewProfile(identityID, s.now())
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create profile")
	}
	s.emit(ctx, audit.Event{IdentityID: identityID, Action: audit.ActionProfileCreated})
	return p, nil
}

// UpdateIdentity applies the jurisdiction channel. The new district is claimed
// before the snapshot write; on write failure the fresh claim is released so
// the channel stays all-or-nothing. The previous district is released only
// after the write sticks.
func (s *Service) UpdateIdentity(ctx context.Context, identityID string, upd models.IdentityUpdate) error {
	sel := cascade.Selection{
		Position:  upd.Position,
		Region:    upd.Jurisdiction.Region,
		SubRegion: upd.Jurisdiction.SubRegion,
		District:  upd.Jurisdiction.District,
	}
	if err := cascade.Validate(s.catalog, sel); err != nil {
		s.count("identity", "validation_error")
		return err
	}

	current, err := s.GetProfile(ctx, identityID)
	if err != nil {
		return err
	}

	oldKey := current.DistrictKey()
	newKey := upd.Jurisdiction.DistrictKey(upd.Position)

	if newKey != "" {
		if err := s.claims.ClaimIfAvailable(ctx, newKey, identityID); err != nil {
			if errors.Is(err, sentinel.ErrClaimed) {
				s.count("identity", "conflict")
				if s.metrics != nil {
					s.metrics.ConflictsTotal.Inc()
				}
				return dErrors.New(dErrors.CodeConflict, "district is already claimed by another candidate")
			}
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to claim district")
		}
	}

	title := upd.DisplayTitle
	if title == "" {
		title = cascade.DeriveTitle(sel)
	}

	current.Position = upd.Position
	current.Jurisdiction = upd.Jurisdiction
	current.DisplayTitle = title
	current.Status = models.ProfileStatusComplete
	current.UpdatedAt = s.now()

	if err := s.profiles.Save(ctx, current); err != nil {
		if newKey != "" && newKey != oldKey {
			if relErr := s.claims.Release(ctx, newKey, identityID); relErr != nil {
				s.logger.ErrorContext(ctx, "failed to release claim after save failure",
					"district_key", newKey, "error", relErr)
			}
		}
		s.count("identity", "error")
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to save profile")
	}

	if oldKey != "" && oldKey != newKey {
		if err := s.claims.Release(ctx, oldKey, identityID); err != nil {
			s.logger.ErrorContext(ctx, "failed to release previous district claim",
				"district_key", oldKey, "error", err)
		}
		s.emit(ctx, audit.Event{IdentityID: identityID, Action: audit.ActionDistrictReleased, DistrictKey: oldKey})
	}
	if newKey != "" && newKey != oldKey {
		s.emit(ctx, audit.Event{IdentityID: identityID, Action: audit.ActionDistrictClaimed, DistrictKey: newKey})
	}
	s.emit(ctx, audit.Event{IdentityID: identityID, Action: audit.ActionJurisdictionUpdated, Detail: title})
	s.count("identity", "ok")
	return nil
}

// UpdateContent applies the bio + personalization channel. Over-length
// content is clamped, not rejected; capacity and protected-entry violations
// are hard validation failures.
func (s *Service) UpdateContent(ctx context.Context, identityID string, upd models.ContentUpdate) error {
	entries, err := bio.Normalize(upd.BioEntries, s.maxBioEntries)
	if err != nil {
		s.count("content", "validation_error")
		return err
	}

	current, err := s.GetProfile(ctx, identityID)
	if err != nil {
		return err
	}

	current.BioEntries = entries
	if upd.Personalization != nil {
		current.Personalization = upd.Personalization
	}
	// The categorized entries are authoritative from the first content save;
	// the legacy field only feeds the one-time load migration.
	if len(entries) > 0 {
		current.LegacyBio = ""
	}
	current.UpdatedAt = s.now()

	if err := s.profiles.Save(ctx, current); err != nil {
		s.count("content", "error")
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to save profile")
	}

	s.emit(ctx, audit.Event{IdentityID: identityID, Action: audit.ActionContentUpdated})
	s.count("content", "ok")
	return nil
}

// DeleteProfile destroys the aggregate and releases every claim it holds.
func (s *Service) DeleteProfile(ctx context.Context, identityID string) error {
	if identityID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "identity id is required")
	}
	if err := s.claims.ReleaseAll(ctx, identityID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to release district claims")
	}
	if err := s.profiles.Delete(ctx, identityID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to delete profile")
	}
	s.emit(ctx, audit.Event{IdentityID: identityID, Action: audit.ActionProfileDeleted})
	if s.metrics != nil {
		s.metrics.ProfilesDeleted.Inc()
	}
	return nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action, "error", err)
	}
}

func (s *Service) count(channel, outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementSave(channel, outcome)
	}
}
