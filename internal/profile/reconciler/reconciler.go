// Package reconciler keeps an optimistically mutated local profile copy
// consistent with the authoritative store. Edits apply locally first; a save
// validates locally, submits, then unconditionally re-fetches the
// authoritative snapshot and overwrites all local state with it. Local edits
// are never treated as final truth.
//
// State machine: Idle → Validating → Submitting → Reconciling → Idle, with
// the error branch Submitting → Reverting → Idle on a district conflict.
package reconciler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hustings/internal/catalog"
	"hustings/internal/platform/metrics"
	"hustings/internal/profile/bio"
	"hustings/internal/profile/cache"
	"hustings/internal/profile/cascade"
	"hustings/internal/profile/models"
	dErrors "hustings/pkg/domain-errors"
	"hustings/pkg/platform/sentinel"
)

// Client is the authoritative profile contract the reconciler talks to.
// Updates return only success or a typed error; the snapshot of record always
// comes from a subsequent GetProfile.
type Client interface {
	GetProfile(ctx context.Context, identityID string) (*models.Profile, error)
	UpdateIdentity(ctx context.Context, identityID string, upd models.IdentityUpdate) error
	UpdateContent(ctx context.Context, identityID string, upd models.ContentUpdate) error
}

// Phase is the reconciler's position in its state machine.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseValidating  Phase = "validating"
	PhaseSubmitting  Phase = "submitting"
	PhaseReconciling Phase = "reconciling"
	PhaseReverting   Phase = "reverting"
)

// SaveResult reports what a successful save established.
type SaveResult struct {
	// FirstBioCompleted is true when this save moved the persisted
	// self-introduction across the completion threshold for the first time.
	FirstBioCompleted bool
}

// Reconciler orchestrates load, optimistic mutation, submission, and
// authoritative reload for one identity's profile.
type Reconciler struct {
	client  Client
	mirror  cache.ProfileCache
	catalog *catalog.Catalog

	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	lifetime     *Lifetime
	bioThreshold int
	maxEntries   int

	mu            sync.Mutex
	identityID    string
	phase         Phase
	saving        bool
	loading       bool
	authoritative *models.Profile
	local         *models.Profile
}

// Option configures a Reconciler.
type Option func(*Reconciler)

func WithCache(mirror cache.ProfileCache) Option {
	return func(r *Reconciler) { r.mirror = mirror }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) { r.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Reconciler) { r.metrics = m }
}

// WithLifetime binds the session liveness token.
func WithLifetime(l *Lifetime) Option {
	return func(r *Reconciler) { r.lifetime = l }
}

// WithBioThreshold overrides the first-completion length threshold.
func WithBioThreshold(n int) Option {
	return func(r *Reconciler) { r.bioThreshold = n }
}

func WithMaxEntries(n int) Option {
	return func(r *Reconciler) { r.maxEntries = n }
}

// New constructs a reconciler for one identity.
func New(identityID string, client Client, cat *catalog.Catalog, opts ...Option) *Reconciler {
	r := &Reconciler{
		client:       client,
		catalog:      cat,
		logger:       slog.Default(),
		tracer:       otel.Tracer("hustings/internal/profile/reconciler"),
		identityID:   identityID,
		phase:        PhaseIdle,
		bioThreshold: 200,
		maxEntries:   8,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Phase returns the current state machine phase.
func (r *Reconciler) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Local returns a copy of the optimistic working state.
func (r *Reconciler) Local() *models.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.local.Clone()
}

// Authoritative returns a copy of the last server snapshot.
func (r *Reconciler) Authoritative() *models.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.authoritative.Clone()
}

// Load fetches the authoritative snapshot and resets local state to it.
// At most one load may be in flight; concurrent calls are rejected. If the
// stored profile predates categorized entries, a two-entry default list is
// synthesized from the legacy bio — the one-time migration fallback.
func (r *Reconciler) Load(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "reconciler.Load",
		trace.WithAttributes(attribute.String("profile.identity_id", r.identityID)))
	defer span.End()

	r.mu.Lock()
	if r.loading {
		r.mu.Unlock()
		return dErrors.Wrap(sentinel.ErrInvalidState, dErrors.CodeBadRequest, "a load is already in flight")
	}
	r.loading = true
	r.mu.Unlock()

	p, err := r.client.GetProfile(ctx, r.identityID)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false

	if err != nil {
		return classify(err, "failed to load profile")
	}
	if !r.lifetime.Alive() {
		r.logger.DebugContext(ctx, "dropping load result after lifetime end",
			"identity_id", r.identityID)
		return nil
	}

	migrateLegacyBio(p)
	r.authoritative = p
	r.local = p.Clone()
	r.phase = PhaseIdle
	return nil
}

// migrateLegacyBio synthesizes the starter entry list for profiles persisted
// before categorized entries existed.
func migrateLegacyBio(p *models.Profile) {
	if len(p.BioEntries) == 0 && p.LegacyBio != "" {
		p.BioEntries = models.DefaultBioEntries(p.LegacyBio)
	}
}

// ApplyField optimistically changes one identity field on the local copy,
// cascading resets to dependent fields and refreshing the derived title.
func (r *Reconciler) ApplyField(field cascade.Field, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.local == nil {
		return
	}
	sel := cascade.Apply(cascade.SelectionFrom(r.local), field, value)
	r.local.Position = sel.Position
	r.local.Jurisdiction = sel.Path()
	r.local.DisplayTitle = cascade.DeriveTitle(sel)
}

// SetDisplayTitle overrides the derived title with a user-entered one.
func (r *Reconciler) SetDisplayTitle(title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.local != nil {
		r.local.DisplayTitle = title
	}
}

// AddBioEntry appends an entry of the category's default type to the local
// copy.
func (r *Reconciler) AddBioEntry(category models.BioCategory) (models.BioEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.local == nil {
		return models.BioEntry{}, dErrors.New(dErrors.CodeBadRequest, "profile not loaded")
	}
	col := bio.New(r.local.BioEntries, r.maxEntries)
	entry, err := col.Add(category)
	if err != nil {
		return models.BioEntry{}, err
	}
	r.local.BioEntries = col.Entries()
	return entry, nil
}

// UpdateBioEntry mutates one field of one local entry.
func (r *Reconciler) UpdateBioEntry(index int, field bio.Field, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.local == nil {
		return dErrors.New(dErrors.CodeBadRequest, "profile not loaded")
	}
	col := bio.New(r.local.BioEntries, r.maxEntries)
	if err := col.Update(index, field, value); err != nil {
		return err
	}
	r.local.BioEntries = col.Entries()
	return nil
}

// RemoveBioEntry deletes one local entry. Entry 0 is protected.
func (r *Reconciler) RemoveBioEntry(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.local == nil {
		return dErrors.New(dErrors.CodeBadRequest, "profile not loaded")
	}
	col := bio.New(r.local.BioEntries, r.maxEntries)
	if err := col.Remove(index); err != nil {
		return err
	}
	r.local.BioEntries = col.Entries()
	return nil
}

// Save submits the payload and reconciles against the authoritative store.
//
// At most one save per profile may be in flight; a second call is rejected,
// not queued. Validation runs locally first and a failure makes no network
// call. On success the authoritative snapshot is unconditionally re-fetched
// and overwrites all local state. On a district conflict the jurisdiction
// fields revert to the last authoritative values while content edits stay for
// explicit resubmission. There is no automatic retry.
func (r *Reconciler) Save(ctx context.Context, payload models.UpdatePayload) (SaveResult, error) {
	ctx, span := r.tracer.Start(ctx, "reconciler.Save",
		trace.WithAttributes(
			attribute.String("profile.identity_id", r.identityID),
			attribute.Bool("save.identity_channel", payload.Identity != nil),
			attribute.Bool("save.content_channel", payload.Content != nil),
		))
	defer span.End()

	start := time.Now()

	r.mu.Lock()
	if r.saving {
		r.mu.Unlock()
		return SaveResult{}, dErrors.Wrap(sentinel.ErrSaveInFlight, dErrors.CodeBadRequest, "a save is already in flight")
	}
	if r.authoritative == nil {
		r.mu.Unlock()
		return SaveResult{}, dErrors.New(dErrors.CodeBadRequest, "profile not loaded")
	}

	// The guard covers validation too so two saves can never interleave, but
	// it is released on a validation failure: a corrected resubmission must
	// not be blocked.
	r.saving = true
	r.phase = PhaseValidating
	if err := r.validateLocked(payload); err != nil {
		r.saving = false
		r.phase = PhaseIdle
		r.mu.Unlock()
		return SaveResult{}, err
	}

	// The previously authoritative snapshot, captured before submission.
	// First-bio-completion compares against this, never against local
	// optimistic state, so a retried save cannot re-fire.
	prev := r.authoritative
	r.phase = PhaseSubmitting
	r.mu.Unlock()

	result, err := r.submitAndReconcile(ctx, payload, prev)

	r.mu.Lock()
	r.saving = false
	r.mu.Unlock()

	if err == nil {
		if r.metrics != nil {
			r.metrics.SaveDuration.Observe(time.Since(start).Seconds())
		}
		if result.FirstBioCompleted && r.metrics != nil {
			r.metrics.BioCompletions.Inc()
		}
	}
	return result, err
}

func (r *Reconciler) validateLocked(payload models.UpdatePayload) error {
	if payload.Identity == nil && payload.Content == nil {
		return dErrors.New(dErrors.CodeValidation, "nothing to save")
	}
	if payload.Identity != nil {
		sel := cascade.Selection{
			Position:  payload.Identity.Position,
			Region:    payload.Identity.Jurisdiction.Region,
			SubRegion: payload.Identity.Jurisdiction.SubRegion,
			District:  payload.Identity.Jurisdiction.District,
		}
		if err := cascade.Validate(r.catalog, sel); err != nil {
			return err
		}
	}
	if payload.Content != nil {
		if _, err := bio.Normalize(payload.Content.BioEntries, r.maxEntries); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) submitAndReconcile(ctx context.Context, payload models.UpdatePayload, prev *models.Profile) (SaveResult, error) {
	if payload.Identity != nil {
		if err := r.client.UpdateIdentity(ctx, r.identityID, *payload.Identity); err != nil {
			return SaveResult{}, r.handleSubmitError(ctx, err, prev)
		}
	}
	if payload.Content != nil {
		if err := r.client.UpdateContent(ctx, r.identityID, *payload.Content); err != nil {
			// Content failures keep the optimistic edits for resubmission;
			// nothing is reverted.
			r.setPhase(PhaseIdle)
			return SaveResult{}, classify(err, "failed to save content")
		}
	}

	// Reconcile: the snapshot of record always comes from a fresh fetch,
	// strictly after the triggering save.
	r.setPhase(PhaseReconciling)
	fresh, err := r.client.GetProfile(ctx, r.identityID)
	if err != nil {
		r.setPhase(PhaseIdle)
		return SaveResult{}, classify(err, "saved but failed to reload profile")
	}
	migrateLegacyBio(fresh)

	firstBio := payload.Content != nil &&
		prev.IntroductionLength() < r.bioThreshold &&
		fresh.IntroductionLength() >= r.bioThreshold

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.lifetime.Alive() {
		r.logger.DebugContext(ctx, "dropping save result after lifetime end",
			"identity_id", r.identityID)
		r.phase = PhaseIdle
		return SaveResult{}, nil
	}

	r.authoritative = fresh
	r.local = fresh.Clone()
	r.phase = PhaseIdle

	if r.mirror != nil {
		if err := r.mirror.Put(ctx, fresh); err != nil {
			r.logger.WarnContext(ctx, "cache mirror write failed",
				"identity_id", r.identityID, "error", err)
			if r.metrics != nil {
				r.metrics.CacheWriteFailures.Inc()
			}
		}
	}
	return SaveResult{FirstBioCompleted: firstBio}, nil
}

// handleSubmitError classifies an identity-channel failure. A district
// conflict reverts the local jurisdiction fields to the last authoritative
// values; everything else leaves local state untouched for resubmission.
// Either way the state machine ends back at idle.
func (r *Reconciler) handleSubmitError(ctx context.Context, err error, prev *models.Profile) error {
	if !dErrors.HasCode(err, dErrors.CodeConflict) {
		r.setPhase(PhaseIdle)
		return classify(err, "failed to save identity")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.phase = PhaseReverting
	if r.lifetime.Alive() && r.local != nil {
		r.local.Position = prev.Position
		r.local.Jurisdiction = prev.Jurisdiction
		r.local.DisplayTitle = prev.DisplayTitle
	}
	r.phase = PhaseIdle
	r.logger.InfoContext(ctx, "district conflict, jurisdiction reverted",
		"identity_id", r.identityID)
	return err
}

func (r *Reconciler) setPhase(p Phase) {
	r.mu.Lock()
	r.phase = p
	r.mu.Unlock()
}

// classify guarantees every error leaving the reconciler carries a domain
// code; the caller never crashes on an unknown failure shape.
func classify(err error, msg string) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
