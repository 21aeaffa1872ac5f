// Package pipeline provides the high-level orchestration for one profile
// aggregation run: fetch and normalize sources concurrently, fold deltas
// sequentially in request order, enrich, then persist.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-profiles/internal/aggregate"
	"github.com/jonathan/talent-profiles/internal/enrich"
	"github.com/jonathan/talent-profiles/internal/normalize"
	"github.com/jonathan/talent-profiles/internal/observability"
	"github.com/jonathan/talent-profiles/internal/sources"
	"github.com/jonathan/talent-profiles/internal/types"
)

// maxConcurrentSources bounds parallel source fetches.
const maxConcurrentSources = 4

// Fetcher retrieves raw data for one source. *sources.Registry satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, kind types.SourceKind, identifier string) (sources.RawData, error)
}

// Normalizer maps raw source data into a profile delta.
type Normalizer interface {
	Normalize(ctx context.Context, kind types.SourceKind, identifier string, raw sources.RawData) (*types.ProfileDelta, error)
}

// Enricher runs the AI enrichment pass over an aggregated profile.
type Enricher interface {
	Enrich(ctx context.Context, profile *types.Profile)
}

// Store persists aggregated profiles. *db.DB satisfies it.
type Store interface {
	UpsertProfile(ctx context.Context, profile *types.Profile) error
}

// ProgressEvent represents a progress update during an aggregation run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when run progress occurs
type ProgressCallback func(event ProgressEvent)

// Progress step names emitted during a run.
const (
	StepFetch   = "fetch"
	StepFold    = "fold"
	StepEnrich  = "enrich"
	StepPersist = "persist"
)

// Builder executes aggregation runs. Store may be nil for dry runs; every
// other dependency is required.
type Builder struct {
	Fetcher    Fetcher
	Normalizer Normalizer
	Enricher   Enricher
	Store      Store

	Verbose    bool
	Printer    *observability.Printer
	OnProgress ProgressCallback
}

// New creates a Builder with the default normalizer and enricher wiring.
func New(fetcher Fetcher, normalizer *normalize.Normalizer, enricher *enrich.Enricher, store Store) *Builder {
	return &Builder{
		Fetcher:    fetcher,
		Normalizer: normalizer,
		Enricher:   enricher,
		Store:      store,
	}
}

// Build runs one aggregation: every source in req is fetched and normalized
// concurrently, the resulting deltas are folded strictly in request order,
// the profile is enriched and then persisted wholesale.
//
// Per-source failures degrade to empty deltas and unsupported kinds are
// skipped; only an invalid request or a persistence failure returns an error.
func (b *Builder) Build(ctx context.Context, req *types.ImportRequest) (*types.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	deltas, err := b.collectDeltas(ctx, req)
	if err != nil {
		return nil, err
	}

	b.emitProgress(StepFold, fmt.Sprintf("Folding %d deltas for %s", len(deltas), req.UserID), nil)

	profile := types.NewProfile(req.UserID)
	for _, delta := range deltas {
		aggregate.Fold(profile, delta)
	}

	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	b.emitProgress(StepEnrich, "Running enrichment pass", nil)
	b.Enricher.Enrich(ctx, profile)

	if b.Verbose && b.Printer != nil {
		b.Printer.PrintProfile(profile)
	}

	if b.Store != nil {
		if err := b.Store.UpsertProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("persisting profile %s failed: %w", req.UserID, err)
		}
		b.emitProgress(StepPersist, fmt.Sprintf("Stored profile %s", req.UserID), nil)
	}

	return profile, nil
}

// BuildWithProgress runs Build with a per-run progress callback. The
// receiver is copied so concurrent runs do not share callback state.
func (b *Builder) BuildWithProgress(ctx context.Context, req *types.ImportRequest, onProgress ProgressCallback) (*types.Profile, error) {
	run := *b
	run.OnProgress = onProgress
	return run.Build(ctx, req)
}

// collectDeltas fetches and normalizes every source concurrently, slotting
// each delta by its request index so fold order matches request order. A
// skipped source leaves a nil slot.
func (b *Builder) collectDeltas(ctx context.Context, req *types.ImportRequest) ([]*types.ProfileDelta, error) {
	deltas := make([]*types.ProfileDelta, len(req.Sources))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentSources)

	for i := range req.Sources {
		identifier := req.Sources[i]
		kind := req.SourceKinds[i]

		group.Go(func() error {
			delta, err := b.processSource(groupCtx, kind, identifier)
			if err != nil {
				// Unsupported kinds and adapter bugs skip the source.
				log.Printf("[pipeline] skipping source %q (%s): %v", identifier, kind, err)
				return nil
			}
			deltas[i] = delta
			b.emitProgress(StepFetch, fmt.Sprintf("Normalized %s source %q", kind, identifier), delta)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return deltas, nil
}

// processSource fetches and normalizes one source. A fetch failure degrades
// to an empty delta; a normalization failure propagates so the caller can
// skip the source.
func (b *Builder) processSource(ctx context.Context, kind types.SourceKind, identifier string) (*types.ProfileDelta, error) {
	raw, err := b.Fetcher.Fetch(ctx, kind, identifier)
	if err != nil {
		var fetchErr *sources.FetchError
		if errors.As(err, &fetchErr) {
			log.Printf("[pipeline] fetch failed for %q (%s), continuing with empty delta: %v", identifier, kind, err)
			return b.Normalizer.Normalize(ctx, kind, identifier, nil)
		}
		return nil, err
	}

	delta, err := b.Normalizer.Normalize(ctx, kind, identifier, raw)
	if err != nil {
		return nil, err
	}

	if b.Verbose && b.Printer != nil {
		b.Printer.PrintDelta(delta)
	}
	return delta, nil
}

// emitProgress calls the progress callback if configured
func (b *Builder) emitProgress(step, message string, content any) {
	if b.OnProgress != nil {
		b.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}
