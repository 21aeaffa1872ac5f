// Package sources provides the per-kind source adapters that fetch raw,
// source-shaped profile data. Adapters are deliberately thin: they fetch and
// shape, and leave all interpretation to the field normalizer.
package sources

import (
	"context"
	"fmt"

	"github.com/jonathan/talent-profiles/internal/types"
)

// RawData is the source-specific payload returned by an adapter.
// Exactly one concrete type exists per source kind.
type RawData interface {
	Kind() types.SourceKind
}

// Adapter fetches raw data for one source kind.
type Adapter interface {
	Kind() types.SourceKind
	Fetch(ctx context.Context, identifier string) (RawData, error)
}

// FetchError represents a failed source fetch. The pipeline absorbs it as an
// empty-delta condition; it never fails a run.
type FetchError struct {
	Kind       types.SourceKind
	Identifier string
	Cause      error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch failed for %s source %q: %v", e.Kind, e.Identifier, e.Cause)
	}
	return fmt.Sprintf("fetch failed for %s source %q", e.Kind, e.Identifier)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Registry holds one adapter per source kind and dispatches fetches.
type Registry struct {
	adapters map[types.SourceKind]Adapter
}

// NewRegistry creates a registry from the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[types.SourceKind]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Kind()] = a
	}
	return r
}

// DefaultRegistry returns a registry with the standard adapter for each of
// the four known source kinds.
func DefaultRegistry(useBrowser, verbose bool) *Registry {
	return NewRegistry(
		&SocialAdapter{},
		&CareerAdapter{},
		&WebsiteAdapter{UseBrowser: useBrowser, Verbose: verbose},
		&DocumentAdapter{},
	)
}

// Fetch dispatches to the adapter registered for kind.
// An unknown kind yields an UnsupportedSourceKindError; a failed fetch
// yields a FetchError.
func (r *Registry) Fetch(ctx context.Context, kind types.SourceKind, identifier string) (RawData, error) {
	adapter, ok := r.adapters[kind]
	if !ok {
		return nil, &types.UnsupportedSourceKindError{Kind: kind}
	}

	raw, err := adapter.Fetch(ctx, identifier)
	if err != nil {
		return nil, &FetchError{Kind: kind, Identifier: identifier, Cause: err}
	}
	return raw, nil
}
