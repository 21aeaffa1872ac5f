// Package types provides type definitions for structured data used throughout the talent-profiles system.
package types

import "fmt"

// SourceKind identifies the kind of external source a profile fragment came from.
type SourceKind string

// Known source kinds. Every other tag is rejected by the normalizer.
const (
	// SourceSocial is a social-network profile (posts, captions, hashtags).
	SourceSocial SourceKind = "social"
	// SourceCareer is a career-site profile (headline, experience, skill list).
	SourceCareer SourceKind = "career"
	// SourceWebsite is a portfolio website (page text, image URLs).
	SourceWebsite SourceKind = "website"
	// SourceDocument is a résumé or similar free-text document.
	SourceDocument SourceKind = "document"
)

// Valid reports whether k is one of the four known source kinds.
func (k SourceKind) Valid() bool {
	switch k {
	case SourceSocial, SourceCareer, SourceWebsite, SourceDocument:
		return true
	}
	return false
}

// UnsupportedSourceKindError indicates a source kind tag outside the closed enumeration.
// It is fatal only for that one source's processing; the run continues.
type UnsupportedSourceKindError struct {
	Kind SourceKind
}

func (e *UnsupportedSourceKindError) Error() string {
	return fmt.Sprintf("unsupported source kind: %q", string(e.Kind))
}
