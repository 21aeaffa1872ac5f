package types

import (
	"time"

	"github.com/google/uuid"
)

// MediaKind classifies portfolio media.
type MediaKind string

// Media kinds carried on portfolio items.
const (
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
)

// ImageAnalysis is the structured result of AI image analysis.
// It mirrors the JSON shape requested from the vision model.
type ImageAnalysis struct {
	ContentType string   `json:"content_type"`
	Subjects    []string `json:"subjects"`
	Quality     string   `json:"quality"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
}

// PortfolioCandidate is a not-yet-analyzed portfolio entry proposed by one source.
type PortfolioCandidate struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	MediaKind   MediaKind  `json:"media_kind"`
	MediaURL    string     `json:"media_url,omitempty"`
	Tags        []string   `json:"tags"`
	SourceKind  SourceKind `json:"source_kind"`
}

// PortfolioItem is a PortfolioCandidate plus the optional AI analysis.
// AIAnalysis is absent until the enrichment pass runs and is never overwritten once set.
type PortfolioItem struct {
	ID          uuid.UUID      `json:"id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	MediaKind   MediaKind      `json:"media_kind"`
	MediaURL    string         `json:"media_url,omitempty"`
	Tags        []string       `json:"tags"`
	SourceKind  SourceKind     `json:"source_kind"`
	AIAnalysis  *ImageAnalysis `json:"ai_analysis,omitempty"`
}

// Profile is the canonical aggregate assembled by one aggregation run.
//
// Scalar identity fields (Name, Bio, Email, Phone, Location, Profession) are
// first-non-empty-wins: once set by a fold they are never overwritten.
// SocialLinks is last-write-wins per key. PortfolioItems is append-only and
// preserves source arrival order. Skills tolerates duplicates until the
// enrichment pass dedups it.
type Profile struct {
	UserID         string            `json:"user_id"`
	Name           string            `json:"name,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	Location       string            `json:"location,omitempty"`
	Profession     string            `json:"profession,omitempty"`
	Skills         []string          `json:"skills"`
	SocialLinks    map[string]string `json:"social_links"`
	PortfolioItems []PortfolioItem   `json:"portfolio_items"`
	CreatedAt      time.Time         `json:"created_at,omitempty"`
	UpdatedAt      time.Time         `json:"updated_at,omitempty"`
}

// NewProfile creates an empty profile owned by a single aggregation run.
// UserID is the immutable identity and must be non-empty.
func NewProfile(userID string) *Profile {
	return &Profile{
		UserID:         userID,
		Skills:         []string{},
		SocialLinks:    map[string]string{},
		PortfolioItems: []PortfolioItem{},
	}
}

// ProfileSummary is the lightweight listing view of a stored profile.
type ProfileSummary struct {
	UserID     string    `json:"user_id"`
	Name       string    `json:"name,omitempty"`
	Profession string    `json:"profession,omitempty"`
	Skills     []string  `json:"skills"`
	CreatedAt  time.Time `json:"created_at"`
}
