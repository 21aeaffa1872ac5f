package sources

import (
	"context"

	"github.com/jonathan/talent-profiles/internal/types"
)

// RawCareerData is the shaped payload of a career-site profile.
type RawCareerData struct {
	Name       string
	Headline   string
	Location   string
	Skills     []string
	Experience []ExperienceEntry
}

// ExperienceEntry is one work-history item from a career profile.
type ExperienceEntry struct {
	Title       string
	Company     string
	Duration    string
	Description string
}

// Kind implements RawData.
func (RawCareerData) Kind() types.SourceKind { return types.SourceCareer }

// CareerAdapter fetches career-site profile data.
//
// Career platforms gate profile reads behind partner APIs, so this adapter
// returns representative simulated data in the partner-API response shape.
type CareerAdapter struct{}

// Kind implements Adapter.
func (*CareerAdapter) Kind() types.SourceKind { return types.SourceCareer }

// Fetch returns the career profile for the given identifier.
func (*CareerAdapter) Fetch(_ context.Context, _ string) (RawData, error) {
	return RawCareerData{
		Name:     "John Doe",
		Headline: "Creative Director & Photographer",
		Location: "New York, NY",
		Skills:   []string{"Photography", "Adobe Creative Suite", "Portrait Photography", "Commercial Photography"},
		Experience: []ExperienceEntry{
			{
				Title:       "Senior Photographer",
				Company:     "Creative Studio Inc.",
				Duration:    "2021 - Present",
				Description: "Lead photographer for commercial and portrait projects",
			},
		},
	}, nil
}
