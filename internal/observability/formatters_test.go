package observability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-profiles/internal/types"
)

func TestPrintProfile(t *testing.T) {
	var sb strings.Builder
	printer := NewPrinter(&sb)

	profile := types.NewProfile("user-1")
	profile.Name = "Jane Doe"
	profile.Profession = "Photographer"
	profile.Skills = []string{"Photography", "Editing"}
	profile.PortfolioItems = []types.PortfolioItem{
		{Title: "Website Image", MediaKind: types.MediaImage,
			AIAnalysis: &types.ImageAnalysis{Category: "photography"}},
	}

	printer.PrintProfile(profile)

	out := sb.String()
	assert.Contains(t, out, "AGGREGATED PROFILE")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Photography, Editing")
	assert.Contains(t, out, "(photography)")
}

func TestPrintProfileNil(t *testing.T) {
	var sb strings.Builder
	NewPrinter(&sb).PrintProfile(nil)
	assert.Empty(t, sb.String())
}

func TestPrintDelta(t *testing.T) {
	var sb strings.Builder
	printer := NewPrinter(&sb)

	printer.PrintDelta(&types.ProfileDelta{
		SourceKind:  types.SourceSocial,
		Name:        "jane",
		SocialLinks: map[string]string{"social": "https://social.example.com/jane"},
		Portfolio:   []types.PortfolioCandidate{{Title: "Social Post - 42 likes"}},
	})

	out := sb.String()
	assert.Contains(t, out, "DELTA [SOCIAL]")
	assert.Contains(t, out, "jane")
	assert.Contains(t, out, "1 candidate(s)")
}

func TestPrintDeltaEmpty(t *testing.T) {
	var sb strings.Builder
	NewPrinter(&sb).PrintDelta(&types.ProfileDelta{SourceKind: types.SourceWebsite})
	assert.Contains(t, sb.String(), "(no contribution)")
}

func TestJoinCapped(t *testing.T) {
	assert.Equal(t, "a, b", joinCapped([]string{"a", "b"}, 5))
	assert.Equal(t, "a, b ... and 2 more", joinCapped([]string{"a", "b", "c", "d"}, 2))
}
