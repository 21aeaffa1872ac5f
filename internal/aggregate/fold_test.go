package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-profiles/internal/types"
)

func TestFoldScalarsFirstNonEmptyWins(t *testing.T) {
	profile := types.NewProfile("user-1")

	Fold(profile, &types.ProfileDelta{SourceKind: types.SourceSocial, Name: "jane"})
	Fold(profile, &types.ProfileDelta{SourceKind: types.SourceCareer, Name: "Jane Doe", Profession: "Photographer"})

	assert.Equal(t, "jane", profile.Name, "first non-empty value is kept")
	assert.Equal(t, "Photographer", profile.Profession, "empty slots fill from later deltas")
}

func TestFoldEmptyValueNeverClears(t *testing.T) {
	profile := types.NewProfile("user-1")
	profile.Email = "jane@example.com"

	Fold(profile, &types.ProfileDelta{SourceKind: types.SourceDocument, Email: ""})

	assert.Equal(t, "jane@example.com", profile.Email)
}

func TestFoldSocialLinksLastWriteWins(t *testing.T) {
	profile := types.NewProfile("user-1")

	Fold(profile, &types.ProfileDelta{
		SourceKind:  types.SourceSocial,
		SocialLinks: map[string]string{"social": "https://old.example.com/jane"},
	})
	Fold(profile, &types.ProfileDelta{
		SourceKind:  types.SourceSocial,
		SocialLinks: map[string]string{"social": "https://new.example.com/jane"},
	})
	Fold(profile, &types.ProfileDelta{
		SourceKind:  types.SourceWebsite,
		SocialLinks: map[string]string{"website": "https://jane.example.com"},
	})

	assert.Equal(t, map[string]string{
		"social":  "https://new.example.com/jane",
		"website": "https://jane.example.com",
	}, profile.SocialLinks)
}

func TestFoldSkillsAppendWithDuplicates(t *testing.T) {
	profile := types.NewProfile("user-1")

	Fold(profile, &types.ProfileDelta{SourceKind: types.SourceSocial, Skills: []string{"Photography", "Editing"}})
	Fold(profile, &types.ProfileDelta{SourceKind: types.SourceCareer, Skills: []string{"Photography"}})

	assert.Equal(t, []string{"Photography", "Editing", "Photography"}, profile.Skills)
}

func TestFoldPortfolioAppendsInOrder(t *testing.T) {
	profile := types.NewProfile("user-1")

	Fold(profile, &types.ProfileDelta{
		SourceKind: types.SourceSocial,
		Portfolio: []types.PortfolioCandidate{
			{Title: "Social Post - 42 likes", MediaKind: types.MediaImage, SourceKind: types.SourceSocial},
		},
	})
	Fold(profile, &types.ProfileDelta{
		SourceKind: types.SourceWebsite,
		Portfolio: []types.PortfolioCandidate{
			{Title: "Website Image", MediaKind: types.MediaImage, SourceKind: types.SourceWebsite},
			{Title: "Website Image", MediaKind: types.MediaImage, SourceKind: types.SourceWebsite},
		},
	})

	require.Len(t, profile.PortfolioItems, 3)
	assert.Equal(t, "Social Post - 42 likes", profile.PortfolioItems[0].Title)
	assert.Equal(t, types.SourceWebsite, profile.PortfolioItems[1].SourceKind)
	for _, item := range profile.PortfolioItems {
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", item.ID.String())
		assert.Nil(t, item.AIAnalysis)
	}
}

func TestFoldEmptyDeltaIsNoOp(t *testing.T) {
	profile := types.NewProfile("user-1")
	profile.Name = "Jane"
	profile.Skills = []string{"Photography"}

	Fold(profile, &types.ProfileDelta{SourceKind: types.SourceWebsite})
	Fold(profile, nil)

	assert.Equal(t, "Jane", profile.Name)
	assert.Equal(t, []string{"Photography"}, profile.Skills)
	assert.Empty(t, profile.PortfolioItems)
}
