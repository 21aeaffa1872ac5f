package normalize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-profiles/internal/llm/llmtest"
	"github.com/jonathan/talent-profiles/internal/sources"
	"github.com/jonathan/talent-profiles/internal/types"
)

func TestNormalizeSocial(t *testing.T) {
	client := &llmtest.Client{
		GenerateJSONFunc: func(string) (string, error) {
			return `["Photography", "Golden Hour Photography"]`, nil
		},
	}

	raw := sources.RawSocialData{
		DisplayName: "@jane",
		Bio:         "Portrait photographer",
		Posts: []sources.SocialPost{
			{URL: "https://social.example.com/p/1", Caption: "Shoot day #sunset #portrait", MediaKind: types.MediaImage, Likes: 42},
			{URL: "https://social.example.com/p/2", Caption: "Behind the scenes", MediaKind: types.MediaVideo, Likes: 7},
		},
	}

	delta, err := New(client).Normalize(t.Context(), types.SourceSocial, "https://social.example.com/jane", raw)
	require.NoError(t, err)

	assert.Equal(t, "jane", delta.Name, "leading @ is stripped")
	assert.Equal(t, map[string]string{"social": "https://social.example.com/jane"}, delta.SocialLinks)
	assert.Equal(t, []string{"Photography", "Golden Hour Photography"}, delta.Skills)

	require.Len(t, delta.Portfolio, 2)
	first := delta.Portfolio[0]
	assert.Equal(t, "Social Post - 42 likes", first.Title)
	assert.Equal(t, "Shoot day #sunset #portrait", first.Description)
	assert.Equal(t, types.MediaImage, first.MediaKind)
	assert.Equal(t, []string{"sunset", "portrait"}, first.Tags)
	assert.Equal(t, types.SourceSocial, first.SourceKind)

	second := delta.Portfolio[1]
	assert.Equal(t, types.MediaVideo, second.MediaKind)
	assert.Empty(t, second.Tags)
}

func TestNormalizeCareer(t *testing.T) {
	client := &llmtest.Client{
		GenerateContentFunc: func(prompt string) (string, error) {
			assert.Contains(t, prompt, "Creative Director at Studio X: Led rebranding work")
			return "John is a creative director with a decade of brand experience.", nil
		},
	}

	raw := sources.RawCareerData{
		Name:     "John Doe",
		Headline: "Creative Director",
		Location: "New York, NY",
		Skills:   []string{"Branding", "Art Direction"},
		Experience: []sources.ExperienceEntry{
			{Title: "Creative Director", Company: "Studio X", Duration: "2019-2024", Description: "Led rebranding work"},
		},
	}

	delta, err := New(client).Normalize(t.Context(), types.SourceCareer, "https://career.example.com/in/john", raw)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", delta.Name)
	assert.Equal(t, "Creative Director", delta.Profession)
	assert.Equal(t, "New York, NY", delta.Location)
	assert.Equal(t, []string{"Branding", "Art Direction"}, delta.Skills)
	assert.Equal(t, "John is a creative director with a decade of brand experience.", delta.Bio)
	assert.Empty(t, delta.Portfolio)
}

func TestNormalizeCareerBioFailureLeavesBioUnset(t *testing.T) {
	raw := sources.RawCareerData{
		Name:   "John Doe",
		Skills: []string{"Branding"},
		Experience: []sources.ExperienceEntry{
			{Title: "Director", Company: "Studio X", Description: "Led work"},
		},
	}

	delta, err := New(&llmtest.Client{}).Normalize(t.Context(), types.SourceCareer, "id", raw)
	require.NoError(t, err)
	assert.Empty(t, delta.Bio)
	assert.Equal(t, []string{"Branding"}, delta.Skills)
}

func TestNormalizeWebsite(t *testing.T) {
	client := &llmtest.Client{
		GenerateJSONFunc: func(string) (string, error) { return `["Web Design"]`, nil },
	}

	images := make([]string, 12)
	for i := range images {
		images[i] = fmt.Sprintf("https://jane.example.com/img/%d.jpg", i)
	}
	raw := sources.RawWebsiteData{
		URL:         "https://jane.example.com",
		Title:       "Jane Doe Portfolio",
		Description: "Portraits and landscapes",
		Text:        "Photography portfolio with portraits and landscapes.",
		Images:      images,
	}

	delta, err := New(client).Normalize(t.Context(), types.SourceWebsite, "https://jane.example.com", raw)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"website": "https://jane.example.com"}, delta.SocialLinks)
	assert.Equal(t, []string{"Web Design"}, delta.Skills)

	require.Len(t, delta.Portfolio, 10, "image candidates are capped at ten")
	item := delta.Portfolio[0]
	assert.Equal(t, "Website Image", item.Title)
	assert.Equal(t, "Portraits and landscapes", item.Description)
	assert.Equal(t, types.MediaImage, item.MediaKind)
	assert.Equal(t, "https://jane.example.com/img/0.jpg", item.MediaURL)
	assert.Empty(t, item.Tags)
}

func TestNormalizeWebsiteTruncatesTextForSkillExtraction(t *testing.T) {
	var seen string
	client := &llmtest.Client{
		GenerateJSONFunc: func(prompt string) (string, error) {
			seen = prompt
			return `[]`, nil
		},
	}

	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'a'
	}
	raw := sources.RawWebsiteData{Text: string(long)}

	_, err := New(client).Normalize(t.Context(), types.SourceWebsite, "https://jane.example.com", raw)
	require.NoError(t, err)
	assert.Less(t, len(seen), 1500, "only leading page text reaches the prompt")
}

func TestNormalizeDocument(t *testing.T) {
	client := &llmtest.Client{
		GenerateJSONFunc: func(string) (string, error) { return `["Photography"]`, nil },
	}

	raw := sources.RawDocumentData{
		Text: "Jane Doe\nEmail: jane@example.com\nPhone: (555) 123-4567 \nSkills: Photography",
	}

	delta, err := New(client).Normalize(t.Context(), types.SourceDocument, "resume.txt", raw)
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", delta.Email)
	assert.Equal(t, "(555) 123-4567", delta.Phone)
	assert.Equal(t, []string{"Photography"}, delta.Skills)
	assert.Empty(t, delta.SocialLinks)
}

func TestNormalizeDocumentMissingLabels(t *testing.T) {
	raw := sources.RawDocumentData{Text: "Jane Doe, photographer."}

	delta, err := New(&llmtest.Client{}).Normalize(t.Context(), types.SourceDocument, "resume.txt", raw)
	require.NoError(t, err)
	assert.Empty(t, delta.Email)
	assert.Empty(t, delta.Phone)
}

func TestNormalizeNilRawYieldsEmptyDelta(t *testing.T) {
	delta, err := New(&llmtest.Client{}).Normalize(t.Context(), types.SourceWebsite, "https://down.example.com", nil)
	require.NoError(t, err)
	assert.True(t, delta.Empty())
	assert.Equal(t, types.SourceWebsite, delta.SourceKind)
}

func TestNormalizeUnsupportedKind(t *testing.T) {
	_, err := New(&llmtest.Client{}).Normalize(t.Context(), types.SourceKind("instagram"), "jane", sources.RawDocumentData{Text: "x"})
	require.Error(t, err)

	var unsupportedErr *types.UnsupportedSourceKindError
	assert.ErrorAs(t, err, &unsupportedErr)
}

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		caption  string
		expected []string
	}{
		{"Shoot day #sunset #portrait", []string{"sunset", "portrait"}},
		{"no tags here", nil},
		{"#one#two", []string{"one", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractHashtags(tt.caption))
		})
	}
}
