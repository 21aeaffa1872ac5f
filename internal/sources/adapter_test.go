package sources

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-profiles/internal/types"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		identifier string
		expected   string
	}{
		{"photographer_jane", "photographer_jane"},
		{"https://social.example.com/photographer_jane", "photographer_jane"},
		{"https://social.example.com/photographer_jane/", "photographer_jane"},
		{"social.example.com/users/jane", "jane"},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			assert.Equal(t, tt.expected, Username(tt.identifier))
		})
	}
}

func TestSocialAdapterFetch(t *testing.T) {
	adapter := &SocialAdapter{}
	raw, err := adapter.Fetch(t.Context(), "https://social.example.com/jane")
	require.NoError(t, err)

	social, ok := raw.(RawSocialData)
	require.True(t, ok)
	assert.Equal(t, "@jane", social.DisplayName)
	assert.NotEmpty(t, social.Posts)
}

func TestCareerAdapterFetch(t *testing.T) {
	adapter := &CareerAdapter{}
	raw, err := adapter.Fetch(t.Context(), "https://career.example.com/in/john")
	require.NoError(t, err)

	career, ok := raw.(RawCareerData)
	require.True(t, ok)
	assert.NotEmpty(t, career.Name)
	assert.NotEmpty(t, career.Skills)
	assert.NotEmpty(t, career.Experience)
}

func TestWebsiteAdapterFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>
			<head><title>Jane Doe</title><meta name="description" content="Portfolio site"></head>
			<body><main>Photography portfolio with portraits and landscapes. ` +
			`<img src="/a.jpg"><img src="/b.jpg"></main></body></html>`))
	}))
	defer server.Close()

	adapter := &WebsiteAdapter{}
	raw, err := adapter.Fetch(t.Context(), server.URL)
	require.NoError(t, err)

	site, ok := raw.(RawWebsiteData)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", site.Title)
	assert.Equal(t, "Portfolio site", site.Description)
	assert.Contains(t, site.Text, "Photography portfolio")
	assert.Len(t, site.Images, 2)
	assert.Equal(t, server.URL+"/a.jpg", site.Images[0])
}

func TestWebsiteAdapterFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := &WebsiteAdapter{}
	_, err := adapter.Fetch(t.Context(), server.URL)
	assert.Error(t, err)
}

func TestDocumentAdapterFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Email: jane@example.com\nPhone: (555) 123-4567\n"), 0o600))

	adapter := &DocumentAdapter{}
	raw, err := adapter.Fetch(t.Context(), path)
	require.NoError(t, err)

	doc, ok := raw.(RawDocumentData)
	require.True(t, ok)
	assert.Contains(t, doc.Text, "jane@example.com")
}

func TestDocumentAdapterFetchMissingFile(t *testing.T) {
	adapter := &DocumentAdapter{}
	_, err := adapter.Fetch(t.Context(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestRegistryFetch(t *testing.T) {
	registry := DefaultRegistry(false, false)

	raw, err := registry.Fetch(t.Context(), types.SourceSocial, "jane")
	require.NoError(t, err)
	assert.Equal(t, types.SourceSocial, raw.Kind())
}

func TestRegistryFetchUnsupportedKind(t *testing.T) {
	registry := DefaultRegistry(false, false)

	_, err := registry.Fetch(t.Context(), types.SourceKind("instagram"), "jane")
	require.Error(t, err)

	var unsupportedErr *types.UnsupportedSourceKindError
	assert.ErrorAs(t, err, &unsupportedErr)
}

func TestRegistryFetchWrapsFetchError(t *testing.T) {
	registry := DefaultRegistry(false, false)

	_, err := registry.Fetch(t.Context(), types.SourceDocument, "/does/not/exist.txt")
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, types.SourceDocument, fetchErr.Kind)
}
