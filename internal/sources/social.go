package sources

import (
	"context"
	"strings"

	"github.com/jonathan/talent-profiles/internal/types"
)

// RawSocialData is the shaped payload of a social-network profile.
type RawSocialData struct {
	DisplayName string
	Bio         string
	Posts       []SocialPost
}

// SocialPost is one post-like item from a social feed.
type SocialPost struct {
	URL       string
	Caption   string
	MediaKind types.MediaKind
	Likes     int
}

// Kind implements RawData.
func (RawSocialData) Kind() types.SourceKind { return types.SourceSocial }

// SocialAdapter fetches social-network profile data.
//
// Real platform APIs require app review and per-user tokens, so this adapter
// returns representative simulated data, the same shape a Basic Display API
// integration would produce.
type SocialAdapter struct{}

// Kind implements Adapter.
func (*SocialAdapter) Kind() types.SourceKind { return types.SourceSocial }

// Fetch returns the social profile for the given identifier. The identifier
// may be a bare username or a profile URL; the username is the last path
// segment.
func (*SocialAdapter) Fetch(_ context.Context, identifier string) (RawData, error) {
	username := Username(identifier)

	return RawSocialData{
		DisplayName: "@" + username,
		Bio:         "Creative photographer capturing life's moments",
		Posts: []SocialPost{
			{
				URL:       "https://example.com/post1.jpg",
				Caption:   "Golden hour magic #photography #goldenhour",
				MediaKind: types.MediaImage,
				Likes:     234,
			},
			{
				URL:       "https://example.com/post2.jpg",
				Caption:   "Behind the scenes of today's shoot",
				MediaKind: types.MediaImage,
				Likes:     156,
			},
		},
	}, nil
}

// Username extracts a username from a social identifier, taking the last
// path segment when the identifier looks like a URL.
func Username(identifier string) string {
	identifier = strings.TrimRight(identifier, "/")
	if idx := strings.LastIndex(identifier, "/"); idx >= 0 {
		identifier = identifier[idx+1:]
	}
	return identifier
}
