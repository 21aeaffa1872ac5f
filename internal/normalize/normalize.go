// Package normalize maps each source kind's raw payload into a partial
// ProfileDelta under the per-kind rules of the aggregation design.
package normalize

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/talent-profiles/internal/enrich"
	"github.com/jonathan/talent-profiles/internal/llm"
	"github.com/jonathan/talent-profiles/internal/skills"
	"github.com/jonathan/talent-profiles/internal/sources"
	"github.com/jonathan/talent-profiles/internal/types"
)

// maxWebsiteImages caps how many image candidates one website contributes.
const maxWebsiteImages = 10

// maxWebsiteTextChars caps how much page text is handed to skill extraction.
const maxWebsiteTextChars = 1000

var (
	hashtagRe = regexp.MustCompile(`#(\w+)`)
	emailRe   = regexp.MustCompile(`Email:\s*(\S+)`)
	phoneRe   = regexp.MustCompile(`Phone:\s*([^\n]+)`)
)

// Normalizer converts raw source payloads into profile deltas. Skill
// extraction and career bio synthesis call the AI capability; both degrade
// gracefully so normalization itself never fails for AI reasons.
type Normalizer struct {
	client llm.Client
}

// New creates a Normalizer backed by the given AI client.
func New(client llm.Client) *Normalizer {
	return &Normalizer{client: client}
}

// Normalize maps raw source data for the given kind and identifier into a
// ProfileDelta. It is total over the four known source kinds and returns
// UnsupportedSourceKindError for any other tag. A nil raw payload (failed
// fetch) normalizes to an empty delta.
func (n *Normalizer) Normalize(ctx context.Context, kind types.SourceKind, identifier string, raw sources.RawData) (*types.ProfileDelta, error) {
	if raw == nil {
		return &types.ProfileDelta{SourceKind: kind}, nil
	}

	switch kind {
	case types.SourceSocial:
		data, ok := raw.(sources.RawSocialData)
		if !ok {
			return nil, fmt.Errorf("social payload has unexpected type %T", raw)
		}
		return n.normalizeSocial(ctx, identifier, data), nil

	case types.SourceCareer:
		data, ok := raw.(sources.RawCareerData)
		if !ok {
			return nil, fmt.Errorf("career payload has unexpected type %T", raw)
		}
		return n.normalizeCareer(ctx, data), nil

	case types.SourceWebsite:
		data, ok := raw.(sources.RawWebsiteData)
		if !ok {
			return nil, fmt.Errorf("website payload has unexpected type %T", raw)
		}
		return n.normalizeWebsite(ctx, identifier, data), nil

	case types.SourceDocument:
		data, ok := raw.(sources.RawDocumentData)
		if !ok {
			return nil, fmt.Errorf("document payload has unexpected type %T", raw)
		}
		return n.normalizeDocument(ctx, data), nil

	default:
		return nil, &types.UnsupportedSourceKindError{Kind: kind}
	}
}

// normalizeSocial maps a social profile: display name with the platform
// prefix stripped, the identifier as the social link, one portfolio
// candidate per post with its hashtags as tags, and skills extracted from
// bio plus captions.
func (n *Normalizer) normalizeSocial(ctx context.Context, identifier string, data sources.RawSocialData) *types.ProfileDelta {
	delta := &types.ProfileDelta{
		SourceKind:  types.SourceSocial,
		Name:        strings.TrimLeft(data.DisplayName, "@"),
		SocialLinks: map[string]string{"social": identifier},
	}

	var captions []string
	for _, post := range data.Posts {
		captions = append(captions, post.Caption)

		mediaKind := post.MediaKind
		if mediaKind == "" {
			mediaKind = types.MediaImage
		}
		delta.Portfolio = append(delta.Portfolio, types.PortfolioCandidate{
			Title:       fmt.Sprintf("Social Post - %d likes", post.Likes),
			Description: post.Caption,
			MediaKind:   mediaKind,
			MediaURL:    post.URL,
			Tags:        ExtractHashtags(post.Caption),
			SourceKind:  types.SourceSocial,
		})
	}

	combined := strings.TrimSpace(data.Bio + " " + strings.Join(captions, " "))
	delta.Skills = skills.Extract(ctx, n.client, combined)

	return delta
}

// normalizeCareer maps a career profile: scalar identity fields and verbatim
// skills, plus a bio synthesized from the experience history. Bio synthesis
// is best-effort; the enrichment pass backfills if it fails here.
func (n *Normalizer) normalizeCareer(ctx context.Context, data sources.RawCareerData) *types.ProfileDelta {
	delta := &types.ProfileDelta{
		SourceKind: types.SourceCareer,
		Name:       data.Name,
		Profession: data.Headline,
		Location:   data.Location,
		Skills:     data.Skills,
	}

	var entries []string
	for _, exp := range data.Experience {
		entries = append(entries, fmt.Sprintf("%s at %s: %s", exp.Title, exp.Company, exp.Description))
	}
	experienceText := strings.Join(entries, " ")

	if experienceText != "" {
		bio, err := enrich.GenerateBio(ctx, n.client, enrich.BioSeed{
			Name:             data.Name,
			Profession:       data.Headline,
			Skills:           data.Skills,
			PortfolioSummary: experienceText,
		})
		if err == nil {
			delta.Bio = bio
		}
	}

	return delta
}

// normalizeWebsite maps portfolio-site content: the identifier as the
// website link, up to ten image candidates, and skills extracted from the
// leading page text.
func (n *Normalizer) normalizeWebsite(ctx context.Context, identifier string, data sources.RawWebsiteData) *types.ProfileDelta {
	delta := &types.ProfileDelta{
		SourceKind:  types.SourceWebsite,
		SocialLinks: map[string]string{"website": identifier},
	}

	images := data.Images
	if len(images) > maxWebsiteImages {
		images = images[:maxWebsiteImages]
	}
	for _, imgURL := range images {
		delta.Portfolio = append(delta.Portfolio, types.PortfolioCandidate{
			Title:       "Website Image",
			Description: data.Description,
			MediaKind:   types.MediaImage,
			MediaURL:    imgURL,
			Tags:        nil,
			SourceKind:  types.SourceWebsite,
		})
	}

	text := data.Text
	if len(text) > maxWebsiteTextChars {
		text = text[:maxWebsiteTextChars]
	}
	delta.Skills = skills.Extract(ctx, n.client, text)

	return delta
}

// normalizeDocument maps résumé text: labeled-field email and phone
// extraction (best effort) and skills from the full document text.
func (n *Normalizer) normalizeDocument(ctx context.Context, data sources.RawDocumentData) *types.ProfileDelta {
	delta := &types.ProfileDelta{
		SourceKind: types.SourceDocument,
		Email:      ExtractLabeledEmail(data.Text),
		Phone:      ExtractLabeledPhone(data.Text),
	}

	delta.Skills = skills.Extract(ctx, n.client, data.Text)

	return delta
}

// ExtractHashtags returns all #hashtag tokens in text, without the leading #.
func ExtractHashtags(text string) []string {
	var tags []string
	for _, match := range hashtagRe.FindAllStringSubmatch(text, -1) {
		tags = append(tags, match[1])
	}
	return tags
}

// ExtractLabeledEmail returns the token following an "Email:" label, or
// empty when the label is absent.
func ExtractLabeledEmail(text string) string {
	if match := emailRe.FindStringSubmatch(text); match != nil {
		return match[1]
	}
	return ""
}

// ExtractLabeledPhone returns the remainder of the line following a
// "Phone:" label, trimmed, or empty when the label is absent.
func ExtractLabeledPhone(text string) string {
	if match := phoneRe.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1])
	}
	return ""
}
