// Package enrich implements the AI enrichment pass that runs over an
// aggregated profile before persistence: skill dedup, bio backfill, and
// best-effort image tagging.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-profiles/internal/fetch"
	"github.com/jonathan/talent-profiles/internal/llm"
	"github.com/jonathan/talent-profiles/internal/prompts"
	"github.com/jonathan/talent-profiles/internal/schemas"
	"github.com/jonathan/talent-profiles/internal/skills"
	"github.com/jonathan/talent-profiles/internal/types"
)

// FallbackBio is used when bio generation fails but the profile has skills
// to stand on. The wording is fixed so callers can detect it in logs.
const FallbackBio = "Creative professional with diverse skills and experience."

// maxConcurrentAnalyses bounds parallel image downloads and vision calls.
const maxConcurrentAnalyses = 4

// maxBioSkills caps how many skills seed the bio prompt.
const maxBioSkills = 10

// BioSeed carries the profile facts handed to bio generation.
type BioSeed struct {
	Name             string
	Profession       string
	Skills           []string
	PortfolioSummary string
}

// GenerateBio produces a short professional bio from the seed facts. It
// returns an error when the AI capability fails or returns empty output;
// callers decide whether to fall back or leave the bio unset.
func GenerateBio(ctx context.Context, client llm.Client, seed BioSeed) (string, error) {
	if client == nil {
		return "", fmt.Errorf("no llm client configured")
	}

	skillList := seed.Skills
	if len(skillList) > maxBioSkills {
		skillList = skillList[:maxBioSkills]
	}

	template := prompts.MustGet("enrichment.json", "generate-bio")
	prompt := prompts.Format(template, map[string]string{
		"Name":             seed.Name,
		"Profession":       seed.Profession,
		"Skills":           strings.Join(skillList, ", "),
		"PortfolioSummary": seed.PortfolioSummary,
	})

	bio, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", err
	}

	bio = strings.TrimSpace(bio)
	if bio == "" {
		return "", fmt.Errorf("bio generation returned empty output")
	}
	return bio, nil
}

// AnalyzeImageData runs the vision model over raw image bytes and returns
// the parsed analysis. The model output must pass schema validation;
// anything malformed is an error, never a partially-trusted result.
func AnalyzeImageData(ctx context.Context, client llm.Client, imageData []byte, format string) (*types.ImageAnalysis, error) {
	if client == nil {
		return nil, fmt.Errorf("no llm client configured")
	}
	if len(imageData) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	prompt := prompts.MustGet("enrichment.json", "analyze-image")
	response, err := client.AnalyzeImage(ctx, prompt, imageData, format)
	if err != nil {
		return nil, fmt.Errorf("image analysis failed: %w", err)
	}

	if err := schemas.ValidateImageAnalysis(response); err != nil {
		return nil, fmt.Errorf("image analysis output rejected: %w", err)
	}

	var analysis types.ImageAnalysis
	if err := json.Unmarshal([]byte(response), &analysis); err != nil {
		return nil, fmt.Errorf("image analysis output unparseable: %w", err)
	}
	return &analysis, nil
}

// Enricher runs the enrichment pass. Every step is best-effort except skill
// dedup, which is pure; a fully failed pass still leaves a valid profile.
type Enricher struct {
	client llm.Client
	fetch  *fetch.Options
}

// New creates an Enricher backed by the given AI client.
func New(client llm.Client) *Enricher {
	return &Enricher{client: client, fetch: fetch.DefaultOptions()}
}

// Enrich mutates profile in place: dedups skills, backfills the bio when
// unset, and tags image portfolio items concurrently. It never returns an
// error; AI failures degrade to the fallback bio or untagged items.
func (e *Enricher) Enrich(ctx context.Context, profile *types.Profile) {
	profile.Skills = skills.Dedup(profile.Skills)

	if profile.Bio == "" && len(profile.Skills) > 0 {
		bio, err := GenerateBio(ctx, e.client, BioSeed{
			Name:             profile.Name,
			Profession:       profile.Profession,
			Skills:           profile.Skills,
			PortfolioSummary: portfolioSummary(profile.PortfolioItems),
		})
		if err != nil {
			log.Printf("[enrich] bio generation failed for %s, using fallback: %v", profile.UserID, err)
			bio = FallbackBio
		}
		profile.Bio = bio
	}

	e.tagImages(ctx, profile)
}

// tagImages downloads and analyzes each untagged image item. Each item is
// independent: a failed download or rejected analysis skips that item only.
func (e *Enricher) tagImages(ctx context.Context, profile *types.Profile) {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentAnalyses)

	var mu sync.Mutex
	for i := range profile.PortfolioItems {
		item := &profile.PortfolioItems[i]
		if !analyzable(item) {
			continue
		}

		group.Go(func() error {
			analysis, err := e.analyzeURL(groupCtx, item.MediaURL)
			if err != nil {
				log.Printf("[enrich] skipping image %s: %v", item.MediaURL, err)
				return nil
			}

			mu.Lock()
			item.AIAnalysis = analysis
			item.Tags = mergeTags(item.Tags, analysis.Tags)
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait only orders completion.
	_ = group.Wait()
}

func (e *Enricher) analyzeURL(ctx context.Context, mediaURL string) (*types.ImageAnalysis, error) {
	data, contentType, err := fetch.Bytes(ctx, mediaURL, e.fetch)
	if err != nil {
		return nil, err
	}
	return AnalyzeImageData(ctx, e.client, data, ImageFormat(contentType))
}

// analyzable reports whether an item is an image that still needs analysis
// and has a fetchable URL.
func analyzable(item *types.PortfolioItem) bool {
	return item.MediaKind == types.MediaImage &&
		item.AIAnalysis == nil &&
		(strings.HasPrefix(item.MediaURL, "http://") || strings.HasPrefix(item.MediaURL, "https://"))
}

// mergeTags appends analysis tags not already present on the item.
func mergeTags(existing, found []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, tag := range existing {
		seen[tag] = true
	}
	for _, tag := range found {
		if !seen[tag] {
			seen[tag] = true
			existing = append(existing, tag)
		}
	}
	return existing
}

// portfolioSummary joins item titles into a short highlight string for the
// bio prompt.
func portfolioSummary(items []types.PortfolioItem) string {
	var titles []string
	for _, item := range items {
		if item.Title != "" {
			titles = append(titles, item.Title)
		}
		if len(titles) == 5 {
			break
		}
	}
	return strings.Join(titles, ", ")
}

// ImageFormat maps an HTTP content type to the short format tag the vision
// API expects, defaulting to jpeg.
func ImageFormat(contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	case "image/heic":
		return "heic"
	default:
		return "jpeg"
	}
}
