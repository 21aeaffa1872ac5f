// Package aggregate folds normalized source deltas into the canonical
// profile. Folds are strictly sequential: the caller applies deltas in
// request order, and merge outcomes depend only on that order.
package aggregate

import (
	"github.com/google/uuid"

	"github.com/jonathan/talent-profiles/internal/types"
)

// Fold merges one delta into the profile in place.
//
// Merge rules:
//   - scalar identity fields are first-non-empty-wins; once set they are
//     never overwritten, regardless of later source kind
//   - social links are last-write-wins per key
//   - skills append verbatim; duplicates survive until enrichment dedups
//   - portfolio candidates append in delta order and are never reordered
func Fold(profile *types.Profile, delta *types.ProfileDelta) {
	if delta == nil {
		return
	}

	setIfEmpty(&profile.Name, delta.Name)
	setIfEmpty(&profile.Bio, delta.Bio)
	setIfEmpty(&profile.Email, delta.Email)
	setIfEmpty(&profile.Phone, delta.Phone)
	setIfEmpty(&profile.Location, delta.Location)
	setIfEmpty(&profile.Profession, delta.Profession)

	if len(delta.SocialLinks) > 0 {
		if profile.SocialLinks == nil {
			profile.SocialLinks = make(map[string]string, len(delta.SocialLinks))
		}
		for platform, link := range delta.SocialLinks {
			profile.SocialLinks[platform] = link
		}
	}

	profile.Skills = append(profile.Skills, delta.Skills...)

	for _, candidate := range delta.Portfolio {
		profile.PortfolioItems = append(profile.PortfolioItems, types.PortfolioItem{
			ID:          uuid.New(),
			Title:       candidate.Title,
			Description: candidate.Description,
			MediaKind:   candidate.MediaKind,
			MediaURL:    candidate.MediaURL,
			Tags:        candidate.Tags,
			SourceKind:  candidate.SourceKind,
		})
	}
}

func setIfEmpty(field *string, value string) {
	if *field == "" && value != "" {
		*field = value
	}
}
