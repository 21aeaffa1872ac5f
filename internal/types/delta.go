package types

// ProfileDelta is the partial profile contribution derived from one source.
// It is produced once per source by the field normalizer and is not mutated
// after construction. Empty fields mean "no contribution".
type ProfileDelta struct {
	SourceKind SourceKind `json:"source_kind"`

	Name       string `json:"name,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Profession string `json:"profession,omitempty"`
	Location   string `json:"location,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`

	Skills      []string             `json:"skills,omitempty"`
	SocialLinks map[string]string    `json:"social_links,omitempty"`
	Portfolio   []PortfolioCandidate `json:"portfolio,omitempty"`
}

// Empty reports whether the delta carries no contribution at all.
// A failed website fetch, for example, normalizes to an empty delta
// and folds as a no-op.
func (d *ProfileDelta) Empty() bool {
	return d.Name == "" && d.Bio == "" && d.Profession == "" &&
		d.Location == "" && d.Email == "" && d.Phone == "" &&
		len(d.Skills) == 0 && len(d.SocialLinks) == 0 && len(d.Portfolio) == 0
}
