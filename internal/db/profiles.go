package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-profiles/internal/types"
)

// maxSummarySkills caps how many skills a listing row carries.
const maxSummarySkills = 5

// UpsertProfile replaces the stored profile for profile.UserID wholesale:
// the profiles row is upserted and all portfolio items are rewritten in
// order, inside one transaction. The run timestamps travel with the row;
// created_at survives re-imports, and the stored values are written back
// to profile so the caller returns exactly what a later read will see.
func (db *DB) UpsertProfile(ctx context.Context, profile *types.Profile) error {
	skillsJSON, err := json.Marshal(profile.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	linksJSON, err := json.Marshal(profile.SocialLinks)
	if err != nil {
		return fmt.Errorf("failed to marshal social links: %w", err)
	}

	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO profiles (user_id, name, bio, email, phone, location, profession, skills, social_links, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (user_id) DO UPDATE SET
		     name = $2, bio = $3, email = $4, phone = $5, location = $6,
		     profession = $7, skills = $8, social_links = $9, updated_at = $11
		 RETURNING created_at, updated_at`,
		profile.UserID, profile.Name, profile.Bio, profile.Email, profile.Phone,
		profile.Location, profile.Profession, skillsJSON, linksJSON,
		profile.CreatedAt, profile.UpdatedAt,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", profile.UserID, err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM portfolio_items WHERE user_id = $1`, profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to clear portfolio items: %w", err)
	}

	for position, item := range profile.PortfolioItems {
		tagsJSON, err := json.Marshal(item.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		var analysisJSON []byte
		if item.AIAnalysis != nil {
			analysisJSON, err = json.Marshal(item.AIAnalysis)
			if err != nil {
				return fmt.Errorf("failed to marshal image analysis: %w", err)
			}
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO portfolio_items (id, user_id, position, title, description, media_kind, media_url, tags, source_kind, ai_analysis)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			item.ID, profile.UserID, position, item.Title, item.Description,
			string(item.MediaKind), item.MediaURL, tagsJSON, string(item.SourceKind), analysisJSON,
		)
		if err != nil {
			return fmt.Errorf("failed to insert portfolio item %d: %w", position, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile %s: %w", profile.UserID, err)
	}
	return nil
}

// GetProfile retrieves a stored profile with its portfolio items in
// position order. A missing profile returns (nil, nil).
func (db *DB) GetProfile(ctx context.Context, userID string) (*types.Profile, error) {
	var (
		profile    types.Profile
		skillsJSON []byte
		linksJSON  []byte
	)

	err := db.pool.QueryRow(ctx,
		`SELECT user_id, name, bio, email, phone, location, profession, skills, social_links, created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&profile.UserID, &profile.Name, &profile.Bio, &profile.Email, &profile.Phone,
		&profile.Location, &profile.Profession, &skillsJSON, &linksJSON,
		&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", userID, err)
	}

	if err := json.Unmarshal(skillsJSON, &profile.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if err := json.Unmarshal(linksJSON, &profile.SocialLinks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal social links: %w", err)
	}

	items, err := db.getPortfolioItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.PortfolioItems = items

	return &profile, nil
}

func (db *DB) getPortfolioItems(ctx context.Context, userID string) ([]types.PortfolioItem, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, media_kind, media_url, tags, source_kind, ai_analysis
		 FROM portfolio_items WHERE user_id = $1 ORDER BY position ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio items: %w", err)
	}
	defer rows.Close()

	items := []types.PortfolioItem{}
	for rows.Next() {
		var (
			item         types.PortfolioItem
			mediaKind    string
			sourceKind   string
			tagsJSON     []byte
			analysisJSON []byte
		)
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &mediaKind,
			&item.MediaURL, &tagsJSON, &sourceKind, &analysisJSON); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio item: %w", err)
		}
		item.MediaKind = types.MediaKind(mediaKind)
		item.SourceKind = types.SourceKind(sourceKind)
		if err := json.Unmarshal(tagsJSON, &item.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		if len(analysisJSON) > 0 {
			var analysis types.ImageAnalysis
			if err := json.Unmarshal(analysisJSON, &analysis); err != nil {
				return nil, fmt.Errorf("failed to unmarshal image analysis: %w", err)
			}
			item.AIAnalysis = &analysis
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListProfiles retrieves lightweight profile summaries, newest first. Each
// summary carries at most five skills.
func (db *DB) ListProfiles(ctx context.Context, limit int) ([]types.ProfileSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT user_id, name, profession, skills, created_at
		 FROM profiles ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	summaries := []types.ProfileSummary{}
	for rows.Next() {
		var (
			summary    types.ProfileSummary
			skillsJSON []byte
		)
		if err := rows.Scan(&summary.UserID, &summary.Name, &summary.Profession, &skillsJSON, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile summary: %w", err)
		}
		if err := json.Unmarshal(skillsJSON, &summary.Skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
		}
		summary.Skills = TruncateSkills(summary.Skills, maxSummarySkills)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// TruncateSkills returns at most max skills, never nil.
func TruncateSkills(skills []string, max int) []string {
	if skills == nil {
		return []string{}
	}
	if len(skills) > max {
		return skills[:max]
	}
	return skills
}
