// Package skills provides AI-backed skill extraction from free-form text.
package skills

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/jonathan/talent-profiles/internal/llm"
	"github.com/jonathan/talent-profiles/internal/prompts"
)

// Extract pulls professional skill strings out of free-form text using the
// AI capability. It never returns an error: a malformed structured response
// degrades to comma-splitting the raw text, and any capability failure
// degrades to an empty slice, so one source's failure cannot block the
// pipeline.
func Extract(ctx context.Context, client llm.Client, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" || client == nil {
		return nil
	}

	template := prompts.MustGet("enrichment.json", "extract-skills")
	prompt := prompts.Format(template, map[string]string{"Text": text})

	response, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("[skills] extraction failed: %v", err)
		return nil
	}

	var extracted []string
	if err := json.Unmarshal([]byte(response), &extracted); err == nil {
		return extracted
	}

	// Malformed structured output: fall back to comma-splitting the raw text.
	return splitCommaList(response)
}

// splitCommaList splits raw response text on commas, trimming whitespace and
// discarding empty fragments.
func splitCommaList(text string) []string {
	var skills []string
	for _, fragment := range strings.Split(text, ",") {
		if s := strings.TrimSpace(fragment); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// Dedup returns skills with exact-match duplicates removed, preserving first
// occurrence order. Dedup is case-sensitive: "Photography" and "photography"
// stay distinct.
func Dedup(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	deduped := make([]string, 0, len(skills))
	for _, skill := range skills {
		if !seen[skill] {
			seen[skill] = true
			deduped = append(deduped, skill)
		}
	}
	return deduped
}
