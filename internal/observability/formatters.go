// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-profiles/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDelta outputs a human-readable summary of one normalized source delta.
func (p *Printer) PrintDelta(delta *types.ProfileDelta) {
	if delta == nil {
		return
	}

	var sb strings.Builder
	if delta.Empty() {
		sb.WriteString("(no contribution)\n")
	}
	if delta.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:       %s\n", delta.Name))
	}
	if delta.Profession != "" {
		sb.WriteString(fmt.Sprintf("Profession: %s\n", delta.Profession))
	}
	if delta.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:   %s\n", delta.Location))
	}
	if delta.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:      %s\n", delta.Email))
	}
	if delta.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:      %s\n", delta.Phone))
	}
	if delta.Bio != "" {
		sb.WriteString(fmt.Sprintf("Bio:        %s\n", delta.Bio))
	}
	if len(delta.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:     %s\n", joinCapped(delta.Skills, maxItemsToShow)))
	}
	for platform, link := range delta.SocialLinks {
		sb.WriteString(fmt.Sprintf("Link:       %s → %s\n", platform, link))
	}
	if len(delta.Portfolio) > 0 {
		sb.WriteString(fmt.Sprintf("Portfolio:  %d candidate(s)\n", len(delta.Portfolio)))
	}

	p.printBox(fmt.Sprintf("DELTA [%s]", strings.ToUpper(string(delta.SourceKind))),
		strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs a human-readable summary of the aggregated profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("User:       %s\n", profile.UserID))
	if profile.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:       %s\n", profile.Name))
	}
	if profile.Profession != "" {
		sb.WriteString(fmt.Sprintf("Profession: %s\n", profile.Profession))
	}
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:   %s\n", profile.Location))
	}
	if profile.Bio != "" {
		sb.WriteString(fmt.Sprintf("Bio:        %s\n", profile.Bio))
	}
	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:     %s\n", joinCapped(profile.Skills, maxItemsToShow)))
	}

	if len(profile.PortfolioItems) > 0 {
		sb.WriteString(fmt.Sprintf("\nPortfolio (%d items):\n", len(profile.PortfolioItems)))
		count := min(len(profile.PortfolioItems), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := profile.PortfolioItems[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s", item.MediaKind, item.Title))
			if item.AIAnalysis != nil {
				sb.WriteString(fmt.Sprintf(" (%s)", item.AIAnalysis.Category))
			}
			sb.WriteString("\n")
		}
		if len(profile.PortfolioItems) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.PortfolioItems)-maxItemsToShow))
		}
	}

	p.printBox("AGGREGATED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

func joinCapped(items []string, max int) string {
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s ... and %d more", strings.Join(items[:max], ", "), len(items)-max)
}
