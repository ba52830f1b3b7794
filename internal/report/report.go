// Package report renders recommendation results for display and export. It
// only builds strings; writing them anywhere is the caller's business.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mkuzmin/toolpick/internal/catalog"
	"github.com/mkuzmin/toolpick/internal/recommender"
)

// Display names for the fixed category/budget/level vocabularies. Unknown
// keys fall through to the raw value.
var CategoryNames = map[string]string{
	catalog.CategoryCoding:     "Coding & Development",
	catalog.CategoryWriting:    "Writing Assistance",
	catalog.CategoryImage:      "Image Generation",
	catalog.CategoryAudio:      "Audio & Speech",
	catalog.CategoryResearch:   "Search & Research",
	catalog.CategoryData:       "Data Analysis",
	catalog.CategoryVideo:      "Video Generation",
	catalog.CategoryFoundation: "Foundation Models",
}

var BudgetNames = map[string]string{
	recommender.BudgetFree:   "Free tools only",
	recommender.BudgetLow:    "Low budget (up to $20/mo)",
	recommender.BudgetMedium: "Medium budget (up to $50/mo)",
	recommender.BudgetHigh:   "No budget limit",
}

var TechNames = map[string]string{
	catalog.LevelBeginner:     "Beginner",
	catalog.LevelIntermediate: "Intermediate",
	catalog.LevelAdvanced:     "Advanced user / developer",
}

// Params carries the request context rendered into the report header.
type Params struct {
	Task       string
	Categories []string
	Budget     string
	TechLevel  string
	// Summary is an optional AI-written introduction placed below the header.
	Summary string
}

func displayName(names map[string]string, key string) string {
	if name, ok := names[key]; ok {
		return name
	}
	return key
}

func categoryList(categories []string) string {
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, displayName(CategoryNames, category))
	}
	return strings.Join(names, ", ")
}

// scoreBar renders a ten-cell bar for a 0-10 score. Out-of-range scores are
// clamped for display only.
func scoreBar(score float64) string {
	const width = 10
	filled := int(math.Round(score / 10.0 * width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func formatPricing(tool *catalog.Tool) string {
	var lines []string
	if tool.Pricing.FreeTier {
		desc := tool.Pricing.FreeDescription
		if desc == "" {
			desc = "free tier available"
		}
		lines = append(lines, fmt.Sprintf("- Free: %s", desc))
	}
	for _, plan := range tool.Pricing.PaidPlans {
		lines = append(lines, fmt.Sprintf("- %s: $%g/%s", plan.Name, plan.Price, plan.Unit))
	}
	if len(lines) == 0 {
		return "- No pricing information"
	}
	return strings.Join(lines, "\n")
}

// ComparisonTable renders the side-by-side Markdown table of all results.
func ComparisonTable(results []*recommender.Candidate) string {
	var b strings.Builder
	b.WriteString("| Tool | Overall | Ease of use | Quality | Value | Free tier | Min $/mo |\n")
	b.WriteString("|------|---------|-------------|---------|-------|-----------|----------|\n")
	for _, result := range results {
		tool := result.Tool
		free := "no"
		if result.HasFreeTier() {
			free = "yes"
		}
		fmt.Fprintf(&b, "| %s | %.1f | %.1f | %.1f | %.1f | %s | $%g |\n",
			tool.Name,
			tool.Scores.Overall(),
			tool.Scores.EaseOfUse(),
			tool.Scores.Quality(),
			tool.Scores.Value(),
			free,
			result.MinPaidPrice(),
		)
	}
	return b.String()
}

// Details renders the full per-tool section used in the report and in the
// interactive details view.
func Details(result *recommender.Candidate) string {
	tool := result.Tool
	var b strings.Builder

	fmt.Fprintf(&b, "**%s**\n\n", tool.Description)

	b.WriteString("#### Scores\n\n")
	b.WriteString("| Dimension | Score | |\n")
	b.WriteString("|-----------|-------|---|\n")
	fmt.Fprintf(&b, "| Overall | %.1f/10 | %s |\n", tool.Scores.Overall(), scoreBar(tool.Scores.Overall()))
	fmt.Fprintf(&b, "| Ease of use | %.1f/10 | %s |\n", tool.Scores.EaseOfUse(), scoreBar(tool.Scores.EaseOfUse()))
	fmt.Fprintf(&b, "| Quality | %.1f/10 | %s |\n", tool.Scores.Quality(), scoreBar(tool.Scores.Quality()))
	fmt.Fprintf(&b, "| Value | %.1f/10 | %s |\n", tool.Scores.Value(), scoreBar(tool.Scores.Value()))

	b.WriteString("\n#### Pricing\n\n")
	b.WriteString(formatPricing(tool))
	b.WriteString("\n")

	if len(result.MatchReasons) > 0 {
		b.WriteString("\n#### Why it matched\n\n")
		for _, reason := range result.MatchReasons {
			fmt.Fprintf(&b, "- %s\n", reason)
		}
	}

	if len(tool.Pros) > 0 {
		b.WriteString("\n#### Strengths\n\n")
		for _, pro := range tool.Pros {
			fmt.Fprintf(&b, "- %s\n", pro)
		}
	}

	if len(tool.Cons) > 0 {
		b.WriteString("\n#### Limitations\n\n")
		for _, con := range tool.Cons {
			fmt.Fprintf(&b, "- %s\n", con)
		}
	}

	if len(tool.UseCases) > 0 {
		b.WriteString("\n#### Good for\n\n")
		for _, useCase := range tool.UseCases {
			fmt.Fprintf(&b, "- %s\n", useCase)
		}
	}

	return b.String()
}

// Markdown renders the full exportable report.
func Markdown(p Params, results []*recommender.Candidate) string {
	var b strings.Builder

	b.WriteString("# AI Tool Recommendation Report\n\n")
	fmt.Fprintf(&b, "> Generated: %s\n\n", time.Now().Format("2006-01-02 15:04"))

	b.WriteString("## Request\n\n")
	b.WriteString("| | |\n")
	b.WriteString("|---|---|\n")
	fmt.Fprintf(&b, "| Task | %s |\n", p.Task)
	fmt.Fprintf(&b, "| Detected scenarios | %s |\n", categoryList(p.Categories))
	fmt.Fprintf(&b, "| Budget | %s |\n", displayName(BudgetNames, p.Budget))
	fmt.Fprintf(&b, "| Technical level | %s |\n", displayName(TechNames, p.TechLevel))
	b.WriteString("\n")

	if p.Summary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(p.Summary)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "## Top %d Tools\n\n", len(results))
	for i, result := range results {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, result.Tool.Name)
		b.WriteString(Details(result))
		b.WriteString("\n")
	}

	b.WriteString("## Comparison\n\n")
	b.WriteString(ComparisonTable(results))

	return b.String()
}
