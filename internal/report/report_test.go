package report

import (
	"strings"
	"testing"

	"github.com/mkuzmin/toolpick/internal/catalog"
	"github.com/mkuzmin/toolpick/internal/recommender"
)

func sampleCandidate() *recommender.Candidate {
	return &recommender.Candidate{
		Tool: &catalog.Tool{
			ID:             "tool-a",
			Name:           "Tool A",
			Description:    "does things",
			Category:       catalog.CategoryCoding,
			TechnicalLevel: catalog.LevelBeginner,
			Scores: catalog.Scores{
				"overall":     8.0,
				"ease_of_use": 9.0,
				"quality":     7.5,
				"value":       7.0,
			},
			Pricing: catalog.Pricing{
				FreeTier:        true,
				FreeDescription: "limited usage",
				PaidPlans:       []catalog.PaidPlan{{Name: "Pro", Price: 10, Unit: "month"}},
			},
			Pros:     []string{"fast"},
			Cons:     []string{"limited"},
			UseCases: []string{"daily work"},
		},
		Score:        9.2,
		MatchReasons: []string{recommender.ReasonFreeTier},
	}
}

func TestScoreBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		score  float64
		expect string
	}{
		{"zero", 0, "░░░░░░░░░░"},
		{"full", 10, "██████████"},
		{"half", 5, "█████░░░░░"},
		{"rounded up", 8.8, "█████████░"},
		{"clamped above", 12.5, "██████████"},
		{"clamped below", -3, "░░░░░░░░░░"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := scoreBar(tc.score); got != tc.expect {
				t.Fatalf("scoreBar(%v) = %q, expected %q", tc.score, got, tc.expect)
			}
		})
	}
}

func TestComparisonTable(t *testing.T) {
	table := ComparisonTable([]*recommender.Candidate{sampleCandidate()})

	if !strings.Contains(table, "| Tool A | 8.0 | 9.0 | 7.5 | 7.0 | yes | $10 |") {
		t.Fatalf("unexpected table row:\n%s", table)
	}
}

func TestDetails(t *testing.T) {
	details := Details(sampleCandidate())

	for _, expect := range []string{
		"does things",
		"- Free: limited usage",
		"- Pro: $10/month",
		"#### Why it matched",
		"- has free tier",
		"- fast",
		"- limited",
		"- daily work",
	} {
		if !strings.Contains(details, expect) {
			t.Fatalf("expected details to contain %q:\n%s", expect, details)
		}
	}
}

func TestDetailsWithoutPricing(t *testing.T) {
	candidate := sampleCandidate()
	candidate.Tool.Pricing = catalog.Pricing{}

	if !strings.Contains(Details(candidate), "- No pricing information") {
		t.Fatalf("expected pricing fallback line")
	}
}

func TestMarkdown(t *testing.T) {
	params := Params{
		Task:       "review my pull requests",
		Categories: []string{catalog.CategoryCoding},
		Budget:     recommender.BudgetMedium,
		TechLevel:  catalog.LevelBeginner,
		Summary:    "Tool A is the obvious pick.",
	}

	md := Markdown(params, []*recommender.Candidate{sampleCandidate()})

	for _, expect := range []string{
		"# AI Tool Recommendation Report",
		"| Task | review my pull requests |",
		"| Detected scenarios | Coding & Development |",
		"| Budget | Medium budget (up to $50/mo) |",
		"| Technical level | Beginner |",
		"## Summary",
		"Tool A is the obvious pick.",
		"### 1. Tool A",
		"## Comparison",
	} {
		if !strings.Contains(md, expect) {
			t.Fatalf("expected report to contain %q", expect)
		}
	}
}

func TestMarkdownOmitsEmptySummary(t *testing.T) {
	params := Params{
		Task:       "anything",
		Categories: []string{catalog.CategoryCoding},
		Budget:     recommender.BudgetLow,
		TechLevel:  catalog.LevelBeginner,
	}

	if strings.Contains(Markdown(params, []*recommender.Candidate{sampleCandidate()}), "## Summary") {
		t.Fatalf("did not expect a summary section")
	}
}
