package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validCatalog = `
tools:
  - id: tool-a
    name: Tool A
    description: first tool
    category: coding
    technical_level: beginner
    scores:
      overall: 8.0
      ease_of_use: 8.5
      quality: 7.9
      value: 7.0
    pricing:
      free_tier: true
      free_description: limited usage
      paid_plans:
        - name: Pro
          price: 10
          unit: month
    pros:
      - fast
    cons:
      - limited
    use_cases:
      - daily coding
  - id: tool-b
    name: Tool B
    category: writing
    scores:
      overall: 7.5
      value: 9.0
    pricing:
      free_tier: false
      paid_plans: []
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tools.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeCatalog(t, validCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Len() != 2 {
		t.Fatalf("expected 2 tools, got %d", c.Len())
	}

	tool := c.Tools[0]
	if tool.ID != "tool-a" || tool.Name != "Tool A" || tool.Category != "coding" {
		t.Fatalf("unexpected first tool: %+v", tool)
	}
	if tool.Scores.Overall() != 8.0 {
		t.Fatalf("expected overall 8.0, got %v", tool.Scores.Overall())
	}
	if tool.Scores.Value() != 7.0 {
		t.Fatalf("expected value 7.0, got %v", tool.Scores.Value())
	}
	if !tool.HasFreeTier() {
		t.Fatalf("expected tool-a to have a free tier")
	}
	if tool.MinPaidPrice() != 10 {
		t.Fatalf("expected min paid price 10, got %v", tool.MinPaidPrice())
	}
	if len(tool.Pros) != 1 || len(tool.Cons) != 1 || len(tool.UseCases) != 1 {
		t.Fatalf("expected display lists to be decoded: %+v", tool)
	}
}

func TestLoadToleratesMissingPaidPlans(t *testing.T) {
	c, err := Load(writeCatalog(t, validCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// tool-b is paid-only on paper but has no plans; the contract demands a
	// fallback price of 0 instead of a load failure.
	tool := c.FindByID("tool-b")
	if tool == nil {
		t.Fatalf("expected tool-b to be present")
	}
	if tool.HasFreeTier() {
		t.Fatalf("expected tool-b to have no free tier")
	}
	if tool.MinPaidPrice() != 0 {
		t.Fatalf("expected fallback price 0, got %v", tool.MinPaidPrice())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
}

func TestLoadInvalidCatalogs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unparsable yaml",
			content: "tools: [",
		},
		{
			name:    "empty catalog",
			content: "tools: []",
		},
		{
			name: "missing id",
			content: `
tools:
  - name: No ID
    category: coding
    scores:
      overall: 5.0
`,
		},
		{
			name: "missing name",
			content: `
tools:
  - id: no-name
    category: coding
    scores:
      overall: 5.0
`,
		},
		{
			name: "missing overall score",
			content: `
tools:
  - id: no-overall
    name: No Overall
    category: coding
    scores:
      value: 5.0
`,
		},
		{
			name: "unknown category",
			content: `
tools:
  - id: bad-category
    name: Bad Category
    category: gardening
    scores:
      overall: 5.0
`,
		},
		{
			name: "duplicate id",
			content: `
tools:
  - id: twin
    name: First
    category: coding
    scores:
      overall: 5.0
  - id: twin
    name: Second
    category: coding
    scores:
      overall: 6.0
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeCatalog(t, tc.content))
			if err == nil {
				t.Fatalf("expected load to fail")
			}

			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *LoadError, got %T", err)
			}
		})
	}
}

func TestFindByID(t *testing.T) {
	c, err := Load(writeCatalog(t, validCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tool := c.FindByID("tool-a"); tool == nil || tool.Name != "Tool A" {
		t.Fatalf("expected to find tool-a, got %+v", tool)
	}

	if tool := c.FindByID("missing"); tool != nil {
		t.Fatalf("expected nil for unknown id, got %+v", tool)
	}
}

func TestCategories(t *testing.T) {
	c, err := Load(writeCatalog(t, validCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	categories := c.Categories()
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %v", categories)
	}
	if categories[0] != "coding" || categories[1] != "writing" {
		t.Fatalf("expected sorted categories, got %v", categories)
	}
}
