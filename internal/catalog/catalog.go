package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Category tags. Every tool in the catalog carries exactly one of these.
const (
	CategoryCoding     = "coding"
	CategoryWriting    = "writing"
	CategoryImage      = "image"
	CategoryAudio      = "audio"
	CategoryResearch   = "research"
	CategoryData       = "data"
	CategoryVideo      = "video"
	CategoryFoundation = "foundation"
)

// Technical levels, ordered beginner < intermediate < advanced.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

var knownCategories = map[string]struct{}{
	CategoryCoding:     {},
	CategoryWriting:    {},
	CategoryImage:      {},
	CategoryAudio:      {},
	CategoryResearch:   {},
	CategoryData:       {},
	CategoryVideo:      {},
	CategoryFoundation: {},
}

// Scores holds the per-dimension ratings of a tool. The catalog contract
// requires at least the "overall", "ease_of_use", "quality" and "value" keys.
type Scores map[string]float64

func (s Scores) Overall() float64   { return s["overall"] }
func (s Scores) EaseOfUse() float64 { return s["ease_of_use"] }
func (s Scores) Quality() float64   { return s["quality"] }
func (s Scores) Value() float64     { return s["value"] }

type PaidPlan struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
	Unit  string  `yaml:"unit"`
}

type Pricing struct {
	FreeTier        bool       `yaml:"free_tier"`
	FreeDescription string     `yaml:"free_description"`
	PaidPlans       []PaidPlan `yaml:"paid_plans"`
}

type Tool struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Category       string   `yaml:"category"`
	TechnicalLevel string   `yaml:"technical_level"`
	Scores         Scores   `yaml:"scores"`
	Pricing        Pricing  `yaml:"pricing"`
	Pros           []string `yaml:"pros"`
	Cons           []string `yaml:"cons"`
	UseCases       []string `yaml:"use_cases"`
}

// MinPaidPrice returns the cheapest paid plan, or 0 when the tool has none.
func (t *Tool) MinPaidPrice() float64 {
	if len(t.Pricing.PaidPlans) == 0 {
		return 0
	}
	min := t.Pricing.PaidPlans[0].Price
	for _, plan := range t.Pricing.PaidPlans[1:] {
		if plan.Price < min {
			min = plan.Price
		}
	}
	return min
}

func (t *Tool) HasFreeTier() bool {
	return t.Pricing.FreeTier
}

// Catalog is the read-only tool store. It is populated once by Load and
// never mutated afterwards, so it is safe for concurrent reads.
type Catalog struct {
	Tools []*Tool
}

// LoadError is returned when the catalog source is missing, unparsable, or a
// record violates the required-field contract. No partial catalog is ever
// returned alongside it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading catalog %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads and validates the whole catalog from a YAML file. Either every
// record loads or the call fails with a *LoadError.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var doc struct {
		Tools []map[string]any `yaml:"tools"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if len(doc.Tools) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("catalog contains no tools")}
	}

	tools := make([]*Tool, 0, len(doc.Tools))
	seen := make(map[string]struct{}, len(doc.Tools))

	for i, raw := range doc.Tools {
		tool, err := decodeRecord(raw)
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("tool %d: %w", i, err)}
		}

		if _, ok := seen[tool.ID]; ok {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("duplicate tool id %q", tool.ID)}
		}
		seen[tool.ID] = struct{}{}

		tools = append(tools, tool)
	}

	return &Catalog{Tools: tools}, nil
}

// decodeRecord validates the raw record against the required-field contract
// and decodes it into a typed Tool.
func decodeRecord(raw map[string]any) (*Tool, error) {
	for _, field := range []string{"id", "name", "category"} {
		value, ok := raw[field].(string)
		if !ok || value == "" {
			return nil, fmt.Errorf("missing required field %q", field)
		}
	}

	scores, ok := raw["scores"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("missing required field %q", "scores")
	}
	if _, ok := scores["overall"]; !ok {
		return nil, fmt.Errorf("missing required field %q", "scores.overall")
	}

	var tool Tool
	cfg := &mapstructure.DecoderConfig{
		Result:  &tool,
		TagName: "yaml",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}

	if _, ok := knownCategories[tool.Category]; !ok {
		return nil, fmt.Errorf("unknown category %q", tool.Category)
	}

	return &tool, nil
}

func (c *Catalog) Len() int {
	return len(c.Tools)
}

// FindByID returns the tool with the given id, or nil when no tool matches.
// A miss is a valid empty result, not an error.
func (c *Catalog) FindByID(id string) *Tool {
	for _, tool := range c.Tools {
		if tool.ID == id {
			return tool
		}
	}
	return nil
}

// Categories returns the distinct categories present in the catalog, sorted.
func (c *Catalog) Categories() []string {
	set := make(map[string]struct{})
	for _, tool := range c.Tools {
		set[tool.Category] = struct{}{}
	}

	categories := make([]string, 0, len(set))
	for category := range set {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return categories
}
