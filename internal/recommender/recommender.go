// Package recommender ranks catalog tools for a classified task. Candidates
// are filtered by category membership and budget, their scores adjusted for
// budget and technical-level fit, and the top N returned best first.
package recommender

import (
	"sort"

	"github.com/mkuzmin/toolpick/internal/catalog"

	"go.uber.org/zap"
)

// Budget preferences and their monthly price ceilings in USD.
const (
	BudgetFree   = "free"
	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"
)

var budgetCeilings = map[string]float64{
	BudgetFree:   0,
	BudgetLow:    20,
	BudgetMedium: 50,
	BudgetHigh:   999,
}

var techOrdinals = map[string]int{
	catalog.LevelBeginner:     1,
	catalog.LevelIntermediate: 2,
	catalog.LevelAdvanced:     3,
}

// Unrecognized caller input degrades to these instead of failing.
const (
	defaultBudgetCeiling = 50
	defaultTechOrdinal   = 1
	DefaultTopN          = 3
)

// Scoring adjustments. Final scores are not clamped to the 0-10 scale.
const (
	overBudgetFactor = 0.7
	freeTierBonus    = 0.3
	techMatchBonus   = 0.2
	techGapPenalty   = 0.5
	valueWeight      = 0.1
)

const (
	ReasonFreeTier  = "has free tier"
	ReasonTechMatch = "matches your technical level"
)

// Request describes a single recommendation call.
type Request struct {
	// Categories to consider, non-empty, most relevant first. Filtering
	// treats membership only; order does not weight the score.
	Categories []string
	Budget     string
	TechLevel  string
	TopN       int
}

// Candidate is a scored reference to a catalog tool, produced fresh for every
// Recommend call. The score is final once Recommend returns.
type Candidate struct {
	Tool         *catalog.Tool
	Score        float64
	MatchReasons []string
}

// MinPaidPrice returns the cheapest paid plan of the underlying tool, 0 when
// it has none.
func (c *Candidate) MinPaidPrice() float64 {
	return c.Tool.MinPaidPrice()
}

func (c *Candidate) HasFreeTier() bool {
	return c.Tool.HasFreeTier()
}

// Recommender scores tools from an immutable catalog. It holds no mutable
// state, so a single instance may serve concurrent calls.
type Recommender struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func New(c *catalog.Catalog, logger *zap.Logger) *Recommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommender{catalog: c, logger: logger}
}

// Recommend returns up to TopN candidates, best first. Fewer or zero
// surviving candidates is a normal outcome, not an error.
func (r *Recommender) Recommend(req *Request) []*Candidate {
	ceiling, ok := budgetCeilings[req.Budget]
	if !ok {
		ceiling = defaultBudgetCeiling
	}
	userTech, ok := techOrdinals[req.TechLevel]
	if !ok {
		userTech = defaultTechOrdinal
	}
	topN := req.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	wanted := make(map[string]struct{}, len(req.Categories))
	for _, category := range req.Categories {
		wanted[category] = struct{}{}
	}

	candidates := make([]*Candidate, 0, r.catalog.Len())
	for _, tool := range r.catalog.Tools {
		if _, ok := wanted[tool.Category]; !ok {
			continue
		}

		candidate := score(tool, req.Budget, ceiling, userTech)
		if candidate == nil {
			continue
		}

		candidates = append(candidates, candidate)
	}

	// Stable sort: equal scores keep catalog declaration order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	left := len(candidates)
	if left > topN {
		candidates = candidates[:topN]
	}

	r.logger.Debug("recommendation pass",
		zap.Strings("categories", req.Categories),
		zap.Float64("budget_ceiling", ceiling),
		zap.Int("user_tech", userTech),
		zap.Int("survived", left),
		zap.Int("returned", len(candidates)),
	)

	return candidates
}

// score applies the adjustment rules to a single tool. It returns nil when
// the tool is excluded outright by the free-budget gate.
func score(tool *catalog.Tool, budget string, ceiling float64, userTech int) *Candidate {
	candidate := &Candidate{
		Tool:  tool,
		Score: tool.Scores.Overall(),
	}

	minPrice := candidate.MinPaidPrice()
	hasFree := candidate.HasFreeTier()

	// Free budget is a hard filter, not a penalty.
	if budget == BudgetFree && !hasFree {
		return nil
	}

	// A free tier always wins over the over-budget penalty: the two
	// branches are exclusive even when every paid plan exceeds the ceiling.
	if !hasFree && minPrice > ceiling {
		candidate.Score *= overBudgetFactor
	} else if hasFree {
		candidate.Score += freeTierBonus
		candidate.MatchReasons = append(candidate.MatchReasons, ReasonFreeTier)
	}

	toolTech, ok := techOrdinals[tool.TechnicalLevel]
	if !ok {
		toolTech = defaultTechOrdinal
	}
	switch {
	case toolTech <= userTech:
		candidate.Score += techMatchBonus
		candidate.MatchReasons = append(candidate.MatchReasons, ReasonTechMatch)
	case toolTech > userTech+1:
		// More than one level above the user. Exactly one level above
		// gets neither bonus nor penalty.
		candidate.Score -= techGapPenalty
	}

	candidate.Score += tool.Scores.Value() * valueWeight

	return candidate
}
