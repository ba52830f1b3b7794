package ai

import (
	"context"

	"github.com/mkuzmin/toolpick/internal/recommender"
)

// Summarizer produces a short prose summary of a recommendation result for
// inclusion in reports. Implementations live in provider subpackages.
type Summarizer interface {
	Summarize(ctx context.Context, task string, results []*recommender.Candidate) (string, error)
}
