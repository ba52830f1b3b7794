// Package classifier maps a free-text task description to an ordered list of
// catalog categories using keyword presence scoring. Matching is literal,
// case-insensitive substring detection only.
package classifier

import (
	"sort"
	"strings"

	"github.com/mkuzmin/toolpick/internal/catalog"
)

// DefaultCategory is returned when no keyword of any category matches.
const DefaultCategory = catalog.CategoryFoundation

type categoryKeywords struct {
	category string
	keywords []string
}

// keywordTable is fixed, process-wide configuration. Keywords must be
// lower-case. The slice order breaks ties between equally scored categories,
// so entries must not be reordered casually.
var keywordTable = []categoryKeywords{
	{catalog.CategoryCoding, []string{
		"code", "coding", "programming", "debug", "refactor", "api",
		"software", "terminal", "developer", "bug",
	}},
	{catalog.CategoryWriting, []string{
		"write", "writing", "article", "blog", "essay", "email",
		"copywriting", "translate", "proofread", "newsletter",
	}},
	{catalog.CategoryImage, []string{
		"image", "picture", "illustration", "drawing", "poster",
		"logo", "photo", "thumbnail", "wallpaper",
	}},
	{catalog.CategoryAudio, []string{
		"audio", "voice", "music", "speech", "transcribe", "subtitle",
		"podcast", "song", "soundtrack", "dubbing",
	}},
	{catalog.CategoryResearch, []string{
		"research", "search", "sources", "citation", "literature",
		"news", "information", "fact-check",
	}},
	{catalog.CategoryData, []string{
		"data", "statistics", "chart", "visualization", "excel",
		"csv", "sql", "spreadsheet", "dashboard",
	}},
	{catalog.CategoryVideo, []string{
		"video", "animation", "footage", "clip", "film", "montage",
		"b-roll",
	}},
	{catalog.CategoryFoundation, []string{
		"chat", "chatbot", "assistant", "question", "reasoning",
		"brainstorm", "general purpose",
	}},
}

// Classify returns the categories whose keywords appear in the text, most
// relevant first. Each keyword counts once no matter how often it occurs.
// Text matching no keyword at all yields [DefaultCategory].
func Classify(text string) []string {
	lowered := strings.ToLower(text)

	type match struct {
		category string
		hits     int
	}

	matches := make([]match, 0, len(keywordTable))
	for _, entry := range keywordTable {
		hits := 0
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				hits++
			}
		}
		if hits > 0 {
			matches = append(matches, match{category: entry.category, hits: hits})
		}
	}

	if len(matches) == 0 {
		return []string{DefaultCategory}
	}

	// Stable sort keeps the keywordTable order for equal hit counts.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].hits > matches[j].hits
	})

	categories := make([]string, len(matches))
	for i, m := range matches {
		categories[i] = m.category
	}

	return categories
}
