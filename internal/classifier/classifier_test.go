package classifier

import (
	"reflect"
	"testing"

	"github.com/mkuzmin/toolpick/internal/catalog"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect []string
	}{
		{
			name:   "single category keyword",
			text:   "help me debug a gnarly issue",
			expect: []string{catalog.CategoryCoding},
		},
		{
			name:   "case insensitive",
			text:   "I need to TRANSCRIBE a meeting",
			expect: []string{catalog.CategoryAudio},
		},
		{
			name:   "empty text falls back to foundation",
			text:   "",
			expect: []string{catalog.CategoryFoundation},
		},
		{
			name:   "no known keywords falls back to foundation",
			text:   "plant tomatoes in the garden",
			expect: []string{catalog.CategoryFoundation},
		},
		{
			name: "more hits rank first",
			// one writing keyword, two coding keywords
			text:   "write code and debug it",
			expect: []string{catalog.CategoryCoding, catalog.CategoryWriting},
		},
		{
			name: "tie keeps declaration order",
			// one coding keyword and one video keyword; coding is declared
			// earlier in the table
			text:   "a video about my code",
			expect: []string{catalog.CategoryCoding, catalog.CategoryVideo},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tc.text)
			if !reflect.DeepEqual(got, tc.expect) {
				t.Fatalf("Classify(%q) = %v, expected %v", tc.text, got, tc.expect)
			}
		})
	}
}

func TestClassifyCountsKeywordPresenceOnce(t *testing.T) {
	// "video" twice must not outrank two distinct coding keywords.
	got := Classify("video video code debug")
	expect := []string{catalog.CategoryCoding, catalog.CategoryVideo}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}
