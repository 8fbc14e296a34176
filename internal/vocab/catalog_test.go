package vocab

import (
	"strings"
	"testing"

	"github.com/typedrill/typedrill/internal/model"
)

func TestFilterByDifficultyAndCategory(t *testing.T) {
	c := NewCatalog()

	hard := c.Filter(model.DifficultyHard, "")
	if len(hard) == 0 {
		t.Fatalf("expected hard words")
	}
	for _, w := range hard {
		if w.Difficulty != model.DifficultyHard {
			t.Fatalf("non-hard word in filtered set: %+v", w)
		}
	}

	speech := c.Filter(model.DifficultyMixed, "speech")
	if len(speech) == 0 {
		t.Fatalf("expected speech words")
	}
	for _, w := range speech {
		if w.Category != "speech" {
			t.Fatalf("wrong category: %+v", w)
		}
	}

	// Impossible combination falls back to the full catalog.
	fallback := c.Filter(model.DifficultyEasy, "secrecy")
	if len(fallback) != len(c.Words()) {
		t.Fatalf("expected full-catalog fallback, got %d words", len(fallback))
	}
}

func TestComposeTextTiers(t *testing.T) {
	w := model.VocabularyWord{
		Word:       "ephemeral",
		Definition: "lasting for a very short time",
		Example:    "The beauty of cherry blossoms is ephemeral.",
		Difficulty: model.DifficultyEasy,
		Category:   "time",
	}

	short := ComposeText(w, model.LengthShort)
	if short != w.Example {
		t.Fatalf("short tier should be the bare example, got %q", short)
	}

	medium := ComposeText(w, model.LengthMedium)
	if !strings.HasPrefix(medium, w.Example) || !strings.Contains(medium, "means "+w.Definition) {
		t.Fatalf("medium tier missing definition clause: %q", medium)
	}
	if strings.Contains(medium, "contexts") {
		t.Fatalf("medium tier should not carry the category remark: %q", medium)
	}

	long := ComposeText(w, model.LengthLong)
	if !strings.Contains(long, "means "+w.Definition) || !strings.Contains(long, "time-related contexts") {
		t.Fatalf("long tier missing clauses: %q", long)
	}
}

func TestSearch(t *testing.T) {
	c := NewCatalog()
	hits := c.Search("honey")
	if len(hits) == 0 {
		t.Fatalf("expected definition match for honey")
	}
	if hits := c.Search("zzzz"); len(hits) != 0 {
		t.Fatalf("expected no matches, got %d", len(hits))
	}
}

func TestCatalogWordsAreUnique(t *testing.T) {
	// Progress is keyed by word, so the catalog must not repeat one.
	c := NewCatalog()
	seen := map[string]struct{}{}
	for _, w := range c.Words() {
		if _, ok := seen[w.Word]; ok {
			t.Fatalf("duplicate catalog word %q", w.Word)
		}
		seen[w.Word] = struct{}{}
	}
}
