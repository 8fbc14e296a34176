// Package vocab provides the vocabulary catalog and the adaptive word
// scheduler.
package vocab

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/typedrill/typedrill/internal/model"
)

// Options filters catalog selection.
type Options struct {
	Difficulty model.Difficulty
	Category   string
	Length     model.TextLength
}

// Catalog is the static vocabulary word collection.
type Catalog struct {
	words []model.VocabularyWord
	rnd   *rand.Rand
}

// NewCatalog returns the built-in catalog seeded with the current time.
func NewCatalog() *Catalog {
	return &Catalog{
		words: catalogWords,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Words returns every catalog entry.
func (c *Catalog) Words() []model.VocabularyWord {
	return c.words
}

// Categories returns the known category names.
func (c *Catalog) Categories() []string {
	return catalogCategories
}

// Lookup finds a catalog entry by word.
func (c *Catalog) Lookup(word string) (model.VocabularyWord, bool) {
	for _, w := range c.words {
		if w.Word == word {
			return w, true
		}
	}
	return model.VocabularyWord{}, false
}

// Filter returns entries matching the difficulty (mixed or empty matches
// all) and category (empty matches all). An empty filter result falls back
// to the full catalog so a passage can always be produced.
func (c *Catalog) Filter(difficulty model.Difficulty, category string) []model.VocabularyWord {
	filtered := make([]model.VocabularyWord, 0, len(c.words))
	for _, w := range c.words {
		if difficulty != "" && difficulty != model.DifficultyMixed && w.Difficulty != difficulty {
			continue
		}
		if category != "" && w.Category != category {
			continue
		}
		filtered = append(filtered, w)
	}
	if len(filtered) == 0 {
		return c.words
	}
	return filtered
}

// Pick selects one entry uniformly at random from the filtered set.
func (c *Catalog) Pick(difficulty model.Difficulty, category string) model.VocabularyWord {
	filtered := c.Filter(difficulty, category)
	return filtered[c.rnd.Intn(len(filtered))]
}

// Random selects one entry uniformly at random from the whole catalog.
func (c *Catalog) Random() model.VocabularyWord {
	return c.words[c.rnd.Intn(len(c.words))]
}

// Search matches the query against word, definition, and category.
func (c *Catalog) Search(query string) []model.VocabularyWord {
	query = strings.ToLower(query)
	var out []model.VocabularyWord
	for _, w := range c.words {
		if strings.Contains(strings.ToLower(w.Word), query) ||
			strings.Contains(strings.ToLower(w.Definition), query) ||
			strings.Contains(strings.ToLower(w.Category), query) {
			out = append(out, w)
		}
	}
	return out
}

// ComposeText builds the practice passage for a word. The short tier is the
// bare example sentence; medium adds the definition clause; long adds a
// category remark on top.
func ComposeText(w model.VocabularyWord, length model.TextLength) string {
	switch length {
	case model.LengthShort:
		return strings.TrimSpace(w.Example)
	case model.LengthLong:
		return strings.TrimSpace(fmt.Sprintf(
			"%s The word %q means %s. This %s vocabulary word is often used in %s-related contexts.",
			w.Example, w.Word, w.Definition, w.Difficulty, w.Category))
	default:
		return strings.TrimSpace(fmt.Sprintf("%s The word %q means %s.", w.Example, w.Word, w.Definition))
	}
}

// Explanation renders the word with its definition for result screens.
func Explanation(w model.VocabularyWord) string {
	return fmt.Sprintf("%s: %s", w.Word, w.Definition)
}
