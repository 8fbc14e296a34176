// Package textgen supplies practice passages from remote quote services,
// local corpora, and the vocabulary catalog.
package textgen

import (
	"context"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/typedrill/typedrill/internal/model"
	"github.com/typedrill/typedrill/internal/vocab"
)

// Source ids.
const (
	SourceQuotes      = "quotes"
	SourceProgramming = "programming"
	SourceLorem       = "lorem"
	SourceWords       = "words"
	SourceSentences   = "sentences"
	SourceVocabulary  = "vocabulary"
)

// Source describes one selectable text source.
type Source struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Sources lists every selectable source.
func Sources() []Source {
	return []Source{
		{ID: SourceQuotes, Name: "Quotes", Description: "Famous quotes and sayings"},
		{ID: SourceProgramming, Name: "Programming", Description: "Code snippets and technical text"},
		{ID: SourceLorem, Name: "Lorem Ipsum", Description: "Classic Lorem Ipsum text"},
		{ID: SourceWords, Name: "Common Words", Description: "Frequently used English words"},
		{ID: SourceSentences, Name: "Sentences", Description: "Natural English sentences"},
		{ID: SourceVocabulary, Name: "Vocabulary Builder", Description: "Learn uncommon words while typing"},
	}
}

// KnownSource reports whether id names a selectable source.
func KnownSource(id string) bool {
	for _, s := range Sources() {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Options configures one passage request.
type Options struct {
	Source     string
	Length     model.TextLength
	Vocabulary vocab.Options
	// Word pins the vocabulary selection, used when the adaptive scheduler
	// already chose the word to practice.
	Word string
}

// Passage is one generated practice text. Word is set for vocabulary
// passages only.
type Passage struct {
	Text   string
	Source string
	Length model.TextLength
	Word   *model.VocabularyWord
}

// Generator produces practice passages. Safe to reuse across sessions; not
// safe for concurrent use.
type Generator struct {
	rnd       *rand.Rand
	client    *http.Client
	endpoints []string
	catalog   *vocab.Catalog
}

// New returns a Generator backed by the default quote endpoints and the
// built-in vocabulary catalog.
func New(catalog *vocab.Catalog) *Generator {
	return &Generator{
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		client:    &http.Client{},
		endpoints: defaultEndpoints,
		catalog:   catalog,
	}
}

// WithEndpoints overrides the remote quote endpoints. Used by tests and by
// deployments pointing at a different quote service.
func (g *Generator) WithEndpoints(endpoints ...string) *Generator {
	g.endpoints = endpoints
	return g
}

// Generate produces one passage for the options. It never returns an empty
// passage: every failure path lands on a local corpus entry.
func (g *Generator) Generate(ctx context.Context, opts Options) Passage {
	source := opts.Source
	if source == "" {
		source = SourceQuotes
	}
	length := opts.Length
	if length == "" {
		length = model.LengthMedium
	}

	if source == SourceVocabulary {
		return g.vocabularyPassage(opts, length)
	}

	if source == SourceQuotes && len(g.endpoints) > 0 {
		if quote := g.fetchQuote(ctx); quote != "" {
			return Passage{Text: trimToLength(quote, length), Source: source, Length: length}
		}
	}

	return Passage{Text: g.localPassage(source, length), Source: source, Length: length}
}

func (g *Generator) vocabularyPassage(opts Options, length model.TextLength) Passage {
	if opts.Vocabulary.Length != "" {
		length = opts.Vocabulary.Length
	}
	var word model.VocabularyWord
	if opts.Word != "" {
		if w, ok := g.catalog.Lookup(opts.Word); ok {
			word = w
		} else {
			word = g.catalog.Pick(opts.Vocabulary.Difficulty, opts.Vocabulary.Category)
		}
	} else {
		word = g.catalog.Pick(opts.Vocabulary.Difficulty, opts.Vocabulary.Category)
	}
	return Passage{
		Text:   vocab.ComposeText(word, length),
		Source: SourceVocabulary,
		Length: length,
		Word:   &word,
	}
}

func (g *Generator) localPassage(source string, length model.TextLength) string {
	if source == SourceWords {
		return g.wordSample(length)
	}
	corpus := localCorpus(source)
	text := corpus[g.rnd.Intn(len(corpus))]
	return trimToLength(text, length)
}

// wordSample shuffles the common-word list and takes a length-dependent
// prefix.
func (g *Generator) wordSample(length model.TextLength) string {
	count := 50
	switch length {
	case model.LengthShort:
		count = 20
	case model.LengthLong:
		count = 100
	}
	shuffled := make([]string, len(commonWords))
	copy(shuffled, commonWords)
	g.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return strings.Join(shuffled[:count], " ")
}

// trimToLength collapses whitespace and trims to the target word count for
// the tier. Trimming is word-boundary based, never mid-word.
func trimToLength(text string, length model.TextLength) string {
	words := strings.Fields(text)
	target := 30
	switch length {
	case model.LengthShort:
		target = 15
	case model.LengthLong:
		target = 60
	}
	if len(words) > target {
		words = words[:target]
	}
	return strings.Join(words, " ")
}
