// Package vocab extracts candidate vocabulary from source text, filters it
// against the stoplist, enriches surviving words, and deduplicates the
// result into lesson-ready vocabulary items.
package vocab

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"preetenglish/internal/models"
	"preetenglish/internal/stoplist"
)

// DedupeStrategy selects how duplicate candidates are collapsed
type DedupeStrategy string

const (
	// DedupeExact collapses case-insensitive exact duplicates, keeping the
	// first occurrence
	DedupeExact DedupeStrategy = "exact"
	// DedupeSemantic collapses words that share a meaning. Without an
	// embedding backend it behaves like exact matching.
	DedupeSemantic DedupeStrategy = "semantic"
	// DedupeFrequency keeps the most frequent form of each duplicate group
	DedupeFrequency DedupeStrategy = "frequency"
)

// Candidate is one extracted word with its occurrence count
type Candidate struct {
	Word      string
	Frequency int
}

// Result reports every stage of one extraction run
type Result struct {
	Extracted    []Candidate
	Filtered     []Candidate
	Enriched     []models.VocabularyItem
	Deduplicated []models.VocabularyItem
}

// Options controls one extraction run
type Options struct {
	// MinFrequency drops words seen fewer times than this; zero means 1
	MinFrequency int
	// MinLength drops words shorter than this many characters; zero means 3
	MinLength int
	// Category and Difficulty scope the stoplist filter
	Category   string
	Difficulty string
	// Strategy selects deduplication behavior; empty means exact
	Strategy DedupeStrategy
	// Limit caps the final list; zero means unlimited
	Limit int
}

func (o Options) withDefaults() Options {
	if o.MinFrequency <= 0 {
		o.MinFrequency = 1
	}
	if o.MinLength <= 0 {
		o.MinLength = 3
	}
	if o.Strategy == "" {
		o.Strategy = DedupeExact
	}
	return o
}

// Processor runs the extraction pipeline
type Processor struct {
	stoplist *stoplist.Stoplist
	enricher Enricher
	logger   *zap.Logger
}

// NewProcessor builds a processor. A nil enricher falls back to the
// identity enricher.
func NewProcessor(sl *stoplist.Stoplist, enricher Enricher, logger *zap.Logger) *Processor {
	if enricher == nil {
		enricher = IdentityEnricher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{stoplist: sl, enricher: enricher, logger: logger}
}

// Process runs extract, filter, enrich, and dedupe over the source text
func (p *Processor) Process(ctx context.Context, text string, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	result := &Result{}
	result.Extracted = Extract(text, opts.MinLength, opts.MinFrequency)
	result.Filtered = p.filter(result.Extracted, opts)

	enriched, err := p.enrich(ctx, result.Filtered)
	if err != nil {
		return nil, fmt.Errorf("enriching vocabulary: %w", err)
	}
	result.Enriched = enriched
	result.Deduplicated = Dedupe(enriched, opts.Strategy, frequencyIndex(result.Filtered))

	if opts.Limit > 0 && len(result.Deduplicated) > opts.Limit {
		result.Deduplicated = result.Deduplicated[:opts.Limit]
	}

	p.logger.Info("vocabulary extraction finished",
		zap.Int("extracted", len(result.Extracted)),
		zap.Int("filtered", len(result.Filtered)),
		zap.Int("final", len(result.Deduplicated)))
	return result, nil
}

// Extract tokenizes the text into lowercase words, dropping short and rare
// ones. Words are ordered by descending frequency, ties alphabetical.
func Extract(text string, minLength, minFrequency int) []Candidate {
	counts := make(map[string]int)
	for _, token := range splitWords(text) {
		word := strings.ToLower(token)
		if len([]rune(word)) < minLength {
			continue
		}
		counts[word]++
	}

	candidates := make([]Candidate, 0, len(counts))
	for word, n := range counts {
		if n < minFrequency {
			continue
		}
		candidates = append(candidates, Candidate{Word: word, Frequency: n})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Frequency != candidates[j].Frequency {
			return candidates[i].Frequency > candidates[j].Frequency
		}
		return candidates[i].Word < candidates[j].Word
	})
	return candidates
}

// splitWords breaks text on any non-letter run. Digits and punctuation act
// as separators, so "don't" yields "don" and "t".
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func (p *Processor) filter(candidates []Candidate, opts Options) []Candidate {
	if p.stoplist == nil {
		return candidates
	}
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if p.stoplist.ShouldExclude(c.Word, opts.Category, opts.Difficulty) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func (p *Processor) enrich(ctx context.Context, candidates []Candidate) ([]models.VocabularyItem, error) {
	items := make([]models.VocabularyItem, 0, len(candidates))
	for _, c := range candidates {
		item, err := p.enricher.Enrich(ctx, c.Word)
		if err != nil {
			return nil, fmt.Errorf("enriching %q: %w", c.Word, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Dedupe collapses duplicate words per the strategy. It is idempotent:
// running it over its own output returns the same list.
func Dedupe(items []models.VocabularyItem, strategy DedupeStrategy, frequencies map[string]int) []models.VocabularyItem {
	switch strategy {
	case DedupeFrequency:
		return dedupeByFrequency(items, frequencies)
	case DedupeSemantic:
		// No embedding backend wired yet; exact matching is the fallback
		return dedupeExact(items)
	default:
		return dedupeExact(items)
	}
}

func dedupeExact(items []models.VocabularyItem) []models.VocabularyItem {
	seen := make(map[string]bool, len(items))
	out := make([]models.VocabularyItem, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item.Word)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func dedupeByFrequency(items []models.VocabularyItem, frequencies map[string]int) []models.VocabularyItem {
	best := make(map[string]models.VocabularyItem, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item.Word)
		current, ok := best[key]
		if !ok {
			best[key] = item
			order = append(order, key)
			continue
		}
		if frequencies[strings.ToLower(item.Word)] > frequencies[strings.ToLower(current.Word)] {
			best[key] = item
		}
	}
	out := make([]models.VocabularyItem, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

func frequencyIndex(candidates []Candidate) map[string]int {
	index := make(map[string]int, len(candidates))
	for _, c := range candidates {
		index[c.Word] = c.Frequency
	}
	return index
}
