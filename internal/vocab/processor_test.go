package vocab

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"preetenglish/internal/models"
	"preetenglish/internal/stoplist"
)

const sampleText = `The market opens early in the morning. Vendors arrange
vegetables and fruits while customers walk between the stalls. The market
closes at sunset, and the vendors count the money from the morning sales.`

func TestExtract(t *testing.T) {
	candidates := Extract(sampleText, 3, 1)

	byWord := make(map[string]int, len(candidates))
	for _, c := range candidates {
		byWord[c.Word] = c.Frequency
	}

	if byWord["market"] != 2 {
		t.Errorf("expected market twice, got %d", byWord["market"])
	}
	if byWord["morning"] != 2 {
		t.Errorf("expected morning twice, got %d", byWord["morning"])
	}
	if _, ok := byWord["at"]; ok {
		t.Error("two-letter words should be dropped at min length 3")
	}
	if len(candidates) > 1 && candidates[0].Frequency < candidates[1].Frequency {
		t.Error("candidates should be ordered by descending frequency")
	}
}

func TestExtractMinFrequency(t *testing.T) {
	candidates := Extract(sampleText, 3, 2)
	for _, c := range candidates {
		if c.Frequency < 2 {
			t.Errorf("word %q below min frequency: %d", c.Word, c.Frequency)
		}
	}
}

func TestProcessFiltersStoplist(t *testing.T) {
	sl, err := stoplist.Default()
	if err != nil {
		t.Fatalf("loading stoplist: %v", err)
	}
	p := NewProcessor(sl, nil, nil)

	result, err := p.Process(context.Background(), sampleText, Options{
		Category:   "daily_life",
		Difficulty: models.DifficultyBeginner,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	for _, c := range result.Filtered {
		if c.Word == "the" || c.Word == "and" {
			t.Errorf("stoplist word %q survived filtering", c.Word)
		}
	}
	if len(result.Filtered) == 0 {
		t.Fatal("expected some words to survive the stoplist")
	}
	if len(result.Deduplicated) != len(result.Filtered) {
		t.Errorf("no duplicates in input, yet dedupe changed the count: %d vs %d",
			len(result.Deduplicated), len(result.Filtered))
	}
}

func TestProcessLimit(t *testing.T) {
	p := NewProcessor(nil, nil, nil)
	result, err := p.Process(context.Background(), sampleText, Options{Limit: 3})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(result.Deduplicated) != 3 {
		t.Errorf("expected exactly 3 words with limit, got %d", len(result.Deduplicated))
	}
}

func TestDedupeExactIdempotent(t *testing.T) {
	items := []models.VocabularyItem{
		{Word: "market"},
		{Word: "Market"},
		{Word: "vendor"},
		{Word: "market"},
	}

	once := Dedupe(items, DedupeExact, nil)
	twice := Dedupe(once, DedupeExact, nil)

	if len(once) != 2 {
		t.Fatalf("expected 2 unique words, got %d", len(once))
	}
	if !reflect.DeepEqual(once, twice) {
		t.Error("dedupe should be idempotent over its own output")
	}
	if once[0].Word != "market" {
		t.Errorf("first occurrence should win, got %q", once[0].Word)
	}
}

func TestDedupeSemanticFallsBackToExact(t *testing.T) {
	items := []models.VocabularyItem{{Word: "walk"}, {Word: "walk"}, {Word: "stroll"}}

	got := Dedupe(items, DedupeSemantic, nil)
	want := Dedupe(items, DedupeExact, nil)

	if !reflect.DeepEqual(got, want) {
		t.Error("semantic dedupe without a backend should match exact dedupe")
	}
}

func TestDedupeFrequencyKeepsMostFrequent(t *testing.T) {
	items := []models.VocabularyItem{
		{Word: "Market", Definition: "capitalized form"},
		{Word: "market", Definition: "lowercase form"},
	}
	frequencies := map[string]int{"market": 5}

	got := Dedupe(items, DedupeFrequency, frequencies)
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	// Both forms share the lowercase frequency key, so the first stays
	if got[0].Definition != "capitalized form" {
		t.Errorf("unexpected survivor %+v", got[0])
	}
}

func TestIdentityEnricher(t *testing.T) {
	item, err := IdentityEnricher{}.Enrich(context.Background(), "market")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if item.Word != "market" || item.Definition != "" {
		t.Errorf("identity enricher should only set the word, got %+v", item)
	}
}

func TestLoadSourcePlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.txt")
	if err := os.WriteFile(path, []byte("plain text source"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	text, err := LoadSource(path)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if text != "plain text source" {
		t.Errorf("unexpected content %q", text)
	}
}

func TestLoadSourceConvertsHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.html")
	html := `<!DOCTYPE html><html><body><h1>Market Day</h1><p>Vendors sell fruit.</p></body></html>`
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	text, err := LoadSource(path)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if strings.Contains(text, "<h1>") || strings.Contains(text, "<p>") {
		t.Errorf("HTML tags should be stripped, got %q", text)
	}
	if !strings.Contains(text, "Market Day") || !strings.Contains(text, "Vendors sell fruit.") {
		t.Errorf("converted text missing content: %q", text)
	}
}

func TestLoadSourceMissingFile(t *testing.T) {
	if _, err := LoadSource(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
