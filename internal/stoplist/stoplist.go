// Package stoplist holds the table of common words excluded from vocabulary
// teaching at given difficulty/category combinations. The table is loaded
// once at startup and injected into the components that consult it.
package stoplist

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed stoplist.yaml
var defaultTable []byte

// Entry describes one stoplisted word
type Entry struct {
	Word      string   `yaml:"word" json:"word"`
	Frequency int      `yaml:"frequency" json:"frequency"` // 1-10 commonness
	Tags      []string `yaml:"categories" json:"categories"`
	Reason    string   `yaml:"reason" json:"reason"`
}

// Stoplist is a case-insensitive word table. Lookups on absent words always
// include the word (default-include).
type Stoplist struct {
	entries map[string]Entry
}

// Default loads the embedded stoplist table
func Default() (*Stoplist, error) {
	return Parse(defaultTable)
}

// Parse builds a stoplist from YAML data
func Parse(data []byte) (*Stoplist, error) {
	var raw struct {
		Words []Entry `yaml:"words"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse stoplist: %w", err)
	}

	s := &Stoplist{entries: make(map[string]Entry, len(raw.Words))}
	for _, e := range raw.Words {
		s.entries[strings.ToLower(e.Word)] = e
	}
	return s, nil
}

// ShouldExclude reports whether word is excluded for the given category and
// difficulty. A word is excluded when its entry's tag set contains either the
// difficulty OR the category (OR semantics: matching one is enough). Words
// not in the table are never excluded.
func (s *Stoplist) ShouldExclude(word, category, difficulty string) bool {
	entry, ok := s.entries[strings.ToLower(word)]
	if !ok {
		return false
	}
	for _, tag := range entry.Tags {
		if tag == difficulty || tag == category {
			return true
		}
	}
	return false
}

// Lookup returns the entry for a word, if present
func (s *Stoplist) Lookup(word string) (Entry, bool) {
	entry, ok := s.entries[strings.ToLower(word)]
	return entry, ok
}

// Add inserts or replaces a stoplist entry
func (s *Stoplist) Add(entry Entry) {
	s.entries[strings.ToLower(entry.Word)] = entry
}

// Remove deletes a word from the table. Removing an absent word is a no-op.
func (s *Stoplist) Remove(word string) {
	delete(s.entries, strings.ToLower(word))
}

// WordsForCategory returns the words whose tag set contains the category tag,
// sorted for stable output
func (s *Stoplist) WordsForCategory(category string) []string {
	return s.wordsWithTag(category)
}

// WordsForDifficulty returns the words whose tag set contains the difficulty
func (s *Stoplist) WordsForDifficulty(difficulty string) []string {
	return s.wordsWithTag(difficulty)
}

func (s *Stoplist) wordsWithTag(tag string) []string {
	var words []string
	for word, entry := range s.entries {
		for _, t := range entry.Tags {
			if t == tag {
				words = append(words, word)
				break
			}
		}
	}
	sort.Strings(words)
	return words
}

// Statistics returns the entry count per tag
func (s *Stoplist) Statistics() map[string]int {
	stats := make(map[string]int)
	for _, entry := range s.entries {
		for _, tag := range entry.Tags {
			stats[tag]++
		}
	}
	return stats
}

// Len returns the number of entries in the table
func (s *Stoplist) Len() int {
	return len(s.entries)
}
