// Package keywords extracts a small bag of salient lowercase tokens from
// text, used both as a chunk PostProcessor stage (C3) and directly by the
// chat router to derive query keywords.
package keywords

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/serchad/internal/core/domain"
)

// MaxKeywords is the maximum number of keywords kept per chunk or query.
const MaxKeywords = 20

// minTokenLength is the shortest token length kept; shorter tokens are dropped.
const minTokenLength = 3

var nonWord = regexp.MustCompile(`[^\w]+`)

// stopWords is the fixed, canonical stop-word set.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {}, "to": {},
	"for": {}, "of": {}, "with": {}, "by": {}, "from": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "may": {}, "might": {}, "must": {}, "shall": {}, "can": {}, "need": {}, "it": {}, "its": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "i": {}, "you": {}, "he": {}, "she": {}, "we": {}, "they": {},
	"what": {}, "which": {}, "who": {}, "when": {}, "where": {}, "why": {}, "how": {}, "all": {}, "each": {}, "every": {},
	"both": {}, "few": {}, "more": {}, "most": {}, "other": {}, "some": {}, "such": {}, "no": {}, "nor": {}, "not": {},
	"only": {}, "own": {}, "same": {}, "so": {}, "than": {}, "too": {}, "very": {}, "just": {}, "as": {}, "if": {},
	"then": {}, "because": {}, "while": {}, "although": {},
}

// Extract returns up to MaxKeywords distinct lowercase tokens from text,
// sorted by descending frequency with ties broken by first appearance.
func Extract(text string) []string {
	lower := strings.ToLower(text)
	replaced := nonWord.ReplaceAllString(lower, " ")
	fields := strings.Fields(replaced)

	order := make([]string, 0, len(fields))
	counts := make(map[string]int)
	for _, tok := range fields {
		if len(tok) <= minTokenLength-1 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > MaxKeywords {
		order = order[:MaxKeywords]
	}
	return order
}

// Processor is the C3 PostProcessor pipeline stage: it attaches a keyword
// bag to every chunk produced by the preceding chunker stage.
type Processor struct{}

// New creates a keyword-extraction PostProcessor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "keywords"
}

// Process attaches keywords to each chunk in place.
func (p *Processor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	for i := range chunks {
		chunks[i].Keywords = Extract(chunks[i].Content)
	}
	return chunks, nil
}
