package kb

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxChunks is the number of context chunks selected per query.
const DefaultMaxChunks = 4

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// Tokenize lowercases text and returns the set of alphanumeric tokens longer
// than two characters. Duplicate tokens carry no extra weight.
func Tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		if len(tok) > 2 {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}

// Select scores each chunk by token-set overlap with the query and returns
// the top maxChunks, ties keeping corpus order. Chunks with zero overlap are
// never selected while a positive-overlap chunk remains. When nothing scores
// above zero, the first maxChunks chunks are returned unconditionally so a
// non-empty corpus always yields context.
func Select(query string, chunks []string, maxChunks int) []string {
	if len(chunks) == 0 {
		return nil
	}
	if maxChunks <= 0 {
		maxChunks = DefaultMaxChunks
	}

	qTokens := Tokenize(query)
	if len(qTokens) == 0 {
		return head(chunks, maxChunks)
	}

	type scored struct {
		overlap int
		chunk   string
	}
	var candidates []scored
	for _, chunk := range chunks {
		overlap := 0
		for tok := range Tokenize(chunk) {
			if _, ok := qTokens[tok]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		candidates = append(candidates, scored{overlap: overlap, chunk: chunk})
	}

	if len(candidates) == 0 {
		return head(chunks, maxChunks)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].overlap > candidates[j].overlap
	})

	selected := make([]string, 0, maxChunks)
	for _, c := range candidates {
		if len(selected) == maxChunks {
			break
		}
		selected = append(selected, c.chunk)
	}
	return selected
}

func head(chunks []string, n int) []string {
	if len(chunks) < n {
		n = len(chunks)
	}
	return chunks[:n]
}
