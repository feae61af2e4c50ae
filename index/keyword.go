package index

import (
	"strings"
	"unicode"
)

// keywordScore ranks text against query terms without embeddings. Each query
// term contributes tf/(tf+1), where tf is the term's frequency in the text;
// the sum is normalized by the number of query terms so scores stay in
// [0, 1). A text containing none of the terms scores 0.
func keywordScore(queryTerms []string, text string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}

	freq := make(map[string]int)
	for _, term := range tokenize(text) {
		freq[term]++
	}

	var score float64
	for _, term := range queryTerms {
		if tf := freq[term]; tf > 0 {
			score += float64(tf) / float64(tf+1)
		}
	}
	return score / float64(len(queryTerms))
}

// tokenize lowercases text and splits it on anything that is not a letter
// or a digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
