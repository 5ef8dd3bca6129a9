// Package textproc tokenizes source text into candidate vocabulary words and
// scores them for queue priority.
package textproc

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z]+`)

// Frequencies tokenizes raw text into case-folded alphabetic tokens and
// returns the occurrence count of each.
func Frequencies(text string) map[string]int {
	counts := make(map[string]int)
	for _, token := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		counts[token]++
	}
	return counts
}

// stopWordPenalty is how much of its raw frequency a stop word keeps in
// priority scoring: penalized heavily but not eliminated.
const stopWordPenalty = 0.1

// ContentScore converts a word's observed frequency into its content
// importance. The result is truncated to an integer only when stored on a
// knowledge record, never before aggregation.
func ContentScore(word string, frequency int, filterStopWords bool) float64 {
	if filterStopWords && IsStopWord(word) {
		return float64(frequency) * stopWordPenalty
	}
	return float64(frequency)
}
