package textproc

import "strings"

// englishStopWords is the fixed set of high-frequency, low-lexical-value
// words subject to the priority penalty: articles, pronouns, prepositions,
// conjunctions, auxiliary verbs, common adverbs, written-out numbers, and
// contraction fragments.
var englishStopWords = map[string]struct{}{}

func init() {
	words := []string{
		// Articles
		"a", "an", "the",

		// Pronouns
		"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
		"my", "your", "his", "its", "our", "their", "myself", "yourself", "himself",
		"herself", "itself", "ourselves", "yourselves", "themselves", "this", "that", "these",
		"those", "who", "whom", "whose", "which", "what",

		// Prepositions
		"in", "on", "at", "by", "for", "with", "without", "to", "from", "up", "down",
		"out", "off", "over", "under", "above", "below", "between", "among", "through",
		"during", "before", "after", "since", "until", "of", "about", "into", "onto",
		"upon", "within", "across", "against", "toward", "towards", "behind", "beside",
		"beyond", "near", "around",

		// Conjunctions
		"and", "or", "but", "so", "yet", "nor", "if", "when", "where", "why",
		"how", "while", "although", "though", "because", "unless",
		"whether", "either", "neither", "both", "not", "only",

		// Auxiliary verbs and common verbs
		"am", "is", "are", "was", "were", "be", "being", "been", "have", "has", "had",
		"do", "does", "did", "will", "would", "shall", "should", "may", "might", "can",
		"could", "must", "ought",

		// Common adverbs
		"no", "yes", "here", "there", "then",
		"now", "today", "yesterday", "tomorrow", "always", "never", "sometimes",
		"often", "usually", "very", "quite", "rather", "too", "also", "just",
		"even", "still", "already", "again", "more", "most", "much", "many",
		"few", "little", "less", "least", "all", "some", "any", "each", "every",
		"another", "other", "such", "same", "different",

		// Common question words and misc
		"as", "than", "like", "well", "way", "first",
		"last", "next", "new", "old", "good", "bad", "big", "small", "long", "short",
		"high", "low", "right", "left", "sure", "ok", "okay", "hello", "hi", "bye",
		"please", "thank", "thanks", "welcome",

		// Numbers (written out)
		"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
		"eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen",
		"eighteen", "nineteen", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
		"eighty", "ninety", "hundred", "thousand", "million", "billion",

		// Contraction fragments ('ll, 've, 're, 'd, 't, 's, 'm)
		"ll", "ve", "re", "d", "t", "s", "m",
	}
	for _, w := range words {
		englishStopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether the word belongs to the fixed stop-word set.
func IsStopWord(word string) bool {
	_, ok := englishStopWords[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// CorpusStats summarizes the stop-word vs content-word split of a
// word-frequency map.
type CorpusStats struct {
	TotalWords    int `json:"total_words"`
	UniqueWords   int `json:"unique_words"`
	StopUnique    int `json:"stop_unique"`
	StopTotal     int `json:"stop_total"`
	ContentUnique int `json:"content_unique"`
	ContentTotal  int `json:"content_total"`
}

// Stats computes the stop-word statistics of a word-frequency map.
func Stats(frequencies map[string]int) CorpusStats {
	var stats CorpusStats
	stats.UniqueWords = len(frequencies)
	for word, freq := range frequencies {
		stats.TotalWords += freq
		if IsStopWord(word) {
			stats.StopUnique++
			stats.StopTotal += freq
		} else {
			stats.ContentUnique++
			stats.ContentTotal += freq
		}
	}
	return stats
}
