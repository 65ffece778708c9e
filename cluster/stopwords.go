package cluster

// stopwords holds articles, prepositions, and common connective words that
// carry no topical signal in document titles.
var stopwords = func() map[string]struct{} {
	words := []string{
		"the", "and", "for", "with", "from", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "over",
		"under", "than", "then", "that", "these", "this", "those", "via",
		"are", "was", "were", "been", "being", "has", "have", "had", "can",
		"will", "its", "their", "our", "your", "his", "her", "not", "but",
		"all", "any", "each", "how", "what", "when", "where", "which",
		"who", "why", "out", "off", "own", "same", "too", "very", "such",
		"based", "using", "toward", "towards", "upon", "within", "without",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
