package textutil

// MatchResult carries the winning candidate (original form, not normalized)
// and the similarity score in [0,100]. Match is empty when no candidate
// reached the threshold; Similarity still reports the best score so callers
// can inspect near misses.
type MatchResult struct {
	Match      string
	Similarity float64
}

// LevenshteinDistance computes the unit-cost edit distance
// (insert/delete/substitute) between two strings, by rune.
func LevenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j-1]+cost, curr[j-1]+1, prev[j]+1)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// ClosestMatch finds the candidate most similar to query. Both sides are
// normalized first; an exact normalized match short-circuits with
// similarity 100. Otherwise similarity is (maxLen-distance)/maxLen*100,
// where maxLen is the longest normalized string among the query and ALL
// candidates, computed once, so every candidate is scored on the same
// scale. Ties keep the first candidate in iteration order.
func ClosestMatch(query string, candidates []string, threshold float64) MatchResult {
	if len(candidates) == 0 {
		return MatchResult{}
	}

	normalizedQuery := Normalize(query)

	normalized := make([]string, len(candidates))
	maxLen := len([]rune(normalizedQuery))
	for i, c := range candidates {
		normalized[i] = Normalize(c)
		if l := len([]rune(normalized[i])); l > maxLen {
			maxLen = l
		}
	}

	bestMatch := ""
	bestSimilarity := 0.0

	for i, c := range candidates {
		if normalized[i] == normalizedQuery {
			return MatchResult{Match: c, Similarity: 100}
		}

		if maxLen == 0 {
			continue
		}

		distance := LevenshteinDistance(normalizedQuery, normalized[i])
		similarity := float64(maxLen-distance) / float64(maxLen) * 100

		if similarity > bestSimilarity {
			bestSimilarity = similarity
			bestMatch = c
		}
	}

	if bestSimilarity >= threshold {
		return MatchResult{Match: bestMatch, Similarity: bestSimilarity}
	}

	return MatchResult{Similarity: bestSimilarity}
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
