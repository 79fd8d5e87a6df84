package usecase

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// levenshtein is a reusable metric instance. Inputs are normalized lowercase
// strings, so case sensitivity never comes into play.
var levenshtein = metrics.NewLevenshtein()

// Match is the outcome of one best-match query: the index of the winning
// candidate in the input slice and its similarity score in [0,100].
type Match struct {
	Index int
	Score float64
}

// tokenSort rearranges the words of a normalized string into sorted order,
// making the similarity score insensitive to token order ("morgan captain
// spiced" scores identically to "captain morgan spiced").
func tokenSort(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Similarity returns the token-order-insensitive similarity of two
// normalized strings, scaled to [0,100].
func Similarity(a, b string) float64 {
	return strutil.Similarity(tokenSort(a), tokenSort(b), levenshtein) * 100
}

// BestMatch scans candidates for the highest-similarity match to query.
// Both query and candidates must already be normalized. Returns false when
// the candidate pool is empty.
//
// Ties are broken by input order: the best candidate is replaced only on a
// strictly greater score, so the first of equally-scored candidates wins.
// Deterministic for a given (query, candidates) pair.
func BestMatch(query string, candidates []string) (Match, bool) {
	if len(candidates) == 0 {
		return Match{}, false
	}

	sortedQuery := tokenSort(query)
	best := Match{Index: -1, Score: -1}

	for i, candidate := range candidates {
		score := strutil.Similarity(sortedQuery, tokenSort(candidate), levenshtein) * 100
		if score > best.Score {
			best = Match{Index: i, Score: score}
		}
	}

	return best, true
}
