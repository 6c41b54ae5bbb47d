package hotspot

import "strings"

type MatchStrategy int

const (
	MatchNone MatchStrategy = iota
	MatchExact
	// MatchKeyContainsQuery: the query is a substring of the key.
	MatchKeyContainsQuery
	// MatchQueryContainsKey: the key is a substring of the query.
	MatchQueryContainsKey
)

func (s MatchStrategy) String() string {
	switch s {
	case MatchExact:
		return "exact"
	case MatchKeyContainsQuery:
		return "key_contains_query"
	case MatchQueryContainsKey:
		return "query_contains_key"
	default:
		return "none"
	}
}

// Match returns the first key in keys matching query. See MatchWithStrategy.
func Match(query string, keys []string) (string, bool) {
	key, _, ok := MatchWithStrategy(query, keys)
	return key, ok
}

// MatchWithStrategy compares query against keys case-insensitively, trying
// exact equality, then key-contains-query, then query-contains-key. Within a
// strategy the earliest key wins; a later strategy only runs when the
// previous one found nothing. A blank query never matches.
func MatchWithStrategy(query string, keys []string) (string, MatchStrategy, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", MatchNone, false
	}

	lowered := make([]string, len(keys))
	for i, k := range keys {
		lowered[i] = strings.ToLower(k)
	}

	for i, k := range lowered {
		if k == q {
			return keys[i], MatchExact, true
		}
	}
	for i, k := range lowered {
		if strings.Contains(k, q) {
			return keys[i], MatchKeyContainsQuery, true
		}
	}
	for i, k := range lowered {
		if strings.Contains(q, k) {
			return keys[i], MatchQueryContainsKey, true
		}
	}
	return "", MatchNone, false
}
