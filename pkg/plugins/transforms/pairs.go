package transforms

import "strings"

// pair is one key=value mapping parsed from a plugin setting
type pair struct {
	key   string
	value string
}

// parsePairs splits a whitespace-separated list of key=value tokens,
// preserving order. Tokens without a value are dropped. Values may
// contain "=" (only the first one separates key from value), which
// keeps URLs intact.
func parsePairs(s string) []pair {
	var pairs []pair
	for _, token := range strings.Fields(s) {
		k, v, ok := strings.Cut(token, "=")
		if !ok || k == "" || v == "" {
			continue
		}
		pairs = append(pairs, pair{key: k, value: v})
	}
	return pairs
}
