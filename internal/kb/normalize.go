package kb

import "strings"

// Normalize canonicalizes a free-text token: leading/trailing whitespace
// is trimmed, the result is lower-cased, and internal whitespace runs
// collapse to a single underscore. Fact and condition comparison is
// exact-match on canonical tokens, so every token entering a store or
// the engine passes through here first.
//
// Normalize never fails; empty input yields the empty token, which
// callers reject where non-empty is required.
func Normalize(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, "_")
}

// NormalizeAll canonicalizes a slice of tokens, dropping any that are
// empty after normalization. Returns nil if nothing survives.
func NormalizeAll(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// SplitTokens splits comma-separated input into canonical tokens,
// skipping empty entries. "Daun Kering, basah ,c" → ["daun_kering", "basah", "c"].
func SplitTokens(text string) []string {
	return NormalizeAll(strings.Split(text, ","))
}
