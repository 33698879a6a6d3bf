package util

import "sort"

// SortedKeys returns the keys of a map sorted alphabetically.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Prefix returns at most n leading bytes of s.
func Prefix(s string, n int) string {
	if n < 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
