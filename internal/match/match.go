// Package match implements the glob matching used by every dbusls filter:
// full-string matching where `*` spans any run of characters (including
// `/`) and `?` matches exactly one. This is deliberately not
// path.Match — object paths must be matchable across segment boundaries
// and bracket classes are not part of the filter language.
package match

import "unicode/utf8"

// Match reports whether value matches pattern over the whole string.
// An empty pattern matches only the empty value; callers treat "no
// filter configured" as pass-through before calling.
func Match(pattern, value string) bool {
	return matchFrom(pattern, value)
}

func matchFrom(pattern, value string) bool {
	for len(pattern) > 0 {
		p, psize := utf8.DecodeRuneInString(pattern)
		if p == '*' {
			// Collapse runs of stars, then try every split point,
			// one rune at a time.
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for {
				if matchFrom(pattern, value) {
					return true
				}
				if len(value) == 0 {
					return false
				}
				_, size := utf8.DecodeRuneInString(value)
				value = value[size:]
			}
		}
		if len(value) == 0 {
			return false
		}
		v, vsize := utf8.DecodeRuneInString(value)
		if p != '?' && p != v {
			return false
		}
		pattern = pattern[psize:]
		value = value[vsize:]
	}
	return len(value) == 0
}

// AnyMatch reports whether at least one of values matches pattern.
func AnyMatch(pattern string, values []string) bool {
	for _, v := range values {
		if Match(pattern, v) {
			return true
		}
	}
	return false
}
