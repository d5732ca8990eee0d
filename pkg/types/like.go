package types

// MatchLike reports whether s matches a SQL LIKE pattern.
// '%' matches any sequence of characters (including none), '_' matches
// exactly one character. Matching is case-sensitive; there is no escape
// character. Operates on runes so multi-byte characters count as one
// character for '_'.
func MatchLike(s, pattern string) bool {
	return matchLike([]rune(s), []rune(pattern))
}

// matchLike is a greedy wildcard matcher with backtracking over '%'.
// si/pi track the current match position; starPi/starSi remember the most
// recent '%' so a failed suffix match can retry with the wildcard absorbing
// one more character.
func matchLike(s, p []rune) bool {
	si, pi := 0, 0
	starPi, starSi := -1, 0

	for si < len(s) {
		switch {
		case pi < len(p) && (p[pi] == '_' || p[pi] == s[si]):
			si++
			pi++

		case pi < len(p) && p[pi] == '%':
			starPi = pi
			starSi = si
			pi++

		case starPi >= 0:
			pi = starPi + 1
			starSi++
			si = starSi

		default:
			return false
		}
	}

	for pi < len(p) && p[pi] == '%' {
		pi++
	}

	return pi == len(p)
}
