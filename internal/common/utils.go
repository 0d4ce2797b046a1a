package common

// HasAnyToken returns true if any of tokens equals one of want.
func HasAnyToken(tokens []string, want ...string) bool {
	for _, tok := range tokens {
		for _, w := range want {
			if tok == w {
				return true
			}
		}
	}
	return false
}
