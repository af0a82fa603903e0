package sqlalias

// TruncateAlias returns base cut so that base+suffix fits in maxLen characters. The suffix is
// always kept as is. Lengths are counted in characters, not bytes, so multibyte names are never
// split in the middle of a character.
func TruncateAlias(base, suffix string, maxLen int) string {
	budget := maxLen - len([]rune(suffix))
	if budget < 0 {
		// maxLen shorter than suffix is a caller error, keep the suffix alone
		budget = 0
	}
	if len(base) <= budget {
		// fast path, byte length is an upper bound of the rune count
		return base + suffix
	}
	r := []rune(base)
	if len(r) > budget {
		r = r[:budget]
	}
	return string(r) + suffix
}
