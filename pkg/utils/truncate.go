package utils

// TruncateRunes returns the first n characters of s. Slicing by byte offset
// can cut a multi-byte rune in half and leave invalid UTF-8 in the output,
// so truncation counts runes.
func TruncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
