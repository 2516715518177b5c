package chunker

import "strings"

// CountTokens gives a whitespace-token count. Exact model tokenization is
// not required for chunk-size policy; word count is a close enough proxy.
func CountTokens(text string) int {
	return len(strings.Fields(text))
}
