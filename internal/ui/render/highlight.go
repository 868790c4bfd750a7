package render

import "unicode"

type highlightSpan struct {
	start int
	end   int
}

// highlightSpans marks where query occurs in text, compared
// case-insensitively rune by rune. When the query is not a substring, its
// runes are matched as an in-order subsequence instead.
func highlightSpans(query, text string) []highlightSpan {
	if query == "" || text == "" {
		return nil
	}

	pattern := lowerRunes(query)
	target := lowerRunes(text)

	if idx := indexRunes(target, pattern); idx >= 0 {
		return []highlightSpan{{start: idx, end: idx + len(pattern)}}
	}
	return subsequenceSpans(pattern, target)
}

func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, ru := range runes {
		runes[i] = unicode.ToLower(ru)
	}
	return runes
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) > len(haystack) {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, ru := range needle {
			if haystack[i+j] != ru {
				continue outer
			}
		}
		return i
	}
	return -1
}

func subsequenceSpans(pattern, target []rune) []highlightSpan {
	spans := make([]highlightSpan, 0, len(pattern))

	qIdx := 0
	spanStart := -1
	lastMatchPos := -1

	for idx, ru := range target {
		if qIdx >= len(pattern) {
			break
		}
		if ru == pattern[qIdx] {
			if spanStart == -1 {
				spanStart = idx
			}
			qIdx++
			lastMatchPos = idx + 1
			continue
		}

		if spanStart != -1 {
			spans = append(spans, highlightSpan{start: spanStart, end: idx})
			spanStart = -1
		}
	}

	if spanStart != -1 {
		spans = append(spans, highlightSpan{start: spanStart, end: lastMatchPos})
	}

	return spans
}
