// Package textutil prepares untrusted candidate text for the terminal.
package textutil

import "strings"

// formattingRunes are bidi controls and zero-width characters that can
// disguise what a line says.
var formattingRunes = map[rune]struct{}{
	0x061C: {}, 0x200B: {}, 0x200C: {}, 0x200D: {}, 0x200E: {}, 0x200F: {},
	0x202A: {}, 0x202B: {}, 0x202C: {}, 0x202D: {}, 0x202E: {},
	0x2028: {}, 0x2029: {}, 0x00AD: {}, 0x180E: {}, 0x2060: {},
	0x2066: {}, 0x2067: {}, 0x2068: {}, 0x2069: {},
	0x206A: {}, 0x206B: {}, 0x206C: {}, 0x206D: {}, 0x206E: {}, 0x206F: {},
	0xFEFF: {},
}

// FormattingMark stands in for a formatting rune on screen.
const FormattingMark = '·'

// SafeRune maps r to something that is safe to hand to the terminal.
// Whitespace controls become a space, other controls '?', formatting runes
// FormattingMark.
func SafeRune(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return ' '
	case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
		return '?'
	}
	if _, ok := formattingRunes[r]; ok {
		return FormattingMark
	}
	return r
}

// SanitizeTerminalText replaces unsafe runes one for one, so rune offsets
// into the result match offsets into text.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if SafeRune(r) != r {
			return strings.Map(SafeRune, text)
		}
	}
	return text
}
