package render

import (
	"fmt"
	"strings"
)

// compactBelowWidth switches counts to the short form on narrow screens.
const compactBelowWidth = 30

func formatCounts(matched, total, width int) string {
	if width < compactBelowWidth {
		return formatCompactNumber(matched) + "/" + formatCompactNumber(total)
	}
	return fmt.Sprintf("%d/%d", matched, total)
}

func formatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000_000_000.0)) + "B"
	case n >= 1_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000_000.0)) + "M"
	case n >= 1_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000.0)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimTrailingZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimSuffix(s, "0"), ".")
}
