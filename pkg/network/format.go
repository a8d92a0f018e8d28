package network

import "fmt"

// FormatDaysSince renders a day count in coarse bands. Each band divides
// with truncation, so 13 days is "1 week(s)" and 59 days is "1 month(s)".
// Negative counts render as "today".
func FormatDaysSince(days int) string {
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days", days)
	case days < 30:
		return fmt.Sprintf("%d week(s)", days/7)
	case days < 365:
		return fmt.Sprintf("%d month(s)", days/30)
	default:
		return fmt.Sprintf("%d year(s)", days/365)
	}
}
