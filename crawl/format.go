package crawl

import "fmt"

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatPrice renders an optional amount and currency for display.
func FormatPrice(amount *float64, currency string) string {
	if amount == nil {
		return "-"
	}
	if currency == "" {
		return fmt.Sprintf("%.2f", *amount)
	}
	return fmt.Sprintf("%.2f %s", *amount, currency)
}
