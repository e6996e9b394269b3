package movie

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatRuntime renders minutes as "2h 5m".
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatCurrency renders an amount in US dollars with thousands separators.
func FormatCurrency(amount int64) string {
	if amount <= 0 {
		return "N/A"
	}
	return usd.Sprintf("$%.2f", float64(amount))
}
