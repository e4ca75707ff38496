package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Display renders an amount for people: truncated to whole units, grouped by
// thousands and followed by the currency label when there is one.
func Display(amount decimal.Decimal, currency string) string {
	s := printer.Sprintf("%d", amount.Truncate(0).IntPart())
	if c := strings.TrimSpace(currency); c != "" {
		return s + " " + c
	}
	return s
}
