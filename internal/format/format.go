// Package format renders numbers, money, weights and dates per locale.
package format

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"TRY": "₺",
}

func printer(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// Number formats n with the locale's grouping separators.
func Number(lang string, n int64) string {
	return printer(lang).Sprintf("%d", n)
}

// Currency formats a whole amount with a currency symbol, e.g. "$42,500".
func Currency(lang string, amount int64, code string) string {
	code = strings.ToUpper(code)
	sym, ok := symbols[code]
	if !ok {
		return code + " " + Number(lang, amount)
	}
	if amount < 0 {
		return "-" + sym + Number(lang, -amount)
	}
	return sym + Number(lang, amount)
}

// Tons formats a quantity in metric tons.
func Tons(lang string, q int) string {
	return Number(lang, int64(q)) + " t"
}

// Percent formats a 0..1 fraction as a whole percentage.
func Percent(lang string, f float64) string {
	return printer(lang).Sprintf("%d%%", int(math.Round(f*100)))
}

// Date formats time in a locale-friendly short form.
func Date(t time.Time, lang string) string {
	switch strings.ToLower(lang) {
	case "tr":
		return t.Format("02.01.2006")
	case "ar":
		return t.Format("2006/01/02")
	default:
		return t.Format("Jan 2, 2006")
	}
}
