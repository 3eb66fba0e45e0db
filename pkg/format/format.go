// Package format renders amounts and hours for display according to an owner's preferences.
// Formatting never changes stored values; rounding happens on the way out only.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale   = "en-GB"
	DefaultCurrency = "GBP"
	MaxPrecision    = 10
	hoursPrecision  = 1
	noBreakSpace    = "\u00a0"
)

// Preferences selects how numbers are written. It mirrors the stored user preferences.
type Preferences struct {
	Currency  string
	Locale    string
	Precision int
}

type Formatter func(float64) string

type Formatters struct {
	Currency Formatter
	Hours    Formatter
}

// Languages that write the currency symbol after the amount.
var symbolAfterAmount = map[string]bool{
	"bg": true, "cs": true, "da": true, "de": true, "el": true, "es": true, "fi": true,
	"fr": true, "hr": true, "hu": true, "is": true, "it": true, "nb": true, "no": true,
	"pl": true, "pt": true, "ro": true, "ru": true, "sk": true, "sl": true, "sr": true,
	"sv": true,
}

// NewFormatters builds the currency and hours formatters for p. An unknown locale falls back to
// DefaultLocale and an unknown currency is written as its code.
func NewFormatters(p Preferences) Formatters {
	tag := resolveLocale(p.Locale)
	printer := message.NewPrinter(tag)
	precision := min(max(p.Precision, 0), MaxPrecision)

	symbol := strings.ToUpper(strings.TrimSpace(p.Currency))
	separator := noBreakSpace
	minDigits := precision
	if unit, err := currency.ParseISO(symbol); err == nil {
		if local := printer.Sprint(currency.Symbol(unit)); local != unit.String() {
			symbol = local
			separator = ""
		}
		scale, _ := currency.Standard.Rounding(unit)
		minDigits = min(precision, scale)
	}
	base, _ := tag.Base()
	after := symbolAfterAmount[base.String()]

	return Formatters{
		Currency: func(v float64) string {
			rounded := round(math.Abs(v), precision)
			amount := printer.Sprint(number.Decimal(rounded,
				number.MinFractionDigits(minDigits),
				number.MaxFractionDigits(precision)))
			sign := ""
			if v < 0 && rounded != 0 {
				sign = "-"
			}
			if after {
				return sign + amount + noBreakSpace + symbol
			}
			return sign + symbol + separator + amount
		},
		Hours: func(v float64) string {
			return printer.Sprint(number.Decimal(round(v, hoursPrecision), number.MaxFractionDigits(hoursPrecision)))
		},
	}
}

// round rounds half away from zero, which the number package does not offer for plain decimals.
func round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	rounded, _ := decimal.NewFromFloat(v).Round(int32(places)).Float64()
	return rounded
}

func resolveLocale(locale string) language.Tag {
	if tag, err := language.Parse(strings.TrimSpace(locale)); err == nil && tag != language.Und {
		return tag
	}
	return language.MustParse(DefaultLocale)
}
