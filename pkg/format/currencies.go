package format

import "slices"

// localeCurrency suggests a currency for the locales offered when setting preferences.
var localeCurrency = map[string]string{
	"en-GB": "GBP",
	"en-IE": "EUR",
	"en-US": "USD",
	"hu-HU": "HUF",
	"pl-PL": "PLN",
	"cs-CZ": "CZK",
	"sk-SK": "EUR",
	"sl-SI": "EUR",
	"hr-HR": "EUR",
	"ro-RO": "RON",
	"bg-BG": "BGN",
	"sr-RS": "RSD",
	"sv-SE": "SEK",
	"nb-NO": "NOK",
	"da-DK": "DKK",
	"fi-FI": "EUR",
	"is-IS": "ISK",
	"de-DE": "EUR",
	"nl-NL": "EUR",
	"de-AT": "EUR",
	"de-CH": "CHF",
	"fr-FR": "EUR",
	"es-ES": "EUR",
	"it-IT": "EUR",
	"pt-PT": "EUR",
	"el-GR": "EUR",
	"tr-TR": "TRY",
	"ru-RU": "RUB",
}

// SuggestCurrency returns the usual currency of locale, or false for locales not offered.
func SuggestCurrency(locale string) (string, bool) {
	c, ok := localeCurrency[locale]
	return c, ok
}

func SupportedLocales() []string {
	locales := make([]string, 0, len(localeCurrency))
	for l := range localeCurrency {
		locales = append(locales, l)
	}
	slices.Sort(locales)
	return locales
}

func SupportedCurrencies() []string {
	var currencies []string
	for _, c := range localeCurrency {
		if !slices.Contains(currencies, c) {
			currencies = append(currencies, c)
		}
	}
	slices.Sort(currencies)
	return currencies
}
