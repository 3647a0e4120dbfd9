package domain

// CurrencyCode identifies a supported wallet currency.
type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	KES CurrencyCode = "KES"
	UGX CurrencyCode = "UGX"
	TZS CurrencyCode = "TZS"
	SSP CurrencyCode = "SSP"
)

// DefaultCurrency is the currency of the wallet opened at signup and the
// currency assumed by deposit/withdraw when none is given.
const DefaultCurrency = USD

// IsSupportedCurrency reports whether code is one of the supported wallet
// currencies.
func IsSupportedCurrency(code CurrencyCode) bool {
	switch code {
	case USD, KES, UGX, TZS, SSP:
		return true
	}
	return false
}

// RatePairKey builds the directional lookup key used by the exchange-rate
// table, e.g. "USD_KES". Rates are directional; a missing reverse entry is
// a configuration error, not something derived automatically.
func RatePairKey(from, to CurrencyCode) string {
	return string(from) + "_" + string(to)
}
