package core

// Currency pairs an ISO code with its display symbol.
type Currency struct {
	Code   string
	Symbol string
}

// DefaultCurrency is used when no currency has been chosen.
const DefaultCurrency = "USD"

const fallbackSymbol = "$"

var supportedCurrencies = []Currency{
	{Code: "LKR", Symbol: "Rs."},
	{Code: "USD", Symbol: "$"},
	{Code: "EUR", Symbol: "€"},
	{Code: "GBP", Symbol: "£"},
	{Code: "JPY", Symbol: "¥"},
	{Code: "AUD", Symbol: "A$"},
	{Code: "CAD", Symbol: "C$"},
}

// SupportedCurrencies returns the currencies offered for selection.
func SupportedCurrencies() []Currency {
	return append([]Currency(nil), supportedCurrencies...)
}

// IsSupportedCurrency reports whether code is in the supported table.
func IsSupportedCurrency(code string) bool {
	for _, c := range supportedCurrencies {
		if c.Code == code {
			return true
		}
	}
	return false
}

// SymbolFor returns the symbol for code, or "$" for unknown codes.
func SymbolFor(code string) string {
	for _, c := range supportedCurrencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return fallbackSymbol
}
