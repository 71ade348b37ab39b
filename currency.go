package paylink

import (
	"slices"
	"strings"
)

// supportedCurrencies lists the currency codes accepted by invoice creation.
var supportedCurrencies = []string{"NGN", "USD", "EUR", "GBP", "GHS", "KES", "ZAR", "XOF"}

// currencySet indexes supportedCurrencies for lookups.
var currencySet = func() map[string]bool {
	set := make(map[string]bool, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		set[c] = true
	}
	return set
}()

// SupportedCurrencies returns the currency codes accepted by Invoices.Create.
func SupportedCurrencies() []string {
	return slices.Clone(supportedCurrencies)
}

// IsSupportedCurrency reports whether code is supported, ignoring case.
func IsSupportedCurrency(code string) bool {
	return currencySet[strings.ToUpper(code)]
}
