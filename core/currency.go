package core

import "strconv"

// Supported currencies.
const (
	CurrencyUSD = "USD"
	CurrencyZWL = "ZWL"
)

// GetCurrency returns the active currency preference, falling back to the
// configured default when none is stored.
func GetCurrency(store Store) string {
	var curr string
	if !store.Read(KeyCurrency, &curr) || curr == "" {
		return Conf.DefaultCurrency
	}
	return curr
}

// ChangeCurrency persists a new currency preference.
func ChangeCurrency(store Store, currency string) bool {
	return store.Write(KeyCurrency, currency)
}

// CurrencySymbol returns the display symbol for a currency.
func CurrencySymbol(currency string) string {
	if currency == CurrencyZWL {
		return "Z$"
	}
	return "$"
}

// FormatAmount renders a stored fee amount with the currency symbol and
// thousands separators. Amounts are stored as strings; non-numeric values
// are treated as 0, and the "-" placeholder passes through untouched.
func FormatAmount(amount, currency string) string {
	if amount == "-" {
		return "-"
	}
	n, err := strconv.Atoi(amount)
	if err != nil {
		n = 0
	}
	return CurrencySymbol(currency) + groupDigits(n)
}

func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
