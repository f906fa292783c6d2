package translation

import (
	"math"
	"strconv"
	"strings"
)

var arabicDigits = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
)

func localizeDigits(s string, locale Locale) string {
	if locale == Arabic {
		return arabicDigits.Replace(s)
	}
	return s
}

// FormatNumber renders n with Arabic-Indic digits for the Arabic locale.
func FormatNumber(n float64, locale Locale) string {
	return localizeDigits(strconv.FormatFloat(n, 'f', -1, 64), locale)
}

func withCurrency(amount string, locale Locale) string {
	if locale == Arabic {
		return amount + " ريال"
	}
	return "$" + amount
}

// FormatPrice renders a catalog price for display.
func FormatPrice(price float64, locale Locale) string {
	return withCurrency(FormatNumber(price, locale), locale)
}

// RoundCents rounds a money amount to two decimals.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatAmount renders a computed money amount such as a cart total with
// exactly two decimals.
func FormatAmount(amount float64, locale Locale) string {
	return withCurrency(localizeDigits(strconv.FormatFloat(RoundCents(amount), 'f', 2, 64), locale), locale)
}
