package services

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords converts a non-negative rupee amount into its formal
// words representation using the Indian numbering system, e.g.
// "Rupees One Lakh Fifty Thousand Only". Fractional paise are floored
// away; zero and negative inputs yield the fixed zero string.
func AmountInWords(amount float64) string {
	n := int64(math.Floor(amount))
	if n <= 0 {
		return "Rupees Zero Only"
	}
	return "Rupees " + integerWords(n) + " Only"
}

// integerWords spells out a positive integer in crore/lakh/thousand/
// hundred groups. Amounts of one hundred crore or more recurse on the
// crore count.
func integerWords(n int64) string {
	var parts []string

	if c := n / 10000000; c > 0 {
		parts = append(parts, integerWords(c), "Crore")
		n %= 10000000
	}
	if l := n / 100000; l > 0 {
		parts = append(parts, twoDigitWords(l), "Lakh")
		n %= 100000
	}
	if t := n / 1000; t > 0 {
		parts = append(parts, twoDigitWords(t), "Thousand")
		n %= 1000
	}
	if h := n / 100; h > 0 {
		parts = append(parts, onesWords[h], "Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and")
		}
		parts = append(parts, twoDigitWords(n))
	}

	return strings.Join(parts, " ")
}

// twoDigitWords spells out 1..99.
func twoDigitWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}
