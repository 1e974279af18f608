package internal

import "strings"

// English number words
var (
	spellOnes = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	spellTens = []string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	spellScales = []string{
		"", "thousand", "million", "billion", "trillion", "quadrillion", "quintillion",
	}
)

// Spell-out word constants
const (
	SpellMinus     = "minus"
	SpellHundred   = "hundred"
	SpellHyphen    = "-"
	SpellSeparator = " "
)

// SpellOut renders n as English cardinal words, e.g. 38 -> "thirty-eight",
// 1234 -> "one thousand two hundred thirty-four".
func SpellOut(n int64) string {
	if n == 0 {
		return spellOnes[0]
	}

	var words []string
	// Work on the magnitude as uint64 so that math.MinInt64 is representable.
	mag := uint64(n)
	if n < 0 {
		words = append(words, SpellMinus)
		mag = uint64(-(n + 1)) + 1
	}

	var groups []uint64
	for mag > 0 {
		groups = append(groups, mag%1000)
		mag /= 1000
	}

	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] == 0 {
			continue
		}
		words = append(words, spellHundreds(int(groups[i]))...)
		if spellScales[i] != StringValueEmpty {
			words = append(words, spellScales[i])
		}
	}
	return strings.Join(words, SpellSeparator)
}

// spellHundreds spells a value in [1, 999].
func spellHundreds(n int) []string {
	var words []string
	if n >= 100 {
		words = append(words, spellOnes[n/100], SpellHundred)
		n %= 100
	}
	switch {
	case n == 0:
	case n < 20:
		words = append(words, spellOnes[n])
	case n%10 == 0:
		words = append(words, spellTens[n/10])
	default:
		words = append(words, spellTens[n/10]+SpellHyphen+spellOnes[n%10])
	}
	return words
}
