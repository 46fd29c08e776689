// Package hebrew converts between Hebrew and Gregorian dates and parses
// Hebrew date text written with gematria numerals.
package hebrew

import "strings"

// gematriaValues maps each Hebrew letter to its numeric value. Final
// forms carry the value of the base letter.
var gematriaValues = map[rune]int{
	'א': 1,
	'ב': 2,
	'ג': 3,
	'ד': 4,
	'ה': 5,
	'ו': 6,
	'ז': 7,
	'ח': 8,
	'ט': 9,
	'י': 10,
	'כ': 20,
	'ך': 20,
	'ל': 30,
	'מ': 40,
	'ם': 40,
	'נ': 50,
	'ן': 50,
	'ס': 60,
	'ע': 70,
	'פ': 80,
	'ף': 80,
	'צ': 90,
	'ץ': 90,
	'ק': 100,
	'ר': 200,
	'ש': 300,
	'ת': 400,
}

// CleanText trims whitespace, drops quote marks used as gershayim, and
// normalizes the apostrophe variants used as geresh to a single form.
func CleanText(text string) string {
	text = strings.TrimSpace(text)
	replacer := strings.NewReplacer(
		`"`, "",
		"״", "",
		"'", "’",
		"`", "’",
		"׳", "’",
	)
	return replacer.Replace(text)
}

// GematriaToNumber sums the letter values of text. Runes without a
// gematria value are ignored, so punctuation never affects the sum.
func GematriaToNumber(text string) int {
	total := 0
	for _, r := range CleanText(text) {
		total += gematriaValues[r]
	}
	return total
}

// YearToNumber reads a Hebrew year written in gematria, such as תשפ״ה
// for 5785. A leading שנת prefix and a leading ה millennium marker are
// stripped, and values under 1000 are taken as shorthand for the sixth
// millennium. Returns 0 when text contains no Hebrew letters.
func YearToNumber(text string) int {
	cleaned := CleanText(text)
	cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "שנת"))

	runes := []rune(cleaned)
	if len(runes) > 1 && runes[0] == 'ה' {
		cleaned = string(runes[1:])
	}

	value := GematriaToNumber(cleaned)
	if value == 0 {
		return 0
	}
	if value < 1000 {
		value += 5000
	}
	return value
}
