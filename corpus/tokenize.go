package corpus

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// MinTokenLength is the shortest token, in runes, that counts as a term.
const MinTokenLength = 2

// Tokenize case folds text, splits it on every rune that is neither a letter
// nor a digit and counts the resulting terms. Tokens shorter than
// MinTokenLength and tokens made only of digits are dropped.
func Tokenize(text string) map[string]int {
	// A Caser keeps state, so every call gets its own.
	folded := cases.Fold().String(text)

	counts := make(map[string]int)
	for _, token := range strings.FieldsFunc(folded, isSeparator) {
		if utf8.RuneCountInString(token) < MinTokenLength || isNumber(token) {
			continue
		}
		counts[token]++
	}
	return counts
}

// Length returns the number of tokens behind a set of counts.
func Length(counts map[string]int) int {
	total := 0
	for _, count := range counts {
		total += count
	}
	return total
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func isNumber(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
