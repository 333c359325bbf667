// Package resolve reconciles the two municipality name spaces: the Greek
// census naming scheme and the Latin-transliterated boundary naming scheme.
package resolve

import "strings"

// greekToLatin maps each Greek letter to its Latin approximation. Unmapped
// runes pass through unchanged.
var greekToLatin = map[rune]string{
	'Α': "A", 'Β': "V", 'Γ': "G", 'Δ': "D", 'Ε': "E", 'Ζ': "Z", 'Η': "I", 'Θ': "Th",
	'Ι': "I", 'Κ': "K", 'Λ': "L", 'Μ': "M", 'Ν': "N", 'Ξ': "X", 'Ο': "O", 'Π': "P",
	'Ρ': "R", 'Σ': "S", 'Τ': "T", 'Υ': "Y", 'Φ': "F", 'Χ': "Ch", 'Ψ': "Ps", 'Ω': "O",
	'ά': "a", 'έ': "e", 'ί': "i", 'ό': "o", 'ύ': "y", 'ή': "i", 'ώ': "o", 'ϊ': "i",
	'ϋ': "y", 'ΐ': "i", 'ΰ': "y", 'ς': "s", 'α': "a", 'β': "v", 'γ': "g", 'δ': "d",
	'ε': "e", 'ζ': "z", 'η': "i", 'θ': "th", 'ι': "i", 'κ': "k", 'λ': "l", 'μ': "m",
	'ν': "n", 'ξ': "x", 'ο': "o", 'π': "p", 'ρ': "r", 'σ': "s", 'τ': "t", 'υ': "y",
	'φ': "f", 'χ': "ch", 'ψ': "ps", 'ω': "o",
}

// Transliterate replaces each Greek character with its Latin approximation.
func Transliterate(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if latin, ok := greekToLatin[r]; ok {
			b.WriteString(latin)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
