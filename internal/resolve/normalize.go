package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a municipality name into a matchable key: fold
// accents, transliterate to Latin, lowercase, strip everything that is not an
// ASCII letter or digit. Accent folding comes first so polytonic spellings
// (Ἀθήνα) reach the same base letters the transliteration table covers. The
// result is idempotent under re-normalization. An empty or whitespace-only
// name yields an empty key, which callers must treat as unindexable.
func Normalize(name string) string {
	folded, _, err := transform.String(stripAccents, name)
	if err != nil {
		folded = name
	}
	s := strings.ToLower(Transliterate(folded))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeGreek strips accents from Greek text and lowercases it. It is the
// normalization used for Greek-to-Greek joins (the population dataset), which
// never goes through the Latin transliteration table.
func NormalizeGreek(text string) string {
	stripped, _, err := transform.String(stripAccents, text)
	if err != nil {
		stripped = text
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}

// BuildIndex maps normalized keys to the original candidate names. The first
// occurrence of a key wins; later duplicates are silently shadowed, so the
// index is deterministic but input-order dependent. Names that normalize to
// the empty key are skipped.
func BuildIndex(names []string) map[string]string {
	index := make(map[string]string, len(names))
	for _, name := range names {
		key := Normalize(name)
		if key == "" {
			continue
		}
		if _, ok := index[key]; !ok {
			index[key] = name
		}
	}
	return index
}
