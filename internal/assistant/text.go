package assistant

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "`", "'")

// fold lowercases s and strips diacritics so "Numéro" and "numero" compare equal.
// A transform chain keeps state, so each call builds its own.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(apostrophes.Replace(out))
}

// foldIndexed folds s rune by rune like fold and also returns, for every byte of the
// folded string, the offset in s of the rune that produced it. offsets has one extra
// entry equal to len(s), so a folded match [a, b) maps back to s[offsets[a]:offsets[b]].
// Combining marks produce no output and end up inside the span of the preceding rune.
func foldIndexed(s string) (string, []int) {
	var b strings.Builder
	offsets := make([]int, 0, len(s)+1)
	for i, r := range s {
		for _, d := range norm.NFD.String(string(r)) {
			if unicode.Is(unicode.Mn, d) {
				continue
			}
			part := strings.ToLower(apostrophes.Replace(string(d)))
			b.WriteString(part)
			for range len(part) {
				offsets = append(offsets, i)
			}
		}
	}
	offsets = append(offsets, len(s))
	return b.String(), offsets
}

// words splits lowercase s on anything that is not a letter.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
