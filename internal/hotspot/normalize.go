// Package hotspot resolves free-text location strings to the canonical
// hotspots of a Registry.
package hotspot

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize trims and collapses whitespace, then capitalises every word of
// every comma separated segment. Segments are rejoined with ", ".
//
//	Normalize(" sector   14 , rewari ") == "Sector 14, Rewari"
func Normalize(raw string) string {
	collapsed := strings.Join(strings.Fields(raw), " ")
	segments := strings.Split(collapsed, ",")
	for i, seg := range segments {
		words := strings.Split(strings.TrimSpace(seg), " ")
		for j, w := range words {
			words[j] = capitalize(w)
		}
		segments[i] = strings.Join(words, " ")
	}
	return strings.Join(segments, ", ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	first, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}
