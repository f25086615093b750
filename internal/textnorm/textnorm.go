// file: internal/textnorm/textnorm.go
// version: 1.1.0
// guid: 3c9e1f5a-7b2d-4e8f-a160-9d4c2b7e5f31

package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform decomposes to NFD and strips combining marks, leaving all
// other characters untouched.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize lowercases s, decomposes it to NFD and strips combining
// diacritical marks. Idempotent; an empty input yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	folded, _, err := transform.String(foldTransform, s)
	if err != nil {
		// transform only fails on malformed UTF-8; fall back to the
		// lowercased input rather than dropping the value.
		return s
	}
	return folded
}

// Tokenize splits the normalized form of s on runs of non-alphanumeric
// characters and drops empty tokens. Alphanumeric here means [a-z0-9]:
// characters outside that range (including CJK) act as separators.
func Tokenize(s string) []string {
	return strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// TokenSet returns the tokens of s as a membership set.
func TokenSet(s string) map[string]struct{} {
	toks := Tokenize(s)
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t] = struct{}{}
	}
	return set
}

// Slugify turns a title into a stable lowercase identifier: diacritics
// stripped, any run of non-alphanumerics collapsed to a single dash.
// Returns "untitled" when nothing survives.
func Slugify(s string) string {
	folded := Normalize(s)
	var b strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "untitled"
	}
	return out
}
