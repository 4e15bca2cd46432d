package utils

import (
	"fmt"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DescriptionPolicy decides what happens to the customer's description
// before it is embedded in a gateway redirect form.
type DescriptionPolicy string

const (
	// PolicyASCII decomposes accented letters to their base letter and then
	// drops every rune outside ASCII. Cyrillic text is removed entirely.
	PolicyASCII DescriptionPolicy = "ascii"
	// PolicyPreserve passes the description through untouched.
	PolicyPreserve DescriptionPolicy = "preserve"
)

func ParseDescriptionPolicy(s string) (DescriptionPolicy, error) {
	switch p := DescriptionPolicy(s); p {
	case PolicyASCII, PolicyPreserve:
		return p, nil
	case "":
		return PolicyASCII, nil
	default:
		return "", fmt.Errorf("unknown description policy %q", s)
	}
}

func (p DescriptionPolicy) Apply(s string) string {
	if p == PolicyPreserve {
		return s
	}
	return ASCIIOnly(s)
}

func ASCIIOnly(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return out
}
