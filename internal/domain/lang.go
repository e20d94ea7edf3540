package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is used when no language tag is given.
const DefaultLang = "en"

// NormalizeLang parses a BCP 47 tag and returns its canonical form,
// e.g. "EN-us" becomes "en-US". An empty tag yields DefaultLang.
func NormalizeLang(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return DefaultLang, nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, tag)
	}
	return t.String(), nil
}

// NormalizeSlug trims surrounding whitespace and slashes; an empty slug
// becomes "home".
func NormalizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return "home"
	}
	return slug
}
