// Package catalog holds the storefront's category tree, ordering, filter, sort and pagination
// engine. Everything here works on in-memory slices and returns new slices; nothing blocks.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Locale is a storefront display language.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleHebrew  Locale = "he"

	// DefaultLocale is the language of the primary text fields.
	DefaultLocale = LocaleEnglish
	// AltLocale is the language of the *He alternate fields.
	AltLocale = LocaleHebrew
)

var (
	supportedTags = []language.Tag{language.English, language.Hebrew}
	localeMatcher = language.NewMatcher(supportedTags)
)

// Tag returns the BCP 47 tag of the locale.
func (l Locale) Tag() language.Tag {
	if l == LocaleHebrew {
		return language.Hebrew
	}
	return language.English
}

// ParseLocale maps a language tag such as "he-IL" or "iw" to a supported locale.
// Anything unparseable or unsupported resolves to DefaultLocale.
func ParseLocale(s string) Locale {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLocale
	}
	base, _ := tag.Base()
	switch base.String() {
	case "he", "iw":
		return LocaleHebrew
	}
	return DefaultLocale
}

// NegotiateLocale picks the best supported locale for an Accept-Language header.
func NegotiateLocale(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	if supportedTags[idx] == language.Hebrew {
		return LocaleHebrew
	}
	return LocaleEnglish
}

// FieldSource is a record whose text fields can be read by name.
type FieldSource interface {
	Field(name string) string
}

// Resolve returns the display string of record for locale. The alternate field wins only when
// locale is AltLocale and the alternate value is non-blank; otherwise the primary field is used.
// Missing fields resolve to "".
func Resolve(record FieldSource, primaryField, altField string, locale Locale) string {
	if record == nil {
		return ""
	}
	var alt string
	if altField != "" {
		alt = record.Field(altField)
	}
	return ResolveText(record.Field(primaryField), alt, locale)
}

// ResolveText applies the Resolve fallback chain to two already-extracted strings.
func ResolveText(primary, alt string, locale Locale) string {
	if locale == AltLocale {
		if a := strings.TrimSpace(alt); a != "" {
			return a
		}
	}
	return strings.TrimSpace(primary)
}

// Matches reports whether any of the named fields of record contains query, ignoring case.
// The query is used as given, surrounding spaces included. An empty query matches everything.
func Matches(record FieldSource, query string, fields ...string) bool {
	return newTextMatcher(DefaultLocale, query).match(record, fields)
}

type textMatcher struct {
	caser cases.Caser
	query string
}

func newTextMatcher(locale Locale, query string) *textMatcher {
	caser := cases.Lower(locale.Tag())
	return &textMatcher{
		caser: caser,
		query: caser.String(query),
	}
}

func (m *textMatcher) match(record FieldSource, fields []string) bool {
	if m.query == "" {
		return true
	}
	if record == nil {
		return false
	}
	for _, f := range fields {
		v := record.Field(f)
		if v == "" {
			continue
		}
		if strings.Contains(m.caser.String(v), m.query) {
			return true
		}
	}
	return false
}
