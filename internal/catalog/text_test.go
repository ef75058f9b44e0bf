package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"toyshop/internal/models"
)

func TestResolve_PrefersAlternateInAltLocale(t *testing.T) {
	c := models.Category{Name: "Car", NameHe: strPtr("מכונית")}

	assert.Equal(t, "מכונית", Resolve(c, "name", "nameHe", LocaleHebrew))
	assert.Equal(t, "Car", Resolve(c, "name", "nameHe", LocaleEnglish))
}

func TestResolve_FallsBackToPrimary(t *testing.T) {
	tests := []struct {
		name   string
		nameHe *string
		want   string
	}{
		{"Car", strPtr(""), "Car"},
		{"Car", strPtr("   "), "Car"},
		{"Car", nil, "Car"},
		{"  Car  ", nil, "Car"},
		{"", nil, ""},
	}
	for _, tt := range tests {
		c := models.Category{Name: tt.name, NameHe: tt.nameHe}
		assert.Equal(t, tt.want, Resolve(c, "name", "nameHe", LocaleHebrew))
	}
}

func TestResolve_TrimsAlternate(t *testing.T) {
	c := models.Category{Name: "Car", NameHe: strPtr("  מכונית ")}
	assert.Equal(t, "מכונית", Resolve(c, "name", "nameHe", LocaleHebrew))
}

func TestResolve_NilRecordAndUnknownFields(t *testing.T) {
	assert.Equal(t, "", Resolve(nil, "name", "nameHe", LocaleHebrew))
	assert.Equal(t, "", Resolve(models.Category{Name: "x"}, "missing", "nameHe", LocaleEnglish))
	assert.Equal(t, "x", Resolve(models.Category{Name: "x"}, "name", "", LocaleHebrew))
}

func TestMatches(t *testing.T) {
	p := models.Product{
		Name:        "Fire Truck",
		NameHe:      strPtr("כבאית"),
		Description: "Red LADDER",
		Category:    models.CategoryRef{Name: "Vehicles"},
	}

	assert.True(t, Matches(p, "", "name"))
	assert.True(t, Matches(p, "truck", "name"))
	assert.True(t, Matches(p, "TRUCK", "name"))
	assert.True(t, Matches(p, " truck", "name"))
	assert.False(t, Matches(p, "truck ", "name"))
	assert.True(t, Matches(p, "כבא", "name", "nameHe"))
	assert.True(t, Matches(p, "ladder", "name", "description"))
	assert.True(t, Matches(p, "vehic", "category"))
	assert.False(t, Matches(p, "ladder", "name"))
	assert.False(t, Matches(p, "doll", "name", "nameHe", "description", "category"))
	assert.False(t, Matches(nil, "x", "name"))
}

func TestMatches_QueryIsNotTrimmed(t *testing.T) {
	racecar := models.Product{Name: "Racecar"}
	toyCar := models.Product{Name: "Toy car"}

	assert.True(t, Matches(racecar, "car", "name"))
	assert.False(t, Matches(racecar, " car", "name"))
	assert.True(t, Matches(toyCar, " CAR", "name"))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleHebrew, ParseLocale("he"))
	assert.Equal(t, LocaleHebrew, ParseLocale("he-IL"))
	assert.Equal(t, LocaleHebrew, ParseLocale("iw"))
	assert.Equal(t, LocaleEnglish, ParseLocale("en-US"))
	assert.Equal(t, LocaleEnglish, ParseLocale("fr"))
	assert.Equal(t, LocaleEnglish, ParseLocale(""))
	assert.Equal(t, LocaleEnglish, ParseLocale("not a tag!"))
}

func TestNegotiateLocale(t *testing.T) {
	assert.Equal(t, LocaleHebrew, NegotiateLocale("he-IL,he;q=0.9,en;q=0.8"))
	assert.Equal(t, LocaleEnglish, NegotiateLocale("en-GB,en;q=0.9"))
	assert.Equal(t, LocaleEnglish, NegotiateLocale(""))
}
