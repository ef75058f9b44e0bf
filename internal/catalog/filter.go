package catalog

import (
	"math"
	"slices"
	"strings"

	"toyshop/internal/models"
)

// searchFields are the product fields covered by text search, in both languages.
var searchFields = []string{"name", "nameHe", "description", "descriptionHe", "category", "categoryHe"}

// FilterCriteria is a set of user-selected product restrictions. Each set axis is skipped when
// empty; the price range always applies.
type FilterCriteria struct {
	Genders    Set[models.GenderCode] `json:"genders"`
	Brands     Set[string]            `json:"brands"`
	AgeGroups  Set[string]            `json:"ageGroups"`
	PriceRange [2]float64             `json:"priceRange"`
	SearchText string                 `json:"searchText"`
}

// PriceRangeOf returns an ordered [lo, hi] pair.
func PriceRangeOf(a, b float64) [2]float64 {
	if a > b {
		a, b = b, a
	}
	return [2]float64{a, b}
}

// DefaultCriteria restricts nothing: empty sets and the observed price range of products.
func DefaultCriteria(products []models.Product) FilterCriteria {
	lo, hi, _ := PriceBounds(products)
	return FilterCriteria{
		Genders:    Set[models.GenderCode]{},
		Brands:     Set[string]{},
		AgeGroups:  Set[string]{},
		PriceRange: [2]float64{lo, hi},
	}
}

// Clone deep-copies the criteria.
func (c FilterCriteria) Clone() FilterCriteria {
	return FilterCriteria{
		Genders:    c.Genders.Clone(),
		Brands:     c.Brands.Clone(),
		AgeGroups:  c.AgeGroups.Clone(),
		PriceRange: c.PriceRange,
		SearchText: c.SearchText,
	}
}

// Filter returns the products passing every axis of criteria. The input is not modified.
func Filter(products []models.Product, criteria FilterCriteria, locale Locale) []models.Product {
	text := newTextMatcher(locale, criteria.SearchText)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !criteria.matchBrand(p) ||
			!criteria.matchAgeGroup(p) ||
			!criteria.matchGender(p) ||
			!criteria.matchPrice(p) ||
			!text.match(p, searchFields) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c FilterCriteria) matchBrand(p models.Product) bool {
	if len(c.Brands) == 0 {
		return true
	}
	return p.Brand != nil && c.Brands.Has(*p.Brand)
}

func (c FilterCriteria) matchAgeGroup(p models.Product) bool {
	return len(c.AgeGroups) == 0 || c.AgeGroups.Has(p.AgeGroup)
}

// Products carry normalised gender codes, so membership is a direct code lookup.
func (c FilterCriteria) matchGender(p models.Product) bool {
	if len(c.Genders) == 0 {
		return true
	}
	return p.Gender.Known() && c.Genders.Has(p.Gender)
}

func (c FilterCriteria) matchPrice(p models.Product) bool {
	v, ok := p.Price.Float()
	if !ok {
		return false
	}
	return c.PriceRange[0] <= v && v <= c.PriceRange[1]
}

// PriceBounds returns the lowest and highest numeric price in products. ok is false when no
// product has a numeric price, in which case both bounds are zero.
func PriceBounds(products []models.Product) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range products {
		v, valid := p.Price.Float()
		if !valid {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// Facets lists the filter options present in a product collection.
type Facets struct {
	Brands    []string            `json:"brands"`
	AgeGroups []string            `json:"ageGroups"`
	Genders   []models.GenderCode `json:"genders"`
	MinPrice  float64             `json:"minPrice"`
	MaxPrice  float64             `json:"maxPrice"`
}

// CollectFacets gathers distinct brands, age groups and genders, plus the price bounds.
// Age groups and genders keep their canonical order.
func CollectFacets(products []models.Product) Facets {
	brands := Set[string]{}
	ages := Set[string]{}
	genders := Set[models.GenderCode]{}
	for _, p := range products {
		if b := strings.TrimSpace(p.BrandName()); b != "" {
			brands[b] = struct{}{}
		}
		if p.AgeGroup != "" {
			ages[p.AgeGroup] = struct{}{}
		}
		if p.Gender.Known() {
			genders[p.Gender] = struct{}{}
		}
	}
	lo, hi, _ := PriceBounds(products)

	f := Facets{
		Brands:    brands.Values(),
		AgeGroups: make([]string, 0, len(ages)),
		Genders:   make([]models.GenderCode, 0, len(genders)),
		MinPrice:  lo,
		MaxPrice:  hi,
	}
	for _, a := range models.AgeGroups {
		if ages.Has(a) {
			f.AgeGroups = append(f.AgeGroups, a)
		}
	}
	// Legacy bands outside the canonical list go last.
	for _, a := range ages.Values() {
		if !slices.Contains(models.AgeGroups, a) {
			f.AgeGroups = append(f.AgeGroups, a)
		}
	}
	for _, g := range models.GenderCodes {
		if genders.Has(g) {
			f.Genders = append(f.Genders, g)
		}
	}
	return f
}
