package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"

	"toyshop/internal/models"
)

// SortKey selects a product ordering.
type SortKey string

const (
	SortPopular   SortKey = "popular"
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
	SortNameAsc   SortKey = "nameAsc"
	SortNameDesc  SortKey = "nameDesc"
)

// SortKeys lists every supported key.
var SortKeys = []SortKey{SortPopular, SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc}

// ParseSortKey maps a wire value to a SortKey, case-insensitively. Unknown values yield
// SortPopular.
func ParseSortKey(s string) SortKey {
	s = strings.TrimSpace(s)
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return SortPopular
}

// Sort orders a copy of products by key using the default locale for name comparison.
func Sort(products []models.Product, key SortKey) []models.Product {
	return SortLocalized(products, key, DefaultLocale)
}

// SortLocalized orders a copy of products by key. The sort is stable, so equal elements keep
// their input order. Name keys compare with the collation rules of locale. Unknown keys return
// the copy unsorted.
func SortLocalized(products []models.Product, key SortKey, locale Locale) []models.Product {
	out := slices.Clone(products)
	if fn := comparator(key, locale); fn != nil {
		slices.SortStableFunc(out, fn)
	}
	return out
}

func comparator(key SortKey, locale Locale) func(a, b models.Product) int {
	switch key {
	case SortPopular:
		return func(a, b models.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		}
	case SortNewest:
		return func(a, b models.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	case SortPriceAsc:
		return func(a, b models.Product) int {
			return cmp.Compare(priceOrZero(a), priceOrZero(b))
		}
	case SortPriceDesc:
		return func(a, b models.Product) int {
			return cmp.Compare(priceOrZero(b), priceOrZero(a))
		}
	case SortNameAsc:
		col := collate.New(locale.Tag())
		return func(a, b models.Product) int {
			return col.CompareString(a.Name, b.Name)
		}
	case SortNameDesc:
		col := collate.New(locale.Tag())
		return func(a, b models.Product) int {
			return col.CompareString(b.Name, a.Name)
		}
	}
	return nil
}

func priceOrZero(p models.Product) float64 {
	v, _ := p.Price.Float()
	return v
}
