package catalog

import "toyshop/internal/models"

// FilterSession owns the staged and applied filter criteria of one shopper, together with the
// sort key and page position. It is not safe for concurrent use.
//
// Staged criteria are edited while the filter panel is open and only take effect on Confirm.
// Every change to the applied criteria, sort key or page size returns to page 1.
type FilterSession struct {
	products []models.Product
	applied  FilterCriteria
	staged   FilterCriteria
	open     bool
	sort     SortKey
	page     PageState
}

// View is a rendered result page.
type View struct {
	Page
	Sort      SortKey        `json:"sort"`
	Criteria  FilterCriteria `json:"criteria"`
	Facets    Facets         `json:"facets"`
	PanelOpen bool           `json:"panelOpen"`
}

// NewFilterSession starts with default criteria over products, sorted by popularity.
func NewFilterSession(products []models.Product) *FilterSession {
	defaults := DefaultCriteria(products)
	return &FilterSession{
		products: products,
		applied:  defaults,
		staged:   defaults.Clone(),
		sort:     SortPopular,
		page:     NewPageState(),
	}
}

// Open seeds the staged criteria from the applied ones and opens the panel.
func (s *FilterSession) Open() {
	s.staged = s.applied.Clone()
	s.open = true
}

// Cancel closes the panel and drops staged edits.
func (s *FilterSession) Cancel() {
	s.staged = s.applied.Clone()
	s.open = false
}

// IsOpen reports whether the panel is open.
func (s *FilterSession) IsOpen() bool { return s.open }

func (s *FilterSession) ToggleGender(g models.GenderCode) {
	s.staged.Genders = s.staged.Genders.Toggle(g)
}

func (s *FilterSession) ToggleBrand(brand string) {
	s.staged.Brands = s.staged.Brands.Toggle(brand)
}

func (s *FilterSession) ToggleAgeGroup(age string) {
	s.staged.AgeGroups = s.staged.AgeGroups.Toggle(age)
}

func (s *FilterSession) SetPriceRange(lo, hi float64) {
	s.staged.PriceRange = PriceRangeOf(lo, hi)
}

func (s *FilterSession) SetSearchText(q string) {
	s.staged.SearchText = q
}

// Reset clears the staged criteria to defaults. The applied criteria are untouched until Confirm.
func (s *FilterSession) Reset() {
	s.staged = DefaultCriteria(s.products)
}

// Confirm applies the staged criteria, closes the panel and returns to page 1.
func (s *FilterSession) Confirm() {
	s.applied = s.staged.Clone()
	s.open = false
	s.page = s.page.Reset()
}

// Staged returns a copy of the criteria being edited.
func (s *FilterSession) Staged() FilterCriteria { return s.staged.Clone() }

// Applied returns a copy of the criteria in effect.
func (s *FilterSession) Applied() FilterCriteria { return s.applied.Clone() }

// SetSort changes the sort key. Unknown keys fall back to SortPopular.
func (s *FilterSession) SetSort(key SortKey) {
	s.sort = ParseSortKey(string(key))
	s.page = s.page.Reset()
}

func (s *FilterSession) SetPageSize(size int) {
	s.page = s.page.WithPageSize(size)
}

// SetPage moves to page n. Out-of-range pages are clamped by View.
func (s *FilterSession) SetPage(n int) {
	s.page.Page = n
}

// SetProducts replaces the product collection. Applied criteria are reset to the new
// collection's defaults, since the previous price range may no longer overlap it.
func (s *FilterSession) SetProducts(products []models.Product) {
	s.products = products
	s.applied = DefaultCriteria(products)
	s.staged = s.applied.Clone()
	s.page = s.page.Reset()
}

// PageState returns the current page position.
func (s *FilterSession) PageState() PageState { return s.page }

// View runs filter, sort and paginate over the collection with the applied criteria.
func (s *FilterSession) View(locale Locale) View {
	filtered := Filter(s.products, s.applied, locale)
	sorted := SortLocalized(filtered, s.sort, locale)
	s.page = s.page.Clamp(len(sorted))
	return View{
		Page:      Paginate(sorted, s.page.Page, s.page.PageSize),
		Sort:      s.sort,
		Criteria:  s.applied.Clone(),
		Facets:    CollectFacets(s.products),
		PanelOpen: s.open,
	}
}
