package catalog

import (
	"slices"

	"toyshop/internal/models"
)

// DefaultPageSize is the first of PageSizes.
const DefaultPageSize = 24

// PageSizes are the page sizes a shopper can pick.
var PageSizes = []int{24, 48, 96}

// Page is one slice of a result set.
type Page struct {
	Items      []models.Product `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// NormalizePageSize returns size when it is one of PageSizes, DefaultPageSize otherwise.
func NormalizePageSize(size int) int {
	if slices.Contains(PageSizes, size) {
		return size
	}
	return DefaultPageSize
}

// TotalPages is max(1, ceil(n/pageSize)).
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return 1 + (n-1)/pageSize
}

// Paginate returns items [(page-1)*pageSize, page*pageSize). A page outside
// [1, TotalPages] yields no items; clamping page is the caller's job.
func Paginate(products []models.Product, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(products)
	p := Page{
		Items:      []models.Product{},
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
	if page < 1 || page > p.TotalPages {
		return p
	}
	start := (page - 1) * pageSize
	if start >= total {
		return p
	}
	end := start + min(pageSize, total-start)
	p.Items = slices.Clone(products[start:end])
	return p
}

// PageState is the shopper's page position.
type PageState struct {
	PageSize int `json:"pageSize"`
	Page     int `json:"page"`
}

// NewPageState starts on page 1 with the default page size.
func NewPageState() PageState {
	return PageState{PageSize: DefaultPageSize, Page: 1}
}

// WithPageSize switches page size and returns to page 1.
func (s PageState) WithPageSize(size int) PageState {
	return PageState{PageSize: NormalizePageSize(size), Page: 1}
}

// Reset returns to page 1. Any change of filters, sort key or page size resets the page.
func (s PageState) Reset() PageState {
	s.Page = 1
	return s
}

// Clamp keeps page inside [1, TotalPages(resultCount)]. A page past the end goes back to 1,
// not to the last page.
func (s PageState) Clamp(resultCount int) PageState {
	s.PageSize = NormalizePageSize(s.PageSize)
	if s.Page < 1 || s.Page > TotalPages(resultCount, s.PageSize) {
		s.Page = 1
	}
	return s
}
