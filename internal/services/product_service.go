package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"toyshop/internal/caching"
	"toyshop/internal/catalog"
	"toyshop/internal/metrics"
	"toyshop/internal/models"
	"toyshop/internal/repositories"

	"go.uber.org/zap"
)

// BrowseQuery is a server-side catalog request. Empty axes do not restrict; a missing price
// bound defaults to the observed bound of the catalog.
type BrowseQuery struct {
	Genders   []string
	Brands    []string
	AgeGroups []string
	MinPrice  *float64
	MaxPrice  *float64
	Search    string
	Sort      string
	Page      int
	PageSize  int
	Locale    catalog.Locale
}

// Criteria converts the query into filter criteria over products.
func (q BrowseQuery) Criteria(products []models.Product) catalog.FilterCriteria {
	criteria := catalog.DefaultCriteria(products)
	for _, g := range q.Genders {
		if code, ok := models.NormalizeGender(g); ok && !criteria.Genders.Has(code) {
			criteria.Genders = criteria.Genders.Toggle(code)
		}
	}
	for _, b := range q.Brands {
		if b = strings.TrimSpace(b); b != "" && !criteria.Brands.Has(b) {
			criteria.Brands = criteria.Brands.Toggle(b)
		}
	}
	for _, a := range q.AgeGroups {
		if a = strings.TrimSpace(a); a != "" && !criteria.AgeGroups.Has(a) {
			criteria.AgeGroups = criteria.AgeGroups.Toggle(a)
		}
	}
	lo, hi := criteria.PriceRange[0], criteria.PriceRange[1]
	if q.MinPrice != nil {
		lo = *q.MinPrice
	}
	if q.MaxPrice != nil {
		hi = *q.MaxPrice
	}
	criteria.PriceRange = catalog.PriceRangeOf(lo, hi)
	criteria.SearchText = q.Search
	return criteria
}

type ProductService interface {
	List(ctx context.Context, includeHidden bool) ([]models.Product, error)
	Browse(ctx context.Context, query BrowseQuery) (catalog.Page, error)
	Facets(ctx context.Context) (catalog.Facets, error)
	// Warm reloads both product lists into the cache.
	Warm(ctx context.Context) error
}

type productService struct {
	productRepo  repositories.ProductRepository
	cacheService caching.CacheService
	cacheTTL     time.Duration
	logger       *zap.Logger
}

func NewProductService(productRepo repositories.ProductRepository, cacheService caching.CacheService, cacheTTL time.Duration, logger *zap.Logger) ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &productService{
		productRepo:  productRepo,
		cacheService: cacheService,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

func (s *productService) List(ctx context.Context, includeHidden bool) ([]models.Product, error) {
	cached, err := s.cacheService.GetProducts(ctx, includeHidden)
	if err != nil {
		s.logger.Warn("product cache read failed", zap.Error(err))
	} else if cached != nil {
		metrics.CacheHit("products")
		return cached, nil
	}
	metrics.CacheMiss("products")

	products, err := s.productRepo.List(ctx, includeHidden)
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.SetProducts(ctx, includeHidden, products, s.cacheTTL); err != nil {
		s.logger.Warn("product cache write failed", zap.Error(err))
	}
	return products, nil
}

// Browse filters, sorts and paginates the visible catalog. A page outside the result range
// falls back to page 1.
func (s *productService) Browse(ctx context.Context, query BrowseQuery) (catalog.Page, error) {
	products, err := s.List(ctx, false)
	if err != nil {
		return catalog.Page{}, err
	}

	filtered := catalog.Filter(products, query.Criteria(products), query.Locale)
	sorted := catalog.SortLocalized(filtered, catalog.ParseSortKey(query.Sort), query.Locale)
	state := catalog.PageState{PageSize: query.PageSize, Page: query.Page}.Clamp(len(sorted))
	metrics.BrowseResults(len(sorted))

	return catalog.Paginate(sorted, state.Page, state.PageSize), nil
}

func (s *productService) Facets(ctx context.Context) (catalog.Facets, error) {
	products, err := s.List(ctx, false)
	if err != nil {
		return catalog.Facets{}, err
	}
	return catalog.CollectFacets(products), nil
}

func (s *productService) Warm(ctx context.Context) error {
	var errs []error
	for _, includeHidden := range []bool{false, true} {
		products, err := s.productRepo.List(ctx, includeHidden)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.cacheService.SetProducts(ctx, includeHidden, products, s.cacheTTL); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
