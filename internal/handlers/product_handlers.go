package handlers

import (
	"net/http"
	"strings"

	"toyshop/internal/catalog"
	"toyshop/internal/common"
	"toyshop/internal/middleware"
	"toyshop/internal/models"
	"toyshop/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
	logger         *zap.Logger
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService, logger *zap.Logger) *ProductHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandlers{
		productService: productService,
		logger:         logger,
	}
}

// ListProducts returns the catalog. admin=true includes hidden products and needs a token.
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Param		admin	query	bool	false	"Include hidden products"
//	@Success	200		{array}	models.Product
//	@Router		/api/products [get]
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	admin := c.QueryParam("admin") == "true"
	if admin {
		if _, ok := common.GetUserIDFromContext(c.Request().Context()); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized access")
		}
	}

	products, err := h.productService.List(c.Request().Context(), admin)
	if err != nil {
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// BrowseProducts filters, sorts and paginates the visible catalog.
//
//	@Summary	Browse the catalog
//	@Tags		products
//	@Produce	json
//	@Param		gender		query		[]string	false	"Gender codes or labels"	collectionFormat(multi)
//	@Param		brand		query		[]string	false	"Brands"					collectionFormat(multi)
//	@Param		age			query		[]string	false	"Age groups"				collectionFormat(multi)
//	@Param		minPrice	query		number		false	"Lowest price"
//	@Param		maxPrice	query		number		false	"Highest price"
//	@Param		q			query		string		false	"Search text"
//	@Param		sort		query		string		false	"popular, newest, priceAsc, priceDesc, nameAsc or nameDesc"
//	@Param		page		query		int			false	"Page, from 1"
//	@Param		pageSize	query		int			false	"24, 48 or 96"
//	@Param		lang		query		string		false	"en or he"
//	@Success	200			{object}	catalog.Page
//	@Router		/api/catalog/products [get]
func (h *ProductHandlers) BrowseProducts(c echo.Context) error {
	var (
		q                  services.BrowseQuery
		minPrice, maxPrice float64
	)
	err := echo.QueryParamsBinder(c).
		Strings("gender", &q.Genders).
		Strings("brand", &q.Brands).
		Strings("age", &q.AgeGroups).
		Float64("minPrice", &minPrice).
		Float64("maxPrice", &maxPrice).
		String("q", &q.Search).
		String("sort", &q.Sort).
		Int("page", &q.Page).
		Int("pageSize", &q.PageSize).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if c.QueryParam("minPrice") != "" {
		q.MinPrice = &minPrice
	}
	if c.QueryParam("maxPrice") != "" {
		q.MaxPrice = &maxPrice
	}
	q.Genders = splitValues(q.Genders)
	q.Brands = splitValues(q.Brands)
	q.AgeGroups = splitValues(q.AgeGroups)
	for _, g := range q.Genders {
		if _, ok := models.NormalizeGender(g); !ok {
			return common.SendValidationError(c, "gender", "unknown gender "+g)
		}
	}
	q.Locale = middleware.LocaleFrom(c)

	page, err := h.productService.Browse(c.Request().Context(), q)
	if err != nil {
		return h.serverError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// FacetsResponse is what the filter panel needs to render its options.
type FacetsResponse struct {
	catalog.Facets
	GenderLabels map[models.GenderCode]string `json:"genderLabels"`
	SortKeys     []catalog.SortKey            `json:"sortKeys"`
	PageSizes    []int                        `json:"pageSizes"`
}

// GetFacets lists the filter options of the visible catalog.
//
//	@Summary	Filter panel options
//	@Tags		products
//	@Produce	json
//	@Param		lang	query		string	false	"en or he"
//	@Success	200		{object}	FacetsResponse
//	@Router		/api/catalog/facets [get]
func (h *ProductHandlers) GetFacets(c echo.Context) error {
	facets, err := h.productService.Facets(c.Request().Context())
	if err != nil {
		return h.serverError(c, err)
	}
	locale := string(middleware.LocaleFrom(c))
	labels := make(map[models.GenderCode]string, len(models.GenderCodes))
	for _, g := range models.GenderCodes {
		labels[g] = g.Label(locale)
	}
	return c.JSON(http.StatusOK, FacetsResponse{
		Facets:       facets,
		GenderLabels: labels,
		SortKeys:     catalog.SortKeys,
		PageSizes:    catalog.PageSizes,
	})
}

// splitValues accepts both repeated parameters and comma separated lists.
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (h *ProductHandlers) serverError(c echo.Context, err error) error {
	h.logger.Error("product request failed",
		zap.String("path", c.Path()),
		zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}
