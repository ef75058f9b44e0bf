package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"toyshop/internal/catalog"
	"toyshop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ProductServiceTestSuite struct {
	suite.Suite
	service      ProductService
	productRepo  *MockProductRepository
	cacheService *MockCacheService
	ctx          context.Context
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.productRepo = &MockProductRepository{}
	suite.cacheService = &MockCacheService{}
	suite.ctx = context.Background()
	suite.service = NewProductService(suite.productRepo, suite.cacheService, testTTL, nil)
}

func (suite *ProductServiceTestSuite) TearDownTest() {
	suite.productRepo.AssertExpectations(suite.T())
	suite.cacheService.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func sampleProducts() []models.Product {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Product{
		{ID: 1, Name: "Fire Truck", NameHe: stringPtr("כבאית"), Price: models.NewPrice(120), Brand: stringPtr("Lego"),
			AgeGroup: "3-5y", Gender: models.GenderBoys, Rating: 4.5, CreatedAt: day},
		{ID: 2, Name: "Doll House", Price: models.NewPrice(250), Brand: stringPtr("Mattel"),
			AgeGroup: "3-5y", Gender: models.GenderGirls, Rating: 4.8, CreatedAt: day.AddDate(0, 0, 1)},
		{ID: 3, Name: "Puzzle", Price: models.NewPrice(35.5),
			AgeGroup: "5-8y", Gender: models.GenderUnisex, Rating: 3.9, CreatedAt: day.AddDate(0, 0, 2)},
		{ID: 4, Name: "Rattle", Price: models.NewPrice(15), Brand: stringPtr("Fisher"),
			AgeGroup: "0-6m", Gender: models.GenderUnisex, Rating: 4.1, CreatedAt: day.AddDate(0, 0, 3)},
		{ID: 5, Name: "Race Set", Price: models.Price("call us"), Brand: stringPtr("Lego"),
			AgeGroup: "5-8y", Gender: models.GenderBoys, Rating: 5, CreatedAt: day.AddDate(0, 0, 4)},
	}
}

func productIDs(products []models.Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func (suite *ProductServiceTestSuite) cached() {
	suite.cacheService.On("GetProducts", suite.ctx, false).Return(sampleProducts(), nil).Once()
}

func (suite *ProductServiceTestSuite) TestList_CacheMiss() {
	products := sampleProducts()
	suite.cacheService.On("GetProducts", suite.ctx, true).Return(nil, nil).Once()
	suite.productRepo.On("List", suite.ctx, true).Return(products, nil).Once()
	suite.cacheService.On("SetProducts", suite.ctx, true, products, testTTL).Return(nil).Once()

	got, err := suite.service.List(suite.ctx, true)

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 5)
}

func (suite *ProductServiceTestSuite) TestBrowse_DefaultsSortByPopularity() {
	suite.cached()

	page, err := suite.service.Browse(suite.ctx, BrowseQuery{Locale: catalog.LocaleEnglish})

	require.NoError(suite.T(), err)
	// product 5 has no numeric price and never passes the price range
	assert.Equal(suite.T(), []int64{2, 1, 4, 3}, productIDs(page.Items))
	assert.Equal(suite.T(), 4, page.Total)
	assert.Equal(suite.T(), 1, page.Page)
	assert.Equal(suite.T(), catalog.DefaultPageSize, page.PageSize)
	assert.Equal(suite.T(), 1, page.TotalPages)
}

func (suite *ProductServiceTestSuite) TestBrowse_FiltersAndSorts() {
	suite.cached()

	page, err := suite.service.Browse(suite.ctx, BrowseQuery{
		Genders: []string{"Boys", "unisex", "nonsense"},
		Sort:    "priceDesc",
		Locale:  catalog.LocaleEnglish,
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []int64{1, 3, 4}, productIDs(page.Items))
}

func (suite *ProductServiceTestSuite) TestBrowse_PriceBoundsAreOrdered() {
	suite.cached()
	lo, hi := 200.0, 30.0

	page, err := suite.service.Browse(suite.ctx, BrowseQuery{MinPrice: &lo, MaxPrice: &hi, Sort: "priceAsc"})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []int64{3, 1}, productIDs(page.Items))
}

func (suite *ProductServiceTestSuite) TestBrowse_HebrewSearch() {
	suite.cached()

	page, err := suite.service.Browse(suite.ctx, BrowseQuery{Search: "כבאית", Locale: catalog.LocaleHebrew})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []int64{1}, productIDs(page.Items))
}

func (suite *ProductServiceTestSuite) TestBrowse_BrandAndAge() {
	suite.cached()

	page, err := suite.service.Browse(suite.ctx, BrowseQuery{Brands: []string{"Lego", "Lego"}, AgeGroups: []string{"3-5y"}})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []int64{1}, productIDs(page.Items))
}

func (suite *ProductServiceTestSuite) TestBrowse_OutOfRangePageFallsBackToFirst() {
	suite.cached()

	page, err := suite.service.Browse(suite.ctx, BrowseQuery{Page: 7, PageSize: 48})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, page.Page)
	assert.Equal(suite.T(), 48, page.PageSize)
	assert.Len(suite.T(), page.Items, 4)
}

func (suite *ProductServiceTestSuite) TestBrowse_UnsupportedPageSize() {
	suite.cached()

	page, err := suite.service.Browse(suite.ctx, BrowseQuery{PageSize: 10})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), catalog.DefaultPageSize, page.PageSize)
}

func (suite *ProductServiceTestSuite) TestBrowse_RepoError() {
	suite.cacheService.On("GetProducts", suite.ctx, false).Return(nil, nil).Once()
	suite.productRepo.On("List", suite.ctx, false).Return(nil, errors.New("db down")).Once()

	_, err := suite.service.Browse(suite.ctx, BrowseQuery{})
	assert.EqualError(suite.T(), err, "db down")
}

func (suite *ProductServiceTestSuite) TestFacets() {
	suite.cached()

	facets, err := suite.service.Facets(suite.ctx)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Fisher", "Lego", "Mattel"}, facets.Brands)
	assert.Equal(suite.T(), []string{"0-6m", "3-5y", "5-8y"}, facets.AgeGroups)
	assert.Equal(suite.T(), 15.0, facets.MinPrice)
	assert.Equal(suite.T(), 250.0, facets.MaxPrice)
}

func (suite *ProductServiceTestSuite) TestWarm() {
	visible := sampleProducts()
	suite.productRepo.On("List", suite.ctx, false).Return(visible, nil).Once()
	suite.productRepo.On("List", suite.ctx, true).Return(nil, errors.New("timeout")).Once()
	suite.cacheService.On("SetProducts", suite.ctx, false, visible, testTTL).Return(nil).Once()

	err := suite.service.Warm(suite.ctx)

	assert.EqualError(suite.T(), err, "timeout")
	suite.cacheService.AssertNotCalled(suite.T(), "SetProducts", mock.Anything, true, mock.Anything, mock.Anything)
}

func TestBrowseQuery_Criteria(t *testing.T) {
	lo := 20.0
	criteria := BrowseQuery{
		Genders:   []string{"לבנות", "forGirls"},
		AgeGroups: []string{" 1-2y "},
		MinPrice:  &lo,
		Search:    "  doll ",
	}.Criteria(sampleProducts())

	assert.Equal(t, []models.GenderCode{models.GenderGirls}, criteria.Genders.Values())
	assert.Equal(t, []string{"1-2y"}, criteria.AgeGroups.Values())
	assert.Empty(t, criteria.Brands)
	assert.Equal(t, [2]float64{20, 250}, criteria.PriceRange)
	assert.Equal(t, "  doll ", criteria.SearchText)
}
