package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"toyshop/internal/catalog"
	"toyshop/internal/common"
	"toyshop/internal/middleware"
	"toyshop/internal/models"
	"toyshop/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryService) Tree(ctx context.Context, locale catalog.Locale) ([]catalog.CategoryNode, error) {
	args := m.Called(ctx, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CategoryNode), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, input models.CategoryInput, icon *services.IconUpload) (*models.Category, error) {
	args := m.Called(ctx, input, icon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id int64, input models.CategoryInput, icon *services.IconUpload) (*models.Category, error) {
	args := m.Called(ctx, id, input, icon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryService) Toggle(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Reorder(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockCategoryService) Warm(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, includeHidden bool) ([]models.Product, error) {
	args := m.Called(ctx, includeHidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductService) Browse(ctx context.Context, query services.BrowseQuery) (catalog.Page, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(catalog.Page), args.Error(1)
}

func (m *MockProductService) Facets(ctx context.Context) (catalog.Facets, error) {
	args := m.Called(ctx)
	return args.Get(0).(catalog.Facets), args.Error(1)
}

func (m *MockProductService) Warm(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockIconStorage struct {
	mock.Mock
}

func (m *MockIconStorage) Upload(ctx context.Context, filename string, reader io.Reader, size int64) (string, error) {
	args := m.Called(ctx, filename, reader, size)
	return args.String(0), args.Error(1)
}

func (m *MockIconStorage) Open(ctx context.Context, name string) (*services.IconObject, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.IconObject), args.Error(1)
}

func (m *MockIconStorage) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockIconStorage) EnsureBucket(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIconStorage) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// newTestEcho mirrors the production echo setup that matters to handlers.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = common.HTTPErrorHandler
	e.Use(middleware.LocaleResolver())
	return e
}

// withUser marks requests as authenticated with the given subject.
func withUser(subject string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(common.WithUserID(c.Request().Context(), subject)))
			return next(c)
		}
	}
}

func doRequest(e *echo.Echo, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(s string) *string { return &s }

func doRequestWithHeader(e *echo.Echo, target, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(header, value)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
