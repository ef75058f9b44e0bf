package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"toyshop/internal/common"
	"toyshop/internal/middleware"
	"toyshop/internal/models"
	"toyshop/internal/repositories"
	"toyshop/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	categoryService services.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(categoryService services.CategoryService, logger *zap.Logger) *CategoryHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryHandlers{
		categoryService: categoryService,
		logger:          logger,
	}
}

// ListCategories returns the active categories as a flat list.
//
//	@Summary	List active categories
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}	models.Category
//	@Router		/api/categories [get]
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context(), false)
	if err != nil {
		return h.categoryError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// ListAdminCategories returns every category, active or not.
//
//	@Summary	List all categories
//	@Tags		categories
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	models.Category
//	@Router		/api/admin/categories [get]
func (h *CategoryHandlers) ListAdminCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context(), true)
	if err != nil {
		return h.categoryError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategoryTree returns the navigation tree in the request locale.
//
//	@Summary	Category navigation tree
//	@Tags		categories
//	@Produce	json
//	@Param		lang	query	string	false	"en or he"
//	@Success	200		{array}	catalog.CategoryNode
//	@Router		/api/categories/tree [get]
func (h *CategoryHandlers) GetCategoryTree(c echo.Context) error {
	tree, err := h.categoryService.Tree(c.Request().Context(), middleware.LocaleFrom(c))
	if err != nil {
		return h.categoryError(c, err)
	}
	return c.JSON(http.StatusOK, tree)
}

// ToggleCategory flips a category's active flag.
//
//	@Summary	Toggle category visibility
//	@Tags		categories
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Category ID"
//	@Success	200	{object}	models.Category
//	@Router		/api/categories/{id}/toggle [patch]
func (h *CategoryHandlers) ToggleCategory(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	category, err := h.categoryService.Toggle(c.Request().Context(), id)
	if err != nil {
		return h.categoryError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// ReorderCategories stores a new order for one group of sibling categories.
//
//	@Summary	Reorder sibling categories
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body	models.CategoryReorderRequest	true	"Sibling ids in their new order"
//	@Success	200
//	@Router		/api/categories/reorder [put]
func (h *CategoryHandlers) ReorderCategories(c echo.Context) error {
	var req models.CategoryReorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationError(c, err)
	}
	if err := h.categoryService.Reorder(c.Request().Context(), req.CategoryIDs); err != nil {
		return h.categoryError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Categories reordered",
		"categoryIds": req.CategoryIDs,
	})
}

// CreateCategory handles creating a new category from JSON or a multipart form with an
// optional "icon" file.
//
//	@Summary	Create a category
//	@Tags		categories
//	@Accept		json,mpfd
//	@Produce	json
//	@Security	BearerAuth
//	@Success	201	{object}	models.Category
//	@Router		/api/categories [post]
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	input, icon, closeIcon, err := h.readCategoryInput(c)
	if err != nil {
		return err
	}
	defer closeIcon()
	if err := c.Validate(&input); err != nil {
		return sendValidationError(c, err)
	}

	category, err := h.categoryService.Create(c.Request().Context(), input, icon)
	if err != nil {
		return h.categoryError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles editing a category.
//
//	@Summary	Update a category
//	@Tags		categories
//	@Accept		json,mpfd
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Category ID"
//	@Success	200	{object}	models.Category
//	@Router		/api/categories/{id} [put]
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	input, icon, closeIcon, err := h.readCategoryInput(c)
	if err != nil {
		return err
	}
	defer closeIcon()
	if err := c.Validate(&input); err != nil {
		return sendValidationError(c, err)
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, input, icon)
	if err != nil {
		return h.categoryError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes a category and its subcategories.
//
//	@Summary	Delete a category
//	@Tags		categories
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Category ID"
//	@Success	204
//	@Router		/api/categories/{id} [delete]
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return h.categoryError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandlers) readCategoryInput(c echo.Context) (models.CategoryInput, *services.IconUpload, func(), error) {
	var input models.CategoryInput
	noop := func() {}

	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if err := c.Bind(&input); err != nil {
			return input, nil, noop, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
		}
		return input, nil, noop, nil
	}

	input.Name = c.FormValue("name")
	if v := c.FormValue("nameHe"); v != "" {
		input.NameHe = &v
	}
	if v, ok := formValue(c, "image"); ok {
		input.Image = &v
	}
	if v, ok := formValue(c, "parentId"); ok {
		input.ParentSet = true
		if v = strings.TrimSpace(v); v != "" && v != "null" {
			parentID, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return input, nil, noop, echo.NewHTTPError(http.StatusBadRequest, "Invalid parentId")
			}
			input.ParentID = &parentID
		}
	}
	if v := strings.TrimSpace(c.FormValue("active")); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return input, nil, noop, echo.NewHTTPError(http.StatusBadRequest, "Invalid active flag")
		}
		input.Active = &active
	}

	fh, err := c.FormFile("icon")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return input, nil, noop, nil
		}
		return input, nil, noop, echo.NewHTTPError(http.StatusBadRequest, "Invalid icon upload")
	}
	file, err := fh.Open()
	if err != nil {
		return input, nil, noop, echo.NewHTTPError(http.StatusBadRequest, "Invalid icon upload")
	}
	icon := &services.IconUpload{Filename: fh.Filename, Reader: file, Size: fh.Size}
	return input, icon, func() { closeQuietly(file) }, nil
}

// formValue distinguishes a field sent empty from one not sent at all.
func formValue(c echo.Context, name string) (string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		return "", false
	}
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}

func (h *CategoryHandlers) categoryError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Category not found")
	case errors.Is(err, repositories.ErrNotSiblings):
		return echo.NewHTTPError(http.StatusBadRequest, "Categories must share the same parent")
	case errors.Is(err, repositories.ErrInvalidParent),
		errors.Is(err, repositories.ErrIncompleteReorder),
		errors.Is(err, services.ErrInvalidReorder),
		errors.Is(err, services.ErrInvalidName),
		errors.Is(err, services.ErrUnsupportedIcon):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.logger.Error("category request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}
