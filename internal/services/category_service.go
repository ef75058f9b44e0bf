package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"toyshop/internal/caching"
	"toyshop/internal/catalog"
	"toyshop/internal/common"
	"toyshop/internal/metrics"
	"toyshop/internal/models"
	"toyshop/internal/repositories"

	"go.uber.org/zap"
)

const maxCategoryName = 100

var (
	// ErrInvalidReorder is returned for reorder payloads that list an id twice.
	ErrInvalidReorder = errors.New("reorder ids must be unique")
	ErrInvalidName    = errors.New("category name is required")
)

// IconUpload is an icon file sent with a create or edit request.
type IconUpload struct {
	Filename string
	Reader   io.Reader
	Size     int64
}

type CategoryService interface {
	List(ctx context.Context, includeInactive bool) ([]models.Category, error)
	Tree(ctx context.Context, locale catalog.Locale) ([]catalog.CategoryNode, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, input models.CategoryInput, icon *IconUpload) (*models.Category, error)
	Update(ctx context.Context, id int64, input models.CategoryInput, icon *IconUpload) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
	Toggle(ctx context.Context, id int64) (*models.Category, error)
	Reorder(ctx context.Context, ids []int64) error
	// Warm reloads both category lists into the cache.
	Warm(ctx context.Context) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	cacheService caching.CacheService
	icons        IconStorage
	tree         *catalog.TreeBuilder
	cacheTTL     time.Duration
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, cacheService caching.CacheService, icons IconStorage, tree *catalog.TreeBuilder, cacheTTL time.Duration, logger *zap.Logger) CategoryService {
	if tree == nil {
		tree = catalog.NewTreeBuilder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &categoryService{
		categoryRepo: categoryRepo,
		cacheService: cacheService,
		icons:        icons,
		tree:         tree,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

func (s *categoryService) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	cached, err := s.cacheService.GetCategories(ctx, includeInactive)
	if err != nil {
		s.logger.Warn("category cache read failed", zap.Error(err))
	} else if cached != nil {
		metrics.CacheHit("categories")
		return cached, nil
	}
	metrics.CacheMiss("categories")

	categories, err := s.categoryRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.SetCategories(ctx, includeInactive, categories, s.cacheTTL); err != nil {
		s.logger.Warn("category cache write failed", zap.Error(err))
	}
	return categories, nil
}

// Tree builds the storefront navigation. When categories cannot be loaded the static
// fallback tree is served instead of an error.
func (s *categoryService) Tree(ctx context.Context, locale catalog.Locale) ([]catalog.CategoryNode, error) {
	categories, err := s.List(ctx, false)
	if err != nil {
		s.logger.Warn("serving fallback category tree", zap.Error(err))
		return s.tree.Fallback(locale), nil
	}
	return s.tree.Build(catalog.VisibleOnly(categories), locale), nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, input models.CategoryInput, icon *IconUpload) (category *models.Category, err error) {
	defer func() { metrics.CategoryWrite("create", err) }()

	category = &models.Category{Active: true}
	if err := s.applyInput(category, input); err != nil {
		return nil, err
	}
	if err := s.validateParent(ctx, 0, category.ParentID); err != nil {
		return nil, err
	}
	uploaded, err := s.uploadIcon(ctx, icon)
	if err != nil {
		return nil, err
	}
	if uploaded != "" {
		category.Image = &uploaded
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.discardIcon(ctx, uploaded)
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("category created", zap.Int64("category_id", category.ID), zap.String("name", category.Name))
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, input models.CategoryInput, icon *IconUpload) (category *models.Category, err error) {
	defer func() { metrics.CategoryWrite("update", err) }()

	category, err = s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousImage := common.SafeString(category.Image)
	previous := *category

	if err := s.applyInput(category, input); err != nil {
		return nil, err
	}
	if !category.SameParent(previous) {
		if err := s.validateParent(ctx, id, category.ParentID); err != nil {
			return nil, err
		}
	}
	uploaded, err := s.uploadIcon(ctx, icon)
	if err != nil {
		return nil, err
	}
	if uploaded != "" {
		category.Image = &uploaded
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.discardIcon(ctx, uploaded)
		return nil, err
	}
	if previousImage != common.SafeString(category.Image) {
		s.discardIcon(ctx, previousImage)
	}
	s.invalidate(ctx)
	return category, nil
}

// Delete removes a category with its subcategories and its uploaded icon.
func (s *categoryService) Delete(ctx context.Context, id int64) (err error) {
	defer func() { metrics.CategoryWrite("delete", err) }()

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.discardIcon(ctx, common.SafeString(category.Image))
	s.invalidate(ctx)
	s.logger.Info("category deleted", zap.Int64("category_id", id))
	return nil
}

func (s *categoryService) Toggle(ctx context.Context, id int64) (category *models.Category, err error) {
	defer func() { metrics.CategoryWrite("toggle", err) }()

	category, err = s.categoryRepo.ToggleActive(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// Reorder stores ids as the new order of one sibling group.
func (s *categoryService) Reorder(ctx context.Context, ids []int64) (err error) {
	defer func() { metrics.CategoryWrite("reorder", err) }()

	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("category %d: %w", id, ErrInvalidReorder)
		}
		seen[id] = true
	}
	if err := s.categoryRepo.Reorder(ctx, ids); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *categoryService) Warm(ctx context.Context) error {
	var errs []error
	for _, includeInactive := range []bool{false, true} {
		categories, err := s.categoryRepo.List(ctx, includeInactive)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.cacheService.SetCategories(ctx, includeInactive, categories, s.cacheTTL); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *categoryService) applyInput(category *models.Category, input models.CategoryInput) error {
	name := common.SanitizeText(input.Name)
	if name == "" {
		return ErrInvalidName
	}
	if utf8.RuneCountInString(name) > maxCategoryName {
		return fmt.Errorf("name cannot exceed %d characters", maxCategoryName)
	}
	nameHe, err := common.SanitizeOptional(input.NameHe, "nameHe", maxCategoryName)
	if err != nil {
		return err
	}

	category.Name = name
	category.NameHe = nameHe
	if input.HasParent() {
		category.ParentID = input.ParentID
	}
	if input.Active != nil {
		category.Active = *input.Active
	}
	if input.Image != nil {
		category.Image = models.StringPtr(*input.Image)
	}
	return nil
}

// validateParent keeps the tree two levels deep: a parent must exist and be a root, and a
// category that has subcategories cannot itself become a child.
func (s *categoryService) validateParent(ctx context.Context, id int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if *parentID == id {
		return fmt.Errorf("category cannot be its own parent: %w", repositories.ErrInvalidParent)
	}
	parent, err := s.categoryRepo.GetByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return fmt.Errorf("parent %d does not exist: %w", *parentID, repositories.ErrInvalidParent)
		}
		return err
	}
	if !parent.IsRoot() {
		return fmt.Errorf("parent %d is a subcategory: %w", *parentID, repositories.ErrInvalidParent)
	}
	if id == 0 {
		return nil
	}
	n, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("category %d has subcategories: %w", id, repositories.ErrInvalidParent)
	}
	return nil
}

func (s *categoryService) uploadIcon(ctx context.Context, icon *IconUpload) (string, error) {
	if icon == nil {
		return "", nil
	}
	if s.icons == nil {
		return "", errors.New("icon storage is not configured")
	}
	return s.icons.Upload(ctx, icon.Filename, icon.Reader, icon.Size)
}

// discardIcon removes an uploaded icon that is no longer referenced. Static asset names are
// left alone.
func (s *categoryService) discardIcon(ctx context.Context, name string) {
	name = strings.TrimPrefix(strings.TrimLeft(name, "/"), "uploads/")
	if s.icons == nil || !ValidIconName(name) {
		return
	}
	if err := s.icons.Delete(ctx, name); err != nil {
		s.logger.Warn("failed to delete icon", zap.String("icon", name), zap.Error(err))
	}
}

func (s *categoryService) invalidate(ctx context.Context) {
	if err := s.cacheService.InvalidateCategories(ctx); err != nil {
		s.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
}
