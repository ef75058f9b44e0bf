package catalog

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"toyshop/internal/models"
)

// CategoryStore is the remote source of truth for categories.
type CategoryStore interface {
	FetchCategories(ctx context.Context) ([]models.Category, error)
	ToggleCategory(ctx context.Context, id int64) (*models.Category, error)
	ReorderCategories(ctx context.Context, ids []int64) error
}

// SyncState tags a SyncOutcome.
type SyncState int

const (
	// SyncApplied means Categories is the state to show.
	SyncApplied SyncState = iota
	// SyncReconciling means the remote write failed; the optimistic state must be discarded
	// and the canonical list re-fetched with Reconcile.
	SyncReconciling
)

func (s SyncState) String() string {
	if s == SyncReconciling {
		return "reconciling"
	}
	return "applied"
}

// SyncOutcome is Applied(categories) or Reconciling(err).
type SyncOutcome struct {
	State      SyncState
	Categories []models.Category
	Err        error
}

// Applied wraps a category list that should be displayed.
func Applied(categories []models.Category) SyncOutcome {
	return SyncOutcome{State: SyncApplied, Categories: categories}
}

// Reconciling signals that local state is stale and must be re-fetched.
func Reconciling(err error) SyncOutcome {
	return SyncOutcome{State: SyncReconciling, Err: err}
}

// NeedsReconcile reports whether the caller must call Reconcile.
func (o SyncOutcome) NeedsReconcile() bool {
	return o.State == SyncReconciling
}

// CategorySync applies category edits optimistically and pushes them to a CategoryStore.
// It does not serialise overlapping calls; the caller must not start a new gesture while one
// is in flight.
type CategorySync struct {
	store        CategoryStore
	fetch        func(ctx context.Context) ([]models.Category, error)
	logger       *zap.Logger
	onOptimistic func([]models.Category)
}

// SyncOption configures a CategorySync.
type SyncOption func(*CategorySync)

// WithOptimisticHook registers fn to receive the optimistic list before the remote call starts.
func WithOptimisticHook(fn func([]models.Category)) SyncOption {
	return func(s *CategorySync) {
		s.onOptimistic = fn
	}
}

// WithFetcher replaces the list Reconcile re-fetches. Admin screens that work on every
// category, active or not, pass their admin listing here.
func WithFetcher(fetch func(ctx context.Context) ([]models.Category, error)) SyncOption {
	return func(s *CategorySync) {
		if fetch != nil {
			s.fetch = fetch
		}
	}
}

// WithSyncLogger sets the logger used to report remote failures.
func WithSyncLogger(logger *zap.Logger) SyncOption {
	return func(s *CategorySync) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCategorySync creates a CategorySync over store.
func NewCategorySync(store CategoryStore, opts ...SyncOption) *CategorySync {
	s := &CategorySync{store: store, fetch: store.FetchCategories, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reorder applies a sibling-scoped move locally and persists the new sibling order.
// A no-op move never reaches the store.
func (s *CategorySync) Reorder(ctx context.Context, current []models.Category, movedID, targetID int64) SyncOutcome {
	res := Reorder(current, movedID, targetID)
	if !res.Changed {
		return Applied(current)
	}
	s.optimistic(res.Updated)

	if err := s.store.ReorderCategories(ctx, res.Payload); err != nil {
		s.logger.Warn("category reorder rejected, reconciling",
			zap.Int64("moved_id", movedID),
			zap.Int64("target_id", targetID),
			zap.Error(err))
		return Reconciling(fmt.Errorf("persist category order: %w", err))
	}
	return Applied(res.Updated)
}

// Toggle flips a category's Active flag locally, then adopts the authoritative record
// returned by the store. Unknown ids are a no-op.
func (s *CategorySync) Toggle(ctx context.Context, current []models.Category, id int64) SyncOutcome {
	idx := indexOfCategory(current, id)
	if idx < 0 {
		return Applied(current)
	}
	updated := slices.Clone(current)
	updated[idx].Active = !updated[idx].Active
	s.optimistic(updated)

	canonical, err := s.store.ToggleCategory(ctx, id)
	if err != nil {
		s.logger.Warn("category toggle rejected, reconciling",
			zap.Int64("category_id", id),
			zap.Error(err))
		return Reconciling(fmt.Errorf("toggle category %d: %w", id, err))
	}
	if canonical != nil {
		updated[idx] = *canonical
	}
	return Applied(updated)
}

// Reconcile discards local state and re-fetches the canonical list (store.FetchCategories
// unless WithFetcher says otherwise). The last completed fetch
// wins; there is no merge with optimistic edits.
func (s *CategorySync) Reconcile(ctx context.Context) SyncOutcome {
	categories, err := s.fetch(ctx)
	if err != nil {
		s.logger.Error("category refetch failed", zap.Error(err))
		return Reconciling(fmt.Errorf("fetch categories: %w", err))
	}
	return Applied(categories)
}

func (s *CategorySync) optimistic(categories []models.Category) {
	if s.onOptimistic != nil {
		s.onOptimistic(slices.Clone(categories))
	}
}
