package catalog

import (
	"slices"

	"toyshop/internal/models"
)

// ReorderResult is the outcome of a drag-reorder gesture.
type ReorderResult struct {
	// Updated is the full category list with the sibling set in its new order.
	Updated []models.Category
	// Payload is the ordered sibling id list to persist. Nil when nothing changed.
	Payload []int64
	// Changed is false when the gesture was a no-op.
	Changed bool
}

// Reorder moves movedID to targetID's position within their sibling set. Only categories
// sharing a parent can be reordered; anything else (different parents, unknown ids, dropping a
// category onto itself) returns the input unchanged.
//
// Siblings are taken in Order, the moved element is removed and re-inserted at the target
// index, and the siblings' Order fields are rewritten to their new index. Non-sibling
// categories are returned untouched and in place.
func Reorder(categories []models.Category, movedID, targetID int64) ReorderResult {
	noop := ReorderResult{Updated: categories}
	if movedID == targetID {
		return noop
	}
	mi := indexOfCategory(categories, movedID)
	ti := indexOfCategory(categories, targetID)
	if mi < 0 || ti < 0 {
		return noop
	}
	moved := categories[mi]
	if !moved.SameParent(categories[ti]) {
		return noop
	}

	// Positions the sibling set occupies in the input, ascending.
	var slots []int
	for i, c := range categories {
		if c.SameParent(moved) {
			slots = append(slots, i)
		}
	}
	siblings := make([]models.Category, len(slots))
	for k, i := range slots {
		siblings[k] = categories[i]
	}
	sortByOrder(siblings)

	from := indexOfCategory(siblings, movedID)
	to := indexOfCategory(siblings, targetID)
	siblings = moveCategory(siblings, from, to)

	updated := slices.Clone(categories)
	payload := make([]int64, len(siblings))
	for k, s := range siblings {
		s.Order = k
		updated[slots[k]] = s
		payload[k] = s.ID
	}
	return ReorderResult{Updated: updated, Payload: payload, Changed: true}
}

func moveCategory(s []models.Category, from, to int) []models.Category {
	item := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, item)
}

func indexOfCategory(categories []models.Category, id int64) int {
	return slices.IndexFunc(categories, func(c models.Category) bool {
		return c.ID == id
	})
}
