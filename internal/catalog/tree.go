package catalog

import (
	"cmp"
	"slices"

	"toyshop/internal/models"
)

// CategoryNode is a category with its resolved label, icon and ordered subcategories.
type CategoryNode struct {
	models.Category
	Label string         `json:"label"`
	Icon  string         `json:"icon,omitempty"`
	Sub   []CategoryNode `json:"sub"`
}

// TreeBuilder turns flat category lists into navigation trees.
type TreeBuilder struct {
	table *Table
	icons IconSet
}

// TreeOption configures a TreeBuilder.
type TreeOption func(*TreeBuilder)

// WithTable replaces the embedded navigation table (fallback tree and icon lookup).
func WithTable(t *Table) TreeOption {
	return func(b *TreeBuilder) {
		if t != nil {
			b.table = t
		}
	}
}

// NewTreeBuilder creates a TreeBuilder backed by the embedded table unless overridden.
func NewTreeBuilder(opts ...TreeOption) *TreeBuilder {
	b := &TreeBuilder{table: DefaultTable()}
	for _, opt := range opts {
		opt(b)
	}
	b.icons = NewIconSet(b.table)
	return b
}

// Build converts a flat category list into a forest of roots sorted by Order. Only roots get
// an icon. Children whose parent is not part of the list are dropped. An empty list yields the
// static fallback tree so navigation is never empty.
func (b *TreeBuilder) Build(categories []models.Category, locale Locale) []CategoryNode {
	if len(categories) == 0 {
		return b.Fallback(locale)
	}

	var roots []models.Category
	children := make(map[int64][]models.Category)
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}
	sortByOrder(roots)

	nodes := make([]CategoryNode, 0, len(roots))
	for _, r := range roots {
		node := b.node(r, children, locale)
		node.Icon = b.icons.Resolve(r.Image, r.Name)
		nodes = append(nodes, node)
	}
	return nodes
}

func (b *TreeBuilder) node(c models.Category, children map[int64][]models.Category, locale Locale) CategoryNode {
	subs := children[c.ID]
	sortByOrder(subs)

	node := CategoryNode{
		Category: c,
		Label:    Resolve(c, "name", "nameHe", locale),
		Sub:      make([]CategoryNode, 0, len(subs)),
	}
	for _, s := range subs {
		node.Sub = append(node.Sub, b.node(s, children, locale))
	}
	return node
}

// Fallback builds the static tree from the navigation table. Roots get ids 1..n and their
// subcategories id*100+1.., so the result still flattens into a valid parent-pointer list.
func (b *TreeBuilder) Fallback(locale Locale) []CategoryNode {
	nodes := make([]CategoryNode, 0, len(b.table.Categories))
	for i, tc := range b.table.Categories {
		rootID := int64(i + 1)
		root := models.Category{
			ID:     rootID,
			Name:   tc.Name,
			NameHe: models.StringPtr(tc.NameHe),
			Order:  i,
			Active: true,
		}
		node := CategoryNode{
			Category: root,
			Label:    ResolveText(tc.Name, tc.NameHe, locale),
			Icon:     b.icons.Resolve(nil, tc.Name),
			Sub:      make([]CategoryNode, 0, len(tc.Sub)),
		}
		for j, ts := range tc.Sub {
			parentID := rootID
			sub := models.Category{
				ID:       rootID*100 + int64(j+1),
				ParentID: &parentID,
				Name:     ts.Name,
				NameHe:   models.StringPtr(ts.NameHe),
				Order:    j,
				Active:   true,
			}
			node.Sub = append(node.Sub, CategoryNode{
				Category: sub,
				Label:    ResolveText(ts.Name, ts.NameHe, locale),
				Sub:      []CategoryNode{},
			})
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// Flatten walks a tree depth-first and returns the underlying parent-pointer records.
func Flatten(nodes []CategoryNode) []models.Category {
	var out []models.Category
	var walk func([]CategoryNode)
	walk = func(ns []CategoryNode) {
		for _, n := range ns {
			out = append(out, n.Category)
			walk(n.Sub)
		}
	}
	walk(nodes)
	return out
}

// VisibleOnly drops inactive categories and every child of an inactive parent.
func VisibleOnly(categories []models.Category) []models.Category {
	inactive := make(map[int64]bool)
	for _, c := range categories {
		if !c.Active {
			inactive[c.ID] = true
		}
	}
	out := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if !c.Active {
			continue
		}
		if c.ParentID != nil && inactive[*c.ParentID] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Siblings returns the categories sharing parentID (nil for roots), sorted by Order.
func Siblings(categories []models.Category, parentID *int64) []models.Category {
	probe := models.Category{ParentID: parentID}
	var out []models.Category
	for _, c := range categories {
		if c.SameParent(probe) {
			out = append(out, c)
		}
	}
	sortByOrder(out)
	return out
}

func sortByOrder(cs []models.Category) {
	slices.SortStableFunc(cs, func(a, b models.Category) int {
		return cmp.Compare(a.Order, b.Order)
	})
}
