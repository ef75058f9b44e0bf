package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Category is a flat, parent-pointer category record as stored and served by the API.
type Category struct {
	ID       int64   `json:"id" db:"id"`
	ParentID *int64  `json:"parentId" db:"parent_id"`
	Name     string  `json:"name" db:"name"`
	NameHe   *string `json:"nameHe" db:"name_he"`
	Image    *string `json:"image" db:"image"`
	Order    int     `json:"order" db:"sort_order"`
	Active   bool    `json:"active" db:"active"`
}

// IsRoot reports whether the category has no parent.
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}

// SameParent reports whether both categories hang off the same parent (or are both roots).
func (c Category) SameParent(other Category) bool {
	if c.ParentID == nil || other.ParentID == nil {
		return c.ParentID == nil && other.ParentID == nil
	}
	return *c.ParentID == *other.ParentID
}

// Field exposes the category's text fields by their wire name.
func (c Category) Field(name string) string {
	switch name {
	case "name":
		return c.Name
	case "nameHe":
		return deref(c.NameHe)
	case "image":
		return deref(c.Image)
	case "id":
		return strconv.FormatInt(c.ID, 10)
	}
	return ""
}

// CategoryReorderRequest is the body of PUT /api/categories/reorder.
type CategoryReorderRequest struct {
	CategoryIDs []int64 `json:"categoryIds" validate:"required,min=1,dive,gt=0"`
}

// CategoryInput carries create/edit fields for a category.
type CategoryInput struct {
	ParentID *int64  `json:"parentId" form:"parentId"`
	Name     string  `json:"name" form:"name" validate:"required,max=100"`
	NameHe   *string `json:"nameHe" form:"nameHe" validate:"omitempty,max=100"`
	Image    *string `json:"image" form:"image"`
	Active   *bool   `json:"active" form:"active"`

	// ParentSet records that parentId was sent at all. An omitted parentId keeps the
	// current parent on edit; an explicit null moves the category to the root.
	ParentSet bool `json:"-" form:"-"`
}

func (in *CategoryInput) UnmarshalJSON(data []byte) error {
	type plain CategoryInput
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if err := json.Unmarshal(data, (*plain)(in)); err != nil {
		return err
	}
	_, in.ParentSet = fields["parentId"]
	return nil
}

// HasParent reports whether the input says where the category hangs.
func (in CategoryInput) HasParent() bool {
	return in.ParentSet || in.ParentID != nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to the trimmed value, or nil when it is blank.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
