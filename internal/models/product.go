package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// AgeGroups lists the eight age bands a product can be tagged with, youngest first.
var AgeGroups = []string{"0-6m", "6-12m", "1-2y", "2-3y", "3-5y", "5-8y", "8-12y", "12+"}

// Product is a catalog item as read from the products table or the products API.
type Product struct {
	ID            int64       `json:"id" db:"id"`
	Name          string      `json:"name" db:"name"`
	NameHe        *string     `json:"nameHe" db:"name_he"`
	Price         Price       `json:"price" db:"price"`
	Brand         *string     `json:"brand" db:"brand"`
	AgeGroup      string      `json:"ageGroup" db:"age_group"`
	Gender        GenderCode  `json:"gender" db:"gender"`
	Category      CategoryRef `json:"category" db:"-"`
	Description   string      `json:"description" db:"description"`
	DescriptionHe *string     `json:"descriptionHe" db:"description_he"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	Rating        float64     `json:"rating" db:"rating"`
	Hidden        bool        `json:"hidden" db:"hidden"`
}

// Field exposes the product's text fields by their wire name.
func (p Product) Field(name string) string {
	switch name {
	case "name":
		return p.Name
	case "nameHe":
		return deref(p.NameHe)
	case "description":
		return p.Description
	case "descriptionHe":
		return deref(p.DescriptionHe)
	case "brand":
		return deref(p.Brand)
	case "category":
		return p.Category.Name
	case "categoryHe":
		return p.Category.NameHe
	case "ageGroup":
		return p.AgeGroup
	case "gender":
		return string(p.Gender)
	}
	return ""
}

// BrandName returns the brand or an empty string when the product has none.
func (p Product) BrandName() string {
	return deref(p.Brand)
}

// Price keeps the raw wire value of a product price. Upstream data has carried prices as
// numbers and as strings; a value that does not parse is kept so the price filter can reject it.
type Price string

// NewPrice builds a Price from a number.
func NewPrice(v float64) Price {
	return Price(strconv.FormatFloat(v, 'f', -1, 64))
}

// Float coerces the price to a number. ok is false for empty or non-numeric values.
func (p Price) Float() (float64, bool) {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(strings.TrimSpace(s))
		return nil
	}
	*p = Price(b)
	return nil
}

// MarshalJSON writes numeric prices as numbers and anything else as a string.
func (p Price) MarshalJSON() ([]byte, error) {
	if v, ok := p.Float(); ok {
		return json.Marshal(v)
	}
	if p == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(p))
}

// CategoryRef is the category a product belongs to. The products API has shipped it both as a
// bare name and as an embedded category object, so both decode.
type CategoryRef struct {
	ID     *int64 `json:"id,omitempty"`
	Name   string `json:"name"`
	NameHe string `json:"nameHe,omitempty"`
}

// UnmarshalJSON accepts a string, a numeric id, an object or null.
func (r *CategoryRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*r = CategoryRef{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		return json.Unmarshal(b, &r.Name)
	case '{':
		type plain CategoryRef
		var obj plain
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*r = CategoryRef(obj)
		return nil
	default:
		id, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return err
		}
		r.ID = &id
		return nil
	}
}
