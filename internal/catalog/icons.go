package catalog

import (
	"regexp"
	"strings"
)

const (
	// UploadsPath is where uploaded category icons are served from.
	UploadsPath = "/uploads/"
	// AssetsPath is the static asset root.
	AssetsPath = "/"
)

// Uploaded files are stored under a millisecond (or second) timestamp prefix, e.g.
// "1718000000000-3f2c....png". Seeded static files never start with ten digits.
var uploadedName = regexp.MustCompile(`^[0-9]{10,}[-_.]`)

// IconSet resolves the icon URL of a category.
type IconSet struct {
	generic string
	byName  map[string]string
}

// NewIconSet builds an IconSet from a navigation table.
func NewIconSet(t *Table) IconSet {
	return IconSet{
		generic: t.GenericIcon,
		byName:  t.iconIndex(),
	}
}

// IsUploadedName reports whether an image name follows the generated-upload convention.
func IsUploadedName(name string) bool {
	return uploadedName.MatchString(name)
}

// Resolve returns the icon URL for a category image and name. A present image is served from
// the uploads path when it is a generated upload, otherwise from the asset root. Without an
// image, the name is looked up in the static table, falling back to the generic icon.
func (s IconSet) Resolve(image *string, name string) string {
	if image != nil {
		if img := strings.TrimSpace(*image); img != "" {
			return imageURL(img)
		}
	}
	if icon, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return AssetsPath + icon
	}
	return AssetsPath + s.generic
}

func imageURL(img string) string {
	if strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://") {
		return img
	}
	name := strings.TrimLeft(img, "/")
	if base := strings.TrimPrefix(name, "uploads/"); IsUploadedName(base) {
		return UploadsPath + base
	}
	return AssetsPath + name
}
