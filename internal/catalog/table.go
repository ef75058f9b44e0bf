package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed fallback.toml
var defaultTableTOML string

// Table is the static navigation table: the fallback tree shown when no categories are
// available, and the name -> icon lookup used for categories without an image.
type Table struct {
	GenericIcon string          `toml:"generic_icon"`
	Categories  []TableCategory `toml:"category"`
}

// TableCategory is one root of the static table.
type TableCategory struct {
	Name    string     `toml:"name"`
	NameHe  string     `toml:"name_he"`
	Icon    string     `toml:"icon"`
	Aliases []string   `toml:"aliases"`
	Sub     []TableSub `toml:"sub"`
}

// TableSub is a subcategory of a TableCategory.
type TableSub struct {
	Name   string `toml:"name"`
	NameHe string `toml:"name_he"`
}

// LoadTable decodes a TOML navigation table.
func LoadTable(r io.Reader) (*Table, error) {
	t := &Table{}
	if _, err := toml.NewDecoder(r).Decode(t); err != nil {
		return nil, fmt.Errorf("failed to decode catalog table: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTableFile decodes a TOML navigation table from disk.
func LoadTableFile(filename string) (*Table, error) {
	t := &Table{}
	if _, err := toml.DecodeFile(filename, t); err != nil {
		return nil, fmt.Errorf("failed to load catalog table file: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := LoadTable(strings.NewReader(defaultTableTOML))
	if err != nil {
		panic(err)
	}
	return t
})

// DefaultTable returns the embedded navigation table.
func DefaultTable() *Table {
	return defaultTable()
}

func (t *Table) validate() error {
	if strings.TrimSpace(t.GenericIcon) == "" {
		return fmt.Errorf("catalog table: generic_icon is required")
	}
	for i, c := range t.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("catalog table: category %d has no name", i)
		}
	}
	return nil
}

// iconIndex maps lower-cased names (both languages plus aliases) to icon paths.
func (t *Table) iconIndex() map[string]string {
	idx := make(map[string]string, len(t.Categories)*3)
	for _, c := range t.Categories {
		if c.Icon == "" {
			continue
		}
		keys := append([]string{c.Name, c.NameHe}, c.Aliases...)
		for _, k := range keys {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			if _, exists := idx[k]; !exists {
				idx[k] = c.Icon
			}
		}
	}
	return idx
}
