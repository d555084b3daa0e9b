package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryCatalog lists the categories offered per transaction type. The
// lists are advisory: nothing rejects a transaction whose category is not in
// them.
type CategoryCatalog struct {
	Income  []string `yaml:"income"`
	Expense []string `yaml:"expense"`
}

// DefaultCategories is the built-in catalog.
func DefaultCategories() CategoryCatalog {
	return CategoryCatalog{
		Income:  []string{"Salary", "Selling", "Gift", "Stock", "Other"},
		Expense: []string{"Food", "Fuel", "Entertainment", "Clothes", "Kids", "Gift", "Holidays", "Shopping", "Travel", "Other"},
	}
}

// For returns the categories offered for the given type.
func (c CategoryCatalog) For(t Type) []string {
	switch t {
	case Income:
		return append([]string(nil), c.Income...)
	case Expense:
		return append([]string(nil), c.Expense...)
	default:
		return nil
	}
}

// All returns income categories followed by expense categories. Names shared
// by both lists appear twice.
func (c CategoryCatalog) All() []string {
	out := make([]string, 0, len(c.Income)+len(c.Expense))
	out = append(out, c.Income...)
	return append(out, c.Expense...)
}

// Contains reports whether category is offered for t.
func (c CategoryCatalog) Contains(t Type, category string) bool {
	for _, v := range c.For(t) {
		if v == category {
			return true
		}
	}
	return false
}

// LoadCategoryCatalog reads a YAML catalog from path. A missing file yields
// the defaults; an empty list in the file keeps the default for that type.
func LoadCategoryCatalog(path string) (CategoryCatalog, error) {
	def := DefaultCategories()
	if path == "" {
		return def, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("read category catalog: %w", err)
	}

	var cat CategoryCatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return def, fmt.Errorf("parse category catalog: %w", err)
	}
	cat.Income = dedupe(cat.Income)
	cat.Expense = dedupe(cat.Expense)
	if len(cat.Income) == 0 {
		cat.Income = def.Income
	}
	if len(cat.Expense) == 0 {
		cat.Expense = def.Expense
	}
	return cat, nil
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
