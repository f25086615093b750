// file: internal/genres/registry.go
// version: 1.0.0
// guid: 7d1a5c9e-3b6f-4e2a-8d40-6f9c1b5e3a78

package genres

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mediatheque/explorer/internal/models"
)

// Registry holds the per-category weight tables. Reads vastly outnumber
// reloads, so tables are swapped wholesale under a short write lock.
type Registry struct {
	mu     sync.RWMutex
	tables map[models.Category]*Table
}

// NewRegistry builds a registry from the built-in tables.
func NewRegistry() *Registry {
	return &Registry{tables: builtinTables()}
}

// TableFor returns the weight table for a category. Unknown categories get
// an empty table where every label resolves to the default weight, keeping
// ranking total rather than failing.
func (r *Registry) TableFor(category models.Category) *Table {
	r.mu.RLock()
	t, ok := r.tables[category]
	r.mu.RUnlock()
	if ok {
		return t
	}
	return NewTable(category, nil, nil, DefaultWeight)
}

// OverrideFile is the YAML shape of a weights override file:
//
//	categories:
//	  mangas:
//	    default_weight: 6.0
//	    vocabulary: [extra genre, ...]   # appended to the built-in list
//	    weights:
//	      romance: 1.05
type OverrideFile struct {
	Categories map[string]CategoryOverride `yaml:"categories"`
}

// CategoryOverride adjusts one category's table.
type CategoryOverride struct {
	DefaultWeight *float64           `yaml:"default_weight"`
	Vocabulary    []string           `yaml:"vocabulary"`
	Weights       map[string]float64 `yaml:"weights"`
}

// LoadOverridesFile parses a weights override file.
func LoadOverridesFile(path string) (*OverrideFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weights file: %w", err)
	}
	var doc OverrideFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing weights file: %w", err)
	}
	return &doc, nil
}

// ApplyOverrides rebuilds the affected category tables with the override
// merged over the built-in data. Unknown category names are ignored.
func (r *Registry) ApplyOverrides(doc *OverrideFile) {
	if doc == nil || len(doc.Categories) == 0 {
		return
	}
	builtin := builtinTables()

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, ov := range doc.Categories {
		category := models.Category(name)
		base, ok := builtin[category]
		if !ok {
			continue
		}
		def := base.DefaultWeight()
		if ov.DefaultWeight != nil {
			def = *ov.DefaultWeight
		}
		vocab := append(append([]string(nil), base.Vocabulary()...), ov.Vocabulary...)
		weights := make(map[string]float64, len(base.weights)+len(ov.Weights))
		for k, v := range base.weights {
			weights[k] = v
		}
		for k, v := range ov.Weights {
			weights[k] = v
		}
		r.tables[category] = NewTable(category, vocab, weights, def)
	}
}

// Reload reads and applies a weights override file in one step.
func (r *Registry) Reload(path string) error {
	doc, err := LoadOverridesFile(path)
	if err != nil {
		return err
	}
	r.ApplyOverrides(doc)
	return nil
}
