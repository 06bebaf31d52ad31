package surveytree

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Subcategory is a leaf grouping. Its title doubles as the name of the
// question dataset it is rendered from.
type Subcategory struct {
	Title string `yaml:"title"`
}

// Category is a top-level survey section.
type Category struct {
	ID            string        `yaml:"id"`
	Title         string        `yaml:"title"`
	Subcategories []Subcategory `yaml:"subcategories"`
}

// Tree is the ordered questionnaire layout. It is static for the lifetime
// of the process.
type Tree struct {
	Categories []Category `yaml:"categories"`
}

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in Data Quality Index layout.
func Default() *Tree {
	t, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("surveytree: embedded default tree is invalid: %v", err))
	}
	return t
}

// Parse decodes and validates a YAML tree.
func Parse(data []byte) (*Tree, error) {
	var t Tree
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse survey tree: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadFile reads a tree from a YAML file.
func LoadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read survey tree %s: %w", path, err)
	}
	return Parse(data)
}

// Position reports the traversal position of a subcategory, used to order
// answers that only carry titles.
func (t *Tree) Position(category, subcategory string) (catIdx, subIdx int, ok bool) {
	for i, c := range t.Categories {
		if c.Title != category {
			continue
		}
		for j, s := range c.Subcategories {
			if s.Title == subcategory {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// DatasetNames lists every subcategory title once, in traversal order.
func (t *Tree) DatasetNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range t.Categories {
		for _, s := range c.Subcategories {
			if !seen[s.Title] {
				seen[s.Title] = true
				names = append(names, s.Title)
			}
		}
	}
	return names
}
