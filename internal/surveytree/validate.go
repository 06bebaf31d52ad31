package surveytree

import (
	"fmt"
	"strings"

	"github.com/abhisek/dqi/internal/answers"
)

// Validate performs the structural checks that keep answer keys unique.
// Returns a combined error describing all problems found, or nil if valid.
func (t *Tree) Validate() error {
	var errs []string

	if len(t.Categories) == 0 {
		errs = append(errs, "no categories defined")
	}

	ids := make(map[string]bool, len(t.Categories))
	titles := make(map[string]bool, len(t.Categories))
	for i, c := range t.Categories {
		prefix := fmt.Sprintf("category %d", i)
		if c.ID == "" {
			errs = append(errs, prefix+": id is required")
		} else if ids[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate category id: %q", c.ID))
		}
		ids[c.ID] = true

		switch {
		case c.Title == "":
			errs = append(errs, prefix+": title is required")
		case titles[c.Title]:
			errs = append(errs, fmt.Sprintf("duplicate category title: %q", c.Title))
		case strings.Contains(c.Title, answers.Separator):
			// The backend reads the category as the first key segment.
			errs = append(errs, fmt.Sprintf("category title %q must not contain %q", c.Title, answers.Separator))
		}
		titles[c.Title] = true

		if len(c.Subcategories) == 0 {
			errs = append(errs, fmt.Sprintf("category %q has no subcategories", c.Title))
		}

		subs := make(map[string]bool, len(c.Subcategories))
		for j, s := range c.Subcategories {
			switch {
			case s.Title == "":
				errs = append(errs, fmt.Sprintf("category %q subcategory %d: title is required", c.Title, j))
			case subs[s.Title]:
				errs = append(errs, fmt.Sprintf("category %q: duplicate subcategory %q", c.Title, s.Title))
			case strings.ContainsAny(s.Title, `/\`) || strings.Contains(s.Title, ".."):
				errs = append(errs, fmt.Sprintf("category %q: subcategory %q is not a valid dataset name", c.Title, s.Title))
			}
			subs[s.Title] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("survey tree validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
