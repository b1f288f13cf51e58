package services

import (
	"fmt"

	"github.com/cluns13/loadedteaclub-backend/entity"
)

// Categories a submitted menu must cover before the menu channel can even
// enter review. Case-sensitive on purpose; these are the canonical labels.
var RequiredCategories = []string{"Loaded Teas", "Lit Teas", "Meal Replacements"}

const minItemsPerCategory = 2

type MenuValidationResult struct {
	IsValid           bool     `json:"isValid"`
	MissingCategories []string `json:"missingCategories"`
	Errors            []string `json:"errors"`
}

type MenuItemValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

func isRequiredCategory(category string) bool {
	for _, c := range RequiredCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidateMenuItem is the schema-only check for a single item, usable by
// live-editing UIs.
func ValidateMenuItem(item entity.ClaimMenuItem) MenuItemValidationResult {
	var errs []string
	if item.Name == "" {
		errs = append(errs, "item name is required")
	}
	if item.Category == "" {
		errs = append(errs, "item category is required")
	} else if !isRequiredCategory(item.Category) {
		errs = append(errs, fmt.Sprintf("unknown category %q", item.Category))
	}
	return MenuItemValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateMenu decides whether a submitted menu proves the business serves the
// required categories. Pure: no I/O, no side effects.
//
// Schema violations fail fast: no category counting happens on malformed
// input, and all three categories are reported missing.
func ValidateMenu(items []entity.ClaimMenuItem) MenuValidationResult {
	var schemaErrs []string
	for i, item := range items {
		r := ValidateMenuItem(item)
		for _, e := range r.Errors {
			schemaErrs = append(schemaErrs, fmt.Sprintf("item %d: %s", i+1, e))
		}
	}
	if len(schemaErrs) > 0 {
		missing := make([]string, len(RequiredCategories))
		copy(missing, RequiredCategories)
		return MenuValidationResult{IsValid: false, MissingCategories: missing, Errors: schemaErrs}
	}

	counts := make(map[string]int)
	for _, item := range items {
		counts[item.Category]++
	}

	missing := []string{}
	errs := []string{}
	for _, c := range RequiredCategories {
		if counts[c] == 0 {
			missing = append(missing, c)
		}
		if counts[c] < minItemsPerCategory {
			errs = append(errs, fmt.Sprintf("Category '%s' must have at least %d items", c, minItemsPerCategory))
		}
	}

	return MenuValidationResult{
		IsValid:           len(missing) == 0 && len(errs) == 0,
		MissingCategories: missing,
		Errors:            errs,
	}
}
