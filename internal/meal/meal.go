// Package meal loads the toddler meal catalog and answers filter queries
// against it.
//
// A [Catalog] owns its records for its whole lifetime. Positions within the
// catalog are stable for the current process only and are what [Catalog.Filter]
// returns; they are never persisted. Favorites refer to meals by ID instead.
package meal

import "slices"

// Meal is a single catalog record. Records are immutable once loaded; the
// catalog hands out copies.
type Meal struct {
	ID       string
	Name     string
	MealType string

	// Attributes are free-text tags ("quick", "no-cook") matched
	// case-insensitively by required-attribute filters.
	Attributes []string

	// Allergens are matched case-insensitively by avoid filters.
	Allergens []string

	Ingredients []string

	// Steps are the preparation sequence, in order.
	Steps []string
}

func (m Meal) clone() Meal {
	m.Attributes = slices.Clone(m.Attributes)
	m.Allergens = slices.Clone(m.Allergens)
	m.Ingredients = slices.Clone(m.Ingredients)
	m.Steps = slices.Clone(m.Steps)

	return m
}
