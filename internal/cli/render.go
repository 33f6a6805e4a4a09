package cli

import (
	"strings"

	"github.com/calvinalkan/toddler-meals/internal/meal"
)

const msgNoMatch = "No meals matched those filters."

// printMeal prints the full recipe card for m.
func printMeal(o *IO, m meal.Meal) {
	o.Println()
	o.Printf("=== %s ===\n", m.Name)
	o.Println("ID:", m.ID)
	o.Println("Type:", m.MealType)

	if len(m.Attributes) > 0 {
		o.Println("Attributes:", strings.Join(m.Attributes, ", "))
	}

	if len(m.Allergens) > 0 {
		o.Println("Allergens:", strings.Join(m.Allergens, ", "))
	}

	if len(m.Ingredients) > 0 {
		o.Println()
		o.Println("Ingredients:")

		for _, ing := range m.Ingredients {
			o.Println(" -", ing)
		}
	}

	if len(m.Steps) > 0 {
		o.Println()
		o.Println("Steps:")

		for i, step := range m.Steps {
			o.Printf("%d) %s\n", i+1, step)
		}
	}
}

// formatMealLine formats m for list output: " - Name  [id]".
func formatMealLine(m meal.Meal) string {
	var builder strings.Builder

	builder.WriteString(" - ")
	builder.WriteString(m.Name)
	builder.WriteString("  [")
	builder.WriteString(m.ID)
	builder.WriteString("]")

	return builder.String()
}
