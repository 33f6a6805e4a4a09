package cli

import (
	"strings"

	"github.com/calvinalkan/toddler-meals/internal/meal"

	flag "github.com/spf13/pflag"
)

// skipTokens mean "no constraint" for a query field (after trim + fold).
var skipTokens = map[string]struct{}{
	"":      {},
	"blank": {},
	"none":  {},
	"n/a":   {},
	"na":    {},
	"skip":  {},
}

func isSkipToken(s string) bool {
	_, ok := skipTokens[meal.Fold(strings.TrimSpace(s))]

	return ok
}

// parseSingle returns the trimmed value, or "" for a skip token.
func parseSingle(s string) string {
	if isSkipToken(s) {
		return ""
	}

	return strings.TrimSpace(s)
}

// parseList splits comma-separated input into trimmed, non-empty segments.
// A skip token yields nil.
func parseList(s string) []string {
	if isSkipToken(s) {
		return nil
	}

	var out []string

	for _, seg := range strings.Split(s, ",") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			out = append(out, seg)
		}
	}

	return out
}

// addFilterFlags registers the query flags shared by random and ls.
func addFilterFlags(fs *flag.FlagSet) {
	fs.StringP("type", "t", "", "Meal type (breakfast, lunch, dinner, snack)")
	fs.StringArrayP("attr", "a", nil, "Required attributes, comma-separated (repeatable)")
	fs.StringArrayP("avoid", "x", nil, "Allergens to avoid, comma-separated (repeatable)")
}

// queryFromFlags builds a query from flags registered by addFilterFlags,
// applying the same skip-token and trimming rules as the interactive prompts.
func queryFromFlags(fs *flag.FlagSet) meal.Query {
	mealType, _ := fs.GetString("type")
	attrs, _ := fs.GetStringArray("attr")
	avoid, _ := fs.GetStringArray("avoid")

	q := meal.Query{MealType: parseSingle(mealType)}

	for _, a := range attrs {
		q.RequiredAttributes = append(q.RequiredAttributes, parseList(a)...)
	}

	for _, a := range avoid {
		q.AvoidAllergens = append(q.AvoidAllergens, parseList(a)...)
	}

	return q
}
