package meal

import "math/rand/v2"

// Query selects meals from a catalog. The zero Query matches every meal.
type Query struct {
	// MealType restricts results to one meal type. Empty matches any type.
	MealType string

	// RequiredAttributes must all be present on a meal. Empty strings are
	// ignored and duplicates are harmless.
	RequiredAttributes []string

	// AvoidAllergens excludes meals listing any of these allergens. Empty
	// strings are ignored.
	AvoidAllergens []string
}

// index maps folded meal types and attributes to catalog positions. Each
// bucket lists positions in catalog order.
type index struct {
	byType map[string][]int
	byAttr map[string][]int
}

func buildIndex(meals []Meal) index {
	idx := index{
		byType: make(map[string][]int),
		byAttr: make(map[string][]int),
	}

	for pos, m := range meals {
		if m.MealType != "" {
			key := Fold(m.MealType)
			idx.byType[key] = append(idx.byType[key], pos)
		}

		for _, attr := range m.Attributes {
			if attr == "" {
				continue
			}

			key := Fold(attr)

			// A meal listing the same attribute twice must appear once per bucket.
			bucket := idx.byAttr[key]
			if n := len(bucket); n > 0 && bucket[n-1] == pos {
				continue
			}

			idx.byAttr[key] = append(bucket, pos)
		}
	}

	return idx
}

// Filter returns the catalog positions of every meal matching q, in catalog
// order.
//
// An unknown meal type or an unknown required attribute yields no results
// rather than being ignored. Filter never fails; the returned slice is owned
// by the caller.
func (c *Catalog) Filter(q Query) []int {
	var candidates []int

	if q.MealType != "" {
		bucket, ok := c.idx.byType[Fold(q.MealType)]
		if !ok {
			return []int{}
		}

		candidates = append(make([]int, 0, len(bucket)), bucket...)
	} else {
		candidates = make([]int, len(c.meals))
		for i := range candidates {
			candidates[i] = i
		}
	}

	for _, attr := range q.RequiredAttributes {
		if attr == "" {
			continue
		}

		bucket, ok := c.idx.byAttr[Fold(attr)]
		if !ok {
			return []int{}
		}

		candidates = intersect(candidates, bucket)
		if len(candidates) == 0 {
			return candidates
		}
	}

	return c.excludeAllergens(candidates, q.AvoidAllergens)
}

// FilterMeals is [Catalog.Filter] resolved to meal records.
func (c *Catalog) FilterMeals(q Query) []Meal {
	positions := c.Filter(q)

	out := make([]Meal, len(positions))
	for i, pos := range positions {
		out[i] = c.meals[pos].clone()
	}

	return out
}

// intersect keeps the elements of candidates that are also in bucket,
// preserving the order of candidates. Filters candidates in place.
func intersect(candidates, bucket []int) []int {
	allowed := make(map[int]struct{}, len(bucket))
	for _, pos := range bucket {
		allowed[pos] = struct{}{}
	}

	next := candidates[:0]

	for _, pos := range candidates {
		if _, ok := allowed[pos]; ok {
			next = append(next, pos)
		}
	}

	return next
}

func (c *Catalog) excludeAllergens(candidates []int, avoid []string) []int {
	terms := make([]string, 0, len(avoid))

	for _, a := range avoid {
		if a != "" {
			terms = append(terms, a)
		}
	}

	if len(terms) == 0 {
		return candidates
	}

	next := candidates[:0]

	for _, pos := range candidates {
		if !hasAnyAllergen(c.meals[pos].Allergens, terms) {
			next = append(next, pos)
		}
	}

	return next
}

func hasAnyAllergen(allergens, terms []string) bool {
	for _, term := range terms {
		if ContainsFold(allergens, term) {
			return true
		}
	}

	return false
}

// Pick returns one of candidates, chosen uniformly at random.
//
// Panics if candidates is empty; callers check for "no match" first.
func Pick(rng *rand.Rand, candidates []int) int {
	return candidates[rng.IntN(len(candidates))]
}
