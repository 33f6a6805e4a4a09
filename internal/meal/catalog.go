package meal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/calvinalkan/toddler-meals/internal/fs"

	"github.com/tailscale/hujson"
)

// Catalog field names.
const (
	fieldID          = "id"
	fieldName        = "name"
	fieldMealType    = "meal_type"
	fieldAttributes  = "attributes"
	fieldLegacyTags  = "tags"
	fieldAllergens   = "allergens"
	fieldIngredients = "ingredients"
	fieldSteps       = "steps"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Catalog is an ordered, immutable set of meals plus the lookup tables used
// to filter them.
type Catalog struct {
	meals []Meal
	byID  map[string]int
	idx   index

	// dropped counts records rejected at load for missing id or name.
	dropped int
}

// Stats describes the outcome of a catalog load.
type Stats struct {
	Loaded  int // records kept
	Dropped int // records rejected for a missing id or name
}

// Load reads and parses the catalog file at path.
//
// Fails with [ErrCatalogRead] if the file cannot be read, [ErrCatalogParse] if
// it is not valid JSON (comments and trailing commas are accepted), and
// [ErrCatalogMalformed] if the top-level value is not an array.
func Load(fsys fs.FS, path string) (*Catalog, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCatalogRead, path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse builds a catalog from the raw contents of a catalog file.
// See [Load] for the errors it returns.
func Parse(data []byte) (*Catalog, error) {
	standardized, err := hujson.Standardize(bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogParse, err)
	}

	trimmed := bytes.TrimSpace(standardized)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrCatalogParse)
	}

	if trimmed[0] != '[' {
		return nil, ErrCatalogMalformed
	}

	var items []json.RawMessage

	unmarshalErr := json.Unmarshal(trimmed, &items)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogParse, unmarshalErr)
	}

	meals := make([]Meal, 0, len(items))
	for _, item := range items {
		meals = append(meals, decodeMeal(item))
	}

	return New(meals), nil
}

// New builds a catalog from already-decoded meals, keeping them in the given
// order. Records with an empty ID or Name are dropped, as on load.
func New(meals []Meal) *Catalog {
	c := &Catalog{
		meals: make([]Meal, 0, len(meals)),
		byID:  make(map[string]int, len(meals)),
	}

	for _, m := range meals {
		if m.ID == "" || m.Name == "" {
			c.dropped++

			continue
		}

		if _, dup := c.byID[m.ID]; !dup {
			c.byID[m.ID] = len(c.meals)
		}

		c.meals = append(c.meals, m.clone())
	}

	c.idx = buildIndex(c.meals)

	return c
}

// Len returns the number of meals in the catalog.
func (c *Catalog) Len() int {
	return len(c.meals)
}

// Stats reports how many records were kept and dropped when the catalog was built.
func (c *Catalog) Stats() Stats {
	return Stats{Loaded: len(c.meals), Dropped: c.dropped}
}

// Meals returns a copy of every meal in catalog order.
func (c *Catalog) Meals() []Meal {
	out := make([]Meal, len(c.meals))
	for i, m := range c.meals {
		out[i] = m.clone()
	}

	return out
}

// At returns the meal at catalog position pos. Panics if pos is out of range.
func (c *Catalog) At(pos int) Meal {
	return c.meals[pos].clone()
}

// ByID returns the first meal with the given ID.
func (c *Catalog) ByID(id string) (Meal, bool) {
	pos, ok := c.byID[id]
	if !ok {
		return Meal{}, false
	}

	return c.meals[pos].clone(), true
}

// Types returns the distinct folded meal types, sorted.
func (c *Catalog) Types() []string {
	return sortedKeys(c.idx.byType)
}

// Attributes returns the distinct folded attributes, sorted.
func (c *Catalog) Attributes() []string {
	return sortedKeys(c.idx.byAttr)
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// decodeMeal extracts a meal from one array element. Fields that are missing
// or of the wrong JSON type decode as empty; elements that are not objects
// decode as an empty meal.
func decodeMeal(item json.RawMessage) Meal {
	var fields map[string]json.RawMessage

	_ = json.Unmarshal(item, &fields)

	m := Meal{
		ID:       stringField(fields, fieldID),
		Name:     stringField(fields, fieldName),
		MealType: stringField(fields, fieldMealType),
	}

	// "attributes" wins over the legacy "tags"; the two are never merged.
	if attrs, ok := listField(fields, fieldAttributes); ok {
		m.Attributes = attrs
	} else if tags, ok := listField(fields, fieldLegacyTags); ok {
		m.Attributes = tags
	}

	m.Allergens, _ = listField(fields, fieldAllergens)
	m.Ingredients, _ = listField(fields, fieldIngredients)
	m.Steps, _ = listField(fields, fieldSteps)

	return m
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}

	return s
}

// listField returns the string elements of an array field. ok is false when
// the field is missing or not an array. Non-string elements are skipped.
func listField(fields map[string]json.RawMessage, key string) ([]string, bool) {
	raw, ok := fields[key]
	if !ok {
		return nil, false
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, false
	}

	var out []string

	for _, elem := range elems {
		var s string
		if err := json.Unmarshal(elem, &s); err != nil {
			continue
		}

		out = append(out, s)
	}

	return out, true
}
