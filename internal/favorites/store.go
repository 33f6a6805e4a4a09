// Package favorites persists the user's favorite meal IDs in a small JSON
// side file, independent of the catalog.
//
// The file looks like:
//
//	{ "favorites": ["meal_001", "meal_002"] }
//
// Favorites are plain IDs. An ID does not have to exist in the current
// catalog; resolving favorites against a catalog simply skips dangling IDs.
//
// There is no locking. Two processes saving favorites at the same time race
// and the last save wins.
package favorites

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/calvinalkan/toddler-meals/internal/fs"
	"github.com/calvinalkan/toddler-meals/internal/meal"

	"github.com/tailscale/hujson"
)

// Errors returned by [Store.Load] and [Store.Save].
var (
	ErrRead  = errors.New("cannot read favorites file")
	ErrParse = errors.New("cannot parse favorites file")
	ErrWrite = errors.New("cannot write favorites file")
)

const filePerm = 0o644

var utf8BOM = []byte("\xef\xbb\xbf")

// file is the on-disk shape.
type file struct {
	Favorites []string `json:"favorites"`
}

// Store is an in-memory set of favorite meal IDs bound to a file path.
// A Store is not safe for concurrent use.
type Store struct {
	fs   fs.FS
	path string
	ids  map[string]struct{}
}

// New returns an empty store for the file at path. Call [Store.Load] to
// read existing favorites.
func New(fsys fs.FS, path string) *Store {
	return &Store{
		fs:   fsys,
		path: path,
		ids:  make(map[string]struct{}),
	}
}

// Path returns the favorites file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory set with the contents of the file.
//
// A missing file is not an error: the set is simply empty. A file that is
// not valid JSON returns [ErrParse] and leaves the set empty. Valid JSON of
// any other shape (no "favorites" array) yields an empty set without error.
func (s *Store) Load() error {
	clear(s.ids)

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("%w %s: %w", ErrRead, s.path, err)
	}

	standardized, err := hujson.Standardize(bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrParse, s.path, err)
	}

	var raw map[string]json.RawMessage

	unmarshalErr := json.Unmarshal(standardized, &raw)
	if unmarshalErr != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(unmarshalErr, &typeErr) {
			// Valid JSON, just not an object.
			return nil
		}

		return fmt.Errorf("%w %s: %w", ErrParse, s.path, unmarshalErr)
	}

	list := bytes.TrimSpace(raw["favorites"])
	if len(list) == 0 || list[0] != '[' {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(list, &elems); err != nil {
		return nil
	}

	for _, elem := range elems {
		var id string
		if err := json.Unmarshal(elem, &id); err != nil {
			continue
		}

		s.ids[id] = struct{}{}
	}

	return nil
}

// Save writes the whole set to the file, atomically replacing it.
// IDs are written sorted.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(file{Favorites: s.IDs()}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, s.path, err)
	}

	data = append(data, '\n')

	writeErr := s.fs.WriteFileAtomic(s.path, data, filePerm)
	if writeErr != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, s.path, writeErr)
	}

	return nil
}

// Add inserts id and reports whether it was newly added.
func (s *Store) Add(id string) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}

	s.ids[id] = struct{}{}

	return true
}

// Remove deletes id and reports whether it was present.
func (s *Store) Remove(id string) bool {
	if _, ok := s.ids[id]; !ok {
		return false
	}

	delete(s.ids, id)

	return true
}

// Has reports whether id is a favorite.
func (s *Store) Has(id string) bool {
	_, ok := s.ids[id]

	return ok
}

// Len returns the number of favorite IDs, dangling ones included.
func (s *Store) Len() int {
	return len(s.ids)
}

// IDs returns the favorite IDs, sorted. Never nil.
func (s *Store) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}

	slices.Sort(out)

	return out
}

// Meals resolves favorites against c. The result is in catalog order, not
// favorites order; IDs missing from the catalog are omitted. Every catalog
// record carrying a favorite ID is included.
func (s *Store) Meals(c *meal.Catalog) []meal.Meal {
	var out []meal.Meal

	for _, m := range c.Meals() {
		if s.Has(m.ID) {
			out = append(out, m)
		}
	}

	return out
}

// Dangling returns the favorite IDs that have no record in c, sorted.
func (s *Store) Dangling(c *meal.Catalog) []string {
	var out []string

	for _, id := range s.IDs() {
		if _, ok := c.ByID(id); !ok {
			out = append(out, id)
		}
	}

	return out
}
