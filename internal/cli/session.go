package cli

import (
	"io"
	"math/rand/v2"
	"os"

	"github.com/calvinalkan/toddler-meals/internal/config"
	"github.com/calvinalkan/toddler-meals/internal/favorites"
	"github.com/calvinalkan/toddler-meals/internal/fs"
	"github.com/calvinalkan/toddler-meals/internal/meal"

	"go.uber.org/zap"
)

// session holds everything commands share for one invocation. Commands are
// constructed before configuration is loaded, so they keep a pointer and
// only read fields inside Exec.
type session struct {
	cfg   config.Config
	fs    fs.FS
	log   *zap.Logger
	rng   *rand.Rand
	in    io.Reader
	sigCh <-chan os.Signal
}

// newRand returns a seeded generator when seed is non-zero, otherwise one
// seeded from the runtime's random source.
func newRand(seed uint64) *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed))
	}

	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// loadCatalog loads the configured catalog. Every failure is fatal for the
// calling command.
func (s *session) loadCatalog() (*meal.Catalog, error) {
	c, err := meal.Load(s.fs, s.cfg.CatalogAbs)
	if err != nil {
		return nil, err
	}

	stats := c.Stats()
	s.log.Info("catalog loaded",
		zap.String("path", s.cfg.CatalogAbs),
		zap.Int("meals", stats.Loaded),
		zap.Int("dropped", stats.Dropped),
	)

	return c, nil
}

// loadFavorites loads the configured favorites file. A file that cannot be
// read or parsed is logged and treated as empty.
func (s *session) loadFavorites() *favorites.Store {
	store := favorites.New(s.fs, s.cfg.FavoritesAbs)

	err := store.Load()
	if err != nil {
		s.log.Warn("cannot load favorites, starting with none",
			zap.String("path", s.cfg.FavoritesAbs),
			zap.Error(err),
		)

		return store
	}

	s.log.Debug("favorites loaded",
		zap.String("path", s.cfg.FavoritesAbs),
		zap.Int("count", store.Len()),
	)

	return store
}

// saveFavorites saves store and logs the outcome.
func (s *session) saveFavorites(store *favorites.Store) error {
	err := store.Save()
	if err != nil {
		s.log.Error("cannot save favorites", zap.String("path", store.Path()), zap.Error(err))

		return err
	}

	s.log.Debug("favorites saved", zap.String("path", store.Path()), zap.Int("count", store.Len()))

	return nil
}
