package cli

import (
	"context"
	"fmt"
	"strings"
)

const msgNoFavorites = "No favorites saved yet."

// FavsCmd returns the favs command.
func FavsCmd(sess *session) *Command {
	return &Command{
		Usage: "favs",
		Short: "List favorite meals",
		Long: `List favorite meals in catalog order. Saved IDs that are no longer in
the catalog are reported as a warning.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execFavs(o, sess)
		},
	}
}

// FavCmd returns the fav command.
func FavCmd(sess *session) *Command {
	return &Command{
		Usage: "fav <id>...",
		Short: "Add favorites",
		Long: `Add one or more meal IDs to favorites and save. IDs not in the catalog
are saved anyway, with a warning.`,
		IDs: true,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execFav(o, sess, args)
		},
	}
}

// UnfavCmd returns the unfav command.
func UnfavCmd(sess *session) *Command {
	return &Command{
		Usage: "unfav <id>...",
		Short: "Remove favorites",
		Long:  "Remove one or more meal IDs from favorites and save.",
		IDs:   true,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execUnfav(o, sess, args)
		},
	}
}

func execFavs(o *IO, sess *session) error {
	catalog, err := sess.loadCatalog()
	if err != nil {
		return err
	}

	store := sess.loadFavorites()

	if dangling := store.Dangling(catalog); len(dangling) > 0 {
		o.Warn("favorites not in catalog: "+strings.Join(dangling, ", "), "remove them with 'meals unfav <id>'")
	}

	favs := store.Meals(catalog)
	if len(favs) == 0 {
		o.Println(msgNoFavorites)

		return nil
	}

	o.Println("Favorites:")

	for _, m := range favs {
		o.Println(formatMealLine(m))
	}

	return nil
}

func execFav(o *IO, sess *session, ids []string) error {
	catalog, err := sess.loadCatalog()
	if err != nil {
		return err
	}

	store := sess.loadFavorites()
	changed := false

	for _, id := range ids {
		if !store.Add(id) {
			o.Println("Already a favorite:", id)

			continue
		}

		changed = true

		if _, ok := catalog.ByID(id); !ok {
			o.Warn(fmt.Sprintf("%s is not in the catalog", id), "saved anyway")
		}

		o.Println("Saved favorite:", id)
	}

	if !changed {
		return nil
	}

	return sess.saveFavorites(store)
}

func execUnfav(o *IO, sess *session, ids []string) error {
	store := sess.loadFavorites()
	changed := false

	for _, id := range ids {
		if store.Remove(id) {
			changed = true

			o.Println("Removed favorite:", id)
		} else {
			o.Println("That ID wasn't in favorites:", id)
		}
	}

	if !changed {
		return nil
	}

	return sess.saveFavorites(store)
}
