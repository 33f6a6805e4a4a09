package cli

import (
	"context"
	"errors"

	"github.com/calvinalkan/toddler-meals/internal/meal"
)

var errNoMatch = errors.New("no meals matched those filters")

// RandomCmd returns the random command.
func RandomCmd(sess *session) *Command {
	cmd := &Command{
		Usage: "random [flags]",
		Short: "Print a random matching meal",
		Long: `Pick one meal uniformly at random from those matching the filters and
print its recipe card. An unknown type or attribute matches nothing.`,
		Filters: true,
	}

	cmd.Exec = func(_ context.Context, o *IO, _ []string) error {
		return execRandom(o, sess, cmd.Query())
	}

	return cmd
}

func execRandom(o *IO, sess *session, q meal.Query) error {
	catalog, err := sess.loadCatalog()
	if err != nil {
		return err
	}

	matches := catalog.Filter(q)
	if len(matches) == 0 {
		return errNoMatch
	}

	printMeal(o, catalog.At(meal.Pick(sess.rng, matches)))

	return nil
}
