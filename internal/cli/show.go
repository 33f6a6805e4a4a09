package cli

import (
	"context"
	"errors"
	"fmt"
)

var (
	errIDRequired   = errors.New("meal ID is required")
	errMealNotFound = errors.New("meal not found")
)

// ShowCmd returns the show command.
func ShowCmd(sess *session) *Command {
	return &Command{
		Usage: "show <id>",
		Short: "Show a meal",
		Long:  "Print the recipe card of the meal with the given ID. IDs are case-sensitive.",
		IDs:   true,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execShow(o, sess, args)
		},
	}
}

func execShow(o *IO, sess *session, args []string) error {
	catalog, err := sess.loadCatalog()
	if err != nil {
		return err
	}

	m, ok := catalog.ByID(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", errMealNotFound, args[0])
	}

	printMeal(o, m)

	return nil
}
