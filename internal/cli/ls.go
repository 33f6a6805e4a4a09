package cli

import (
	"context"

	"github.com/calvinalkan/toddler-meals/internal/meal"
)

// LsCmd returns the ls command.
func LsCmd(sess *session) *Command {
	cmd := &Command{
		Usage: "ls [flags]",
		Short: "List matching meals",
		Long: `List meals matching the filters, in catalog order. Without filters every
meal is listed.`,
		Filters: true,
	}

	cmd.Exec = func(_ context.Context, o *IO, _ []string) error {
		return execLs(o, sess, cmd.Query())
	}

	return cmd
}

func execLs(o *IO, sess *session, q meal.Query) error {
	catalog, err := sess.loadCatalog()
	if err != nil {
		return err
	}

	matches := catalog.FilterMeals(q)
	if len(matches) == 0 {
		o.Println(msgNoMatch)

		return nil
	}

	o.Printf("Matching meals (%d):\n", len(matches))

	for _, m := range matches {
		o.Println(formatMealLine(m))
	}

	return nil
}
