package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/calvinalkan/toddler-meals/internal/favorites"
	"github.com/calvinalkan/toddler-meals/internal/meal"

	"go.uber.org/zap"
)

// Shell prompts.
const (
	promptChoice = "Select: "
	promptType   = "Meal type (breakfast/lunch/dinner/snack, Enter to skip): "
	promptAttrs  = "Meal attributes (e.g., quick, no-cook, finger-food) (comma-separated, Enter to skip): "
	promptAvoid  = "Avoid allergens (e.g., peanuts, soy, dairy) (comma-separated, Enter to skip): "
	promptAddID  = "Enter meal ID to favorite: "
	promptDelID  = "Enter meal ID to remove from favorites: "
	promptPause  = "\nPress Enter to continue..."
)

var menuChoices = []string{"1", "2", "3", "4", "5", "0"}

// ShellCmd returns the shell command.
func ShellCmd(sess *session) *Command {
	return &Command{
		Usage: "shell",
		Short: "Interactive menu (default)",
		Long: `Start the interactive menu. Generate random meals, list matches and
manage favorites. Favorites are saved after every change and on quit.

Filter prompts accept a comma-separated list. Enter, "skip", "none", "blank",
"n/a" or "na" leave a filter unset.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execShell(o, sess)
		},
	}
}

type shell struct {
	sess    *session
	o       *IO
	in      prompter
	catalog *meal.Catalog
	favs    *favorites.Store
}

func execShell(o *IO, sess *session) error {
	catalog, err := sess.loadCatalog()
	if err != nil {
		return err
	}

	words := slices.Concat(catalog.Types(), catalog.Attributes())
	in := newPrompter(sess.in, o.Out(), sess.sigCh, words)

	defer func() { _ = in.Close() }()

	sh := &shell{
		sess:    sess,
		o:       o,
		in:      in,
		catalog: catalog,
		favs:    sess.loadFavorites(),
	}

	o.Println("Toddler Meal Generator")

	err = sh.loop()
	if err != nil {
		// The pending prompt has no newline yet.
		o.Println()

		if !errors.Is(err, io.EOF) && !errors.Is(err, errInterrupted) {
			sess.log.Warn("reading input failed", zap.Error(err))
		}
	}

	sh.quit()

	return nil
}

// loop runs the menu until the user quits. The returned error says why
// input ended; nil means the user chose quit.
func (sh *shell) loop() error {
	for {
		sh.printMenu()

		choice, err := sh.in.Prompt(promptChoice)
		if err != nil {
			return err
		}

		choice = strings.TrimSpace(choice)
		if slices.Contains(menuChoices, choice) {
			sh.in.Remember(choice)
		}

		switch choice {
		case "0":
			return nil
		case "1":
			err = sh.random()
		case "2":
			err = sh.list()
		case "3":
			sh.showFavorites()
		case "4":
			err = sh.addFavorite()
		case "5":
			err = sh.removeFavorite()
		default:
			sh.o.Println("Invalid option.")
		}

		if err != nil {
			return err
		}

		err = sh.pause()
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
}

func (sh *shell) printMenu() {
	sh.o.Println()
	sh.o.Println("Menu")
	sh.o.Println("  1) Generate a random meal (with filters)")
	sh.o.Println("  2) List matching meals (with filters)")
	sh.o.Println("  3) Show favorites")
	sh.o.Println("  4) Add favorite by meal ID")
	sh.o.Println("  5) Remove favorite by meal ID")
	sh.o.Println("  0) Quit")
}

// ask prompts for one line. End of input reads as an empty line.
func (sh *shell) ask(prompt string) (string, error) {
	line, err := sh.in.Prompt(prompt)
	if errors.Is(err, io.EOF) {
		return "", nil
	}

	return line, err
}

func (sh *shell) pause() error {
	_, err := sh.in.Prompt(promptPause)

	return err
}

func (sh *shell) askQuery() (meal.Query, error) {
	mealType, err := sh.ask(promptType)
	if err != nil {
		return meal.Query{}, err
	}

	attrs, err := sh.ask(promptAttrs)
	if err != nil {
		return meal.Query{}, err
	}

	avoid, err := sh.ask(promptAvoid)
	if err != nil {
		return meal.Query{}, err
	}

	return meal.Query{
		MealType:           parseSingle(mealType),
		RequiredAttributes: parseList(attrs),
		AvoidAllergens:     parseList(avoid),
	}, nil
}

func (sh *shell) random() error {
	q, err := sh.askQuery()
	if err != nil {
		return err
	}

	matches := sh.catalog.Filter(q)
	if len(matches) == 0 {
		sh.o.Println()
		sh.o.Println(msgNoMatch)

		return nil
	}

	printMeal(sh.o, sh.catalog.At(meal.Pick(sh.sess.rng, matches)))

	return nil
}

func (sh *shell) list() error {
	q, err := sh.askQuery()
	if err != nil {
		return err
	}

	matches := sh.catalog.FilterMeals(q)
	if len(matches) == 0 {
		sh.o.Println()
		sh.o.Println(msgNoMatch)

		return nil
	}

	sh.o.Println()
	sh.o.Printf("Matching meals (%d):\n", len(matches))

	for _, m := range matches {
		sh.o.Println(formatMealLine(m))
	}

	return nil
}

func (sh *shell) showFavorites() {
	favs := sh.favs.Meals(sh.catalog)

	sh.o.Println()

	if len(favs) == 0 {
		sh.o.Println(msgNoFavorites)

		return
	}

	sh.o.Println("Favorites:")

	for _, m := range favs {
		sh.o.Println(formatMealLine(m))
	}
}

func (sh *shell) addFavorite() error {
	id, err := sh.ask(promptAddID)
	if err != nil {
		return err
	}

	id = strings.TrimSpace(id)
	if id == "" {
		sh.o.Println("No ID entered.")

		return nil
	}

	if !sh.favs.Add(id) {
		sh.o.Println("Already a favorite:", id)

		return nil
	}

	if _, ok := sh.catalog.ByID(id); !ok {
		sh.o.Warn(fmt.Sprintf("%s is not in the catalog", id), "saved anyway")
	}

	if !sh.save() {
		sh.o.Println("Added favorite (not saved):", id)

		return nil
	}

	sh.o.Println("Saved favorite:", id)

	return nil
}

func (sh *shell) removeFavorite() error {
	id, err := sh.ask(promptDelID)
	if err != nil {
		return err
	}

	id = strings.TrimSpace(id)
	if id == "" {
		sh.o.Println("No ID entered.")

		return nil
	}

	if !sh.favs.Remove(id) {
		sh.o.Println("That ID wasn't in favorites.")

		return nil
	}

	if !sh.save() {
		sh.o.Println("Removed favorite (not saved):", id)

		return nil
	}

	sh.o.Println("Removed favorite:", id)

	return nil
}

// save writes favorites and reports whether it succeeded. A failure is
// reported and the session goes on.
func (sh *shell) save() bool {
	if err := sh.sess.saveFavorites(sh.favs); err != nil {
		sh.o.Println("Could not save favorites.")

		return false
	}

	return true
}

func (sh *shell) quit() {
	sh.save()
	sh.o.Println("Bye.")
}
