package cli_test

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/calvinalkan/toddler-meals/internal/cli"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listedIDs returns the bracketed IDs of " - Name  [id]" lines, in order.
func listedIDs(stdout string) []string {
	var ids []string

	for _, line := range strings.Split(stdout, "\n") {
		if !strings.HasPrefix(line, " - ") || !strings.HasSuffix(line, "]") {
			continue
		}

		start := strings.LastIndex(line, "[")
		if start < 0 {
			continue
		}

		ids = append(ids, line[start+1:len(line)-1])
	}

	return ids
}

func Test_Ls_Filters_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		args []string
		want []string
	}{
		{name: "no filters", args: nil, want: []string{"oat-1", "pb-1", "soup-1", "yog-1"}},
		{name: "type", args: []string{"-t", "breakfast"}, want: []string{"oat-1", "pb-1"}},
		{name: "type case-insensitive", args: []string{"--type", "  BREAKFAST "}, want: []string{"oat-1", "pb-1"}},
		{name: "type skip token", args: []string{"-t", "n/a"}, want: []string{"oat-1", "pb-1", "soup-1", "yog-1"}},
		{name: "attribute", args: []string{"-a", "warm"}, want: []string{"oat-1", "soup-1"}},
		{name: "attribute list", args: []string{"-a", "quick, warm"}, want: []string{"oat-1"}},
		{name: "repeated attribute", args: []string{"-a", "quick", "-a", "no-cook"}, want: []string{"yog-1"}},
		{name: "avoid", args: []string{"-x", "gluten"}, want: []string{"soup-1", "yog-1"}},
		{name: "avoid list", args: []string{"--avoid", "Gluten,,dairy"}, want: []string{"soup-1"}},
		{name: "combined", args: []string{"-t", "breakfast", "-a", "quick", "-x", "peanuts"}, want: []string{"oat-1"}},
		{name: "avoid skip token", args: []string{"-x", "None"}, want: []string{"oat-1", "pb-1", "soup-1", "yog-1"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newCatalogCLI(t)
			stdout := c.MustRun(append([]string{"ls"}, tt.args...)...)

			if diff := cmp.Diff(tt.want, listedIDs(stdout)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Ls_Prints_Count_And_Lines_When_Matches(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	stdout := c.MustRun("ls", "-t", "breakfast")

	want := "Matching meals (2):\n - Banana Oatmeal  [oat-1]\n - PB Toast  [pb-1]"
	assert.Equal(t, want, stdout)
}

func Test_Ls_Prints_Message_When_Nothing_Matches(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"-t", "brunch"},
		{"-a", "spicy"},
		{"-t", "breakfast", "-x", "gluten"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			t.Parallel()

			c := newCatalogCLI(t)
			stdout := c.MustRun(append([]string{"ls"}, args...)...)

			assert.Equal(t, "No meals matched those filters.", stdout)
		})
	}
}

func Test_Random_Prints_Recipe_When_One_Match(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	stdout := c.MustRun("random", "-t", "breakfast", "-x", "peanuts")

	want := `=== Banana Oatmeal ===
ID: oat-1
Type: breakfast
Attributes: quick, warm
Allergens: gluten

Ingredients:
 - oats
 - banana

Steps:
1) Cook oats
2) Mash banana in`

	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func Test_Random_Omits_Empty_Sections_When_Printing(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	stdout := c.MustRun("random", "-t", "dinner")

	cli.AssertContains(t, stdout, "=== Lentil Soup ===")
	cli.AssertContains(t, stdout, "Attributes: warm")
	cli.AssertNotContains(t, stdout, "Allergens:")
}

func Test_Random_Fails_When_Nothing_Matches(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	stderr := c.MustFail("random", "-t", "brunch")

	cli.AssertContains(t, stderr, "error: no meals matched those filters")
}

func Test_Random_Picks_Only_Matches_When_Seeded(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)

	seen := map[string]bool{}

	for seed := 1; seed <= 30; seed++ {
		stdout := c.MustRun("--seed", strconv.Itoa(seed), "random", "-a", "quick")

		switch {
		case strings.Contains(stdout, "ID: oat-1"):
			seen["oat-1"] = true
		case strings.Contains(stdout, "ID: pb-1"):
			seen["pb-1"] = true
		case strings.Contains(stdout, "ID: yog-1"):
			seen["yog-1"] = true
		default:
			t.Fatalf("unexpected pick:\n%s", stdout)
		}
	}

	assert.Len(t, seen, 3, "30 seeds should reach every quick meal")
}

func Test_Random_Is_Deterministic_When_Seed_Given(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)

	first := c.MustRun("--seed", "42", "random")
	for range 5 {
		assert.Equal(t, first, c.MustRun("--seed", "42", "random"))
	}
}

func Test_Show_Prints_Meal_When_ID_Exists(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	stdout := c.MustRun("show", "yog-1")

	cli.AssertContains(t, stdout, "=== Yogurt Dip ===")
	cli.AssertContains(t, stdout, "Type: snack")
	cli.AssertContains(t, stdout, "Attributes: no-cook, quick")
	cli.AssertContains(t, stdout, "Allergens: dairy")
	cli.AssertContains(t, stdout, "1) Stir")
}

func Test_Show_Fails_When_ID_Invalid(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		args []string
		want string
	}{
		{name: "missing", args: []string{"show"}, want: "meal ID is required"},
		{name: "blank", args: []string{"show", "  "}, want: "meal ID is required"},
		{name: "unknown", args: []string{"show", "nope"}, want: "meal not found: nope"},
		{name: "case-sensitive", args: []string{"show", "OAT-1"}, want: "meal not found: OAT-1"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newCatalogCLI(t)
			stderr := c.MustFail(tt.args...)

			cli.AssertContains(t, stderr, tt.want)
		})
	}
}

func Test_Fav_Saves_File_When_Added(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	stdout := c.MustRun("fav", "yog-1", "oat-1")

	assert.Equal(t, "Saved favorite: yog-1\nSaved favorite: oat-1", stdout)
	assert.Equal(t, "{\n  \"favorites\": [\n    \"oat-1\",\n    \"yog-1\"\n  ]\n}\n", c.ReadFavorites())
}

func Test_Fav_Reports_Existing_When_Added_Twice(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	c.MustRun("fav", "oat-1")

	stdout := c.MustRun("fav", "oat-1")
	assert.Equal(t, "Already a favorite: oat-1", stdout)

	favs := c.MustRun("favs")
	assert.Equal(t, []string{"oat-1"}, listedIDs(favs))
}

func Test_Fav_Warns_When_ID_Not_In_Catalog(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	stdout, stderr, exitCode := c.Run("fav", "ghost")

	require.Equal(t, 0, exitCode)
	assert.Equal(t, "Saved favorite: ghost\n", stdout)
	cli.AssertContains(t, stderr, "warning: ghost is not in the catalog")
	cli.AssertContains(t, c.ReadFavorites(), `"ghost"`)
}

func Test_Fav_Skips_Catalog_Warning_When_Already_Favorite(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	c.MustRun("fav", "ghost")

	stdout, stderr, exitCode := c.Run("fav", "ghost")

	require.Equal(t, 0, exitCode)
	assert.Equal(t, "Already a favorite: ghost\n", stdout)
	cli.AssertNotContains(t, stderr, "saved anyway")
}

func Test_Fav_Fails_When_No_ID(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)

	for _, args := range [][]string{{"fav"}, {"fav", "  "}, {"unfav"}} {
		stderr := c.MustFail(args...)
		cli.AssertContains(t, stderr, "meal ID is required")
	}
}

func Test_Fav_Fails_When_Favorites_Dir_Missing(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	stdout, stderr, exitCode := c.Run("--favorites", filepath.Join("missing", "favs.json"), "fav", "oat-1")

	assert.Equal(t, 1, exitCode)
	cli.AssertContains(t, stdout, "Saved favorite: oat-1")
	cli.AssertContains(t, stderr, "error: cannot write favorites")
}

func Test_Unfav_Removes_When_Present(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	c.MustRun("fav", "oat-1", "soup-1")

	stdout := c.MustRun("unfav", "oat-1", "pb-1")

	assert.Equal(t, "Removed favorite: oat-1\nThat ID wasn't in favorites: pb-1", stdout)
	assert.Equal(t, "{\n  \"favorites\": [\n    \"soup-1\"\n  ]\n}\n", c.ReadFavorites())
}

func Test_Unfav_Does_Not_Write_When_Nothing_Removed(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	c.MustRun("unfav", "oat-1")

	assert.NoFileExists(t, c.FavoritesPath())
}

func Test_Favs_Lists_In_Catalog_Order_When_Saved(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	c.WriteFile("favorites.json", `{"favorites": ["yog-1", "oat-1"]}`)

	stdout := c.MustRun("favs")

	assert.Equal(t, "Favorites:\n - Banana Oatmeal  [oat-1]\n - Yogurt Dip  [yog-1]", stdout)
}

func Test_Favs_Prints_Message_When_Empty(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		content string
	}{
		{name: "missing file", content: ""},
		{name: "empty list", content: `{"favorites": []}`},
		{name: "no key", content: `{"other": 1}`},
		{name: "not an object", content: `["oat-1"]`},
		{name: "not a list", content: `{"favorites": "oat-1"}`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newCatalogCLI(t)
			if tt.content != "" {
				c.WriteFile("favorites.json", tt.content)
			}

			stdout, stderr, exitCode := c.Run("favs")

			require.Equal(t, 0, exitCode)
			assert.Equal(t, "No favorites saved yet.\n", stdout)
			assert.Empty(t, stderr)
		})
	}
}

func Test_Favs_Warns_When_IDs_Dangling(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	c.WriteFile("favorites.json", `{"favorites": ["ghost", "soup-1", 7]}`)

	stdout, stderr, exitCode := c.Run("favs")

	require.Equal(t, 0, exitCode)
	assert.Equal(t, []string{"soup-1"}, listedIDs(stdout))
	cli.AssertContains(t, stderr, "warning: favorites not in catalog: ghost")
}

func Test_Favs_Logs_When_File_Malformed(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	c.WriteFile("favorites.json", `{"favorites": [`)

	stdout, stderr, exitCode := c.Run("favs")

	require.Equal(t, 0, exitCode)
	assert.Equal(t, "No favorites saved yet.\n", stdout)
	cli.AssertContains(t, stderr, "cannot load favorites")
	cli.AssertContains(t, stderr, "favorites.json")
}

func Test_Favorites_Env_When_Set(t *testing.T) {
	t.Parallel()

	c := newCatalogCLI(t)
	c.Env["MEALS_FAVORITES"] = "state/favs.json"
	c.WriteFile(filepath.Join("state", "favs.json"), `{"favorites": ["pb-1"]}`)

	stdout := c.MustRun("favs")

	assert.Equal(t, []string{"pb-1"}, listedIDs(stdout))
}

func Test_Print_Config_When_Defaults(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, "effective_cwd="+c.Dir)
	cli.AssertContains(t, stdout, "catalog="+c.CatalogPath())
	cli.AssertContains(t, stdout, "favorites="+c.FavoritesPath())
	cli.AssertContains(t, stdout, "log_level=warn")
	cli.AssertContains(t, stdout, "(defaults only)")
	cli.AssertNotContains(t, stdout, "log_file=")
}

func Test_Print_Config_When_Layers_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".meals.json", `{
  // project config
  "catalog": "recipes.json",
  "log_level": "info",
}`)
	c.WriteFile(".env", "MEALS_FAVORITES=from-dotenv.json\n")
	c.Env["MEALS_LOG_LEVEL"] = "error"

	stdout := c.MustRun("--catalog", "flag.json", "print-config")

	cli.AssertContains(t, stdout, "catalog="+filepath.Join(c.Dir, "flag.json"))
	cli.AssertContains(t, stdout, "favorites="+filepath.Join(c.Dir, "from-dotenv.json"))
	cli.AssertContains(t, stdout, "log_level=error")
	cli.AssertContains(t, stdout, "project_config="+filepath.Join(c.Dir, ".meals.json"))
	cli.AssertContains(t, stdout, "env_file="+filepath.Join(c.Dir, ".env"))
	cli.AssertContains(t, stdout, "env=MEALS_FAVORITES,MEALS_LOG_LEVEL")
}

func Test_Print_Config_When_JSON(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("print-config", "--json")

	cli.AssertContains(t, stdout, `"catalog": "data/meals.json"`)
	cli.AssertContains(t, stdout, `"favorites": "favorites.json"`)
	cli.AssertContains(t, stdout, `"log_level": "warn"`)
}

func Test_Print_Config_Fails_When_Config_Missing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("-c", "nope.json", "print-config")

	cli.AssertContains(t, stderr, "config file not found")
}
