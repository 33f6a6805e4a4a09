package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/calvinalkan/toddler-meals/internal/meal"

	flag "github.com/spf13/pflag"
)

const filterHelp = `Filters match case-insensitively. Lists are comma-separated and repeated
flags are combined. "skip", "none", "blank", "n/a" and "na" leave a filter
unset.`

// Command is one meals subcommand: its flags, help text and handler.
type Command struct {
	// Flags holds command-specific flags. Optional; an empty set named after
	// the command is created when nil.
	Flags *flag.FlagSet

	// Usage follows "meals" in help output, starting with the command name.
	// Examples: "show <id>", "random [flags]", "fav <id>...".
	Usage string

	// Short is the one-line summary in the command listing.
	Short string

	// Long is the command help text. Short is used when empty.
	Long string

	// Filters registers the meal filter flags (-t, -a, -x). Exec reads them
	// with [Command.Query].
	Filters bool

	// IDs marks commands that take meal IDs. Args reach Exec trimmed with
	// blanks dropped, and at least one is required.
	IDs bool

	// Exec runs the command after flags are parsed.
	Exec func(ctx context.Context, o *IO, args []string) error

	prepared bool
}

// Name returns the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the entry for the command listing in the main usage.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-22s %s", c.Usage, c.Short)
}

// Query returns the filters given on the command line. It is empty for
// commands without Filters.
func (c *Command) Query() meal.Query {
	if !c.Filters {
		return meal.Query{}
	}

	return queryFromFlags(c.flags())
}

func (c *Command) flags() *flag.FlagSet {
	if c.prepared {
		return c.Flags
	}

	if c.Flags == nil {
		c.Flags = flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	}

	if c.Filters {
		addFilterFlags(c.Flags)
	}

	c.prepared = true

	return c.Flags
}

// PrintHelp prints "meals <cmd> --help" output.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: meals", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if c.Filters {
		o.Println()
		o.Println(filterHelp)
	}

	fs := c.flags()
	if fs.HasFlags() {
		o.Println()
		o.Println("Flags:")
		o.Printf("%s", fs.FlagUsages())
	}
}

// Run parses flags and executes the command, returning the exit code.
// Errors are printed here so they share ordering with buffered output.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	fs := c.flags()
	fs.SetOutput(&strings.Builder{})

	err := fs.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	rest := fs.Args()

	if c.IDs {
		rest = nonEmpty(rest)
		if len(rest) == 0 {
			o.ErrPrintln("error:", errIDRequired)
			return 1
		}
	}

	if err := c.Exec(ctx, o, rest); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return 0
}

// nonEmpty returns the trimmed, non-empty args.
func nonEmpty(args []string) []string {
	var out []string

	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}

	return out
}
