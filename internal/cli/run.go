package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/calvinalkan/toddler-meals/internal/config"
	"github.com/calvinalkan/toddler-meals/internal/fs"

	flag "github.com/spf13/pflag"
)

var errUnknownCommand = errors.New("unknown command")

// defaultCommand runs when no command is given.
const defaultCommand = "shell"

// Run is the main entry point. Returns exit code.
//
// sigCh delivers interrupts to the interactive shell; nil disables that.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globalFlags := flag.NewFlagSet("meals", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.SetOutput(io.Discard)

	flagHelp := globalFlags.BoolP("help", "h", false, "Show help")
	flagCwd := globalFlags.StringP("cwd", "C", "", "Run as if started in `dir`")
	flagConfig := globalFlags.StringP("config", "c", "", "Use specified config `file`")
	flagCatalog := globalFlags.String("catalog", "", "Meal catalog `file` (JSON array)")
	flagFavorites := globalFlags.String("favorites", "", "Favorites `file`")
	flagLogLevel := globalFlags.String("log-level", "", "Log `level` (debug, info, warn, error)")
	flagSeed := globalFlags.Uint64("seed", 0, "Seed for random picks (0 = random)")

	sess := &session{in: in, sigCh: sigCh}
	commands := []*Command{
		ShellCmd(sess),
		RandomCmd(sess),
		LsCmd(sess),
		ShowCmd(sess),
		FavsCmd(sess),
		FavCmd(sess),
		UnfavCmd(sess),
		PrintConfigCmd(sess),
	}

	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	var argv []string
	if len(args) > 1 {
		argv = args[1:]
	}

	if err := globalFlags.Parse(argv); err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	rest := globalFlags.Args()

	if *flagHelp || (len(rest) > 0 && rest[0] == "help") {
		printUsage(out, globalFlags, commands)

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: *flagCwd,
		ConfigPath:      *flagConfig,
		Overrides: config.Overrides{
			Catalog:      *flagCatalog,
			HasCatalog:   globalFlags.Changed("catalog"),
			Favorites:    *flagFavorites,
			HasFavorites: globalFlags.Changed("favorites"),
			LogLevel:     *flagLogLevel,
			HasLogLevel:  globalFlags.Changed("log-level"),
		},
		Env: env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	name := defaultCommand

	var cmdArgs []string
	if len(rest) > 0 {
		name = rest[0]
		cmdArgs = rest[1:]
	}

	cmd, ok := commandMap[name]
	if !ok {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", errUnknownCommand, name))
		fprintln(errOut)
		printUsage(errOut, globalFlags, commands)

		return 1
	}

	logger, closeLogger, err := newLogger(&cfg, errOut)
	if err != nil {
		fprintln(errOut, "error: cannot open log file:", err)

		return 1
	}
	defer closeLogger()

	sess.cfg = cfg
	sess.fs = fs.NewReal()
	sess.log = logger
	sess.rng = newRand(*flagSeed)

	o := NewIO(out, errOut)
	code := cmd.Run(context.Background(), o, cmdArgs)
	o.Finish()

	return code
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globalFlags *flag.FlagSet, commands []*Command) {
	fprintln(w, `meals - toddler meal ideas

Usage: meals [global flags] [command] [args]

With no command, meals starts the interactive shell.

Global flags:`)
	fprintln(w, globalFlags.FlagUsages())
	fprintln(w, "Commands:")

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Run 'meals <command> --help' for command details.")
}
