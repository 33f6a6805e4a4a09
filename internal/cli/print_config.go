package cli

import (
	"context"
	"strings"

	"github.com/calvinalkan/toddler-meals/internal/config"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(sess *session) *Command {
	fs := flag.NewFlagSet("print-config", flag.ContinueOnError)
	fs.Bool("json", false, "Print the merged config file values as JSON")

	return &Command{
		Flags: fs,
		Usage: "print-config [--json]",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			asJSON, _ := fs.GetBool("json")
			if asJSON {
				formatted, err := config.Format(sess.cfg)
				if err != nil {
					return err
				}

				o.Println(formatted)

				return nil
			}

			execPrintConfig(o, sess.cfg)

			return nil
		},
	}
}

func execPrintConfig(o *IO, cfg config.Config) {
	o.Println("effective_cwd=" + cfg.EffectiveCwd)
	o.Println("catalog=" + cfg.CatalogAbs)
	o.Println("favorites=" + cfg.FavoritesAbs)
	o.Println("log_level=" + cfg.Level.String())

	if cfg.LogFileAbs != "" {
		o.Println("log_file=" + cfg.LogFileAbs)
	}

	o.Println("")
	o.Println("# sources")

	src := cfg.Sources
	if src.Global == "" && src.Project == "" && src.EnvFile == "" && len(src.Env) == 0 {
		o.Println("(defaults only)")

		return
	}

	if src.Global != "" {
		o.Println("global_config=" + src.Global)
	}

	if src.Project != "" {
		o.Println("project_config=" + src.Project)
	}

	if src.EnvFile != "" {
		o.Println("env_file=" + src.EnvFile)
	}

	if len(src.Env) > 0 {
		o.Println("env=" + strings.Join(src.Env, ","))
	}
}
