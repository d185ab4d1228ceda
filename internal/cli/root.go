package cli

import (
	"github.com/chetan-code/missioncontrol/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options are the flags shared by every subcommand.
type options struct {
	envFile string
	dbURL   string
}

func (o *options) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.envFile, "env-file", ".env", "dotenv file to load if present")
	fs.StringVar(&o.dbURL, "db", "", "database URL or SQLite path (overrides DB_URL)")
}

// load reads configuration and applies flag overrides.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}
	if o.dbURL != "" {
		cfg.DBURL = o.dbURL
	}
	return cfg, nil
}

func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "missioncontrol",
		Short:         "Team task tracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.bind(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(opts),
		newCreateAdminCmd(opts),
	)
	return root
}
