package cli

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"carbon-dropins/internal/app"
	"carbon-dropins/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "CARBON_DROPINS"

var newAppService = app.NewService

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

// layoutOptions are shared by every subcommand.
type layoutOptions struct {
	ComponentsDir string
	Profile       string
	DropinsDir    string
	LedgerPath    string
	BundlePattern string
	DropinsPrefix string
	StartLevel    int
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	layout := &layoutOptions{}
	cmd := &cobra.Command{
		Use:          "carbon-dropins",
		Short:        "Reconcile OSGi dropins bundles into bundles.info",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringVar(&layout.ComponentsDir, "components-dir", "", "Carbon repository/components directory")
	flags.StringVar(&layout.Profile, "profile", types.DefaultProfile, "Carbon profile whose ledger is reconciled")
	flags.StringVar(&layout.DropinsDir, "dropins-dir", "", "Dropins directory (defaults to <components-dir>/dropins)")
	flags.StringVar(&layout.LedgerPath, "ledger", "", "bundles.info path (defaults to the profile ledger)")
	flags.StringVar(&layout.BundlePattern, "bundle-pattern", types.DefaultBundlePattern, "Glob matching bundle archives in the dropins directory")
	flags.StringVar(&layout.DropinsPrefix, "dropins-prefix", types.DefaultDropinsPrefix, "Ledger path prefix of dropins bundles")
	flags.IntVar(&layout.StartLevel, "start-level", types.DefaultStartLevel, "Start level of dropins bundles")

	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("components_dir", flags.Lookup("components-dir"))
	_ = viper.BindPFlag("profile", flags.Lookup("profile"))
	_ = viper.BindPFlag("dropins_dir", flags.Lookup("dropins-dir"))
	_ = viper.BindPFlag("ledger_path", flags.Lookup("ledger"))
	_ = viper.BindPFlag("bundle_pattern", flags.Lookup("bundle-pattern"))
	_ = viper.BindPFlag("dropins_prefix", flags.Lookup("dropins-prefix"))
	_ = viper.BindPFlag("start_level", flags.Lookup("start-level"))

	cmd.AddCommand(newReconcileCommand(layout))
	cmd.AddCommand(newScanCommand(layout))
	cmd.AddCommand(newInspectCommand(layout))
	cmd.AddCommand(newValidateCommand(layout))
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("carbon-dropins")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/carbon-dropins")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func layoutRequest(cmd *cobra.Command, opts *layoutOptions) app.LayoutRequest {
	return app.LayoutRequest{
		ComponentsDir: resolveString(cmd, opts.ComponentsDir, "components_dir", "components-dir"),
		Profile:       resolveString(cmd, opts.Profile, "profile", "profile"),
		DropinsDir:    resolveString(cmd, opts.DropinsDir, "dropins_dir", "dropins-dir"),
		LedgerPath:    resolveString(cmd, opts.LedgerPath, "ledger_path", "ledger"),
		BundlePattern: resolveString(cmd, opts.BundlePattern, "bundle_pattern", "bundle-pattern"),
		DropinsPrefix: resolveString(cmd, opts.DropinsPrefix, "dropins_prefix", "dropins-prefix"),
		StartLevel:    resolveInt(cmd, opts.StartLevel, "start_level", "start-level"),
	}
}
