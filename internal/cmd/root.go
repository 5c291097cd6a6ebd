// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	bookcmd "github.com/htmls2epub/cli/internal/cmd/book"
	configcmd "github.com/htmls2epub/cli/internal/cmd/config"
	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/config"
	"github.com/htmls2epub/cli/internal/output"
)

// NewRootCmd creates the root command for the htmls2epub CLI.
func NewRootCmd() *cobra.Command {
	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
	)

	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "htmls2epub",
		Short: "Package a directory of HTML files as an EPUB",
		Long: `htmls2epub turns a directory of HTML files described by an
htmls-to-epub.json manifest into an EPUB 2 archive with a nested table of
contents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var timestamps *bool
			if cmd.Flags().Changed("timestamps") {
				timestamps = output.BoolPtr(timestampsFlag)
			}
			initializeGlobals(cfg, configFlag, verboseFlag, timestamps)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: HTMLS2EPUB_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(bookcmd.NewBuildCmd(cfg))
	rootCmd.AddCommand(bookcmd.NewTocCmd(cfg))
	rootCmd.AddCommand(bookcmd.NewInitCmd(cfg))
	rootCmd.AddCommand(bookcmd.NewInspectCmd(cfg))
	rootCmd.AddCommand(configcmd.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals loads the config file and sets up logging. A config file
// that cannot be read is logged and ignored so commands that do not need it
// keep working.
func initializeGlobals(cfg *cmdtypes.GlobalConfig, configFlag string, verbose bool, timestamps *bool) {
	cfg.Verbose = verbose
	cfg.Timestamps = timestamps
	cfg.Loader = config.NewLoader()
	cfg.Config = &config.Config{}

	pathResult, pathErr := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: configFlag})
	if pathErr == nil {
		cfg.ConfigPath = pathResult.ConfigPath
		cfg.ConfigSource = pathResult.Source
	}

	var loadErr error
	if cfg.ConfigPath != "" {
		var loaded *config.Config
		if loaded, loadErr = cfg.Loader.Load(cfg.ConfigPath); loadErr == nil {
			cfg.Config = loaded
		}
	}

	settings := cfg.Resolve(config.Flags{})
	output.SetupLogging(output.LogConfig{
		Verbose:    verbose,
		Timestamps: output.BoolPtr(settings.TimestampsEnabled()),
	})

	if pathErr != nil {
		output.Debug("could not resolve config path", "error", pathErr)
	}
	if loadErr != nil {
		output.Warn("ignoring unreadable config file", "path", cfg.ConfigPath, "error", loadErr)
	}

	output.Debug("initializing CLI",
		"config", cfg.ConfigPath,
		"configSource", cfg.ConfigSource,
	)
}
