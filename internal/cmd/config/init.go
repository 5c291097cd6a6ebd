package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/cmdutil"
	"github.com/htmls2epub/cli/internal/config"
	herrors "github.com/htmls2epub/cli/internal/errors"
	"github.com/htmls2epub/cli/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new configuration file",
		Long: `Create a new configuration file with default values.

The configuration file is created at ~/.htmls2epub/config.yaml by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	path, err := configPath(cfg)
	if err != nil {
		return cmdutil.Fail("config init failed", err)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return cmdutil.Fail("config init failed", herrors.WrapCause(herrors.ErrIO, err, "checking "+path))
	}
	if exists && !force {
		return cmdutil.Fail("config init failed", &herrors.DetailError{
			Type:     "config file exists",
			Message:  "refusing to overwrite the existing config file",
			Location: path,
			Hint:     "Use --force to overwrite it.",
			Cause:    herrors.ErrConfiguration,
		})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return cmdutil.Fail("config init failed", herrors.WrapCause(herrors.ErrIO, err, "creating config directory"))
	}

	data, err := config.DefaultConfig().Marshal()
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return cmdutil.Fail("config init failed", herrors.WrapCause(herrors.ErrIO, err, "writing "+path))
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file created: "+output.StyleNoun.Render(path)))
	return nil
}

// configPath returns the expanded config file path chosen at startup,
// resolving it again when the command runs outside the root command.
func configPath(cfg *cmdtypes.GlobalConfig) (string, error) {
	path := cfg.ConfigPath
	if path == "" {
		res, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{})
		if err != nil {
			return "", herrors.WrapCause(herrors.ErrConfiguration, err, "resolving config path")
		}
		path = res.ConfigPath
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", herrors.WrapCause(herrors.ErrConfiguration, err, "expanding config path")
	}
	return expanded, nil
}
