// Package config provides CLI command implementations for the config command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/htmls2epub/cli/internal/cmdtypes"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long: `Configuration management for htmls2epub.

The config file lives at ~/.htmls2epub/config.yaml unless --config or
HTMLS2EPUB_CONFIG names another path.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigShowCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))

	return c
}
