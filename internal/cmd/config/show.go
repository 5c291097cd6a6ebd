package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/config"
	"github.com/htmls2epub/cli/internal/output"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show every setting with the value in effect and where it came from.

Precedence: flag > env > config file > default. Book metadata from
htmls-to-epub.json sits between flags and env at build time.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			settings := cfg.Resolve(config.Flags{})

			t := output.NewTable("KEY", "VALUE", "SOURCE", "ENV")
			for _, v := range settings.Values() {
				value := v.Value
				if !v.IsSet() {
					value = output.StyleDim.Render("(unset)")
				}
				t.Row(v.Key, value, string(v.Source), config.EnvVar(v.Key))
			}

			w := c.OutOrStdout()
			if cfg.ConfigPath != "" {
				fmt.Fprintf(w, "%s %s (%s)\n\n", output.StyleDim.Render("config:"), cfg.ConfigPath, cfg.ConfigSource)
			}
			fmt.Fprintln(w, t.String())
			return nil
		},
	}
}
