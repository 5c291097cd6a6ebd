package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var jsonOutput bool

	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show htmls2epub version information.

Displays:
  - CLI version, commit, build date and Go version
  - EPUB document versions written
  - versions of the XML and archive libraries`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			info := version.Get()

			if jsonOutput {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding version: %w", err)
				}
				fmt.Fprintln(c.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprintln(c.OutOrStdout(), info.String())
			return nil
		},
	}

	c.Flags().BoolVar(&jsonOutput, "json", false, "Print version information as JSON")

	return c
}
