package book

import (
	"github.com/spf13/cobra"

	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/cmdutil"
	"github.com/htmls2epub/cli/internal/inspect"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.epub>",
		Short: "Show the metadata, manifest and contents of an EPUB",
		Long: `Open a built EPUB and print its title, creator, language, package
manifest with spine membership and the table of contents.

Examples:
  htmls2epub inspect ./dist/output.epub`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			report, err := inspect.Open(args[0])
			if err != nil {
				return cmdutil.Fail("inspect failed", err)
			}
			return report.Render(c.OutOrStdout())
		},
	}
}
