// Package book provides CLI command implementations that work on a book
// directory or a built archive.
package book

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/cmdutil"
	"github.com/htmls2epub/cli/internal/output"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		outFlags  cmdutil.OutputFlags
		metaFlags cmdutil.MetadataFlags
	)

	c := &cobra.Command{
		Use:   "build [input-dir]",
		Short: "Build an EPUB from a book directory",
		Long: `Build an EPUB archive from a directory of HTML files.

The directory must contain htmls-to-epub.json listing every file of the book.
Entries with an order form the reading order; entries that also carry a
navLevel and a navLabel appear in the table of contents, nested by level.

Metadata precedence:
  --title/--creator/--language > manifest > env > config file > built-in

Examples:
  # Build the book in the current directory
  htmls2epub build --output-dir ./dist

  # Build with a custom file name and title
  htmls2epub build ./my-book -d ./dist --output-file novel.epub --title "My Novel"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			result, err := cmdutil.ConvertBook(c.Context(), cmdutil.ConvertBookOpts{
				Args:     args,
				Output:   outFlags,
				Metadata: metaFlags,
				Config:   cfg,
			})
			if err != nil {
				return err
			}

			cmdutil.WriteBuildSummary(result)
			fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf("%s written (%s)",
				output.StyleNoun.Render(result.OutputPath), output.FormatSize(result.Bytes))))
			return nil
		},
	}

	outFlags.AddTo(c)
	metaFlags.AddTo(c)

	return c
}
