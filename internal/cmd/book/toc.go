package book

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/htmls2epub/cli/internal/book"
	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/cmdutil"
	herrors "github.com/htmls2epub/cli/internal/errors"
	"github.com/htmls2epub/cli/internal/nav"
	"github.com/htmls2epub/cli/internal/output"
)

// NewTocCmd creates the toc command.
func NewTocCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "toc [input-dir]",
		Short: "Preview the table of contents of a book directory",
		Long: `Preview the table of contents that build would write, without
writing anything.

Examples:
  # Show the outline as a tree
  htmls2epub toc ./my-book

  # Export it as JSON
  htmls2epub toc ./my-book -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			f := output.ParseOutputFormat(format)
			if !f.IsValid() {
				return cmdutil.Fail("invalid flag", herrors.NewConfigurationError(
					fmt.Sprintf("unsupported output format %q", format),
					"Use one of: "+strings.Join(output.ValidFormats(), ", ")))
			}

			fsys := afero.NewOsFs()
			manifest, err := book.LoadManifest(fsys, cmdutil.ResolveInputDir(args))
			if err != nil {
				return cmdutil.Fail("reading manifest failed", err)
			}
			if err := manifest.Validate(); err != nil {
				return cmdutil.Fail("invalid manifest", err)
			}

			tree, err := nav.BuildTree(manifest.Files)
			if err != nil {
				return cmdutil.Fail("building table of contents failed", err)
			}

			title := manifest.Title
			if title == "" {
				title = "Contents"
			}
			return output.WriteOutline(c.OutOrStdout(), f, title, tree.Outline())
		},
	}

	c.Flags().StringVarP(&format, "output", "o", "tree",
		"Output format: "+strings.Join(output.ValidFormats(), ", "))

	return c
}
