package book

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/htmls2epub/cli/internal/book"
	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/cmdutil"
	herrors "github.com/htmls2epub/cli/internal/errors"
	"github.com/htmls2epub/cli/internal/output"
)

// NewInitCmd creates the init command.
func NewInitCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [input-dir]",
		Short: "Scaffold htmls-to-epub.json for a directory of HTML files",
		Long: `Scan a directory and write a starter htmls-to-epub.json.

Documents are ordered by file name. Each document's label comes from its
first heading or its <title>; h1 maps to navLevel 0, h2 to 1 and so on.
Stylesheets, images and fonts are listed without an order.

Examples:
  # Scaffold the manifest in the current directory
  htmls2epub init

  # Replace an existing manifest
  htmls2epub init ./my-book --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			dir := cmdutil.ResolveInputDir(args)
			fsys := afero.NewOsFs()
			target := filepath.Join(dir, book.ManifestFile)

			if _, err := fsys.Stat(target); err == nil && !force {
				return cmdutil.Fail("init failed", &herrors.DetailError{
					Type:     "manifest exists",
					Message:  "refusing to overwrite the existing manifest",
					Location: target,
					Hint:     "Use --force to overwrite it.",
					Cause:    herrors.ErrConfiguration,
				})
			}

			manifest, err := book.Scan(fsys, dir)
			if err != nil {
				return cmdutil.Fail("scanning book failed", err)
			}

			data, err := json.MarshalIndent(manifest, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding manifest: %w", err)
			}
			data = append(data, '\n')

			if err := afero.WriteFile(fsys, target, data, os.FileMode(0o644)); err != nil {
				return cmdutil.Fail("init failed", herrors.WrapCause(herrors.ErrIO, err, "writing "+target))
			}

			files := make(map[string]string, len(manifest.Files))
			for _, f := range manifest.Files {
				files[f.Filename] = entryNote(f)
			}
			fmt.Fprint(c.OutOrStdout(), output.RenderFileTree(filepath.Base(dir), files))
			fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf("%s written with %d files, %d in reading order",
				output.StyleNoun.Render(target), len(manifest.Files), len(manifest.SpineEntries()))))
			return nil
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing manifest")

	return c
}

// entryNote summarizes where an entry lands in the book.
func entryNote(f book.FileEntry) string {
	if !f.HasOrder() {
		return f.MediaType
	}
	note := fmt.Sprintf("#%d", *f.Order)
	if f.InNavigation() {
		note += strings.Repeat("  ", *f.NavLevel) + " " + f.Label()
	}
	return note
}
