// Package cmdutil provides shared command utilities for book subcommands.
// It centralizes flag group management, the conversion preamble and error
// reporting.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/htmls2epub/cli/internal/config"
)

// OutputFlags holds where the archive is written (build).
type OutputFlags struct {
	OutputDir      string
	OutputFileName string
}

// AddTo registers the output flags on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.OutputDir, "output-dir", "d", "",
		"Directory to write the EPUB into (env: HTMLS2EPUB_OUTPUT_DIR)")
	cmd.Flags().StringVar(&f.OutputFileName, "output-file", "",
		"Archive file name (default: output.epub)")
}

// MetadataFlags holds book metadata overrides (build).
type MetadataFlags struct {
	Title    string
	Creator  string
	Language string
}

// AddTo registers the metadata flags on the given cobra command.
func (f *MetadataFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Title, "title", "",
		"Book title (overrides the manifest)")
	cmd.Flags().StringVar(&f.Creator, "creator", "",
		"Book author (overrides the manifest)")
	cmd.Flags().StringVar(&f.Language, "language", "",
		"Book language tag, e.g. en (overrides the manifest)")
}

// ConfigFlags combines the flag groups into resolver input.
func ConfigFlags(out OutputFlags, meta MetadataFlags) config.Flags {
	return config.Flags{
		OutputDir:      out.OutputDir,
		OutputFileName: out.OutputFileName,
		Title:          meta.Title,
		Creator:        meta.Creator,
		Language:       meta.Language,
	}
}

// ResolveInputDir returns the book directory from command args,
// defaulting to the current directory.
func ResolveInputDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
