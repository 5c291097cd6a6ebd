package convert

import (
	"path/filepath"
	"strings"

	"github.com/htmls2epub/cli/internal/epub"
	herrors "github.com/htmls2epub/cli/internal/errors"
)

// DefaultOutputFileName is used when Options.OutputFileName is empty.
const DefaultOutputFileName = "output.epub"

// workDirName is the scratch directory created under the output directory.
const workDirName = "template"

// Options selects one conversion run.
type Options struct {
	// InputDir holds htmls-to-epub.json and the files it lists.
	InputDir string

	// OutputDir receives the archive and, while running, the scratch tree.
	OutputDir string

	// OutputFileName is the archive name inside OutputDir.
	OutputFileName string

	// Metadata overrides the manifest's title, creator and language.
	Metadata epub.Metadata

	// Fallback fills metadata neither Metadata nor the manifest set,
	// before the built-in defaults apply.
	Fallback epub.Metadata
}

// validate checks options before any filesystem access and applies defaults.
func (o *Options) validate() error {
	if strings.TrimSpace(o.InputDir) == "" {
		return herrors.NewConfigurationError("input directory is required",
			"Pass the directory containing htmls-to-epub.json.")
	}
	if strings.TrimSpace(o.OutputDir) == "" {
		return herrors.NewConfigurationError("output directory is required",
			"Pass --output-dir or set outputDir in the config file.")
	}

	if o.OutputFileName == "" {
		o.OutputFileName = DefaultOutputFileName
	}
	if o.OutputFileName != filepath.Base(o.OutputFileName) || o.OutputFileName == "." || o.OutputFileName == ".." {
		return herrors.NewConfigurationError("output file name must not contain a directory: "+o.OutputFileName,
			"Use --output-dir to choose the directory.")
	}
	if o.OutputFileName == workDirName {
		return herrors.NewConfigurationError("output file name collides with the scratch directory: "+workDirName,
			"Choose another --output-file.")
	}
	return nil
}

// OutputPath returns where the archive is written.
func (o Options) OutputPath() string {
	name := o.OutputFileName
	if name == "" {
		name = DefaultOutputFileName
	}
	return filepath.Join(o.OutputDir, name)
}

// WorkDir returns the scratch directory of the run.
func (o Options) WorkDir() string {
	return filepath.Join(o.OutputDir, workDirName)
}
