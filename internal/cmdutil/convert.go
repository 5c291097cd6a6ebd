package cmdutil

import (
	"context"
	"fmt"

	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/config"
	"github.com/htmls2epub/cli/internal/convert"
	"github.com/htmls2epub/cli/internal/epub"
	"github.com/htmls2epub/cli/internal/output"
)

// ConvertBookOpts holds the inputs for ConvertBook.
type ConvertBookOpts struct {
	// Args from the cobra command (first arg is the input directory).
	Args []string
	// Output selects the archive location.
	Output OutputFlags
	// Metadata holds the metadata flags.
	Metadata MetadataFlags
	// Config is the global configuration.
	Config *cmdtypes.GlobalConfig
	// Converter runs the conversion. Nil uses convert.New().
	Converter *convert.Converter
}

// ConvertBook resolves options, runs the conversion behind a spinner and
// returns its result. On failure it returns an *ExitError with the exit code
// of the failure category and Printed set.
func ConvertBook(ctx context.Context, opts ConvertBookOpts) (*convert.Result, error) {
	if opts.Config == nil {
		return nil, &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: fmt.Errorf("configuration not loaded")}
	}

	settings := opts.Config.Resolve(ConfigFlags(opts.Output, opts.Metadata))
	config.LogResolvedValues(settings.Values())

	if err := config.ValidateLanguage(settings.Language.Value); err != nil {
		output.Warn("unusual language tag", "value", settings.Language.Value, "source", settings.Language.Source)
	}

	convertOpts := convert.Options{
		InputDir:       ResolveInputDir(opts.Args),
		OutputDir:      settings.OutputDir.Value,
		OutputFileName: settings.OutputFileName.Value,
	}
	convertOpts.Metadata, convertOpts.Fallback = SplitMetadata(settings)

	output.Debug("converting",
		"input", convertOpts.InputDir,
		"output", convertOpts.OutputPath(),
	)

	converter := opts.Converter
	if converter == nil {
		converter = convert.New()
	}

	var result *convert.Result
	err := output.RunWithSpinner(ctx, "Building "+convertOpts.OutputPath(), func(ctx context.Context) error {
		var err error
		result, err = converter.Convert(ctx, convertOpts)
		return err
	})
	if err != nil {
		return nil, Fail("build failed", err)
	}

	return result, nil
}

// SplitMetadata separates metadata given on the command line, which beats
// the book manifest, from environment and config file values, which only
// fill what the manifest leaves empty.
func SplitMetadata(s config.Settings) (overrides, fallback epub.Metadata) {
	assign := func(v config.ResolvedValue, set func(*epub.Metadata, string)) {
		switch v.Source {
		case config.SourceFlag:
			set(&overrides, v.Value)
		case config.SourceEnv, config.SourceConfig:
			set(&fallback, v.Value)
		}
	}

	assign(s.Title, func(m *epub.Metadata, v string) { m.Title = v })
	assign(s.Creator, func(m *epub.Metadata, v string) { m.Creator = v })
	assign(s.Language, func(m *epub.Metadata, v string) { m.Language = v })
	return overrides, fallback
}

// WriteBuildSummary writes the completion line and any skipped files.
func WriteBuildSummary(result *convert.Result) {
	logger := output.BookLogger(result.Metadata.Title)
	for _, path := range result.Skipped {
		logger.Warn(output.FormatEntryLine(path, output.StatusSkipped))
	}
	logger.Info("book written",
		"entries", len(result.Entries),
		"toc", result.NavEntries,
		"uuid", result.UUID,
	)
}
