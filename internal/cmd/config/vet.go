package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/cmdutil"
	"github.com/htmls2epub/cli/internal/config"
	herrors "github.com/htmls2epub/cli/internal/errors"
	"github.com/htmls2epub/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the configuration file",
		Long: `Check that the configuration file parses and that its values are
well formed: the output file name is a bare name and the book language
looks like a language tag.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			path, err := configPath(cfg)
			if err != nil {
				return cmdutil.Fail("config vet failed", err)
			}

			exists, err := config.ConfigFileExists(path)
			if err != nil {
				return cmdutil.Fail("config vet failed", herrors.WrapCause(herrors.ErrIO, err, "checking "+path))
			}
			if !exists {
				return cmdutil.Fail("config vet failed", &herrors.DetailError{
					Type:     "config file not found",
					Message:  "nothing to validate",
					Location: path,
					Hint:     "Run 'htmls2epub config init' to create one.",
					Cause:    herrors.ErrConfiguration,
				})
			}

			if err := config.ValidateFile(path); err != nil {
				return cmdutil.Fail("config vet failed", &herrors.DetailError{
					Type:     "invalid config file",
					Message:  err.Error(),
					Location: path,
					Cause:    herrors.Join(herrors.ErrConfiguration, err),
				})
			}

			fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file is valid: "+output.StyleNoun.Render(path)))
			return nil
		},
	}
}
