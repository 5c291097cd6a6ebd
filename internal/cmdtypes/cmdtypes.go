// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/book, internal/cmd/config).
package cmdtypes

import (
	"github.com/htmls2epub/cli/internal/config"
	herrors "github.com/htmls2epub/cli/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is created empty by the root command, filled once at startup and passed
// into every sub-command constructor.
type GlobalConfig struct {
	// Config holds the config file values. Never nil after startup.
	Config *config.Config

	// Loader reads environment overrides.
	Loader *config.Loader

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// ConfigSource tells where ConfigPath came from.
	ConfigSource config.ConfigSource

	// Verbose is the --verbose flag.
	Verbose bool

	// Timestamps is the --timestamps flag when it was given explicitly.
	Timestamps *bool
}

// Resolve merges command flags with the environment and the config file.
func (g *GlobalConfig) Resolve(flags config.Flags) config.Settings {
	loader := g.Loader
	if loader == nil {
		loader = config.NewLoader()
	}
	if flags.Timestamps == nil {
		flags.Timestamps = g.Timestamps
	}
	return config.ResolveSettings(loader, g.Config, flags)
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess            = herrors.ExitSuccess
	ExitGeneralError       = herrors.ExitGeneralError
	ExitConfigurationError = herrors.ExitConfigurationError
	ExitIOError            = herrors.ExitIOError
	ExitParseError         = herrors.ExitParseError
	ExitStructuralError    = herrors.ExitStructuralError
	ExitArchiveError       = herrors.ExitArchiveError
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = herrors.ExitError
