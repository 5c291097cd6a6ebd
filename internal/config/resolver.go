package config

import (
	"os"
	"sort"
	"strconv"

	"github.com/htmls2epub/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one configuration value and the source that won.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// IsSet reports whether any source supplied a value.
func (v ResolvedValue) IsSet() bool {
	return v.Source != ""
}

// ResolveOptions lists the candidate values for one key. Empty means unset.
type ResolveOptions struct {
	Key          string
	FlagValue    string
	EnvValue     string
	ConfigValue  string
	DefaultValue string
}

// Resolve picks a value using precedence flag > env > config > default.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, opts.EnvValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result
}

// Flags carries the command-line values taking part in resolution.
// Empty strings and a nil Timestamps mean the flag was not given.
type Flags struct {
	OutputDir      string
	OutputFileName string
	Title          string
	Creator        string
	Language       string
	Timestamps     *bool
}

// Settings is the resolved configuration of one invocation.
type Settings struct {
	OutputDir      ResolvedValue
	OutputFileName ResolvedValue
	Title          ResolvedValue
	Creator        ResolvedValue
	Language       ResolvedValue
	Timestamps     ResolvedValue
}

// ResolveSettings merges flags, the environment and the config file.
// Book metadata has no default here: the book manifest sits between the
// config file and the built-in defaults and is applied during conversion.
func ResolveSettings(loader *Loader, cfg *Config, flags Flags) Settings {
	if cfg == nil {
		cfg = &Config{}
	}

	return Settings{
		OutputDir: Resolve(ResolveOptions{
			Key:         KeyOutputDir,
			FlagValue:   flags.OutputDir,
			EnvValue:    loader.Env(KeyOutputDir),
			ConfigValue: cfg.OutputDir,
		}),
		OutputFileName: Resolve(ResolveOptions{
			Key:          KeyOutputFileName,
			FlagValue:    flags.OutputFileName,
			EnvValue:     loader.Env(KeyOutputFileName),
			ConfigValue:  cfg.OutputFileName,
			DefaultValue: DefaultOutputFileName,
		}),
		Title: Resolve(ResolveOptions{
			Key:         KeyBookTitle,
			FlagValue:   flags.Title,
			EnvValue:    loader.Env(KeyBookTitle),
			ConfigValue: cfg.Book.Title,
		}),
		Creator: Resolve(ResolveOptions{
			Key:         KeyBookCreator,
			FlagValue:   flags.Creator,
			EnvValue:    loader.Env(KeyBookCreator),
			ConfigValue: cfg.Book.Creator,
		}),
		Language: Resolve(ResolveOptions{
			Key:         KeyBookLanguage,
			FlagValue:   flags.Language,
			EnvValue:    loader.Env(KeyBookLanguage),
			ConfigValue: cfg.Book.Language,
		}),
		Timestamps: Resolve(ResolveOptions{
			Key:          KeyLogTimestamps,
			FlagValue:    formatBool(flags.Timestamps),
			EnvValue:     loader.Env(KeyLogTimestamps),
			ConfigValue:  formatBool(cfg.Log.Timestamps),
			DefaultValue: "true",
		}),
	}
}

// Values returns every resolved value in a stable order.
func (s Settings) Values() []ResolvedValue {
	return []ResolvedValue{s.OutputDir, s.OutputFileName, s.Title, s.Creator, s.Language, s.Timestamps}
}

// TimestampsEnabled parses the resolved log.timestamps value. Unparseable
// values fall back to the default (on).
func (s Settings) TimestampsEnabled() bool {
	b, err := strconv.ParseBool(s.Timestamps.Value)
	if err != nil {
		return true
	}
	return b
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) HTMLS2EPUB_CONFIG env, (3) ~/.htmls2epub/config.yaml
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolveConfigPathResult{Shadowed: map[ConfigSource]string{}}, err
	}

	v := Resolve(ResolveOptions{
		Key:          "config",
		FlagValue:    opts.FlagValue,
		EnvValue:     os.Getenv(EnvConfig),
		DefaultValue: paths.ConfigFile,
	})

	return ResolveConfigPathResult{
		ConfigPath: v.Value,
		Source:     v.Source,
		Shadowed:   v.Shadowed,
	}, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		if !v.IsSet() {
			continue
		}
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)

		sources := make([]string, 0, len(v.Shadowed))
		for source := range v.Shadowed {
			sources = append(sources, string(source))
		}
		sort.Strings(sources)
		for _, source := range sources {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", v.Shadowed[ConfigSource(source)],
			)
		}
	}
}
