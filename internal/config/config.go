// Package config provides configuration loading and management.
package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Configuration keys as they appear in the config file.
const (
	KeyOutputDir      = "outputDir"
	KeyOutputFileName = "outputFileName"
	KeyBookTitle      = "book.title"
	KeyBookCreator    = "book.creator"
	KeyBookLanguage   = "book.language"
	KeyLogTimestamps  = "log.timestamps"
)

// BookConfig holds fallback book metadata. A value here is used only when
// neither the command line nor the book manifest sets it.
type BookConfig struct {
	// Title is the fallback dc:title.
	// Env: HTMLS2EPUB_BOOK_TITLE
	Title string `mapstructure:"title" yaml:"title,omitempty"`

	// Creator is the fallback dc:creator.
	// Env: HTMLS2EPUB_BOOK_CREATOR
	Creator string `mapstructure:"creator" yaml:"creator,omitempty"`

	// Language is the fallback dc:language.
	// Env: HTMLS2EPUB_BOOK_LANGUAGE
	Language string `mapstructure:"language" yaml:"language,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the htmls2epub configuration file.
type Config struct {
	// OutputDir is where archives are written when --output-dir is not given.
	// Env: HTMLS2EPUB_OUTPUT_DIR
	OutputDir string `mapstructure:"outputDir" yaml:"outputDir,omitempty"`

	// OutputFileName is the archive name. Default: output.epub
	// Env: HTMLS2EPUB_OUTPUT_FILE_NAME
	OutputFileName string `mapstructure:"outputFileName" yaml:"outputFileName,omitempty"`

	// Book contains fallback metadata.
	Book BookConfig `mapstructure:"book" yaml:"book"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// DefaultOutputFileName is the built-in archive name.
const DefaultOutputFileName = "output.epub"

// DefaultConfig returns a Config with all default values populated.
// Used by `htmls2epub config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		OutputFileName: DefaultOutputFileName,
		Book: BookConfig{
			Title:    "My Great Book",
			Creator:  "Me",
			Language: "en",
		},
		Log: LogConfig{Timestamps: &timestamps},
	}
}

// Marshal renders the config as YAML with a short header.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# htmls2epub configuration\n")
	buf.WriteString("# Values are overridden by HTMLS2EPUB_* environment variables and flags.\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
