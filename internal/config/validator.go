package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// languageRegex accepts BCP 47 style tags such as "en", "de-AT" or "zh-Hant-TW".
var languageRegex = regexp.MustCompile(`^[A-Za-z]{2,8}(-[A-Za-z0-9]{1,8})*$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks field formats. Empty fields are valid.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.OutputDir != "" && strings.TrimSpace(cfg.OutputDir) == "" {
		errs = append(errs, ValidationError{
			Field:   KeyOutputDir,
			Message: "must not be empty or whitespace only",
		})
	}

	if err := ValidateOutputFileName(cfg.OutputFileName); err != nil {
		errs = append(errs, *err.(*ValidationError))
	}

	if err := ValidateLanguage(cfg.Book.Language); err != nil {
		errs = append(errs, *err.(*ValidationError))
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateFile validates a configuration file at the given path.
func ValidateFile(path string) error {
	cfg, err := NewLoader().Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return Validate(cfg)
}

// ValidateOutputFileName checks that name is a bare file name.
func ValidateOutputFileName(name string) error {
	if name == "" {
		return nil
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return &ValidationError{
			Field:   KeyOutputFileName,
			Message: "must be a file name without directory components",
		}
	}
	return nil
}

// ValidateLanguage checks that tag looks like a language tag.
func ValidateLanguage(tag string) error {
	if tag == "" {
		return nil
	}
	if !languageRegex.MatchString(tag) {
		return &ValidationError{
			Field:   KeyBookLanguage,
			Message: "must be a language tag such as \"en\" or \"pt-BR\"",
		}
	}
	return nil
}
