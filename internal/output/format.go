package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/htmls2epub/cli/internal/nav"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	// FormatTree renders a styled tree.
	FormatTree OutputFormat = "tree"

	// FormatJSON outputs in JSON format.
	FormatJSON OutputFormat = "json"

	// FormatYAML outputs in YAML format.
	FormatYAML OutputFormat = "yaml"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatTree, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a string into an OutputFormat.
// Unknown values are returned as-is and fail IsValid.
func ParseOutputFormat(s string) OutputFormat {
	switch strings.ToLower(s) {
	case "", "tree":
		return FormatTree
	case "yaml", "yml":
		return FormatYAML
	case "json":
		return FormatJSON
	default:
		return OutputFormat(s)
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"tree", "json", "yaml"}
}

// WriteOutline writes a table of contents to w in the given format.
func WriteOutline(w io.Writer, format OutputFormat, title string, outline []nav.Outline) error {
	if outline == nil {
		outline = []nav.Outline{}
	}

	switch format {
	case FormatTree:
		_, err := io.WriteString(w, RenderOutline(title, outline))
		return err
	case FormatJSON:
		data, err := json.MarshalIndent(outline, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding outline: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		data, err := yaml.Marshal(outline)
		if err != nil {
			return fmt.Errorf("encoding outline: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format %q (valid: %s)", format, strings.Join(ValidFormats(), ", "))
	}
}
