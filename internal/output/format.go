package output

import "strings"

// Format specifies the output format for status-style commands.
type Format string

const (
	// FormatTable outputs a styled table.
	FormatTable Format = "table"

	// FormatYAML outputs YAML.
	FormatYAML Format = "yaml"

	// FormatJSON outputs JSON.
	FormatJSON Format = "json"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid checks if the format is one of the supported values.
func (f Format) IsValid() bool {
	switch f {
	case FormatTable, FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseFormat parses a string into a Format.
// Returns FormatTable if the string is empty or unrecognized.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatTable
	}
}

// ValidFormats returns the supported format strings.
func ValidFormats() []string {
	return []string{"table", "yaml", "json"}
}
