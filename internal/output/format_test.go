package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"table", FormatTable},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"", FormatTable},
		{"bogus", FormatTable},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseFormat(tc.input))
		})
	}
}

func TestFormatIsValid(t *testing.T) {
	assert.True(t, FormatTable.IsValid())
	assert.True(t, FormatYAML.IsValid())
	assert.True(t, FormatJSON.IsValid())
	assert.False(t, Format("dir").IsValid())
}

func TestTableRendersHeadersAndRows(t *testing.T) {
	tbl := NewTable("SERVICE", "OUTCOME").
		Row("api", "converged").
		Row("app", "skipped")

	rendered := tbl.String()
	assert.Contains(t, rendered, "SERVICE")
	assert.Contains(t, rendered, "api")
	assert.Contains(t, rendered, "skipped")
}
