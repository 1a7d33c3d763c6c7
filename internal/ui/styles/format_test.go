package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"fits exactly", "hello", 5, "hello"},
		{"shorter than max", "hi", 10, "hi"},
		{"needs truncation", "hello world", 8, "hello..."},
		{"zero width", "hello", 0, ""},
		{"width of one", "hello", 1, "."},
		{"width of three", "hello", 3, "..."},
		{"empty string", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxWidth)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatCheckSummary(t *testing.T) {
	require.Empty(t, FormatCheckSummary(0, 0), "no checks should produce no summary")

	allPass := FormatCheckSummary(4, 4)
	require.Contains(t, allPass, "4/4 checks passed")

	someFail := FormatCheckSummary(1, 3)
	require.Contains(t, someFail, "1/3 checks passed")
}

func TestFormatRegionList(t *testing.T) {
	require.Equal(t, "none", FormatRegionList(nil))
	require.Equal(t, "1:1-1:15", FormatRegionList([]string{"1:1-1:15"}))
	require.Equal(t, "1:1-1:15, 3:4-3:9", FormatRegionList([]string{"1:1-1:15", "3:4-3:9"}))
}
