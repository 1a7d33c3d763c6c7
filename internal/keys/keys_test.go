package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_KeyAssignments(t *testing.T) {
	keymap := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Up uses k and up", keymap.Up, []string{"k", "up"}},
		{"Down uses j and down", keymap.Down, []string{"j", "down"}},
		{"Left uses h and left", keymap.Left, []string{"h", "left"}},
		{"Right uses l and right", keymap.Right, []string{"l", "right"}},
		{"Extend uses v", keymap.Extend, []string{"v"}},
		{"Collapse uses esc", keymap.Collapse, []string{"esc"}},
		{"SwitchPane uses tab", keymap.SwitchPane, []string{"tab"}},
		{"Reload uses r", keymap.Reload, []string{"r"}},
		{"Checks uses c", keymap.Checks, []string{"c"}},
		{"Yank uses y", keymap.Yank, []string{"y"}},
		{"Logs uses ctrl+l", keymap.Logs, []string{"ctrl+l"}},
		{"Quit uses q and ctrl+c", keymap.Quit, []string{"q", "ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_HelpTextDefined(t *testing.T) {
	keymap := DefaultKeyMap()

	for _, row := range keymap.FullHelp() {
		for _, b := range row {
			help := b.Help()
			require.NotEmpty(t, help.Key, "key help should not be empty")
			require.NotEmpty(t, help.Desc, "description help should not be empty")
		}
	}
}

func TestShortHelp(t *testing.T) {
	keymap := DefaultKeyMap()
	require.Len(t, keymap.ShortHelp(), 2)
}

func TestFullHelp_CoversAllBindings(t *testing.T) {
	keymap := DefaultKeyMap()

	var count int
	for _, row := range keymap.FullHelp() {
		count += len(row)
	}
	require.Equal(t, 13, count, "every binding appears in full help")
}
