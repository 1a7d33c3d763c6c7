package logoverlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/weft/internal/log"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func initLogs(t *testing.T) {
	t.Helper()
	cleanup, err := log.Init("")
	require.NoError(t, err)
	t.Cleanup(cleanup)
	log.SetMinLevel(log.LevelDebug)
	log.ClearHistory()
}

func TestOverlay_ShowsRecentEntries(t *testing.T) {
	initLogs(t)
	log.Info(log.CatEngine, "fixture loaded", "markers", 7)
	log.Error(log.CatFixture, "parse failed")

	m := New()
	m.SetSize(100, 40)
	m.Show()

	view := m.View()
	require.Contains(t, view, "Logs")
	require.Contains(t, view, "fixture loaded")
	require.Contains(t, view, "parse failed")
}

func TestOverlay_HiddenRendersNothing(t *testing.T) {
	initLogs(t)

	m := New()
	m.SetSize(100, 40)

	require.Empty(t, m.View())
	require.Equal(t, "background", m.Overlay("background"))
}

func TestOverlay_LevelFilter(t *testing.T) {
	initLogs(t)
	log.Info(log.CatEngine, "routine message")
	log.Error(log.CatEngine, "broken message")

	m := New()
	m.SetSize(100, 40)
	m.Show()

	// Filter to errors only
	m, _ = m.Update(keyMsg('e'))
	view := m.View()
	require.Contains(t, view, "broken message")
	require.NotContains(t, view, "routine message")

	// Back to debug shows everything again
	m, _ = m.Update(keyMsg('d'))
	view = m.View()
	require.Contains(t, view, "routine message")
}

func TestOverlay_ClearEmptiesBuffer(t *testing.T) {
	initLogs(t)
	log.Info(log.CatEngine, "stale entry")

	m := New()
	m.SetSize(100, 40)
	m.Show()

	m, _ = m.Update(keyMsg('c'))
	view := m.View()
	require.NotContains(t, view, "stale entry")
	require.Contains(t, view, "No logs to display")
}

func TestOverlay_EscCloses(t *testing.T) {
	initLogs(t)

	m := New()
	m.SetSize(100, 40)
	m.Show()
	require.True(t, m.Visible())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.Visible())
	require.NotNil(t, cmd)
	require.IsType(t, CloseMsg{}, cmd())
}

func TestOverlay_ToggleTracksVisibility(t *testing.T) {
	initLogs(t)

	m := New()
	m.SetSize(100, 40)

	m.Toggle()
	require.True(t, m.Visible())
	m.Toggle()
	require.False(t, m.Visible())
}

func TestEntryLevel(t *testing.T) {
	tests := []struct {
		entry string
		level log.Level
		known bool
	}{
		{"2026-08-25T10:45:00 [ERROR] [engine] boom", log.LevelError, true},
		{"2026-08-25T10:45:00 [WARN] [watch] slow", log.LevelWarn, true},
		{"2026-08-25T10:45:00 [INFO] [engine] ok", log.LevelInfo, true},
		{"2026-08-25T10:45:00 [DEBUG] [cache] hit", log.LevelDebug, true},
		{"plain text line", log.LevelDebug, false},
	}

	for _, tt := range tests {
		level, known := entryLevel(tt.entry)
		require.Equal(t, tt.known, known, "entry %q", tt.entry)
		if known {
			require.Equal(t, tt.level, level, "entry %q", tt.entry)
		}
	}
}
