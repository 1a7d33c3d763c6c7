// Package viewer implements the interactive correspondence viewer: two
// text panes, source on the left and derived on the right, where moving a
// cursor or extending a selection in one pane highlights the correlated
// regions in the other.
package viewer

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/weft/internal/engine"
	"github.com/zjrosen/weft/internal/keys"
	"github.com/zjrosen/weft/internal/log"
	"github.com/zjrosen/weft/internal/pubsub"
	"github.com/zjrosen/weft/internal/ui/logoverlay"
	"github.com/zjrosen/weft/internal/watcher"
	"github.com/zjrosen/weft/internal/weave"
)

// Zone identifiers for mouse hit testing.
const (
	sourceZoneID  = "viewer_source"
	derivedZoneID = "viewer_derived"
)

// FocusPane identifies which pane owns the cursor.
type FocusPane int

const (
	// SourcePane is the left pane showing the source text.
	SourcePane FocusPane = iota
	// DerivedPane is the right pane showing the derived text.
	DerivedPane
)

// String returns the pane's display name.
func (p FocusPane) String() string {
	if p == SourcePane {
		return "source"
	}
	return "derived"
}

func (p FocusPane) other() FocusPane {
	if p == SourcePane {
		return DerivedPane
	}
	return SourcePane
}

// paneState is the per-pane cursor, selection anchor, and scroll offset.
type paneState struct {
	grid   textGrid
	cursor weave.Location
	anchor *weave.Location // nil means single-cell query
	offset int             // first visible line, 0-based
}

// selection returns the active query region: anchor..cursor normalized,
// or the bare cursor cell.
func (p *paneState) selection() weave.Region {
	if p.anchor == nil {
		return weave.Region{Begin: p.cursor, End: p.cursor}
	}
	begin, end := *p.anchor, p.cursor
	if end.Before(begin) {
		begin, end = end, begin
	}
	return weave.Region{Begin: begin, End: end}
}

// selectionNotation renders the selection for the status bar: "L:C" for a
// bare cursor, "L:C-L:C" once extended.
func (p *paneState) selectionNotation() string {
	if p.anchor == nil {
		return p.cursor.String()
	}
	return p.selection().String()
}

func (p *paneState) clampAll() {
	p.cursor = p.grid.clamp(p.cursor)
	if p.anchor != nil {
		a := p.grid.clamp(*p.anchor)
		p.anchor = &a
	}
}

// Config wires the viewer to its collaborators.
type Config struct {
	// Session answers the mapping queries. Required.
	Session *engine.Session

	// Watcher feeds fixture-changed events. Nil disables watching.
	Watcher *watcher.Watcher

	// Clipboard used for yanks. Nil falls back to the system clipboard.
	Clipboard Clipboard
}

// Model is the viewer's bubbletea model.
type Model struct {
	session *engine.Session
	watcher *watcher.Watcher
	keys    keys.KeyMap
	help    help.Model
	logs    logoverlay.Model
	clip    Clipboard

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int

	focus   FocusPane
	source  paneState
	derived paneState

	mapped []weave.Region // correlated regions shown in the unfocused pane
	mapErr error

	gapCount int // splice points in the bound sequence

	lastCached bool // last query answered from the memoization cache

	checksRun    bool
	checksPassed int
	checksTotal  int

	status string // transient message in the status bar

	sessionEvents <-chan pubsub.Event[engine.SessionEvent]
	watchEvents   *pubsub.ContinuousListener[watcher.Event]
}

// Internal messages.
type reloadedMsg struct{ err error }

type checksMsg struct {
	results []engine.CheckResult
	err     error
}

type yankedMsg struct {
	count int
	err   error
}

// New builds a viewer bound to the session. The cursor starts on the
// first token so the opening frame already shows a correlation.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	clip := cfg.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}

	m := Model{
		session: cfg.Session,
		watcher: cfg.Watcher,
		keys:    keys.DefaultKeyMap(),
		help:    help.New(),
		logs:    logoverlay.New(),
		clip:    clip,
		ctx:     ctx,
		cancel:  cancel,
	}

	m.rebuildGrids()

	if regions := cfg.Session.Sequence().TokenRegions(); len(regions) > 0 {
		m.source.cursor = m.source.grid.clamp(regions[0].Begin)
	}

	m.sessionEvents = cfg.Session.Events(ctx)
	if cfg.Watcher != nil {
		m.watchEvents = pubsub.NewContinuousListener(ctx, cfg.Watcher.Broker())
	}

	m.recompute()

	return m
}

// Close releases the viewer's subscriptions.
func (m Model) Close() {
	m.cancel()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenSession()}
	if m.watchEvents != nil {
		cmds = append(cmds, m.watchEvents.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logs.SetSize(msg.Width, msg.Height)
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pubsub.Event[engine.SessionEvent]:
		if msg.Type == pubsub.QueriedEvent {
			m.lastCached = msg.Payload.Cached
		}
		return m, m.listenSession()

	case pubsub.Event[watcher.Event]:
		return m.handleWatch(msg)

	case logoverlay.CloseMsg:
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			m.status = "reload failed: " + msg.err.Error()
			return m, nil
		}
		m.rebuildGrids()
		m.checksRun = false
		m.ensureCursorVisible()
		m.recompute()
		m.status = "fixture reloaded"
		return m, nil

	case checksMsg:
		if msg.err != nil {
			m.status = "checks failed to run: " + msg.err.Error()
			return m, nil
		}
		m.checksRun = true
		m.checksTotal = len(msg.results)
		m.checksPassed = 0
		for _, r := range msg.results {
			if r.Pass() {
				m.checksPassed++
			}
		}
		m.status = ""
		return m, nil

	case yankedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else if msg.count == 0 {
			m.status = "nothing to copy"
		} else {
			m.status = "copied " + strconv.Itoa(msg.count) + " region(s)"
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.logs.Visible() {
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.ensureCursorVisible()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.logs.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.SwitchPane):
		m.focus = m.focus.other()
		m.status = ""
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		return m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		return m.moveCursor(0, 1)

	case key.Matches(msg, m.keys.Extend):
		pane := m.focusedPane()
		if pane.anchor == nil {
			anchor := pane.cursor
			pane.anchor = &anchor
		} else {
			pane.anchor = nil
		}
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keys.Collapse):
		pane := m.focusedPane()
		if pane.anchor != nil {
			pane.anchor = nil
			m.recompute()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.status = "reloading"
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.Checks):
		return m, m.checksCmd()

	case key.Matches(msg, m.keys.Yank):
		return m, m.yankCmd()
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		pane := m.focusedPane()
		pane.offset = max(pane.offset-1, 0)
		return m, nil

	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		pane := m.focusedPane()
		_, paneH := m.layout()
		maxOffset := max(pane.grid.lineCount()-max(paneH-2, 1), 0)
		pane.offset = min(pane.offset+1, maxOffset)
		return m, nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		if z := zone.Get(sourceZoneID); z != nil && z.InBounds(msg) {
			return m.clickPane(SourcePane, z.StartX, z.StartY, msg)
		}
		if z := zone.Get(derivedZoneID); z != nil && z.InBounds(msg) {
			return m.clickPane(DerivedPane, z.StartX, z.StartY, msg)
		}
	}

	return m, nil
}

// clickPane focuses the clicked pane and drops the cursor on the clicked
// cell. Clicks on the border only switch focus.
func (m Model) clickPane(p FocusPane, zoneX, zoneY int, msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.focus = p
	m.status = ""

	pane := m.focusedPane()
	line := msg.Y - zoneY - 1 + pane.offset + 1 // border row, then 1-based
	x := msg.X - zoneX - 1                      // screen cells into the content
	if line >= 1 && x >= 0 {
		col := clusterColumnAt(pane.grid.clusters(line), x)
		pane.cursor = pane.grid.clamp(weave.Location{Line: line, Column: col})
	}

	m.ensureCursorVisible()
	m.recompute()
	return m, nil
}

func (m Model) handleWatch(msg pubsub.Event[watcher.Event]) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.watchEvents.Listen()}

	switch msg.Type {
	case pubsub.ChangedEvent:
		m.status = "fixture changed on disk"
		cmds = append(cmds, m.reloadCmd())
	case pubsub.WatchErrorEvent:
		if msg.Payload.Error != nil {
			m.status = "watch error: " + msg.Payload.Error.Error()
			log.ErrorErr(log.CatUI, "watch error surfaced", msg.Payload.Error)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) moveCursor(dLine, dCol int) (tea.Model, tea.Cmd) {
	pane := m.focusedPane()
	cur := pane.cursor
	cur.Line += dLine
	cur.Column += dCol
	pane.cursor = pane.grid.clamp(cur)

	m.status = ""
	m.ensureCursorVisible()
	m.recompute()
	return m, nil
}

// recompute re-runs the mapping query for the focused pane's selection.
// Forward from the source pane, back from the derived pane.
func (m *Model) recompute() {
	query := m.focusedPane().selection()

	var (
		regions []weave.Region
		err     error
	)
	if m.focus == SourcePane {
		regions, err = m.session.Map(m.ctx, query)
	} else {
		regions, err = m.session.MapBack(m.ctx, query)
	}

	m.mapped, m.mapErr = regions, err
}

// rebuildGrids refreshes both panes from the session's current fixture.
func (m *Model) rebuildGrids() {
	fix := m.session.Fixture()
	seq := m.session.Sequence()

	m.source.grid = newTextGrid(fix.Source, sourceExtent(seq))
	m.derived.grid = newTextGrid(fix.Derived, derivedExtent(seq))
	m.source.clampAll()
	m.derived.clampAll()

	m.gapCount = 0
	for i := range seq.Len() {
		if seq.Marker(i).Kind == weave.GapMarker {
			m.gapCount++
		}
	}
}

func (m *Model) paneFor(p FocusPane) *paneState {
	if p == SourcePane {
		return &m.source
	}
	return &m.derived
}

func (m *Model) focusedPane() *paneState {
	return m.paneFor(m.focus)
}

// ensureCursorVisible scrolls each pane so its cursor stays in view.
func (m *Model) ensureCursorVisible() {
	if m.width == 0 || m.height == 0 {
		return
	}
	_, paneH := m.layout()
	visible := max(paneH-2, 1)

	for _, pane := range []*paneState{&m.source, &m.derived} {
		line := pane.cursor.Line - 1
		if line < pane.offset {
			pane.offset = line
		}
		if line >= pane.offset+visible {
			pane.offset = line - visible + 1
		}
		maxOffset := max(pane.grid.lineCount()-visible, 0)
		pane.offset = min(max(pane.offset, 0), maxOffset)
	}
}

// layout splits the window into two equal panes above the status bar and
// help footer.
func (m Model) layout() (paneWidth, paneHeight int) {
	footerH := 1
	if m.help.ShowAll {
		footerH = 4
	}

	paneWidth = max(m.width/2, 10)
	paneHeight = max(m.height-1-footerH, 5)
	return paneWidth, paneHeight
}

func (m Model) listenSession() tea.Cmd {
	return pubsub.ListenCmd(m.ctx, m.sessionEvents)
}

func (m Model) reloadCmd() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return reloadedMsg{err: session.Reload(ctx)}
	}
}

func (m Model) checksCmd() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		results, err := session.RunChecks(ctx)
		return checksMsg{results: results, err: err}
	}
}

func (m Model) yankCmd() tea.Cmd {
	clip := m.clip
	notations := regionNotations(m.mapped)
	return func() tea.Msg {
		if len(notations) == 0 {
			return yankedMsg{count: 0}
		}
		err := clip.Copy(strings.Join(notations, "\n"))
		return yankedMsg{count: len(notations), err: err}
	}
}

func regionNotations(regions []weave.Region) []string {
	notations := make([]string, len(regions))
	for i, r := range regions {
		notations[i] = r.String()
	}
	return notations
}
