// Package tui implements the mgn terminal dashboard on bubbletea.
// The dashboard refreshes on a fixed cadence: each cycle builds a full
// snapshot in the background and swaps it in atomically, so a slow or
// failing Host App never leaves half-rendered panels.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docxology/metaguildnet/internal/config"
	"github.com/docxology/metaguildnet/internal/dashboard"
	"github.com/docxology/metaguildnet/internal/domain"
)

// ClientFactory creates a new Gateway (used for reconnection from the
// error screen).
type ClientFactory func() (domain.Gateway, error)

// --- Views ---

type View int

const (
	ViewClusters View = iota
	ViewWorkspaces
	ViewHealth
	ViewLogs
	ViewError // startup error screen
)

func (v View) String() string {
	switch v {
	case ViewClusters:
		return "CLUSTERS"
	case ViewWorkspaces:
		return "WORKSPACES"
	case ViewHealth:
		return "HEALTH"
	case ViewLogs:
		return "LOGS"
	default:
		return ""
	}
}

// --- Messages ---

type snapshotMsg struct{ snap dashboard.Snapshot }
type logsLoadedMsg struct {
	workspace string
	lines     []domain.LogLine
}
type actionDoneMsg struct{ message string }
type apiErrMsg struct{ err error }
type refreshTickMsg struct{}

// --- Model ---

type Model struct {
	client        domain.Gateway
	clientFactory ClientFactory

	// Views
	view     View
	prevView View

	// Data
	snap     dashboard.Snapshot
	focusID  string
	logState logState

	// UI state
	cursor     int
	width      int
	height     int
	loading    bool
	toast      toast
	confirm    confirmState
	startupErr error // non-nil if launched with NewModelWithError

	// Filter
	filter    textinput.Model
	filtering bool

	// Connection state
	disconnected bool

	// Sort
	sortState map[View]SortState

	// Config
	cfg *config.AppConfig
}

func NewModel(client domain.Gateway, factory ClientFactory, cfg *config.AppConfig) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	fi := textinput.New()
	fi.Placeholder = "filter..."
	fi.CharLimit = 64
	fi.Width = 30

	return Model{
		client:        client,
		clientFactory: factory,
		view:          ViewClusters,
		focusID:       cfg.Defaults.Cluster,
		filter:        fi,
		confirm:       newConfirmState(),
		sortState:     make(map[View]SortState),
		cfg:           cfg,
		loading:       true,
	}
}

func NewModelWithError(err error, factory ClientFactory) Model {
	return Model{
		view:          ViewError,
		startupErr:    err,
		clientFactory: factory,
		confirm:       newConfirmState(),
	}
}

func (m Model) refreshInterval() time.Duration {
	if m.cfg != nil && m.cfg.Dashboard.Refresh > 0 {
		return m.cfg.Dashboard.Refresh
	}
	return 5 * time.Second
}

func (m Model) Init() tea.Cmd {
	if m.view == ViewError {
		return nil
	}
	return tea.Batch(m.refreshCmd(), m.scheduleRefresh())
}

func (m Model) refreshCmd() tea.Cmd {
	client := m.client
	focus := m.focusID
	return func() tea.Msg {
		return snapshotMsg{snap: dashboard.Build(context.Background(), client, focus)}
	}
}

func (m Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refreshInterval(), func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshTickMsg:
		if m.view == ViewError {
			return m, nil
		}
		return m, tea.Batch(m.refreshCmd(), m.scheduleRefresh())

	case snapshotMsg:
		m.snap = msg.snap
		m.focusID = msg.snap.FocusID
		m.loading = false
		wasDisconnected := m.disconnected
		m.disconnected = !msg.snap.Connected()
		if wasDisconnected && !m.disconnected && m.toast.sticky {
			m.toast = toast{}
		}
		m.clampCursor()
		return m, nil

	case logsLoadedMsg:
		m.logState.workspace = msg.workspace
		m.logState.setLines(msg.lines)
		m.logState.jumpToBottom(m.contentHeight())
		m.loading = false
		return m, nil

	case actionDoneMsg:
		m.toast = successToast(msg.message)
		m.loading = false
		return m, tea.Batch(scheduleToastClear(), m.refreshCmd())

	case apiErrMsg:
		return m.handleAPIError(msg.err)

	case toastExpiredMsg:
		// Sticky toasts outlive any expiry tick from an earlier toast.
		if !m.toast.sticky {
			m.toast = toast{}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Startup error screen: only q/r
	if m.view == ViewError {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if m.clientFactory == nil {
				return m, nil
			}
			newClient, err := m.clientFactory()
			if err != nil {
				m.startupErr = err
				return m, nil
			}
			m.client = newClient
			m.startupErr = nil
			m.view = ViewClusters
			m.loading = true
			return m, tea.Batch(m.refreshCmd(), m.scheduleRefresh())
		}
		return m, nil
	}

	// Confirm dialog captures all input
	if m.confirm.isActive() {
		cmd, handled := m.confirm.update(msg)
		if handled {
			return m, cmd
		}
		return m, nil
	}

	// Filter mode
	if m.filtering {
		return m.handleFilterInput(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		if m.view == ViewLogs {
			m.view = m.prevView
			m.logState = logState{}
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Escape):
		if m.view == ViewLogs {
			m.view = m.prevView
			m.logState = logState{}
			return m, nil
		}
		m.toast = toast{}
		return m, nil

	// Tab switching
	case key.Matches(msg, keys.Tab1):
		return m.switchView(ViewClusters)
	case key.Matches(msg, keys.Tab2):
		return m.switchView(ViewWorkspaces)
	case key.Matches(msg, keys.Tab3):
		return m.switchView(ViewHealth)
	case key.Matches(msg, keys.TabNext):
		next := (m.view + 1) % 3 // cycle through Clusters/Workspaces/Health
		return m.switchView(next)

	// Filter
	case key.Matches(msg, keys.Filter):
		if m.view == ViewClusters || m.view == ViewWorkspaces {
			m.filtering = true
			m.filter.SetValue("")
			m.filter.Focus()
			return m, textinput.Blink
		}

	// Refresh
	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, m.refreshCmd()

	// Navigation
	case key.Matches(msg, keys.Down):
		if m.view == ViewLogs {
			m.logState.scrollDown(1, m.contentHeight())
		} else {
			maxIdx := m.listLen() - 1
			if maxIdx < 0 {
				maxIdx = 0
			}
			m.cursor = min(m.cursor+1, maxIdx)
		}
	case key.Matches(msg, keys.Up):
		if m.view == ViewLogs {
			m.logState.scrollUp(1)
		} else {
			m.cursor = max(m.cursor-1, 0)
		}
	case key.Matches(msg, keys.Top):
		if m.view == ViewLogs {
			m.logState.offset = 0
		} else {
			m.cursor = 0
		}
	case key.Matches(msg, keys.Bottom):
		if m.view == ViewLogs {
			m.logState.jumpToBottom(m.contentHeight())
		} else {
			m.cursor = max(m.listLen()-1, 0)
		}
	case key.Matches(msg, keys.PageDown):
		if m.view == ViewLogs {
			m.logState.scrollDown(20, m.contentHeight())
		} else {
			m.cursor = min(m.cursor+20, max(m.listLen()-1, 0))
		}
	case key.Matches(msg, keys.PageUp):
		if m.view == ViewLogs {
			m.logState.scrollUp(20)
		} else {
			m.cursor = max(m.cursor-20, 0)
		}

	case key.Matches(msg, keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, keys.Delete):
		if m.view == ViewWorkspaces {
			return m.handleDeleteWorkspace()
		}
		if m.view == ViewClusters {
			return m.handleRemoveCluster()
		}

	case key.Matches(msg, keys.Sort):
		if m.view == ViewClusters || m.view == ViewWorkspaces {
			return m.cycleSort()
		}

	case key.Matches(msg, keys.Wrap):
		if m.view == ViewLogs {
			m.logState.wrap = !m.logState.wrap
			return m, nil
		}
	}

	return m, nil
}

func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		if msg.String() == "esc" {
			m.filter.SetValue("")
		}
		m.cursor = 0
		return m, nil
	default:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.cursor = 0
		return m, cmd
	}
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewClusters:
		rows := m.filteredClusters()
		if m.cursor < len(rows) {
			m.focusID = rows[m.cursor].Cluster.ID
			m.filter.SetValue("")
			m.view = ViewWorkspaces
			m.cursor = 0
			m.loading = true
			return m, m.refreshCmd()
		}
	case ViewWorkspaces:
		items := m.filteredWorkspaces()
		if m.cursor < len(items) {
			return m.openLogs(items[m.cursor].Name)
		}
	}
	return m, nil
}

func (m Model) openLogs(name string) (Model, tea.Cmd) {
	m.prevView = m.view
	m.view = ViewLogs
	m.loading = true
	m.logState = logState{workspace: name, wrap: m.logState.wrap}
	client := m.client
	focus := m.focusID
	return m, func() tea.Msg {
		lines, err := client.WorkspaceLogs(context.Background(), focus, name, 200)
		if err != nil {
			return apiErrMsg{err}
		}
		return logsLoadedMsg{workspace: name, lines: lines}
	}
}

func (m Model) handleDeleteWorkspace() (tea.Model, tea.Cmd) {
	items := m.filteredWorkspaces()
	if m.cursor >= len(items) {
		return m, nil
	}
	name := items[m.cursor].Name
	client := m.client
	focus := m.focusID

	m.confirm.activate("Delete workspace", name, focus, false, func() tea.Msg {
		if err := client.DeleteWorkspace(context.Background(), focus, name); err != nil {
			return apiErrMsg{err}
		}
		return actionDoneMsg{fmt.Sprintf("Workspace %q deleted", name)}
	})
	return m, nil
}

func (m Model) handleRemoveCluster() (tea.Model, tea.Cmd) {
	rows := m.filteredClusters()
	if m.cursor >= len(rows) {
		return m, nil
	}
	cluster := rows[m.cursor].Cluster
	name := cluster.Name
	if name == "" {
		name = cluster.ID
	}
	client := m.client

	// Removing a cluster abandons its workspaces; require the name.
	m.confirm.activate("Remove cluster", name, cluster.ID, true, func() tea.Msg {
		if err := client.DeleteCluster(context.Background(), cluster.ID); err != nil {
			return apiErrMsg{err}
		}
		return actionDoneMsg{fmt.Sprintf("Cluster %q removed", name)}
	})
	return m, nil
}

func (m Model) cycleSort() (tea.Model, tea.Cmd) {
	state := m.sortState[m.view]
	switch m.view {
	case ViewClusters:
		state.Column = NextClusterSort(state.Column)
	case ViewWorkspaces:
		state.Column = NextWorkspaceSort(state.Column)
	}
	state.Ascending = true
	if m.sortState == nil {
		m.sortState = make(map[View]SortState)
	}
	m.sortState[m.view] = state
	m.cursor = 0
	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if m.view == ViewLogs {
		m.logState = logState{}
	}
	m.view = v
	m.cursor = 0
	m.filter.SetValue("")
	return m, nil
}

// --- Error handling ---

func (m Model) handleAPIError(err error) (tea.Model, tea.Cmd) {
	m.loading = false

	if domain.IsTransport(err) {
		m.disconnected = true
		m.toast = connectionLostToast()
		return m, nil
	}

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		m.toast = errorToast(err.Error())
		return m, scheduleToastClear()
	}

	switch apiErr.Kind {
	case domain.ErrUnauthorized:
		m.toast = unauthorizedToast()
		return m, nil

	case domain.ErrNotFound:
		m.toast = errorToast(apiErr.Message)
		return m, tea.Batch(scheduleToastClear(), m.refreshCmd())

	default:
		m.toast = errorToast(apiErr.Message)
		return m, scheduleToastClear()
	}
}

// --- Filtering ---

func (m Model) filterText() string {
	return strings.ToLower(m.filter.Value())
}

func (m Model) filteredClusters() []dashboard.ClusterRow {
	f := m.filterText()
	var result []dashboard.ClusterRow
	if f == "" {
		result = m.snap.Clusters
	} else {
		for _, row := range m.snap.Clusters {
			if strings.Contains(strings.ToLower(row.Cluster.Name), f) ||
				strings.Contains(strings.ToLower(row.Cluster.ID), f) {
				result = append(result, row)
			}
		}
	}
	return SortClusters(result, m.sortState[ViewClusters])
}

func (m Model) filteredWorkspaces() []domain.Workspace {
	f := m.filterText()
	var result []domain.Workspace
	if f == "" {
		result = m.snap.Workspaces
	} else {
		for _, ws := range m.snap.Workspaces {
			if strings.Contains(strings.ToLower(ws.Name), f) ||
				strings.Contains(strings.ToLower(string(ws.Status)), f) {
				result = append(result, ws)
			}
		}
	}
	return SortWorkspaces(result, m.sortState[ViewWorkspaces])
}

func (m Model) listLen() int {
	switch m.view {
	case ViewClusters:
		return len(m.filteredClusters())
	case ViewWorkspaces:
		return len(m.filteredWorkspaces())
	default:
		return 0
	}
}

func (m *Model) clampCursor() {
	if n := m.listLen(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) contentHeight() int {
	// header(1) + tabs(1) + blank(1) + col_header(1) + status_bar(1)
	ch := m.height - 6
	if ch < 1 {
		return 1
	}
	return ch
}

// --- View ---

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.view == ViewError {
		return m.renderErrorScreen()
	}

	var b strings.Builder

	b.WriteString(m.renderContextBar())
	b.WriteString("\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if m.disconnected {
		banner := bannerWarnStyle.Width(m.width).Render("Host App unreachable - showing last snapshot. 'r' to retry, 'mgn install' to set up")
		b.WriteString(banner)
		b.WriteString("\n")
	}

	if m.confirm.isActive() {
		b.WriteString(m.confirm.view(m.width))
	} else if m.loading && m.snap.Taken.IsZero() {
		b.WriteString("\n  Loading...\n")
	} else {
		b.WriteString(m.renderContent())
	}

	if m.filtering {
		b.WriteString(fmt.Sprintf("  /%s", m.filter.View()))
		b.WriteString("\n")
	}

	// Fill remaining space
	lines := strings.Count(b.String(), "\n")
	for i := lines; i < m.height-2; i++ {
		b.WriteString("\n")
	}

	if m.toast.isActive() {
		b.WriteString(m.toast.render())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())

	return b.String()
}

func (m Model) renderContextBar() string {
	title := titleStyle.Render("GUILDNET")
	if m.client == nil {
		return " " + title
	}
	host := contextStyle.Render(m.client.BaseURL())
	focus := ""
	if m.focusID != "" {
		focus = "  cluster:" + focusStyle.Render(m.focusID)
	}
	return fmt.Sprintf(" %s  %s%s", title, host, focus)
}

func (m Model) renderTabs() string {
	tabs := []struct {
		view  View
		key   string
		label string
	}{
		{ViewClusters, "1", "Clusters"},
		{ViewWorkspaces, "2", "Workspaces"},
		{ViewHealth, "3", "Health"},
	}

	var parts []string
	for _, t := range tabs {
		label := fmt.Sprintf("[%s] %s", t.key, t.label)
		if m.view == t.view || (m.view == ViewLogs && m.prevView == t.view) {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabInactiveStyle.Render(label))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderContent() string {
	ch := m.contentHeight()
	switch m.view {
	case ViewClusters:
		if m.snap.ClustersErr != nil && len(m.snap.Clusters) == 0 {
			return fmt.Sprintf("  Cluster list unavailable: %s\n", truncate(m.snap.ClustersErr.Error(), m.width-28))
		}
		return renderClusterList(m.filteredClusters(), m.cursor, m.width, ch, m.focusID, m.sortState[ViewClusters])
	case ViewWorkspaces:
		if m.snap.WorkspacesErr != nil && len(m.snap.Workspaces) == 0 {
			return fmt.Sprintf("  Workspace list unavailable: %s\n", truncate(m.snap.WorkspacesErr.Error(), m.width-30))
		}
		return renderWorkspaceList(m.filteredWorkspaces(), m.cursor, m.width, ch, m.sortState[ViewWorkspaces])
	case ViewHealth:
		return renderHealthPanel(m.snap, m.width)
	case ViewLogs:
		return renderLogs(&m.logState, m.width, ch)
	default:
		return ""
	}
}

func (m Model) renderStatusBar() string {
	var helpText string
	switch m.view {
	case ViewClusters:
		helpText = clusterHelpKeys()
	case ViewWorkspaces:
		helpText = workspaceHelpKeys()
	case ViewHealth:
		helpText = healthHelpKeys()
	case ViewLogs:
		helpText = logHelpKeys(m.logState.wrap)
	}

	var itemInfo string
	if m.view == ViewLogs {
		itemInfo = fmt.Sprintf("%d lines", len(m.logState.lines))
	} else {
		itemInfo = fmt.Sprintf("%d items", m.listLen())
	}

	refreshed := ""
	if !m.snap.Taken.IsZero() {
		refreshed = " | " + m.snap.Taken.Format("15:04:05")
	}
	left := fmt.Sprintf(" %s | %s%s", m.view.String(), itemInfo, refreshed)
	return statusBarStyle.Width(m.width).Render(left + "  " + helpText)
}

func (m Model) renderErrorScreen() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(errorScreenStyle.Render("GuildNet - connection error"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s\n", m.startupErr.Error()))
	b.WriteString("\n")
	b.WriteString("  [r] Retry  [q] Quit\n")

	lines := strings.Count(b.String(), "\n")
	for i := lines; i < m.height; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

// --- Helpers ---

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return string(runes[:1])
	}
	return string(runes[:maxLen-1]) + "…"
}
