package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docxology/metaguildnet/internal/config"
	"github.com/docxology/metaguildnet/internal/dashboard"
	"github.com/docxology/metaguildnet/internal/domain"
)

// --- truncate ---

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world", 5, "hell…"},
		{"maxLen 1", "hello", 1, "h"},
		{"maxLen 0", "hello", 0, ""},
		{"negative maxLen", "hello", -1, ""},
		{"empty string", "", 5, ""},
		{"unicode string", "héllo", 4, "hél…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

// --- View.String() ---

func TestViewString(t *testing.T) {
	tests := []struct {
		view View
		want string
	}{
		{ViewClusters, "CLUSTERS"},
		{ViewWorkspaces, "WORKSPACES"},
		{ViewHealth, "HEALTH"},
		{ViewLogs, "LOGS"},
		{ViewError, ""},
	}
	for _, tt := range tests {
		if got := tt.view.String(); got != tt.want {
			t.Errorf("View(%d).String() = %q, want %q", tt.view, got, tt.want)
		}
	}
}

// --- Model helpers ---

func testSnapshot() dashboard.Snapshot {
	return dashboard.Snapshot{
		Taken:   time.Now(),
		FocusID: "c1",
		Clusters: []dashboard.ClusterRow{
			{Cluster: domain.Cluster{ID: "c1", Name: "prod"}, Health: &domain.ClusterHealth{ClusterID: "c1", K8sReachable: true}},
			{Cluster: domain.Cluster{ID: "c2", Name: "edge"}, HealthErr: errors.New("boom")},
		},
		Workspaces: []domain.Workspace{
			{Name: "alpha", Status: domain.StatusRunning, Image: "img:a"},
			{Name: "beta", Status: domain.StatusPending, Image: "img:b"},
		},
		Summary: &domain.HealthSummary{Healthy: true},
	}
}

func testModel() Model {
	m := NewModel(&domain.MockGateway{BaseURLVal: "https://localhost:8090"}, nil, config.DefaultConfig())
	m.width = 120
	m.height = 30
	m.snap = testSnapshot()
	m.focusID = "c1"
	m.loading = false
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSnapshotMsgUpdatesModel(t *testing.T) {
	m := NewModel(&domain.MockGateway{}, nil, nil)
	m.cursor = 5

	updated, _ := m.Update(snapshotMsg{snap: testSnapshot()})
	got := updated.(Model)

	if got.loading {
		t.Error("loading should clear after snapshot")
	}
	if got.focusID != "c1" {
		t.Errorf("focusID = %q, want c1 from snapshot", got.focusID)
	}
	if got.cursor != 1 {
		t.Errorf("cursor = %d, want clamped to last row", got.cursor)
	}
	if got.disconnected {
		t.Error("connected snapshot should clear disconnected")
	}
}

func TestSnapshotTransportFailureSetsDisconnected(t *testing.T) {
	m := testModel()
	snap := dashboard.Snapshot{
		Taken:       time.Now(),
		ClustersErr: &domain.TransportError{Op: "GET /api/deploy/clusters", Err: errors.New("refused")},
	}

	updated, _ := m.Update(snapshotMsg{snap: snap})
	got := updated.(Model)

	if !got.disconnected {
		t.Error("transport failure should set disconnected")
	}
	if !strings.Contains(got.View(), "Host App unreachable") {
		t.Error("view should show the disconnected banner")
	}
}

func TestEnterOnClusterFocusesWorkspaces(t *testing.T) {
	m := testModel()
	m.view = ViewClusters
	m.cursor = 1

	updated, cmd := m.handleEnter()
	got := updated.(Model)

	if got.view != ViewWorkspaces {
		t.Errorf("view = %v, want workspaces", got.view)
	}
	if got.focusID != "c2" {
		t.Errorf("focusID = %q, want c2", got.focusID)
	}
	if cmd == nil {
		t.Error("focus change should trigger a refresh")
	}
}

func TestDeleteWorkspaceAsksConfirmation(t *testing.T) {
	m := testModel()
	m.view = ViewWorkspaces
	m.cursor = 0

	updated, _ := m.handleDeleteWorkspace()
	got := updated.(Model)

	if !got.confirm.isActive() {
		t.Fatal("delete should open confirm dialog")
	}
	if got.confirm.mode != confirmSimple {
		t.Errorf("mode = %v, want simple y/N", got.confirm.mode)
	}
	if got.confirm.resourceName != "alpha" {
		t.Errorf("target = %q, want alpha", got.confirm.resourceName)
	}
}

func TestRemoveClusterRequiresTypedName(t *testing.T) {
	m := testModel()
	m.view = ViewClusters
	m.cursor = 0

	updated, _ := m.handleRemoveCluster()
	got := updated.(Model)

	if got.confirm.mode != confirmDanger {
		t.Fatalf("mode = %v, want danger confirm", got.confirm.mode)
	}
	if got.confirm.resourceName != "prod" {
		t.Errorf("target = %q, want prod", got.confirm.resourceName)
	}
}

func TestFilterWorkspaces(t *testing.T) {
	m := testModel()
	m.view = ViewWorkspaces
	m.filter.SetValue("alp")

	items := m.filteredWorkspaces()
	if len(items) != 1 || items[0].Name != "alpha" {
		t.Errorf("filtered = %+v", items)
	}

	m.filter.SetValue("pending")
	items = m.filteredWorkspaces()
	if len(items) != 1 || items[0].Name != "beta" {
		t.Errorf("status filter = %+v", items)
	}
}

func TestTabCycleSkipsLogs(t *testing.T) {
	m := testModel()
	m.view = ViewHealth

	updated, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	got := updated.(Model)

	if got.view != ViewClusters {
		t.Errorf("view after tab = %v, want wrap to clusters", got.view)
	}
}

func TestQuitFromLogsGoesBack(t *testing.T) {
	m := testModel()
	m.prevView = ViewWorkspaces
	m.view = ViewLogs
	m.logState.lines = []string{"a", "b"}

	updated, cmd := m.handleKey(keyMsg("q"))
	got := updated.(Model)

	if got.view != ViewWorkspaces {
		t.Errorf("view = %v, want back to workspaces", got.view)
	}
	if cmd != nil {
		t.Error("leaving logs should not quit the program")
	}
	if len(got.logState.lines) != 0 {
		t.Error("log state should reset")
	}
}

func TestAPIErrorUnauthorizedPersists(t *testing.T) {
	m := testModel()

	updated, cmd := m.handleAPIError(&domain.APIError{Kind: domain.ErrUnauthorized, StatusCode: 401, Message: "nope"})
	got := updated.(Model)

	if !got.toast.isActive() {
		t.Fatal("unauthorized should raise a toast")
	}
	if !strings.Contains(got.toast.message, "token") {
		t.Errorf("toast = %q", got.toast.message)
	}
	if cmd != nil {
		t.Error("unauthorized toast should not auto-clear")
	}
}

func TestErrorScreenRetry(t *testing.T) {
	factoryCalled := false
	factory := func() (domain.Gateway, error) {
		factoryCalled = true
		return &domain.MockGateway{}, nil
	}
	m := NewModelWithError(errors.New("dial tcp: refused"), factory)
	m.width = 80
	m.height = 24

	if !strings.Contains(m.View(), "connection error") {
		t.Error("error screen missing title")
	}

	updated, cmd := m.handleKey(keyMsg("r"))
	got := updated.(Model)

	if !factoryCalled {
		t.Error("retry should invoke the factory")
	}
	if got.view != ViewClusters {
		t.Errorf("view = %v, want clusters after reconnect", got.view)
	}
	if cmd == nil {
		t.Error("reconnect should start a refresh")
	}
}

func TestViewRendersPanels(t *testing.T) {
	m := testModel()

	out := m.View()
	for _, want := range []string{"Clusters", "Workspaces", "Health", "prod", "edge", "CLUSTERS"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.view = ViewHealth
	out = m.View()
	if !strings.Contains(out, "GLOBAL HEALTH") {
		t.Error("health view missing summary panel")
	}
	if !strings.Contains(out, "running:") {
		t.Error("health view missing activity stats")
	}
}

func TestRefreshTickReschedules(t *testing.T) {
	m := testModel()

	_, cmd := m.Update(refreshTickMsg{})
	if cmd == nil {
		t.Fatal("tick should trigger refresh and reschedule")
	}
}
