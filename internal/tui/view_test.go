package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/docxology/metaguildnet/internal/dashboard"
	"github.com/docxology/metaguildnet/internal/domain"
)

func TestRenderClusterListEmpty(t *testing.T) {
	out := renderClusterList(nil, 0, 100, 20, "", SortState{})
	if !strings.Contains(out, "No clusters registered") {
		t.Errorf("out = %q", out)
	}
}

func TestRenderClusterListMarksFocus(t *testing.T) {
	rows := []dashboard.ClusterRow{
		{Cluster: domain.Cluster{ID: "c1", Name: "prod"}, Health: &domain.ClusterHealth{K8sReachable: true}},
		{Cluster: domain.Cluster{ID: "c2", Name: "edge"}, Health: &domain.ClusterHealth{KubeconfigPresent: true, K8sError: "dial timeout"}},
	}

	out := renderClusterList(rows, 0, 120, 20, "c1", SortState{})
	if !strings.Contains(out, "▸ prod") {
		t.Error("focused cluster should carry a marker")
	}
	if !strings.Contains(out, "dial timeout") {
		t.Error("unreachable cluster should show its error detail")
	}
}

func TestRenderClusterListHealthCells(t *testing.T) {
	rows := []dashboard.ClusterRow{
		{Cluster: domain.Cluster{ID: "c1"}, HealthErr: errors.New("boom")},
	}
	out := renderClusterList(rows, 0, 80, 20, "", SortState{})
	if !strings.Contains(out, "unknown") {
		t.Errorf("health query failure should render unknown, got:\n%s", out)
	}
}

func TestRenderWorkspaceList(t *testing.T) {
	workspaces := []domain.Workspace{
		{Name: "alpha", Status: domain.StatusRunning, Ready: 1, Image: "img:a", CreatedAt: time.Now().Add(-30 * time.Minute)},
		{Name: "beta", Status: domain.StatusFailed, Image: "img:b"},
	}

	out := renderWorkspaceList(workspaces, 1, 120, 20, SortState{})
	for _, want := range []string{"alpha", "Running", "beta", "Failed", "30m"} {
		if !strings.Contains(out, want) {
			t.Errorf("out missing %q:\n%s", want, out)
		}
	}
}

func TestRenderWorkspaceListEmpty(t *testing.T) {
	out := renderWorkspaceList(nil, 0, 100, 20, SortState{})
	if !strings.Contains(out, "No workspaces") {
		t.Errorf("out = %q", out)
	}
}

func TestAge(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "-"},
		{now.Add(-30 * time.Second), "30s"},
		{now.Add(-5 * time.Minute), "5m"},
		{now.Add(-3 * time.Hour), "3h"},
		{now.Add(-49 * time.Hour), "2d"},
	}
	for _, tt := range tests {
		if got := age(tt.t); got != tt.want {
			t.Errorf("age(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestRenderHealthPanelDegrades(t *testing.T) {
	snap := dashboard.Snapshot{
		Taken:      time.Now(),
		SummaryErr: errors.New("summary down"),
	}
	out := renderHealthPanel(snap, 100)
	if !strings.Contains(out, "summary unavailable") {
		t.Errorf("out = %q", out)
	}
}

func TestRenderHealthPanelSummary(t *testing.T) {
	snap := dashboard.Snapshot{
		Taken: time.Now(),
		Summary: &domain.HealthSummary{
			Healthy: false,
			Clusters: []domain.ClusterHealth{
				{ClusterID: "c1", K8sReachable: true},
				{ClusterID: "c2", K8sReachable: false, RecommendedAction: "re-upload kubeconfig"},
			},
		},
		Workspaces: []domain.Workspace{{Status: domain.StatusRunning}, {Status: domain.StatusPending}},
	}
	out := renderHealthPanel(snap, 100)
	for _, want := range []string{"overall:", "c1", "c2", "recommended: re-upload kubeconfig", "running:            1"} {
		if !strings.Contains(out, want) {
			t.Errorf("out missing %q:\n%s", want, out)
		}
	}
}

func TestLogStateScrolling(t *testing.T) {
	ls := &logState{}
	entries := make([]domain.LogLine, 50)
	for i := range entries {
		entries[i] = domain.LogLine{Line: "line"}
	}
	ls.setLines(entries)

	if ls.offset != 0 {
		t.Errorf("fresh content offset = %d", ls.offset)
	}
	ls.jumpToBottom(10)
	if ls.offset != 40 {
		t.Errorf("bottom offset = %d, want 40", ls.offset)
	}
	ls.scrollDown(5, 10)
	if ls.offset != 40 {
		t.Error("scroll past bottom should clamp")
	}
	ls.scrollUp(100)
	if ls.offset != 0 {
		t.Error("scroll past top should clamp")
	}
}

func TestRenderLogsTruncates(t *testing.T) {
	ls := &logState{workspace: "alpha"}
	ls.setLines([]domain.LogLine{{Line: strings.Repeat("x", 200)}})

	out := renderLogs(ls, 40, 10)
	if !strings.Contains(out, "…") {
		t.Error("long line should truncate with ellipsis")
	}
	if !strings.Contains(out, "Logs: alpha [1 lines]") {
		t.Errorf("header missing:\n%s", out)
	}
}

