package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docxology/metaguildnet/internal/domain"
	"github.com/docxology/metaguildnet/internal/installer"
)

// runningGateway reports every workspace as Running so the example
// workflow's wait resolves on the first poll.
type runningGateway struct {
	*domain.MockGateway
}

func (g *runningGateway) GetWorkspace(ctx context.Context, clusterID, name string) (*domain.Workspace, error) {
	ws, err := g.MockGateway.GetWorkspace(ctx, clusterID, name)
	if err != nil {
		return nil, err
	}
	ws.Status = domain.StatusRunning
	ws.ID = "ws-1"
	return ws, nil
}

func testRunner(gw domain.Gateway, outputsDir string) (*Runner, *bytes.Buffer) {
	var out bytes.Buffer
	r := New(Options{
		Gateway:      gw,
		Out:          &out,
		OutputsDir:   outputsDir,
		Cluster:      "c1",
		WaitInterval: time.Millisecond,
		WaitMax:      50 * time.Millisecond,
	})
	return r, &out
}

func TestExampleLifecycle(t *testing.T) {
	gw := &runningGateway{MockGateway: &domain.MockGateway{BaseURLVal: "https://localhost:8090"}}
	dir := t.TempDir()
	r, out := testRunner(gw, dir)

	if err := r.Example(context.Background()); err != nil {
		t.Fatalf("Example: %v", err)
	}

	if gw.CreatedSpec.Image != "codercom/code-server:latest" {
		t.Errorf("created image = %q", gw.CreatedSpec.Image)
	}
	if !strings.HasPrefix(gw.CreatedSpec.Name, "guildnet-demo-") {
		t.Errorf("created name = %q", gw.CreatedSpec.Name)
	}
	if gw.DeletedWorkspace != gw.CreatedSpec.Name {
		t.Errorf("deleted %q, created %q", gw.DeletedWorkspace, gw.CreatedSpec.Name)
	}
	if !strings.Contains(out.String(), "access: https://localhost:8090/proxy/server/ws-1/") {
		t.Errorf("output missing access URL:\n%s", out.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, "examples_output.txt"))
	if err != nil {
		t.Fatalf("examples output not written: %v", err)
	}
	if !strings.Contains(string(data), "workspace created") {
		t.Errorf("transcript missing creation line:\n%s", data)
	}
}

func TestExampleCreateFailure(t *testing.T) {
	gw := &domain.MockGateway{
		CreateWorkspaceErr: &domain.APIError{Kind: domain.ErrUnauthorized, StatusCode: 401, Message: "bad token"},
	}
	dir := t.TempDir()
	r, _ := testRunner(gw, dir)

	if err := r.Example(context.Background()); err == nil {
		t.Fatal("want error when creation fails")
	}
	data, _ := os.ReadFile(filepath.Join(dir, "examples_output.txt"))
	if !strings.Contains(string(data), "✗ workspace creation failed") {
		t.Errorf("transcript missing failure line:\n%s", data)
	}
}

func TestExampleTimeout(t *testing.T) {
	// Plain mock keeps workspaces Pending forever.
	gw := &domain.MockGateway{}
	r, _ := testRunner(gw, t.TempDir())

	err := r.Example(context.Background())
	if err == nil {
		t.Fatal("want error when workspace never becomes ready")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("err = %v, want timeout outcome", err)
	}
}

func TestDiagnoseWritesOutput(t *testing.T) {
	gw := &domain.MockGateway{
		Clusters: []domain.Cluster{{ID: "c1", Name: "prod"}, {ID: "c2", Name: "edge"}},
		Health: map[string]*domain.ClusterHealth{
			"c1": {ClusterID: "c1", K8sReachable: true},
			"c2": {ClusterID: "c2", K8sReachable: false, K8sError: "timeout", RecommendedAction: "check kubeconfig"},
		},
	}
	dir := t.TempDir()
	r, out := testRunner(gw, dir)

	if err := r.Diagnose(context.Background()); err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	for _, want := range []string{"✓ prod: reachable", "✗ edge: unreachable (timeout)", "recommended: check kubeconfig"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "diagnostics_output.txt"))
	if err != nil {
		t.Fatalf("diagnostics output not written: %v", err)
	}
	if !strings.Contains(string(data), "completed successfully") {
		t.Errorf("transcript missing completion line:\n%s", data)
	}
}

func TestCleanupRemovesOnlyExampleWorkspaces(t *testing.T) {
	gw := &domain.MockGateway{
		Workspaces: map[string][]domain.Workspace{
			"c1": {
				{Name: "guildnet-demo-123", Status: domain.StatusRunning},
				{Name: "production-app", Status: domain.StatusRunning},
			},
		},
	}
	r, out := testRunner(gw, t.TempDir())

	if err := r.Cleanup(context.Background()); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if remaining := gw.Workspaces["c1"]; len(remaining) != 1 || remaining[0].Name != "production-app" {
		t.Errorf("remaining = %+v", remaining)
	}
	if !strings.Contains(out.String(), "cleanup removed 1 workspaces") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestVerifyWritesLayerLines(t *testing.T) {
	gw := &domain.MockGateway{
		AliveVal: true,
		Summary:  &domain.HealthSummary{Healthy: true},
	}
	dir := t.TempDir()
	var out bytes.Buffer
	r := New(Options{
		Gateway:    gw,
		Verifier:   &installer.Verifier{Gateway: gw},
		Out:        &out,
		OutputsDir: dir,
		Cluster:    "c1",
	})

	// Layer health depends on the host environment, only the
	// transcript format is asserted.
	_ = r.Verify(context.Background())

	data, err := os.ReadFile(filepath.Join(dir, "verification_output.txt"))
	if err != nil {
		t.Fatalf("verification output not written: %v", err)
	}
	for _, layer := range []string{"Network Layer:", "Cluster Layer:", "Database Layer:", "Application Layer:"} {
		if !strings.Contains(string(data), layer) {
			t.Errorf("transcript missing %q:\n%s", layer, data)
		}
	}
}

func TestFullStopsOnFailure(t *testing.T) {
	gw := &domain.MockGateway{
		ListClustersErr: &domain.TransportError{Op: "GET /api/deploy/clusters", Err: context.DeadlineExceeded},
	}
	var out bytes.Buffer
	r := New(Options{
		Gateway:  gw,
		Verifier: &installer.Verifier{Gateway: gw},
		Out:      &out,
		Cluster:  "c1",
	})

	err := r.Full(context.Background())
	if err == nil {
		t.Fatal("want error when a step fails")
	}
	if !strings.Contains(out.String(), "Setup skipped") {
		t.Errorf("setup should be skipped by default:\n%s", out.String())
	}
	if !strings.Contains(err.Error(), "verification") {
		t.Errorf("err = %v, want verification step failure", err)
	}
}

func TestRunUnknownWorkflow(t *testing.T) {
	r := New(Options{Out: &bytes.Buffer{}})
	if err := r.Run(context.Background(), Workflow("bogus")); err == nil {
		t.Fatal("want error for unknown workflow")
	}
}
