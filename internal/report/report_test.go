package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeOutput(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const sampleVerification = `Network Layer: HEALTHY
Cluster Layer: HEALTHY
Database Layer: UNHEALTHY
Application Layer: HEALTHY
✓ dns resolution
✓ api reachable
✗ postgres connection
⚠ slow response
`

func TestParseOutputsEmptyDir(t *testing.T) {
	res, err := ParseOutputs(t.TempDir())
	if err != nil {
		t.Fatalf("ParseOutputs: %v", err)
	}
	if res.Verification != nil || res.Testing != nil || res.Diagnostics != nil || res.Examples != nil {
		t.Errorf("empty dir should yield empty results, got %+v", res)
	}
	if got := res.HealthPercentage(); got != 0 {
		t.Errorf("HealthPercentage = %d, want 0", got)
	}
}

func TestParseVerification(t *testing.T) {
	dir := t.TempDir()
	writeOutput(t, dir, "verification_output.txt", sampleVerification)

	res, err := ParseOutputs(dir)
	if err != nil {
		t.Fatalf("ParseOutputs: %v", err)
	}
	ver := res.Verification
	if ver == nil {
		t.Fatal("verification not parsed")
	}
	if ver.Layers["Network"] != "HEALTHY" || ver.Layers["Database"] != "UNHEALTHY" {
		t.Errorf("layers = %v", ver.Layers)
	}
	if ver.Passed != 2 || ver.Failed != 1 || ver.Warnings != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", ver.Passed, ver.Failed, ver.Warnings)
	}
	if ver.Status != "FAIL" {
		t.Errorf("Status = %q, want FAIL because a layer is unhealthy", ver.Status)
	}
	if got := res.HealthPercentage(); got != 75 {
		t.Errorf("HealthPercentage = %d, want 75", got)
	}
}

func TestParseVerificationUnknownLayer(t *testing.T) {
	dir := t.TempDir()
	writeOutput(t, dir, "verification_output.txt", "Network Layer: HEALTHY\n")

	res, _ := ParseOutputs(dir)
	if got := res.Verification.Layers["Cluster"]; got != "UNKNOWN" {
		t.Errorf("unmentioned layer = %q, want UNKNOWN", got)
	}
}

func TestParseTesting(t *testing.T) {
	dir := t.TempDir()
	writeOutput(t, dir, "testing_output.txt", "Integration Tests\n✗ one case failed\n")

	res, _ := ParseOutputs(dir)
	test := res.Testing
	if test == nil {
		t.Fatal("testing not parsed")
	}
	if test.Integration != "RAN" || test.E2E != "SKIPPED" {
		t.Errorf("integration=%q e2e=%q", test.Integration, test.E2E)
	}
	if test.Status != "FAIL" || test.Failures != 1 {
		t.Errorf("status=%q failures=%d", test.Status, test.Failures)
	}
}

func TestParseExamplesAndConfig(t *testing.T) {
	dir := t.TempDir()
	writeOutput(t, dir, "examples_output.txt", "workspace created\nworkspace created\n")
	writeOutput(t, dir, "configuration_display.txt", "Current configuration:\n{\"api\": {\"url\": \"https://localhost:8090\"}}\n")

	res, _ := ParseOutputs(dir)
	if res.Examples == nil || res.Examples.WorkspacesCreated != 2 {
		t.Errorf("examples = %+v", res.Examples)
	}
	if res.Examples.Status != "PASS" {
		t.Errorf("Status = %q", res.Examples.Status)
	}
	api, ok := res.Config["api"].(map[string]any)
	if !ok || api["url"] != "https://localhost:8090" {
		t.Errorf("config = %v", res.Config)
	}
}

func fixedRenderer(res *Results) *Renderer {
	return &Renderer{
		Results: res,
		Now:     func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestDashboardSections(t *testing.T) {
	dir := t.TempDir()
	writeOutput(t, dir, "verification_output.txt", sampleVerification)
	writeOutput(t, dir, "testing_output.txt", "Integration Tests\nE2E Tests\n")
	res, _ := ParseOutputs(dir)

	out := fixedRenderer(res).Dashboard()
	for _, want := range []string{
		"WORKFLOW STATUS",
		"VERIFICATION LAYERS",
		"TESTING SUMMARY",
		"SYSTEM HEALTH",
		"Overall health: 75%",
		"Generated: 2026-03-01 12:00:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestTimelineMarksLastStep(t *testing.T) {
	out := fixedRenderer(&Results{}).Timeline()
	if !strings.Contains(out, "└─▶ Examples") {
		t.Errorf("timeline should close with examples step:\n%s", out)
	}
	if strings.Count(out, "├─▶") != 3 {
		t.Errorf("want 3 middle connectors:\n%s", out)
	}
}

func TestMatrixDegradesUnverifiedFeatures(t *testing.T) {
	out := fixedRenderer(&Results{}).Matrix()
	if !strings.Contains(out, "Network verification") {
		t.Fatalf("matrix missing rows:\n%s", out)
	}
	if !strings.Contains(out, "pending setup") {
		t.Error("unverified features should render as pending")
	}
}

func TestSaveWritesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "visual_report.txt")
	if err := fixedRenderer(&Results{}).Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "EXECUTION TIMELINE") {
		t.Error("saved report missing timeline section")
	}
}

func TestHealthBarWidth(t *testing.T) {
	bar := healthBar(50, 10)
	if got := strings.Count(bar, "█"); got != 5 {
		t.Errorf("filled cells = %d, want 5", got)
	}
	if got := strings.Count(bar, "░"); got != 5 {
		t.Errorf("empty cells = %d, want 5", got)
	}
}
