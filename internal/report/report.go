// Package report turns workflow output files into a visual execution
// report: a status dashboard, an execution timeline and a feature
// matrix rendered as styled terminal text.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Layer names checked by the verification workflow, in display order.
var Layers = []string{"Network", "Cluster", "Database", "Application"}

// VerificationResult summarizes a verification_output.txt file.
type VerificationResult struct {
	Layers   map[string]string
	Passed   int
	Failed   int
	Warnings int
	Status   string
}

// TestingResult summarizes a testing_output.txt file.
type TestingResult struct {
	Integration string
	E2E         string
	Failures    int
	Status      string
}

// DiagnosticsResult summarizes a diagnostics_output.txt file.
type DiagnosticsResult struct {
	Completed     bool
	LayersChecked int
}

// ExamplesResult summarizes an examples_output.txt file.
type ExamplesResult struct {
	WorkspacesCreated int
	Status            string
}

// Results holds whatever workflow outputs were present in the
// outputs directory. Absent sections stay nil.
type Results struct {
	Verification *VerificationResult
	Testing      *TestingResult
	Diagnostics  *DiagnosticsResult
	Examples     *ExamplesResult
	Config       map[string]any
}

// ParseOutputs reads the known output files under dir. Missing files
// are not errors; a completely empty directory yields empty Results.
func ParseOutputs(dir string) (*Results, error) {
	r := &Results{}

	if content, ok := readOutput(dir, "verification_output.txt"); ok {
		r.Verification = parseVerification(content)
	}
	if content, ok := readOutput(dir, "testing_output.txt"); ok {
		r.Testing = parseTesting(content)
	}
	if content, ok := readOutput(dir, "diagnostics_output.txt"); ok {
		r.Diagnostics = parseDiagnostics(content)
	}
	if content, ok := readOutput(dir, "examples_output.txt"); ok {
		r.Examples = parseExamples(content)
	}
	if content, ok := readOutput(dir, "configuration_display.txt"); ok {
		r.Config = parseConfig(content)
	}
	return r, nil
}

func readOutput(dir, name string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func parseVerification(content string) *VerificationResult {
	layers := make(map[string]string, len(Layers))
	for _, layer := range Layers {
		switch {
		case strings.Contains(content, layer+" Layer: UNHEALTHY"):
			layers[layer] = "UNHEALTHY"
		case strings.Contains(content, layer+" Layer: HEALTHY"):
			layers[layer] = "HEALTHY"
		default:
			layers[layer] = "UNKNOWN"
		}
	}
	status := "PASS"
	if strings.Contains(content, "UNHEALTHY") {
		status = "FAIL"
	}
	return &VerificationResult{
		Layers:   layers,
		Passed:   strings.Count(content, "✓"),
		Failed:   strings.Count(content, "✗"),
		Warnings: strings.Count(content, "⚠"),
		Status:   status,
	}
}

func parseTesting(content string) *TestingResult {
	t := &TestingResult{Integration: "SKIPPED", E2E: "SKIPPED", Status: "PASS"}
	if strings.Contains(content, "Integration Tests") {
		t.Integration = "RAN"
	}
	if strings.Contains(content, "E2E Tests") {
		t.E2E = "RAN"
	}
	t.Failures = strings.Count(content, "✗")
	if strings.Contains(content, "failed") {
		t.Status = "FAIL"
	}
	return t
}

func parseDiagnostics(content string) *DiagnosticsResult {
	return &DiagnosticsResult{
		Completed:     strings.Contains(content, "completed successfully"),
		LayersChecked: strings.Count(content, "Layer"),
	}
}

func parseExamples(content string) *ExamplesResult {
	status := "PASS"
	if strings.Contains(content, "failed") {
		status = "FAIL"
	}
	return &ExamplesResult{
		WorkspacesCreated: strings.Count(content, "workspace created"),
		Status:            status,
	}
}

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

func parseConfig(content string) map[string]any {
	match := jsonBlockRe.FindString(content)
	if match == "" {
		return nil
	}
	var cfg map[string]any
	if err := json.Unmarshal([]byte(match), &cfg); err != nil {
		return nil
	}
	return cfg
}

// HealthPercentage computes overall health from the verification
// layer statuses. No verification data means zero.
func (r *Results) HealthPercentage() int {
	if r.Verification == nil || len(r.Verification.Layers) == 0 {
		return 0
	}
	healthy := 0
	for _, status := range r.Verification.Layers {
		if status == "HEALTHY" {
			healthy++
		}
	}
	return healthy * 100 / len(r.Verification.Layers)
}
