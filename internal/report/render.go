package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2)

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const ruleWidth = 64

func rule() string {
	return dimStyle.Render(strings.Repeat("─", ruleWidth))
}

func statusIcon(status string) string {
	switch status {
	case "PASS", "HEALTHY":
		return okStyle.Render("●")
	case "FAIL", "UNHEALTHY":
		return failStyle.Render("✗")
	default:
		return dimStyle.Render("○")
	}
}

// Renderer renders Results into report sections. Now is swappable so
// tests get a stable timestamp.
type Renderer struct {
	Results *Results
	Now     func() time.Time
}

func NewRenderer(results *Results) *Renderer {
	return &Renderer{Results: results, Now: time.Now}
}

// Dashboard renders the workflow status overview, verification layer
// breakdown and the health bar.
func (r *Renderer) Dashboard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GUILDNET EXECUTION DASHBOARD"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("WORKFLOW STATUS"))
	b.WriteString("\n" + rule() + "\n")
	for _, w := range r.workflowStatuses() {
		fmt.Fprintf(&b, "  %s %-20s %10s\n", statusIcon(w.status), w.name, w.status)
	}
	b.WriteString("\n")

	if ver := r.Results.Verification; ver != nil {
		b.WriteString(sectionStyle.Render("VERIFICATION LAYERS"))
		b.WriteString("\n" + rule() + "\n")
		for _, layer := range Layers {
			status := ver.Layers[layer]
			fmt.Fprintf(&b, "  %s %-20s %10s\n", statusIcon(status), layer, status)
		}
		fmt.Fprintf(&b, "\n  Checks:  ✓ %-3d | ✗ %-3d | ⚠ %-3d\n\n", ver.Passed, ver.Failed, ver.Warnings)
	}

	if test := r.Results.Testing; test != nil {
		b.WriteString(sectionStyle.Render("TESTING SUMMARY"))
		b.WriteString("\n" + rule() + "\n")
		fmt.Fprintf(&b, "  Integration tests:  %s\n", test.Integration)
		fmt.Fprintf(&b, "  E2E tests:          %s\n", test.E2E)
		fmt.Fprintf(&b, "  Failures:           %d\n\n", test.Failures)
	}

	pct := r.Results.HealthPercentage()
	b.WriteString(sectionStyle.Render("SYSTEM HEALTH"))
	b.WriteString("\n" + rule() + "\n")
	b.WriteString("  " + healthBar(pct, 50) + "\n")
	fmt.Fprintf(&b, "  Overall health: %d%%\n\n", pct)

	b.WriteString(dimStyle.Render("Generated: " + r.Now().Format("2006-01-02 15:04:05")))
	b.WriteString("\n")
	return b.String()
}

type workflowStatus struct {
	name   string
	status string
}

func (r *Renderer) workflowStatuses() []workflowStatus {
	res := r.Results
	statuses := []workflowStatus{
		{"Verification", "N/A"},
		{"Testing", "N/A"},
		{"Diagnostics", "N/A"},
		{"Examples", "N/A"},
	}
	if res.Verification != nil {
		statuses[0].status = res.Verification.Status
	}
	if res.Testing != nil {
		statuses[1].status = res.Testing.Status
	}
	if res.Diagnostics != nil {
		if res.Diagnostics.Completed {
			statuses[2].status = "PASS"
		} else {
			statuses[2].status = "FAIL"
		}
	}
	if res.Examples != nil {
		statuses[3].status = res.Examples.Status
	}
	return statuses
}

func healthBar(percentage, width int) string {
	filled := percentage * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := failStyle
	switch {
	case percentage >= 80:
		style = okStyle
	case percentage >= 50:
		style = warnStyle
	}
	return "[" + style.Render(bar) + "]"
}

// Timeline renders the execution order of the workflows with their
// outcomes.
func (r *Renderer) Timeline() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("EXECUTION TIMELINE"))
	b.WriteString("\n\n")

	steps := r.workflowStatuses()
	b.WriteString("  Start ─┬─▶ Setup\n")
	for i, s := range steps {
		connector := "       ├─▶"
		if i == len(steps)-1 {
			connector = "       └─▶"
		}
		fmt.Fprintf(&b, "%s %-15s %s %s\n", connector, s.name, statusIcon(s.status), s.status)
	}
	b.WriteString("\n")
	return b.String()
}

// Matrix renders the feature status matrix. Features whose state
// depends on workflow outputs degrade to pending when unverified.
func (r *Renderer) Matrix() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FEATURE MATRIX"))
	b.WriteString("\n\n")

	type feature struct {
		name    string
		working bool
	}
	layers := map[string]string{}
	if r.Results.Verification != nil {
		layers = r.Results.Verification.Layers
	}
	features := []feature{
		{"Configuration loading", true},
		{"Multi-workflow support", true},
		{"Error handling", true},
		{"Visualizations", true},
		{"Network verification", layers["Network"] == "HEALTHY"},
		{"Cluster verification", layers["Cluster"] == "HEALTHY"},
		{"Database verification", layers["Database"] == "HEALTHY"},
		{"Application verification", layers["Application"] == "HEALTHY"},
		{"Workspace creation", r.Results.Examples != nil && r.Results.Examples.Status == "PASS"},
	}

	fmt.Fprintf(&b, "%-30s %-10s\n", "Feature", "State")
	b.WriteString(rule() + "\n")
	for _, f := range features {
		state := warnStyle.Render("pending setup")
		if f.working {
			state = okStyle.Render("working")
		}
		fmt.Fprintf(&b, "%-30s %s\n", f.name, state)
	}
	b.WriteString("\n")
	return b.String()
}

// Report concatenates all sections.
func (r *Renderer) Report() string {
	return strings.Join([]string{r.Dashboard(), r.Timeline(), r.Matrix()}, "\n")
}

// Save writes the full report next to the outputs directory.
func (r *Renderer) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(r.Report()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
