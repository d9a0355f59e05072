// Package runner executes GuildNet workflows end to end: setup,
// verification, the workspace example, diagnostics and cleanup.
// Each workflow writes its transcript into the outputs directory so
// the report package can visualize the run afterwards.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docxology/metaguildnet/internal/domain"
	"github.com/docxology/metaguildnet/internal/installer"
	"github.com/docxology/metaguildnet/internal/wait"
)

// Workflow names one executable workflow.
type Workflow string

const (
	WorkflowFull     Workflow = "full"
	WorkflowSetup    Workflow = "setup"
	WorkflowVerify   Workflow = "verify"
	WorkflowExample  Workflow = "example"
	WorkflowDiagnose Workflow = "diagnose"
	WorkflowCleanup  Workflow = "cleanup"
)

// ExampleConfig controls the workspace example workflow.
type ExampleConfig struct {
	NamePrefix string
	Image      string
	Password   string
}

// Options configures a Runner. Gateway is required for everything but
// the setup workflow.
type Options struct {
	Gateway    domain.Gateway
	Installer  *installer.Runner
	Verifier   *installer.Verifier
	Out        io.Writer
	OutputsDir string
	Cluster    string
	Example    ExampleConfig

	WaitInterval time.Duration
	WaitMax      time.Duration

	// Full workflow toggles. Setup and cleanup are opt-in; the rest
	// always run.
	RunSetup   bool
	RunCleanup bool
}

// Runner executes workflows.
type Runner struct {
	opts Options
	now  func() time.Time
}

func New(opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Example.NamePrefix == "" {
		opts.Example.NamePrefix = "guildnet-demo"
	}
	if opts.Example.Image == "" {
		opts.Example.Image = "codercom/code-server:latest"
	}
	if opts.WaitMax == 0 {
		opts.WaitMax = 2 * time.Minute
	}
	return &Runner{opts: opts, now: time.Now}
}

// Run dispatches a workflow by name.
func (r *Runner) Run(ctx context.Context, wf Workflow) error {
	switch wf {
	case WorkflowFull:
		return r.Full(ctx)
	case WorkflowSetup:
		return r.Setup(ctx)
	case WorkflowVerify:
		return r.Verify(ctx)
	case WorkflowExample:
		return r.Example(ctx)
	case WorkflowDiagnose:
		return r.Diagnose(ctx)
	case WorkflowCleanup:
		return r.Cleanup(ctx)
	default:
		return fmt.Errorf("unknown workflow %q", wf)
	}
}

// Full runs the whole sequence, stopping at the first failure.
func (r *Runner) Full(ctx context.Context) error {
	start := r.now()
	r.section("Full Workflow")

	type step struct {
		name string
		run  func(context.Context) error
		skip bool
	}
	steps := []step{
		{"Setup", r.Setup, !r.opts.RunSetup},
		{"Verification", r.Verify, false},
		{"Examples", r.Example, false},
		{"Diagnostics", r.Diagnose, false},
		{"Cleanup", r.Cleanup, !r.opts.RunCleanup},
	}

	for _, s := range steps {
		if s.skip {
			fmt.Fprintf(r.opts.Out, "%s skipped\n", s.name)
			continue
		}
		if err := s.run(ctx); err != nil {
			fmt.Fprintf(r.opts.Out, "full workflow failed after %s\n", r.now().Sub(start).Round(time.Second))
			return fmt.Errorf("%s: %w", strings.ToLower(s.name), err)
		}
	}
	fmt.Fprintf(r.opts.Out, "full workflow completed in %s\n", r.now().Sub(start).Round(time.Second))
	return nil
}

// Setup runs the installation scripts.
func (r *Runner) Setup(ctx context.Context) error {
	r.section("Setup")
	if r.opts.Installer == nil {
		return fmt.Errorf("no installer configured")
	}
	cluster := r.opts.Cluster
	if cluster == "" {
		cluster = "default"
	}
	if err := r.opts.Installer.RunInstall(ctx, cluster, true); err != nil {
		return err
	}
	fmt.Fprintln(r.opts.Out, "setup completed successfully")
	return nil
}

// Verify runs all verification suites, plus a database layer probe
// when a cluster is configured, and writes verification_output.txt.
func (r *Runner) Verify(ctx context.Context) error {
	r.section("Verification")
	if r.opts.Verifier == nil {
		return fmt.Errorf("no verifier configured")
	}

	results, err := r.opts.Verifier.Run(ctx, installer.VerifyAll)
	if err != nil {
		return err
	}

	var transcript strings.Builder
	healthy := true
	for _, res := range results {
		mark := "✓"
		if !res.OK {
			mark = "✗"
			healthy = false
		}
		line := fmt.Sprintf("%s %s: %s", mark, res.Name, res.Detail)
		fmt.Fprintln(r.opts.Out, line)
		transcript.WriteString(line + "\n")
	}

	layers := map[string]bool{
		"Network":     suiteOK(results, installer.VerifyNetwork),
		"Cluster":     suiteOK(results, installer.VerifyKubernetes),
		"Application": suiteOK(results, installer.VerifyGuildNet),
		"Database":    r.probeDatabase(ctx),
	}
	for _, layer := range []string{"Network", "Cluster", "Database", "Application"} {
		status := "HEALTHY"
		if !layers[layer] {
			status = "UNHEALTHY"
			healthy = false
		}
		line := fmt.Sprintf("%s Layer: %s", layer, status)
		fmt.Fprintln(r.opts.Out, line)
		transcript.WriteString(line + "\n")
	}

	r.writeOutput("verification_output.txt", transcript.String())
	if !healthy {
		return fmt.Errorf("verification reported unhealthy layers")
	}
	fmt.Fprintln(r.opts.Out, "verification completed successfully")
	return nil
}

func suiteOK(results []installer.CheckResult, suite installer.VerifyKind) bool {
	seen := false
	for _, res := range results {
		if res.Suite != suite {
			continue
		}
		seen = true
		if !res.OK {
			return false
		}
	}
	return seen
}

func (r *Runner) probeDatabase(ctx context.Context) bool {
	if r.opts.Gateway == nil || r.opts.Cluster == "" {
		return false
	}
	_, err := r.opts.Gateway.ListDatabases(ctx, r.opts.Cluster)
	return err == nil
}

// Example runs the basic workspace lifecycle: create, wait until the
// workspace is running, print its details, then delete it. The
// transcript lands in examples_output.txt.
func (r *Runner) Example(ctx context.Context) error {
	r.section("Workspace Example")
	if r.opts.Gateway == nil {
		return fmt.Errorf("no API client configured")
	}
	if r.opts.Cluster == "" {
		return fmt.Errorf("no cluster selected")
	}

	var transcript strings.Builder
	log := func(format string, args ...any) {
		line := fmt.Sprintf(format, args...)
		fmt.Fprintln(r.opts.Out, line)
		transcript.WriteString(line + "\n")
	}
	defer func() { r.writeOutput("examples_output.txt", transcript.String()) }()

	name := fmt.Sprintf("%s-%d", r.opts.Example.NamePrefix, r.now().Unix())
	spec := domain.WorkspaceSpec{Name: name, Image: r.opts.Example.Image}
	if r.opts.Example.Password != "" {
		spec.Env = []domain.EnvVar{{Name: "PASSWORD", Value: r.opts.Example.Password}}
	}

	log("creating workspace %s (image %s)", name, spec.Image)
	ws, err := r.opts.Gateway.CreateWorkspace(ctx, r.opts.Cluster, spec)
	if err != nil {
		log("✗ workspace creation failed: %v", err)
		return err
	}
	log("workspace created: %s", ws.Name)

	res, err := wait.ForWorkspace(ctx, r.opts.Gateway, r.opts.Cluster, ws.Name, wait.Config{
		Interval: r.opts.WaitInterval,
		MaxWait:  r.opts.WaitMax,
		Logf:     func(format string, args ...any) { log("  "+format, args...) },
	})
	if err != nil {
		log("✗ wait failed: %v", err)
		return err
	}
	if res.Outcome != wait.Ready {
		log("✗ workspace %s not ready: %s (last status %s)", ws.Name, res.Outcome, res.LastStatus)
		return fmt.Errorf("workspace %s: %s", ws.Name, res.Outcome)
	}
	log("✓ workspace %s is running", ws.Name)

	r.printDetails(ctx, log, ws.Name)

	if err := r.opts.Gateway.DeleteWorkspace(ctx, r.opts.Cluster, ws.Name); err != nil {
		log("✗ cleanup failed: %v", err)
		return err
	}
	log("workspace %s deleted", ws.Name)
	return nil
}

func (r *Runner) printDetails(ctx context.Context, log func(string, ...any), name string) {
	ws, err := r.opts.Gateway.GetWorkspace(ctx, r.opts.Cluster, name)
	if err != nil {
		log("  details unavailable: %v", err)
		return
	}
	log("  name:   %s", ws.Name)
	log("  status: %s", ws.Status)
	log("  image:  %s", ws.Image)
	for _, p := range ws.Ports {
		log("  port:   %d/%s", p.Port, p.Protocol)
	}
	if ws.ID != "" {
		log("  access: %s/proxy/server/%s/", r.opts.Gateway.BaseURL(), ws.ID)
	}
}

// Diagnose reports per-cluster health and writes
// diagnostics_output.txt.
func (r *Runner) Diagnose(ctx context.Context) error {
	r.section("Diagnostics")
	if r.opts.Gateway == nil {
		return fmt.Errorf("no API client configured")
	}

	var transcript strings.Builder
	log := func(format string, args ...any) {
		line := fmt.Sprintf(format, args...)
		fmt.Fprintln(r.opts.Out, line)
		transcript.WriteString(line + "\n")
	}

	clusters, err := r.opts.Gateway.ListClusters(ctx)
	if err != nil {
		log("✗ cluster listing failed: %v", err)
		r.writeOutput("diagnostics_output.txt", transcript.String())
		return err
	}
	for _, cl := range clusters {
		health, err := r.opts.Gateway.ClusterHealth(ctx, cl.ID)
		switch {
		case err != nil:
			log("✗ %s: health check failed: %v", cl.Name, err)
		case health.K8sReachable:
			log("✓ %s: reachable", cl.Name)
		default:
			log("✗ %s: unreachable (%s)", cl.Name, health.K8sError)
			if health.RecommendedAction != "" {
				log("  recommended: %s", health.RecommendedAction)
			}
		}
	}
	log("diagnostics completed successfully")
	r.writeOutput("diagnostics_output.txt", transcript.String())
	return nil
}

// Cleanup deletes workspaces created by the example workflow,
// matched by name prefix.
func (r *Runner) Cleanup(ctx context.Context) error {
	r.section("Cleanup")
	if r.opts.Gateway == nil {
		return fmt.Errorf("no API client configured")
	}
	if r.opts.Cluster == "" {
		return fmt.Errorf("no cluster selected")
	}

	workspaces, err := r.opts.Gateway.ListWorkspaces(ctx, r.opts.Cluster)
	if err != nil {
		return err
	}
	removed := 0
	for _, ws := range workspaces {
		if !strings.HasPrefix(ws.Name, r.opts.Example.NamePrefix) {
			continue
		}
		if err := r.opts.Gateway.DeleteWorkspace(ctx, r.opts.Cluster, ws.Name); err != nil {
			if domain.IsNotFound(err) {
				continue
			}
			return fmt.Errorf("delete %s: %w", ws.Name, err)
		}
		fmt.Fprintf(r.opts.Out, "removed %s\n", ws.Name)
		removed++
	}
	fmt.Fprintf(r.opts.Out, "cleanup removed %d workspaces\n", removed)
	return nil
}

func (r *Runner) section(title string) {
	fmt.Fprintf(r.opts.Out, "\n== %s ==\n", title)
}

func (r *Runner) writeOutput(name, content string) {
	if r.opts.OutputsDir == "" {
		return
	}
	if err := os.MkdirAll(r.opts.OutputsDir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(r.opts.OutputsDir, name), []byte(content), 0o644)
}
