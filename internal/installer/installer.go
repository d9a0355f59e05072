// Package installer drives the GuildNet installation and verification
// shell scripts. Scripts are opaque subprocesses with an exit-code
// contract: zero is success, anything else aborts the step sequence.
package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Step is one installation script in the ordered sequence.
type Step struct {
	Name        string
	Script      string
	Description string
}

// InstallSteps is the local (MicroK8s) installation sequence.
var InstallSteps = []Step{
	{Name: "Step 1", Script: "install/00-check-prereqs.sh", Description: "Check prerequisites"},
	{Name: "Step 2", Script: "install/01-install-microk8s.sh", Description: "Install MicroK8s"},
	{Name: "Step 3", Script: "install/02-setup-headscale.sh", Description: "Setup Headscale"},
	{Name: "Step 4", Script: "install/03-deploy-guildnet.sh", Description: "Deploy GuildNet"},
	{Name: "Step 5", Script: "install/04-bootstrap-cluster.sh", Description: "Bootstrap cluster"},
	{Name: "Verify", Script: "verify/verify-all.sh", Description: "Verify installation"},
}

// Runner executes installation scripts from a scripts directory and
// reports progress to Out.
type Runner struct {
	ScriptsDir string
	Out        io.Writer
}

// ScriptError carries the exit detail of a failed script.
type ScriptError struct {
	Script   string
	ExitCode int
	Stderr   string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s failed with code %d", e.Script, e.ExitCode)
}

// RunScript runs one script with extra environment variables layered
// over the current environment. Stdout is streamed to Out; stderr is
// captured for the error report.
func (r *Runner) RunScript(ctx context.Context, script string, env map[string]string) error {
	path := filepath.Join(r.ScriptsDir, script)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("script not found: %s", path)
	}

	cmd := exec.CommandContext(ctx, "bash", path)
	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	cmd.Stdout = r.Out

	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &ScriptError{Script: script, ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return fmt.Errorf("run %s: %w", script, err)
	}
	return nil
}

// RunInstall executes the local installation sequence. The cluster
// name is passed to the bootstrap step via the CLUSTER variable.
func (r *Runner) RunInstall(ctx context.Context, clusterName string, skipVerify bool) error {
	for _, step := range InstallSteps {
		if skipVerify && strings.HasPrefix(step.Script, "verify/") {
			continue
		}
		fmt.Fprintf(r.Out, "%s: %s...\n", step.Name, step.Description)

		var env map[string]string
		if strings.Contains(step.Script, "bootstrap") {
			env = map[string]string{"CLUSTER": clusterName}
		}
		if err := r.RunScript(ctx, step.Script, env); err != nil {
			return fmt.Errorf("%s: %w", step.Description, err)
		}
	}
	return nil
}

// StepStatus is one row of a dry-run report.
type StepStatus struct {
	Step
	Path  string
	Found bool
}

// DryRun verifies the script paths without executing anything.
func (r *Runner) DryRun() []StepStatus {
	statuses := make([]StepStatus, len(InstallSteps))
	for i, step := range InstallSteps {
		path := filepath.Join(r.ScriptsDir, step.Script)
		_, err := os.Stat(path)
		statuses[i] = StepStatus{Step: step, Path: path, Found: err == nil}
	}
	return statuses
}

// PrereqResult reports one prerequisite tool check.
type PrereqResult struct {
	Name    string
	Command string
	Found   bool
	Hint    string
}

// CheckPrerequisites looks for the tools the installation scripts need.
func CheckPrerequisites() []PrereqResult {
	prereqs := []PrereqResult{
		{Name: "Docker", Command: "docker", Hint: "curl -fsSL https://get.docker.com | sh"},
		{Name: "kubectl", Command: "kubectl", Hint: "snap install kubectl --classic"},
		{Name: "MicroK8s", Command: "microk8s", Hint: "sudo snap install microk8s --classic"},
		{Name: "curl", Command: "curl", Hint: "apt-get install curl"},
	}
	for i := range prereqs {
		_, err := exec.LookPath(prereqs[i].Command)
		prereqs[i].Found = err == nil
	}
	return prereqs
}
