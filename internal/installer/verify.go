package installer

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"time"

	"github.com/docxology/metaguildnet/internal/domain"
)

// VerifyKind selects which verification suite to run.
type VerifyKind string

const (
	VerifySystem     VerifyKind = "system"
	VerifyNetwork    VerifyKind = "network"
	VerifyKubernetes VerifyKind = "kubernetes"
	VerifyGuildNet   VerifyKind = "guildnet"
	VerifyAll        VerifyKind = "all"
)

// CheckResult is one verification check outcome.
type CheckResult struct {
	Suite  VerifyKind
	Name   string
	OK     bool
	Detail string
}

// Verifier runs verification suites. When the matching verify script
// exists under ScriptsDir it is preferred; otherwise the built-in
// fallback checks run.
type Verifier struct {
	Runner  *Runner
	Gateway domain.HealthRepository
}

var verifyScripts = map[VerifyKind]string{
	VerifySystem:     "verify/verify-system.sh",
	VerifyNetwork:    "verify/verify-network.sh",
	VerifyKubernetes: "verify/verify-kubernetes.sh",
	VerifyGuildNet:   "verify/verify-guildnet.sh",
	VerifyAll:        "verify/verify-all.sh",
}

// Run executes the requested suite and returns its check results.
func (v *Verifier) Run(ctx context.Context, kind VerifyKind) ([]CheckResult, error) {
	if script, ok := verifyScripts[kind]; ok && v.Runner != nil {
		if st := v.Runner.DryRun(); scriptPresent(st, script) {
			err := v.Runner.RunScript(ctx, script, nil)
			return []CheckResult{{Suite: kind, Name: script, OK: err == nil, Detail: scriptDetail(err)}}, nil
		}
	}
	return v.fallback(ctx, kind)
}

func scriptPresent(statuses []StepStatus, script string) bool {
	for _, s := range statuses {
		if s.Script == script {
			return s.Found
		}
	}
	return false
}

func scriptDetail(err error) string {
	if err == nil {
		return "script passed"
	}
	return err.Error()
}

// fallback runs built-in checks when no verify scripts are installed.
func (v *Verifier) fallback(ctx context.Context, kind VerifyKind) ([]CheckResult, error) {
	var results []CheckResult
	if kind == VerifySystem || kind == VerifyAll {
		results = append(results, v.systemChecks()...)
	}
	if kind == VerifyNetwork || kind == VerifyAll {
		results = append(results, v.networkChecks()...)
	}
	if kind == VerifyKubernetes || kind == VerifyAll {
		results = append(results, v.kubernetesChecks(ctx)...)
	}
	if kind == VerifyGuildNet || kind == VerifyAll {
		results = append(results, v.guildnetChecks(ctx)...)
	}
	if results == nil {
		return nil, fmt.Errorf("unknown verification suite %q", kind)
	}
	return results, nil
}

func (v *Verifier) systemChecks() []CheckResult {
	var results []CheckResult
	for _, p := range CheckPrerequisites() {
		detail := "found in PATH"
		if !p.Found {
			detail = "not found, install with: " + p.Hint
		}
		results = append(results, CheckResult{Suite: VerifySystem, Name: p.Name, OK: p.Found, Detail: detail})
	}
	return results
}

func (v *Verifier) networkChecks() []CheckResult {
	ok := true
	detail := "DNS resolution works"
	if _, err := net.LookupHost("github.com"); err != nil {
		ok = false
		detail = "DNS lookup failed: " + err.Error()
	}
	return []CheckResult{{Suite: VerifyNetwork, Name: "DNS", OK: ok, Detail: detail}}
}

func (v *Verifier) kubernetesChecks(ctx context.Context) []CheckResult {
	if _, err := exec.LookPath("kubectl"); err != nil {
		return []CheckResult{{Suite: VerifyKubernetes, Name: "kubectl", OK: false, Detail: "kubectl not in PATH"}}
	}
	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	err := exec.CommandContext(cctx, "kubectl", "cluster-info").Run()
	if err != nil {
		return []CheckResult{{Suite: VerifyKubernetes, Name: "cluster-info", OK: false, Detail: "kubectl cluster-info failed: " + err.Error()}}
	}
	return []CheckResult{{Suite: VerifyKubernetes, Name: "cluster-info", OK: true, Detail: "cluster reachable"}}
}

func (v *Verifier) guildnetChecks(ctx context.Context) []CheckResult {
	if v.Gateway == nil {
		return []CheckResult{{Suite: VerifyGuildNet, Name: "API", OK: false, Detail: "no API client configured"}}
	}
	if !v.Gateway.Alive(ctx) {
		return []CheckResult{{Suite: VerifyGuildNet, Name: "API", OK: false, Detail: "liveness probe failed"}}
	}
	results := []CheckResult{{Suite: VerifyGuildNet, Name: "API", OK: true, Detail: "liveness probe passed"}}

	summary, err := v.Gateway.GlobalHealth(ctx)
	if err != nil {
		results = append(results, CheckResult{Suite: VerifyGuildNet, Name: "Clusters", OK: false, Detail: "health summary: " + err.Error()})
	} else {
		healthy := 0
		for _, ch := range summary.Clusters {
			if ch.K8sReachable {
				healthy++
			}
		}
		detail := fmt.Sprintf("%d/%d clusters reachable", healthy, len(summary.Clusters))
		results = append(results, CheckResult{Suite: VerifyGuildNet, Name: "Clusters", OK: summary.Healthy, Detail: detail})
	}
	return results
}
