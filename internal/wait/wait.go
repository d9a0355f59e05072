// Package wait implements a fixed-interval polling loop used for
// workspace readiness and cluster health convergence.
package wait

import (
	"context"
	"time"

	"github.com/docxology/metaguildnet/internal/domain"
)

// Outcome is the terminal state of a wait. Terminal states are final;
// the waiter never resumes after reaching one.
type Outcome int

const (
	Ready    Outcome = iota // status reached the success value
	Failed                  // status reached the failure value
	TimedOut                // max wait elapsed before either
)

func (o Outcome) String() string {
	switch o {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "timed out"
	}
}

// PollFunc fetches the current status of the target resource.
type PollFunc func(ctx context.Context) (string, error)

// Config tunes one wait. Interval is fixed, no backoff.
type Config struct {
	Interval time.Duration // poll cadence, default 5s
	MaxWait  time.Duration // total budget, default 5m
	Success  string        // terminal-success status, e.g. "Running"
	Failure  string        // terminal-failure status, e.g. "Failed"
	Logf     func(format string, args ...any)
}

// Result reports how a wait ended.
type Result struct {
	Outcome    Outcome
	LastStatus string
	Polls      int
	Elapsed    time.Duration
}

// Until polls at a fixed cadence until the status hits a terminal
// value or the budget runs out. The deadline is checked only at poll
// boundaries: a poll runs while polls*interval stays within MaxWait,
// so a 10s budget at 5s cadence yields exactly two polls.
//
// Transport errors during polling are logged and treated as "not yet"
// rather than fatal, since the target may be mid-deployment. Any other
// error aborts the wait and propagates.
func Until(ctx context.Context, cfg Config, poll PollFunc) (Result, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 5 * time.Minute
	}
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	start := time.Now()
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	res := Result{Outcome: TimedOut}
	for {
		if time.Duration(res.Polls+1)*cfg.Interval > cfg.MaxWait {
			res.Elapsed = time.Since(start)
			return res, nil
		}

		select {
		case <-ctx.Done():
			res.Elapsed = time.Since(start)
			return res, ctx.Err()
		case <-ticker.C:
		}

		res.Polls++
		status, err := poll(ctx)
		if err != nil {
			if domain.IsTransport(err) {
				logf("poll %d: target unreachable, retrying: %v", res.Polls, err)
				continue
			}
			res.Elapsed = time.Since(start)
			return res, err
		}

		res.LastStatus = status
		switch status {
		case cfg.Success:
			res.Outcome = Ready
			res.Elapsed = time.Since(start)
			return res, nil
		case cfg.Failure:
			res.Outcome = Failed
			res.Elapsed = time.Since(start)
			return res, nil
		}
	}
}

// ForWorkspace waits for a workspace to reach Running, with Failed as
// the distinct terminal-failure outcome.
func ForWorkspace(ctx context.Context, gw domain.WorkspaceRepository, clusterID, name string, cfg Config) (Result, error) {
	if cfg.Success == "" {
		cfg.Success = string(domain.StatusRunning)
	}
	if cfg.Failure == "" {
		cfg.Failure = string(domain.StatusFailed)
	}
	return Until(ctx, cfg, func(ctx context.Context) (string, error) {
		ws, err := gw.GetWorkspace(ctx, clusterID, name)
		if err != nil {
			return "", err
		}
		return string(ws.Status), nil
	})
}

// ForClusterHealth waits for a cluster's health snapshot to report the
// Kubernetes API reachable.
func ForClusterHealth(ctx context.Context, gw domain.HealthRepository, clusterID string, cfg Config) (Result, error) {
	if cfg.Success == "" {
		cfg.Success = "reachable"
	}
	return Until(ctx, cfg, func(ctx context.Context) (string, error) {
		h, err := gw.ClusterHealth(ctx, clusterID)
		if err != nil {
			return "", err
		}
		if h.K8sReachable {
			return "reachable", nil
		}
		return "unreachable", nil
	})
}
