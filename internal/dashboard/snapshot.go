// Package dashboard builds render snapshots for the terminal dashboard.
// Building is separated from rendering so the refresh contract can be
// tested without a terminal: one failed sub-query degrades its own
// panel and never blanks the rest of the snapshot.
package dashboard

import (
	"context"
	"time"

	"github.com/docxology/metaguildnet/internal/domain"
)

// ClusterRow pairs a cluster with its health snapshot. Health is nil
// when the per-cluster health query failed; the row renders as unknown
// instead of being dropped.
type ClusterRow struct {
	Cluster   domain.Cluster
	Health    *domain.ClusterHealth
	HealthErr error
}

// Healthy reports whether the row's cluster is known-good.
func (r ClusterRow) Healthy() bool {
	return r.Health != nil && r.Health.K8sReachable
}

// Snapshot is one complete dashboard refresh. Error fields are set per
// panel; a snapshot is always fully built even when every query failed.
type Snapshot struct {
	Taken time.Time

	Clusters    []ClusterRow
	ClustersErr error

	FocusID       string
	Workspaces    []domain.Workspace
	WorkspacesErr error

	Summary    *domain.HealthSummary
	SummaryErr error
}

// Connected reports whether the Host App answered the cluster list at
// all. A false value with a transport error means "service unreachable"
// and the UI shows installation guidance rather than a generic error.
func (s Snapshot) Connected() bool {
	return s.ClustersErr == nil || !domain.IsTransport(s.ClustersErr)
}

// RunningWorkspaces counts workspaces currently in Running state.
func (s Snapshot) RunningWorkspaces() int {
	n := 0
	for _, ws := range s.Workspaces {
		if ws.Status == domain.StatusRunning {
			n++
		}
	}
	return n
}

// Build performs one refresh cycle: clusters with per-cluster health,
// workspaces for the focus cluster (or first listed), and the global
// health summary. Build never returns an error; every failure degrades
// exactly one panel.
func Build(ctx context.Context, gw domain.Gateway, focus string) Snapshot {
	snap := Snapshot{Taken: time.Now(), FocusID: focus}

	clusters, err := gw.ListClusters(ctx)
	if err != nil {
		snap.ClustersErr = err
	} else {
		snap.Clusters = make([]ClusterRow, len(clusters))
		for i, cluster := range clusters {
			row := ClusterRow{Cluster: cluster}
			health, herr := gw.ClusterHealth(ctx, cluster.ID)
			if herr != nil {
				row.HealthErr = herr
			} else {
				row.Health = health
			}
			snap.Clusters[i] = row
		}
	}

	if snap.FocusID == "" && len(snap.Clusters) > 0 {
		snap.FocusID = snap.Clusters[0].Cluster.ID
	}
	if snap.FocusID != "" {
		workspaces, werr := gw.ListWorkspaces(ctx, snap.FocusID)
		if werr != nil {
			snap.WorkspacesErr = werr
		} else {
			snap.Workspaces = workspaces
		}
	}

	summary, serr := gw.GlobalHealth(ctx)
	if serr != nil {
		snap.SummaryErr = serr
	} else {
		snap.Summary = summary
	}

	return snap
}
