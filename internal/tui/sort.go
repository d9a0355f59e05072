package tui

import (
	"sort"
	"strings"

	"github.com/docxology/metaguildnet/internal/dashboard"
	"github.com/docxology/metaguildnet/internal/domain"
)

// SortColumn identifies a column for sorting.
type SortColumn int

const (
	SortNone SortColumn = iota
	// Clusters
	SortClusterName
	SortClusterHealth
	// Workspaces
	SortWsName
	SortWsStatus
	SortWsAge
)

// SortState holds the current sort configuration for a view.
type SortState struct {
	Column    SortColumn
	Ascending bool
}

// Label returns a display label for the sort column.
func (s SortState) Label() string {
	switch s.Column {
	case SortClusterName, SortWsName:
		return "NAME"
	case SortClusterHealth:
		return "HEALTH"
	case SortWsStatus:
		return "STATUS"
	case SortWsAge:
		return "AGE"
	default:
		return ""
	}
}

// SortIndicator returns the header decorated with ▲ or ▼ when it is
// the active sort column.
func SortIndicator(header string, state SortState) string {
	label := state.Label()
	if label == "" || !strings.EqualFold(header, label) {
		return header
	}
	if state.Ascending {
		return header + " ▲"
	}
	return header + " ▼"
}

// --- Cluster sorting ---

func SortClusters(rows []dashboard.ClusterRow, state SortState) []dashboard.ClusterRow {
	if state.Column == SortNone || len(rows) == 0 {
		return rows
	}
	sorted := make([]dashboard.ClusterRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		var less bool
		switch state.Column {
		case SortClusterName:
			less = strings.ToLower(sorted[i].Cluster.Name) < strings.ToLower(sorted[j].Cluster.Name)
		case SortClusterHealth:
			// healthy rows first
			less = sorted[i].Healthy() && !sorted[j].Healthy()
		default:
			return false
		}
		if !state.Ascending {
			return !less
		}
		return less
	})
	return sorted
}

func NextClusterSort(current SortColumn) SortColumn {
	switch current {
	case SortNone:
		return SortClusterName
	case SortClusterName:
		return SortClusterHealth
	default:
		return SortNone
	}
}

// --- Workspace sorting ---

func SortWorkspaces(workspaces []domain.Workspace, state SortState) []domain.Workspace {
	if state.Column == SortNone || len(workspaces) == 0 {
		return workspaces
	}
	sorted := make([]domain.Workspace, len(workspaces))
	copy(sorted, workspaces)
	sort.SliceStable(sorted, func(i, j int) bool {
		var less bool
		switch state.Column {
		case SortWsName:
			less = strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		case SortWsStatus:
			less = sorted[i].Status < sorted[j].Status
		case SortWsAge:
			less = sorted[i].CreatedAt.After(sorted[j].CreatedAt) // newest first for ascending
		default:
			return false
		}
		if !state.Ascending {
			return !less
		}
		return less
	})
	return sorted
}

func NextWorkspaceSort(current SortColumn) SortColumn {
	switch current {
	case SortNone:
		return SortWsName
	case SortWsName:
		return SortWsStatus
	case SortWsStatus:
		return SortWsAge
	default:
		return SortNone
	}
}
