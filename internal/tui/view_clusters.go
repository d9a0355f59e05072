package tui

import (
	"fmt"
	"strings"

	"github.com/docxology/metaguildnet/internal/dashboard"
)

func renderClusterList(rows []dashboard.ClusterRow, cursor, width, maxVisible int, focusID string, state SortState) string {
	if len(rows) == 0 {
		return "  No clusters registered. Bootstrap one with 'mgn cluster bootstrap'.\n"
	}

	var b strings.Builder

	if width >= 100 {
		header := fmt.Sprintf("  %-30s %-14s %-12s %-20s %s",
			SortIndicator("NAME", state), SortIndicator("HEALTH", state), "KUBECONFIG", "NAMESPACE", "DETAIL")
		b.WriteString(headerStyle.Render(header))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-25s %s", SortIndicator("NAME", state), SortIndicator("HEALTH", state))
		b.WriteString(headerStyle.Render(header))
		b.WriteString("\n")
	}

	start := 0
	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	for i := start; i < len(rows) && i < start+maxVisible; i++ {
		row := rows[i]
		name := row.Cluster.Name
		if name == "" {
			name = row.Cluster.ID
		}
		if row.Cluster.ID == focusID {
			name = "▸ " + name
		}

		var line string
		if width >= 100 {
			line = fmt.Sprintf("  %-30s %-14s %-12s %-20s %s",
				truncate(name, 29),
				clusterHealthCell(row),
				kubeconfigCell(row),
				truncate(row.Cluster.Namespace, 19),
				truncate(clusterDetail(row), max(width-82, 0)))
		} else {
			line = fmt.Sprintf("  %-25s %s", truncate(name, 24), clusterHealthCell(row))
		}

		if i == cursor {
			b.WriteString(selectedStyle.Width(width).Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func clusterHealthCell(row dashboard.ClusterRow) string {
	switch {
	case row.HealthErr != nil:
		return unhealthyStyle.Render("unknown")
	case row.Healthy():
		return healthyStyle.Render("healthy")
	default:
		return unhealthyStyle.Render("unreachable")
	}
}

func kubeconfigCell(row dashboard.ClusterRow) string {
	if row.Health == nil {
		return "-"
	}
	switch {
	case !row.Health.KubeconfigPresent:
		return "missing"
	case !row.Health.KubeconfigValid:
		return "invalid"
	default:
		return "valid"
	}
}

func clusterDetail(row dashboard.ClusterRow) string {
	switch {
	case row.HealthErr != nil:
		return row.HealthErr.Error()
	case row.Health != nil && row.Health.K8sError != "":
		return row.Health.K8sError
	case row.Health != nil && row.Health.RecommendedAction != "":
		return row.Health.RecommendedAction
	default:
		return ""
	}
}

func clusterHelpKeys() string {
	return "j/k:nav  enter:focus  d:remove  s:sort  /:filter  r:refresh  q:quit"
}
