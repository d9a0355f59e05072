package tui

import (
	"fmt"
	"strings"

	"github.com/docxology/metaguildnet/internal/dashboard"
)

func renderHealthPanel(snap dashboard.Snapshot, width int) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("  GLOBAL HEALTH"))
	b.WriteString("\n")

	switch {
	case snap.SummaryErr != nil:
		b.WriteString(fmt.Sprintf("  summary unavailable: %s\n", truncate(snap.SummaryErr.Error(), width-25)))
	case snap.Summary == nil:
		b.WriteString("  no health data yet\n")
	default:
		b.WriteString(fmt.Sprintf("  overall: %s\n", healthLabel(snap.Summary.Healthy)))
		for _, ch := range snap.Summary.Clusters {
			detail := ""
			if ch.K8sError != "" {
				detail = "  " + truncate(ch.K8sError, width-40)
			}
			b.WriteString(fmt.Sprintf("  %-24s %s%s\n", truncate(ch.ClusterID, 23), healthLabel(ch.K8sReachable), detail))
			if !ch.K8sReachable && ch.RecommendedAction != "" {
				b.WriteString(fmt.Sprintf("    recommended: %s\n", truncate(ch.RecommendedAction, width-20)))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("  ACTIVITY"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  clusters:           %d\n", len(snap.Clusters)))
	b.WriteString(fmt.Sprintf("  workspaces (focus): %d\n", len(snap.Workspaces)))
	b.WriteString(fmt.Sprintf("  running:            %d\n", snap.RunningWorkspaces()))
	if !snap.Taken.IsZero() {
		b.WriteString(fmt.Sprintf("  refreshed:          %s\n", snap.Taken.Format("15:04:05")))
	}

	return b.String()
}

func healthHelpKeys() string {
	return "1/2/3:views  r:refresh  q:quit"
}
