package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/docxology/metaguildnet/internal/domain"
)

func renderWorkspaceList(workspaces []domain.Workspace, cursor, width, maxVisible int, state SortState) string {
	if len(workspaces) == 0 {
		return "  No workspaces in this cluster\n"
	}

	var b strings.Builder

	if width >= 100 {
		header := fmt.Sprintf("  %-32s %-14s %-7s %-30s %s",
			SortIndicator("NAME", state), SortIndicator("STATUS", state), "READY", "IMAGE", SortIndicator("AGE", state))
		b.WriteString(headerStyle.Render(header))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-28s %-14s %s", SortIndicator("NAME", state), SortIndicator("STATUS", state), "READY")
		b.WriteString(headerStyle.Render(header))
		b.WriteString("\n")
	}

	start := 0
	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	for i := start; i < len(workspaces) && i < start+maxVisible; i++ {
		ws := workspaces[i]
		var line string
		if width >= 100 {
			line = fmt.Sprintf("  %-32s %-14s %-7d %-30s %s",
				truncate(ws.Name, 31),
				colorizeStatus(ws.Status),
				ws.Ready,
				truncate(ws.Image, 29),
				age(ws.CreatedAt))
		} else {
			line = fmt.Sprintf("  %-28s %-14s %d",
				truncate(ws.Name, 27),
				colorizeStatus(ws.Status),
				ws.Ready)
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

// age renders a compact k8s-style age like 5m or 2h.
func age(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

func workspaceHelpKeys() string {
	return "j/k:nav  enter:logs  d:delete  s:sort  /:filter  r:refresh  q:quit"
}
