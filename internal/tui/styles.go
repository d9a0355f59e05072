package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/docxology/metaguildnet/internal/domain"
)

var (
	colorPrimary   = lipgloss.Color("#326CE5") // Kubernetes blue
	colorSecondary = lipgloss.Color("#00A3A3") // GuildNet teal
	colorSuccess   = lipgloss.Color("#04B575")
	colorWarning   = lipgloss.Color("#FFBD2E")
	colorError     = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#626262")
	colorHighlight = lipgloss.Color("#7D56F4")
	colorWarnBg    = lipgloss.Color("#CC7700")
	colorDangerBg  = lipgloss.Color("#8B0000")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	contextStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	focusStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF")).
			PaddingLeft(1).
			PaddingRight(1)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted).
			Underline(true)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorMuted)

	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(colorSuccess).
				Bold(true)

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	bannerWarnStyle = lipgloss.NewStyle().
			Background(colorWarnBg).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	bannerDangerStyle = lipgloss.NewStyle().
				Background(colorDangerBg).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true).
				PaddingLeft(1).
				PaddingRight(1)

	errorScreenStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true).
				PaddingLeft(2).
				PaddingTop(1)

	healthyStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	unhealthyStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)

func colorizeStatus(status domain.WorkspaceStatus) string {
	s := string(status)
	switch status {
	case domain.StatusRunning:
		return lipgloss.NewStyle().Foreground(colorSuccess).Render(s)
	case domain.StatusPending, domain.StatusTerminating:
		return lipgloss.NewStyle().Foreground(colorWarning).Render(s)
	case domain.StatusFailed:
		return lipgloss.NewStyle().Foreground(colorError).Render(s)
	default:
		return lipgloss.NewStyle().Foreground(colorMuted).Render(s)
	}
}

func healthLabel(healthy bool) string {
	if healthy {
		return healthyStyle.Render("healthy")
	}
	return unhealthyStyle.Render("unhealthy")
}
