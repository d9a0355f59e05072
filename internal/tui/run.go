package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docxology/metaguildnet/internal/config"
	"github.com/docxology/metaguildnet/internal/domain"
)

// Run launches the dashboard in the alternate screen. A nil client
// with a non-nil startup error launches the error screen, from which
// 'r' retries via the factory.
func Run(client domain.Gateway, startupErr error, factory ClientFactory, cfg *config.AppConfig) error {
	var m Model
	if startupErr != nil || client == nil {
		m = NewModelWithError(startupErr, factory)
	} else {
		m = NewModel(client, factory, cfg)
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
