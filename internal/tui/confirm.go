package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type confirmMode int

const (
	confirmNone   confirmMode = iota
	confirmSimple             // y/N prompt
	confirmDanger             // type the full resource name
)

// confirmState gates destructive actions. Workspace deletion uses the
// simple prompt; cluster removal requires typing the cluster name.
type confirmState struct {
	mode         confirmMode
	action       string
	resourceName string
	clusterID    string
	input        textinput.Model
	callback     func() tea.Msg
}

func newConfirmState() confirmState {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 50
	return confirmState{
		mode:  confirmNone,
		input: ti,
	}
}

func (cs *confirmState) activate(action, resourceName, clusterID string, danger bool, callback func() tea.Msg) {
	cs.action = action
	cs.resourceName = resourceName
	cs.clusterID = clusterID
	cs.callback = callback
	if danger {
		cs.mode = confirmDanger
		cs.input.Placeholder = resourceName
		cs.input.SetValue("")
		cs.input.Focus()
	} else {
		cs.mode = confirmSimple
	}
}

func (cs *confirmState) reset() {
	cs.mode = confirmNone
	cs.action = ""
	cs.resourceName = ""
	cs.clusterID = ""
	cs.input.SetValue("")
	cs.input.Blur()
	cs.callback = nil
}

func (cs *confirmState) isActive() bool {
	return cs.mode != confirmNone
}

func (cs *confirmState) update(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch cs.mode {
	case confirmSimple:
		switch msg.String() {
		case "y", "Y":
			cb := cs.callback
			cs.reset()
			if cb != nil {
				return cb, true
			}
			return nil, true
		case "n", "N", "esc":
			cs.reset()
			return nil, true
		}
		return nil, true // absorb all other keys

	case confirmDanger:
		switch msg.String() {
		case "esc":
			cs.reset()
			return nil, true
		case "enter":
			if strings.TrimSpace(cs.input.Value()) == cs.resourceName {
				cb := cs.callback
				cs.reset()
				if cb != nil {
					return cb, true
				}
			}
			return nil, true // wrong name, stay
		default:
			var cmd tea.Cmd
			cs.input, cmd = cs.input.Update(msg)
			return cmd, true
		}
	}
	return nil, false
}

func (cs *confirmState) view(width int) string {
	switch cs.mode {
	case confirmSimple:
		prompt := fmt.Sprintf("  %s %s ? [y/N] ", cs.action, cs.resourceName)
		return "\n" + prompt
	case confirmDanger:
		box := fmt.Sprintf(
			"  DESTRUCTIVE ACTION\n\n"+
				"  Action  : %s\n"+
				"  Target  : %s\n"+
				"  Cluster : %s\n\n"+
				"  Type \"%s\" to confirm:\n"+
				"  > %s\n\n"+
				"  [Esc] Cancel",
			cs.action, cs.resourceName, cs.clusterID,
			cs.resourceName, cs.input.View(),
		)
		return "\n" + bannerDangerStyle.Width(min(width-4, 60)).Render(box) + "\n"
	}
	return ""
}
