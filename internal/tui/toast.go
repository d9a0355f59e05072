package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastTTL is how long a transient toast stays visible. Sticky toasts
// (connection loss, bad credentials) have no expiry; they clear on
// dismissal or when the condition resolves.
const toastTTL = 4 * time.Second

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastError
)

type toast struct {
	message string
	level   toastLevel
	sticky  bool
	expires time.Time
}

type toastExpiredMsg struct{}

func successToast(msg string) toast {
	return toast{message: msg, level: toastSuccess, expires: time.Now().Add(toastTTL)}
}

func errorToast(msg string) toast {
	return toast{message: msg, level: toastError, expires: time.Now().Add(toastTTL)}
}

// connectionLostToast stays up until a snapshot shows the Host App
// answering again.
func connectionLostToast() toast {
	return toast{message: "Connection lost. 'r' to retry", level: toastError, sticky: true}
}

func unauthorizedToast() toast {
	return toast{message: "Unauthorized: check your API token", level: toastError, sticky: true}
}

func (t toast) isActive() bool {
	if t.message == "" {
		return false
	}
	return t.sticky || time.Now().Before(t.expires)
}

func (t toast) render() string {
	if !t.isActive() {
		return ""
	}
	switch t.level {
	case toastSuccess:
		return toastSuccessStyle.Render(t.message)
	case toastError:
		return toastErrorStyle.Render(t.message)
	default:
		return t.message
	}
}

func scheduleToastClear() tea.Cmd {
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}
