package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docxology/metaguildnet/internal/domain"
)

// Compiled regexes for log line colorization.
var (
	reTimestamp  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}[\.\d]*`)
	reLogLevel   = regexp.MustCompile(`\b(INFO|WARN|WARNING|ERROR|FATAL|SEVERE|DEBUG|TRACE)\b`)
	reHTTPMethod = regexp.MustCompile(`\b(GET|POST|PUT|PATCH|DELETE|HEAD|OPTIONS)\b`)
	reHTTPStatus = regexp.MustCompile(`\b([2-5]\d{2})\b`)
)

type logState struct {
	workspace string
	lines     []string
	offset    int
	wrap      bool
}

func (ls *logState) setLines(entries []domain.LogLine) {
	ls.lines = make([]string, len(entries))
	for i, entry := range entries {
		if entry.Timestamp.IsZero() {
			ls.lines[i] = entry.Line
		} else {
			ls.lines[i] = entry.Timestamp.Format("2006-01-02 15:04:05") + " " + entry.Line
		}
	}
	ls.offset = 0
}

func (ls *logState) scrollDown(amount, viewHeight int) {
	maxOffset := len(ls.lines) - viewHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	ls.offset = min(ls.offset+amount, maxOffset)
}

func (ls *logState) scrollUp(amount int) {
	ls.offset = max(ls.offset-amount, 0)
}

func (ls *logState) jumpToBottom(viewHeight int) {
	maxOffset := len(ls.lines) - viewHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	ls.offset = maxOffset
}

func renderLogs(ls *logState, width, viewHeight int) string {
	if len(ls.lines) == 0 {
		return "  No logs available\n"
	}

	var b strings.Builder

	logHeader := fmt.Sprintf("  Logs: %s [%d lines]", ls.workspace, len(ls.lines))
	b.WriteString(headerStyle.Render(logHeader))
	b.WriteString("\n")

	usable := width - 2 // account for "  " prefix
	if usable < 1 {
		usable = 1
	}
	rendered := 0
	for i := ls.offset; i < len(ls.lines) && rendered < viewHeight; i++ {
		line := ls.lines[i]
		if ls.wrap {
			for len(line) > 0 && rendered < viewHeight {
				chunk := line
				if len(chunk) > usable {
					chunk = line[:usable]
					line = line[usable:]
				} else {
					line = ""
				}
				b.WriteString("  ")
				b.WriteString(colorizeLine(chunk))
				b.WriteString("\n")
				rendered++
			}
		} else {
			if len(line) > usable {
				line = line[:usable-1] + "…"
			}
			b.WriteString("  ")
			b.WriteString(colorizeLine(line))
			b.WriteString("\n")
			rendered++
		}
	}

	return b.String()
}

func colorizeLine(line string) string {
	if line == "" {
		return ""
	}

	line = reTimestamp.ReplaceAllStringFunc(line, func(m string) string {
		return lipgloss.NewStyle().Foreground(colorMuted).Render(m)
	})

	line = reLogLevel.ReplaceAllStringFunc(line, func(m string) string {
		switch m {
		case "INFO":
			return lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(m)
		case "WARN", "WARNING":
			return lipgloss.NewStyle().Foreground(colorWarning).Bold(true).Render(m)
		case "ERROR", "FATAL", "SEVERE":
			return lipgloss.NewStyle().Foreground(colorError).Bold(true).Render(m)
		case "DEBUG", "TRACE":
			return lipgloss.NewStyle().Foreground(colorMuted).Render(m)
		}
		return m
	})

	line = reHTTPMethod.ReplaceAllStringFunc(line, func(m string) string {
		switch m {
		case "GET":
			return lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render(m)
		case "POST":
			return lipgloss.NewStyle().Foreground(colorWarning).Bold(true).Render(m)
		case "PUT", "PATCH":
			return lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(m)
		case "DELETE":
			return lipgloss.NewStyle().Foreground(colorError).Bold(true).Render(m)
		case "HEAD", "OPTIONS":
			return lipgloss.NewStyle().Foreground(colorMuted).Bold(true).Render(m)
		}
		return m
	})

	line = reHTTPStatus.ReplaceAllStringFunc(line, func(m string) string {
		switch m[0] {
		case '2':
			return lipgloss.NewStyle().Foreground(colorSuccess).Render(m)
		case '3':
			return lipgloss.NewStyle().Foreground(colorPrimary).Render(m)
		case '4':
			return lipgloss.NewStyle().Foreground(colorWarning).Render(m)
		case '5':
			return lipgloss.NewStyle().Foreground(colorError).Render(m)
		}
		return m
	})

	return line
}

func logHelpKeys(wrap bool) string {
	wrapLabel := "w:wrap"
	if wrap {
		wrapLabel = "w:nowrap"
	}
	return fmt.Sprintf("pgup/pgdn:scroll  G:bottom  %s  esc:back", wrapLabel)
}
