package notifications

import "github.com/thenoetrevino/tavla/internal/tui/theme"

// Severity represents the severity level of a notification
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// Notification is one transient user-visible message.
type Notification struct {
	Level   Severity
	Message string
}

type severityStyle struct {
	icon       string
	title      string
	foreground string
	background string
}

func (s Severity) style() severityStyle {
	switch s {
	case Warning:
		return severityStyle{icon: "▲", title: "Warning", foreground: theme.WarningFg, background: theme.WarningBg}
	case Error:
		return severityStyle{icon: "✗", title: "Error", foreground: theme.ErrorFg, background: theme.ErrorBg}
	default:
		return severityStyle{icon: "ℹ", title: "Info", foreground: theme.InfoFg, background: theme.InfoBg}
	}
}
