package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskorg/internal/tasks"
)

var (
	colorAccent  = lipgloss.Color("69")
	colorMuted   = lipgloss.Color("241")
	colorSuccess = lipgloss.Color("42")
	colorError   = lipgloss.Color("196")
	colorInfo    = lipgloss.Color("39")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	sectionStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	deletedStyle  = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	toastBase     = lipgloss.NewStyle().Bold(true).MarginTop(1)
)

func toastStyle(sev tasks.Severity) lipgloss.Style {
	switch sev {
	case tasks.SeveritySuccess:
		return toastBase.Foreground(colorSuccess)
	case tasks.SeverityError:
		return toastBase.Foreground(colorError)
	default:
		return toastBase.Foreground(colorInfo)
	}
}
