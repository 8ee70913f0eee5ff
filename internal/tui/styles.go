package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = lipgloss.Color("#E85D04")
	colorMuted  = lipgloss.Color("244")
	colorError  = lipgloss.Color("161")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(colorMuted)

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(colorAccent)

	skipButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("178")).
			Foreground(lipgloss.Color("0")).
			Bold(true)

	stopButtonStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(colorError).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110"))

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(colorMuted)
)
