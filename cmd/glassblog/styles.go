package main

import "github.com/charmbracelet/lipgloss"

const (
	pink    = "#EC4899"
	violet  = "#A78BFA"
	green   = "#A9DC76"
	red     = "#FF6188"
	comment = "#727072"
	border  = "#5B595C"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(pink))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(violet)).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(comment))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(green))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(red))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(border))
)
