package tracker

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
	neutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))

	statusStyles = map[string]lipgloss.Style{
		"pending":     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		"in_progress": lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		"resolved":    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"dismissed":   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
)

// StatusStyle maps a report status to its display style. The match is
// case-insensitive; anything outside the enumeration gets the neutral style.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[strings.ToLower(status)]; ok {
		return s
	}
	return neutralStyle
}
