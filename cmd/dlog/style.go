// FILE: lixenwraith/dlog/cmd/dlog/style.go
package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Width(28)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	blockStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	heldStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	candidateStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	idleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderPairs lays out key/value rows inside a bordered block
func renderPairs(title string, pairs [][2]string) string {
	rows := make([]string, 0, len(pairs)+1)
	rows = append(rows, titleStyle.Render(title))
	for _, p := range pairs {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(p[0]), valueStyle.Render(p[1])))
	}
	return blockStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// colorHistory colors a rendered history string per bit
func colorHistory(rendered string) string {
	var out string
	for _, c := range rendered {
		switch c {
		case '*':
			out += candidateStyle.Render("*")
		case '1':
			out += heldStyle.Render("1")
		default:
			out += idleStyle.Render(string(c))
		}
	}
	return out
}

func printBlock(title string, pairs [][2]string) {
	fmt.Println(renderPairs(title, pairs))
}
