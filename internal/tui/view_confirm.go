package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderConfirm() string {
	var b strings.Builder

	title := styleTitle.Render("Delete Preset")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var body string
	if a.confirmTarget.BuiltIn {
		body = fmt.Sprintf("Delete %q?\n\nThis is a built-in preset; it will be hidden from your list.", a.confirmTarget.Name)
	} else {
		body = fmt.Sprintf("Delete %q?\n\nThis cannot be undone.", a.confirmTarget.Name)
	}

	box := styleBox.
		Width(boxWidth(a.width)).
		BorderForeground(colorError).
		Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	bar := styleStatusBar.Render("[y] Delete  [n] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, bar))

	return a.centerVertically(b.String())
}
