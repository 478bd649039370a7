package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderForm() string {
	var b strings.Builder

	heading := "Add Preset"
	if a.formMode == formEdit {
		heading = "Edit Preset"
	}
	title := styleTitle.Render(heading)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	nameBorder := colorMuted
	promptBorder := colorMuted
	if a.focusPrompt {
		promptBorder = colorPrimary
	} else {
		nameBorder = colorPrimary
	}

	nameBox := styleBox.
		Width(boxWidth(a.width)).
		BorderForeground(nameBorder).
		Render("Name\n" + a.nameInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, nameBox))
	b.WriteString("\n")

	promptBox := styleBox.
		Width(boxWidth(a.width)).
		BorderForeground(promptBorder).
		Render("Prompt\n" + a.promptInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, promptBox))
	b.WriteString("\n\n")

	if a.status != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleErrorText.Render(a.status)))
		b.WriteString("\n\n")
	}

	bar := styleStatusBar.Render("[Tab] Switch field  [Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, bar))

	return a.centerVertically(b.String())
}
