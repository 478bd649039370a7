package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderList() string {
	var b strings.Builder

	title := styleTitle.Render("Rewrite Presets")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	currentID := a.store.CurrentID()

	if len(a.presets) == 0 {
		empty := styleBox.
			Width(boxWidth(a.width)).
			Foreground(colorMuted).
			Render("No presets.\n\nPress [a] to add one.")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, empty))
	} else {
		var rows strings.Builder
		for i, p := range a.presets {
			cursor := "  "
			if i == a.cursor {
				cursor = "> "
			}

			name := p.Name
			if p.ID == currentID {
				name = styleCurrent.Render(name + " (current)")
			}

			badge := ""
			switch {
			case p.BuiltIn && p.Edited:
				badge = styleBadge.Render(" [built-in, edited]")
			case p.BuiltIn:
				badge = styleBadge.Render(" [built-in]")
			}

			rows.WriteString(cursor + name + badge + "\n")
			rows.WriteString("  " + styleSubtitle.Render(truncate(p.Prompt, 60)) + "\n")
			if i < len(a.presets)-1 {
				rows.WriteString("\n")
			}
		}

		listBox := styleBox.
			Width(boxWidth(a.width)).
			BorderForeground(colorPrimary).
			Render(strings.TrimRight(rows.String(), "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	}
	b.WriteString("\n\n")

	if a.status != "" {
		status := a.status
		if strings.HasPrefix(status, "Error") || strings.Contains(status, "required") {
			status = styleErrorText.Render(status)
		} else {
			status = styleSubtitle.Render(status)
		}
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))
		b.WriteString("\n\n")
	}

	bar := styleStatusBar.Render("[Enter] Select  [a] Add  [e] Edit  [c] Duplicate  [d] Delete  [q] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, bar))

	return a.centerVertically(b.String())
}

func boxWidth(width int) int {
	return min(70, max(20, width-4))
}

func (a *App) centerVertically(content string) string {
	if a.height == 0 {
		return content
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Center, content)
}
