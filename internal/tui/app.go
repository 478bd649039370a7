package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shavin-peiries/rewrite-this/internal/preset"
)

type view int

const (
	viewList view = iota
	viewForm
	viewConfirm
)

type formMode int

const (
	formAdd formMode = iota
	formEdit
)

// App is the preset administration flow: a list over the resolved
// presets plus add/edit forms and a delete confirmation.
type App struct {
	width  int
	height int
	view   view

	store   *preset.Store
	presets []preset.Preset
	cursor  int
	status  string

	formMode    formMode
	editID      string
	nameInput   textinput.Model
	promptInput textinput.Model
	focusPrompt bool

	confirmTarget preset.Preset

	quitting bool
}

func NewApp(store *preset.Store) *App {
	name := textinput.New()
	name.Placeholder = "Preset name"
	name.CharLimit = 100
	name.Width = 50

	prompt := textinput.New()
	prompt.Placeholder = "Rewrite instruction, e.g. \"Make it sound like an email\""
	prompt.CharLimit = 1000
	prompt.Width = 50

	a := &App{
		store:       store,
		nameInput:   name,
		promptInput: prompt,
	}
	a.refresh()
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), textinput.Blink)
}

// refresh re-fetches the resolved list so the view always matches the
// persisted state exactly.
func (a *App) refresh() {
	a.presets = a.store.List()
	if a.cursor >= len(a.presets) {
		a.cursor = len(a.presets) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := a.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	}

	if a.view == viewForm {
		var cmd tea.Cmd
		if a.focusPrompt {
			a.promptInput, cmd = a.promptInput.Update(msg)
		} else {
			a.nameInput, cmd = a.nameInput.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit
	}

	switch a.view {
	case viewList:
		return a.handleListKey(msg)
	case viewForm:
		return a.handleFormKey(msg)
	case viewConfirm:
		return a.handleConfirmKey(msg)
	}
	return nil
}

func (a *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, keys.Down):
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}

	case key.Matches(msg, keys.Select):
		if p, ok := a.selected(); ok {
			if err := a.store.SetCurrent(p.ID); err != nil {
				a.status = "Error: " + err.Error()
				return nil
			}
			a.status = fmt.Sprintf("Selected %q", p.Name)
			a.refresh()
		}

	case key.Matches(msg, keys.Add):
		a.openForm(formAdd, preset.Preset{})
		return textinput.Blink

	case key.Matches(msg, keys.Edit):
		if p, ok := a.selected(); ok {
			a.openForm(formEdit, p)
			return textinput.Blink
		}

	case key.Matches(msg, keys.Duplicate):
		if p, ok := a.selected(); ok {
			copied, err := a.store.Duplicate(p)
			if err != nil {
				a.status = "Error: " + err.Error()
				return nil
			}
			a.status = fmt.Sprintf("Duplicated as %q", copied.Name)
			a.refresh()
		}

	case key.Matches(msg, keys.Delete):
		if p, ok := a.selected(); ok {
			a.confirmTarget = p
			a.view = viewConfirm
		}
	}
	return nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.view = viewList
		a.status = ""
		return nil

	case key.Matches(msg, keys.Tab):
		a.focusPrompt = !a.focusPrompt
		if a.focusPrompt {
			a.nameInput.Blur()
			a.promptInput.Focus()
		} else {
			a.promptInput.Blur()
			a.nameInput.Focus()
		}
		return textinput.Blink

	case key.Matches(msg, keys.Select):
		return a.submitForm()
	}
	return nil
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		if err := a.store.Delete(a.confirmTarget.ID); err != nil {
			a.status = "Error: " + err.Error()
		} else {
			a.status = fmt.Sprintf("Deleted %q", a.confirmTarget.Name)
		}
		a.view = viewList
		a.refresh()
	case "n", "N", "esc", "q":
		a.view = viewList
	}
	return nil
}

func (a *App) openForm(mode formMode, p preset.Preset) {
	a.formMode = mode
	a.editID = p.ID
	a.nameInput.SetValue(p.Name)
	a.promptInput.SetValue(p.Prompt)
	a.focusPrompt = false
	a.promptInput.Blur()
	a.nameInput.Focus()
	a.view = viewForm
	a.status = ""
}

// submitForm validates both fields here, not in the store.
func (a *App) submitForm() tea.Cmd {
	name := strings.TrimSpace(a.nameInput.Value())
	prompt := strings.TrimSpace(a.promptInput.Value())
	if name == "" || prompt == "" {
		a.status = "Name and prompt are both required"
		return nil
	}

	var err error
	switch a.formMode {
	case formAdd:
		_, err = a.store.Add(name, prompt)
	case formEdit:
		err = a.store.Edit(a.editID, name, prompt)
	}
	if err != nil {
		a.status = "Error: " + err.Error()
		return nil
	}

	if a.formMode == formAdd {
		a.status = fmt.Sprintf("Added %q", name)
	} else {
		a.status = fmt.Sprintf("Saved %q", name)
	}
	a.view = viewList
	a.refresh()
	return nil
}

func (a *App) selected() (preset.Preset, bool) {
	if a.cursor < 0 || a.cursor >= len(a.presets) {
		return preset.Preset{}, false
	}
	return a.presets[a.cursor], true
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewForm:
		return a.renderForm()
	case viewConfirm:
		return a.renderConfirm()
	default:
		return a.renderList()
	}
}
