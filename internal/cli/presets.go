package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shavin-peiries/rewrite-this/internal/tui"
)

func (a *app) newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Manage rewrite presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				terminalNotifier{}.Notify("Could not open presets", err.Error())
				return err
			}

			p := tea.NewProgram(tui.NewApp(store), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
